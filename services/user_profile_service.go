package services

import (
	"context"
	"fmt"
	"time"

	"peertrust_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type UserProfileService struct {
	Dynamo *DynamoService
}

// AddUserProfile adds a new user profile to DynamoDB
func (ups *UserProfileService) AddUserProfile(ctx context.Context, profile models.UserProfile) (*models.UserProfile, error) {
	if profile.FeedbackVisibility == "" {
		profile.FeedbackVisibility = models.FeedbackVisibilityPrivate
	}
	if profile.CreatedAt == "" {
		profile.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	if err := ups.Dynamo.PutItem(ctx, models.UserProfilesTable, profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetUserProfile retrieves a user profile by ID. Returns (nil, nil) when no
// profile exists.
func (ups *UserProfileService) GetUserProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}

	item, err := ups.Dynamo.GetItem(ctx, models.UserProfilesTable, key)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	var profile models.UserProfile
	if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &profile, nil
}

// GetUserProfileByEmail looks up a profile via the email GSI. Returns
// (nil, nil) when no profile matches.
func (ups *UserProfileService) GetUserProfileByEmail(ctx context.Context, emailID string) (*models.UserProfile, error) {
	keyCondition := "emailId = :emailId"
	expressionValues := map[string]types.AttributeValue{
		":emailId": &types.AttributeValueMemberS{Value: emailID},
	}

	items, err := ups.Dynamo.QueryItemsWithIndex(ctx, models.UserProfilesTable, models.EmailIndex, keyCondition, expressionValues, nil, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile by email: %w", err)
	}
	if len(items) == 0 {
		return nil, nil
	}

	var profile models.UserProfile
	if err := attributevalue.UnmarshalMap(items[0], &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &profile, nil
}

// UpdateUserProfile applies a partial update to the caller's own profile.
// Only display fields are writable; identity fields stay as created.
func (ups *UserProfileService) UpdateUserProfile(ctx context.Context, userID string, updates map[string]string) (*models.UserProfile, error) {
	allowed := map[string]bool{
		"fullName":           true,
		"bio":                true,
		"photoKey":           true,
		"feedbackVisibility": true,
	}

	updateExpression := ""
	expressionValues := map[string]types.AttributeValue{}
	expressionNames := map[string]string{}
	for field, value := range updates {
		if !allowed[field] {
			continue
		}
		if updateExpression == "" {
			updateExpression = "SET "
		} else {
			updateExpression += ", "
		}
		placeholder := "#" + field
		updateExpression += placeholder + " = :" + field
		expressionNames[placeholder] = field
		expressionValues[":"+field] = &types.AttributeValueMemberS{Value: value}
	}
	if updateExpression == "" {
		return ups.GetUserProfile(ctx, userID)
	}

	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}

	attrs, err := ups.Dynamo.UpdateItem(ctx, models.UserProfilesTable, updateExpression, key, expressionValues, expressionNames, "")
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	var profile models.UserProfile
	if err := attributevalue.UnmarshalMap(attrs, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &profile, nil
}
