package services

import (
	"context"
	"fmt"
	"time"

	"peertrust_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// FeedbackRequestService manages feedback requests. A request transitions
// pending -> declined here; pending -> completed only ever happens inside the
// feedback submission transaction (see FeedbackService).
type FeedbackRequestService struct {
	Dynamo   *DynamoService
	Profiles *UserProfileService
}

// CreateRequest asks a peer for feedback about the requester.
func (s *FeedbackRequestService) CreateRequest(ctx context.Context, requesterID, requesteeID string) (*models.FeedbackRequest, error) {
	if requesterID == requesteeID {
		return nil, ErrInvalidPeer
	}

	peer, err := s.Profiles.GetUserProfile(ctx, requesteeID)
	if err != nil {
		return nil, err
	}
	if peer == nil {
		return nil, ErrInvalidPeer
	}

	request := models.FeedbackRequest{
		RequestID:   uuid.New().String(),
		RequesterID: requesterID,
		RequesteeID: requesteeID,
		Status:      models.FeedbackRequestStatusPending,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.Dynamo.PutItem(ctx, models.FeedbackRequestsTable, request); err != nil {
		return nil, fmt.Errorf("failed to create feedback request: %w", err)
	}
	return &request, nil
}

// DeclineRequest marks a pending request declined. Terminal; the conditional
// update refuses to touch a request that already completed or declined.
func (s *FeedbackRequestService) DeclineRequest(ctx context.Context, requestID, declinerID string) error {
	request, err := s.GetRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if request == nil {
		return ErrAlreadyResolved
	}
	if request.RequesteeID != declinerID {
		return ErrNotAuthorized
	}
	if request.Status != models.FeedbackRequestStatusPending {
		return ErrAlreadyResolved
	}

	key := map[string]types.AttributeValue{
		"requestId": &types.AttributeValueMemberS{Value: requestID},
	}
	expressionValues := map[string]types.AttributeValue{
		":declined": &types.AttributeValueMemberS{Value: models.FeedbackRequestStatusDeclined},
		":pending":  &types.AttributeValueMemberS{Value: models.FeedbackRequestStatusPending},
	}
	expressionNames := map[string]string{"#s": "status"}

	_, err = s.Dynamo.UpdateItem(ctx, models.FeedbackRequestsTable, "SET #s = :declined", key, expressionValues, expressionNames, "#s = :pending")
	if err != nil {
		if IsConditionalCheckFailure(err) {
			return ErrAlreadyResolved
		}
		return fmt.Errorf("failed to decline feedback request: %w", err)
	}
	return nil
}

// GetRequest reads a feedback request by id. Returns (nil, nil) when missing.
func (s *FeedbackRequestService) GetRequest(ctx context.Context, requestID string) (*models.FeedbackRequest, error) {
	key := map[string]types.AttributeValue{
		"requestId": &types.AttributeValueMemberS{Value: requestID},
	}

	item, err := s.Dynamo.GetItem(ctx, models.FeedbackRequestsTable, key)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feedback request: %w", err)
	}
	if item == nil {
		return nil, nil
	}

	var request models.FeedbackRequest
	if err := attributevalue.UnmarshalMap(item, &request); err != nil {
		return nil, fmt.Errorf("failed to unmarshal feedback request: %w", err)
	}
	return &request, nil
}

// GetIncoming lists requests where the user is being asked to review.
func (s *FeedbackRequestService) GetIncoming(ctx context.Context, requesteeID string) ([]models.FeedbackRequest, error) {
	return s.queryByIndex(ctx, models.FeedbackRequesteeIndex, "requesteeId = :id", requesteeID)
}

// GetSent lists requests the user has made for feedback about themselves.
func (s *FeedbackRequestService) GetSent(ctx context.Context, requesterID string) ([]models.FeedbackRequest, error) {
	return s.queryByIndex(ctx, models.FeedbackRequesterIndex, "requesterId = :id", requesterID)
}

func (s *FeedbackRequestService) queryByIndex(ctx context.Context, indexName, keyCondition, id string) ([]models.FeedbackRequest, error) {
	expressionValues := map[string]types.AttributeValue{
		":id": &types.AttributeValueMemberS{Value: id},
	}

	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.FeedbackRequestsTable, indexName, keyCondition, expressionValues, nil, 100)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feedback requests: %w", err)
	}

	var requests []models.FeedbackRequest
	if err := attributevalue.UnmarshalListOfMaps(items, &requests); err != nil {
		return nil, fmt.Errorf("failed to unmarshal feedback requests: %w", err)
	}
	return requests, nil
}
