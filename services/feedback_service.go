package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"peertrust_server/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// FeedbackService guards and performs feedback submission, and serves the
// reviewee-side dashboard queries.
type FeedbackService struct {
	Dynamo       *DynamoService
	Interactions *InteractionService
	Requests     *FeedbackRequestService
}

// FeedbackInput is a reviewer's submission.
type FeedbackInput struct {
	RevieweeID          string                  `json:"revieweeId"`
	RequestID           string                  `json:"requestId,omitempty"`
	Criteria            models.FeedbackCriteria `json:"criteria"`
	Strengths           string                  `json:"strengths"`
	AreasForImprovement string                  `json:"areasForImprovement"`
	Visibility          string                  `json:"visibility,omitempty"`
	ReportReason        string                  `json:"reportReason,omitempty"`
}

// FeedbackSummary is the aggregate dashboard view of a user's received
// feedback.
type FeedbackSummary struct {
	Count                int     `json:"count"`
	AverageRating        float64 `json:"averageRating"`
	AverageCollaboration float64 `json:"averageCollaboration"`
	AverageCommunication float64 `json:"averageCommunication"`
	AverageExecution     float64 `json:"averageExecution"`
}

// CanSubmitFeedback is the eligibility gate: feedback needs a confirmed
// context. With a request id the context is that pending request, addressed
// to the reviewer and about the reviewee. Without one, at least one confirmed
// interaction between the two users must exist.
func (s *FeedbackService) CanSubmitFeedback(ctx context.Context, reviewerID, revieweeID, requestID string) error {
	if reviewerID == revieweeID {
		return ErrInvalidPeer
	}

	if requestID != "" {
		request, err := s.Requests.GetRequest(ctx, requestID)
		if err != nil {
			return err
		}
		if request == nil {
			return ErrAlreadyResolved
		}
		if request.RequesteeID != reviewerID || request.RequesterID != revieweeID {
			return ErrNotAuthorized
		}
		if request.Status != models.FeedbackRequestStatusPending {
			return ErrAlreadyResolved
		}
		return nil
	}

	confirmed, err := s.Interactions.HasConfirmedInteraction(ctx, reviewerID, revieweeID)
	if err != nil {
		return err
	}
	if !confirmed {
		return ErrNotAuthorized
	}
	return nil
}

// SubmitFeedback validates the submission against the eligibility gate and
// writes it under the reviewee's partition. When the submission resolves a
// feedback request, the feedback put and the request's pending -> completed
// transition run in one transaction: the request completes if and only if the
// feedback write succeeds.
func (s *FeedbackService) SubmitFeedback(ctx context.Context, reviewerID string, input FeedbackInput) (*models.Feedback, error) {
	if err := validateCriteria(input.Criteria); err != nil {
		return nil, err
	}
	if err := s.CanSubmitFeedback(ctx, reviewerID, input.RevieweeID, input.RequestID); err != nil {
		return nil, err
	}

	visibility := input.Visibility
	if visibility == "" {
		visibility = models.VisibilityPrivate
	}

	rating := float64(input.Criteria.Collaboration+input.Criteria.Communication+input.Criteria.Execution) / 3
	feedback := models.Feedback{
		RevieweeID:          input.RevieweeID,
		FeedbackID:          uuid.New().String(),
		ReviewerID:          reviewerID,
		Rating:              math.Round(rating*100) / 100,
		Criteria:            input.Criteria,
		Strengths:           input.Strengths,
		AreasForImprovement: input.AreasForImprovement,
		Visibility:          visibility,
		ReportReason:        input.ReportReason,
		RequestID:           input.RequestID,
		CreatedAt:           time.Now().UTC().Format(time.RFC3339Nano),
	}

	if input.RequestID == "" {
		if err := s.Dynamo.PutItem(ctx, models.FeedbackTable, feedback); err != nil {
			return nil, fmt.Errorf("failed to submit feedback: %w", err)
		}
		return &feedback, nil
	}

	feedbackItem, err := attributevalue.MarshalMap(feedback)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal feedback: %w", err)
	}

	feedbackTable := models.FeedbackTable
	requestsTable := models.FeedbackRequestsTable
	items := []types.TransactWriteItem{
		{Put: &types.Put{TableName: &feedbackTable, Item: feedbackItem}},
		{Update: &types.Update{
			TableName: &requestsTable,
			Key: map[string]types.AttributeValue{
				"requestId": &types.AttributeValueMemberS{Value: input.RequestID},
			},
			UpdateExpression:         aws.String("SET #s = :completed"),
			ConditionExpression:      aws.String("#s = :pending"),
			ExpressionAttributeNames: map[string]string{"#s": "status"},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":completed": &types.AttributeValueMemberS{Value: models.FeedbackRequestStatusCompleted},
				":pending":   &types.AttributeValueMemberS{Value: models.FeedbackRequestStatusPending},
			},
		}},
	}

	if err := s.Dynamo.TransactWriteItems(ctx, items); err != nil {
		if IsConditionalCheckFailure(err) {
			return nil, ErrAlreadyResolved
		}
		return nil, fmt.Errorf("failed to submit feedback: %w", err)
	}

	log.Printf("✅ Feedback %s resolved request %s", feedback.FeedbackID, input.RequestID)
	return &feedback, nil
}

// GetFeedbackForUser lists all feedback received by a user, newest partition
// order. Only the subject's own partition is ever read.
func (s *FeedbackService) GetFeedbackForUser(ctx context.Context, revieweeID string) ([]models.Feedback, error) {
	keyCondition := "revieweeId = :id"
	expressionValues := map[string]types.AttributeValue{
		":id": &types.AttributeValueMemberS{Value: revieweeID},
	}

	items, err := s.Dynamo.QueryItems(ctx, models.FeedbackTable, keyCondition, expressionValues, nil, 200)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feedback: %w", err)
	}

	var feedback []models.Feedback
	if err := attributevalue.UnmarshalListOfMaps(items, &feedback); err != nil {
		return nil, fmt.Errorf("failed to unmarshal feedback: %w", err)
	}
	return feedback, nil
}

// Summarize aggregates a user's received feedback for the dashboard.
func (s *FeedbackService) Summarize(ctx context.Context, revieweeID string) (*FeedbackSummary, error) {
	feedback, err := s.GetFeedbackForUser(ctx, revieweeID)
	if err != nil {
		return nil, err
	}

	summary := FeedbackSummary{Count: len(feedback)}
	if len(feedback) == 0 {
		return &summary, nil
	}

	var rating, collaboration, communication, execution float64
	for _, f := range feedback {
		rating += f.Rating
		collaboration += float64(f.Criteria.Collaboration)
		communication += float64(f.Criteria.Communication)
		execution += float64(f.Criteria.Execution)
	}
	n := float64(len(feedback))
	summary.AverageRating = math.Round(rating/n*100) / 100
	summary.AverageCollaboration = math.Round(collaboration/n*100) / 100
	summary.AverageCommunication = math.Round(communication/n*100) / 100
	summary.AverageExecution = math.Round(execution/n*100) / 100
	return &summary, nil
}

func validateCriteria(c models.FeedbackCriteria) error {
	for _, rating := range []int{c.Collaboration, c.Communication, c.Execution} {
		if rating < 1 || rating > 5 {
			return fmt.Errorf("rating must be between 1 and 5, got %d", rating)
		}
	}
	return nil
}
