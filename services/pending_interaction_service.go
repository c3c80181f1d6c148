package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"peertrust_server/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// PendingInteractionService handles the request/approve entry point into the
// commit protocol: one user nominates a peer, the peer approves or declines.
type PendingInteractionService struct {
	Dynamo       *DynamoService
	Interactions *InteractionService
	Profiles     *UserProfileService
}

// RequestInteraction creates a pending interaction naming a peer. The peer
// must exist and must not be the requester.
func (s *PendingInteractionService) RequestInteraction(ctx context.Context, requesterID, requesteeID string) (*models.PendingInteraction, error) {
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

	pending := models.PendingInteraction{
		RequestID:   uuid.New().String(),
		RequesterID: requesterID,
		RequesteeID: requesteeID,
		Status:      models.PendingInteractionStatusPending,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.Dynamo.PutItem(ctx, models.PendingInteractionsTable, pending); err != nil {
		return nil, fmt.Errorf("failed to create pending interaction: %w", err)
	}

	log.Printf("📨 Interaction request %s: %s -> %s", pending.RequestID, requesterID, requesteeID)
	return &pending, nil
}

// Approve confirms a pending interaction. Only the requestee may approve, and
// only while the record is still pending. The commit deletes the pending
// record in the same transaction that writes the interaction pair, with the
// delete conditioned on the record still being pending — two tabs approving
// the same request produce exactly one pair.
func (s *PendingInteractionService) Approve(ctx context.Context, requestID, approverID string) (*models.InteractionPair, error) {
	pending, err := s.getPending(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if pending.RequesteeID != approverID {
		return nil, ErrNotAuthorized
	}
	if pending.Status != models.PendingInteractionStatusPending {
		return nil, ErrAlreadyResolved
	}

	tableName := models.PendingInteractionsTable
	deletePending := types.TransactWriteItem{
		Delete: &types.Delete{
			TableName: &tableName,
			Key: map[string]types.AttributeValue{
				"requestId": &types.AttributeValueMemberS{Value: requestID},
			},
			ConditionExpression:      aws.String("#s = :pending"),
			ExpressionAttributeNames: map[string]string{"#s": "status"},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":pending": &types.AttributeValueMemberS{Value: models.PendingInteractionStatusPending},
			},
		},
	}

	pair, err := s.Interactions.Commit(ctx, pending.RequesterID, pending.RequesteeID, deletePending)
	if err != nil {
		if errors.Is(err, ErrTokenConflict) {
			return nil, ErrAlreadyResolved
		}
		return nil, err
	}
	return pair, nil
}

// Decline marks a pending interaction as declined. Terminal and retained; no
// interaction pair is created. The conditional update keeps a racing approval
// or second decline from resurrecting or re-resolving the record.
func (s *PendingInteractionService) Decline(ctx context.Context, requestID, approverID string) error {
	pending, err := s.getPending(ctx, requestID)
	if err != nil {
		return err
	}
	if pending.RequesteeID != approverID {
		return ErrNotAuthorized
	}
	if pending.Status != models.PendingInteractionStatusPending {
		return ErrAlreadyResolved
	}

	key := map[string]types.AttributeValue{
		"requestId": &types.AttributeValueMemberS{Value: requestID},
	}
	expressionValues := map[string]types.AttributeValue{
		":declined": &types.AttributeValueMemberS{Value: models.PendingInteractionStatusDeclined},
		":pending":  &types.AttributeValueMemberS{Value: models.PendingInteractionStatusPending},
	}
	expressionNames := map[string]string{"#s": "status"}

	_, err = s.Dynamo.UpdateItem(ctx, models.PendingInteractionsTable, "SET #s = :declined", key, expressionValues, expressionNames, "#s = :pending")
	if err != nil {
		if IsConditionalCheckFailure(err) {
			return ErrAlreadyResolved
		}
		return fmt.Errorf("failed to decline pending interaction: %w", err)
	}
	return nil
}

// GetIncoming lists pending interactions addressed to a user.
func (s *PendingInteractionService) GetIncoming(ctx context.Context, requesteeID string) ([]models.PendingInteraction, error) {
	return s.queryByIndex(ctx, models.PendingRequesteeIndex, "requesteeId = :id", requesteeID)
}

// GetSent lists pending interactions a user has initiated.
func (s *PendingInteractionService) GetSent(ctx context.Context, requesterID string) ([]models.PendingInteraction, error) {
	return s.queryByIndex(ctx, models.PendingRequesterIndex, "requesterId = :id", requesterID)
}

func (s *PendingInteractionService) queryByIndex(ctx context.Context, indexName, keyCondition, id string) ([]models.PendingInteraction, error) {
	expressionValues := map[string]types.AttributeValue{
		":id": &types.AttributeValueMemberS{Value: id},
	}

	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.PendingInteractionsTable, indexName, keyCondition, expressionValues, nil, 100)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pending interactions: %w", err)
	}

	var pending []models.PendingInteraction
	if err := attributevalue.UnmarshalListOfMaps(items, &pending); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pending interactions: %w", err)
	}
	return pending, nil
}

// getPending reads a pending interaction by id. A missing record reads as
// already resolved: confirmation deletes the record, so "gone" usually means
// "approved in another session".
func (s *PendingInteractionService) getPending(ctx context.Context, requestID string) (*models.PendingInteraction, error) {
	key := map[string]types.AttributeValue{
		"requestId": &types.AttributeValueMemberS{Value: requestID},
	}

	item, err := s.Dynamo.GetItem(ctx, models.PendingInteractionsTable, key)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pending interaction: %w", err)
	}
	if item == nil {
		return nil, ErrAlreadyResolved
	}

	var pending models.PendingInteraction
	if err := attributevalue.UnmarshalMap(item, &pending); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pending interaction: %w", err)
	}
	return &pending, nil
}
