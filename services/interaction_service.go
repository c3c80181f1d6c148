package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"peertrust_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// InteractionService owns the commit protocol and confirmed-interaction
// queries.
type InteractionService struct {
	Dynamo *DynamoService
}

// Commit turns a validated token into a symmetric interaction pair. It writes
// two fresh interaction items — one under each participant's partition, both
// carrying the same timestamp — together with the caller-supplied token
// consumption ops (code delete, pending-request delete) in a single
// TransactWriteItems call.
//
// The token op must carry a condition expression guarding the token's current
// state. That condition is what makes the commit exactly-once: when two
// sessions race on the same token, the store applies one transaction and
// cancels the other with a conditional-check failure, surfaced here as
// ErrTokenConflict for the caller to translate. Any other transaction failure
// is ErrCommitFailed — nothing was written and the token remains redeemable.
func (s *InteractionService) Commit(ctx context.Context, participantA, participantB string, tokenOps ...types.TransactWriteItem) (*models.InteractionPair, error) {
	if participantA == participantB {
		return nil, ErrInvalidPeer
	}

	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	pair := models.InteractionPair{
		Initiator: models.Interaction{
			UserID:         participantA,
			InteractionID:  uuid.New().String(),
			Participant1ID: participantA,
			Participant2ID: participantB,
			Timestamp:      timestamp,
		},
		Peer: models.Interaction{
			UserID:         participantB,
			InteractionID:  uuid.New().String(),
			Participant1ID: participantB,
			Participant2ID: participantA,
			Timestamp:      timestamp,
		},
	}

	initiatorItem, err := attributevalue.MarshalMap(pair.Initiator)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal interaction: %w", err)
	}
	peerItem, err := attributevalue.MarshalMap(pair.Peer)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal interaction: %w", err)
	}

	tableName := models.InteractionsTable
	items := []types.TransactWriteItem{
		{Put: &types.Put{TableName: &tableName, Item: initiatorItem}},
		{Put: &types.Put{TableName: &tableName, Item: peerItem}},
	}
	items = append(items, tokenOps...)

	if err := s.Dynamo.TransactWriteItems(ctx, items); err != nil {
		if IsConditionalCheckFailure(err) {
			log.Printf("⚠️ Commit lost the race for token consumption: %s / %s", participantA, participantB)
			return nil, fmt.Errorf("%w: %v", ErrTokenConflict, err)
		}
		log.Printf("❌ Interaction commit failed for %s / %s: %v", participantA, participantB, err)
		return nil, fmt.Errorf("%w: %v", ErrCommitFailed, err)
	}

	log.Printf("✅ Interaction confirmed: %s ↔ %s", participantA, participantB)
	return &pair, nil
}

// GetInteractionsForUser fetches all confirmed interactions under a user's
// partition.
func (s *InteractionService) GetInteractionsForUser(ctx context.Context, userID string) ([]models.Interaction, error) {
	keyCondition := "userId = :uid"
	expressionValues := map[string]types.AttributeValue{
		":uid": &types.AttributeValueMemberS{Value: userID},
	}

	items, err := s.Dynamo.QueryItems(ctx, models.InteractionsTable, keyCondition, expressionValues, nil, 100)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch interactions: %w", err)
	}

	var interactions []models.Interaction
	if err := attributevalue.UnmarshalListOfMaps(items, &interactions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal interactions: %w", err)
	}
	return interactions, nil
}

// HasConfirmedInteraction reports whether userID holds at least one confirmed
// interaction with peerID. Only the caller's own partition is consulted; the
// pair invariant makes the twin query redundant.
func (s *InteractionService) HasConfirmedInteraction(ctx context.Context, userID, peerID string) (bool, error) {
	keyCondition := "userId = :uid"
	expressionValues := map[string]types.AttributeValue{
		":uid":  &types.AttributeValueMemberS{Value: userID},
		":peer": &types.AttributeValueMemberS{Value: peerID},
	}

	items, err := s.Dynamo.QueryItemsWithFilters(ctx, models.InteractionsTable, keyCondition, expressionValues, nil, "participant2Id = :peer")
	if err != nil {
		return false, fmt.Errorf("failed to check interactions: %w", err)
	}
	return len(items) > 0, nil
}
