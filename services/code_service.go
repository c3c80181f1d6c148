package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"peertrust_server/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// codeAlphabet omits 0/O/1/I/L so codes survive being read aloud or retyped
// from a screen.
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// CodeService issues and redeems interaction codes. A code is owner-keyed:
// each user has at most one live code, and issuing a new one supersedes the
// old association.
type CodeService struct {
	Dynamo       *DynamoService
	Interactions *InteractionService
	CodeLength   int
	TTL          time.Duration
}

// IssueCode generates a fresh code for the owner and persists it with an
// expiry window. Collisions between live codes are not deduplicated:
// redemption is an exact-match lookup, so a collision can only cross-wire two
// sessions into a still-valid two-party pair, an accepted rare failure.
func (s *CodeService) IssueCode(ctx context.Context, ownerID string) (*models.InteractionCode, error) {
	token, err := randomCode(s.CodeLength)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIssuanceFailed, err)
	}

	now := time.Now().UTC()
	code := models.InteractionCode{
		OwnerID:   ownerID,
		Code:      token,
		ExpiresAt: now.Add(s.TTL).Unix(),
		CreatedAt: now.Format(time.RFC3339),
	}

	if err := s.Dynamo.PutItem(ctx, models.InteractionCodesTable, code); err != nil {
		log.Printf("❌ Failed to issue code for %s: %v", ownerID, err)
		return nil, fmt.Errorf("%w: %v", ErrIssuanceFailed, err)
	}
	return &code, nil
}

// RedeemCode validates a peer-supplied code and, on success, commits the
// interaction pair. The commit and the code deletion are one transaction: the
// delete is conditioned on the stored code still matching, so a concurrent
// redemption (or a reissue by the owner) cancels the whole transaction and
// surfaces as ErrCodeNotFound. A consumed code can never authorize a second
// pair.
func (s *CodeService) RedeemCode(ctx context.Context, redeemerID, suppliedCode string) (*models.InteractionPair, error) {
	normalized := strings.ToUpper(strings.TrimSpace(suppliedCode))
	if normalized == "" {
		return nil, ErrCodeNotFound
	}

	code, err := s.findLiveCode(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if code.OwnerID == redeemerID {
		return nil, ErrSelfRedemption
	}

	tableName := models.InteractionCodesTable
	deleteCode := types.TransactWriteItem{
		Delete: &types.Delete{
			TableName: &tableName,
			Key: map[string]types.AttributeValue{
				"ownerId": &types.AttributeValueMemberS{Value: code.OwnerID},
			},
			// "code" is a DynamoDB reserved word
			ConditionExpression:      aws.String("#c = :code"),
			ExpressionAttributeNames: map[string]string{"#c": "code"},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":code": &types.AttributeValueMemberS{Value: normalized},
			},
		},
	}

	pair, err := s.Interactions.Commit(ctx, code.OwnerID, redeemerID, deleteCode)
	if err != nil {
		if errors.Is(err, ErrTokenConflict) {
			return nil, ErrCodeNotFound
		}
		return nil, err
	}
	return pair, nil
}

// findLiveCode resolves a normalized code to its owner via the code GSI and
// applies the lazy expiry check. TTL deletion in DynamoDB is eventual, so an
// expired-but-present code must fail exactly like a missing one.
func (s *CodeService) findLiveCode(ctx context.Context, normalized string) (*models.InteractionCode, error) {
	keyCondition := "#c = :code"
	expressionValues := map[string]types.AttributeValue{
		":code": &types.AttributeValueMemberS{Value: normalized},
	}
	expressionNames := map[string]string{"#c": "code"}

	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.InteractionCodesTable, models.CodeIndex, keyCondition, expressionValues, expressionNames, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to look up code: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrCodeNotFound
	}

	var code models.InteractionCode
	if err := attributevalue.UnmarshalMap(items[0], &code); err != nil {
		return nil, fmt.Errorf("failed to unmarshal code: %w", err)
	}
	if time.Now().UTC().Unix() >= code.ExpiresAt {
		return nil, ErrCodeNotFound
	}
	return &code, nil
}

func randomCode(length int) (string, error) {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			return "", err
		}
		b.WriteByte(codeAlphabet[n.Int64()])
	}
	return b.String(), nil
}
