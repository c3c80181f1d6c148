package services_test

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"peertrust_server/models"
)

// memDynamo is an in-memory stand-in for DynamoDB. It stores items per table,
// resolves queries by single-attribute equality (the only shape the services
// use), and honors condition expressions on updates and transactions so the
// token-consumption races behave like the real store: a failed condition
// cancels the whole transaction.
type memDynamo struct {
	mu     sync.Mutex
	tables map[string]map[string]map[string]types.AttributeValue
}

// keySchemas mirrors the table definitions the server expects.
var keySchemas = map[string][]string{
	models.UserProfilesTable:        {"userId"},
	models.InteractionCodesTable:    {"ownerId"},
	models.InteractionsTable:        {"userId", "interactionId"},
	models.PendingInteractionsTable: {"requestId"},
	models.FeedbackRequestsTable:    {"requestId"},
	models.FeedbackTable:            {"revieweeId", "feedbackId"},
}

func newMemDynamo() *memDynamo {
	return &memDynamo{tables: map[string]map[string]map[string]types.AttributeValue{}}
}

func (m *memDynamo) table(name string) map[string]map[string]types.AttributeValue {
	if m.tables[name] == nil {
		m.tables[name] = map[string]map[string]types.AttributeValue{}
	}
	return m.tables[name]
}

// items returns a snapshot of every item in a table.
func (m *memDynamo) items(name string) []map[string]types.AttributeValue {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []map[string]types.AttributeValue
	for _, item := range m.table(name) {
		out = append(out, copyItem(item))
	}
	return out
}

func (m *memDynamo) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.table(*params.TableName)[m.keyOf(*params.TableName, params.Key)]
	if !ok {
		return &dynamodb.GetItemOutput{}, nil
	}
	return &dynamodb.GetItemOutput{Item: copyItem(item)}, nil
}

func (m *memDynamo) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(*params.TableName, params.Item)
	return &dynamodb.PutItemOutput{}, nil
}

func (m *memDynamo) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	attr, want := parseEquality(*params.KeyConditionExpression, params.ExpressionAttributeNames, params.ExpressionAttributeValues)
	var filterAttr, filterWant string
	if params.FilterExpression != nil {
		filterAttr, filterWant = parseEquality(*params.FilterExpression, params.ExpressionAttributeNames, params.ExpressionAttributeValues)
	}

	var items []map[string]types.AttributeValue
	for _, item := range m.table(*params.TableName) {
		if stringAttr(item, attr) != want {
			continue
		}
		if filterAttr != "" && stringAttr(item, filterAttr) != filterWant {
			continue
		}
		items = append(items, copyItem(item))
	}
	return &dynamodb.QueryOutput{Items: items}, nil
}

func (m *memDynamo) UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tableName := *params.TableName
	item, ok := m.table(tableName)[m.keyOf(tableName, params.Key)]
	if params.ConditionExpression != nil {
		if !ok || !conditionHolds(item, *params.ConditionExpression, params.ExpressionAttributeNames, params.ExpressionAttributeValues) {
			return nil, &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
		}
	}
	if !ok {
		item = map[string]types.AttributeValue{}
		for k, v := range params.Key {
			item[k] = v
		}
		m.table(tableName)[m.keyOf(tableName, params.Key)] = item
	}
	applySet(item, *params.UpdateExpression, params.ExpressionAttributeNames, params.ExpressionAttributeValues)
	return &dynamodb.UpdateItemOutput{Attributes: copyItem(item)}, nil
}

func (m *memDynamo) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.table(*params.TableName), m.keyOf(*params.TableName, params.Key))
	return &dynamodb.DeleteItemOutput{}, nil
}

func (m *memDynamo) TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Validate every condition before applying anything: all or nothing.
	reasons := make([]types.CancellationReason, len(params.TransactItems))
	failed := false
	for i, op := range params.TransactItems {
		reasons[i] = types.CancellationReason{Code: aws.String("None")}
		var tableName string
		var key map[string]types.AttributeValue
		var cond *string
		var names map[string]string
		var values map[string]types.AttributeValue

		switch {
		case op.Put != nil:
			tableName, cond = *op.Put.TableName, op.Put.ConditionExpression
			names, values = op.Put.ExpressionAttributeNames, op.Put.ExpressionAttributeValues
			key = extractKey(tableName, op.Put.Item)
		case op.Delete != nil:
			tableName, key, cond = *op.Delete.TableName, op.Delete.Key, op.Delete.ConditionExpression
			names, values = op.Delete.ExpressionAttributeNames, op.Delete.ExpressionAttributeValues
		case op.Update != nil:
			tableName, key, cond = *op.Update.TableName, op.Update.Key, op.Update.ConditionExpression
			names, values = op.Update.ExpressionAttributeNames, op.Update.ExpressionAttributeValues
		}

		if cond == nil {
			continue
		}
		item, ok := m.table(tableName)[m.keyOf(tableName, key)]
		if !ok || !conditionHolds(item, *cond, names, values) {
			reasons[i] = types.CancellationReason{Code: aws.String("ConditionalCheckFailed")}
			failed = true
		}
	}
	if failed {
		return nil, &types.TransactionCanceledException{
			Message:             aws.String("Transaction cancelled"),
			CancellationReasons: reasons,
		}
	}

	for _, op := range params.TransactItems {
		switch {
		case op.Put != nil:
			m.put(*op.Put.TableName, op.Put.Item)
		case op.Delete != nil:
			delete(m.table(*op.Delete.TableName), m.keyOf(*op.Delete.TableName, op.Delete.Key))
		case op.Update != nil:
			tableName := *op.Update.TableName
			item := m.table(tableName)[m.keyOf(tableName, op.Update.Key)]
			applySet(item, *op.Update.UpdateExpression, op.Update.ExpressionAttributeNames, op.Update.ExpressionAttributeValues)
		}
	}
	return &dynamodb.TransactWriteItemsOutput{}, nil
}

func (m *memDynamo) put(tableName string, item map[string]types.AttributeValue) {
	m.table(tableName)[m.keyOf(tableName, extractKey(tableName, item))] = copyItem(item)
}

func (m *memDynamo) keyOf(tableName string, key map[string]types.AttributeValue) string {
	parts := make([]string, 0, 2)
	for _, attr := range keySchemas[tableName] {
		parts = append(parts, stringAttr(key, attr))
	}
	return strings.Join(parts, "|")
}

func extractKey(tableName string, item map[string]types.AttributeValue) map[string]types.AttributeValue {
	key := map[string]types.AttributeValue{}
	for _, attr := range keySchemas[tableName] {
		key[attr] = item[attr]
	}
	return key
}

func copyItem(item map[string]types.AttributeValue) map[string]types.AttributeValue {
	out := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		out[k] = v
	}
	return out
}

func stringAttr(item map[string]types.AttributeValue, attr string) string {
	if s, ok := item[attr].(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

// parseEquality handles the single "<attr> = :value" shape used throughout
// the services, resolving #aliases through the names map.
func parseEquality(expr string, names map[string]string, values map[string]types.AttributeValue) (string, string) {
	parts := strings.SplitN(expr, "=", 2)
	attr := strings.TrimSpace(parts[0])
	if alias, ok := names[attr]; ok {
		attr = alias
	}
	valueRef := strings.TrimSpace(parts[1])
	if s, ok := values[valueRef].(*types.AttributeValueMemberS); ok {
		return attr, s.Value
	}
	return attr, ""
}

func conditionHolds(item map[string]types.AttributeValue, expr string, names map[string]string, values map[string]types.AttributeValue) bool {
	attr, want := parseEquality(expr, names, values)
	return stringAttr(item, attr) == want
}

// applySet handles "SET a = :x, #b = :y" update expressions.
func applySet(item map[string]types.AttributeValue, expr string, names map[string]string, values map[string]types.AttributeValue) {
	expr = strings.TrimPrefix(strings.TrimSpace(expr), "SET ")
	for _, assignment := range strings.Split(expr, ",") {
		parts := strings.SplitN(assignment, "=", 2)
		attr := strings.TrimSpace(parts[0])
		if alias, ok := names[attr]; ok {
			attr = alias
		}
		item[attr] = values[strings.TrimSpace(parts[1])]
	}
}

// hookedDynamo wraps memDynamo and runs a one-shot callback right before the
// next transaction is applied — a concurrent session squeezing in between a
// caller's read and its commit.
type hookedDynamo struct {
	*memDynamo
	beforeTransact func()
}

func (h *hookedDynamo) TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	if h.beforeTransact != nil {
		hook := h.beforeTransact
		h.beforeTransact = nil
		hook()
	}
	return h.memDynamo.TransactWriteItems(ctx, params, optFns...)
}

// flakyDynamo wraps memDynamo and fails the next N transactions with a
// non-conditional store error, for commit-failure tests.
type flakyDynamo struct {
	*memDynamo
	failures int
}

var errStoreDown = errors.New("store unavailable")

func (f *flakyDynamo) TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	if f.failures > 0 {
		f.failures--
		return nil, errStoreDown
	}
	return f.memDynamo.TransactWriteItems(ctx, params, optFns...)
}
