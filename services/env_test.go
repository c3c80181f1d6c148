package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/stretchr/testify/require"

	"peertrust_server/models"
	"peertrust_server/services"
)

// testEnv wires the full service graph over an in-memory store.
type testEnv struct {
	store        *memDynamo
	profiles     *services.UserProfileService
	interactions *services.InteractionService
	codes        *services.CodeService
	pending      *services.PendingInteractionService
	requests     *services.FeedbackRequestService
	feedback     *services.FeedbackService
}

func newTestEnv(t *testing.T, client services.DynamoDBAPI, store *memDynamo) *testEnv {
	t.Helper()
	dynamo := &services.DynamoService{Client: client}
	profiles := &services.UserProfileService{Dynamo: dynamo}
	interactions := &services.InteractionService{Dynamo: dynamo}
	requests := &services.FeedbackRequestService{Dynamo: dynamo, Profiles: profiles}
	return &testEnv{
		store:        store,
		profiles:     profiles,
		interactions: interactions,
		codes: &services.CodeService{
			Dynamo:       dynamo,
			Interactions: interactions,
			CodeLength:   6,
			TTL:          15 * time.Minute,
		},
		pending: &services.PendingInteractionService{
			Dynamo:       dynamo,
			Interactions: interactions,
			Profiles:     profiles,
		},
		requests: requests,
		feedback: &services.FeedbackService{
			Dynamo:       dynamo,
			Interactions: interactions,
			Requests:     requests,
		},
	}
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	store := newMemDynamo()
	return newTestEnv(t, store, store)
}

func (e *testEnv) addProfile(t *testing.T, userID string) {
	t.Helper()
	_, err := e.profiles.AddUserProfile(context.Background(), models.UserProfile{
		UserID:  userID,
		EmailID: userID + "@example.com",
	})
	require.NoError(t, err)
}

// storedInteractions unmarshals every interaction currently in the store.
func (e *testEnv) storedInteractions(t *testing.T) []models.Interaction {
	t.Helper()
	var interactions []models.Interaction
	for _, item := range e.store.items(models.InteractionsTable) {
		var interaction models.Interaction
		require.NoError(t, attributevalue.UnmarshalMap(item, &interaction))
		interactions = append(interactions, interaction)
	}
	return interactions
}

// requirePair asserts the symmetric-pair invariant: exactly two interaction
// documents, one under each participant, referencing each other with the same
// timestamp.
func requirePair(t *testing.T, interactions []models.Interaction, userA, userB string) {
	t.Helper()
	require.Len(t, interactions, 2)

	byOwner := map[string]models.Interaction{}
	for _, i := range interactions {
		require.Equal(t, i.UserID, i.Participant1ID)
		byOwner[i.UserID] = i
	}
	require.Contains(t, byOwner, userA)
	require.Contains(t, byOwner, userB)
	require.Equal(t, userB, byOwner[userA].Participant2ID)
	require.Equal(t, userA, byOwner[userB].Participant2ID)
	require.Equal(t, byOwner[userA].Timestamp, byOwner[userB].Timestamp)
	require.NotEqual(t, byOwner[userA].InteractionID, byOwner[userB].InteractionID)
}
