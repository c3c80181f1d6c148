package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peertrust_server/models"
	"peertrust_server/services"
)

func validInput(revieweeID string) services.FeedbackInput {
	return services.FeedbackInput{
		RevieweeID:          revieweeID,
		Criteria:            models.FeedbackCriteria{Collaboration: 5, Communication: 4, Execution: 3},
		Strengths:           "Great collaborator, always unblocks others.",
		AreasForImprovement: "Could communicate progress earlier.",
	}
}

func TestSubmitFeedbackRequiresConfirmedInteraction(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	_, err := env.feedback.SubmitFeedback(ctx, "u1", validInput("u2"))
	assert.ErrorIs(t, err, services.ErrNotAuthorized)

	_, err = env.interactions.Commit(ctx, "u1", "u2")
	require.NoError(t, err)

	feedback, err := env.feedback.SubmitFeedback(ctx, "u1", validInput("u2"))
	require.NoError(t, err)
	assert.Equal(t, "u1", feedback.ReviewerID)
	assert.Equal(t, "u2", feedback.RevieweeID)
	assert.InDelta(t, 4.0, feedback.Rating, 0.001)
	assert.Equal(t, models.VisibilityPrivate, feedback.Visibility)
}

func TestSubmitFeedbackRejectsSelfReview(t *testing.T) {
	env := newEnv(t)

	_, err := env.feedback.SubmitFeedback(context.Background(), "u1", validInput("u1"))
	assert.ErrorIs(t, err, services.ErrInvalidPeer)
}

func TestSubmitFeedbackRejectsOutOfRangeRatings(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	_, err := env.interactions.Commit(ctx, "u1", "u2")
	require.NoError(t, err)

	for _, criteria := range []models.FeedbackCriteria{
		{Collaboration: 0, Communication: 4, Execution: 3},
		{Collaboration: 5, Communication: 6, Execution: 3},
		{},
	} {
		input := validInput("u2")
		input.Criteria = criteria
		_, err := env.feedback.SubmitFeedback(ctx, "u1", input)
		assert.Error(t, err)
	}
	assert.Empty(t, env.store.items(models.FeedbackTable))
}

func TestSubmitFeedbackCompletesRequest(t *testing.T) {
	env := newEnv(t)
	env.addProfile(t, "u2")
	ctx := context.Background()

	// u1 asks u2 for feedback about u1.
	request, err := env.requests.CreateRequest(ctx, "u1", "u2")
	require.NoError(t, err)

	input := validInput("u1")
	input.RequestID = request.RequestID
	feedback, err := env.feedback.SubmitFeedback(ctx, "u2", input)
	require.NoError(t, err)
	assert.Equal(t, request.RequestID, feedback.RequestID)

	// Completion and the feedback write are one unit.
	stored, err := env.requests.GetRequest(ctx, request.RequestID)
	require.NoError(t, err)
	assert.Equal(t, models.FeedbackRequestStatusCompleted, stored.Status)

	received, err := env.feedback.GetFeedbackForUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, "u2", received[0].ReviewerID)
}

func TestSubmitFeedbackRequestAuthorization(t *testing.T) {
	env := newEnv(t)
	env.addProfile(t, "u2")
	ctx := context.Background()

	request, err := env.requests.CreateRequest(ctx, "u1", "u2")
	require.NoError(t, err)

	// Only the requestee may resolve the request, and only about the requester.
	input := validInput("u1")
	input.RequestID = request.RequestID
	_, err = env.feedback.SubmitFeedback(ctx, "u3", input)
	assert.ErrorIs(t, err, services.ErrNotAuthorized)

	wrongSubject := validInput("u3")
	wrongSubject.RequestID = request.RequestID
	_, err = env.feedback.SubmitFeedback(ctx, "u2", wrongSubject)
	assert.ErrorIs(t, err, services.ErrNotAuthorized)

	_, err = env.feedback.SubmitFeedback(ctx, "u2", input)
	require.NoError(t, err)

	// A resolved request cannot gate a second submission.
	_, err = env.feedback.SubmitFeedback(ctx, "u2", input)
	assert.ErrorIs(t, err, services.ErrAlreadyResolved)

	_, err = env.feedback.SubmitFeedback(ctx, "u2", services.FeedbackInput{
		RevieweeID: "u1",
		RequestID:  "nonexistent",
		Criteria:   models.FeedbackCriteria{Collaboration: 3, Communication: 3, Execution: 3},
	})
	assert.ErrorIs(t, err, services.ErrAlreadyResolved)
}

func TestSubmitFeedbackDeclinedRequestStaysDeclined(t *testing.T) {
	env := newEnv(t)
	env.addProfile(t, "u2")
	ctx := context.Background()

	request, err := env.requests.CreateRequest(ctx, "u1", "u2")
	require.NoError(t, err)
	require.NoError(t, env.requests.DeclineRequest(ctx, request.RequestID, "u2"))

	input := validInput("u1")
	input.RequestID = request.RequestID
	_, err = env.feedback.SubmitFeedback(ctx, "u2", input)
	assert.ErrorIs(t, err, services.ErrAlreadyResolved)

	stored, err := env.requests.GetRequest(ctx, request.RequestID)
	require.NoError(t, err)
	assert.Equal(t, models.FeedbackRequestStatusDeclined, stored.Status)
	assert.Empty(t, env.store.items(models.FeedbackTable))
}

func TestSubmitFeedbackStoreFailureLeavesRequestPending(t *testing.T) {
	store := newMemDynamo()
	env := newTestEnv(t, &flakyDynamo{memDynamo: store, failures: 1}, store)
	env.addProfile(t, "u2")
	ctx := context.Background()

	request, err := env.requests.CreateRequest(ctx, "u1", "u2")
	require.NoError(t, err)

	input := validInput("u1")
	input.RequestID = request.RequestID
	_, err = env.feedback.SubmitFeedback(ctx, "u2", input)
	require.Error(t, err)

	// Neither side applied: no feedback, request still pending.
	assert.Empty(t, store.items(models.FeedbackTable))
	stored, err := env.requests.GetRequest(ctx, request.RequestID)
	require.NoError(t, err)
	assert.Equal(t, models.FeedbackRequestStatusPending, stored.Status)
}

func TestFeedbackSummaryAggregates(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	empty, err := env.feedback.Summarize(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Count)
	assert.Zero(t, empty.AverageRating)

	_, err = env.interactions.Commit(ctx, "u2", "u1")
	require.NoError(t, err)
	_, err = env.interactions.Commit(ctx, "u3", "u1")
	require.NoError(t, err)

	first := validInput("u1")
	first.Criteria = models.FeedbackCriteria{Collaboration: 5, Communication: 5, Execution: 5}
	_, err = env.feedback.SubmitFeedback(ctx, "u2", first)
	require.NoError(t, err)

	second := validInput("u1")
	second.Criteria = models.FeedbackCriteria{Collaboration: 3, Communication: 1, Execution: 2}
	_, err = env.feedback.SubmitFeedback(ctx, "u3", second)
	require.NoError(t, err)

	summary, err := env.feedback.Summarize(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Count)
	assert.InDelta(t, 3.5, summary.AverageRating, 0.01)
	assert.InDelta(t, 4.0, summary.AverageCollaboration, 0.01)
	assert.InDelta(t, 3.0, summary.AverageCommunication, 0.01)
	assert.InDelta(t, 3.5, summary.AverageExecution, 0.01)
}
