package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peertrust_server/services"
)

func TestCommitRejectsSelfInteraction(t *testing.T) {
	env := newEnv(t)

	_, err := env.interactions.Commit(context.Background(), "u1", "u1")
	assert.ErrorIs(t, err, services.ErrInvalidPeer)
	assert.Empty(t, env.storedInteractions(t))
}

func TestCommitWritesSymmetricPair(t *testing.T) {
	env := newEnv(t)

	pair, err := env.interactions.Commit(context.Background(), "u1", "u2")
	require.NoError(t, err)

	assert.Equal(t, pair.Initiator.Timestamp, pair.Peer.Timestamp)
	requirePair(t, env.storedInteractions(t), "u1", "u2")
}

func TestGetInteractionsForUser(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	_, err := env.interactions.Commit(ctx, "u1", "u2")
	require.NoError(t, err)
	_, err = env.interactions.Commit(ctx, "u1", "u3")
	require.NoError(t, err)

	mine, err := env.interactions.GetInteractionsForUser(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	theirs, err := env.interactions.GetInteractionsForUser(ctx, "u2")
	require.NoError(t, err)
	assert.Len(t, theirs, 1)
	assert.Equal(t, "u1", theirs[0].Participant2ID)
}

func TestHasConfirmedInteraction(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	confirmed, err := env.interactions.HasConfirmedInteraction(ctx, "u1", "u2")
	require.NoError(t, err)
	assert.False(t, confirmed)

	_, err = env.interactions.Commit(ctx, "u1", "u2")
	require.NoError(t, err)

	// The pair invariant makes the check symmetric.
	for _, pair := range [][2]string{{"u1", "u2"}, {"u2", "u1"}} {
		confirmed, err = env.interactions.HasConfirmedInteraction(ctx, pair[0], pair[1])
		require.NoError(t, err)
		assert.True(t, confirmed)
	}

	confirmed, err = env.interactions.HasConfirmedInteraction(ctx, "u1", "u3")
	require.NoError(t, err)
	assert.False(t, confirmed)
}
