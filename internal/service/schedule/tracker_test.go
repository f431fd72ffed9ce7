package schedule

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_StaleCommitIsDiscarded(t *testing.T) {
	tracker := NewTracker()
	key := uuid.New()

	ctx1, first := tracker.Begin(context.Background(), key)
	defer first.Release()

	_, second := tracker.Begin(context.Background(), key)
	defer second.Release()

	assert.ErrorIs(t, ctx1.Err(), context.Canceled)
	assert.True(t, first.Superseded())
	assert.False(t, second.Superseded())

	newer := &Result{QuoteID: key}
	require.NoError(t, second.Commit(newer))

	assert.ErrorIs(t, first.Commit(&Result{QuoteID: key}), ErrSuperseded)

	latest, ok := tracker.Latest(key)
	require.True(t, ok)
	assert.Same(t, newer, latest)
}

func TestTracker_KeysAreIndependent(t *testing.T) {
	tracker := NewTracker()

	ctxA, a := tracker.Begin(context.Background(), uuid.New())
	defer a.Release()
	_, b := tracker.Begin(context.Background(), uuid.New())
	defer b.Release()

	assert.NoError(t, ctxA.Err())
	assert.False(t, a.Superseded())
	assert.NoError(t, a.Commit(&Result{}))
}

func TestTracker_ReleaseCancelsContext(t *testing.T) {
	tracker := NewTracker()

	ctx, ticket := tracker.Begin(context.Background(), uuid.New())
	ticket.Release()

	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func commit(t *testing.T, tracker *Tracker, key uuid.UUID) {
	t.Helper()

	_, ticket := tracker.Begin(context.Background(), key)
	defer ticket.Release()
	require.NoError(t, ticket.Commit(&Result{QuoteID: key}))
}

func TestTracker_LatestIsBounded(t *testing.T) {
	tracker := NewTrackerWithLimit(2)
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	commit(t, tracker, a)
	commit(t, tracker, b)
	// повторный расчёт a делает его самым свежим
	commit(t, tracker, a)
	commit(t, tracker, c)

	_, ok := tracker.Latest(b)
	assert.False(t, ok, "oldest committed quote is evicted")

	for _, key := range []uuid.UUID{a, c} {
		res, ok := tracker.Latest(key)
		require.True(t, ok)
		assert.Equal(t, key, res.QuoteID)
	}
	assert.Len(t, tracker.order, 2)
}
