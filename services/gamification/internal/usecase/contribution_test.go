package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"pool-fund/pkg/logger"
	"pool-fund/pkg/queue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContributions(t *testing.T) (*memoryStore, ContributionUseCase) {
	t.Helper()
	store := newMemoryStore()
	log := logger.New()
	badges := NewBadgeUseCase(store, nil, log)
	streaks := NewStreakUseCase(store, badges, log)
	milestones := NewMilestoneUseCase(store, badges, nil, nil, log)
	return store, NewContributionUseCase(streaks, milestones, log)
}

func TestCompleteContribution(t *testing.T) {
	store, uc := newTestContributions(t)
	store.setPool("pool-1", 10000, 5000)

	result, err := uc.CompleteContribution(context.Background(), "user-1", "pool-1", day(1))
	require.NoError(t, err)

	assert.Equal(t, 1, result.PoolStreak.Count)
	assert.Equal(t, 1, result.GlobalStreak.Count)
	require.NotNil(t, result.Milestones)
	assert.Equal(t, 50, result.Milestones.ProgressPercent)
	assert.Equal(t, []int{25, 50}, percentages(result.Milestones.NewMilestones))
}

func TestCompleteContribution_PoolWithoutGoalStillCountsStreak(t *testing.T) {
	store, uc := newTestContributions(t)
	store.setPool("pool-1", 0, 5000)

	result, err := uc.CompleteContribution(context.Background(), "user-1", "pool-1", day(1))
	require.NoError(t, err)
	assert.Equal(t, 1, result.PoolStreak.Count)
	assert.Nil(t, result.Milestones)
}

func TestCompleteContribution_Validation(t *testing.T) {
	_, uc := newTestContributions(t)

	_, err := uc.CompleteContribution(context.Background(), "", "pool-1", day(1))
	assert.ErrorIs(t, err, ErrInvalidContribution)
}

func TestHandleCaptured(t *testing.T) {
	store, uc := newTestContributions(t)
	store.setPool("pool-1", 1000, 1000)

	body, err := json.Marshal(queue.ContributionCaptured{
		TransactionID: "tx-1",
		UserID:        "user-1",
		PoolID:        "pool-1",
		AmountCents:   1000,
		CapturedAt:    time.Date(2026, 4, 2, 15, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.NoError(t, uc.HandleCaptured(body))

	pool := "pool-1"
	streak, err := store.GetStreak(context.Background(), "user-1", &pool)
	require.NoError(t, err)
	assert.Equal(t, 1, streak.Count)
	assert.Equal(t, time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC), streak.LastActivityDate)

	has, err := store.HasBadge(context.Background(), "user-1", "milestone", "Goal Crusher", &pool)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestHandleCaptured_DropsBadMessages(t *testing.T) {
	_, uc := newTestContributions(t)

	assert.NoError(t, uc.HandleCaptured([]byte(`{"transaction_id":"tx-2"}`)))
	assert.NoError(t, uc.HandleCaptured([]byte(`[1,2,3]`)))
}
