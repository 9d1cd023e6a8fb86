package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"pool-fund/services/gamification/internal/entity"
	"pool-fund/services/gamification/internal/repo/persistent"

	"github.com/google/uuid"
)

// memoryStore holds streaks, badges and milestones with the same atomicity
// guarantees the postgres repositories give.
type memoryStore struct {
	mu         sync.Mutex
	scopeLocks map[string]*sync.Mutex
	streaks    map[string]*entity.Streak
	badges     map[string]*entity.Badge
	milestones map[string]*entity.Milestone
	pools      map[string]*entity.PoolProgress
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		scopeLocks: make(map[string]*sync.Mutex),
		streaks:    make(map[string]*entity.Streak),
		badges:     make(map[string]*entity.Badge),
		milestones: make(map[string]*entity.Milestone),
		pools:      make(map[string]*entity.PoolProgress),
	}
}

func (s *memoryStore) setPool(id string, goal, current int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pools[id] = &entity.PoolProgress{PoolID: id, GoalAmountCents: goal, CurrentAmountCents: current}
}

func (s *memoryStore) badgeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.badges)
}

func (s *memoryStore) scopeLock(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.scopeLocks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.scopeLocks[key] = lock
	}
	return lock
}

func (s *memoryStore) UpdateStreak(ctx context.Context, userID string, poolID *string, fn persistent.StreakMutation) (*entity.Streak, bool, error) {
	key := entity.ScopeKey(userID, poolID)
	lock := s.scopeLock(key)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	var current *entity.Streak
	if stored, ok := s.streaks[key]; ok {
		cp := *stored
		current = &cp
	}
	s.mu.Unlock()

	next, changed, err := fn(current)
	if err != nil {
		return nil, false, err
	}
	if !changed {
		return current, false, nil
	}

	cp := *next
	if cp.ID == "" {
		cp.ID = uuid.New().String()
	}
	cp.UpdatedAt = time.Now()
	s.mu.Lock()
	s.streaks[key] = &cp
	s.mu.Unlock()
	out := cp
	return &out, true, nil
}

func (s *memoryStore) GetStreak(ctx context.Context, userID string, poolID *string) (*entity.Streak, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.streaks[entity.ScopeKey(userID, poolID)]
	if !ok {
		return nil, persistent.ErrNotFound
	}
	cp := *stored
	return &cp, nil
}

func (s *memoryStore) ListStreaks(ctx context.Context, userID string) ([]*entity.Streak, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.Streak
	for _, streak := range s.streaks {
		if streak.UserID == userID {
			cp := *streak
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PoolID == nil && out[j].PoolID != nil })
	return out, nil
}

func badgeKey(userID, badgeType, badgeName string, poolID *string) string {
	return entity.ScopeKey(userID, poolID) + ":" + badgeType + ":" + badgeName
}

func (s *memoryStore) CreateBadgeIfAbsent(ctx context.Context, badge *entity.Badge) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := badgeKey(badge.UserID, badge.BadgeType, badge.BadgeName, badge.PoolID)
	if _, ok := s.badges[key]; ok {
		return false, nil
	}
	badge.ID = uuid.New().String()
	badge.EarnedAt = time.Now().UTC()
	cp := *badge
	s.badges[key] = &cp
	return true, nil
}

func (s *memoryStore) HasBadge(ctx context.Context, userID, badgeType, badgeName string, poolID *string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.badges[badgeKey(userID, badgeType, badgeName, poolID)]
	return ok, nil
}

func (s *memoryStore) ListBadges(ctx context.Context, userID string) ([]*entity.Badge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.Badge
	for _, badge := range s.badges {
		if badge.UserID == userID {
			cp := *badge
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BadgeName < out[j].BadgeName })
	return out, nil
}

func (s *memoryStore) GetPoolProgress(ctx context.Context, poolID string) (*entity.PoolProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pool, ok := s.pools[poolID]
	if !ok {
		return nil, persistent.ErrNotFound
	}
	cp := *pool
	return &cp, nil
}

func (s *memoryStore) CreateMilestoneIfAbsent(ctx context.Context, milestone *entity.Milestone, onCreate func() error) (bool, error) {
	key := fmt.Sprintf("%s:%d", milestone.PoolID, milestone.Percentage)
	s.mu.Lock()
	if _, ok := s.milestones[key]; ok {
		s.mu.Unlock()
		return false, nil
	}
	milestone.ReachedAt = time.Now().UTC()
	cp := *milestone
	s.milestones[key] = &cp
	s.mu.Unlock()

	if onCreate != nil {
		if err := onCreate(); err != nil {
			s.mu.Lock()
			delete(s.milestones, key)
			s.mu.Unlock()
			return false, err
		}
	}
	return true, nil
}

func (s *memoryStore) ListMilestones(ctx context.Context, poolID string) ([]*entity.Milestone, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.Milestone
	for _, milestone := range s.milestones {
		if milestone.PoolID == poolID {
			cp := *milestone
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Percentage < out[j].Percentage })
	return out, nil
}

// flakyBadges fails the next failures badge inserts, then behaves like store.
type flakyBadges struct {
	*memoryStore
	mu       sync.Mutex
	failures int
}

func (f *flakyBadges) CreateBadgeIfAbsent(ctx context.Context, badge *entity.Badge) (bool, error) {
	f.mu.Lock()
	if f.failures > 0 {
		f.failures--
		f.mu.Unlock()
		return false, errors.New("connection reset")
	}
	f.mu.Unlock()
	return f.memoryStore.CreateBadgeIfAbsent(ctx, badge)
}

var (
	_ persistent.StreakRepository    = (*memoryStore)(nil)
	_ persistent.BadgeRepository     = (*memoryStore)(nil)
	_ persistent.MilestoneRepository = (*memoryStore)(nil)
	_ persistent.BadgeRepository     = (*flakyBadges)(nil)
)

type recordingPublisher struct {
	mu       sync.Mutex
	messages map[string][]interface{}
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{messages: make(map[string][]interface{})}
}

func (p *recordingPublisher) Publish(routingKey string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages[routingKey] = append(p.messages[routingKey], payload)
	return nil
}

func (p *recordingPublisher) count(routingKey string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.messages[routingKey])
}

type recordingBroadcaster struct {
	mu       sync.Mutex
	channels []string
}

func (b *recordingBroadcaster) Broadcast(ctx context.Context, channel string, message interface{}) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.channels = append(b.channels, channel)
	return nil
}
