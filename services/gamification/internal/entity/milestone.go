package entity

import "time"

// MilestoneThresholds are checked in ascending order.
var MilestoneThresholds = []int{25, 50, 75, 100}

type Milestone struct {
	PoolID              string    `json:"pool_id"`
	Percentage          int       `json:"percentage"`
	ReachedAt           time.Time `json:"reached_at"`
	CelebrationUnlocked bool      `json:"celebration_unlocked"`
}

type PoolProgress struct {
	PoolID             string `json:"pool_id"`
	Name               string `json:"name"`
	GoalAmountCents    int64  `json:"goal_amount_cents"`
	CurrentAmountCents int64  `json:"current_amount_cents"`
}

// Reached reports whether current/goal >= threshold/100, without division.
func (p *PoolProgress) Reached(threshold int) bool {
	return p.CurrentAmountCents*100 >= int64(threshold)*p.GoalAmountCents
}

// Percent is the progress rounded half up to a whole percent. goal must be positive.
func (p *PoolProgress) Percent() int {
	current := p.CurrentAmountCents
	if current < 0 {
		current = 0
	}
	return int((current*200 + p.GoalAmountCents) / (2 * p.GoalAmountCents))
}

type MilestoneCheck struct {
	PoolID          string       `json:"pool_id"`
	ProgressPercent int          `json:"progress_percent"`
	NewMilestones   []*Milestone `json:"new_milestones"`
}

// Celebration is pushed to pool members when a milestone is first reached.
type Celebration struct {
	Type        string    `json:"type"`
	PoolID      string    `json:"pool_id"`
	Percentage  int       `json:"percentage"`
	TriggeredBy string    `json:"triggered_by,omitempty"`
	ReachedAt   time.Time `json:"reached_at"`
}

type ContributionResult struct {
	PoolStreak   *StreakSnapshot `json:"pool_streak"`
	GlobalStreak *StreakSnapshot `json:"global_streak"`
	Milestones   *MilestoneCheck `json:"milestones,omitempty"`
}
