package entity

import "time"

const (
	BadgeTypeStreak    = "streak"
	BadgeTypeMilestone = "milestone"
)

// StreakBadges maps an exact streak length to the badge it unlocks.
var StreakBadges = map[int]string{
	7:  "Week Warrior",
	30: "Streak Master",
}

var MilestoneBadges = map[int]string{
	25:  "Quarter Way There",
	50:  "Halfway Hero",
	75:  "Almost There",
	100: "Goal Crusher",
}

type Badge struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	BadgeType string    `json:"badge_type"`
	BadgeName string    `json:"badge_name"`
	PoolID    *string   `json:"pool_id,omitempty"`
	EarnedAt  time.Time `json:"earned_at"`
}

type AwardResult struct {
	Granted bool   `json:"granted"`
	Badge   *Badge `json:"badge,omitempty"`
}
