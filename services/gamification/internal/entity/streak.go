package entity

import "time"

// DateLayout is how activity dates travel over the API and the queue.
const DateLayout = "2006-01-02"

type Streak struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	PoolID           *string   `json:"pool_id,omitempty"`
	Count            int       `json:"count"`
	LongestCount     int       `json:"longest_count"`
	LastActivityDate time.Time `json:"last_activity_date"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// StreakSnapshot is what callers render after recording activity.
type StreakSnapshot struct {
	UserID           string   `json:"user_id"`
	PoolID           *string  `json:"pool_id,omitempty"`
	Count            int      `json:"count"`
	LongestCount     int      `json:"longest_count"`
	LastActivityDate string   `json:"last_activity_date,omitempty"`
	Changed          bool     `json:"changed"`
	BadgesGranted    []string `json:"badges_granted,omitempty"`
}

func (s *Streak) Snapshot() *StreakSnapshot {
	return &StreakSnapshot{
		UserID:           s.UserID,
		PoolID:           s.PoolID,
		Count:            s.Count,
		LongestCount:     s.LongestCount,
		LastActivityDate: s.LastActivityDate.Format(DateLayout),
	}
}

// DateOf truncates t to its calendar day, keeping the day t has in its own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts whole calendar days from one date to another; negative when to is earlier.
func DaysBetween(from, to time.Time) int {
	return int(DateOf(to).Sub(DateOf(from)).Hours()) / 24
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOf(t), nil
}

// ScopeKey identifies a streak or badge scope; the global scope has no pool.
func ScopeKey(userID string, poolID *string) string {
	if poolID == nil {
		return userID + ":global"
	}
	return userID + ":" + *poolID
}
