package models

import "time"

const DefaultRating = 1200

type ArenaRating struct {
	UserID        int       `json:"user_id" db:"user_id"`
	Username      string    `json:"username,omitempty" db:"-"`
	Rating        int       `json:"rating" db:"rating"`
	Wins          int       `json:"wins" db:"wins"`
	Losses        int       `json:"losses" db:"losses"`
	Draws         int       `json:"draws" db:"draws"`
	CurrentStreak int       `json:"current_streak" db:"current_streak"`
	BestStreak    int       `json:"best_streak" db:"best_streak"`
	TotalMatches  int       `json:"total_matches" db:"total_matches"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// NewArenaRating is the record a user starts with before any match.
func NewArenaRating(userID int) *ArenaRating {
	return &ArenaRating{UserID: userID, Rating: DefaultRating}
}

func (r *ArenaRating) WinRate() float64 {
	if r.TotalMatches == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.TotalMatches)
}

type UserArenaStats struct {
	Rating        *ArenaRating  `json:"rating"`
	WinRate       float64       `json:"win_rate"`
	RecentMatches []*ArenaMatch `json:"recent_matches"`
}
