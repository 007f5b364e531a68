package models

import "time"

type MatchMode string

const (
	ModeRanked     MatchMode = "RANKED"
	ModeCasual     MatchMode = "CASUAL"
	ModeTournament MatchMode = "TOURNAMENT"
)

type ArenaMatchStatus string

const (
	ArenaMatchWaiting    ArenaMatchStatus = "WAITING"
	ArenaMatchInProgress ArenaMatchStatus = "IN_PROGRESS"
	ArenaMatchCompleted  ArenaMatchStatus = "COMPLETED"
	ArenaMatchCancelled  ArenaMatchStatus = "CANCELLED"
)

type ArenaMatch struct {
	ID          int              `json:"id" db:"id"`
	Player1ID   int              `json:"player1_id" db:"player1_id"`
	Player2ID   *int             `json:"player2_id,omitempty" db:"player2_id"`
	Mode        MatchMode        `json:"mode" db:"mode"`
	Status      ArenaMatchStatus `json:"status" db:"status"`
	BattleData  *BattleSummary   `json:"battle_data,omitempty" db:"battle_data"`
	WinnerID    *int             `json:"winner_id,omitempty" db:"winner_id"`
	Rewards     *MatchRewards    `json:"rewards,omitempty" db:"rewards"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
	StartedAt   *time.Time       `json:"started_at,omitempty" db:"started_at"`
	CompletedAt *time.Time       `json:"completed_at,omitempty" db:"completed_at"`
}

// HasPlayer reports whether userID is one of the two sides.
func (m *ArenaMatch) HasPlayer(userID int) bool {
	if m.Player1ID == userID {
		return true
	}
	return m.Player2ID != nil && *m.Player2ID == userID
}

// Opponent returns the other side for userID, or 0 while nobody has joined.
func (m *ArenaMatch) Opponent(userID int) int {
	if m.Player1ID == userID {
		if m.Player2ID == nil {
			return 0
		}
		return *m.Player2ID
	}
	return m.Player1ID
}

type PlayerRewards struct {
	UserID        int `json:"user_id"`
	Credits       int `json:"credits"`
	Gems          int `json:"gems,omitempty"`
	RankingPoints int `json:"ranking_points"`
	Experience    int `json:"experience"`
}

// Currencies lists the positive balance changes as tagged rewards.
func (p PlayerRewards) Currencies() []CurrencyReward {
	var out []CurrencyReward
	if p.Credits > 0 {
		out = append(out, CurrencyReward{Currency: CurrencyCredits, Amount: p.Credits})
	}
	if p.Gems > 0 {
		out = append(out, CurrencyReward{Currency: CurrencyGems, Amount: p.Gems})
	}
	if p.Experience > 0 {
		out = append(out, CurrencyReward{Currency: CurrencyExperience, Amount: p.Experience})
	}
	return out
}

type MatchRewards struct {
	Winner PlayerRewards `json:"winner"`
	Loser  PlayerRewards `json:"loser"`
	Draw   bool          `json:"draw,omitempty"`
}
