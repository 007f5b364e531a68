package models

import "time"

type TournamentMatchStatus string

const (
	TournamentMatchPending    TournamentMatchStatus = "PENDING"
	TournamentMatchInProgress TournamentMatchStatus = "IN_PROGRESS"
	TournamentMatchCompleted  TournamentMatchStatus = "COMPLETED"
	TournamentMatchWalkover   TournamentMatchStatus = "WALKOVER"
)

// IsFinished is true for matches that already have a winner.
func (s TournamentMatchStatus) IsFinished() bool {
	return s == TournamentMatchCompleted || s == TournamentMatchWalkover
}

type TournamentMatch struct {
	ID                  int                   `json:"id" db:"id"`
	TournamentID        int                   `json:"tournament_id" db:"tournament_id"`
	Round               int                   `json:"round" db:"round"`
	OrderInRound        int                   `json:"order_in_round" db:"order_in_round"`
	Participant1ID      *int                  `json:"participant1_id,omitempty" db:"participant1_id"`
	Participant2ID      *int                  `json:"participant2_id,omitempty" db:"participant2_id"`
	WinnerParticipantID *int                  `json:"winner_participant_id,omitempty" db:"winner_participant_id"`
	Status              TournamentMatchStatus `json:"status" db:"status"`
	BattleData          *BattleSummary        `json:"battle_data,omitempty" db:"battle_data"`
	CreatedAt           time.Time             `json:"created_at" db:"created_at"`
	CompletedAt         *time.Time            `json:"completed_at,omitempty" db:"completed_at"`
}

func (m *TournamentMatch) HasParticipant(participantID int) bool {
	return (m.Participant1ID != nil && *m.Participant1ID == participantID) ||
		(m.Participant2ID != nil && *m.Participant2ID == participantID)
}

// BracketRound groups the matches of one round for display.
type BracketRound struct {
	Round    int                `json:"round"`
	Matches  []*TournamentMatch `json:"matches"`
	Complete bool               `json:"complete"`
}

type TournamentBracket struct {
	TournamentID int                      `json:"tournament_id"`
	Format       TournamentFormat         `json:"format"`
	Status       TournamentStatus         `json:"status"`
	CurrentRound int                      `json:"current_round"`
	TotalRounds  int                      `json:"total_rounds"`
	Rounds       []BracketRound           `json:"rounds"`
	Participants []*TournamentParticipant `json:"participants"`
}
