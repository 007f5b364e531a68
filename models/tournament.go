package models

import "time"

// TournamentStatus mirrors the CHECK constraint on tournaments.status.
type TournamentStatus string

const (
	TournamentRegistration TournamentStatus = "REGISTRATION"
	TournamentInProgress   TournamentStatus = "IN_PROGRESS"
	TournamentCompleted    TournamentStatus = "COMPLETED"
	TournamentCancelled    TournamentStatus = "CANCELLED"
)

type TournamentFormat string

const (
	FormatSingleElimination TournamentFormat = "SINGLE_ELIMINATION"
	FormatDoubleElimination TournamentFormat = "DOUBLE_ELIMINATION"
	FormatRoundRobin        TournamentFormat = "ROUND_ROBIN"
)

func (f TournamentFormat) IsValid() bool {
	switch f {
	case FormatSingleElimination, FormatDoubleElimination, FormatRoundRobin:
		return true
	}
	return false
}

// Prizes are paid in credits. Only First is distributed today.
type Prizes struct {
	First         int `json:"first"`
	Second        int `json:"second"`
	Third         int `json:"third"`
	Participation int `json:"participation"`
}

type Tournament struct {
	ID                  int              `json:"id" db:"id"`
	Name                string           `json:"name" db:"name"`
	Slug                string           `json:"slug" db:"slug"`
	Description         *string          `json:"description,omitempty" db:"description"`
	Format              TournamentFormat `json:"format" db:"format"`
	Status              TournamentStatus `json:"status" db:"status"`
	OrganizerID         int              `json:"organizer_id" db:"organizer_id"`
	MaxParticipants     int              `json:"max_participants" db:"max_participants"`
	EntryFee            int              `json:"entry_fee" db:"entry_fee"`
	Prizes              Prizes           `json:"prizes" db:"prizes"`
	CurrentRound        int              `json:"current_round" db:"current_round"`
	TotalRounds         int              `json:"total_rounds" db:"total_rounds"`
	WinnerParticipantID *int             `json:"winner_participant_id,omitempty" db:"winner_participant_id"`
	ChampionReward      *TaggedReward    `json:"champion_reward,omitempty" db:"champion_reward"`
	StartsAt            *time.Time       `json:"starts_at,omitempty" db:"starts_at"`
	CreatedAt           time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at" db:"updated_at"`

	ParticipantCount int                      `json:"participant_count" db:"-"`
	Participants     []*TournamentParticipant `json:"participants,omitempty" db:"-"`
}

type TournamentParticipant struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	UserID       int       `json:"user_id" db:"user_id"`
	Username     string    `json:"username" db:"-"`
	Seed         *int      `json:"seed,omitempty" db:"seed"`
	FeePaid      int       `json:"fee_paid" db:"fee_paid"`
	Eliminated   bool      `json:"eliminated" db:"eliminated"`
	JoinedAt     time.Time `json:"joined_at" db:"joined_at"`
}
