package models

import "time"

// UserProfile is what the battle core reads from the profile store.
type UserProfile struct {
	ID         int          `json:"id" db:"id"`
	Username   string       `json:"username" db:"username"`
	Credits    int          `json:"credits" db:"credits"`
	Gems       int          `json:"gems" db:"gems"`
	Experience int          `json:"experience" db:"experience"`
	CreatedAt  time.Time    `json:"created_at" db:"created_at"`
	ActiveTeam []*Combatant `json:"active_team,omitempty" db:"-"`
}

// ProfileDelta is applied as increments, never as absolute values.
type ProfileDelta struct {
	Credits    int
	Gems       int
	Experience int
}

func (d ProfileDelta) IsZero() bool {
	return d.Credits == 0 && d.Gems == 0 && d.Experience == 0
}

func (p PlayerRewards) Delta() ProfileDelta {
	return ProfileDelta{Credits: p.Credits, Gems: p.Gems, Experience: p.Experience}
}

type LedgerReference string

const (
	LedgerRefArenaMatch LedgerReference = "arena_match"
	LedgerRefTournament LedgerReference = "tournament"
)

// LedgerEntry records one currency movement. Negative amounts are debits.
type LedgerEntry struct {
	ID            int             `json:"id" db:"id"`
	UserID        int             `json:"user_id" db:"user_id"`
	Currency      Currency        `json:"currency" db:"currency"`
	Amount        int             `json:"amount" db:"amount"`
	Reason        string          `json:"reason" db:"reason"`
	ReferenceType LedgerReference `json:"reference_type" db:"reference_type"`
	ReferenceID   int             `json:"reference_id" db:"reference_id"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}
