package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/pokearena/models"
	"github.com/lib/pq"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// ProfileRepository is the user/profile store: balances and the active team.
type ProfileRepository interface {
	GetProfile(ctx context.Context, userID int) (*models.UserProfile, error)
	GetActiveTeam(ctx context.Context, userID int) ([]*models.Combatant, error)
	// ApplyDelta adds the delta to the balances. A change that would take a
	// balance below zero fails with ErrInsufficientBalance.
	ApplyDelta(ctx context.Context, exec SQLExecutor, userID int, delta models.ProfileDelta) error
}

type postgresProfileRepository struct {
	db *sql.DB
}

func NewPostgresProfileRepository(db *sql.DB) ProfileRepository {
	return &postgresProfileRepository{db: db}
}

func (r *postgresProfileRepository) GetProfile(ctx context.Context, userID int) (*models.UserProfile, error) {
	query := `SELECT id, username, credits, gems, experience, created_at FROM users WHERE id = $1`

	p := &models.UserProfile{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&p.ID, &p.Username, &p.Credits, &p.Gems, &p.Experience, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("GetProfile: failed to query user %d: %w", userID, err)
	}

	team, err := r.GetActiveTeam(ctx, userID)
	if err != nil {
		return nil, err
	}
	p.ActiveTeam = team
	return p, nil
}

func (r *postgresProfileRepository) GetActiveTeam(ctx context.Context, userID int) ([]*models.Combatant, error) {
	query := `
		SELECT id, name, species, types, level,
		       hp, attack, defense, special_attack, special_defense, speed, moves
		FROM pokemon
		WHERE user_id = $1 AND in_team
		ORDER BY team_slot NULLS LAST, id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("GetActiveTeam: failed to query team for user %d: %w", userID, err)
	}
	defer rows.Close()

	team := make([]*models.Combatant, 0, 6)
	for rows.Next() {
		var (
			c     models.Combatant
			types pq.StringArray
			moves pq.StringArray
		)
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Species, &types, &c.Level,
			&c.Stats.HP, &c.Stats.Attack, &c.Stats.Defense, &c.Stats.SpecialAttack, &c.Stats.SpecialDefense, &c.Stats.Speed,
			&moves,
		); err != nil {
			return nil, fmt.Errorf("GetActiveTeam: failed to scan pokemon: %w", err)
		}
		for _, t := range types {
			c.Types = append(c.Types, models.PokemonType(t))
		}
		c.Moves = []string(moves)
		c.MaxHP = c.Stats.HP
		c.CurrentHP = c.Stats.HP
		c.Status = models.StatusCondition{Kind: models.StatusNone}
		team = append(team, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetActiveTeam: rows error: %w", err)
	}
	return team, nil
}

func (r *postgresProfileRepository) ApplyDelta(ctx context.Context, exec SQLExecutor, userID int, delta models.ProfileDelta) error {
	if delta.IsZero() {
		return nil
	}
	executor := executorOr(r.db, exec)

	query := `
		UPDATE users SET
			credits = credits + $1,
			gems = gems + $2,
			experience = experience + $3
		WHERE id = $4
		  AND credits + $1 >= 0
		  AND gems + $2 >= 0
		  AND experience + $3 >= 0`

	result, err := executor.ExecContext(ctx, query, delta.Credits, delta.Gems, delta.Experience, userID)
	if err != nil {
		if pqCode(err) == pqCheckViolation {
			return ErrInsufficientBalance
		}
		return fmt.Errorf("ApplyDelta: failed to update user %d: %w", userID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ApplyDelta: failed to check affected rows: %w", err)
	}
	if affected > 0 {
		return nil
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists); err != nil {
		return fmt.Errorf("ApplyDelta: failed to check user %d: %w", userID, err)
	}
	if !exists {
		return ErrUserNotFound
	}
	return ErrInsufficientBalance
}
