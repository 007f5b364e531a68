package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/pokearena/models"
)

var (
	ErrArenaMatchNotFound = errors.New("arena match not found")
	// ErrArenaMatchStateChanged is returned when a guarded transition finds
	// the row in a different status than expected.
	ErrArenaMatchStateChanged = errors.New("arena match status changed concurrently")
)

type ArenaMatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.ArenaMatch) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.ArenaMatch, error)
	// FindActiveByUser returns the user's WAITING or IN_PROGRESS match.
	FindActiveByUser(ctx context.Context, userID int) (*models.ArenaMatch, error)
	AttachOpponent(ctx context.Context, matchID, player2ID int) error
	MarkInProgress(ctx context.Context, matchID int, battle *models.BattleSummary, startedAt time.Time) error
	Complete(ctx context.Context, exec SQLExecutor, match *models.ArenaMatch) error
	Cancel(ctx context.Context, matchID int) error
	CancelWaitingByPlayer1(ctx context.Context, userID int) (int64, error)
	CancelStaleWaiting(ctx context.Context, createdBefore time.Time) (int64, error)
	ListRecentByUser(ctx context.Context, userID, limit int) ([]*models.ArenaMatch, error)
}

type postgresArenaMatchRepository struct {
	db *sql.DB
}

func NewPostgresArenaMatchRepository(db *sql.DB) ArenaMatchRepository {
	return &postgresArenaMatchRepository{db: db}
}

const arenaMatchColumns = `id, player1_id, player2_id, mode, status, battle_data, winner_id, rewards,
	created_at, started_at, completed_at`

func scanArenaMatch(row rowScanner) (*models.ArenaMatch, error) {
	var (
		m          models.ArenaMatch
		battleRaw  []byte
		rewardsRaw []byte
	)
	err := row.Scan(
		&m.ID, &m.Player1ID, &m.Player2ID, &m.Mode, &m.Status, &battleRaw, &m.WinnerID, &rewardsRaw,
		&m.CreatedAt, &m.StartedAt, &m.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArenaMatchNotFound
		}
		return nil, err
	}
	if m.BattleData, err = scanJSON[models.BattleSummary](battleRaw); err != nil {
		return nil, err
	}
	if m.Rewards, err = scanJSON[models.MatchRewards](rewardsRaw); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *postgresArenaMatchRepository) Create(ctx context.Context, exec SQLExecutor, m *models.ArenaMatch) error {
	executor := executorOr(r.db, exec)
	query := `
		INSERT INTO arena_matches (player1_id, player2_id, mode, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query, m.Player1ID, m.Player2ID, m.Mode, m.Status).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		if pqCode(err) == pqForeignKeyViolation {
			return ErrUserNotFound
		}
		return fmt.Errorf("Create: failed to insert arena match: %w", err)
	}
	return nil
}

func (r *postgresArenaMatchRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.ArenaMatch, error) {
	executor := executorOr(r.db, exec)
	query := `SELECT ` + arenaMatchColumns + ` FROM arena_matches WHERE id = $1`
	if exec != nil {
		query += ` FOR UPDATE`
	}
	m, err := scanArenaMatch(executor.QueryRowContext(ctx, query, id))
	if err != nil && !errors.Is(err, ErrArenaMatchNotFound) {
		return nil, fmt.Errorf("GetByID: arena match %d: %w", id, err)
	}
	return m, err
}

func (r *postgresArenaMatchRepository) FindActiveByUser(ctx context.Context, userID int) (*models.ArenaMatch, error) {
	query := `SELECT ` + arenaMatchColumns + ` FROM arena_matches
		WHERE (player1_id = $1 OR player2_id = $1) AND status IN ('WAITING', 'IN_PROGRESS')
		ORDER BY created_at DESC
		LIMIT 1`
	m, err := scanArenaMatch(r.db.QueryRowContext(ctx, query, userID))
	if err != nil && !errors.Is(err, ErrArenaMatchNotFound) {
		return nil, fmt.Errorf("FindActiveByUser: user %d: %w", userID, err)
	}
	return m, err
}

func (r *postgresArenaMatchRepository) AttachOpponent(ctx context.Context, matchID, player2ID int) error {
	query := `UPDATE arena_matches SET player2_id = $1
		WHERE id = $2 AND status = 'WAITING' AND player2_id IS NULL`
	result, err := r.db.ExecContext(ctx, query, player2ID, matchID)
	if err != nil {
		return fmt.Errorf("AttachOpponent: match %d: %w", matchID, err)
	}
	return checkAffectedRows(result, ErrArenaMatchStateChanged)
}

func (r *postgresArenaMatchRepository) MarkInProgress(ctx context.Context, matchID int, battle *models.BattleSummary, startedAt time.Time) error {
	battleJSON, err := jsonValue(battle)
	if err != nil {
		return err
	}
	query := `UPDATE arena_matches SET status = 'IN_PROGRESS', battle_data = $1, started_at = $2
		WHERE id = $3 AND status = 'WAITING' AND player2_id IS NOT NULL`
	result, err := r.db.ExecContext(ctx, query, battleJSON, startedAt, matchID)
	if err != nil {
		return fmt.Errorf("MarkInProgress: match %d: %w", matchID, err)
	}
	return checkAffectedRows(result, ErrArenaMatchStateChanged)
}

func (r *postgresArenaMatchRepository) Complete(ctx context.Context, exec SQLExecutor, m *models.ArenaMatch) error {
	executor := executorOr(r.db, exec)
	battleJSON, err := jsonValue(m.BattleData)
	if err != nil {
		return err
	}
	rewardsJSON, err := jsonValue(m.Rewards)
	if err != nil {
		return err
	}

	query := `
		UPDATE arena_matches SET
			status = 'COMPLETED', winner_id = $1, rewards = $2,
			battle_data = COALESCE($3, battle_data), completed_at = $4
		WHERE id = $5 AND status = 'IN_PROGRESS'`
	result, err := executor.ExecContext(ctx, query, m.WinnerID, rewardsJSON, battleJSON, m.CompletedAt, m.ID)
	if err != nil {
		return fmt.Errorf("Complete: match %d: %w", m.ID, err)
	}
	if err := checkAffectedRows(result, ErrArenaMatchStateChanged); err != nil {
		return err
	}
	m.Status = models.ArenaMatchCompleted
	return nil
}

func (r *postgresArenaMatchRepository) Cancel(ctx context.Context, matchID int) error {
	query := `UPDATE arena_matches SET status = 'CANCELLED', completed_at = NOW()
		WHERE id = $1 AND status = 'WAITING'`
	result, err := r.db.ExecContext(ctx, query, matchID)
	if err != nil {
		return fmt.Errorf("Cancel: match %d: %w", matchID, err)
	}
	return checkAffectedRows(result, ErrArenaMatchStateChanged)
}

func (r *postgresArenaMatchRepository) CancelWaitingByPlayer1(ctx context.Context, userID int) (int64, error) {
	query := `UPDATE arena_matches SET status = 'CANCELLED', completed_at = NOW()
		WHERE player1_id = $1 AND status = 'WAITING'`
	result, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("CancelWaitingByPlayer1: user %d: %w", userID, err)
	}
	return result.RowsAffected()
}

func (r *postgresArenaMatchRepository) CancelStaleWaiting(ctx context.Context, createdBefore time.Time) (int64, error) {
	query := `UPDATE arena_matches SET status = 'CANCELLED', completed_at = NOW()
		WHERE status = 'WAITING' AND created_at < $1`
	result, err := r.db.ExecContext(ctx, query, createdBefore)
	if err != nil {
		return 0, fmt.Errorf("CancelStaleWaiting: %w", err)
	}
	return result.RowsAffected()
}

func (r *postgresArenaMatchRepository) ListRecentByUser(ctx context.Context, userID, limit int) ([]*models.ArenaMatch, error) {
	query := `SELECT ` + arenaMatchColumns + ` FROM arena_matches
		WHERE (player1_id = $1 OR player2_id = $1) AND status = 'COMPLETED'
		ORDER BY completed_at DESC
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("ListRecentByUser: user %d: %w", userID, err)
	}
	defer rows.Close()

	out := make([]*models.ArenaMatch, 0, limit)
	for rows.Next() {
		m, err := scanArenaMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("ListRecentByUser: failed to scan match: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListRecentByUser: rows error: %w", err)
	}
	return out, nil
}
