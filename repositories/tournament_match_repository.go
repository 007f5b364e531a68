package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/pokearena/models"
)

var (
	ErrTournamentMatchNotFound     = errors.New("tournament match not found")
	ErrTournamentMatchAlreadyFinal = errors.New("tournament match already finished")
	ErrTournamentMatchConflict     = errors.New("tournament match slot already exists")
)

type TournamentMatchRepository interface {
	CreateBatch(ctx context.Context, exec SQLExecutor, matches []*models.TournamentMatch) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.TournamentMatch, error)
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]*models.TournamentMatch, error)
	ListByRound(ctx context.Context, exec SQLExecutor, tournamentID, round int) ([]*models.TournamentMatch, error)
	// Complete records the winner of a PENDING or IN_PROGRESS match.
	Complete(ctx context.Context, exec SQLExecutor, match *models.TournamentMatch) error
}

type postgresTournamentMatchRepository struct {
	db *sql.DB
}

func NewPostgresTournamentMatchRepository(db *sql.DB) TournamentMatchRepository {
	return &postgresTournamentMatchRepository{db: db}
}

const tournamentMatchColumns = `id, tournament_id, round, order_in_round, participant1_id, participant2_id,
	winner_participant_id, status, battle_data, created_at, completed_at`

func scanTournamentMatch(row rowScanner) (*models.TournamentMatch, error) {
	var (
		m         models.TournamentMatch
		battleRaw []byte
	)
	err := row.Scan(
		&m.ID, &m.TournamentID, &m.Round, &m.OrderInRound, &m.Participant1ID, &m.Participant2ID,
		&m.WinnerParticipantID, &m.Status, &battleRaw, &m.CreatedAt, &m.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentMatchNotFound
		}
		return nil, err
	}
	if m.BattleData, err = scanJSON[models.BattleSummary](battleRaw); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *postgresTournamentMatchRepository) CreateBatch(ctx context.Context, exec SQLExecutor, matches []*models.TournamentMatch) error {
	executor := executorOr(r.db, exec)
	query := `
		INSERT INTO tournament_matches
			(tournament_id, round, order_in_round, participant1_id, participant2_id,
			 winner_participant_id, status, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	for _, m := range matches {
		err := executor.QueryRowContext(ctx, query,
			m.TournamentID, m.Round, m.OrderInRound, m.Participant1ID, m.Participant2ID,
			m.WinnerParticipantID, m.Status, m.CompletedAt,
		).Scan(&m.ID, &m.CreatedAt)
		if err != nil {
			if pqCode(err) == pqUniqueViolation {
				return fmt.Errorf("round %d slot %d: %w", m.Round, m.OrderInRound, ErrTournamentMatchConflict)
			}
			return fmt.Errorf("CreateBatch: failed to insert match R%dM%d: %w", m.Round, m.OrderInRound, err)
		}
	}
	return nil
}

func (r *postgresTournamentMatchRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.TournamentMatch, error) {
	executor := executorOr(r.db, exec)
	query := `SELECT ` + tournamentMatchColumns + ` FROM tournament_matches WHERE id = $1`
	if exec != nil {
		query += ` FOR UPDATE`
	}
	m, err := scanTournamentMatch(executor.QueryRowContext(ctx, query, id))
	if err != nil && !errors.Is(err, ErrTournamentMatchNotFound) {
		return nil, fmt.Errorf("GetByID: tournament match %d: %w", id, err)
	}
	return m, err
}

func (r *postgresTournamentMatchRepository) list(ctx context.Context, exec SQLExecutor, where string, args ...interface{}) ([]*models.TournamentMatch, error) {
	executor := executorOr(r.db, exec)
	query := `SELECT ` + tournamentMatchColumns + ` FROM tournament_matches WHERE ` + where + `
		ORDER BY round, order_in_round`

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tournament matches: %w", err)
	}
	defer rows.Close()

	out := make([]*models.TournamentMatch, 0)
	for rows.Next() {
		m, err := scanTournamentMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tournament match: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("tournament matches rows error: %w", err)
	}
	return out, nil
}

func (r *postgresTournamentMatchRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]*models.TournamentMatch, error) {
	return r.list(ctx, exec, `tournament_id = $1`, tournamentID)
}

func (r *postgresTournamentMatchRepository) ListByRound(ctx context.Context, exec SQLExecutor, tournamentID, round int) ([]*models.TournamentMatch, error) {
	return r.list(ctx, exec, `tournament_id = $1 AND round = $2`, tournamentID, round)
}

func (r *postgresTournamentMatchRepository) Complete(ctx context.Context, exec SQLExecutor, m *models.TournamentMatch) error {
	executor := executorOr(r.db, exec)
	battleJSON, err := jsonValue(m.BattleData)
	if err != nil {
		return err
	}
	query := `
		UPDATE tournament_matches SET
			winner_participant_id = $1, status = $2,
			battle_data = COALESCE($3, battle_data), completed_at = $4
		WHERE id = $5 AND status IN ('PENDING', 'IN_PROGRESS')`
	result, err := executor.ExecContext(ctx, query, m.WinnerParticipantID, m.Status, battleJSON, m.CompletedAt, m.ID)
	if err != nil {
		return fmt.Errorf("Complete: tournament match %d: %w", m.ID, err)
	}
	return checkAffectedRows(result, ErrTournamentMatchAlreadyFinal)
}
