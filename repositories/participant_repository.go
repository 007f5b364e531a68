package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/pokearena/models"
)

var (
	ErrParticipantNotFound = errors.New("participant not found")
	ErrParticipantConflict = errors.New("user already registered for this tournament")
)

type ParticipantRepository interface {
	Create(ctx context.Context, exec SQLExecutor, p *models.TournamentParticipant) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.TournamentParticipant, error)
	GetByTournamentAndUser(ctx context.Context, exec SQLExecutor, tournamentID, userID int) (*models.TournamentParticipant, error)
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]*models.TournamentParticipant, error)
	Delete(ctx context.Context, exec SQLExecutor, id int) error
	MarkEliminated(ctx context.Context, exec SQLExecutor, id int) error
}

type postgresParticipantRepository struct {
	db *sql.DB
}

func NewPostgresParticipantRepository(db *sql.DB) ParticipantRepository {
	return &postgresParticipantRepository{db: db}
}

const participantColumns = `p.id, p.tournament_id, p.user_id, u.username, p.seed, p.fee_paid, p.eliminated, p.joined_at`

func scanParticipant(row rowScanner) (*models.TournamentParticipant, error) {
	p := &models.TournamentParticipant{}
	err := row.Scan(&p.ID, &p.TournamentID, &p.UserID, &p.Username, &p.Seed, &p.FeePaid, &p.Eliminated, &p.JoinedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrParticipantNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *postgresParticipantRepository) Create(ctx context.Context, exec SQLExecutor, p *models.TournamentParticipant) error {
	executor := executorOr(r.db, exec)
	query := `
		INSERT INTO tournament_participants (tournament_id, user_id, seed, fee_paid)
		VALUES ($1, $2, $3, $4)
		RETURNING id, joined_at`

	err := executor.QueryRowContext(ctx, query, p.TournamentID, p.UserID, p.Seed, p.FeePaid).Scan(&p.ID, &p.JoinedAt)
	if err != nil {
		switch pqCode(err) {
		case pqUniqueViolation:
			return ErrParticipantConflict
		case pqForeignKeyViolation:
			if pqConstraint(err) == "tournament_participants_tournament_id_fkey" {
				return ErrTournamentNotFound
			}
			return ErrUserNotFound
		}
		return fmt.Errorf("Create: failed to insert participant: %w", err)
	}
	return nil
}

func (r *postgresParticipantRepository) findOne(ctx context.Context, exec SQLExecutor, where string, args ...interface{}) (*models.TournamentParticipant, error) {
	executor := executorOr(r.db, exec)
	query := `SELECT ` + participantColumns + ` FROM tournament_participants p
		JOIN users u ON u.id = p.user_id WHERE ` + where
	p, err := scanParticipant(executor.QueryRowContext(ctx, query, args...))
	if err != nil && !errors.Is(err, ErrParticipantNotFound) {
		return nil, fmt.Errorf("failed to query participant: %w", err)
	}
	return p, err
}

func (r *postgresParticipantRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.TournamentParticipant, error) {
	return r.findOne(ctx, exec, `p.id = $1`, id)
}

func (r *postgresParticipantRepository) GetByTournamentAndUser(ctx context.Context, exec SQLExecutor, tournamentID, userID int) (*models.TournamentParticipant, error) {
	return r.findOne(ctx, exec, `p.tournament_id = $1 AND p.user_id = $2`, tournamentID, userID)
}

func (r *postgresParticipantRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]*models.TournamentParticipant, error) {
	executor := executorOr(r.db, exec)
	query := `SELECT ` + participantColumns + ` FROM tournament_participants p
		JOIN users u ON u.id = p.user_id
		WHERE p.tournament_id = $1
		ORDER BY p.joined_at, p.id`

	rows, err := executor.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("ListByTournament: tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	out := make([]*models.TournamentParticipant, 0)
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("ListByTournament: failed to scan participant: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListByTournament: rows error: %w", err)
	}
	return out, nil
}

func (r *postgresParticipantRepository) Delete(ctx context.Context, exec SQLExecutor, id int) error {
	executor := executorOr(r.db, exec)
	result, err := executor.ExecContext(ctx, `DELETE FROM tournament_participants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("Delete: participant %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrParticipantNotFound)
}

func (r *postgresParticipantRepository) MarkEliminated(ctx context.Context, exec SQLExecutor, id int) error {
	executor := executorOr(r.db, exec)
	result, err := executor.ExecContext(ctx, `UPDATE tournament_participants SET eliminated = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("MarkEliminated: participant %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrParticipantNotFound)
}
