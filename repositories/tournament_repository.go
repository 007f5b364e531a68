package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/pokearena/models"
)

var (
	ErrTournamentNotFound     = errors.New("tournament not found")
	ErrTournamentSlugConflict = errors.New("tournament slug already taken")
	ErrTournamentInvalidOrg   = errors.New("invalid organizer reference")
)

type ListTournamentsFilter struct {
	Status      *models.TournamentStatus
	OrganizerID *int
	Limit       int
	Offset      int
}

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	// GetByID locks the row when called with a transaction executor.
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Tournament, error)
	List(ctx context.Context, filter ListTournamentsFilter) ([]*models.Tournament, error)
	UpdateProgress(ctx context.Context, exec SQLExecutor, id int, status models.TournamentStatus, currentRound, totalRounds int) error
	// SetWinner completes the tournament. A nil reward stores NULL.
	SetWinner(ctx context.Context, exec SQLExecutor, id int, winnerParticipantID int, reward models.Reward) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

const tournamentColumns = `t.id, t.name, t.slug, t.description, t.format, t.status, t.organizer_id,
	t.max_participants, t.entry_fee, t.prizes, t.current_round, t.total_rounds,
	t.winner_participant_id, t.champion_reward, t.starts_at, t.created_at, t.updated_at,
	(SELECT COUNT(*) FROM tournament_participants tp WHERE tp.tournament_id = t.id)`

func scanTournament(row rowScanner) (*models.Tournament, error) {
	var (
		t         models.Tournament
		prizesRaw []byte
		rewardRaw []byte
	)
	err := row.Scan(
		&t.ID, &t.Name, &t.Slug, &t.Description, &t.Format, &t.Status, &t.OrganizerID,
		&t.MaxParticipants, &t.EntryFee, &prizesRaw, &t.CurrentRound, &t.TotalRounds,
		&t.WinnerParticipantID, &rewardRaw, &t.StartsAt, &t.CreatedAt, &t.UpdatedAt,
		&t.ParticipantCount,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	prizes, err := scanJSON[models.Prizes](prizesRaw)
	if err != nil {
		return nil, err
	}
	if prizes != nil {
		t.Prizes = *prizes
	}
	if t.ChampionReward, err = scanJSON[models.TaggedReward](rewardRaw); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *postgresTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	prizesJSON, err := jsonValue(&t.Prizes)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO tournaments (
			name, slug, description, format, status, organizer_id,
			max_participants, entry_fee, prizes, starts_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`

	err = r.db.QueryRowContext(ctx, query,
		t.Name, t.Slug, t.Description, t.Format, t.Status, t.OrganizerID,
		t.MaxParticipants, t.EntryFee, prizesJSON, t.StartsAt,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)

	return r.handleTournamentError(err)
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Tournament, error) {
	executor := executorOr(r.db, exec)
	query := `SELECT ` + tournamentColumns + ` FROM tournaments t WHERE t.id = $1`
	if exec != nil {
		query += ` FOR UPDATE OF t`
	}

	t, err := scanTournament(executor.QueryRowContext(ctx, query, id))
	if err != nil && !errors.Is(err, ErrTournamentNotFound) {
		return nil, fmt.Errorf("GetByID: tournament %d: %w", id, err)
	}
	return t, err
}

func (r *postgresTournamentRepository) List(ctx context.Context, filter ListTournamentsFilter) ([]*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments t WHERE 1=1`

	args := []interface{}{}
	argID := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND t.status = $%d", argID)
		args = append(args, *filter.Status)
		argID++
	}
	if filter.OrganizerID != nil {
		query += fmt.Sprintf(" AND t.organizer_id = $%d", argID)
		args = append(args, *filter.OrganizerID)
		argID++
	}

	query += " ORDER BY t.created_at DESC, t.id DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argID)
		args = append(args, filter.Limit)
		argID++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argID)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("List: failed to query tournaments: %w", err)
	}
	defer rows.Close()

	tournaments := make([]*models.Tournament, 0)
	for rows.Next() {
		t, err := scanTournament(rows)
		if err != nil {
			return nil, fmt.Errorf("List: failed to scan tournament: %w", err)
		}
		tournaments = append(tournaments, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("List: rows error: %w", err)
	}
	return tournaments, nil
}

func (r *postgresTournamentRepository) UpdateProgress(ctx context.Context, exec SQLExecutor, id int, status models.TournamentStatus, currentRound, totalRounds int) error {
	executor := executorOr(r.db, exec)
	query := `UPDATE tournaments SET status = $1, current_round = $2, total_rounds = $3, updated_at = NOW()
		WHERE id = $4`
	result, err := executor.ExecContext(ctx, query, status, currentRound, totalRounds, id)
	if err != nil {
		return fmt.Errorf("UpdateProgress: tournament %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) SetWinner(ctx context.Context, exec SQLExecutor, id int, winnerParticipantID int, reward models.Reward) error {
	var rewardJSON interface{}
	if reward != nil {
		var err error
		if rewardJSON, err = jsonValue(&models.TaggedReward{Reward: reward}); err != nil {
			return err
		}
	}
	executor := executorOr(r.db, exec)
	query := `UPDATE tournaments SET winner_participant_id = $1, champion_reward = $2, status = 'COMPLETED', updated_at = NOW()
		WHERE id = $3`
	result, err := executor.ExecContext(ctx, query, winnerParticipantID, rewardJSON, id)
	if err != nil {
		return fmt.Errorf("SetWinner: tournament %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) handleTournamentError(err error) error {
	if err == nil {
		return nil
	}
	switch pqCode(err) {
	case pqUniqueViolation:
		if pqConstraint(err) == "tournaments_slug_key" {
			return ErrTournamentSlugConflict
		}
	case pqForeignKeyViolation:
		if pqConstraint(err) == "tournaments_organizer_id_fkey" {
			return ErrTournamentInvalidOrg
		}
	}
	return err
}
