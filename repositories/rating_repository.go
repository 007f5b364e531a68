package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/pokearena/models"
)

var ErrRatingNotFound = errors.New("arena rating not found")

type RatingRepository interface {
	GetByUserID(ctx context.Context, userID int) (*models.ArenaRating, error)
	// EnsureDefault creates the 1200 record on first use and returns the
	// current row locked for the rest of the transaction.
	EnsureDefault(ctx context.Context, exec SQLExecutor, userID int) (*models.ArenaRating, error)
	Save(ctx context.Context, exec SQLExecutor, rating *models.ArenaRating) error
	ListTop(ctx context.Context, limit, offset int) ([]*models.ArenaRating, error)
}

type postgresRatingRepository struct {
	db *sql.DB
}

func NewPostgresRatingRepository(db *sql.DB) RatingRepository {
	return &postgresRatingRepository{db: db}
}

const ratingColumns = `r.user_id, u.username, r.rating, r.wins, r.losses, r.draws,
	r.current_streak, r.best_streak, r.total_matches, r.updated_at`

func scanRating(row rowScanner) (*models.ArenaRating, error) {
	rt := &models.ArenaRating{}
	err := row.Scan(
		&rt.UserID, &rt.Username, &rt.Rating, &rt.Wins, &rt.Losses, &rt.Draws,
		&rt.CurrentStreak, &rt.BestStreak, &rt.TotalMatches, &rt.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRatingNotFound
		}
		return nil, err
	}
	return rt, nil
}

func (r *postgresRatingRepository) GetByUserID(ctx context.Context, userID int) (*models.ArenaRating, error) {
	query := `SELECT ` + ratingColumns + ` FROM arena_ratings r JOIN users u ON u.id = r.user_id WHERE r.user_id = $1`
	rt, err := scanRating(r.db.QueryRowContext(ctx, query, userID))
	if err != nil && !errors.Is(err, ErrRatingNotFound) {
		return nil, fmt.Errorf("GetByUserID: %w", err)
	}
	return rt, err
}

func (r *postgresRatingRepository) EnsureDefault(ctx context.Context, exec SQLExecutor, userID int) (*models.ArenaRating, error) {
	executor := executorOr(r.db, exec)

	_, err := executor.ExecContext(ctx,
		`INSERT INTO arena_ratings (user_id, rating) VALUES ($1, $2) ON CONFLICT (user_id) DO NOTHING`,
		userID, models.DefaultRating,
	)
	if err != nil {
		if pqCode(err) == pqForeignKeyViolation {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("EnsureDefault: failed to insert rating for user %d: %w", userID, err)
	}

	query := `SELECT ` + ratingColumns + ` FROM arena_ratings r JOIN users u ON u.id = r.user_id
		WHERE r.user_id = $1 FOR UPDATE OF r`
	rt, err := scanRating(executor.QueryRowContext(ctx, query, userID))
	if err != nil {
		return nil, fmt.Errorf("EnsureDefault: %w", err)
	}
	return rt, nil
}

func (r *postgresRatingRepository) Save(ctx context.Context, exec SQLExecutor, rt *models.ArenaRating) error {
	executor := executorOr(r.db, exec)
	query := `
		UPDATE arena_ratings SET
			rating = $1, wins = $2, losses = $3, draws = $4,
			current_streak = $5, best_streak = $6, total_matches = $7,
			updated_at = NOW()
		WHERE user_id = $8
		RETURNING updated_at`

	err := executor.QueryRowContext(ctx, query,
		rt.Rating, rt.Wins, rt.Losses, rt.Draws,
		rt.CurrentStreak, rt.BestStreak, rt.TotalMatches,
		rt.UserID,
	).Scan(&rt.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRatingNotFound
		}
		return fmt.Errorf("Save: failed to update rating for user %d: %w", rt.UserID, err)
	}
	return nil
}

func (r *postgresRatingRepository) ListTop(ctx context.Context, limit, offset int) ([]*models.ArenaRating, error) {
	query := `SELECT ` + ratingColumns + ` FROM arena_ratings r JOIN users u ON u.id = r.user_id
		ORDER BY r.rating DESC, r.wins DESC, r.user_id ASC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ListTop: failed to query ratings: %w", err)
	}
	defer rows.Close()

	out := make([]*models.ArenaRating, 0, limit)
	for rows.Next() {
		rt, err := scanRating(rows)
		if err != nil {
			return nil, fmt.Errorf("ListTop: failed to scan rating: %w", err)
		}
		out = append(out, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListTop: rows error: %w", err)
	}
	return out, nil
}
