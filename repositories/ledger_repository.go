package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dosada05/pokearena/models"
)

type LedgerRepository interface {
	Insert(ctx context.Context, exec SQLExecutor, entry *models.LedgerEntry) error
}

type postgresLedgerRepository struct {
	db *sql.DB
}

func NewPostgresLedgerRepository(db *sql.DB) LedgerRepository {
	return &postgresLedgerRepository{db: db}
}

func (r *postgresLedgerRepository) Insert(ctx context.Context, exec SQLExecutor, e *models.LedgerEntry) error {
	executor := executorOr(r.db, exec)
	query := `
		INSERT INTO currency_transactions (user_id, currency, amount, reason, reference_type, reference_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query,
		e.UserID, e.Currency, e.Amount, e.Reason, e.ReferenceType, e.ReferenceID,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		if pqCode(err) == pqForeignKeyViolation {
			return ErrUserNotFound
		}
		return fmt.Errorf("Insert: failed to record %s %d for user %d: %w", e.Currency, e.Amount, e.UserID, err)
	}
	return nil
}
