package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
)

// SQLExecutor is satisfied by both *sql.DB and *sql.Tx.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// TxManager runs fn inside one transaction. fn returning an error, or
// panicking, rolls everything back.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(exec SQLExecutor) error) error
}

type postgresTxManager struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewPostgresTxManager(db *sql.DB, logger zerolog.Logger) TxManager {
	return &postgresTxManager{db: db, logger: logger.With().Str("component", "tx").Logger()}
}

func (m *postgresTxManager) WithinTx(ctx context.Context, fn func(exec SQLExecutor) error) (txErr error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if txErr != nil {
			m.logger.Debug().Err(txErr).Msg("rolling back transaction")
			if rbErr := tx.Rollback(); rbErr != nil {
				m.logger.Error().Err(rbErr).AnErr("cause", txErr).Msg("rollback failed")
				txErr = fmt.Errorf("transaction processing error: %w (rollback also failed: %v)", txErr, rbErr)
			}
		} else if cErr := tx.Commit(); cErr != nil {
			txErr = fmt.Errorf("failed to commit transaction: %w", cErr)
		}
	}()

	txErr = fn(tx)
	return txErr
}

func executorOr(db *sql.DB, exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return db
}
