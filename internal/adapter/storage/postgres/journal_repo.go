package postgres

import (
	"context"
	"errors"
	"fmt"

	"fair-wager-core/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// JournalRepo implements ports.JournalRepository. The journal is append-only:
// there is no update or delete path, and (idempotency_key, account_id, kind)
// carries a unique constraint.
type JournalRepo struct {
	pool Pool
}

// NewJournalRepo creates a new JournalRepo.
func NewJournalRepo(pool Pool) *JournalRepo {
	return &JournalRepo{pool: pool}
}

// CreateInTx appends a journal entry within a transaction.
func (r *JournalRepo) CreateInTx(ctx context.Context, tx pgx.Tx, e *domain.JournalEntry) error {
	query := `INSERT INTO journal_entries
		(id, idempotency_key, account_id, asset, kind, delta, balance_after, house_edge, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := tx.Exec(ctx, query,
		e.ID, e.IdempotencyKey, e.AccountID, e.Asset, e.Kind,
		e.Delta, e.BalanceAfter, e.HouseEdge, e.Description, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert journal entry: %w", err)
	}
	return nil
}

// GetByKeyInTx performs the authoritative idempotency lookup inside the
// transaction that would apply the delta.
func (r *JournalRepo) GetByKeyInTx(ctx context.Context, tx pgx.Tx, accountID uuid.UUID, kind domain.OperationKind, idempotencyKey string) (*domain.JournalEntry, error) {
	query := `SELECT id, idempotency_key, account_id, asset, kind, delta, balance_after, house_edge, description, created_at
		FROM journal_entries
		WHERE account_id = $1 AND kind = $2 AND idempotency_key = $3`

	e := &domain.JournalEntry{}
	err := tx.QueryRow(ctx, query, accountID, kind, idempotencyKey).Scan(
		&e.ID, &e.IdempotencyKey, &e.AccountID, &e.Asset, &e.Kind,
		&e.Delta, &e.BalanceAfter, &e.HouseEdge, &e.Description, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get journal entry by key: %w", err)
	}
	return e, nil
}

// ListByAccount returns the most recent entries for an account.
func (r *JournalRepo) ListByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]domain.JournalEntry, error) {
	query := `SELECT id, idempotency_key, account_id, asset, kind, delta, balance_after, house_edge, description, created_at
		FROM journal_entries
		WHERE account_id = $1 ORDER BY created_at DESC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		var e domain.JournalEntry
		if err := rows.Scan(&e.ID, &e.IdempotencyKey, &e.AccountID, &e.Asset, &e.Kind,
			&e.Delta, &e.BalanceAfter, &e.HouseEdge, &e.Description, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
