package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fair-wager-core/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SeedRepo implements ports.SeedPairRepository. A partial unique index on
// (account_id) WHERE is_active guarantees at most one active pair; retired
// pairs are kept for later outcome verification.
type SeedRepo struct {
	pool Pool
}

// NewSeedRepo creates a new SeedRepo.
func NewSeedRepo(pool Pool) *SeedRepo {
	return &SeedRepo{pool: pool}
}

const seedColumns = `id, account_id, server_seed, commitment, client_seed, nonce, is_active, created_at, retired_at`

// GetActive fetches the account's active seed pair (non-locking read).
func (r *SeedRepo) GetActive(ctx context.Context, accountID uuid.UUID) (*domain.SeedPair, error) {
	query := `SELECT ` + seedColumns + ` FROM seed_pairs WHERE account_id = $1 AND is_active`

	p := &domain.SeedPair{}
	err := r.pool.QueryRow(ctx, query, accountID).Scan(
		&p.ID, &p.AccountID, &p.ServerSeed, &p.Commitment, &p.ClientSeed,
		&p.Nonce, &p.IsActive, &p.CreatedAt, &p.RetiredAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active seed pair: %w", err)
	}
	return p, nil
}

// GetActiveInTx fetches the active pair with pessimistic locking.
// This MUST be called within a transaction.
func (r *SeedRepo) GetActiveInTx(ctx context.Context, tx pgx.Tx, accountID uuid.UUID) (*domain.SeedPair, error) {
	query := `SELECT ` + seedColumns + ` FROM seed_pairs WHERE account_id = $1 AND is_active FOR UPDATE`

	p := &domain.SeedPair{}
	err := tx.QueryRow(ctx, query, accountID).Scan(
		&p.ID, &p.AccountID, &p.ServerSeed, &p.Commitment, &p.ClientSeed,
		&p.Nonce, &p.IsActive, &p.CreatedAt, &p.RetiredAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active seed pair for update: %w", err)
	}
	return p, nil
}

// CreateInTx inserts a new seed pair within a transaction.
func (r *SeedRepo) CreateInTx(ctx context.Context, tx pgx.Tx, p *domain.SeedPair) error {
	query := `INSERT INTO seed_pairs (` + seedColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := tx.Exec(ctx, query,
		p.ID, p.AccountID, p.ServerSeed, p.Commitment, p.ClientSeed,
		p.Nonce, p.IsActive, p.CreatedAt, p.RetiredAt,
	)
	if err != nil {
		return fmt.Errorf("insert seed pair: %w", err)
	}
	return nil
}

// RetireInTx marks a pair inactive. The row is never deleted.
func (r *SeedRepo) RetireInTx(ctx context.Context, tx pgx.Tx, pairID uuid.UUID, when time.Time) error {
	query := `UPDATE seed_pairs SET is_active = FALSE, retired_at = $1 WHERE id = $2 AND is_active`

	tag, err := tx.Exec(ctx, query, when, pairID)
	if err != nil {
		return fmt.Errorf("retire seed pair: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("active seed pair not found: %s", pairID)
	}
	return nil
}

// IncrementNonce atomically bumps and returns the active pair's nonce.
// Returns pgx.ErrNoRows when the account has no active pair.
func (r *SeedRepo) IncrementNonce(ctx context.Context, accountID uuid.UUID) (int64, error) {
	query := `UPDATE seed_pairs SET nonce = nonce + 1 WHERE account_id = $1 AND is_active RETURNING nonce`

	var nonce int64
	if err := r.pool.QueryRow(ctx, query, accountID).Scan(&nonce); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, pgx.ErrNoRows
		}
		return 0, fmt.Errorf("increment nonce: %w", err)
	}
	return nonce, nil
}
