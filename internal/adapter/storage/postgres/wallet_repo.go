package postgres

import (
	"context"
	"errors"
	"fmt"

	"fair-wager-core/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// WalletRepo implements ports.WalletRepository. Balances are stored as
// NUMERIC and scanned into shopspring decimals; floats never touch them.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

// GetByAccount fetches a wallet by account and asset (non-locking read).
func (r *WalletRepo) GetByAccount(ctx context.Context, accountID uuid.UUID, asset string) (*domain.Wallet, error) {
	query := `SELECT id, account_id, asset, balance, is_primary, created_at, updated_at
		FROM wallets WHERE account_id = $1 AND asset = $2`

	w := &domain.Wallet{}
	err := r.pool.QueryRow(ctx, query, accountID, asset).Scan(
		&w.ID, &w.AccountID, &w.Asset, &w.Balance,
		&w.IsPrimary, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wallet by account: %w", err)
	}
	return w, nil
}

// ListByAccount fetches all wallets for an account.
func (r *WalletRepo) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]domain.Wallet, error) {
	query := `SELECT id, account_id, asset, balance, is_primary, created_at, updated_at
		FROM wallets WHERE account_id = $1 ORDER BY asset`

	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}
	defer rows.Close()

	var wallets []domain.Wallet
	for rows.Next() {
		var w domain.Wallet
		if err := rows.Scan(&w.ID, &w.AccountID, &w.Asset, &w.Balance,
			&w.IsPrimary, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan wallet: %w", err)
		}
		wallets = append(wallets, w)
	}
	return wallets, rows.Err()
}

// GetForUpdate fetches a wallet with pessimistic locking.
// This MUST be called within a transaction.
func (r *WalletRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, accountID uuid.UUID, asset string) (*domain.Wallet, error) {
	query := `SELECT id, account_id, asset, balance, is_primary, created_at, updated_at
		FROM wallets WHERE account_id = $1 AND asset = $2 FOR UPDATE`

	w := &domain.Wallet{}
	err := tx.QueryRow(ctx, query, accountID, asset).Scan(
		&w.ID, &w.AccountID, &w.Asset, &w.Balance,
		&w.IsPrimary, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wallet for update: %w", err)
	}
	return w, nil
}

// CreateInTx inserts a new wallet within a transaction.
func (r *WalletRepo) CreateInTx(ctx context.Context, tx pgx.Tx, w *domain.Wallet) error {
	query := `INSERT INTO wallets (id, account_id, asset, balance, is_primary, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := tx.Exec(ctx, query,
		w.ID, w.AccountID, w.Asset, w.Balance,
		w.IsPrimary, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert wallet: %w", err)
	}
	return nil
}

// UpdateBalance sets a wallet's materialized balance within a transaction.
func (r *WalletRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance decimal.Decimal) error {
	query := `UPDATE wallets SET balance = $1, updated_at = NOW() WHERE id = $2`

	tag, err := tx.Exec(ctx, query, balance, walletID)
	if err != nil {
		return fmt.Errorf("update wallet balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wallet not found: %s", walletID)
	}
	return nil
}
