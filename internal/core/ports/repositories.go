package ports

import (
	"context"
	"time"

	"fair-wager-core/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// WalletRepository defines persistence operations for wallets.
// Methods accepting pgx.Tx run inside transaction blocks for pessimistic locking.
type WalletRepository interface {
	GetByAccount(ctx context.Context, accountID uuid.UUID, asset string) (*domain.Wallet, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]domain.Wallet, error)
	// GetForUpdate locks the wallet row for the remainder of the transaction.
	GetForUpdate(ctx context.Context, tx pgx.Tx, accountID uuid.UUID, asset string) (*domain.Wallet, error)
	CreateInTx(ctx context.Context, tx pgx.Tx, wallet *domain.Wallet) error
	UpdateBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance decimal.Decimal) error
}

// JournalRepository defines persistence for the append-only journal.
// Entries are created once, never mutated or deleted.
type JournalRepository interface {
	CreateInTx(ctx context.Context, tx pgx.Tx, entry *domain.JournalEntry) error
	// GetByKeyInTx is the authoritative idempotency lookup, performed inside
	// the same transaction that would apply the delta.
	GetByKeyInTx(ctx context.Context, tx pgx.Tx, accountID uuid.UUID, kind domain.OperationKind, idempotencyKey string) (*domain.JournalEntry, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]domain.JournalEntry, error)
}

// SeedPairRepository defines persistence for provably-fair seed pairs.
type SeedPairRepository interface {
	GetActive(ctx context.Context, accountID uuid.UUID) (*domain.SeedPair, error)
	GetActiveInTx(ctx context.Context, tx pgx.Tx, accountID uuid.UUID) (*domain.SeedPair, error)
	CreateInTx(ctx context.Context, tx pgx.Tx, pair *domain.SeedPair) error
	RetireInTx(ctx context.Context, tx pgx.Tx, pairID uuid.UUID, when time.Time) error
	// IncrementNonce atomically bumps and returns the active pair's nonce.
	IncrementNonce(ctx context.Context, accountID uuid.UUID) (int64, error)
}

// StatsRepository maintains rolling per-account aggregates inside the ledger
// transaction.
type StatsRepository interface {
	ApplyInTx(ctx context.Context, tx pgx.Tx, accountID uuid.UUID, asset string, kind domain.OperationKind, amount decimal.Decimal) error
	Get(ctx context.Context, accountID uuid.UUID, asset string) (*domain.AccountStats, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
