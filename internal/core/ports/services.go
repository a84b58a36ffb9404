package ports

import (
	"context"
	"errors"
	"time"

	"fair-wager-core/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrLockNotAcquired is returned by AccountLocker implementations when the
// lock could not be obtained within the acquisition bound.
var ErrLockNotAcquired = errors.New("account lock not acquired within timeout")

// AccountLockKey is the shared lock keyspace for one account. Balance
// mutations, seed rotation and nonce consumption all serialize on it.
func AccountLockKey(accountID uuid.UUID) string {
	return "account:" + accountID.String()
}

// AccountLocker is the mutual-exclusion capability serializing all mutations
// for one account. The ledger engine is agnostic to whether it is backed by
// an in-process mutex (single instance) or Redis (multi-instance); the
// transaction commit, not the lock, is the source of atomicity.
type AccountLocker interface {
	// Acquire blocks up to the implementation's acquisition bound and returns
	// an opaque holder token, or ErrLockNotAcquired.
	Acquire(ctx context.Context, key string, ttl time.Duration) (string, error)
	// Release frees the lock only if token still identifies the holder.
	Release(ctx context.Context, key string, token string) error
}

// EventPublisher delivers post-commit notifications. Publish is invoked
// strictly after the underlying transaction commits; a publish failure can
// never roll back a financial commit.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.LedgerEvent) error
}

// IdempotencyCache is the fast-path idempotency check (Redis layer). The
// journal's uniqueness constraint remains the authority.
type IdempotencyCache interface {
	Get(ctx context.Context, key string) ([]byte, error) // nil, nil on miss
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// --- Service Ports (Business Logic) ---

// ApplyStatus is the caller-visible result class of a ledger apply.
type ApplyStatus string

// Rejections raised before any lock is taken (validation, idempotency
// conflicts) surface as coded errors, not as a status.
const (
	ApplySuccess           ApplyStatus = "SUCCESS"
	ApplyInsufficientFunds ApplyStatus = "INSUFFICIENT_FUNDS"
)

// ApplyResult reports the outcome of one batch. Insufficient funds is a
// normal result, not an error: the caller decides the next action.
type ApplyResult struct {
	Status   ApplyStatus
	Applied  bool // false when the idempotency key had already been applied
	Balance  decimal.Decimal
	Balances map[string]decimal.Decimal // "accountID:asset" -> balance
	Entries  []domain.JournalEntry
	Reason   string
}

// LedgerService is the transactional core moving funds between wallets.
type LedgerService interface {
	Apply(ctx context.Context, batch domain.OperationBatch, idempotencyKey string) (*ApplyResult, error)
	Balance(ctx context.Context, accountID uuid.UUID, asset string) (decimal.Decimal, error)
	Stats(ctx context.Context, accountID uuid.UUID, asset string) (*domain.AccountStats, error)
	History(ctx context.Context, accountID uuid.UUID, limit int) ([]domain.JournalEntry, error)
}

// OutcomeRequest carries the seed triple and per-game parameters.
type OutcomeRequest struct {
	ServerSeed string
	ClientSeed string
	Nonce      int64
	GameType   domain.GameType
	HouseEdge  *float64 // CRASH only; defaults from config
	Cursor     int      // multi-draw games
	MineCount  int      // MINES only
	Rows       int      // PLINKO only; defaults to 16
}

// VerifyRequest recomputes an outcome from a revealed server seed.
type VerifyRequest struct {
	OutcomeRequest
	ClaimedValue float64
	ClaimedCells []int
}

// VerifyResult reports whether a claimed outcome matches the recomputation.
type VerifyResult struct {
	IsValid    bool
	Recomputed *domain.Outcome
}

// FairnessService is a pure function of its inputs: no locking, no shared
// mutable state, safe for unbounded parallel invocation.
type FairnessService interface {
	Outcome(req OutcomeRequest) (*domain.Outcome, error)
	Verify(req VerifyRequest) (*VerifyResult, error)
}

// RotationResult reveals the retired pair (for verification of its past
// outcomes) alongside the freshly activated one.
type RotationResult struct {
	Revealed *domain.SeedPair
	Active   *domain.SeedPair
}

// SeedService owns the committed seed pair and monotonic nonce per account.
type SeedService interface {
	Activate(ctx context.Context, accountID uuid.UUID, clientSeed string) (*domain.SeedPair, error)
	Rotate(ctx context.Context, accountID uuid.UUID, newClientSeed string) (*RotationResult, error)
	// NextNonce consumes and returns the next nonce of the active pair.
	// A nonce value is handed out at most once.
	NextNonce(ctx context.Context, accountID uuid.UUID) (*domain.SeedPair, int64, error)
	Current(ctx context.Context, accountID uuid.UUID) (*domain.SeedPair, error)
}

// RateService exposes cached asset/reference-currency conversion. Reads never
// block on network I/O.
type RateService interface {
	Rate(asset string) (decimal.Decimal, error)
	ToReference(asset string, amount decimal.Decimal) (decimal.Decimal, error)
	FromReference(asset string, amount decimal.Decimal) (decimal.Decimal, error)
	ToSmallestUnit(asset string, amount decimal.Decimal) (decimal.Decimal, error)
	FromSmallestUnit(asset string, units decimal.Decimal) (decimal.Decimal, error)
	SetRates(rates map[string]decimal.Decimal)
}
