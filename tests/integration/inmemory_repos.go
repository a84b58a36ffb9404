package integration

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fair-wager-core/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// --- In-Memory Wallet Repo ---

type inMemoryWalletRepo struct {
	mu      sync.RWMutex
	wallets map[uuid.UUID]*domain.Wallet
}

func newInMemoryWalletRepo() *inMemoryWalletRepo {
	return &inMemoryWalletRepo{wallets: make(map[uuid.UUID]*domain.Wallet)}
}

func (r *inMemoryWalletRepo) GetByAccount(ctx context.Context, accountID uuid.UUID, asset string) (*domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, w := range r.wallets {
		if w.AccountID == accountID && w.Asset == asset {
			copied := *w
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *inMemoryWalletRepo) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Wallet
	for _, w := range r.wallets {
		if w.AccountID == accountID {
			result = append(result, *w)
		}
	}
	return result, nil
}

func (r *inMemoryWalletRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, accountID uuid.UUID, asset string) (*domain.Wallet, error) {
	return r.GetByAccount(ctx, accountID, asset)
}

func (r *inMemoryWalletRepo) CreateInTx(ctx context.Context, tx pgx.Tx, wallet *domain.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *wallet
	r.wallets[wallet.ID] = &copied
	return nil
}

func (r *inMemoryWalletRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[walletID]
	if !ok {
		return fmt.Errorf("wallet not found")
	}
	w.Balance = balance
	w.UpdatedAt = time.Now()
	return nil
}

// --- In-Memory Journal Repo ---

type inMemoryJournalRepo struct {
	mu      sync.RWMutex
	entries []*domain.JournalEntry
}

func newInMemoryJournalRepo() *inMemoryJournalRepo {
	return &inMemoryJournalRepo{}
}

func (r *inMemoryJournalRepo) CreateInTx(ctx context.Context, tx pgx.Tx, entry *domain.JournalEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.IdempotencyKey == entry.IdempotencyKey && e.AccountID == entry.AccountID && e.Kind == entry.Kind {
			return fmt.Errorf("duplicate journal entry")
		}
	}
	copied := *entry
	r.entries = append(r.entries, &copied)
	return nil
}

func (r *inMemoryJournalRepo) GetByKeyInTx(ctx context.Context, tx pgx.Tx, accountID uuid.UUID, kind domain.OperationKind, idempotencyKey string) (*domain.JournalEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.entries {
		if e.IdempotencyKey == idempotencyKey && e.AccountID == accountID && e.Kind == kind {
			copied := *e
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *inMemoryJournalRepo) ListByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]domain.JournalEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.JournalEntry
	for i := len(r.entries) - 1; i >= 0 && len(result) < limit; i-- {
		if r.entries[i].AccountID == accountID {
			result = append(result, *r.entries[i])
		}
	}
	return result, nil
}

// --- In-Memory Seed Pair Repo ---

type inMemorySeedRepo struct {
	mu    sync.RWMutex
	pairs map[uuid.UUID]*domain.SeedPair
}

func newInMemorySeedRepo() *inMemorySeedRepo {
	return &inMemorySeedRepo{pairs: make(map[uuid.UUID]*domain.SeedPair)}
}

func (r *inMemorySeedRepo) GetActive(ctx context.Context, accountID uuid.UUID) (*domain.SeedPair, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.activeLocked(accountID), nil
}

func (r *inMemorySeedRepo) GetActiveInTx(ctx context.Context, tx pgx.Tx, accountID uuid.UUID) (*domain.SeedPair, error) {
	return r.GetActive(ctx, accountID)
}

func (r *inMemorySeedRepo) activeLocked(accountID uuid.UUID) *domain.SeedPair {
	for _, p := range r.pairs {
		if p.AccountID == accountID && p.IsActive {
			copied := *p
			return &copied
		}
	}
	return nil
}

func (r *inMemorySeedRepo) CreateInTx(ctx context.Context, tx pgx.Tx, pair *domain.SeedPair) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *pair
	r.pairs[pair.ID] = &copied
	return nil
}

func (r *inMemorySeedRepo) RetireInTx(ctx context.Context, tx pgx.Tx, pairID uuid.UUID, when time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pairs[pairID]
	if !ok || !p.IsActive {
		return fmt.Errorf("active seed pair not found")
	}
	p.IsActive = false
	p.RetiredAt = &when
	return nil
}

func (r *inMemorySeedRepo) IncrementNonce(ctx context.Context, accountID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.pairs {
		if p.AccountID == accountID && p.IsActive {
			p.Nonce++
			return p.Nonce, nil
		}
	}
	return 0, pgx.ErrNoRows
}

// --- In-Memory Stats Repo ---

type inMemoryStatsRepo struct {
	mu    sync.RWMutex
	stats map[string]*domain.AccountStats
}

func newInMemoryStatsRepo() *inMemoryStatsRepo {
	return &inMemoryStatsRepo{stats: make(map[string]*domain.AccountStats)}
}

func statsKey(accountID uuid.UUID, asset string) string {
	return accountID.String() + ":" + asset
}

func (r *inMemoryStatsRepo) ApplyInTx(ctx context.Context, tx pgx.Tx, accountID uuid.UUID, asset string, kind domain.OperationKind, amount decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := statsKey(accountID, asset)
	s, ok := r.stats[key]
	if !ok {
		s = &domain.AccountStats{AccountID: accountID, Asset: asset}
		r.stats[key] = s
	}
	switch kind {
	case domain.OpDeposit:
		s.TotalDeposited = s.TotalDeposited.Add(amount)
	case domain.OpWithdraw:
		s.TotalWithdrawn = s.TotalWithdrawn.Add(amount)
	case domain.OpBet:
		s.TotalWagered = s.TotalWagered.Add(amount)
	case domain.OpWin:
		s.TotalWon = s.TotalWon.Add(amount)
	}
	s.UpdatedAt = time.Now()
	return nil
}

func (r *inMemoryStatsRepo) Get(ctx context.Context, accountID uuid.UUID, asset string) (*domain.AccountStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.stats[statsKey(accountID, asset)]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

// --- In-Memory Transactor (no-op tx) ---

type inMemoryTransactor struct{}

func newInMemoryTransactor() *inMemoryTransactor {
	return &inMemoryTransactor{}
}

func (t *inMemoryTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return &noopTx{}, nil
}

// noopTx is a no-op pgx.Tx implementation for in-memory testing.
type noopTx struct{}

func (t *noopTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *noopTx) Commit(ctx context.Context) error          { return nil }
func (t *noopTx) Rollback(ctx context.Context) error        { return nil }
func (t *noopTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *noopTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *noopTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *noopTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *noopTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *noopTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *noopTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *noopTx) Conn() *pgx.Conn { return nil }
