package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fair-wager-core/config"
	"fair-wager-core/internal/core/domain"
	"fair-wager-core/internal/core/ports"
	"fair-wager-core/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const idempotencyTTL = 24 * time.Hour

// LedgerServiceImpl implements ports.LedgerService: it validates, applies and
// journals one or more balance operations atomically and idempotently. The
// transaction commit is the sole authority for atomicity; the per-account
// lock only guarantees sequential ordering and prevents wasted contention.
type LedgerServiceImpl struct {
	walletRepo  ports.WalletRepository
	journalRepo ports.JournalRepository
	statsRepo   ports.StatsRepository
	transactor  ports.DBTransactor
	locker      ports.AccountLocker
	idempCache  ports.IdempotencyCache
	events      ports.EventPublisher
	lockCfg     config.LockConfig
	log         zerolog.Logger
}

// NewLedgerService creates a new LedgerServiceImpl.
func NewLedgerService(
	walletRepo ports.WalletRepository,
	journalRepo ports.JournalRepository,
	statsRepo ports.StatsRepository,
	transactor ports.DBTransactor,
	locker ports.AccountLocker,
	idempCache ports.IdempotencyCache,
	events ports.EventPublisher,
	lockCfg config.LockConfig,
	log zerolog.Logger,
) *LedgerServiceImpl {
	return &LedgerServiceImpl{
		walletRepo:  walletRepo,
		journalRepo: journalRepo,
		statsRepo:   statsRepo,
		transactor:  transactor,
		locker:      locker,
		idempCache:  idempCache,
		events:      events,
		lockCfg:     lockCfg,
		log:         log,
	}
}

// cachedApply is the fast-path idempotency cache payload. The fingerprint
// detects a retry that reused the key with a different batch.
type cachedApply struct {
	Fingerprint string             `json:"fingerprint"`
	Result      *ports.ApplyResult `json:"result"`
}

// Apply applies a batch as a single all-or-nothing unit.
func (s *LedgerServiceImpl) Apply(ctx context.Context, batch domain.OperationBatch, idempotencyKey string) (*ports.ApplyResult, error) {
	// Validation happens before any lock is taken.
	if err := validateBatch(batch, idempotencyKey); err != nil {
		return nil, err
	}

	fingerprint := batchFingerprint(batch)

	// Layer 1: Redis idempotency check (fast path, best effort).
	cached, err := s.idempCache.Get(ctx, idempotencyKey)
	if err != nil {
		s.log.Warn().Err(err).Str("key", idempotencyKey).Msg("redis idempotency check failed, falling through to DB")
	}
	if cached != nil {
		var entry cachedApply
		if err := json.Unmarshal(cached, &entry); err == nil {
			if entry.Fingerprint != fingerprint {
				return nil, apperror.ErrIdempotencyConflict(idempotencyKey)
			}
			// The delta was applied exactly once; report current balances.
			return s.replayResult(ctx, batch)
		}
	}

	// Serialize per account; distinct accounts locked in sorted order.
	accounts := batch.Accounts()
	tokens := make(map[string]string, len(accounts))
	for _, accountID := range accounts {
		key := ports.AccountLockKey(accountID)
		token, err := s.locker.Acquire(ctx, key, s.lockCfg.TTL)
		if err != nil {
			s.releaseAll(ctx, tokens)
			if errors.Is(err, ports.ErrLockNotAcquired) {
				return nil, apperror.ErrLockTimeout(key, err)
			}
			return nil, apperror.InternalError(fmt.Errorf("acquire account lock: %w", err))
		}
		tokens[key] = token
	}
	defer s.releaseAll(ctx, tokens)

	result, err := s.applyLocked(ctx, batch, idempotencyKey)
	if err != nil {
		return nil, err
	}

	// Post-commit: cache the applied result (best-effort).
	if result.Status == ports.ApplySuccess && result.Applied {
		if payload, err := json.Marshal(cachedApply{Fingerprint: fingerprint, Result: result}); err == nil {
			if err := s.idempCache.Set(ctx, idempotencyKey, payload, idempotencyTTL); err != nil {
				s.log.Warn().Err(err).Str("key", idempotencyKey).Msg("failed to cache idempotency in redis")
			}
		}
	}

	return result, nil
}

// applyLocked runs the atomic unit of work. Callers hold all account locks.
func (s *LedgerServiceImpl) applyLocked(ctx context.Context, batch domain.OperationBatch, idempotencyKey string) (*ports.ApplyResult, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrPersistence(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	// Layer 2: DB idempotency check, the authority. A batch is atomic, so
	// under one key either every entry exists or none does.
	existing := make([]*domain.JournalEntry, 0, len(batch))
	existCount := 0
	for i := range batch {
		entry, err := s.journalRepo.GetByKeyInTx(ctx, dbTx, batch[i].AccountID, batch[i].Kind, idempotencyKey)
		if err != nil {
			return nil, apperror.ErrPersistence(fmt.Errorf("idempotency lookup: %w", err))
		}
		if entry != nil {
			if !entry.Delta.Abs().Equal(batch[i].Amount) || entry.Asset != batch[i].Asset {
				return nil, apperror.ErrIdempotencyConflict(idempotencyKey)
			}
			existCount++
		}
		existing = append(existing, entry)
	}
	if existCount > 0 {
		if existCount != len(batch) {
			return nil, apperror.ErrIdempotencyConflict(idempotencyKey)
		}
		return s.replayResult(ctx, batch)
	}

	// Lock wallet rows; a wallet is created at zero on first use.
	wallets := make(map[walletKey]*domain.Wallet)
	balances := make(map[walletKey]decimal.Decimal)
	for i := range batch {
		k := walletKey{batch[i].AccountID, batch[i].Asset}
		if _, ok := wallets[k]; ok {
			continue
		}
		w, err := s.walletRepo.GetForUpdate(ctx, dbTx, k.account, k.asset)
		if err != nil {
			return nil, apperror.ErrPersistence(fmt.Errorf("lock wallet: %w", err))
		}
		if w == nil {
			now := time.Now().UTC()
			w = &domain.Wallet{
				ID:        uuid.New(),
				AccountID: k.account,
				Asset:     k.asset,
				Balance:   decimal.Zero,
				IsPrimary: true,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := s.walletRepo.CreateInTx(ctx, dbTx, w); err != nil {
				return nil, apperror.ErrPersistence(fmt.Errorf("create wallet: %w", err))
			}
		}
		wallets[k] = w
		balances[k] = w.Balance
	}

	// All-or-nothing funds check plus running balance computation. If any
	// debit would go negative the whole batch is rejected and the deferred
	// rollback leaves every wallet untouched.
	now := time.Now().UTC()
	entries := make([]domain.JournalEntry, 0, len(batch))
	for i := range batch {
		k := walletKey{batch[i].AccountID, batch[i].Asset}
		delta := batch[i].Kind.SignedDelta(batch[i].Amount)
		next := balances[k].Add(delta)
		if next.IsNegative() {
			return &ports.ApplyResult{
				Status:   ports.ApplyInsufficientFunds,
				Applied:  false,
				Balance:  wallets[walletKey{batch[0].AccountID, batch[0].Asset}].Balance,
				Balances: snapshotBalances(wallets),
				Reason:   fmt.Sprintf("%s of %s %s exceeds balance %s", batch[i].Kind, batch[i].Amount, batch[i].Asset, balances[k]),
			}, nil
		}
		balances[k] = next
		entries = append(entries, domain.JournalEntry{
			ID:             uuid.New(),
			IdempotencyKey: idempotencyKey,
			AccountID:      batch[i].AccountID,
			Asset:          batch[i].Asset,
			Kind:           batch[i].Kind,
			Delta:          delta,
			BalanceAfter:   next,
			HouseEdge:      batch[i].HouseEdge,
			Description:    batch[i].Description,
			CreatedAt:      now,
		})
	}

	// Persist: journal append, aggregate counters, wallet balances — one
	// atomic unit of work, never independently-failable steps.
	for i := range entries {
		if err := s.journalRepo.CreateInTx(ctx, dbTx, &entries[i]); err != nil {
			return nil, apperror.ErrPersistence(fmt.Errorf("append journal entry: %w", err))
		}
		if err := s.statsRepo.ApplyInTx(ctx, dbTx, entries[i].AccountID, entries[i].Asset, entries[i].Kind, entries[i].Delta.Abs()); err != nil {
			return nil, apperror.ErrPersistence(fmt.Errorf("update stats: %w", err))
		}
	}
	for k, w := range wallets {
		if err := s.walletRepo.UpdateBalance(ctx, dbTx, w.ID, balances[k]); err != nil {
			return nil, apperror.ErrPersistence(fmt.Errorf("update wallet balance: %w", err))
		}
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.ErrPersistence(fmt.Errorf("commit tx: %w", err))
	}

	// Observable side effects fire strictly after commit.
	for i := range entries {
		event := domain.LedgerEvent{
			EventName: domain.EventFundsMoved,
			AccountID: entries[i].AccountID,
			Asset:     entries[i].Asset,
			Amount:    entries[i].Delta,
		}
		if err := s.events.Publish(ctx, event); err != nil {
			s.log.Warn().Err(err).Str("account_id", entries[i].AccountID.String()).Msg("failed to publish ledger event")
		}
	}

	first := walletKey{batch[0].AccountID, batch[0].Asset}
	result := &ports.ApplyResult{
		Status:   ports.ApplySuccess,
		Applied:  true,
		Balance:  balances[first],
		Balances: balanceMap(balances),
		Entries:  entries,
	}

	s.log.Info().
		Str("idempotency_key", idempotencyKey).
		Int("operations", len(batch)).
		Str("balance", result.Balance.String()).
		Msg("ledger batch applied")

	return result, nil
}

// replayResult reports the current balances for a batch that was already
// applied under this key. No delta is reapplied.
func (s *LedgerServiceImpl) replayResult(ctx context.Context, batch domain.OperationBatch) (*ports.ApplyResult, error) {
	balances := make(map[string]decimal.Decimal)
	var first decimal.Decimal
	for i := range batch {
		w, err := s.walletRepo.GetByAccount(ctx, batch[i].AccountID, batch[i].Asset)
		if err != nil {
			return nil, apperror.ErrPersistence(fmt.Errorf("read wallet: %w", err))
		}
		if w == nil {
			return nil, apperror.ErrNotFound("Wallet")
		}
		balances[balanceKey(w.AccountID, w.Asset)] = w.Balance
		if i == 0 {
			first = w.Balance
		}
	}
	return &ports.ApplyResult{
		Status:   ports.ApplySuccess,
		Applied:  false,
		Balance:  first,
		Balances: balances,
	}, nil
}

// Balance returns the materialized wallet balance.
func (s *LedgerServiceImpl) Balance(ctx context.Context, accountID uuid.UUID, asset string) (decimal.Decimal, error) {
	if !domain.KnownAsset(asset) {
		return decimal.Zero, apperror.ErrUnknownAsset(asset)
	}
	w, err := s.walletRepo.GetByAccount(ctx, accountID, asset)
	if err != nil {
		return decimal.Zero, apperror.ErrPersistence(fmt.Errorf("read wallet: %w", err))
	}
	if w == nil {
		return decimal.Zero, nil
	}
	return w.Balance, nil
}

// Stats returns the rolling aggregates for an account and asset.
func (s *LedgerServiceImpl) Stats(ctx context.Context, accountID uuid.UUID, asset string) (*domain.AccountStats, error) {
	if !domain.KnownAsset(asset) {
		return nil, apperror.ErrUnknownAsset(asset)
	}
	stats, err := s.statsRepo.Get(ctx, accountID, asset)
	if err != nil {
		return nil, apperror.ErrPersistence(fmt.Errorf("read stats: %w", err))
	}
	if stats == nil {
		return &domain.AccountStats{
			AccountID:      accountID,
			Asset:          asset,
			TotalDeposited: decimal.Zero,
			TotalWithdrawn: decimal.Zero,
			TotalWagered:   decimal.Zero,
			TotalWon:       decimal.Zero,
		}, nil
	}
	return stats, nil
}

// History returns the most recent journal entries for an account.
func (s *LedgerServiceImpl) History(ctx context.Context, accountID uuid.UUID, limit int) ([]domain.JournalEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	entries, err := s.journalRepo.ListByAccount(ctx, accountID, limit)
	if err != nil {
		return nil, apperror.ErrPersistence(fmt.Errorf("list journal: %w", err))
	}
	return entries, nil
}

func (s *LedgerServiceImpl) releaseAll(ctx context.Context, tokens map[string]string) {
	for key, token := range tokens {
		if err := s.locker.Release(ctx, key, token); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("failed to release account lock")
		}
	}
}

// validateBatch rejects malformed input before any lock or transaction.
func validateBatch(batch domain.OperationBatch, idempotencyKey string) error {
	if idempotencyKey == "" {
		return apperror.ErrValidation("idempotency key must not be empty")
	}
	if len(batch) == 0 {
		return apperror.ErrValidation("operation batch must not be empty")
	}

	type slot struct {
		account uuid.UUID
		kind    domain.OperationKind
	}
	seen := make(map[slot]bool, len(batch))
	for i := range batch {
		op := &batch[i]
		if op.AccountID == uuid.Nil {
			return apperror.ErrValidation("operation account id must be set")
		}
		if !op.Kind.Known() {
			return apperror.ErrUnknownOperationKind(string(op.Kind))
		}
		if !domain.KnownAsset(op.Asset) {
			return apperror.ErrUnknownAsset(op.Asset)
		}
		if !op.Amount.IsPositive() {
			return apperror.ErrValidation(fmt.Sprintf("operation amount %s must be a positive magnitude", op.Amount))
		}
		k := slot{op.AccountID, op.Kind}
		if seen[k] {
			return apperror.ErrValidation(fmt.Sprintf("duplicate %s operation for account %s in one batch", op.Kind, op.AccountID))
		}
		seen[k] = true
	}
	return nil
}

// batchFingerprint identifies the batch payload so a key reuse with a
// different payload is detected on the cache fast path too.
func batchFingerprint(batch domain.OperationBatch) string {
	h := sha256.New()
	for i := range batch {
		fmt.Fprintf(h, "%s|%s|%s|%s;", batch[i].AccountID, batch[i].Asset, batch[i].Kind, batch[i].Amount)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// walletKey identifies one wallet inside a batch.
type walletKey struct {
	account uuid.UUID
	asset   string
}

func balanceKey(accountID uuid.UUID, asset string) string {
	return accountID.String() + ":" + asset
}

func snapshotBalances(wallets map[walletKey]*domain.Wallet) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(wallets))
	for k, w := range wallets {
		out[balanceKey(k.account, k.asset)] = w.Balance
	}
	return out
}

func balanceMap(balances map[walletKey]decimal.Decimal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(balances))
	for k, b := range balances {
		out[balanceKey(k.account, k.asset)] = b
	}
	return out
}
