package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"fair-wager-core/config"
	"fair-wager-core/internal/core/domain"
	"fair-wager-core/internal/core/ports"
	"fair-wager-core/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

const serverSeedBytes = 32

// SeedServiceImpl implements ports.SeedService. Rotation and nonce
// consumption run under the same per-account lock the ledger engine uses, so
// a rotation can never observe or assign a stale nonce mid-bet.
type SeedServiceImpl struct {
	seedRepo   ports.SeedPairRepository
	transactor ports.DBTransactor
	locker     ports.AccountLocker
	lockCfg    config.LockConfig
	log        zerolog.Logger
}

// NewSeedService creates a new SeedServiceImpl.
func NewSeedService(
	seedRepo ports.SeedPairRepository,
	transactor ports.DBTransactor,
	locker ports.AccountLocker,
	lockCfg config.LockConfig,
	log zerolog.Logger,
) *SeedServiceImpl {
	return &SeedServiceImpl{
		seedRepo:   seedRepo,
		transactor: transactor,
		locker:     locker,
		lockCfg:    lockCfg,
		log:        log,
	}
}

// Activate creates a fresh seed pair for an account that has none. Only the
// commitment hash is published; the secret stays server-side until rotation.
func (s *SeedServiceImpl) Activate(ctx context.Context, accountID uuid.UUID, clientSeed string) (*domain.SeedPair, error) {
	key := ports.AccountLockKey(accountID)
	token, err := s.locker.Acquire(ctx, key, s.lockCfg.TTL)
	if err != nil {
		if errors.Is(err, ports.ErrLockNotAcquired) {
			return nil, apperror.ErrLockTimeout(key, err)
		}
		return nil, apperror.InternalError(fmt.Errorf("acquire account lock: %w", err))
	}
	defer s.release(ctx, key, token)

	existing, err := s.seedRepo.GetActive(ctx, accountID)
	if err != nil {
		return nil, apperror.ErrPersistence(fmt.Errorf("get active seed pair: %w", err))
	}
	if existing != nil {
		return nil, apperror.ErrSeedPairExists()
	}

	pair, err := newSeedPair(accountID, clientSeed)
	if err != nil {
		return nil, apperror.InternalError(err)
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrPersistence(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.seedRepo.CreateInTx(ctx, dbTx, pair); err != nil {
		return nil, apperror.ErrPersistence(fmt.Errorf("create seed pair: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.ErrPersistence(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("account_id", accountID.String()).
		Str("commitment", pair.Commitment).
		Msg("seed pair activated")

	return pair, nil
}

// Rotate retires the active pair and activates a new one as a single atomic,
// lock-guarded action. The retired pair's secret is revealed in the result so
// its past outcomes become verifiable; the pair itself is kept forever.
func (s *SeedServiceImpl) Rotate(ctx context.Context, accountID uuid.UUID, newClientSeed string) (*ports.RotationResult, error) {
	key := ports.AccountLockKey(accountID)
	token, err := s.locker.Acquire(ctx, key, s.lockCfg.TTL)
	if err != nil {
		if errors.Is(err, ports.ErrLockNotAcquired) {
			return nil, apperror.ErrLockTimeout(key, err)
		}
		return nil, apperror.InternalError(fmt.Errorf("acquire account lock: %w", err))
	}
	defer s.release(ctx, key, token)

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrPersistence(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	current, err := s.seedRepo.GetActiveInTx(ctx, dbTx, accountID)
	if err != nil {
		return nil, apperror.ErrPersistence(fmt.Errorf("get active seed pair: %w", err))
	}
	if current == nil {
		return nil, apperror.ErrSeedPairNotActive()
	}

	now := time.Now().UTC()
	if err := s.seedRepo.RetireInTx(ctx, dbTx, current.ID, now); err != nil {
		return nil, apperror.ErrPersistence(fmt.Errorf("retire seed pair: %w", err))
	}

	next, err := newSeedPair(accountID, newClientSeed)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if err := s.seedRepo.CreateInTx(ctx, dbTx, next); err != nil {
		return nil, apperror.ErrPersistence(fmt.Errorf("create seed pair: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.ErrPersistence(fmt.Errorf("commit tx: %w", err))
	}

	current.IsActive = false
	current.RetiredAt = &now

	s.log.Info().
		Str("account_id", accountID.String()).
		Str("retired_commitment", current.Commitment).
		Str("new_commitment", next.Commitment).
		Msg("seed pair rotated")

	return &ports.RotationResult{Revealed: current, Active: next}, nil
}

// NextNonce atomically consumes the next nonce of the active pair.
func (s *SeedServiceImpl) NextNonce(ctx context.Context, accountID uuid.UUID) (*domain.SeedPair, int64, error) {
	key := ports.AccountLockKey(accountID)
	token, err := s.locker.Acquire(ctx, key, s.lockCfg.TTL)
	if err != nil {
		if errors.Is(err, ports.ErrLockNotAcquired) {
			return nil, 0, apperror.ErrLockTimeout(key, err)
		}
		return nil, 0, apperror.InternalError(fmt.Errorf("acquire account lock: %w", err))
	}
	defer s.release(ctx, key, token)

	nonce, err := s.seedRepo.IncrementNonce(ctx, accountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, apperror.ErrSeedPairNotActive()
		}
		return nil, 0, apperror.ErrPersistence(fmt.Errorf("increment nonce: %w", err))
	}

	pair, err := s.seedRepo.GetActive(ctx, accountID)
	if err != nil {
		return nil, 0, apperror.ErrPersistence(fmt.Errorf("get active seed pair: %w", err))
	}
	if pair == nil {
		return nil, 0, apperror.ErrSeedPairNotActive()
	}
	return pair, nonce, nil
}

// Current returns the active pair without consuming a nonce.
func (s *SeedServiceImpl) Current(ctx context.Context, accountID uuid.UUID) (*domain.SeedPair, error) {
	pair, err := s.seedRepo.GetActive(ctx, accountID)
	if err != nil {
		return nil, apperror.ErrPersistence(fmt.Errorf("get active seed pair: %w", err))
	}
	if pair == nil {
		return nil, apperror.ErrSeedPairNotActive()
	}
	return pair, nil
}

func (s *SeedServiceImpl) release(ctx context.Context, key, token string) {
	if err := s.locker.Release(ctx, key, token); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("failed to release account lock")
	}
}

func newSeedPair(accountID uuid.UUID, clientSeed string) (*domain.SeedPair, error) {
	secret := make([]byte, serverSeedBytes)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generate server seed: %w", err)
	}
	serverSeed := hex.EncodeToString(secret)

	if clientSeed == "" {
		b := make([]byte, 8)
		if _, err := rand.Read(b); err != nil {
			return nil, fmt.Errorf("generate client seed: %w", err)
		}
		clientSeed = hex.EncodeToString(b)
	}

	return &domain.SeedPair{
		ID:         uuid.New(),
		AccountID:  accountID,
		ServerSeed: serverSeed,
		Commitment: domain.Commit(serverSeed),
		ClientSeed: clientSeed,
		Nonce:      0,
		IsActive:   true,
		CreatedAt:  time.Now().UTC(),
	}, nil
}
