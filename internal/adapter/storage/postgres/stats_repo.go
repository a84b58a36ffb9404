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

// StatsRepo implements ports.StatsRepository. Aggregates are upserted inside
// the same transaction as the balance mutation.
type StatsRepo struct {
	pool Pool
}

// NewStatsRepo creates a new StatsRepo.
func NewStatsRepo(pool Pool) *StatsRepo {
	return &StatsRepo{pool: pool}
}

// ApplyInTx folds one operation's magnitude into the rolling aggregates.
func (r *StatsRepo) ApplyInTx(ctx context.Context, tx pgx.Tx, accountID uuid.UUID, asset string, kind domain.OperationKind, amount decimal.Decimal) error {
	var column string
	switch kind {
	case domain.OpDeposit:
		column = "total_deposited"
	case domain.OpWithdraw:
		column = "total_withdrawn"
	case domain.OpBet:
		column = "total_wagered"
	case domain.OpWin:
		column = "total_won"
	default:
		// Bonuses, refunds and tips do not feed the rolling aggregates.
		return nil
	}

	query := fmt.Sprintf(`INSERT INTO account_stats (account_id, asset, %s, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (account_id, asset)
		DO UPDATE SET %s = account_stats.%s + $3, updated_at = NOW()`, column, column, column)

	if _, err := tx.Exec(ctx, query, accountID, asset, amount); err != nil {
		return fmt.Errorf("upsert account stats: %w", err)
	}
	return nil
}

// Get fetches the aggregates for an account and asset.
func (r *StatsRepo) Get(ctx context.Context, accountID uuid.UUID, asset string) (*domain.AccountStats, error) {
	query := `SELECT account_id, asset, total_deposited, total_withdrawn, total_wagered, total_won, updated_at
		FROM account_stats WHERE account_id = $1 AND asset = $2`

	s := &domain.AccountStats{}
	err := r.pool.QueryRow(ctx, query, accountID, asset).Scan(
		&s.AccountID, &s.Asset, &s.TotalDeposited, &s.TotalWithdrawn,
		&s.TotalWagered, &s.TotalWon, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account stats: %w", err)
	}
	return s, nil
}
