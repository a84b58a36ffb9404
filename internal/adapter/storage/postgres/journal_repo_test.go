package postgres

import (
	"context"
	"testing"
	"time"

	"fair-wager-core/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEntry(accountID uuid.UUID) *domain.JournalEntry {
	return &domain.JournalEntry{
		ID:             uuid.New(),
		IdempotencyKey: "round-17:bet",
		AccountID:      accountID,
		Asset:          "USD",
		Kind:           domain.OpBet,
		Delta:          decimal.RequireFromString("-10"),
		BalanceAfter:   decimal.RequireFromString("90"),
		Description:    "dice bet",
		CreatedAt:      time.Now().UTC().Truncate(time.Microsecond),
	}
}

func journalColumns() []string {
	return []string{"id", "idempotency_key", "account_id", "asset", "kind", "delta", "balance_after", "house_edge", "description", "created_at"}
}

func journalRow(e *domain.JournalEntry) *pgxmock.Rows {
	return pgxmock.NewRows(journalColumns()).AddRow(
		e.ID, e.IdempotencyKey, e.AccountID, e.Asset, e.Kind,
		e.Delta, e.BalanceAfter, e.HouseEdge, e.Description, e.CreatedAt,
	)
}

func TestJournalRepo_CreateInTx(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewJournalRepo(mock)
	e := newTestEntry(uuid.New())

	mock.ExpectBegin()
	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO journal_entries").
		WithArgs(e.ID, e.IdempotencyKey, e.AccountID, e.Asset, e.Kind,
			e.Delta, e.BalanceAfter, e.HouseEdge, e.Description, e.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.CreateInTx(context.Background(), tx, e)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJournalRepo_GetByKeyInTx(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewJournalRepo(mock)
	e := newTestEntry(uuid.New())

	mock.ExpectBegin()
	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	mock.ExpectQuery("SELECT .+ FROM journal_entries").
		WithArgs(e.AccountID, e.Kind, e.IdempotencyKey).
		WillReturnRows(journalRow(e))

	result, err := repo.GetByKeyInTx(context.Background(), tx, e.AccountID, e.Kind, e.IdempotencyKey)
	require.NoError(t, err)
	assert.Equal(t, e.ID, result.ID)
	assert.True(t, result.Delta.Equal(e.Delta))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJournalRepo_GetByKeyInTx_MissReturnsNil(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewJournalRepo(mock)
	accountID := uuid.New()

	mock.ExpectBegin()
	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	mock.ExpectQuery("SELECT .+ FROM journal_entries").
		WithArgs(accountID, domain.OpBet, "unused-key").
		WillReturnRows(pgxmock.NewRows(journalColumns()))

	result, err := repo.GetByKeyInTx(context.Background(), tx, accountID, domain.OpBet, "unused-key")
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJournalRepo_ListByAccount(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewJournalRepo(mock)
	accountID := uuid.New()
	e := newTestEntry(accountID)

	mock.ExpectQuery("SELECT .+ FROM journal_entries .+ ORDER BY created_at DESC LIMIT").
		WithArgs(accountID, 10).
		WillReturnRows(journalRow(e))

	entries, err := repo.ListByAccount(context.Background(), accountID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, e.IdempotencyKey, entries[0].IdempotencyKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}
