package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOperationKind_Sign(t *testing.T) {
	tests := []struct {
		name   string
		kind   OperationKind
		credit bool
	}{
		{"deposit", OpDeposit, true},
		{"win", OpWin, true},
		{"bonus", OpBonus, true},
		{"refund", OpRefund, true},
		{"incoming tip", OpTipIn, true},
		{"withdraw", OpWithdraw, false},
		{"bet", OpBet, false},
		{"outgoing tip", OpTipOut, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.credit, tt.kind.IsCredit())
			assert.Equal(t, !tt.credit, tt.kind.IsDebit())
			assert.True(t, tt.kind.Known())
		})
	}
}

func TestOperationKind_Unknown(t *testing.T) {
	assert.False(t, OperationKind("SPLIT").Known())
}

func TestOperationKind_SignedDelta(t *testing.T) {
	ten := decimal.RequireFromString("10.00000000")

	assert.True(t, OpDeposit.SignedDelta(ten).Equal(ten))
	assert.True(t, OpBet.SignedDelta(ten).Equal(ten.Neg()))
}

func TestOperationBatch_Accounts_SortedDistinct(t *testing.T) {
	a := uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000000")
	b := uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000000")

	batch := OperationBatch{
		{AccountID: b, Kind: OpBet},
		{AccountID: a, Kind: OpTipIn},
		{AccountID: b, Kind: OpWin},
	}

	assert.Equal(t, []uuid.UUID{a, b}, batch.Accounts())
}

func TestAssetScale(t *testing.T) {
	scale, ok := AssetScale("BTC")
	assert.True(t, ok)
	assert.Equal(t, int32(8), scale)

	_, ok = AssetScale("XYZ")
	assert.False(t, ok)
	assert.False(t, KnownAsset("XYZ"))
	assert.True(t, KnownAsset("USD"))
}

func TestCommit_Deterministic(t *testing.T) {
	c1 := Commit("server-seed-1")
	c2 := Commit("server-seed-1")
	c3 := Commit("server-seed-2")

	assert.Equal(t, c1, c2)
	assert.NotEqual(t, c1, c3)
	assert.Len(t, c1, 64, "hex sha-256")
}

func TestVerifyCommitment(t *testing.T) {
	seed := "some-secret-seed"
	commitment := Commit(seed)

	assert.True(t, VerifyCommitment(seed, commitment))
	assert.False(t, VerifyCommitment("other-seed", commitment))
}

func TestGameType_Known(t *testing.T) {
	assert.True(t, GameDice.Known())
	assert.True(t, GameCrash.Known())
	assert.True(t, GameMines.Known())
	assert.True(t, GameWheel.Known())
	assert.True(t, GamePlinko.Known())
	assert.False(t, GameType("POKER").Known())
}
