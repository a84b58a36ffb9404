package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OperationKind is the tagged variant for a balance-changing operation.
type OperationKind string

const (
	OpDeposit  OperationKind = "DEPOSIT"
	OpWithdraw OperationKind = "WITHDRAW"
	OpBet      OperationKind = "BET"
	OpWin      OperationKind = "WIN"
	OpBonus    OperationKind = "BONUS"
	OpRefund   OperationKind = "REFUND"
	OpTipIn    OperationKind = "TIP_IN"
	OpTipOut   OperationKind = "TIP_OUT"
)

var creditKinds = map[OperationKind]bool{
	OpDeposit: true,
	OpWin:     true,
	OpBonus:   true,
	OpRefund:  true,
	OpTipIn:   true,
}

var debitKinds = map[OperationKind]bool{
	OpWithdraw: true,
	OpBet:      true,
	OpTipOut:   true,
}

// IsCredit reports whether the kind adds funds to the wallet.
func (k OperationKind) IsCredit() bool { return creditKinds[k] }

// IsDebit reports whether the kind removes funds from the wallet.
func (k OperationKind) IsDebit() bool { return debitKinds[k] }

// Known reports whether the kind is a recognized operation variant.
func (k OperationKind) Known() bool { return creditKinds[k] || debitKinds[k] }

// SignedDelta applies the kind's sign to a positive magnitude.
func (k OperationKind) SignedDelta(amount decimal.Decimal) decimal.Decimal {
	if k.IsDebit() {
		return amount.Neg()
	}
	return amount
}

// Operation is a single requested balance change. Amount is always a positive
// magnitude; the kind determines the sign.
type Operation struct {
	AccountID   uuid.UUID        `json:"account_id"`
	Asset       string           `json:"asset"`
	Kind        OperationKind    `json:"kind"`
	Amount      decimal.Decimal  `json:"amount"`
	Description string           `json:"description"`
	HouseEdge   *decimal.Decimal `json:"house_edge,omitempty"`
}

// OperationBatch is applied as a single all-or-nothing unit.
type OperationBatch []Operation

// Accounts returns the distinct account ids in the batch, sorted. Locks are
// always taken in this order.
func (b OperationBatch) Accounts() []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(b))
	var ids []uuid.UUID
	for _, op := range b {
		if !seen[op.AccountID] {
			seen[op.AccountID] = true
			ids = append(ids, op.AccountID)
		}
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
	return ids
}

// JournalEntry is an immutable, append-only record of one applied delta.
// (IdempotencyKey, AccountID, Kind) is unique: a retry with the same key
// never applies a second delta.
type JournalEntry struct {
	ID             uuid.UUID        `json:"id"`
	IdempotencyKey string           `json:"idempotency_key"`
	AccountID      uuid.UUID        `json:"account_id"`
	Asset          string           `json:"asset"`
	Kind           OperationKind    `json:"kind"`
	Delta          decimal.Decimal  `json:"delta"`         // signed
	BalanceAfter   decimal.Decimal  `json:"balance_after"` // snapshot at commit
	HouseEdge      *decimal.Decimal `json:"house_edge,omitempty"`
	Description    string           `json:"description"`
	CreatedAt      time.Time        `json:"created_at"`
}

// AccountStats are rolling aggregates maintained in the same atomic unit of
// work as the balance mutation, never as an independently-failable step.
type AccountStats struct {
	AccountID      uuid.UUID       `json:"account_id"`
	Asset          string          `json:"asset"`
	TotalDeposited decimal.Decimal `json:"total_deposited"`
	TotalWithdrawn decimal.Decimal `json:"total_withdrawn"`
	TotalWagered   decimal.Decimal `json:"total_wagered"`
	TotalWon       decimal.Decimal `json:"total_won"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// LedgerEvent is the post-commit notification published for every applied
// operation. It fires strictly after the transaction commits.
type LedgerEvent struct {
	EventName string          `json:"event_name"`
	AccountID uuid.UUID       `json:"account_id"`
	Asset     string          `json:"asset"`
	Amount    decimal.Decimal `json:"amount"`
}

const EventFundsMoved = "ledger.funds_moved"
