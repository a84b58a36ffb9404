package dto

// OperationRequest is one balance mutation inside an apply batch. Amounts
// travel as decimal strings; floats are never accepted for money.
type OperationRequest struct {
	AccountID   string   `json:"account_id" binding:"required,uuid"`
	Asset       string   `json:"asset" binding:"required"`
	Kind        string   `json:"kind" binding:"required"`
	Amount      string   `json:"amount" binding:"required"`
	Description string   `json:"description,omitempty"`
	HouseEdge   *float64 `json:"house_edge,omitempty"`
}

// ApplyRequest is the request body for a ledger batch apply.
type ApplyRequest struct {
	IdempotencyKey string             `json:"idempotency_key" binding:"required,max=128"`
	Operations     []OperationRequest `json:"operations" binding:"required,min=1,dive"`
}

// JournalEntryResponse is one applied journal entry.
type JournalEntryResponse struct {
	ID           string `json:"id"`
	AccountID    string `json:"account_id"`
	Asset        string `json:"asset"`
	Kind         string `json:"kind"`
	Delta        string `json:"delta"`
	BalanceAfter string `json:"balance_after"`
	Description  string `json:"description,omitempty"`
	CreatedAt    string `json:"created_at"`
}

// ApplyResponse is the response body for a ledger batch apply.
type ApplyResponse struct {
	Status   string                 `json:"status"`
	Applied  bool                   `json:"applied"`
	Balance  string                 `json:"balance"`
	Balances map[string]string      `json:"balances,omitempty"`
	Entries  []JournalEntryResponse `json:"entries,omitempty"`
	Reason   string                 `json:"reason,omitempty"`
}

// BalanceResponse reports one wallet's materialized balance.
type BalanceResponse struct {
	AccountID string `json:"account_id"`
	Asset     string `json:"asset"`
	Balance   string `json:"balance"`
}

// StatsResponse reports the rolling aggregates for an account and asset.
type StatsResponse struct {
	AccountID      string `json:"account_id"`
	Asset          string `json:"asset"`
	TotalDeposited string `json:"total_deposited"`
	TotalWithdrawn string `json:"total_withdrawn"`
	TotalWagered   string `json:"total_wagered"`
	TotalWon       string `json:"total_won"`
}

// OutcomeRequest is the request body for a provably-fair outcome draw.
type OutcomeRequest struct {
	ServerSeed string   `json:"server_seed" binding:"required"`
	ClientSeed string   `json:"client_seed" binding:"required"`
	Nonce      int64    `json:"nonce" binding:"min=0"`
	GameType   string   `json:"game_type" binding:"required"`
	HouseEdge  *float64 `json:"house_edge,omitempty"`
	Cursor     int      `json:"cursor" binding:"min=0"`
	MineCount  int      `json:"mine_count,omitempty" binding:"min=0"`
	Rows       int      `json:"rows,omitempty" binding:"min=0"`
}

// VerifyRequest is the request body for outcome verification.
type VerifyRequest struct {
	OutcomeRequest
	ClaimedValue float64 `json:"claimed_value"`
	ClaimedCells []int   `json:"claimed_cells,omitempty"`
}

// OutcomeResponse is the response body for an outcome draw.
type OutcomeResponse struct {
	GameType string  `json:"game_type"`
	Value    float64 `json:"value"`
	Cells    []int   `json:"cells,omitempty"`
	Digest   string  `json:"digest"`
	Nonce    int64   `json:"nonce"`
	Cursor   int     `json:"cursor"`
}

// VerifyResponse reports whether a claimed outcome matches recomputation.
type VerifyResponse struct {
	IsValid    bool             `json:"is_valid"`
	Recomputed *OutcomeResponse `json:"recomputed"`
}

// ActivateSeedRequest is the request body for seed pair activation.
type ActivateSeedRequest struct {
	AccountID  string `json:"account_id" binding:"required,uuid"`
	ClientSeed string `json:"client_seed,omitempty" binding:"max=64"`
}

// RotateSeedRequest is the request body for seed pair rotation.
type RotateSeedRequest struct {
	AccountID  string `json:"account_id" binding:"required,uuid"`
	ClientSeed string `json:"client_seed,omitempty" binding:"max=64"`
}

// SeedPairResponse is a seed pair as shown to the caller. The server seed is
// present only for retired pairs; active pairs expose the commitment alone.
type SeedPairResponse struct {
	ID         string `json:"id"`
	AccountID  string `json:"account_id"`
	ServerSeed string `json:"server_seed,omitempty"`
	Commitment string `json:"commitment"`
	ClientSeed string `json:"client_seed"`
	Nonce      int64  `json:"nonce"`
	IsActive   bool   `json:"is_active"`
	CreatedAt  string `json:"created_at"`
	RetiredAt  string `json:"retired_at,omitempty"`
}

// RotateSeedResponse reveals the retired pair alongside the new active one.
type RotateSeedResponse struct {
	Revealed *SeedPairResponse `json:"revealed"`
	Active   *SeedPairResponse `json:"active"`
}

// RateResponse reports one asset's reference-currency rate.
type RateResponse struct {
	Asset string `json:"asset"`
	Rate  string `json:"rate"`
}
