package handler

import (
	"strconv"
	"time"

	"fair-wager-core/internal/adapter/http/dto"
	"fair-wager-core/internal/core/domain"
	"fair-wager-core/internal/core/ports"
	"fair-wager-core/pkg/apperror"
	"fair-wager-core/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerHandler handles ledger endpoints.
type LedgerHandler struct {
	ledgerSvc ports.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerSvc ports.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerSvc: ledgerSvc}
}

// Apply handles POST /v1/ledger/apply.
func (h *LedgerHandler) Apply(c *gin.Context) {
	var req dto.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.ErrValidation(err.Error()))
		return
	}

	batch := make(domain.OperationBatch, 0, len(req.Operations))
	for i := range req.Operations {
		op, err := toOperation(&req.Operations[i])
		if err != nil {
			response.Error(c, err)
			return
		}
		batch = append(batch, *op)
	}

	result, err := h.ledgerSvc.Apply(c.Request.Context(), batch, req.IdempotencyKey)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toApplyResponse(result))
}

// GetBalance handles GET /v1/ledger/:account_id/balance/:asset.
func (h *LedgerHandler) GetBalance(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("account_id"))
	if err != nil {
		response.Error(c, apperror.ErrValidation("account_id must be a UUID"))
		return
	}
	asset := c.Param("asset")

	balance, err := h.ledgerSvc.Balance(c.Request.Context(), accountID, asset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.BalanceResponse{
		AccountID: accountID.String(),
		Asset:     asset,
		Balance:   balance.String(),
	})
}

// GetStats handles GET /v1/ledger/:account_id/stats/:asset.
func (h *LedgerHandler) GetStats(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("account_id"))
	if err != nil {
		response.Error(c, apperror.ErrValidation("account_id must be a UUID"))
		return
	}
	asset := c.Param("asset")

	stats, err := h.ledgerSvc.Stats(c.Request.Context(), accountID, asset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.StatsResponse{
		AccountID:      stats.AccountID.String(),
		Asset:          stats.Asset,
		TotalDeposited: stats.TotalDeposited.String(),
		TotalWithdrawn: stats.TotalWithdrawn.String(),
		TotalWagered:   stats.TotalWagered.String(),
		TotalWon:       stats.TotalWon.String(),
	})
}

// GetHistory handles GET /v1/ledger/:account_id/history.
func (h *LedgerHandler) GetHistory(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("account_id"))
	if err != nil {
		response.Error(c, apperror.ErrValidation("account_id must be a UUID"))
		return
	}
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 500 {
			response.Error(c, apperror.ErrValidation("limit must be a positive integer up to 500"))
			return
		}
		limit = parsed
	}

	entries, err := h.ledgerSvc.History(c.Request.Context(), accountID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.JournalEntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, toEntryResponse(&entries[i]))
	}
	response.OK(c, out)
}

func toOperation(op *dto.OperationRequest) (*domain.Operation, error) {
	accountID, err := uuid.Parse(op.AccountID)
	if err != nil {
		return nil, apperror.ErrValidation("operation account_id must be a UUID")
	}
	amount, err := decimal.NewFromString(op.Amount)
	if err != nil {
		return nil, apperror.ErrValidation("operation amount must be a decimal string")
	}
	return &domain.Operation{
		AccountID:   accountID,
		Asset:       op.Asset,
		Kind:        domain.OperationKind(op.Kind),
		Amount:      amount,
		Description: op.Description,
		HouseEdge:   houseEdgeDecimal(op.HouseEdge),
	}, nil
}

func houseEdgeDecimal(edge *float64) *decimal.Decimal {
	if edge == nil {
		return nil
	}
	d := decimal.NewFromFloat(*edge)
	return &d
}

func toApplyResponse(result *ports.ApplyResult) dto.ApplyResponse {
	balances := make(map[string]string, len(result.Balances))
	for key, balance := range result.Balances {
		balances[key] = balance.String()
	}
	entries := make([]dto.JournalEntryResponse, 0, len(result.Entries))
	for i := range result.Entries {
		entries = append(entries, toEntryResponse(&result.Entries[i]))
	}
	return dto.ApplyResponse{
		Status:   string(result.Status),
		Applied:  result.Applied,
		Balance:  result.Balance.String(),
		Balances: balances,
		Entries:  entries,
		Reason:   result.Reason,
	}
}

func toEntryResponse(e *domain.JournalEntry) dto.JournalEntryResponse {
	return dto.JournalEntryResponse{
		ID:           e.ID.String(),
		AccountID:    e.AccountID.String(),
		Asset:        e.Asset,
		Kind:         string(e.Kind),
		Delta:        e.Delta.String(),
		BalanceAfter: e.BalanceAfter.String(),
		Description:  e.Description,
		CreatedAt:    e.CreatedAt.Format(time.RFC3339),
	}
}
