package handler

import (
	"fair-wager-core/internal/adapter/http/dto"
	"fair-wager-core/internal/core/domain"
	"fair-wager-core/internal/core/ports"
	"fair-wager-core/pkg/apperror"
	"fair-wager-core/pkg/response"

	"github.com/gin-gonic/gin"
)

// FairnessHandler handles provably-fair outcome endpoints.
type FairnessHandler struct {
	fairnessSvc ports.FairnessService
}

// NewFairnessHandler creates a new FairnessHandler.
func NewFairnessHandler(fairnessSvc ports.FairnessService) *FairnessHandler {
	return &FairnessHandler{fairnessSvc: fairnessSvc}
}

// Outcome handles POST /v1/fair/outcome.
func (h *FairnessHandler) Outcome(c *gin.Context) {
	var req dto.OutcomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.ErrValidation(err.Error()))
		return
	}

	outcome, err := h.fairnessSvc.Outcome(toOutcomeRequest(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toOutcomeResponse(outcome))
}

// Verify handles POST /v1/fair/verify.
func (h *FairnessHandler) Verify(c *gin.Context) {
	var req dto.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.ErrValidation(err.Error()))
		return
	}

	result, err := h.fairnessSvc.Verify(ports.VerifyRequest{
		OutcomeRequest: toOutcomeRequest(&req.OutcomeRequest),
		ClaimedValue:   req.ClaimedValue,
		ClaimedCells:   req.ClaimedCells,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	out := toOutcomeResponse(result.Recomputed)
	response.OK(c, dto.VerifyResponse{IsValid: result.IsValid, Recomputed: &out})
}

func toOutcomeRequest(req *dto.OutcomeRequest) ports.OutcomeRequest {
	return ports.OutcomeRequest{
		ServerSeed: req.ServerSeed,
		ClientSeed: req.ClientSeed,
		Nonce:      req.Nonce,
		GameType:   domain.GameType(req.GameType),
		HouseEdge:  req.HouseEdge,
		Cursor:     req.Cursor,
		MineCount:  req.MineCount,
		Rows:       req.Rows,
	}
}

func toOutcomeResponse(o *domain.Outcome) dto.OutcomeResponse {
	return dto.OutcomeResponse{
		GameType: string(o.GameType),
		Value:    o.Value,
		Cells:    o.Cells,
		Digest:   o.Digest,
		Nonce:    o.Nonce,
		Cursor:   o.Cursor,
	}
}
