package handler

import (
	"time"

	"fair-wager-core/internal/adapter/http/dto"
	"fair-wager-core/internal/core/domain"
	"fair-wager-core/internal/core/ports"
	"fair-wager-core/pkg/apperror"
	"fair-wager-core/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SeedHandler handles seed pair endpoints.
type SeedHandler struct {
	seedSvc ports.SeedService
}

// NewSeedHandler creates a new SeedHandler.
func NewSeedHandler(seedSvc ports.SeedService) *SeedHandler {
	return &SeedHandler{seedSvc: seedSvc}
}

// Activate handles POST /v1/seeds/activate.
func (h *SeedHandler) Activate(c *gin.Context) {
	var req dto.ActivateSeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.ErrValidation(err.Error()))
		return
	}
	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		response.Error(c, apperror.ErrValidation("account_id must be a UUID"))
		return
	}

	pair, err := h.seedSvc.Activate(c.Request.Context(), accountID, req.ClientSeed)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, toSeedPairResponse(pair, false))
}

// Rotate handles POST /v1/seeds/rotate. The retired pair is returned with
// its server seed revealed so past outcomes become verifiable.
func (h *SeedHandler) Rotate(c *gin.Context) {
	var req dto.RotateSeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.ErrValidation(err.Error()))
		return
	}
	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		response.Error(c, apperror.ErrValidation("account_id must be a UUID"))
		return
	}

	result, err := h.seedSvc.Rotate(c.Request.Context(), accountID, req.ClientSeed)
	if err != nil {
		response.Error(c, err)
		return
	}

	revealed := toSeedPairResponse(result.Revealed, true)
	active := toSeedPairResponse(result.Active, false)
	response.OK(c, dto.RotateSeedResponse{Revealed: &revealed, Active: &active})
}

// Current handles GET /v1/seeds/:account_id. Only the commitment of the
// active pair is exposed, never its server seed.
func (h *SeedHandler) Current(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("account_id"))
	if err != nil {
		response.Error(c, apperror.ErrValidation("account_id must be a UUID"))
		return
	}

	pair, err := h.seedSvc.Current(c.Request.Context(), accountID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toSeedPairResponse(pair, false))
}

func toSeedPairResponse(p *domain.SeedPair, revealSecret bool) dto.SeedPairResponse {
	out := dto.SeedPairResponse{
		ID:         p.ID.String(),
		AccountID:  p.AccountID.String(),
		Commitment: p.Commitment,
		ClientSeed: p.ClientSeed,
		Nonce:      p.Nonce,
		IsActive:   p.IsActive,
		CreatedAt:  p.CreatedAt.Format(time.RFC3339),
	}
	if revealSecret {
		out.ServerSeed = p.ServerSeed
	}
	if p.RetiredAt != nil {
		out.RetiredAt = p.RetiredAt.Format(time.RFC3339)
	}
	return out
}
