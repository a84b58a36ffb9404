package handler

import (
	"fair-wager-core/internal/adapter/http/dto"
	"fair-wager-core/internal/core/ports"
	"fair-wager-core/pkg/response"

	"github.com/gin-gonic/gin"
)

// RateHandler handles conversion rate endpoints.
type RateHandler struct {
	rateSvc ports.RateService
}

// NewRateHandler creates a new RateHandler.
func NewRateHandler(rateSvc ports.RateService) *RateHandler {
	return &RateHandler{rateSvc: rateSvc}
}

// GetRate handles GET /v1/rates/:asset.
func (h *RateHandler) GetRate(c *gin.Context) {
	asset := c.Param("asset")

	rate, err := h.rateSvc.Rate(asset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.RateResponse{Asset: asset, Rate: rate.String()})
}
