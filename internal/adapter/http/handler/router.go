package handler

import (
	"net/http"

	"fair-wager-core/internal/adapter/http/middleware"
	"fair-wager-core/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	LedgerSvc      ports.LedgerService
	FairnessSvc    ports.FairnessService
	SeedSvc        ports.SeedService
	RateSvc        ports.RateService
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	v1 := r.Group("/v1")

	ledgerHandler := NewLedgerHandler(deps.LedgerSvc)
	ledger := v1.Group("/ledger")
	{
		ledger.POST("/apply", ledgerHandler.Apply)
		ledger.GET("/:account_id/balance/:asset", ledgerHandler.GetBalance)
		ledger.GET("/:account_id/stats/:asset", ledgerHandler.GetStats)
		ledger.GET("/:account_id/history", ledgerHandler.GetHistory)
	}

	fairnessHandler := NewFairnessHandler(deps.FairnessSvc)
	fair := v1.Group("/fair")
	{
		fair.POST("/outcome", fairnessHandler.Outcome)
		fair.POST("/verify", fairnessHandler.Verify)
	}

	seedHandler := NewSeedHandler(deps.SeedSvc)
	seeds := v1.Group("/seeds")
	{
		seeds.POST("/activate", seedHandler.Activate)
		seeds.POST("/rotate", seedHandler.Rotate)
		seeds.GET("/:account_id", seedHandler.Current)
	}

	rateHandler := NewRateHandler(deps.RateSvc)
	v1.GET("/rates/:asset", rateHandler.GetRate)

	return r
}

// HealthCheck pings every registered dependency and reports per-dependency
// status. Any failure degrades the whole endpoint to 503.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		type depStatus struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}

		deps := make(map[string]depStatus)
		allHealthy := true

		for _, checker := range checkers {
			if err := checker.Ping(c.Request.Context()); err != nil {
				deps[checker.Name()] = depStatus{Status: "unhealthy", Error: err.Error()}
				allHealthy = false
			} else {
				deps[checker.Name()] = depStatus{Status: "healthy"}
			}
		}

		status := "healthy"
		httpCode := http.StatusOK
		if !allHealthy {
			status = "degraded"
			httpCode = http.StatusServiceUnavailable
		}

		c.JSON(httpCode, gin.H{
			"status":       status,
			"dependencies": deps,
		})
	}
}
