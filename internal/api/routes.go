package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/seoforge/content-analyzer/internal/platform/jwtauth"
	"github.com/seoforge/content-analyzer/internal/telemetry"
)

// RouteOptions holds everything SetupRoutes needs beyond the handler.
type RouteOptions struct {
	JWTSecret string
	Telemetry *telemetry.Provider
	Ready     func() error
}

// SetupRoutes configures all API routes. An empty JWTSecret leaves the API
// group unprotected, which is the local development mode.
func SetupRoutes(router *gin.Engine, handler *Handler, opts RouteOptions) {
	// Readiness probe, distinct from /health which the server registers.
	router.GET("/ready", readyHandler(opts.Ready))

	if opts.Telemetry != nil {
		router.GET("/metrics", gin.WrapH(opts.Telemetry.Handler()))
	}

	v1 := jwtauth.ProtectedGroup(router, "/api/v1", opts.JWTSecret)
	{
		analyze := v1.Group("/analyze")
		{
			analyze.POST("", handler.Analyze)                          // POST /api/v1/analyze
			analyze.POST("/batch", handler.AnalyzeBatch)               // POST /api/v1/analyze/batch
			analyze.POST("/phrases", handler.DetectPhrases)            // POST /api/v1/analyze/phrases
			analyze.POST("/phrases/sanitize", handler.SanitizePhrases) // POST /api/v1/analyze/phrases/sanitize
			analyze.POST("/hallucinations", handler.DetectHallucinations)
			analyze.POST("/eeat", handler.AnalyzeEeat)
			analyze.POST("/local", handler.AnalyzeLocal)
		}

		rules := v1.Group("/rules")
		{
			rules.GET("", handler.ListRules)         // GET /api/v1/rules
			rules.POST("", handler.CreateRule)       // POST /api/v1/rules
			rules.PUT("/:id", handler.UpdateRule)    // PUT /api/v1/rules/:id
			rules.DELETE("/:id", handler.DeleteRule) // DELETE /api/v1/rules/:id
		}

		v1.GET("/history/:content_id", handler.GetHistory)

		stats := v1.Group("/stats")
		{
			stats.GET("", handler.GetStats)                    // GET /api/v1/stats
			stats.GET("/risk", handler.GetRiskStats)           // GET /api/v1/stats/risk
			stats.GET("/categories", handler.GetCategoryStats) // GET /api/v1/stats/categories
		}
	}
}

func readyHandler(ready func() error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ready != nil {
			if err := ready(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status": "not ready",
					"error":  err.Error(),
				})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
