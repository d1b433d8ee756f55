package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"holland-test/internal/metrics"
)

// NewRouter configura el router de Gin con middlewares y rutas base.
// recorder y metricsHandler son opcionales.
func NewRouter(
	logger *zap.Logger,
	assessmentH *AssessmentHandler,
	recorder *metrics.Recorder,
	metricsHandler http.Handler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())
	if recorder != nil {
		r.Use(recorder.GinMiddleware())
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if metricsHandler != nil {
		r.GET("/metrics", gin.WrapH(metricsHandler))
	}

	r.GET("/catalog", assessmentH.GetCatalog)

	assessments := r.Group("/assessments")
	assessments.POST("", assessmentH.CreateAssessment)
	assessments.GET("/:id", assessmentH.GetProgress)
	assessments.DELETE("/:id", assessmentH.DeleteAssessment)
	assessments.PUT("/:id/traits/:code/responses/:index", assessmentH.SelectResponse)
	assessments.POST("/:id/traits/:code/submit", assessmentH.SubmitTrait)
	assessments.POST("/:id/traits/:code/close", assessmentH.CloseTrait)
	assessments.GET("/:id/result", assessmentH.GetResult)
	assessments.GET("/:id/distribution", assessmentH.GetDistribution)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
