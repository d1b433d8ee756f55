package http

import (
	"bytes"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"holland-test/internal/chart"
	"holland-test/internal/domain"
	"holland-test/internal/service"
)

// AssessmentHandler expone las sesiones de evaluacion por HTTP.
type AssessmentHandler struct {
	logger *zap.Logger
	svc    *service.AssessmentService
}

// NewAssessmentHandler crea una instancia de AssessmentHandler con dependencias necesarias.
func NewAssessmentHandler(logger *zap.Logger, svc *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{
		logger: logger,
		svc:    svc,
	}
}

// GetCatalog maneja GET /catalog.
func (h *AssessmentHandler) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"traits": h.svc.Catalog(),
		"scale":  domain.ScaleLabels(),
		"mode":   h.svc.Mode(),
	})
}

// CreateAssessment maneja POST /assessments.
func (h *AssessmentHandler) CreateAssessment(c *gin.Context) {
	session, err := h.svc.StartSession(c.Request.Context(), c.ClientIP())
	if err != nil {
		h.writeError(c, "create assessment failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"assessment": session.Progress()})
}

// GetProgress maneja GET /assessments/:id.
func (h *AssessmentHandler) GetProgress(c *gin.Context) {
	progress, err := h.svc.Progress(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, "get progress failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assessment": progress})
}

// DeleteAssessment maneja DELETE /assessments/:id.
func (h *AssessmentHandler) DeleteAssessment(c *gin.Context) {
	if err := h.svc.CloseSession(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, "delete assessment failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SelectResponse maneja PUT /assessments/:id/traits/:code/responses/:index.
func (h *AssessmentHandler) SelectResponse(c *gin.Context) {
	var req struct {
		Level *int `json:"level" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid select response request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid statement index"})
		return
	}

	code := domain.TraitCode(c.Param("code"))
	if err := h.svc.SelectResponse(c.Request.Context(), c.Param("id"), code, index, domain.Level(*req.Level)); err != nil {
		h.writeError(c, "select response failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SubmitTrait maneja POST /assessments/:id/traits/:code/submit. El body es opcional.
func (h *AssessmentHandler) SubmitTrait(c *gin.Context) {
	var req struct {
		Levels []int `json:"levels"`
	}
	// Sin body (incluido chunked vacio) se envian las selecciones actuales.
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			h.logger.Warn("invalid submit trait request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
	}

	levels := make([]domain.Level, len(req.Levels))
	for i, l := range req.Levels {
		levels[i] = domain.Level(l)
	}
	res, err := h.svc.SubmitTrait(c.Request.Context(), c.Param("id"), domain.TraitCode(c.Param("code")), levels)
	if err != nil {
		h.writeError(c, "submit trait failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": res})
}

// CloseTrait maneja POST /assessments/:id/traits/:code/close.
func (h *AssessmentHandler) CloseTrait(c *gin.Context) {
	if err := h.svc.AbandonTrait(c.Request.Context(), c.Param("id"), domain.TraitCode(c.Param("code"))); err != nil {
		h.writeError(c, "close trait failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetResult maneja GET /assessments/:id/result.
func (h *AssessmentHandler) GetResult(c *gin.Context) {
	report, err := h.svc.Results(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, "get result failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": report})
}

// GetDistribution maneja GET /assessments/:id/distribution. Con ?format=svg|png
// devuelve el grafico en lugar del JSON.
func (h *AssessmentHandler) GetDistribution(c *gin.Context) {
	dist, err := h.svc.Distribution(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, "get distribution failed", err)
		return
	}

	rawFormat := c.Query("format")
	if rawFormat == "" || rawFormat == "json" {
		c.JSON(http.StatusOK, gin.H{"distribution": dist})
		return
	}
	format, err := chart.ParseFormat(rawFormat)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported format"})
		return
	}
	var buf bytes.Buffer
	if err := chart.RenderDonut(&buf, dist, format); err != nil {
		h.logger.Error("render chart failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not render chart"})
		return
	}
	// El middleware ya fijo application/json y render.Data no lo reemplaza.
	c.Header("Content-Type", format.ContentType())
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

func (h *AssessmentHandler) writeError(c *gin.Context, msg string, err error) {
	status, code := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(msg, zap.Error(err))
	} else {
		h.logger.Warn(msg, zap.Error(err))
	}
	var limited *service.RateLimitedError
	if errors.As(err, &limited) && limited.RetryAfter > 0 {
		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(limited.RetryAfter.Seconds()))))
	}
	body := gin.H{"error": code}
	if status < http.StatusInternalServerError {
		body["message"] = err.Error()
	}
	c.JSON(status, body)
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return http.StatusNotFound, "assessment_not_found"
	case errors.Is(err, service.ErrUnknownTrait):
		return http.StatusNotFound, "unknown_trait"
	case errors.Is(err, service.ErrInvalidResponse):
		return http.StatusBadRequest, "invalid_response"
	case errors.Is(err, service.ErrCollectorClosed):
		return http.StatusConflict, "collector_closed"
	case errors.Is(err, service.ErrIncompleteAggregate):
		return http.StatusConflict, "incomplete_aggregate"
	case errors.Is(err, service.ErrZeroTotal):
		return http.StatusConflict, "zero_total"
	case errors.Is(err, service.ErrRateLimited):
		return http.StatusTooManyRequests, "rate_limited"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
