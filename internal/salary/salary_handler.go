package salary

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	engine *Engine
	logger *zap.Logger
}

func NewHandler(engine *Engine, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("salary.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salary.handler")
	}
	return &Handler{engine: engine, logger: l}
}

// Compute powers the salary-entry auto-fill in the admin UI: one gross
// figure in, the full component split out. Nothing is persisted here.
func (h *Handler) Compute(c *gin.Context) {
	var req ComputeBreakdownRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.MapValidationError(err)
		httpErr := apperror.ToHTTP(mapped)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	breakdown, err := h.engine.Compute(req.MonthlyGross, Options{
		BasicPct:        req.BasicPct,
		HRAPct:          req.HRAPct,
		OtherAllowances: req.OtherAllowances,
		OtherDeductions: req.OtherDeductions,
	})
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("compute breakdown rejected",
			zap.Float64("monthly_gross", req.MonthlyGross),
			zap.String("code", httpErr.Code),
		)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, mapToResponse(breakdown), nil)
}
