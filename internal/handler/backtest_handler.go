package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"services/backtest-service/internal/model"
	"services/backtest-service/internal/service"
)

// BacktestHandler handles backtest HTTP requests.
type BacktestHandler struct {
	backtestService *service.BacktestService
	logger          *zap.Logger
}

// NewBacktestHandler creates a new backtest handler.
func NewBacktestHandler(backtestService *service.BacktestService, logger *zap.Logger) *BacktestHandler {
	return &BacktestHandler{
		backtestService: backtestService,
		logger:          logger,
	}
}

// RunBacktest handles running a backtest
func (h *BacktestHandler) RunBacktest(c *gin.Context) {
	var request model.BacktestRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	request.ApplyDefaults()

	result, err := h.backtestService.Run(c.Request.Context(), &request)
	if err != nil {
		if status := statusForError(err); status != http.StatusInternalServerError {
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to run backtest",
			zap.Error(err),
			zap.String("symbol", request.Symbol),
			zap.String("strategy", request.Strategy))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to run backtest"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// statusForError maps the simulation error taxonomy to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, model.ErrSymbolNotFound), errors.Is(err, model.ErrNoData):
		return http.StatusNotFound
	case errors.Is(err, model.ErrEntryOutOfRange), errors.Is(err, model.ErrInvalidTimeframe):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
