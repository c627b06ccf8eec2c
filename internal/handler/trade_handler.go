package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"services/backtest-service/internal/model"
	"services/backtest-service/internal/service"
)

// TradeHandler handles manual trade replay HTTP requests.
type TradeHandler struct {
	tradeService *service.TradeService
	logger       *zap.Logger
}

// NewTradeHandler creates a new trade handler.
func NewTradeHandler(tradeService *service.TradeService, logger *zap.Logger) *TradeHandler {
	return &TradeHandler{
		tradeService: tradeService,
		logger:       logger,
	}
}

// ReplayTrade handles simulating a single manual trade
func (h *TradeHandler) ReplayTrade(c *gin.Context) {
	var request model.ManualTradeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	request.ApplyDefaults()

	result, err := h.tradeService.Replay(c.Request.Context(), &request)
	if err != nil {
		if status := statusForError(err); status != http.StatusInternalServerError {
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to replay trade",
			zap.Error(err),
			zap.String("symbol", request.Symbol))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to replay trade"})
		return
	}

	c.JSON(http.StatusOK, result)
}
