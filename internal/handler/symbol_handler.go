package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"services/backtest-service/internal/service"
)

// SymbolHandler handles symbol HTTP requests.
type SymbolHandler struct {
	marketDataService *service.MarketDataService
	logger            *zap.Logger
}

// NewSymbolHandler creates a new symbol handler.
func NewSymbolHandler(marketDataService *service.MarketDataService, logger *zap.Logger) *SymbolHandler {
	return &SymbolHandler{
		marketDataService: marketDataService,
		logger:            logger,
	}
}

// GetAllSymbols handles listing every symbol with stored data
func (h *SymbolHandler) GetAllSymbols(c *gin.Context) {
	symbols, err := h.marketDataService.ListSymbols(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list symbols", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list symbols"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"symbols": symbols})
}

// GetDataRange handles retrieving the stored data span for a symbol
func (h *SymbolHandler) GetDataRange(c *gin.Context) {
	symbol := c.Param("symbol")

	rng, err := h.marketDataService.GetDataRange(c.Request.Context(), symbol)
	if err != nil {
		if status := statusForError(err); status != http.StatusInternalServerError {
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to get data range",
			zap.Error(err),
			zap.String("symbol", symbol))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get data range"})
		return
	}

	c.JSON(http.StatusOK, rng)
}
