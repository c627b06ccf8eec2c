package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"services/backtest-service/internal/model"
	"services/backtest-service/internal/service"
)

const maxCandleLimit = 100000

// MarketDataHandler handles candle HTTP requests.
type MarketDataHandler struct {
	marketDataService *service.MarketDataService
	logger            *zap.Logger
}

// NewMarketDataHandler creates a new market data handler.
func NewMarketDataHandler(marketDataService *service.MarketDataService, logger *zap.Logger) *MarketDataHandler {
	return &MarketDataHandler{
		marketDataService: marketDataService,
		logger:            logger,
	}
}

// GetOHLCV handles retrieving chart candles for a symbol and timeframe
func (h *MarketDataHandler) GetOHLCV(c *gin.Context) {
	symbol := c.DefaultQuery("symbol", "BTCUSDT")
	timeframe := c.DefaultQuery("timeframe", model.BaseTimeframe)

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "500"))
	if err != nil || limit < 1 || limit > maxCandleLimit {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}

	var endTime int64
	if raw := c.Query("end_time"); raw != "" {
		endTime, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_time"})
			return
		}
	}

	response, err := h.marketDataService.GetCandles(c.Request.Context(), symbol, timeframe, limit, endTime)
	if err != nil {
		if status := statusForError(err); status != http.StatusInternalServerError {
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to get candles",
			zap.Error(err),
			zap.String("symbol", symbol),
			zap.String("timeframe", timeframe))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get candles"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// batchImportRequest is the payload of the candle ingest endpoint.
type batchImportRequest struct {
	Symbol  string         `json:"symbol" binding:"required"`
	Candles []model.Candle `json:"candles" binding:"required,min=1"`
}

// BatchImportCandles handles ingesting a batch of 1m candles
func (h *MarketDataHandler) BatchImportCandles(c *gin.Context) {
	var request batchImportRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	count, err := h.marketDataService.ImportCandles(c.Request.Context(), request.Symbol, request.Candles)
	if err != nil {
		h.logger.Error("Failed to import candles",
			zap.Error(err),
			zap.String("symbol", request.Symbol))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to import candles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"imported": count,
		"message":  "Candles imported successfully",
	})
}
