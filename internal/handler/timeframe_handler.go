package handler

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"services/backtest-service/internal/model"
)

// TimeframeHandler handles timeframe HTTP requests.
type TimeframeHandler struct {
	logger *zap.Logger
}

// NewTimeframeHandler creates a new timeframe handler.
func NewTimeframeHandler(logger *zap.Logger) *TimeframeHandler {
	return &TimeframeHandler{logger: logger}
}

// GetAllTimeframes handles listing the supported timeframes
func (h *TimeframeHandler) GetAllTimeframes(c *gin.Context) {
	type timeframe struct {
		Name    string `json:"name"`
		Minutes int    `json:"minutes"`
	}

	timeframes := make([]timeframe, 0, len(model.TimeframeMinutes))
	for name, minutes := range model.TimeframeMinutes {
		timeframes = append(timeframes, timeframe{Name: name, Minutes: minutes})
	}
	sort.Slice(timeframes, func(i, j int) bool {
		return timeframes[i].Minutes < timeframes[j].Minutes
	})

	c.JSON(http.StatusOK, gin.H{"timeframes": timeframes})
}

// ValidateTimeframe handles checking whether a timeframe is supported
func (h *TimeframeHandler) ValidateTimeframe(c *gin.Context) {
	tf := c.Param("timeframe")
	c.JSON(http.StatusOK, gin.H{
		"timeframe": tf,
		"valid":     model.ValidTimeframe(tf),
	})
}
