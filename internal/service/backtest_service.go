package service

import (
	"context"
	"math"

	"go.uber.org/zap"

	"services/backtest-service/internal/engine"
	"services/backtest-service/internal/model"
	"services/backtest-service/internal/strategy"
)

// SeriesProvider supplies candle series at any supported timeframe.
type SeriesProvider interface {
	Get(ctx context.Context, symbol, timeframe string) ([]model.Candle, error)
}

// BacktestService runs strategy backtests over historical series.
type BacktestService struct {
	store          SeriesProvider
	displayOffset  int64
	equityCurveMax int
	logger         *zap.Logger
}

// NewBacktestService creates a new backtest service. displayOffset is the
// chart timezone offset in seconds, applied only when assembling the
// response; equityCurveMax bounds the returned equity curve.
func NewBacktestService(
	store SeriesProvider,
	displayOffset int64,
	equityCurveMax int,
	logger *zap.Logger,
) *BacktestService {
	return &BacktestService{
		store:          store,
		displayOffset:  displayOffset,
		equityCurveMax: equityCurveMax,
		logger:         logger,
	}
}

// Run executes a full backtest for the given strategy and parameters.
func (s *BacktestService) Run(ctx context.Context, req *model.BacktestRequest) (*model.BacktestResult, error) {
	candles, err := s.store.Get(ctx, req.Symbol, req.Timeframe)
	if err != nil {
		return nil, err
	}

	strat, err := strategy.New(req)
	if err != nil {
		return nil, err
	}

	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}
	signals := strat.Compute(closes)

	cfg := engine.Config{
		InitialCapital:  req.InitialCapital,
		Leverage:        req.Leverage,
		PositionSizePct: req.PositionSizePct,
	}
	if req.StopLossPct != nil {
		cfg.StopLossPct = *req.StopLossPct
	}
	if req.TakeProfitPct != nil {
		cfg.TakeProfitPct = *req.TakeProfitPct
	}

	out, err := engine.Run(candles, signals, cfg)
	if err != nil {
		return nil, err
	}

	metrics := engine.Measure(out.Trades, out.Equity)
	curve := engine.Decimate(out.Equity, s.equityCurveMax)

	result := &model.BacktestResult{
		InitialCapital: model.Float(req.InitialCapital),
		FinalCapital:   model.Float(out.FinalCapital),
		TotalPnL:       model.Float(metrics.TotalPnL),
		TotalTrades:    metrics.TotalTrades,
		WinningTrades:  metrics.WinningTrades,
		LosingTrades:   metrics.LosingTrades,
		WinRate:        model.Float(metrics.WinRate),
		MaxDrawdown:    model.Float(metrics.MaxDrawdown),
		Trades:         make([]model.TradeRecord, 0, len(out.Trades)),
		EquityCurve:    make([]model.EquityPoint, 0, len(curve)),
		Overlay:        s.buildOverlay(strat, candles, closes),
	}
	for _, t := range out.Trades {
		result.Trades = append(result.Trades, s.tradeRecord(t))
	}
	for _, p := range curve {
		result.EquityCurve = append(result.EquityCurve, model.EquityPoint{
			Time:  s.chartTime(p.Time),
			Value: model.Float(p.Value),
		})
	}

	s.logger.Info("Backtest completed",
		zap.String("symbol", req.Symbol),
		zap.String("timeframe", req.Timeframe),
		zap.String("strategy", req.Strategy),
		zap.Int("candles", len(candles)),
		zap.Int("trades", metrics.TotalTrades),
		zap.Float64("final_capital", out.FinalCapital))

	return result, nil
}

// buildOverlay renders the strategy's indicator series as chart points,
// skipping undefined values.
func (s *BacktestService) buildOverlay(
	strat strategy.Strategy,
	candles []model.Candle,
	closes []float64,
) map[string][]model.OverlayPoint {
	overlay := make(map[string][]model.OverlayPoint)
	for name, values := range strat.Overlays(closes) {
		points := make([]model.OverlayPoint, 0, len(values))
		for i, v := range values {
			if math.IsNaN(v) {
				continue
			}
			points = append(points, model.OverlayPoint{
				Time:  s.chartTime(candles[i].Timestamp),
				Value: model.Float(v),
			})
		}
		overlay[name] = points
	}
	return overlay
}

func (s *BacktestService) tradeRecord(t engine.Trade) model.TradeRecord {
	return model.TradeRecord{
		Side:       t.Side,
		EntryPrice: model.Float(t.EntryPrice),
		ExitPrice:  model.Float(t.ExitPrice),
		EntryTime:  s.chartTime(t.EntryTime),
		ExitTime:   s.chartTime(t.ExitTime),
		PnL:        model.Float(t.PnL),
		ExitReason: string(t.ExitReason),
	}
}

// chartTime converts an internal millisecond UTC timestamp to the chart
// coordinate: whole seconds with the display offset applied.
func (s *BacktestService) chartTime(ms int64) int64 {
	return ms/1000 + s.displayOffset
}
