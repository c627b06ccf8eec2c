package service

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"services/backtest-service/internal/engine"
	"services/backtest-service/internal/model"
)

// TradeService replays single manual trades for what-if analysis.
type TradeService struct {
	store         SeriesProvider
	displayOffset int64
	logger        *zap.Logger
}

// NewTradeService creates a new trade service.
func NewTradeService(store SeriesProvider, displayOffset int64, logger *zap.Logger) *TradeService {
	return &TradeService{
		store:         store,
		displayOffset: displayOffset,
		logger:        logger,
	}
}

// Replay simulates a single trade entered at the first candle at or after
// the requested entry time. The entry prints at that candle's close; the
// walk forward applies the same stop rule as a backtest run and force-closes
// at the last candle if nothing triggers.
func (s *TradeService) Replay(ctx context.Context, req *model.ManualTradeRequest) (*model.ManualTradeResult, error) {
	candles, err := s.store.Get(ctx, req.Symbol, req.Timeframe)
	if err != nil {
		return nil, err
	}
	if len(candles) == 0 {
		return nil, model.ErrNoData
	}

	idx := sort.Search(len(candles), func(i int) bool {
		return candles[i].Timestamp >= req.EntryTime
	})
	if idx >= len(candles) {
		return nil, model.ErrEntryOutOfRange
	}

	entry := candles[idx]
	var slPct, tpPct float64
	if req.StopLossPct != nil {
		slPct = *req.StopLossPct
	}
	if req.TakeProfitPct != nil {
		tpPct = *req.TakeProfitPct
	}
	pos := engine.OpenPosition(req.Side, entry.Close, entry.Timestamp, req.Capital, slPct, tpPct)

	for _, c := range candles[idx+1:] {
		if price, reason, hit := engine.CheckStops(pos, c); hit {
			return s.result(req, pos, price, c.Timestamp, reason), nil
		}
	}

	last := candles[len(candles)-1]
	return s.result(req, pos, last.Close, last.Timestamp, engine.ExitEnd), nil
}

func (s *TradeService) result(
	req *model.ManualTradeRequest,
	pos *engine.Position,
	exitPrice float64,
	exitTime int64,
	reason engine.ExitReason,
) *model.ManualTradeResult {
	pnl := pos.PnL(exitPrice, req.Leverage)

	s.logger.Info("Manual trade replayed",
		zap.String("symbol", req.Symbol),
		zap.String("side", req.Side),
		zap.String("exit_reason", string(reason)),
		zap.Float64("pnl", pnl))

	return &model.ManualTradeResult{
		TradeRecord: model.TradeRecord{
			Side:       pos.Side,
			EntryPrice: model.Float(pos.EntryPrice),
			ExitPrice:  model.Float(exitPrice),
			EntryTime:  pos.EntryTime/1000 + s.displayOffset,
			ExitTime:   exitTime/1000 + s.displayOffset,
			PnL:        model.Float(pnl),
			ExitReason: string(reason),
		},
		PnLPct:   model.Float(pnl / req.Capital * 100),
		Leverage: model.Float(req.Leverage),
	}
}
