package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"services/backtest-service/internal/model"
)

// CandleStorage is the persistence surface the market data service needs.
type CandleStorage interface {
	BatchImportCandles(ctx context.Context, symbol string, candles []model.Candle) (int, error)
	ListSymbols(ctx context.Context) ([]string, error)
	GetDataRange(ctx context.Context, symbol string) (*model.DataRange, error)
}

// SeriesInvalidator drops cached series after an ingest.
type SeriesInvalidator interface {
	Invalidate(symbol string)
}

// MarketDataService serves chart candles and handles candle ingest.
type MarketDataService struct {
	store         SeriesProvider
	invalidator   SeriesInvalidator
	storage       CandleStorage
	displayOffset int64
	logger        *zap.Logger
}

// NewMarketDataService creates a new market data service.
func NewMarketDataService(
	store SeriesProvider,
	invalidator SeriesInvalidator,
	storage CandleStorage,
	displayOffset int64,
	logger *zap.Logger,
) *MarketDataService {
	return &MarketDataService{
		store:         store,
		invalidator:   invalidator,
		storage:       storage,
		displayOffset: displayOffset,
		logger:        logger,
	}
}

// GetCandles returns chart-ready candle records for a symbol and timeframe.
// endTime (chart seconds, 0 = none) keeps only candles strictly before it;
// limit (0 = all) then keeps the most recent ones. The series is sliced
// before formatting.
func (s *MarketDataService) GetCandles(
	ctx context.Context,
	symbol, timeframe string,
	limit int,
	endTime int64,
) (*model.OHLCVResponse, error) {
	series, err := s.store.Get(ctx, symbol, timeframe)
	if err != nil {
		return nil, err
	}

	total := len(series)
	if endTime > 0 {
		endMs := (endTime - s.displayOffset) * 1000
		cut := len(series)
		for cut > 0 && series[cut-1].Timestamp >= endMs {
			cut--
		}
		series = series[:cut]
	}
	if limit > 0 && len(series) > limit {
		series = series[len(series)-limit:]
	}

	records := make([]model.CandleRecord, 0, len(series))
	for _, c := range series {
		records = append(records, model.CandleRecord{
			Time:   c.Timestamp/1000 + s.displayOffset,
			Open:   model.Float(c.Open),
			High:   model.Float(c.High),
			Low:    model.Float(c.Low),
			Close:  model.Float(c.Close),
			Volume: model.Float(c.Volume),
		})
	}

	return &model.OHLCVResponse{Data: records, Total: total}, nil
}

// ListSymbols returns every symbol with stored candles.
func (s *MarketDataService) ListSymbols(ctx context.Context) ([]string, error) {
	return s.storage.ListSymbols(ctx)
}

// GetDataRange returns the span of stored base candles for a symbol.
func (s *MarketDataService) GetDataRange(ctx context.Context, symbol string) (*model.DataRange, error) {
	return s.storage.GetDataRange(ctx, symbol)
}

// ImportCandles ingests a batch of base-resolution candles and drops the
// symbol's cached series so the next read sees them.
func (s *MarketDataService) ImportCandles(
	ctx context.Context,
	symbol string,
	candles []model.Candle,
) (int, error) {
	if symbol == "" {
		return 0, errors.New("symbol is required")
	}
	if len(candles) == 0 {
		return 0, errors.New("no candle data provided")
	}

	count, err := s.storage.BatchImportCandles(ctx, symbol, candles)
	if err != nil {
		return 0, err
	}

	s.invalidator.Invalidate(symbol)

	s.logger.Info("Imported candles",
		zap.String("symbol", symbol),
		zap.Int("count", count))

	return count, nil
}
