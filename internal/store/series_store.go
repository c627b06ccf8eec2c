// Package store owns the candle series used by simulations: it loads a
// symbol's base-resolution series from its source, derives resampled views
// at coarser timeframes, and memoizes both for the process lifetime.
package store

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"

	"services/backtest-service/internal/model"
)

// CandleSource supplies a symbol's base-resolution (1m) series.
type CandleSource interface {
	GetCandles(ctx context.Context, symbol string) ([]model.Candle, error)
}

type viewKey struct {
	Symbol    string
	Timeframe string
}

// SeriesStore is a read-through cache over a CandleSource. A lost race on
// first access recomputes the same deterministic view, so no single-flight
// guard is needed.
type SeriesStore struct {
	source CandleSource
	logger *zap.Logger

	mu    sync.RWMutex
	base  map[string][]model.Candle
	views map[viewKey][]model.Candle
}

// NewSeriesStore creates a new series store.
func NewSeriesStore(source CandleSource, logger *zap.Logger) *SeriesStore {
	return &SeriesStore{
		source: source,
		logger: logger,
		base:   make(map[string][]model.Candle),
		views:  make(map[viewKey][]model.Candle),
	}
}

// Get returns the symbol's series at the requested timeframe. The base
// timeframe returns the raw series; coarser timeframes return the resampled
// view. Returns model.ErrSymbolNotFound when no base data exists.
func (s *SeriesStore) Get(ctx context.Context, symbol, timeframe string) ([]model.Candle, error) {
	if !model.ValidTimeframe(timeframe) {
		return nil, model.ErrInvalidTimeframe
	}

	base, err := s.loadBase(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if timeframe == model.BaseTimeframe {
		return base, nil
	}

	key := viewKey{Symbol: symbol, Timeframe: timeframe}
	s.mu.RLock()
	view, ok := s.views[key]
	s.mu.RUnlock()
	if ok {
		return view, nil
	}

	view = Resample(base, model.TimeframeMillis(timeframe))
	s.mu.Lock()
	s.views[key] = view
	s.mu.Unlock()

	s.logger.Debug("resampled series",
		zap.String("symbol", symbol),
		zap.String("timeframe", timeframe),
		zap.Int("base_candles", len(base)),
		zap.Int("view_candles", len(view)))

	return view, nil
}

// Invalidate drops the cached base series and every derived view for a
// symbol. Called after new candles are ingested.
func (s *SeriesStore) Invalidate(symbol string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.base, symbol)
	for key := range s.views {
		if key.Symbol == symbol {
			delete(s.views, key)
		}
	}
}

func (s *SeriesStore) loadBase(ctx context.Context, symbol string) ([]model.Candle, error) {
	s.mu.RLock()
	base, ok := s.base[symbol]
	s.mu.RUnlock()
	if ok {
		return base, nil
	}

	candles, err := s.source.GetCandles(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if len(candles) == 0 {
		return nil, model.ErrSymbolNotFound
	}

	base = normalize(candles)
	s.mu.Lock()
	s.base[symbol] = base
	s.mu.Unlock()
	return base, nil
}

// normalize sorts the series chronologically and collapses duplicate
// timestamps, keeping the last occurrence.
func normalize(candles []model.Candle) []model.Candle {
	sorted := make([]model.Candle, len(candles))
	copy(sorted, candles)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp < sorted[j].Timestamp
	})

	out := sorted[:0]
	for _, c := range sorted {
		if n := len(out); n > 0 && out[n-1].Timestamp == c.Timestamp {
			out[n-1] = c
			continue
		}
		out = append(out, c)
	}
	return out
}
