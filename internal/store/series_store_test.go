package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"services/backtest-service/internal/model"
)

// fakeSource implements CandleSource over an in-memory map and counts loads.
type fakeSource struct {
	series map[string][]model.Candle
	loads  int
}

func (f *fakeSource) GetCandles(_ context.Context, symbol string) ([]model.Candle, error) {
	f.loads++
	return f.series[symbol], nil
}

func newTestStore(series map[string][]model.Candle) (*SeriesStore, *fakeSource) {
	source := &fakeSource{series: series}
	return NewSeriesStore(source, zap.NewNop()), source
}

func TestGetUnknownSymbol(t *testing.T) {
	store, _ := newTestStore(nil)
	_, err := store.Get(context.Background(), "NOPE", "1m")
	assert.ErrorIs(t, err, model.ErrSymbolNotFound)
}

func TestGetInvalidTimeframe(t *testing.T) {
	store, _ := newTestStore(nil)
	_, err := store.Get(context.Background(), "BTCUSDT", "3m")
	assert.ErrorIs(t, err, model.ErrInvalidTimeframe)
}

func TestGetBaseMemoized(t *testing.T) {
	store, source := newTestStore(map[string][]model.Candle{
		"BTCUSDT": {
			minuteCandle(0, 1, 2, 0.5, 1.5, 1),
			minuteCandle(1, 1.5, 2, 1, 1.8, 1),
		},
	})

	first, err := store.Get(context.Background(), "BTCUSDT", "1m")
	require.NoError(t, err)
	second, err := store.Get(context.Background(), "BTCUSDT", "1m")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, source.loads, "base series is loaded once")
}

func TestGetResampledViewCached(t *testing.T) {
	var base []model.Candle
	for i := 0; i < 20; i++ {
		base = append(base, minuteCandle(i, 10, 11, 9, 10.5, 1))
	}
	store, source := newTestStore(map[string][]model.Candle{"ETHUSDT": base})

	first, err := store.Get(context.Background(), "ETHUSDT", "5m")
	require.NoError(t, err)
	require.Len(t, first, 4)

	second, err := store.Get(context.Background(), "ETHUSDT", "5m")
	require.NoError(t, err)
	assert.Equal(t, first, second, "view is stable across calls")
	assert.Equal(t, 1, source.loads)
}

func TestNormalizeSortsAndDeduplicates(t *testing.T) {
	// Out of order with a duplicate timestamp: the series comes back sorted
	// and the later write wins.
	store, _ := newTestStore(map[string][]model.Candle{
		"BTCUSDT": {
			minuteCandle(2, 3, 3, 3, 3, 1),
			minuteCandle(0, 1, 1, 1, 1, 1),
			minuteCandle(1, 2, 2, 2, 2, 1),
			minuteCandle(1, 5, 5, 5, 5, 1),
		},
	})

	series, err := store.Get(context.Background(), "BTCUSDT", "1m")
	require.NoError(t, err)
	require.Len(t, series, 3)
	assert.Equal(t, int64(0), series[0].Timestamp)
	assert.Equal(t, int64(minuteMs), series[1].Timestamp)
	assert.InDelta(t, 5, series[1].Close, 1e-9, "last write wins")
	assert.Equal(t, int64(2*minuteMs), series[2].Timestamp)
}

func TestInvalidateForcesReload(t *testing.T) {
	store, source := newTestStore(map[string][]model.Candle{
		"BTCUSDT": {minuteCandle(0, 1, 1, 1, 1, 1)},
	})

	_, err := store.Get(context.Background(), "BTCUSDT", "1m")
	require.NoError(t, err)
	_, err = store.Get(context.Background(), "BTCUSDT", "5m")
	require.NoError(t, err)
	require.Equal(t, 1, source.loads)

	store.Invalidate("BTCUSDT")

	_, err = store.Get(context.Background(), "BTCUSDT", "5m")
	require.NoError(t, err)
	assert.Equal(t, 2, source.loads, "invalidate drops the cached base")
}
