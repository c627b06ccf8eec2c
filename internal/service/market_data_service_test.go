package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"services/backtest-service/internal/model"
)

type fakeStorage struct {
	imported    map[string][]model.Candle
	symbols     []string
	rangeResult *model.DataRange
	err         error
}

func (f *fakeStorage) BatchImportCandles(_ context.Context, symbol string, candles []model.Candle) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	if f.imported == nil {
		f.imported = make(map[string][]model.Candle)
	}
	f.imported[symbol] = append(f.imported[symbol], candles...)
	return len(candles), nil
}

func (f *fakeStorage) ListSymbols(_ context.Context) ([]string, error) {
	return f.symbols, f.err
}

func (f *fakeStorage) GetDataRange(_ context.Context, _ string) (*model.DataRange, error) {
	return f.rangeResult, f.err
}

type fakeInvalidator struct {
	invalidated []string
}

func (f *fakeInvalidator) Invalidate(symbol string) {
	f.invalidated = append(f.invalidated, symbol)
}

func TestGetCandlesSlicing(t *testing.T) {
	series := make([]model.Candle, 10)
	for i := range series {
		series[i] = flatCandle(i, float64(100+i))
	}
	provider := &fakeProvider{series: map[string][]model.Candle{"BTCUSDT": series}}
	svc := NewMarketDataService(provider, &fakeInvalidator{}, &fakeStorage{}, 0, zap.NewNop())

	// endTime at minute 5 keeps candles strictly before it; limit keeps the
	// most recent three of those.
	res, err := svc.GetCandles(context.Background(), "BTCUSDT", "1m", 3, 300)
	require.NoError(t, err)

	assert.Equal(t, 10, res.Total, "total reflects the full series before slicing")
	require.Len(t, res.Data, 3)
	assert.Equal(t, int64(120), res.Data[0].Time)
	assert.Equal(t, int64(240), res.Data[2].Time)
	assert.InDelta(t, 104, float64(res.Data[2].Close), 1e-9)
}

func TestGetCandlesNoFilters(t *testing.T) {
	series := []model.Candle{flatCandle(0, 100), flatCandle(1, 101)}
	provider := &fakeProvider{series: map[string][]model.Candle{"BTCUSDT": series}}
	svc := NewMarketDataService(provider, &fakeInvalidator{}, &fakeStorage{}, 19800, zap.NewNop())

	res, err := svc.GetCandles(context.Background(), "BTCUSDT", "1m", 0, 0)
	require.NoError(t, err)

	require.Len(t, res.Data, 2)
	assert.Equal(t, int64(19800), res.Data[0].Time, "chart times carry the display offset")
	assert.Equal(t, int64(19860), res.Data[1].Time)
}

func TestGetCandlesUnknownSymbol(t *testing.T) {
	svc := NewMarketDataService(&fakeProvider{}, &fakeInvalidator{}, &fakeStorage{}, 0, zap.NewNop())

	_, err := svc.GetCandles(context.Background(), "NOPE", "1m", 0, 0)
	assert.ErrorIs(t, err, model.ErrSymbolNotFound)
}

func TestImportCandles(t *testing.T) {
	storage := &fakeStorage{}
	inv := &fakeInvalidator{}
	svc := NewMarketDataService(&fakeProvider{}, inv, storage, 0, zap.NewNop())

	batch := []model.Candle{flatCandle(0, 100), flatCandle(1, 101)}
	count, err := svc.ImportCandles(context.Background(), "BTCUSDT", batch)
	require.NoError(t, err)

	assert.Equal(t, 2, count)
	assert.Len(t, storage.imported["BTCUSDT"], 2)
	assert.Equal(t, []string{"BTCUSDT"}, inv.invalidated, "cached series are dropped after ingest")
}

func TestImportCandlesValidation(t *testing.T) {
	storage := &fakeStorage{}
	inv := &fakeInvalidator{}
	svc := NewMarketDataService(&fakeProvider{}, inv, storage, 0, zap.NewNop())

	_, err := svc.ImportCandles(context.Background(), "", []model.Candle{flatCandle(0, 100)})
	assert.Error(t, err)

	_, err = svc.ImportCandles(context.Background(), "BTCUSDT", nil)
	assert.Error(t, err)

	assert.Empty(t, inv.invalidated, "nothing is invalidated on a rejected batch")
}

func TestImportCandlesStorageError(t *testing.T) {
	storage := &fakeStorage{err: errors.New("db down")}
	inv := &fakeInvalidator{}
	svc := NewMarketDataService(&fakeProvider{}, inv, storage, 0, zap.NewNop())

	_, err := svc.ImportCandles(context.Background(), "BTCUSDT", []model.Candle{flatCandle(0, 100)})
	assert.Error(t, err)
	assert.Empty(t, inv.invalidated)
}

func TestListSymbols(t *testing.T) {
	storage := &fakeStorage{symbols: []string{"BTCUSDT", "ETHUSDT"}}
	svc := NewMarketDataService(&fakeProvider{}, &fakeInvalidator{}, storage, 0, zap.NewNop())

	symbols, err := svc.ListSymbols(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"BTCUSDT", "ETHUSDT"}, symbols)
}
