package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func equity(values ...float64) []EquitySample {
	out := make([]EquitySample, len(values))
	for i, v := range values {
		out[i] = EquitySample{Time: int64(i), Value: v}
	}
	return out
}

func TestMaxDrawdown(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{name: "peak to trough", values: []float64{100, 120, 90, 130, 80}, want: 50},
		{name: "monotonic decline", values: []float64{100, 90, 80}, want: 20},
		{name: "monotonic rise", values: []float64{100, 110, 120}, want: 0},
		{name: "empty", values: nil, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, MaxDrawdown(equity(tt.values...)), 1e-9)
		})
	}
}

func TestMeasureWinRate(t *testing.T) {
	trades := []Trade{
		{PnL: 10},
		{PnL: -5},
		{PnL: 0},
		{PnL: 3},
	}

	m := Measure(trades, nil)
	assert.Equal(t, 4, m.TotalTrades)
	assert.Equal(t, 2, m.WinningTrades)
	assert.Equal(t, 1, m.LosingTrades, "break-even trades count toward neither side")
	assert.InDelta(t, 50, m.WinRate, 1e-9)
	assert.InDelta(t, 8, m.TotalPnL, 1e-9)
}

func TestMeasureNoTrades(t *testing.T) {
	m := Measure(nil, equity(100, 100))
	assert.Zero(t, m.TotalTrades)
	assert.Zero(t, m.WinRate, "no trades means 0, not a division error")
}

func TestDecimate(t *testing.T) {
	points := equity(make([]float64, 1200)...)

	out := Decimate(points, 500)
	require.NotEmpty(t, out)
	assert.Len(t, out, 400, "stride 3 over 1200 points")
	assert.Equal(t, int64(0), out[0].Time)
	assert.Equal(t, int64(1197), out[len(out)-1].Time)
}

func TestDecimateShortCurveUntouched(t *testing.T) {
	points := equity(make([]float64, 500)...)
	out := Decimate(points, 500)
	assert.Len(t, out, 500)
}
