package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"services/backtest-service/internal/model"
)

func TestNewDispatch(t *testing.T) {
	tests := []struct {
		name     string
		strategy string
		want     string
	}{
		{name: "crossover", strategy: model.StrategyCrossover, want: "crossover"},
		{name: "oscillator", strategy: model.StrategyOscillator, want: "oscillator"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &model.BacktestRequest{Strategy: tt.strategy}
			req.ApplyDefaults()
			strat, err := New(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, strat.Name())
		})
	}

	_, err := New(&model.BacktestRequest{Strategy: "martingale"})
	assert.Error(t, err)
}

func TestCrossoverSignals(t *testing.T) {
	// Fast SMA(2) crosses above slow SMA(3) at the last candle.
	closes := []float64{10, 10, 10, 10, 20}
	strat := &Crossover{Fast: 2, Slow: 3}
	signals := strat.Compute(closes)

	require.Len(t, signals, len(closes))
	assert.Equal(t, Flat, signals[0], "warmup is flat")
	assert.Equal(t, Flat, signals[1], "warmup is flat")
	assert.Equal(t, Flat, signals[2], "equal averages are flat")
	assert.Equal(t, Flat, signals[3])
	assert.Equal(t, Long, signals[4])
}

func TestCrossoverShortSignal(t *testing.T) {
	closes := []float64{20, 20, 20, 20, 5}
	strat := &Crossover{Fast: 2, Slow: 3}
	signals := strat.Compute(closes)
	assert.Equal(t, Short, signals[len(signals)-1])
}

func TestOscillatorSignals(t *testing.T) {
	// Steadily falling closes drive the RSI to 0, well under any oversold
	// threshold.
	closes := []float64{100, 99, 98, 97, 96, 95, 94}
	strat := &Oscillator{Period: 3, Overbought: 70, Oversold: 30}
	signals := strat.Compute(closes)

	for i := 0; i < 3; i++ {
		assert.Equal(t, Flat, signals[i], "warmup is flat")
	}
	assert.Equal(t, Long, signals[len(signals)-1])

	rising := []float64{100, 101, 102, 103, 104, 105, 106}
	signals = strat.Compute(rising)
	assert.Equal(t, Short, signals[len(signals)-1])
}

func TestOverlaysKeys(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5}

	cross := &Crossover{Fast: 2, Slow: 3}
	overlays := cross.Overlays(closes)
	assert.Contains(t, overlays, "fast_sma")
	assert.Contains(t, overlays, "slow_sma")

	osc := &Oscillator{Period: 3}
	overlays = osc.Overlays(closes)
	assert.Contains(t, overlays, "rsi")
}

func TestTransitions(t *testing.T) {
	signals := []Signal{Flat, Flat, Long, Long, Short, Short, Flat}
	trans := Transitions(signals)

	want := []bool{false, false, true, false, true, false, true}
	assert.Equal(t, want, trans)
}

func TestTransitionsSustainedSignalDoesNotRetrigger(t *testing.T) {
	signals := []Signal{Long, Long, Long, Long}
	trans := Transitions(signals)
	for i, tr := range trans {
		assert.False(t, tr, "index %d", i)
	}
}
