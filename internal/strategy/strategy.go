// Package strategy maps indicator values over a price series to directional
// signals. Strategies are pure: they read a close-price column and return a
// signal per candle, plus the indicator series used to derive it.
package strategy

import (
	"fmt"

	"services/backtest-service/internal/model"
)

// Signal is the directional state at one candle.
type Signal int

const (
	Short Signal = -1
	Flat  Signal = 0
	Long  Signal = 1
)

// Strategy derives signals from a close-price column.
type Strategy interface {
	// Name returns the strategy's wire name.
	Name() string

	// Compute returns one signal per input close. Candles where the
	// underlying indicators are undefined get Flat.
	Compute(closes []float64) []Signal

	// Overlays returns the indicator series behind the signals, keyed by
	// indicator name. Undefined points are NaN.
	Overlays(closes []float64) map[string][]float64
}

// New builds the strategy selected by the request.
func New(req *model.BacktestRequest) (Strategy, error) {
	switch req.Strategy {
	case model.StrategyCrossover:
		return &Crossover{Fast: req.FastPeriod, Slow: req.SlowPeriod}, nil
	case model.StrategyOscillator:
		return &Oscillator{
			Period:     req.OscillatorPeriod,
			Overbought: req.Overbought,
			Oversold:   req.Oversold,
		}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", req.Strategy)
	}
}

// Transitions marks the candles where the signal changed from the previous
// candle. The first candle never has a transition. Only transitions trigger
// position actions; a sustained signal does not re-trigger.
func Transitions(signals []Signal) []bool {
	out := make([]bool, len(signals))
	for i := 1; i < len(signals); i++ {
		out[i] = signals[i] != signals[i-1]
	}
	return out
}
