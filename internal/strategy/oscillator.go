package strategy

import (
	"math"

	"services/backtest-service/internal/indicator"
	"services/backtest-service/internal/model"
)

// Oscillator signals long while the RSI is below the oversold threshold and
// short while it is above the overbought threshold. Everything in between,
// and the warmup window, is flat.
type Oscillator struct {
	Period     int
	Overbought float64
	Oversold   float64
}

func (o *Oscillator) Name() string { return model.StrategyOscillator }

func (o *Oscillator) Compute(closes []float64) []Signal {
	rsi := indicator.RSI(closes, o.Period)

	signals := make([]Signal, len(closes))
	for i := range closes {
		switch {
		case math.IsNaN(rsi[i]):
			signals[i] = Flat
		case rsi[i] < o.Oversold:
			signals[i] = Long
		case rsi[i] > o.Overbought:
			signals[i] = Short
		}
	}
	return signals
}

func (o *Oscillator) Overlays(closes []float64) map[string][]float64 {
	return map[string][]float64{
		"rsi": indicator.RSI(closes, o.Period),
	}
}
