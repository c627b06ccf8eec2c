package strategy

import (
	"math"

	"services/backtest-service/internal/indicator"
	"services/backtest-service/internal/model"
)

// Crossover signals long while the fast moving average is above the slow one
// and short while it is below. Equal averages, or candles inside either
// average's warmup window, are flat.
type Crossover struct {
	Fast int
	Slow int
}

func (c *Crossover) Name() string { return model.StrategyCrossover }

func (c *Crossover) Compute(closes []float64) []Signal {
	fast := indicator.SMA(closes, c.Fast)
	slow := indicator.SMA(closes, c.Slow)

	signals := make([]Signal, len(closes))
	for i := range closes {
		switch {
		case math.IsNaN(fast[i]) || math.IsNaN(slow[i]):
			signals[i] = Flat
		case fast[i] > slow[i]:
			signals[i] = Long
		case fast[i] < slow[i]:
			signals[i] = Short
		}
	}
	return signals
}

func (c *Crossover) Overlays(closes []float64) map[string][]float64 {
	return map[string][]float64{
		"fast_sma": indicator.SMA(closes, c.Fast),
		"slow_sma": indicator.SMA(closes, c.Slow),
	}
}
