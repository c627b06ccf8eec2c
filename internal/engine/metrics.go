package engine

// Metrics are the aggregate performance numbers of a run.
type Metrics struct {
	TotalTrades   int
	WinningTrades int
	LosingTrades  int
	WinRate       float64
	MaxDrawdown   float64
	TotalPnL      float64
}

// Measure aggregates the trade ledger and equity curve of a run. Trades with
// zero P&L count toward neither wins nor losses; a run with no trades has a
// win rate of 0.
func Measure(trades []Trade, equity []EquitySample) Metrics {
	m := Metrics{TotalTrades: len(trades)}
	for _, t := range trades {
		m.TotalPnL += t.PnL
		if t.PnL > 0 {
			m.WinningTrades++
		} else if t.PnL < 0 {
			m.LosingTrades++
		}
	}
	if m.TotalTrades > 0 {
		m.WinRate = float64(m.WinningTrades) / float64(m.TotalTrades) * 100
	}
	m.MaxDrawdown = MaxDrawdown(equity)
	return m
}

// MaxDrawdown returns the largest peak-to-trough decline of the equity
// curve, in currency units.
func MaxDrawdown(equity []EquitySample) float64 {
	if len(equity) == 0 {
		return 0
	}
	peak := equity[0].Value
	var maxDD float64
	for _, p := range equity {
		if p.Value > peak {
			peak = p.Value
		}
		if dd := peak - p.Value; dd > maxDD {
			maxDD = dd
		}
	}
	return maxDD
}

// Decimate bounds the equity curve to at most max points by stride sampling.
// The overall shape survives; no interpolation happens.
func Decimate(points []EquitySample, max int) []EquitySample {
	if max <= 0 || len(points) <= max {
		return points
	}
	stride := (len(points) + max - 1) / max
	out := make([]EquitySample, 0, len(points)/stride+1)
	for i := 0; i < len(points); i += stride {
		out = append(out, points[i])
	}
	return out
}
