// Package engine implements the position and trade state machine. A run is a
// single forward pass over a candle series: no look-ahead, at most one open
// position, capital updated as trades realize.
package engine

import (
	"services/backtest-service/internal/model"
	"services/backtest-service/internal/strategy"
)

// ExitReason records why a position was closed.
type ExitReason string

const (
	ExitStopLoss   ExitReason = "SL"
	ExitTakeProfit ExitReason = "TP"
	ExitSignal     ExitReason = "signal"
	ExitEnd        ExitReason = "end"
)

// Position is a single open position. StopLoss and TakeProfit of zero mean
// the level is not set.
type Position struct {
	Side       string
	EntryPrice float64
	Size       float64
	EntryTime  int64
	StopLoss   float64
	TakeProfit float64
}

// Trade is a closed position. Times are milliseconds since the Unix epoch.
type Trade struct {
	Side       string
	EntryPrice float64
	ExitPrice  float64
	EntryTime  int64
	ExitTime   int64
	PnL        float64
	ExitReason ExitReason
}

// EquitySample is the running capital after one processed candle.
type EquitySample struct {
	Time  int64
	Value float64
}

// Config holds the trade parameters of a run. StopLossPct and TakeProfitPct
// of zero disable the respective level.
type Config struct {
	InitialCapital  float64
	Leverage        float64
	PositionSizePct float64
	StopLossPct     float64
	TakeProfitPct   float64
}

// Outcome is the raw product of a run, before metrics and decimation.
type Outcome struct {
	Trades       []Trade
	Equity       []EquitySample
	FinalCapital float64
}

// OpenPosition sizes a position from the allocated capital and derives the
// stop-loss and take-profit levels from the entry price.
func OpenPosition(side string, entryPrice float64, entryTime int64, allocated, slPct, tpPct float64) *Position {
	pos := &Position{
		Side:       side,
		EntryPrice: entryPrice,
		Size:       allocated / entryPrice,
		EntryTime:  entryTime,
	}
	if slPct > 0 {
		if side == model.SideLong {
			pos.StopLoss = entryPrice * (1 - slPct/100)
		} else {
			pos.StopLoss = entryPrice * (1 + slPct/100)
		}
	}
	if tpPct > 0 {
		if side == model.SideLong {
			pos.TakeProfit = entryPrice * (1 + tpPct/100)
		} else {
			pos.TakeProfit = entryPrice * (1 - tpPct/100)
		}
	}
	return pos
}

// PnL is the realized profit of closing the position at exit.
func (p *Position) PnL(exit, leverage float64) float64 {
	if p.Side == model.SideLong {
		return p.Size * (exit - p.EntryPrice) * leverage
	}
	return p.Size * (p.EntryPrice - exit) * leverage
}

// CheckStops evaluates the position's stop-loss and take-profit against the
// candle's intrabar range. When both levels fall inside the range the
// stop-loss wins, and the exit prints at the exact level, not the close.
func CheckStops(p *Position, c model.Candle) (exitPrice float64, reason ExitReason, hit bool) {
	if p.Side == model.SideLong {
		if p.StopLoss > 0 && c.Low <= p.StopLoss {
			return p.StopLoss, ExitStopLoss, true
		}
		if p.TakeProfit > 0 && c.High >= p.TakeProfit {
			return p.TakeProfit, ExitTakeProfit, true
		}
		return 0, "", false
	}
	if p.StopLoss > 0 && c.High >= p.StopLoss {
		return p.StopLoss, ExitStopLoss, true
	}
	if p.TakeProfit > 0 && c.Low <= p.TakeProfit {
		return p.TakeProfit, ExitTakeProfit, true
	}
	return 0, "", false
}

// Run walks the candle series once, in timestamp order, pairing each candle
// with its precomputed signal. Stops are evaluated before signal handling,
// so a position opened at candle i is first stop-checked at candle i+1.
func Run(candles []model.Candle, signals []strategy.Signal, cfg Config) (*Outcome, error) {
	if len(candles) == 0 {
		return nil, model.ErrNoData
	}

	transitions := strategy.Transitions(signals)
	capital := cfg.InitialCapital
	var pos *Position

	out := &Outcome{
		Trades: []Trade{},
		Equity: make([]EquitySample, 0, len(candles)),
	}

	closeAt := func(price float64, ts int64, reason ExitReason) {
		pnl := pos.PnL(price, cfg.Leverage)
		capital += pnl
		out.Trades = append(out.Trades, Trade{
			Side:       pos.Side,
			EntryPrice: pos.EntryPrice,
			ExitPrice:  price,
			EntryTime:  pos.EntryTime,
			ExitTime:   ts,
			PnL:        pnl,
			ExitReason: reason,
		})
		pos = nil
	}

	for i, c := range candles {
		if pos != nil {
			if price, reason, hit := CheckStops(pos, c); hit {
				closeAt(price, c.Timestamp, reason)
			}
		}

		if transitions[i] {
			if pos != nil {
				closeAt(c.Close, c.Timestamp, ExitSignal)
			}
			if signals[i] != strategy.Flat {
				side := model.SideLong
				if signals[i] == strategy.Short {
					side = model.SideShort
				}
				allocated := capital * cfg.PositionSizePct / 100
				pos = OpenPosition(side, c.Close, c.Timestamp, allocated, cfg.StopLossPct, cfg.TakeProfitPct)
			}
		}

		out.Equity = append(out.Equity, EquitySample{Time: c.Timestamp, Value: capital})
	}

	if pos != nil {
		last := candles[len(candles)-1]
		closeAt(last.Close, last.Timestamp, ExitEnd)
	}

	out.FinalCapital = capital
	return out, nil
}
