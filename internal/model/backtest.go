package model

// Supported strategy names. The set is closed; dispatch happens through the
// strategy package, never by branching on the raw string elsewhere.
const (
	StrategyCrossover  = "crossover"
	StrategyOscillator = "oscillator"
)

// Trade sides.
const (
	SideLong  = "long"
	SideShort = "short"
)

// BacktestRequest represents the input parameters for a backtest run.
type BacktestRequest struct {
	Symbol    string `json:"symbol" binding:"required"`
	Timeframe string `json:"timeframe" binding:"required,oneof=1m 5m 15m 1h 4h 1d"`
	Strategy  string `json:"strategy" binding:"required,oneof=crossover oscillator"`

	// Crossover parameters
	FastPeriod int `json:"fast_period" binding:"omitempty,min=1"`
	SlowPeriod int `json:"slow_period" binding:"omitempty,min=1"`

	// Oscillator parameters
	OscillatorPeriod int     `json:"oscillator_period" binding:"omitempty,min=1"`
	Overbought       float64 `json:"overbought" binding:"omitempty,gte=0,lte=100"`
	Oversold         float64 `json:"oversold" binding:"omitempty,gte=0,lte=100"`

	// Trade parameters
	Leverage        float64  `json:"leverage" binding:"omitempty,gte=0"`
	InitialCapital  float64  `json:"initial_capital" binding:"omitempty,gt=0"`
	StopLossPct     *float64 `json:"stop_loss_pct,omitempty" binding:"omitempty,gt=0"`
	TakeProfitPct   *float64 `json:"take_profit_pct,omitempty" binding:"omitempty,gt=0"`
	PositionSizePct float64  `json:"position_size_pct" binding:"omitempty,gt=0,lte=100"`
}

// ApplyDefaults fills in the defaults for fields the client omitted.
func (r *BacktestRequest) ApplyDefaults() {
	if r.FastPeriod == 0 {
		r.FastPeriod = 10
	}
	if r.SlowPeriod == 0 {
		r.SlowPeriod = 30
	}
	if r.OscillatorPeriod == 0 {
		r.OscillatorPeriod = 14
	}
	if r.Overbought == 0 {
		r.Overbought = 70
	}
	if r.Oversold == 0 {
		r.Oversold = 30
	}
	if r.Leverage == 0 {
		r.Leverage = 1
	}
	if r.InitialCapital == 0 {
		r.InitialCapital = 10000
	}
	if r.PositionSizePct == 0 {
		r.PositionSizePct = 100
	}
}

// ManualTradeRequest represents a single what-if trade to replay. EntryTime
// is milliseconds since the Unix epoch, UTC; the entry candle is the first
// one at or after it.
type ManualTradeRequest struct {
	Symbol        string   `json:"symbol" binding:"required"`
	Timeframe     string   `json:"timeframe" binding:"required,oneof=1m 5m 15m 1h 4h 1d"`
	Side          string   `json:"side" binding:"required,oneof=long short"`
	EntryTime     int64    `json:"entry_time" binding:"required"`
	Capital       float64  `json:"capital" binding:"omitempty,gt=0"`
	Leverage      float64  `json:"leverage" binding:"omitempty,gte=0"`
	StopLossPct   *float64 `json:"stop_loss_pct,omitempty" binding:"omitempty,gt=0"`
	TakeProfitPct *float64 `json:"take_profit_pct,omitempty" binding:"omitempty,gt=0"`
}

// ApplyDefaults fills in the defaults for fields the client omitted.
func (r *ManualTradeRequest) ApplyDefaults() {
	if r.Capital == 0 {
		r.Capital = 10000
	}
	if r.Leverage == 0 {
		r.Leverage = 1
	}
}
