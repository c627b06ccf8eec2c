package model

// TradeRecord is a closed trade as reported to the client. Times are in
// chart seconds (display offset applied).
type TradeRecord struct {
	Side       string `json:"side"`
	EntryPrice Float  `json:"entry_price"`
	ExitPrice  Float  `json:"exit_price"`
	EntryTime  int64  `json:"entry_time"`
	ExitTime   int64  `json:"exit_time"`
	PnL        Float  `json:"pnl"`
	ExitReason string `json:"exit_reason"`
}

// EquityPoint is one sample of the running capital.
type EquityPoint struct {
	Time  int64 `json:"time"`
	Value Float `json:"value"`
}

// OverlayPoint is one sample of an indicator series rendered on the chart.
type OverlayPoint struct {
	Time  int64 `json:"time"`
	Value Float `json:"value"`
}

// BacktestResult represents the complete result of a backtest run.
type BacktestResult struct {
	InitialCapital Float                     `json:"initial_capital"`
	FinalCapital   Float                     `json:"final_capital"`
	TotalPnL       Float                     `json:"total_pnl"`
	TotalTrades    int                       `json:"total_trades"`
	WinningTrades  int                       `json:"winning_trades"`
	LosingTrades   int                       `json:"losing_trades"`
	WinRate        Float                     `json:"win_rate"`
	MaxDrawdown    Float                     `json:"max_drawdown"`
	Trades         []TradeRecord             `json:"trades"`
	EquityCurve    []EquityPoint             `json:"equity_curve"`
	Overlay        map[string][]OverlayPoint `json:"overlay"`
}

// ManualTradeResult is the outcome of replaying a single manual trade.
type ManualTradeResult struct {
	TradeRecord
	PnLPct   Float `json:"pnl_pct"`
	Leverage Float `json:"leverage"`
}
