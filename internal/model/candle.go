package model

// Candle represents a single OHLCV bar. Timestamp is milliseconds since the
// Unix epoch, UTC. Within a series candles are strictly increasing in
// timestamp.
type Candle struct {
	Timestamp int64   `json:"timestamp" db:"ts"`
	Open      float64 `json:"open" db:"open"`
	High      float64 `json:"high" db:"high"`
	Low       float64 `json:"low" db:"low"`
	Close     float64 `json:"close" db:"close"`
	Volume    float64 `json:"volume" db:"volume"`
}

// BaseTimeframe is the resolution candles are stored at. Coarser timeframes
// are derived from it by resampling.
const BaseTimeframe = "1m"

// TimeframeMinutes maps the supported timeframe names to their width in
// minutes.
var TimeframeMinutes = map[string]int{
	"1m":  1,
	"5m":  5,
	"15m": 15,
	"1h":  60,
	"4h":  240,
	"1d":  1440,
}

// ValidTimeframe reports whether tf is one of the supported timeframes.
func ValidTimeframe(tf string) bool {
	_, ok := TimeframeMinutes[tf]
	return ok
}

// TimeframeMillis returns the bucket width of tf in milliseconds, or 0 for an
// unknown timeframe.
func TimeframeMillis(tf string) int64 {
	return int64(TimeframeMinutes[tf]) * 60_000
}

// CandleRecord is the chart-facing view of a candle. Time is in whole seconds
// with the display offset already applied.
type CandleRecord struct {
	Time   int64 `json:"time"`
	Open   Float `json:"open"`
	High   Float `json:"high"`
	Low    Float `json:"low"`
	Close  Float `json:"close"`
	Volume Float `json:"volume"`
}

// OHLCVResponse is the payload of the candle listing endpoint. Total is the
// series length before slicing, so the client can page backwards.
type OHLCVResponse struct {
	Data  []CandleRecord `json:"data"`
	Total int            `json:"total"`
}

// DataRange describes the span of stored candles for a symbol.
type DataRange struct {
	Symbol  string `json:"symbol"`
	Start   int64  `json:"start" db:"start_ts"`
	End     int64  `json:"end" db:"end_ts"`
	Candles int    `json:"candles" db:"candles"`
}
