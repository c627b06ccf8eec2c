package store

import "services/backtest-service/internal/model"

// Resample aggregates base candles into fixed-width buckets aligned to
// interval boundaries: open of the first constituent, max high, min low,
// close of the last, summed volume. The bucket keeps the timestamp of its
// first constituent; buckets with no constituents are simply absent. The
// input must be sorted by timestamp.
func Resample(base []model.Candle, intervalMs int64) []model.Candle {
	if intervalMs <= 0 || len(base) == 0 {
		return nil
	}

	out := make([]model.Candle, 0, len(base)/int(intervalMs/60_000)+1)
	var cur model.Candle
	bucket := int64(-1)

	for _, c := range base {
		b := c.Timestamp - c.Timestamp%intervalMs
		if b != bucket {
			if bucket >= 0 {
				out = append(out, cur)
			}
			bucket = b
			cur = c
			continue
		}
		if c.High > cur.High {
			cur.High = c.High
		}
		if c.Low < cur.Low {
			cur.Low = c.Low
		}
		cur.Close = c.Close
		cur.Volume += c.Volume
	}
	out = append(out, cur)
	return out
}
