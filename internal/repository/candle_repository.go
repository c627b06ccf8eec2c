package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"services/backtest-service/internal/model"
)

// CandleRepository handles database operations for 1m candle data.
type CandleRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewCandleRepository creates a new candle repository.
func NewCandleRepository(db *sqlx.DB, logger *zap.Logger) *CandleRepository {
	return &CandleRepository{
		db:     db,
		logger: logger,
	}
}

// GetCandles retrieves the full base-resolution series for a symbol in
// chronological order.
func (r *CandleRepository) GetCandles(ctx context.Context, symbol string) ([]model.Candle, error) {
	query := `
		SELECT ts, open, high, low, close, volume
		FROM candles
		WHERE symbol = $1
		ORDER BY ts
	`

	var candles []model.Candle
	err := r.db.SelectContext(ctx, &candles, query, symbol)
	if err != nil {
		r.logger.Error("Failed to get candles",
			zap.Error(err),
			zap.String("symbol", symbol))
		return nil, err
	}

	return candles, nil
}

// BatchImportCandles upserts a batch of 1m candles for a symbol. A duplicate
// timestamp overwrites the stored candle (last write wins).
func (r *CandleRepository) BatchImportCandles(
	ctx context.Context,
	symbol string,
	candles []model.Candle,
) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, `
		INSERT INTO candles (symbol, ts, open, high, low, close, volume)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (symbol, ts)
		DO UPDATE SET
			open = EXCLUDED.open,
			high = EXCLUDED.high,
			low = EXCLUDED.low,
			close = EXCLUDED.close,
			volume = EXCLUDED.volume
	`)
	if err != nil {
		r.logger.Error("Failed to prepare statement", zap.Error(err))
		return 0, err
	}
	defer stmt.Close()

	for _, c := range candles {
		_, err = stmt.ExecContext(ctx, symbol, c.Timestamp, c.Open, c.High, c.Low, c.Close, c.Volume)
		if err != nil {
			r.logger.Error("Failed to insert candle",
				zap.Error(err),
				zap.String("symbol", symbol),
				zap.Int64("ts", c.Timestamp))
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit transaction", zap.Error(err))
		return 0, err
	}

	return len(candles), nil
}

// ListSymbols returns every symbol that has stored candles.
func (r *CandleRepository) ListSymbols(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT symbol FROM candles ORDER BY symbol`

	var symbols []string
	err := r.db.SelectContext(ctx, &symbols, query)
	if err != nil {
		r.logger.Error("Failed to list symbols", zap.Error(err))
		return nil, err
	}

	return symbols, nil
}

// GetDataRange returns the span of stored candles for a symbol, or
// model.ErrSymbolNotFound when none exist.
func (r *CandleRepository) GetDataRange(ctx context.Context, symbol string) (*model.DataRange, error) {
	query := `
		SELECT
			COALESCE(MIN(ts), 0) AS start_ts,
			COALESCE(MAX(ts), 0) AS end_ts,
			COUNT(*) AS candles
		FROM candles
		WHERE symbol = $1
	`

	var rng model.DataRange
	err := r.db.GetContext(ctx, &rng, query, symbol)
	if err != nil {
		r.logger.Error("Failed to get data range",
			zap.Error(err),
			zap.String("symbol", symbol))
		return nil, err
	}

	if rng.Candles == 0 {
		return nil, model.ErrSymbolNotFound
	}

	rng.Symbol = symbol
	return &rng, nil
}
