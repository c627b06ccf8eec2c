package model

import "errors"

var (
	// ErrSymbolNotFound is returned when no base data exists for a symbol.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrNoData is returned when a simulation is attempted over an empty
	// series.
	ErrNoData = errors.New("no data")

	// ErrEntryOutOfRange is returned when a manual trade's entry time falls
	// after the last candle of the series.
	ErrEntryOutOfRange = errors.New("entry time out of range")

	// ErrInvalidTimeframe is returned for a timeframe outside the supported
	// set.
	ErrInvalidTimeframe = errors.New("invalid timeframe")
)
