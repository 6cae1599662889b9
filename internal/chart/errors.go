package chart

import "errors"

// Sentinel errors for the chart computation. They are wrapped with
// fmt.Errorf("...: %w", ...) at the point of detection and checked by
// callers with errors.Is.
var (
	// ErrFeedUnavailable means the price feed transport call failed or
	// timed out. Fatal for the chart, no retry beyond the client's own.
	ErrFeedUnavailable = errors.New("price feed unavailable")

	// ErrDataFormat means a numeric or time field from a data source
	// could not be decoded. Never coerced, always fatal.
	ErrDataFormat = errors.New("malformed source data")

	// ErrMissingColumn means a tabular trade source lacks a required column.
	ErrMissingColumn = errors.New("missing required column")

	// ErrInvalidParameter means a caller-supplied parameter is unusable,
	// detected before any computation starts.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrEmptyResult is the explicit "nothing to show" signal: empty feed
	// response or no trades in range. Distinct from failure; callers
	// render a placeholder instead of an error.
	ErrEmptyResult = errors.New("no data for requested range")
)
