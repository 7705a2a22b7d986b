package repository

import "errors"

// Sentinel kinds for dataset loading errors.
var (
	ErrLoadDataset       = errors.New("load dataset failed")
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	ErrInvalidRow        = errors.New("invalid dataset row")
	ErrMissingColumn     = errors.New("missing dataset column")
	ErrShortRow          = errors.New("dataset row has too few fields")
)
