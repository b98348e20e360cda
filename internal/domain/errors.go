package domain

import "errors"

var (
	// ErrCorpusSchema is returned when the catalog source lacks a required column
	ErrCorpusSchema = errors.New("corpus schema error")

	// ErrEmptyCorpus is returned when the catalog source has no rows
	ErrEmptyCorpus = errors.New("corpus is empty")

	// ErrLogWrite is returned when a search log record cannot be appended
	ErrLogWrite = errors.New("search log write failed")

	// ErrInvalidConfig is returned when configuration validation fails
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
