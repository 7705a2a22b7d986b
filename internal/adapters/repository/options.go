package repository

import "github.com/okian/olympstats/pkg/logger"

// Option applies a configuration option to the FileSource.
type Option func(*FileSource)

// WithFormat forces the dataset format instead of deriving it from the
// file extension.
func WithFormat(f Format) Option {
	return func(s *FileSource) {
		if f != "" {
			s.format = f
		}
	}
}

// WithSkipInvalidRows makes the loader log and skip rows that fail to
// parse or violate graph invariants instead of failing the whole load.
func WithSkipInvalidRows(skip bool) Option {
	return func(s *FileSource) {
		s.skipInvalid = skip
	}
}

// WithLogger sets the logger used to report skipped rows.
func WithLogger(l logger.Logger) Option {
	return func(s *FileSource) {
		if l != nil {
			s.logger = l
		}
	}
}
