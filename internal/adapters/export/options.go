package export

import (
	"time"
)

// Option applies a configuration option to the CSVExporter.
type Option func(*CSVExporter)

// WithDir sets the output directory.
func WithDir(dir string) Option {
	return func(x *CSVExporter) {
		if dir != "" {
			x.dir = dir
		}
	}
}

// WithPrefix sets the file name prefix.
func WithPrefix(prefix string) Option {
	return func(x *CSVExporter) {
		if prefix != "" {
			x.prefix = prefix
		}
	}
}

// WithHeader replaces the three column labels.
func WithHeader(position, item, score string) Option {
	return func(x *CSVExporter) {
		if position != "" && item != "" && score != "" {
			x.header = [3]string{position, item, score}
		}
	}
}

// WithClock sets the time source used for file names.
func WithClock(now func() time.Time) Option {
	return func(x *CSVExporter) {
		if now != nil {
			x.now = now
		}
	}
}
