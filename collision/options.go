package collision

import "go.uber.org/zap"

// DefaultBufferMeters is the width given to wall lines when turned into polygons.
const DefaultBufferMeters = 0.5

type options struct {
	bufferMeters float64
	failClosed   bool
	logger       *zap.Logger
}

func defaultOptions() options {
	return options{
		bufferMeters: DefaultBufferMeters,
		logger:       zap.NewNop(),
	}
}

// Option configures a Detector.
type Option func(*options)

// WithBufferWidth sets the width in meters used to buffer line obstacles.
func WithBufferWidth(meters float64) Option {
	return func(o *options) {
		if meters > 0 {
			o.bufferMeters = meters
		}
	}
}

// WithFailClosed makes a failed geometric check report "blocked" instead of "clear".
func WithFailClosed(failClosed bool) Option {
	return func(o *options) {
		o.failClosed = failClosed
	}
}

// WithLogger sets the logger used for skipped features and failed checks.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
