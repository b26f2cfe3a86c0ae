package query

import (
	"context"
	"fmt"
	"os"

	"github.com/o0olele/wayfinder-go/builder"
	"github.com/o0olele/wayfinder-go/collision"
	"github.com/o0olele/wayfinder-go/venue"
	"go.uber.org/zap"
)

// LoadAndQuery compiles a venue directory, or reads a snapshot file, and
// returns a Navigator over the result.
func LoadAndQuery(ctx context.Context, path string, buildOpts builder.Options, opts ...NavigatorOption) (*Navigator, error) {
	n := configure(opts)

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open navigation source: %w", err)
	}

	var nav *builder.Navigation
	if info.IsDir() {
		ds, err := venue.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load venue: %w", err)
		}
		nav, err = builder.NewBuilder(buildOpts, n.logger.Named("builder")).Build(ctx, ds)
		if err != nil {
			return nil, fmt.Errorf("failed to build navigation: %w", err)
		}
	} else {
		nav, err = builder.Load(path,
			collision.WithBufferWidth(buildOpts.BufferMeters),
			collision.WithFailClosed(buildOpts.FailClosed),
			collision.WithLogger(n.logger.Named("collision")))
		if err != nil {
			return nil, fmt.Errorf("failed to load navigation data: %w", err)
		}
	}

	stats := nav.Stats()
	n.logger.Info("Navigation loaded",
		zap.String("source", path),
		zap.Int("nodes", stats.NodeCount),
		zap.Int("edges", stats.EdgeCount),
		zap.Int("floors", stats.FloorCount))
	return n.attach(nav), nil
}
