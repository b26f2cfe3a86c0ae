package main

import (
	"fmt"
	"os"

	"github.com/o0olele/wayfinder-go/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootOptions struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "wayfinder",
		Short:         "Indoor wayfinding engine",
		Long:          "Compiles floor-plan venues into navigation graphs and serves multi-floor routes over them.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "wayfinder.yaml", "Config file")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(
		newServeCmd(opts),
		newRouteCmd(opts),
		newCompileCmd(opts),
		newStatsCmd(opts),
	)
	return cmd
}

// setup loads the config and builds the logger every command runs with.
func (o *rootOptions) setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, err
	}
	if o.verbose {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}
	logger, err := cfg.NewLogger()
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// venuePath picks the flag value, falling back to the configured venue.
func venuePath(flag string, cfg *config.Config) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if cfg.VenueDir != "" {
		return cfg.VenueDir, nil
	}
	return "", fmt.Errorf("no venue given: use --venue or set WAYFINDER_VENUE_DIR")
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
