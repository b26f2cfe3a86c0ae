package main

import (
	"fmt"
	"time"

	"github.com/o0olele/wayfinder-go/builder"
	"github.com/o0olele/wayfinder-go/venue"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newCompileCmd(root *rootOptions) *cobra.Command {
	var venueDir, out string

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile a venue directory into a navigation snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := root.setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			dir, err := venuePath(venueDir, cfg)
			if err != nil {
				return err
			}
			if out == "" {
				return fmt.Errorf("--out is required")
			}

			start := time.Now()
			ds, err := venue.Load(dir)
			if err != nil {
				return err
			}
			nav, err := builder.NewBuilder(cfg.BuildOptions(), logger.Named("builder")).Build(cmd.Context(), ds)
			if err != nil {
				return err
			}
			if err := builder.Save(nav, cfg.IndexOptions(), out); err != nil {
				return err
			}

			stats := nav.Stats()
			logger.Info("Snapshot written",
				zap.String("out", out),
				zap.Int("nodes", stats.NodeCount),
				zap.Int("edges", stats.EdgeCount),
				zap.Duration("took", time.Since(start)))
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d nodes, %d edges, %d floors\n",
				out, stats.NodeCount, stats.EdgeCount, stats.FloorCount)
			return nil
		},
	}
	cmd.Flags().StringVar(&venueDir, "venue", "", "Venue directory")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Snapshot file to write")
	return cmd
}
