package main

import (
	"encoding/json"

	"github.com/o0olele/wayfinder-go/graph"
	"github.com/o0olele/wayfinder-go/query"
	"github.com/spf13/cobra"
)

type statsOutput struct {
	graph.Stats
	Floors    []string          `json:"floors"`
	Obstacles int               `json:"obstacles"`
	Cache     *query.CacheStats `json:"cache,omitempty"`
}

func newStatsCmd(root *rootOptions) *cobra.Command {
	var venue string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print graph statistics of a venue or snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := root.setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			path, err := venuePath(venue, cfg)
			if err != nil {
				return err
			}
			n, err := query.LoadAndQuery(cmd.Context(), path, cfg.BuildOptions(),
				append(cfg.NavigatorOptions(), query.WithLogger(logger))...)
			if err != nil {
				return err
			}

			nav := n.Navigation()
			out := statsOutput{
				Stats:     nav.Stats(),
				Floors:    nav.Graph.Floors(),
				Obstacles: nav.Detector.ObstacleCount(),
			}
			if cs, ok := n.CacheStats(); ok {
				out.Cache = &cs
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
	cmd.Flags().StringVar(&venue, "venue", "", "Venue directory or snapshot file")
	return cmd
}
