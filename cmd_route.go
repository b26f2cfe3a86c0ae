package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/o0olele/wayfinder-go/query"
	"github.com/paulmach/orb"
	"github.com/spf13/cobra"
)

type routeOutput struct {
	Found    bool         `json:"found"`
	Route    *query.Route `json:"route,omitempty"`
	Smoothed []orb.Point  `json:"smoothed,omitempty"`
}

// parsePoint reads "lon,lat".
func parsePoint(s string) (orb.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return orb.Point{}, fmt.Errorf("invalid coordinate %q, want lon,lat", s)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return orb.Point{}, fmt.Errorf("invalid longitude in %q: %w", s, err)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return orb.Point{}, fmt.Errorf("invalid latitude in %q: %w", s, err)
	}
	return orb.Point{lon, lat}, nil
}

func newRouteCmd(root *rootOptions) *cobra.Command {
	var (
		venue, from, to      string
		fromFloor, toFloor   string
		accessible, noStairs bool
		smooth               bool
	)

	cmd := &cobra.Command{
		Use:   "route",
		Short: "Find a route between two nodes or coordinates",
		Long: `Find a route between two node ids, or between two "lon,lat" coordinates
when --from-floor and --to-floor are given.`,
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
			if from == "" || to == "" {
				return fmt.Errorf("--from and --to are required")
			}

			n, err := query.LoadAndQuery(cmd.Context(), path, cfg.BuildOptions(),
				append(cfg.NavigatorOptions(), query.WithLogger(logger))...)
			if err != nil {
				return err
			}

			opts := cfg.SearchOptions()
			opts.AccessibleOnly = accessible
			opts.AvoidStairs = noStairs

			var route *query.Route
			if fromFloor != "" || toFloor != "" {
				src, err := parsePoint(from)
				if err != nil {
					return err
				}
				dst, err := parsePoint(to)
				if err != nil {
					return err
				}
				route = n.RouteBetween(src, fromFloor, dst, toFloor, opts)
			} else {
				route = n.FindPath(from, to, opts)
			}

			out := routeOutput{Found: route != nil, Route: route}
			if route != nil && smooth {
				out.Smoothed = n.Smooth(route)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
	cmd.Flags().StringVar(&venue, "venue", "", "Venue directory or snapshot file")
	cmd.Flags().StringVar(&from, "from", "", "Start node id, or lon,lat with --from-floor")
	cmd.Flags().StringVar(&to, "to", "", "End node id, or lon,lat with --to-floor")
	cmd.Flags().StringVar(&fromFloor, "from-floor", "", "Floor of the start coordinate")
	cmd.Flags().StringVar(&toFloor, "to-floor", "", "Floor of the end coordinate")
	cmd.Flags().BoolVar(&accessible, "accessible", false, "Only use step-free edges")
	cmd.Flags().BoolVar(&noStairs, "avoid-stairs", false, "Do not use stairs")
	cmd.Flags().BoolVar(&smooth, "smooth", false, "Include the smoothed path")
	return cmd
}
