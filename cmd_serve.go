package main

import (
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"

	"github.com/o0olele/wayfinder-go/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var venue, addr, pprofAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve routes over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := root.setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			if addr != "" {
				cfg.Server.Addr = addr
			}
			path, err := venuePath(venue, cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if pprofAddr != "" {
				go func() {
					logger.Info("pprof listening", zap.String("addr", pprofAddr))
					logger.Warn("pprof stopped", zap.Error(http.ListenAndServe(pprofAddr, nil)))
				}()
			}

			srv := server.New(cfg, logger)
			if err := srv.Load(ctx, path); err != nil {
				return err
			}
			return srv.ListenAndServe(ctx)
		},
	}
	cmd.Flags().StringVar(&venue, "venue", "", "Venue directory or snapshot file")
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")
	cmd.Flags().StringVar(&pprofAddr, "pprof", "", "Serve net/http/pprof on this address")
	return cmd
}

