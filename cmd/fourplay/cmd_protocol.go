package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/hailam/fourplay/internal/engine"
	"github.com/hailam/fourplay/internal/protocol"
)

func newProtocolCmd(a *app) *cobra.Command {
	var metricsAddr string
	cmd := &cobra.Command{
		Use:   "protocol",
		Short: "Speak the line protocol on stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var metrics *engine.Metrics
			if metricsAddr != "" {
				reg := prometheus.NewRegistry()
				metrics = engine.NewMetrics(reg)
				srv := &http.Server{
					Addr:              metricsAddr,
					Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
					ReadHeaderTimeout: 5 * time.Second,
				}
				go func() {
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						a.logger.Error("metrics server stopped", "error", err)
					}
				}()
				defer srv.Close()
				a.logger.Info("serving metrics", "addr", metricsAddr)
			}

			h := protocol.New(a.cfg, cmd.OutOrStdout(), a.logger, metrics)
			return h.Run(cmd.InOrStdin())
		},
	}
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")
	return cmd
}
