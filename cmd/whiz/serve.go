package main

import (
	"github.com/spf13/cobra"

	"github.com/andyphuawc114/boardgamewhiz/internal/api"
	"github.com/andyphuawc114/boardgamewhiz/internal/infrastructure/logging"
)

func newServeCmd() *cobra.Command {
	var (
		addr     string
		noSearch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard API over HTTP",
		Long:  "Starts the JSON API with recommendations, top games, trends, reviews and Prometheus metrics.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withInternalDeps(ctx, func(d *internalDeps) error {
				h := api.Handlers{
					Catalog:   d.CatalogHandler,
					Recommend: d.RecommendHandler,
					Trend:     d.TrendHandler,
					Review:    d.ReviewHandler,
				}

				if !noSearch {
					query, repo, err := newQueryHandler(d)
					if err != nil {
						logging.Warn().Err(err).Msg("Review search disabled")
					} else {
						defer repo.Close()
						h.Query = query
					}
				}

				if _, err := d.CatalogHandler.HandleInfo(ctx); err != nil {
					logging.Warn().Err(err).Msg("Catalog not loaded yet; retrying on first request")
				}

				serverCfg := d.Config.Server
				if addr != "" {
					serverCfg.Addr = addr
				}
				return api.NewServer(serverCfg, h).ListenAndServe(ctx)
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	cmd.Flags().BoolVar(&noSearch, "no-search", false, "Disable semantic review search")

	return cmd
}
