package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"student-rank/config"
	"student-rank/controllers"
	"student-rank/driver"
	"student-rank/migrations"
	"student-rank/store"
	"student-rank/utils"
)

func newServeCmd() *cobra.Command {
	var runMigrations bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the read-only results API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, db, err := setup(ctx)
			if err != nil {
				return err
			}
			defer driver.Close(db)

			if runMigrations {
				if err := migrations.Up(ctx, db); err != nil {
					return err
				}
			}
			if err := migrations.Verify(ctx, db); err != nil {
				log.WithError(err).Warn("schema check failed")
			}

			s := store.New(db)
			return serve(ctx, cfg.Server, newHandler(cfg.Server, s))
		},
	}
	cmd.Flags().BoolVar(&runMigrations, "migrate", false, "apply migrations before serving")
	return cmd
}

func newHandler(cfg config.Server, s *store.Store) http.Handler {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := utils.NewMetrics(reg)

	router := mux.NewRouter()
	router.Use(utils.WithRequestID, utils.WithLogging, metrics.Middleware, utils.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	controllers.Register(router, s, s)
	router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods("GET")

	h := handlers.RecoveryHandler(handlers.RecoveryLogger(log.StandardLogger()))(router)
	return handlers.CORS(
		handlers.AllowedOrigins(cfg.CORSOrigins),
		handlers.AllowedMethods([]string{"GET", "OPTIONS"}),
	)(h)
}

// serve blocks until ctx is cancelled, then drains in-flight requests.
func serve(ctx context.Context, cfg config.Server, h http.Handler) error {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.Port).Info("server started")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
