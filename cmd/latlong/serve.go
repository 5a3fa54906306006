package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jengzang/latlong-terrain/internal/api"
	"github.com/jengzang/latlong-terrain/internal/handler"
	"github.com/jengzang/latlong-terrain/internal/repository"
	"github.com/jengzang/latlong-terrain/internal/service"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the stored points over a read-only HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		repo := repository.NewLatLongRepository(db)
		points := handler.NewPointHandler(
			service.NewPointService(repo),
			service.NewReportService(repo, cfg.ReportInclude, cfg.ReportExclude),
		)
		router, stopRouter := api.SetupRouter(cfg, points)
		defer stopRouter()

		srv := &http.Server{
			Addr:              cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			log.Printf("Server starting on port %s", cfg.Port)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
		}

		log.Printf("Server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	flags := serveCmd.Flags()
	flags.String("port", "", "listen address, e.g. :8080 (PORT)")
	bindFlags(flags, map[string]string{"PORT": "port"})
}
