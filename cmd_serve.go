package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/bowling/internal/database"
	"github.com/robalobadob/bowling/internal/httpserver"
	"github.com/robalobadob/bowling/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.OpenMigrated(cfg.Database.Path)
		if err != nil {
			return err
		}
		defer db.Close()

		st := store.NewMemoryStore()
		if cfg.Database.StoreDriver == "sqlite" {
			st = store.NewSQLStore(db)
		}

		srv := &http.Server{
			Addr:              ":" + cfg.Server.Port,
			Handler:           httpserver.New(cfg, st, db).Router(),
			ReadHeaderTimeout: 5 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errc := make(chan error, 1)
		go func() {
			log.Info().Str("port", cfg.Server.Port).Str("store", cfg.Database.StoreDriver).Msg("starting go-server")
			errc <- srv.ListenAndServe()
		}()

		select {
		case err := <-errc:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}

		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}
