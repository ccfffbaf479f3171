package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"factory_floor/bot"
	"factory_floor/catalog"
	"factory_floor/database"
	"factory_floor/server"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Telegram bot and the HTTP dashboard API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	if cfg.BotToken == "" && cfg.HTTPAddr == "" {
		return errors.New("nothing to serve: set BOT_TOKEN and/or HTTP_ADDR")
	}

	floor := catalog.Default()
	if err := floor.Validate(); err != nil {
		logrus.WithError(err).Warn("Catalog has inconsistencies")
	}

	db, err := database.New(cfg.DBPath, cfg.StorageQuotaBytes)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	sims := newGateway(cfg)
	bg := newBackground(cfg, db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	if cfg.BotToken != "" {
		tg, err := bot.New(cfg.BotToken, floor, sims, bg)
		if err != nil {
			return err
		}
		g.Go(func() error {
			tg.Start(ctx)
			return nil
		})
	}

	if cfg.HTTPAddr != "" {
		httpServer := &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           server.New(floor, sims, bg).Routes(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		g.Go(func() error {
			logrus.WithField("addr", cfg.HTTPAddr).Info("HTTP API listening")
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return httpServer.Shutdown(shutdownCtx)
		})
	}

	logrus.Info("Factory floor is running. Press CTRL+C to exit.")

	err = g.Wait()
	logrus.Info("Shutting down...")
	return err
}
