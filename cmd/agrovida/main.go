// Command agrovida serves the variety management API and dashboard.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rise-and-shine/agrovida/cfgloader"
	"github.com/rise-and-shine/agrovida/internal/config"
	"github.com/rise-and-shine/agrovida/internal/httpapi"
	"github.com/rise-and-shine/agrovida/internal/variety"
	"github.com/rise-and-shine/agrovida/meta"
	"github.com/rise-and-shine/agrovida/observability/logger"
	"github.com/rise-and-shine/agrovida/observability/tracing"
	"github.com/rise-and-shine/agrovida/rdb"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := cfgloader.MustLoad[config.Config]()

	meta.SetServiceInfo(cfg.Service.Name, cfg.Service.Version)
	logger.SetGlobal(cfg.Logger)
	defer func() { _ = logger.Sync() }()

	log := logger.Named("main")

	shutdownTracer, err := tracing.InitGlobalTracer(cfg.Tracing)
	if err != nil {
		log.Fatalx(err)
	}
	defer func() {
		if err := shutdownTracer(); err != nil {
			log.Errorx(err)
		}
	}()

	db, err := rdb.NewBunDB(cfg.Database)
	if err != nil {
		log.Fatalx(err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = rdb.WaitReady(ctx, db, cfg.Database.ReadyAttempts, cfg.Database.ReadyDelay); err != nil {
		log.Fatalx(err)
	}

	srv := httpapi.NewServer(cfg.HTTPServer, variety.NewRepository(db), logger.Named("http"))

	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", cfg.HTTPServer.Address())
		errCh <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err = <-errCh:
		if err != nil {
			log.Errorx(err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = srv.Stop(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		log.Errorx(err)
	}

	log.Info("stopped")
}
