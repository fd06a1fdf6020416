package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/shotam27/NoGambleMonsterBattle/internal/config"
	"github.com/shotam27/NoGambleMonsterBattle/internal/constants"
	"github.com/shotam27/NoGambleMonsterBattle/internal/logging"
)

const shutdownTimeout = 10 * time.Second

func run(ctx context.Context, cfg config.Config) error {
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           a.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logging.Info("Server started", logging.Fields{constants.LogFieldAddr: cfg.Server.Address})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logging.Info("shutting down", nil)
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := srv.Shutdown(sctx)
		if cerr := a.close(sctx); err == nil {
			err = cerr
		}
		return err
	})
	return g.Wait()
}
