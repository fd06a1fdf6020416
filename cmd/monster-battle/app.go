package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shotam27/NoGambleMonsterBattle/internal/api"
	"github.com/shotam27/NoGambleMonsterBattle/internal/config"
	"github.com/shotam27/NoGambleMonsterBattle/internal/engine"
	"github.com/shotam27/NoGambleMonsterBattle/internal/matchmaking"
	"github.com/shotam27/NoGambleMonsterBattle/internal/service"
	"github.com/shotam27/NoGambleMonsterBattle/internal/storage"

	"github.com/gin-gonic/gin"
)

// app holds the wired components so shutdown can release them in order.
type app struct {
	repo    storage.Repository
	battles *service.Service
	router  *gin.Engine
}

func newApp(ctx context.Context, cfg config.Config) (*app, error) {
	cat, err := cfg.Catalog()
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	repo, err := storage.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	hub := api.NewHub()
	battles := service.New(repo, engine.New(cat), hub, service.Options{Seed: cfg.Battle.Seed})
	coord := matchmaking.NewCoordinator(battles, matchmaking.NewQueue(), matchmaking.NewRegistry(), cat, hub)
	battles.OnBattleEnd(coord.BattleEnded)

	tickets, err := api.NewTickets(cfg.SessionSecret, time.Duration(cfg.Battle.TicketTTLMinutes)*time.Minute)
	if err != nil {
		_ = repo.Close()
		return nil, err
	}
	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}
	handler := api.NewBattleHandler(battles, cat, repo, tickets, cfg.Battle.LeaderboardSize)
	router := api.NewRouter(handler, api.NewWebsocketHandler(hub, coord))

	return &app{repo: repo, battles: battles, router: router}, nil
}

// close stops live battles before the store goes away.
func (a *app) close(ctx context.Context) error {
	err := a.battles.Close(ctx)
	if cerr := a.repo.Close(); err == nil {
		err = cerr
	}
	return err
}
