package app

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/campusgigs/campusgigs-api/internal/api"
	"github.com/campusgigs/campusgigs-api/internal/config"
	"github.com/campusgigs/campusgigs-api/internal/db"
	"github.com/campusgigs/campusgigs-api/internal/event"
	"github.com/campusgigs/campusgigs-api/internal/logger"
	"github.com/campusgigs/campusgigs-api/internal/realtime"
	"github.com/campusgigs/campusgigs-api/internal/storage"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	store, err := storage.NewDiskStore(conf.Storage, conf.API.BaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize storage -> %w", err)
	}

	ctx := context.Background()

	var bridge realtime.Bridge
	if conf.Redis != nil && conf.Redis.Addr != "" {
		redisBridge, err := realtime.NewRedisBridge(ctx, conf.Redis)
		if err != nil {
			return fmt.Errorf("failed to initialize redis bridge -> %w", err)
		}
		bridge = redisBridge
		defer redisBridge.Close()
	}

	hub := realtime.NewHub(bridge)
	go hub.Run()

	if redisBridge, ok := bridge.(*realtime.RedisBridge); ok {
		go redisBridge.Listen(ctx, hub)
	}

	var events *event.Publisher
	if conf.AMQP != nil && conf.AMQP.URL != "" {
		events, err = event.NewPublisher(conf.AMQP.URL)
		if err != nil {
			return fmt.Errorf("failed to initialize event publisher -> %w", err)
		}
		defer events.Close()
	}

	s := api.NewServer(conf, postgresDB, store, hub, events)

	config.Watch(func(updated *config.AppConfig) {
		zap.L().Info("config reloaded")
		*s.Config = *updated
	})

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}
