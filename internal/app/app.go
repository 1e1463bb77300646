package app

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"

	"github.com/yuliitezarygml/tg-bor-arend/config"
	delivery "github.com/yuliitezarygml/tg-bor-arend/internal/delivery/http"
	consoleHandler "github.com/yuliitezarygml/tg-bor-arend/internal/domains/consoles/handler"
	consoleRepo "github.com/yuliitezarygml/tg-bor-arend/internal/domains/consoles/repository"
	consoleService "github.com/yuliitezarygml/tg-bor-arend/internal/domains/consoles/service"
	rentalHandler "github.com/yuliitezarygml/tg-bor-arend/internal/domains/rentals/handler"
	rentalRepo "github.com/yuliitezarygml/tg-bor-arend/internal/domains/rentals/repository"
	rentalService "github.com/yuliitezarygml/tg-bor-arend/internal/domains/rentals/service"
	settingsHandler "github.com/yuliitezarygml/tg-bor-arend/internal/domains/settings/handler"
	settingsRepo "github.com/yuliitezarygml/tg-bor-arend/internal/domains/settings/repository"
	settingsService "github.com/yuliitezarygml/tg-bor-arend/internal/domains/settings/service"
	userHandler "github.com/yuliitezarygml/tg-bor-arend/internal/domains/users/handler"
	userRepo "github.com/yuliitezarygml/tg-bor-arend/internal/domains/users/repository"
	userService "github.com/yuliitezarygml/tg-bor-arend/internal/domains/users/service"
	"github.com/yuliitezarygml/tg-bor-arend/pkg/httpserver"
	"github.com/yuliitezarygml/tg-bor-arend/pkg/logger"
	"github.com/yuliitezarygml/tg-bor-arend/pkg/notifier"
	"github.com/yuliitezarygml/tg-bor-arend/pkg/store"
)

func Run(cfg *config.Config) {
	l := logger.New(cfg.Log.Level)

	st, err := newStore(cfg, l)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - store: %w", err))

		return
	}

	n := newNotifier(cfg, l)

	// Repositories
	consoles := consoleRepo.New(st)
	users := userRepo.New(st)
	rentals := rentalRepo.New(st)
	requests := rentalRepo.NewRequests(st)
	settings := settingsRepo.New(st)

	// Services
	consoleSvc := consoleService.New(consoles, l)
	userSvc := userService.New(users, l)
	rentalSvc := rentalService.New(rentals, consoles, users, l)
	settingsSvc := settingsService.New(settings, l)

	scheduler := rentalService.NewScheduler(rentals, consoles, users, settings, n, l)
	scheduler.Start()
	defer scheduler.Stop()

	Cron(requests, cfg, l)

	// HTTP
	v := validator.New()

	httpServer := httpserver.New(httpserver.Port(cfg.HTTP.Port))
	delivery.NewRouter(httpServer.App, cfg, l, delivery.Handlers{
		Console:  consoleHandler.New(consoleSvc, l, v),
		User:     userHandler.New(userSvc, l, v),
		Rental:   rentalHandler.New(rentalSvc, l, v),
		Settings: settingsHandler.New(settingsSvc, l, v),
	})

	httpServer.Start()

	l.Info("app - Run - %s %s listening on :%s", cfg.App.Name, cfg.App.Version, cfg.HTTP.Port)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		l.Info("app - Run - signal: " + s.String())
	case err = <-httpServer.Notify():
		l.Error(fmt.Errorf("app - Run - httpServer.Notify: %w", err))
	}

	if err := httpServer.Shutdown(); err != nil {
		l.Error(fmt.Errorf("app - Run - httpServer.Shutdown: %w", err))
	}
}

func newStore(cfg *config.Config, l logger.Interface) (store.Store, error) {
	switch cfg.Store.Driver {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.Redis.Host, strconv.Itoa(cfg.Redis.Port)),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		if err := client.Ping(context.Background()).Err(); err != nil {
			return nil, fmt.Errorf("redis ping: %w", err)
		}

		return store.NewRedis(client, l), nil
	case "file":
		return store.NewFile(cfg.Store.Dir, l)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func newNotifier(cfg *config.Config, l logger.Interface) notifier.Notifier {
	if !cfg.Telegram.Enabled || cfg.Telegram.Token == "" {
		l.Warn("app - Run - telegram notifications disabled, logging only")

		return notifier.NewLog(l)
	}

	n, err := notifier.NewTelegram(cfg.Telegram.Token, cfg.Telegram.AdminChatID, l)
	if err != nil {
		l.Error("app - Run - telegram init failed, falling back to log notifier: %v", err)

		return notifier.NewLog(l)
	}

	return n
}
