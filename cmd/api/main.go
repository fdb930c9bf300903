package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/athebyme/wildberries-sync/config"
	"github.com/athebyme/wildberries-sync/internal/adapters/cache"
	"github.com/athebyme/wildberries-sync/internal/adapters/logger"
	"github.com/athebyme/wildberries-sync/internal/adapters/storage"
	"github.com/athebyme/wildberries-sync/internal/api"
	"github.com/athebyme/wildberries-sync/internal/fetcher"
	"github.com/athebyme/wildberries-sync/internal/handlers"
	"github.com/athebyme/wildberries-sync/internal/platform"
	"github.com/athebyme/wildberries-sync/internal/wb/endpoints"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Printf("Ошибка загрузки конфигурации: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log, err := logger.NewZapLogger(cfg.LogLevel, cfg.ENV == "production")
	if err != nil {
		fmt.Printf("Ошибка инициализации логгера: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	log.Info("Инициализация сервиса",
		"app_name", cfg.AppName,
		"version", cfg.Version,
		"env", cfg.ENV,
	)

	cacheClient, err := cache.NewRedisCache(ctx, cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatal("Ошибка инициализации кэша", "error", err)
	}
	defer cacheClient.Close()

	db, err := storage.NewPostgresStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal("Ошибка инициализации хранилища", "error", err)
	}
	defer db.Close()

	denial := fetcher.NewDenialSet(cacheClient, log)
	if err := denial.Load(ctx); err != nil {
		log.Warn("Не удалось восстановить список отвергнутых ключей", "error", err)
	}

	deps := &handlers.Deps{
		Cfg:      cfg,
		Fetcher:  fetcher.New(cfg, endpoints.NewResolver(cfg), denial, fetcher.NewLedger(), log),
		Storage:  db,
		Platform: platform.NewClient(cfg, log),
		Logger:   log,
	}

	router := api.SetupRouter(deps, log)
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("HTTP сервер запущен", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Ошибка HTTP сервера", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("Получен сигнал завершения", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Ошибка остановки HTTP сервера", "error", err)
	}
	log.Info("Сервис остановлен")
}
