package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/athebyme/wildberries-sync/config"
	"github.com/athebyme/wildberries-sync/internal/adapters/cache"
	"github.com/athebyme/wildberries-sync/internal/adapters/logger"
	"github.com/athebyme/wildberries-sync/internal/adapters/messaging"
	"github.com/athebyme/wildberries-sync/internal/adapters/storage"
	"github.com/athebyme/wildberries-sync/internal/fetcher"
	"github.com/athebyme/wildberries-sync/internal/handlers"
	"github.com/athebyme/wildberries-sync/internal/platform"
	"github.com/athebyme/wildberries-sync/internal/wb/endpoints"
	"github.com/athebyme/wildberries-sync/pkg/interfaces"
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
	log.Info("Кэш инициализирован")

	db, err := storage.NewPostgresStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal("Ошибка инициализации хранилища", "error", err)
	}
	defer db.Close()
	log.Info("Хранилище инициализировано")

	denial := fetcher.NewDenialSet(cacheClient, log)
	if err := denial.Load(ctx); err != nil {
		log.Warn("Не удалось восстановить список отвергнутых ключей", "error", err)
	}

	f := fetcher.New(cfg, endpoints.NewResolver(cfg), denial, fetcher.NewLedger(), log)
	platformClient := platform.NewClient(cfg, log)

	deps := &handlers.Deps{
		Cfg:      cfg,
		Fetcher:  f,
		Storage:  db,
		Platform: platformClient,
		Logger:   log,
	}

	broker, err := messaging.NewKafkaMessaging(cfg.Kafka.Brokers, cfg.Kafka.GroupID)
	if err != nil {
		log.Fatal("Ошибка инициализации брокера сообщений", "error", err)
	}
	defer broker.Close()
	log.Info("Брокер сообщений инициализирован", "topic", cfg.Kafka.ConsumerTopic)

	unsubscribe, err := broker.Subscribe(ctx, cfg.Kafka.ConsumerTopic, func(ctx context.Context, msg *interfaces.Message) error {
		return handleMessage(ctx, deps, platformClient, broker, cfg.Kafka.ProducerTopic, log, msg)
	})
	if err != nil {
		log.Fatal("Ошибка подписки на топик", "error", err)
	}
	defer unsubscribe()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("Получен сигнал завершения", "signal", sig.String())
	cancel()
}

// handleMessage обрабатывает событие платформы и отправляет результат
// на вебхук и в топик ответов. Ошибка разбора сообщения не
// возвращается брокеру: повтор даст тот же результат.
func handleMessage(ctx context.Context, deps *handlers.Deps, client *platform.Client, broker interfaces.MessagingPort, responseTopic string, log interfaces.LoggerPort, msg *interfaces.Message) error {
	var event platform.StartEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("не удалось разобрать сообщение платформы",
			"message_id", msg.ID,
			"error", err,
		)
		return nil
	}

	log.Info("получено событие платформы",
		"event", event.Event,
		"event_id", event.EventID,
		"marketplace_id", event.MarketplaceID,
	)

	result := handlers.Dispatch(ctx, deps, &event)

	if event.Callback == "" {
		event.Callback = "result_" + event.Event
		result.Callback = event.Callback
	}
	if err := client.SendCallback(ctx, event.MarketplaceID, event.Callback, result); err != nil {
		log.Error("не удалось доставить ответ платформе",
			"event", event.Event,
			"event_id", event.EventID,
			"error", err,
		)
	}

	raw, err := json.Marshal(result)
	if err != nil {
		log.Error("не удалось сериализовать ответ для топика ответов", "error", err)
		return nil
	}
	if err := broker.PublishWithKey(ctx, responseTopic, event.EventID, raw); err != nil {
		log.Error("не удалось опубликовать ответ в топик ответов",
			"topic", responseTopic,
			"event_id", event.EventID,
			"error", err,
		)
	}
	return nil
}
