package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config содержит все настройки сервиса
type Config struct {
	AppName  string
	Version  string
	LogLevel string
	ENV      string

	Server struct {
		Host            string
		Port            int
		ReadTimeout     time.Duration
		WriteTimeout    time.Duration
		ShutdownTimeout time.Duration
	}

	Postgres struct {
		Host     string
		Port     int
		User     string
		Password string
		DBName   string
		SSLMode  string
		Timeout  time.Duration
		PoolSize int // размер пула соединений
	}

	Redis struct {
		Host     string
		Port     int
		Password string
		DB       int
	}

	Kafka struct {
		Brokers       string        `mapstructure:"brokers"`
		GroupID       string        `mapstructure:"group_id"`
		ConsumerTopic string        `mapstructure:"consumer_topic"`
		ProducerTopic string        `mapstructure:"producer_topic"`
		ReadTimeout   time.Duration `mapstructure:"read_timeout"`
		WriteTimeout  time.Duration `mapstructure:"write_timeout"`
	}

	// Wildberries описывает базовые адреса разделов API маркетплейса
	Wildberries struct {
		MarketplaceURL string // сборочные задания (FBS), склады, остатки
		StatisticsURL  string // статистика: заказы FBO, продажи, отчеты
		ContentURL     string // карточки товаров
		DiscountsURL   string // цены и скидки
		SandboxURL     string
		UseSandbox     bool
		AuthHeader     string // имя заголовка с ключом доступа
	}

	// Fetcher описывает параметры отказоустойчивого обращения к API
	Fetcher struct {
		MaxAttempts   int           // максимальное число попыток запроса
		Concurrency   int           // ширина пула одновременных запросов
		ClientTimeout time.Duration // таймаут HTTP-клиента на один запрос
		PageCap       int           // предохранитель от бесконечной пагинации
	}

	Platform struct {
		WebhookURL          string // базовый адрес вебхука платформы
		RelationProductsURL string // шаблон адреса связей товаров, %d - id маркетплейса
		AuthURL             string
	}

	Metrics struct {
		Enabled bool
		Port    int `mapstructure:"port"`
	}
}

// Load загружает конфигурацию из файла и переменных окружения
func Load(configPath string) (*Config, error) {
	configFile := "config"
	if configPath != "" {
		configFile = configPath
	}

	var cfg Config

	viper.SetConfigName(configFile)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("../config")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("ошибка чтения файла конфигурации: %w", err)
		}
		// Продолжаем, если файл не найден, будем использовать только переменные окружения
	}

	setDefaults()
	bindEnvVariables()

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка десериализации конфигурации: %w", err)
	}

	cfg.ENV = viper.GetString("env")
	if cfg.ENV == "" {
		cfg.ENV = "development"
		if envVar := os.Getenv("APP_ENV"); envVar != "" {
			cfg.ENV = envVar
		}
	}

	return &cfg, nil
}

// setDefaults устанавливает значения по умолчанию
func setDefaults() {
	viper.SetDefault("appName", "wildberries-sync")
	viper.SetDefault("version", "1.0.0")
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("env", "development")

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.readTimeout", "10s")
	viper.SetDefault("server.writeTimeout", "10s")
	viper.SetDefault("server.shutdownTimeout", "5s")

	viper.SetDefault("postgres.host", "localhost")
	viper.SetDefault("postgres.port", 5432)
	viper.SetDefault("postgres.user", "postgres")
	viper.SetDefault("postgres.password", "postgres")
	viper.SetDefault("postgres.dbname", "wildberries")
	viper.SetDefault("postgres.sslmode", "disable")
	viper.SetDefault("postgres.timeout", "5s")
	viper.SetDefault("postgres.poolSize", 10)

	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	viper.SetDefault("kafka.brokers", "localhost:9092")
	viper.SetDefault("kafka.group_id", "wildberries-sync")
	viper.SetDefault("kafka.consumer_topic", "ms-marketplaces-wb")
	viper.SetDefault("kafka.producer_topic", "ms-marketplaces-responses")
	viper.SetDefault("kafka.read_timeout", "10s")
	viper.SetDefault("kafka.write_timeout", "10s")

	viper.SetDefault("wildberries.marketplaceURL", "https://marketplace-api.wildberries.ru")
	viper.SetDefault("wildberries.statisticsURL", "https://statistics-api.wildberries.ru")
	viper.SetDefault("wildberries.contentURL", "https://content-api.wildberries.ru")
	viper.SetDefault("wildberries.discountsURL", "https://discounts-prices-api.wildberries.ru")
	viper.SetDefault("wildberries.sandboxURL", "https://marketplace-api-sandbox.wildberries.ru")
	viper.SetDefault("wildberries.useSandbox", false)
	viper.SetDefault("wildberries.authHeader", "Authorization")

	viper.SetDefault("fetcher.maxAttempts", 3)
	viper.SetDefault("fetcher.concurrency", 10)
	viper.SetDefault("fetcher.clientTimeout", "90s")
	viper.SetDefault("fetcher.pageCap", 1000)

	viper.SetDefault("platform.webhookURL", "http://platform/webhook")
	viper.SetDefault("platform.relationProductsURL", "http://platform/api/relations/marketplace/%d/")
	viper.SetDefault("platform.authURL", "http://platform/api/auth/")

	viper.SetDefault("metrics.enabled", true)
	viper.SetDefault("metrics.port", 9090)
}

// bindEnvVariables привязывает переменные окружения к конфигурации
func bindEnvVariables() {
	viper.BindEnv("appName", "APP_NAME")
	viper.BindEnv("version", "APP_VERSION")
	viper.BindEnv("logLevel", "LOG_LEVEL")
	viper.BindEnv("env", "APP_ENV")

	viper.BindEnv("server.host", "SERVER_HOST")
	viper.BindEnv("server.port", "SERVER_PORT")

	viper.BindEnv("postgres.host", "POSTGRES_HOST")
	viper.BindEnv("postgres.port", "POSTGRES_PORT")
	viper.BindEnv("postgres.user", "POSTGRES_USER")
	viper.BindEnv("postgres.password", "POSTGRES_PASSWORD")
	viper.BindEnv("postgres.dbname", "POSTGRES_DBNAME")
	viper.BindEnv("postgres.sslmode", "POSTGRES_SSLMODE")
	viper.BindEnv("postgres.poolSize", "POSTGRES_POOL_SIZE")

	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("redis.db", "REDIS_DB")

	viper.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	viper.BindEnv("kafka.group_id", "KAFKA_GROUP_ID")
	viper.BindEnv("kafka.consumer_topic", "KAFKA_CONSUMER_TOPIC")
	viper.BindEnv("kafka.producer_topic", "KAFKA_PRODUCER_TOPIC")

	viper.BindEnv("wildberries.marketplaceURL", "WB_MARKETPLACE_URL")
	viper.BindEnv("wildberries.statisticsURL", "WB_STATISTICS_URL")
	viper.BindEnv("wildberries.contentURL", "WB_CONTENT_URL")
	viper.BindEnv("wildberries.discountsURL", "WB_DISCOUNTS_URL")
	viper.BindEnv("wildberries.sandboxURL", "WB_SANDBOX_URL")
	viper.BindEnv("wildberries.useSandbox", "WB_USE_SANDBOX")
	viper.BindEnv("wildberries.authHeader", "WB_AUTH_HEADER")

	viper.BindEnv("fetcher.maxAttempts", "MAX_COUNT_REPEAT_REQUESTS")
	viper.BindEnv("fetcher.concurrency", "FETCHER_CONCURRENCY")
	viper.BindEnv("fetcher.clientTimeout", "FETCHER_CLIENT_TIMEOUT")
	viper.BindEnv("fetcher.pageCap", "FETCHER_PAGE_CAP")

	viper.BindEnv("platform.webhookURL", "PLATFORM_WEBHOOK_URL")
	viper.BindEnv("platform.relationProductsURL", "PLATFORM_RELATION_PRODUCTS_URL")
	viper.BindEnv("platform.authURL", "PLATFORM_AUTH_URL")

	viper.BindEnv("metrics.enabled", "METRICS_ENABLED")
	viper.BindEnv("metrics.port", "METRICS_PORT")
}
