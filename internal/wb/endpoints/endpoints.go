package endpoints

import (
	"fmt"
	"net/http"
	"time"

	"github.com/athebyme/wildberries-sync/config"
)

// Host определяет раздел API Wildberries, на который смотрит эндпоинт
type Host int

const (
	HostMarketplace Host = iota // сборочные задания FBS, склады, остатки
	HostStatistics              // статистика: FBO, продажи, отчеты
	HostContent                 // карточки товаров
	HostDiscounts               // цены и скидки
)

// Endpoint описывает один метод API Wildberries: путь, допустимый код ответа,
// минимальный интервал между запросами и окно актуальности выгрузки
type Endpoint struct {
	Name           string
	Method         string
	Host           Host
	Path           string
	PositiveStatus int
	Spacing        time.Duration // пауза между последовательными запросами
	CacheWindow    time.Duration // срок, в течение которого выгрузка считается свежей
}

// HasCache сообщает, хранится ли результат эндпоинта с контролем свежести
func (e Endpoint) HasCache() bool {
	return e.CacheWindow > 0
}

var (
	// OrdersFBS - сборочные задания за период
	OrdersFBS = Endpoint{
		Name:           "orders_fbs",
		Method:         http.MethodGet,
		Host:           HostMarketplace,
		Path:           "/api/v3/orders",
		PositiveStatus: http.StatusOK,
		Spacing:        time.Second,
	}

	// OrdersNew - новые сборочные задания
	OrdersNew = Endpoint{
		Name:           "orders_new",
		Method:         http.MethodGet,
		Host:           HostMarketplace,
		Path:           "/api/v3/orders/new",
		PositiveStatus: http.StatusOK,
		Spacing:        time.Second,
	}

	// OrdersStatus - статусы сборочных заданий по списку идентификаторов
	OrdersStatus = Endpoint{
		Name:           "orders_status",
		Method:         http.MethodPost,
		Host:           HostMarketplace,
		Path:           "/api/v3/orders/status",
		PositiveStatus: http.StatusOK,
		Spacing:        time.Second,
	}

	// OrdersFBO - заказы со складов Wildberries из раздела статистики.
	// Раздел жестко лимитирован: один запрос в 70 секунд.
	OrdersFBO = Endpoint{
		Name:           "orders_fbo",
		Method:         http.MethodGet,
		Host:           HostStatistics,
		Path:           "/api/v1/supplier/orders",
		PositiveStatus: http.StatusOK,
		Spacing:        70 * time.Second,
		CacheWindow:    15 * time.Minute,
	}

	// Sales - продажи и возвраты
	Sales = Endpoint{
		Name:           "sales",
		Method:         http.MethodGet,
		Host:           HostStatistics,
		Path:           "/api/v1/supplier/sales",
		PositiveStatus: http.StatusOK,
		Spacing:        61 * time.Second,
		CacheWindow:    30 * time.Minute,
	}

	// SalesReport - детализация реализации за период
	SalesReport = Endpoint{
		Name:           "sales_report",
		Method:         http.MethodGet,
		Host:           HostStatistics,
		Path:           "/api/v5/supplier/reportDetailByPeriod",
		PositiveStatus: http.StatusOK,
		Spacing:        61 * time.Second,
		CacheWindow:    30 * time.Minute,
	}

	// Nomenclature - список карточек товаров с курсорной пагинацией
	Nomenclature = Endpoint{
		Name:           "nomenclature",
		Method:         http.MethodPost,
		Host:           HostContent,
		Path:           "/content/v2/get/cards/list",
		PositiveStatus: http.StatusOK,
		Spacing:        800 * time.Millisecond,
	}

	// Stocks - остатки товаров на складе продавца. Путь содержит
	// идентификатор склада, подставляется через Resolver.URLf.
	Stocks = Endpoint{
		Name:           "stocks",
		Method:         http.MethodPost,
		Host:           HostMarketplace,
		Path:           "/api/v3/stocks/%d",
		PositiveStatus: http.StatusOK,
		Spacing:        time.Second,
	}

	// Warehouses - список складов продавца
	Warehouses = Endpoint{
		Name:           "warehouses",
		Method:         http.MethodGet,
		Host:           HostMarketplace,
		Path:           "/api/v3/warehouses",
		PositiveStatus: http.StatusOK,
		Spacing:        time.Second,
	}

	// Prices - загрузка цен и скидок
	Prices = Endpoint{
		Name:           "prices",
		Method:         http.MethodPost,
		Host:           HostDiscounts,
		Path:           "/api/v2/upload/task",
		PositiveStatus: http.StatusOK,
		Spacing:        time.Second,
	}
)

// Resolver собирает полные адреса эндпоинтов из конфигурации хостов
type Resolver struct {
	marketplace string
	statistics  string
	content     string
	discounts   string
}

// NewResolver создает резолвер адресов. В песочнице все разделы
// обслуживает один хост.
func NewResolver(cfg *config.Config) *Resolver {
	if cfg.Wildberries.UseSandbox {
		return &Resolver{
			marketplace: cfg.Wildberries.SandboxURL,
			statistics:  cfg.Wildberries.SandboxURL,
			content:     cfg.Wildberries.SandboxURL,
			discounts:   cfg.Wildberries.SandboxURL,
		}
	}
	return &Resolver{
		marketplace: cfg.Wildberries.MarketplaceURL,
		statistics:  cfg.Wildberries.StatisticsURL,
		content:     cfg.Wildberries.ContentURL,
		discounts:   cfg.Wildberries.DiscountsURL,
	}
}

// URL возвращает полный адрес эндпоинта
func (r *Resolver) URL(e Endpoint) string {
	switch e.Host {
	case HostStatistics:
		return r.statistics + e.Path
	case HostContent:
		return r.content + e.Path
	case HostDiscounts:
		return r.discounts + e.Path
	default:
		return r.marketplace + e.Path
	}
}

// URLf возвращает полный адрес эндпоинта с подставленными параметрами пути
func (r *Resolver) URLf(e Endpoint, args ...interface{}) string {
	return fmt.Sprintf(r.URL(e), args...)
}
