package handlers

import (
	"context"
	"fmt"

	"github.com/athebyme/wildberries-sync/internal/platform"
)

// События платформы, отправляемые микросервисам маркетплейсов
const (
	EventExportProducts        = "export_products"
	EventExportPrices          = "export_prices"
	EventImportStock           = "import_stock"
	EventImportStockFBO        = "import_stock_fbo"
	EventExportStock           = "export_stock"
	EventImportWarehouses      = "import_warehouses"
	EventImportOrders          = "import_orders"
	EventBalanceMovement       = "balance_movement"
	EventGenerateBarcodes      = "generate_barcodes"
	EventCheckingOrderStatuses = "checking_order_statuses"
)

// registry сопоставляет событие с обработчиком. Событие без
// обработчика отклоняется до обращения к API.
var registry = map[string]Handler{
	EventImportOrders:          ImportOrders,
	EventCheckingOrderStatuses: CheckOrderStatuses,
	EventExportProducts:        ExportProducts,
	EventImportWarehouses:      ImportWarehouses,
	EventImportStock:           ImportStock,
	EventExportPrices:          ExportPrices,
}

// Dispatch обрабатывает событие платформы. Для неизвестного или не
// поддерживаемого события возвращается ответ с ошибкой, задача не
// считается упавшей.
func Dispatch(ctx context.Context, deps *Deps, event *platform.StartEvent) *platform.Response {
	handler, ok := registry[event.Event]
	if !ok {
		deps.Logger.Warn("событие не поддерживается",
			"event", event.Event,
			"event_id", event.EventID,
			"marketplace_id", event.MarketplaceID,
		)
		eventsTotal.WithLabelValues(event.Event, "unsupported").Inc()
		return platform.NewResponse(event, []interface{}{}, []map[string]interface{}{
			{
				"error":     true,
				"errorText": fmt.Sprintf("событие %q не поддерживается", event.Event),
			},
		})
	}

	resp := handler(ctx, deps, event)
	status := "ok"
	if len(resp.Errors) > 0 {
		status = "error"
	}
	eventsTotal.WithLabelValues(event.Event, status).Inc()
	return resp
}

// Supported сообщает, есть ли у события обработчик
func Supported(event string) bool {
	_, ok := registry[event]
	return ok
}
