package handlers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/athebyme/wildberries-sync/internal/platform"
	"github.com/athebyme/wildberries-sync/internal/requesters"
	"github.com/athebyme/wildberries-sync/internal/wb"
	"github.com/athebyme/wildberries-sync/internal/wb/endpoints"
	"github.com/athebyme/wildberries-sync/pkg/interfaces"
)

// имя источника в отметках выгрузок
const ordersSource = "orders"

// ImportOrders собирает заказы обеих схем, сопоставляет их с товарами
// платформы и продажами и возвращает строки заказов. Свежая выгрузка
// отдается из хранилища без обращения к API.
func ImportOrders(ctx context.Context, deps *Deps, event *platform.StartEvent) *platform.Response {
	started := time.Now()
	defer func() { ordersImportDuration.Observe(time.Since(started).Seconds()) }()

	log := deps.Logger.WithCompany(event.CompanyID, event.MarketplaceID)

	auth := event.AuthValue(deps.Cfg.Wildberries.AuthHeader)
	if auth == "" {
		return platform.NewResponse(event, []interface{}{}, []map[string]interface{}{
			{"error": true, "errorText": "в заголовках события нет ключа доступа к API"},
		})
	}

	if event.UseCache() && deps.Storage != nil {
		fresh, err := deps.Storage.IsFresh(ctx, event.CompanyID, event.MarketplaceID,
			ordersSource, endpoints.OrdersFBO.CacheWindow)
		if err != nil {
			log.Error("ошибка проверки свежести выгрузки заказов", "error", err)
		}
		if fresh {
			rows, err := deps.Storage.ListOrderRows(ctx, event.CompanyID, event.MarketplaceID)
			if err == nil {
				log.Info("заказы отданы из хранилища", "count", len(rows))
				return platform.NewResponse(event, rows, nil)
			}
			log.Error("ошибка чтения заказов из хранилища", "error", err)
		}
	}

	products, err := fetchRelationProducts(ctx, deps, event)
	if err != nil {
		log.Error("ошибка получения связей товаров с платформы", "error", err)
	}

	requester := requesters.NewOrdersRequester(deps.Fetcher, auth, event.AddInfo,
		deps.Cfg.Fetcher.PageCap, log)
	orders := clearDuplicateOrders(requester.Fetch(ctx))
	ordersCount.Set(float64(len(orders)))

	matchProducts(orders, products, log)
	attachSales(ctx, deps, auth, orders, log)

	rows := make([]*wb.PlatformOrder, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, o.ToPlatform(event.CompanyID, event.MarketplaceID))
	}

	if deps.Storage != nil && len(rows) > 0 {
		if err := deps.Storage.UpsertOrders(ctx, rows); err != nil {
			log.Error("ошибка сохранения заказов", "error", err)
		} else if err := deps.Storage.RecordFetch(ctx, event.CompanyID, event.MarketplaceID,
			ordersSource, time.Now()); err != nil {
			log.Error("ошибка записи отметки выгрузки", "error", err)
		}
	}

	log.Info("импорт заказов завершен",
		"count", len(rows),
		"errors", len(requester.Errors),
		"duration", time.Since(started),
	)
	return platform.NewResponse(event, rows, requester.Errors)
}

// fetchRelationProducts возвращает связи товаров из тела события или
// постранично с платформы
func fetchRelationProducts(ctx context.Context, deps *Deps, event *platform.StartEvent) ([]wb.RelationProduct, error) {
	if raw, ok := event.AddInfo["relation_products"]; ok {
		blob, err := json.Marshal(raw)
		if err == nil {
			var products []wb.RelationProduct
			if err := json.Unmarshal(blob, &products); err == nil && len(products) > 0 {
				return products, nil
			}
		}
	}
	return deps.Platform.FetchRelationProducts(ctx, "Bearer "+event.Token, event.MarketplaceID)
}

// clearDuplicateOrders оставляет первое вхождение каждого сквозного
// идентификатора
func clearDuplicateOrders(orders []wb.Order) []wb.Order {
	seen := make(map[string]struct{}, len(orders))
	result := make([]wb.Order, 0, len(orders))
	for _, o := range orders {
		if _, ok := seen[o.CrossRefID()]; ok {
			continue
		}
		seen[o.CrossRefID()] = struct{}{}
		result = append(result, o)
	}
	return result
}

// matchProducts сопоставляет заказы со связями товаров платформы.
// Несопоставленные артикулы не останавливают импорт, они попадают в
// журнал для разбора.
func matchProducts(orders []wb.Order, products []wb.RelationProduct, log interfaces.LoggerPort) {
	if len(orders) == 0 {
		return
	}
	matched := 0
	notFound := make([]int64, 0)
	for _, order := range orders {
		var found *wb.RelationProduct
		for i := range products {
			if products[i].MatchesNmID(order.ProductNmID()) {
				found = &products[i]
				break
			}
		}
		if found == nil {
			notFound = append(notFound, order.ProductNmID())
			continue
		}
		order.SetPlatformProduct(found)
		matched++
	}
	if matched != len(orders) {
		log.Error("не все товары сопоставлены с заказами",
			"matched", matched,
			"total", len(orders),
			"not_found", notFound,
		)
	}
}

// attachSales прикладывает к заказам продажи и строки отчета о
// реализации по сквозному идентификатору. Сбой выгрузки продаж не
// останавливает импорт.
func attachSales(ctx context.Context, deps *Deps, auth string, orders []wb.Order, log interfaces.LoggerPort) {
	requester := requesters.NewSalesRequester(deps.Fetcher, auth)

	sales, err := requester.FetchSales(ctx)
	if err != nil {
		log.Error("ошибка импорта продаж", "error", err)
	}
	if len(sales) > 0 {
		bySRID := make(map[string]*wb.Sale, len(sales))
		for _, s := range sales {
			bySRID[s.SRID] = s
		}
		for _, o := range orders {
			if s, ok := bySRID[o.CrossRefID()]; ok {
				o.SetSale(s)
			}
		}
	}

	report, err := requester.FetchReport(ctx)
	if err != nil {
		log.Error("ошибка импорта отчета о реализации", "error", err)
	}
	if len(report) > 0 {
		bySRID := make(map[string]map[string]interface{}, len(report))
		for _, row := range report {
			if srid, ok := row["srid"].(string); ok {
				bySRID[srid] = row
			}
		}
		for _, o := range orders {
			if row, ok := bySRID[o.CrossRefID()]; ok {
				o.SetReportRow(row)
			}
		}
	}
}
