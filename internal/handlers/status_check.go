package handlers

import (
	"context"
	"encoding/json"

	"github.com/athebyme/wildberries-sync/internal/platform"
	"github.com/athebyme/wildberries-sync/internal/requesters"
	"github.com/athebyme/wildberries-sync/internal/wb"
)

// statusCheckInput - тело события сверки статусов
type statusCheckInput struct {
	Orders []*wb.StatusChange `json:"orders"`
}

// CheckOrderStatuses сверяет статусы переданных заказов с продажами
// Wildberries. При любой ошибке платформа получает пустые данные:
// частично сверенный список хуже отсутствия ответа.
func CheckOrderStatuses(ctx context.Context, deps *Deps, event *platform.StartEvent) *platform.Response {
	log := deps.Logger.WithCompany(event.CompanyID, event.MarketplaceID)

	var input statusCheckInput
	if len(event.Data) > 0 {
		if err := json.Unmarshal(event.Data, &input); err != nil {
			return platform.NewResponse(event, []interface{}{}, []map[string]interface{}{
				{"error": true, "errorText": "ошибка входных данных: " + err.Error()},
			})
		}
	}
	if len(input.Orders) == 0 {
		return platform.NewResponse(event, []interface{}{}, []map[string]interface{}{
			{"error": true, "errorText": "не переданы данные для обработки"},
		})
	}

	auth := event.AuthValue(deps.Cfg.Wildberries.AuthHeader)
	sales, err := requesters.NewSalesRequester(deps.Fetcher, auth).FetchSales(ctx)
	if err != nil {
		log.Error("ошибка импорта продаж при сверке статусов", "error", err)
		return platform.NewResponse(event, []interface{}{}, []map[string]interface{}{
			{"error": true, "errorText": "ошибка импорта продаж: " + err.Error()},
		})
	}

	mergeSalesIntoChanges(input.Orders, sales)
	return platform.NewResponse(event, input.Orders, nil)
}

// mergeSalesIntoChanges переносит статусы из продаж в строки сверки.
// Заказ без продажи остается без изменений.
func mergeSalesIntoChanges(changes []*wb.StatusChange, sales []*wb.Sale) {
	bySRID := make(map[string]*wb.Sale, len(sales))
	for _, s := range sales {
		bySRID[s.SRID] = s
	}

	for _, change := range changes {
		s, ok := bySRID[change.OrderID]
		if !ok {
			continue
		}
		status := wb.StatusBySale(s)
		if status != wb.StatusReadyForPickup {
			change.NewStatusFromMarketplace = status
		}
		change.NewStatusPlatform = wb.OrderModelStatusByMarketplace[status]
	}
}
