package handlers

import (
	"context"
	"encoding/json"

	"github.com/athebyme/wildberries-sync/internal/platform"
	"github.com/athebyme/wildberries-sync/internal/requesters"
	"github.com/athebyme/wildberries-sync/internal/wb"
)

// ExportPrices ставит в API задачи загрузки цен и скидок по данным
// события. Ответом служит признак успеха: частично принятая загрузка
// считается неуспешной.
func ExportPrices(ctx context.Context, deps *Deps, event *platform.StartEvent) *platform.Response {
	log := deps.Logger.WithCompany(event.CompanyID, event.MarketplaceID)

	auth := event.AuthValue(deps.Cfg.Wildberries.AuthHeader)
	if auth == "" {
		return platform.NewResponse(event, false, []map[string]interface{}{
			{"error": true, "errorText": "в заголовках события нет ключа доступа к API"},
		})
	}

	var input wb.PricesRequest
	if len(event.Data) > 0 {
		if err := json.Unmarshal(event.Data, &input); err != nil {
			return platform.NewResponse(event, false, []map[string]interface{}{
				{"error": true, "errorText": "ошибка входных данных: " + err.Error()},
			})
		}
	}
	if len(input.Data) == 0 {
		return platform.NewResponse(event, false, []map[string]interface{}{
			{"error": true, "errorText": "не переданы данные для обработки"},
		})
	}

	errs := requesters.NewPricesRequester(deps.Fetcher, auth, log).Export(ctx, input.Data)
	rows := make([]map[string]interface{}, 0, len(errs))
	for _, err := range errs {
		log.Error("ошибка загрузки цен", "error", err)
		rows = append(rows, map[string]interface{}{
			"error":     true,
			"errorText": "загрузка цен: " + err.Error(),
		})
	}

	log.Info("загрузка цен завершена",
		"count", len(input.Data),
		"failed_chunks", len(errs),
	)
	return platform.NewResponse(event, len(errs) == 0, rows)
}
