package handlers

import (
	"context"

	"github.com/athebyme/wildberries-sync/internal/platform"
	"github.com/athebyme/wildberries-sync/internal/requesters"
)

// ExportProducts выгружает карточки товаров из раздела контента и
// передает их платформе
func ExportProducts(ctx context.Context, deps *Deps, event *platform.StartEvent) *platform.Response {
	log := deps.Logger.WithCompany(event.CompanyID, event.MarketplaceID)

	auth := event.AuthValue(deps.Cfg.Wildberries.AuthHeader)
	if auth == "" {
		return platform.NewResponse(event, []interface{}{}, []map[string]interface{}{
			{"error": true, "errorText": "в заголовках события нет ключа доступа к API"},
		})
	}

	requester := requesters.NewGoodsRequester(deps.Fetcher, auth, deps.Cfg.Fetcher.PageCap, log)
	cards, err := requester.FetchNomenclature(ctx)
	if err != nil {
		log.Error("ошибка выгрузки карточек товаров", "error", err)
		return platform.NewResponse(event, []interface{}{}, []map[string]interface{}{
			{"error": true, "errorText": "ошибка выгрузки карточек товаров: " + err.Error()},
		})
	}

	log.Info("выгрузка карточек товаров завершена", "count", len(cards))
	return platform.NewResponse(event, cards, nil)
}
