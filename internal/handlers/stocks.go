package handlers

import (
	"context"

	"github.com/athebyme/wildberries-sync/internal/platform"
	"github.com/athebyme/wildberries-sync/internal/requesters"
)

// ImportWarehouses передает платформе список складов продавца
func ImportWarehouses(ctx context.Context, deps *Deps, event *platform.StartEvent) *platform.Response {
	log := deps.Logger.WithCompany(event.CompanyID, event.MarketplaceID)

	auth := event.AuthValue(deps.Cfg.Wildberries.AuthHeader)
	if auth == "" {
		return platform.NewResponse(event, []interface{}{}, []map[string]interface{}{
			{"error": true, "errorText": "в заголовках события нет ключа доступа к API"},
		})
	}

	warehouses, err := requesters.NewStocksRequester(deps.Fetcher, auth, log).FetchWarehouses(ctx)
	if err != nil {
		log.Error("ошибка выгрузки складов", "error", err)
		return platform.NewResponse(event, []interface{}{}, []map[string]interface{}{
			{"error": true, "errorText": "ошибка выгрузки складов: " + err.Error()},
		})
	}

	log.Info("выгрузка складов завершена", "count", len(warehouses))
	return platform.NewResponse(event, warehouses, nil)
}

// ImportStock собирает остатки схемы FBS по всем складам продавца.
// Баркоды берутся из карточек товаров, по ним же остатки связываются
// с номенклатурами.
func ImportStock(ctx context.Context, deps *Deps, event *platform.StartEvent) *platform.Response {
	log := deps.Logger.WithCompany(event.CompanyID, event.MarketplaceID)

	auth := event.AuthValue(deps.Cfg.Wildberries.AuthHeader)
	if auth == "" {
		return platform.NewResponse(event, []interface{}{}, []map[string]interface{}{
			{"error": true, "errorText": "в заголовках события нет ключа доступа к API"},
		})
	}

	stocksReq := requesters.NewStocksRequester(deps.Fetcher, auth, log)
	warehouses, err := stocksReq.FetchWarehouses(ctx)
	if err != nil {
		log.Error("ошибка выгрузки складов", "error", err)
		return platform.NewResponse(event, []interface{}{}, []map[string]interface{}{
			{"error": true, "errorText": "ошибка выгрузки складов: " + err.Error()},
		})
	}

	cards, err := requesters.NewGoodsRequester(deps.Fetcher, auth, deps.Cfg.Fetcher.PageCap, log).FetchNomenclature(ctx)
	if err != nil {
		log.Error("ошибка выгрузки карточек товаров", "error", err)
		return platform.NewResponse(event, []interface{}{}, []map[string]interface{}{
			{"error": true, "errorText": "ошибка выгрузки карточек товаров: " + err.Error()},
		})
	}

	barcodes := make(map[string]int64)
	skus := make([]string, 0)
	for _, card := range cards {
		for _, size := range card.Sizes {
			for _, sku := range size.Skus {
				if _, ok := barcodes[sku]; !ok {
					skus = append(skus, sku)
				}
				barcodes[sku] = card.NmID
			}
		}
	}

	stocks, err := stocksReq.FetchStocks(ctx, warehouses, skus)
	if err != nil {
		log.Error("ошибка выгрузки остатков", "error", err)
		return platform.NewResponse(event, []interface{}{}, []map[string]interface{}{
			{"error": true, "errorText": "ошибка выгрузки остатков: " + err.Error()},
		})
	}
	for i := range stocks {
		stocks[i].GoodIDMp = barcodes[stocks[i].Sku]
	}

	log.Info("выгрузка остатков завершена",
		"warehouses", len(warehouses),
		"count", len(stocks),
	)
	return platform.NewResponse(event, stocks, nil)
}
