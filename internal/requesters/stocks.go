package requesters

import (
	"context"

	"github.com/athebyme/wildberries-sync/internal/fetcher"
	"github.com/athebyme/wildberries-sync/internal/wb"
	"github.com/athebyme/wildberries-sync/internal/wb/endpoints"
	"github.com/athebyme/wildberries-sync/pkg/interfaces"
)

// StocksRequester выгружает склады продавца и остатки схемы FBS
type StocksRequester struct {
	f    *fetcher.Fetcher
	auth string
	log  interfaces.LoggerPort
}

func NewStocksRequester(f *fetcher.Fetcher, auth string, log interfaces.LoggerPort) *StocksRequester {
	return &StocksRequester{f: f, auth: auth, log: log}
}

// FetchWarehouses возвращает список складов продавца
func (r *StocksRequester) FetchWarehouses(ctx context.Context) ([]wb.Warehouse, error) {
	res, err := r.f.Do(ctx, &fetcher.Request{
		Endpoint:  endpoints.Warehouses,
		AuthValue: r.auth,
		NewTarget: func() interface{} { return &[]wb.Warehouse{} },
	})
	if err != nil {
		return nil, err
	}
	if res.Payload == nil {
		return nil, nil
	}
	return *res.Payload.(*[]wb.Warehouse), nil
}

// FetchStocks возвращает остатки переданных баркодов по всем складам.
// Каждая строка помечается складом и схемой FBS.
func (r *StocksRequester) FetchStocks(ctx context.Context, warehouses []wb.Warehouse, skus []string) ([]wb.Stock, error) {
	result := make([]wb.Stock, 0)
	for _, wh := range warehouses {
		res, err := r.f.Do(ctx, &fetcher.Request{
			Endpoint:  endpoints.Stocks,
			PathArgs:  []interface{}{wh.ID},
			Body:      wb.StocksRequest{Skus: skus},
			AuthValue: r.auth,
			NewTarget: func() interface{} { return &wb.StocksResponse{} },
		})
		if err != nil {
			return nil, err
		}
		if res.Payload == nil {
			continue
		}
		for _, s := range res.Payload.(*wb.StocksResponse).Stocks {
			s.WarehouseID = wh.ID
			s.TraderSchema = "FBS"
			result = append(result, s)
		}
	}
	return result, nil
}
