package requesters

import (
	"context"
	"net/url"
	"time"

	"github.com/athebyme/wildberries-sync/internal/fetcher"
	"github.com/athebyme/wildberries-sync/internal/wb"
	"github.com/athebyme/wildberries-sync/internal/wb/endpoints"
)

// окно выгрузки продаж и отчета реализации
const salesWindowDays = 30

// SalesRequester выгружает продажи и отчет о реализации из раздела
// статистики
type SalesRequester struct {
	f    *fetcher.Fetcher
	auth string

	now func() time.Time
}

func NewSalesRequester(f *fetcher.Fetcher, auth string) *SalesRequester {
	return &SalesRequester{f: f, auth: auth, now: time.Now}
}

// FetchSales возвращает продажи и возвраты за последние 30 дней
func (r *SalesRequester) FetchSales(ctx context.Context) ([]*wb.Sale, error) {
	dateFrom := r.now().AddDate(0, 0, -salesWindowDays)
	query := url.Values{}
	query.Set("dateFrom", dateFrom.Format("2006-01-02"))
	query.Set("flag", "0")

	res, err := r.f.Do(ctx, &fetcher.Request{
		Endpoint:  endpoints.Sales,
		Query:     query,
		AuthValue: r.auth,
		NewTarget: func() interface{} { return &[]*wb.Sale{} },
	})
	if err != nil {
		return nil, err
	}
	if res.Payload == nil {
		return nil, nil
	}
	return *res.Payload.(*[]*wb.Sale), nil
}

// FetchReport возвращает строки отчета о реализации за последние 30
// дней. Структура строк в отчете меняется чаще остальных методов,
// поэтому они передаются платформе как есть.
func (r *SalesRequester) FetchReport(ctx context.Context) ([]map[string]interface{}, error) {
	now := r.now()
	dateFrom := now.AddDate(0, 0, -salesWindowDays)
	query := url.Values{}
	query.Set("dateFrom", dateFrom.Format("2006-01-02"))
	query.Set("dateTo", now.Format("2006-01-02"))

	res, err := r.f.Do(ctx, &fetcher.Request{
		Endpoint:  endpoints.SalesReport,
		Query:     query,
		AuthValue: r.auth,
		NewTarget: func() interface{} { return &[]map[string]interface{}{} },
	})
	if err != nil {
		return nil, err
	}
	if res.Payload == nil {
		return nil, nil
	}
	return *res.Payload.(*[]map[string]interface{}), nil
}
