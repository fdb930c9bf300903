package requesters

import (
	"context"

	"github.com/athebyme/wildberries-sync/internal/fetcher"
	"github.com/athebyme/wildberries-sync/internal/wb"
	"github.com/athebyme/wildberries-sync/internal/wb/endpoints"
	"github.com/athebyme/wildberries-sync/pkg/interfaces"
)

// размер среза номенклатур в одной задаче загрузки цен
const pricesChunkSize = 1000

// PricesRequester ставит задачи загрузки цен и скидок срезами
type PricesRequester struct {
	f    *fetcher.Fetcher
	auth string
	log  interfaces.LoggerPort
}

func NewPricesRequester(f *fetcher.Fetcher, auth string, log interfaces.LoggerPort) *PricesRequester {
	return &PricesRequester{f: f, auth: auth, log: log}
}

// Export передает цены в API. Сбой одного среза не отменяет
// остальные, ошибки по неудачным срезам возвращаются списком.
func (r *PricesRequester) Export(ctx context.Context, updates []wb.PriceUpdate) []error {
	_, errs := r.f.DoBulk(ctx, &fetcher.BulkRequest{
		Total:     len(updates),
		ChunkSize: pricesChunkSize,
		Build: func(start, stop int) (*fetcher.Request, error) {
			return &fetcher.Request{
				Endpoint:  endpoints.Prices,
				Body:      wb.PricesRequest{Data: updates[start:stop]},
				AuthValue: r.auth,
				NewTarget: func() interface{} { return &wb.PricesUploadResponse{} },
			}, nil
		},
	})
	return errs
}
