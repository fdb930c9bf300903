package requesters

import (
	"context"

	"github.com/athebyme/wildberries-sync/internal/fetcher"
	"github.com/athebyme/wildberries-sync/internal/wb"
	"github.com/athebyme/wildberries-sync/internal/wb/endpoints"
	"github.com/athebyme/wildberries-sync/pkg/interfaces"
)

// размер страницы карточек товаров
const cardsPageLimit = 100

// GoodsRequester выгружает карточки товаров из раздела контента
type GoodsRequester struct {
	f       *fetcher.Fetcher
	auth    string
	pageCap int
	log     interfaces.LoggerPort
}

func NewGoodsRequester(f *fetcher.Fetcher, auth string, pageCap int, log interfaces.LoggerPort) *GoodsRequester {
	return &GoodsRequester{f: f, auth: auth, pageCap: pageCap, log: log}
}

// FetchNomenclature возвращает все карточки товаров, проходя по
// курсору до страницы с нулевым nmID
func (r *GoodsRequester) FetchNomenclature(ctx context.Context) ([]wb.Card, error) {
	result := make([]wb.Card, 0)
	cursor := wb.CardsCursor{Limit: cardsPageLimit}

	for page := 0; ; page++ {
		if page >= r.pageCap {
			r.log.Error("список карточек товаров не закончился, выгрузка остановлена",
				"pages", page)
			break
		}

		res, err := r.f.Do(ctx, &fetcher.Request{
			Endpoint: endpoints.Nomenclature,
			Body: wb.CardsRequest{Settings: wb.CardsSettings{
				Cursor: cursor,
				Filter: wb.CardsFilter{WithPhoto: -1},
			}},
			AuthValue: r.auth,
			NewTarget: func() interface{} { return &wb.CardsResponse{} },
		})
		if err != nil {
			return nil, err
		}
		if res.Payload == nil {
			break
		}

		p := res.Payload.(*wb.CardsResponse)
		result = append(result, p.Cards...)
		if p.Cursor.NmID == 0 {
			break
		}
		cursor = wb.CardsCursor{
			Limit:     cardsPageLimit,
			UpdatedAt: p.Cursor.UpdatedAt,
			NmID:      p.Cursor.NmID,
		}
	}
	return result, nil
}
