package requesters

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/athebyme/wildberries-sync/internal/fetcher"
	"github.com/athebyme/wildberries-sync/internal/wb"
	"github.com/athebyme/wildberries-sync/internal/wb/endpoints"
	"github.com/athebyme/wildberries-sync/pkg/interfaces"
)

const (
	// окно выгрузки сборочных заданий
	fbsWindowDays = 5
	// окно выгрузки заказов статистики по умолчанию
	fboDefaultPeriodDays = 4
	// размер страницы и среза идентификаторов при запросе статусов
	fbsPageLimit    = 1000
	statusChunkSize = 1000

	fboDateLayout = "2006-01-02T15:04:05"
)

// fbsPage - страница сборочных заданий с указателем продолжения
type fbsPage struct {
	Next   int64          `json:"next"`
	Orders []*wb.FBSOrder `json:"orders"`
}

// statusPage - ответ метода статусов сборочных заданий
type statusPage struct {
	Orders []wb.OrderStatus `json:"orders"`
}

// OrdersRequester собирает заказы обеих схем в единый список.
// Заказ, видимый и как сборочное задание, и в статистике, остается
// в списке один раз: вариант FBS обогащается ценовыми полями FBO.
type OrdersRequester struct {
	f       *fetcher.Fetcher
	sales   *SalesRequester
	auth    string
	addInfo map[string]interface{}
	pageCap int
	log     interfaces.LoggerPort

	now func() time.Time
	// Errors накапливает классифицированные ошибки запросов, не
	// прервавшие сбор остальных данных
	Errors []map[string]interface{}
}

func NewOrdersRequester(f *fetcher.Fetcher, auth string, addInfo map[string]interface{}, pageCap int, log interfaces.LoggerPort) *OrdersRequester {
	return &OrdersRequester{
		f:       f,
		sales:   NewSalesRequester(f, auth),
		auth:    auth,
		addInfo: addInfo,
		pageCap: pageCap,
		log:     log,
		now:     time.Now,
	}
}

// Fetch возвращает заказы обеих схем. Сбой одной схемы не отменяет
// другую: ее ошибка попадает в Errors, а собранное возвращается.
func (r *OrdersRequester) Fetch(ctx context.Context) []wb.Order {
	fbs, err := r.fetchFBS(ctx)
	if err != nil {
		r.Errors = append(r.Errors, errRow("импорт сборочных заданий", err))
		r.log.Error("ошибка импорта сборочных заданий", "error", err)
	}

	fbo, err := r.fetchFBO(ctx)
	if err != nil {
		r.Errors = append(r.Errors, errRow("импорт заказов статистики", err))
		r.log.Error("ошибка импорта заказов статистики", "error", err)
	}

	substituteFromFBO(fbs, fbo)
	fbo = dropDuplicatesOfFBS(fbs, fbo)

	result := make([]wb.Order, 0, len(fbs)+len(fbo))
	for _, o := range fbs {
		result = append(result, o)
	}
	for _, o := range fbo {
		result = append(result, o)
	}
	return result
}

// fetchFBS выгружает сборочные задания за окно и новые задания,
// убирает дубликаты и обогащает статусами
func (r *OrdersRequester) fetchFBS(ctx context.Context) ([]*wb.FBSOrder, error) {
	orders, err := r.fetchFBSWindow(ctx)
	if err != nil {
		return nil, err
	}

	fresh, err := r.fetchFBSNew(ctx)
	if err != nil {
		return nil, err
	}
	orders = append(orders, fresh...)
	orders = dedupeByOrderID(orders)

	if err := r.mergeStatuses(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrdersRequester) fetchFBSWindow(ctx context.Context) ([]*wb.FBSOrder, error) {
	dateTo := r.now()
	dateFrom := dateTo.AddDate(0, 0, -fbsWindowDays)

	result := make([]*wb.FBSOrder, 0)
	var next int64
	for page := 0; ; page++ {
		if page >= r.pageCap {
			r.log.Error("список сборочных заданий не закончился, выгрузка остановлена",
				"pages", page)
			break
		}

		query := url.Values{}
		query.Set("limit", strconv.Itoa(fbsPageLimit))
		query.Set("next", strconv.FormatInt(next, 10))
		query.Set("dateFrom", strconv.FormatInt(dateFrom.Unix(), 10))
		query.Set("dateTo", strconv.FormatInt(dateTo.Unix(), 10))

		res, err := r.f.Do(ctx, &fetcher.Request{
			Endpoint:  endpoints.OrdersFBS,
			Query:     query,
			AuthValue: r.auth,
			NewTarget: func() interface{} { return &fbsPage{} },
		})
		if err != nil {
			return nil, err
		}
		if res.Payload == nil {
			break
		}

		p := res.Payload.(*fbsPage)
		result = append(result, p.Orders...)
		next = p.Next
		if next <= 0 {
			break
		}
	}
	return result, nil
}

func (r *OrdersRequester) fetchFBSNew(ctx context.Context) ([]*wb.FBSOrder, error) {
	res, err := r.f.Do(ctx, &fetcher.Request{
		Endpoint:  endpoints.OrdersNew,
		AuthValue: r.auth,
		NewTarget: func() interface{} { return &fbsPage{} },
	})
	if err != nil {
		return nil, err
	}
	if res.Payload == nil {
		return nil, nil
	}
	return res.Payload.(*fbsPage).Orders, nil
}

// mergeStatuses запрашивает статусы заданий срезами и переносит их в
// заказы. Задание, не попавшее в ответ, остается без изменений.
func (r *OrdersRequester) mergeStatuses(ctx context.Context, orders []*wb.FBSOrder) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		if o.OrderID != 0 {
			ids = append(ids, o.OrderID)
		}
	}

	results, errs := r.f.DoBulk(ctx, &fetcher.BulkRequest{
		Total:     len(ids),
		ChunkSize: statusChunkSize,
		Build: func(start, stop int) (*fetcher.Request, error) {
			chunk := ids[start:stop]
			if len(chunk) == 0 {
				return nil, nil
			}
			return &fetcher.Request{
				Endpoint:  endpoints.OrdersStatus,
				Body:      map[string]interface{}{"orders": chunk},
				AuthValue: r.auth,
				NewTarget: func() interface{} { return &statusPage{} },
			}, nil
		},
	})
	for _, err := range errs {
		r.Errors = append(r.Errors, errRow("статусы сборочных заданий", err))
		r.log.Error("ошибка запроса статусов сборочных заданий", "error", err)
	}

	statuses := make(map[int64]wb.OrderStatus)
	for _, res := range results {
		if res.Payload == nil {
			continue
		}
		for _, st := range res.Payload.(*statusPage).Orders {
			statuses[st.ID] = st
		}
	}
	for _, o := range orders {
		if st, ok := statuses[o.OrderID]; ok {
			o.MergeStatus(st)
		}
	}
	return nil
}

// fetchFBO выгружает заказы из раздела статистики и выводит их статусы
// из продаж
func (r *OrdersRequester) fetchFBO(ctx context.Context) ([]*wb.FBOOrder, error) {
	period := fboDefaultPeriodDays
	if v, ok := r.addInfo["period"]; ok {
		if days, ok := v.(float64); ok && days > 0 {
			period = int(days)
		}
	}

	dateFrom := r.now().AddDate(0, 0, -period)
	query := url.Values{}
	query.Set("dateFrom", dateFrom.Format(fboDateLayout))
	query.Set("flag", "0")

	res, err := r.f.Do(ctx, &fetcher.Request{
		Endpoint:  endpoints.OrdersFBO,
		Query:     query,
		AuthValue: r.auth,
		NewTarget: func() interface{} { return &[]*wb.FBOOrder{} },
	})
	if err != nil {
		return nil, err
	}
	if res.Payload == nil {
		return nil, nil
	}

	orders := *res.Payload.(*[]*wb.FBOOrder)
	for _, o := range orders {
		o.Normalize()
	}
	return r.mergeSaleStatuses(ctx, orders)
}

// mergeSaleStatuses сверяет заказы статистики с продажами. Без данных
// о продажах заказы не передаются: их статусы подтвердить нечем.
func (r *OrdersRequester) mergeSaleStatuses(ctx context.Context, orders []*wb.FBOOrder) ([]*wb.FBOOrder, error) {
	sales, err := r.sales.FetchSales(ctx)
	if err != nil {
		return nil, err
	}
	if len(sales) == 0 {
		return nil, nil
	}

	bySRID := make(map[string]*wb.Sale, len(sales))
	for _, s := range sales {
		bySRID[s.SRID] = s
	}
	for _, o := range orders {
		if o.IsCancel {
			o.MergeSaleStatus(nil)
			continue
		}
		if s, ok := bySRID[o.SRID]; ok {
			o.MergeSaleStatus(s)
		}
	}
	return orders, nil
}

// substituteFromFBO переносит ценовые поля из заказов статистики в
// сборочные задания с тем же сквозным идентификатором. Набор rid
// снимается до изменений.
func substituteFromFBO(fbs []*wb.FBSOrder, fbo []*wb.FBOOrder) {
	byRID := make(map[string]*wb.FBSOrder, len(fbs))
	for _, o := range fbs {
		if _, ok := byRID[o.RID]; !ok {
			byRID[o.RID] = o
		}
	}
	for _, src := range fbo {
		if dst, ok := byRID[src.SRID]; ok {
			dst.Substitute(src)
		}
	}
}

// dropDuplicatesOfFBS убирает из статистики заказы, уже видимые как
// сборочные задания
func dropDuplicatesOfFBS(fbs []*wb.FBSOrder, fbo []*wb.FBOOrder) []*wb.FBOOrder {
	rids := make(map[string]struct{}, len(fbs))
	for _, o := range fbs {
		rids[o.RID] = struct{}{}
	}
	result := make([]*wb.FBOOrder, 0, len(fbo))
	for _, o := range fbo {
		if _, ok := rids[o.SRID]; ok {
			continue
		}
		result = append(result, o)
	}
	return result
}

// dedupeByOrderID оставляет первое вхождение каждого задания
func dedupeByOrderID(orders []*wb.FBSOrder) []*wb.FBSOrder {
	seen := make(map[int64]struct{}, len(orders))
	result := make([]*wb.FBSOrder, 0, len(orders))
	for _, o := range orders {
		if _, ok := seen[o.OrderID]; ok {
			continue
		}
		seen[o.OrderID] = struct{}{}
		result = append(result, o)
	}
	return result
}
