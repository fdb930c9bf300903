package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/athebyme/wildberries-sync/config"
	"github.com/athebyme/wildberries-sync/internal/wb/endpoints"
	"github.com/athebyme/wildberries-sync/pkg/interfaces"
)

// Request описывает один запрос к API Wildberries
type Request struct {
	Endpoint endpoints.Endpoint
	// PathArgs подставляются в шаблон пути эндпоинта
	PathArgs []interface{}
	Query    url.Values
	Body     interface{}
	// AuthValue - значение заголовка с ключом доступа
	AuthValue string
	// NewTarget создает структуру для разбора тела ответа.
	// Без нее непустой ответ считается нарушением контракта.
	NewTarget func() interface{}
}

// Result - исход успешного запроса. Payload равен nil, если API
// вернул положительный код с пустым телом.
type Result struct {
	StatusCode int
	Payload    interface{}
}

// Fetcher выполняет запросы к API с повторами, троттлингом и учетом
// отвергнутых ключей доступа
type Fetcher struct {
	client      *http.Client
	resolver    *endpoints.Resolver
	denial      *DenialSet
	ledger      *Ledger
	permits     chan struct{}
	maxAttempts int
	authHeader  string
	log         interfaces.LoggerPort
}

func New(cfg *config.Config, resolver *endpoints.Resolver, denial *DenialSet, ledger *Ledger, log interfaces.LoggerPort) *Fetcher {
	return &Fetcher{
		client:      &http.Client{Timeout: cfg.Fetcher.ClientTimeout},
		resolver:    resolver,
		denial:      denial,
		ledger:      ledger,
		permits:     make(chan struct{}, cfg.Fetcher.Concurrency),
		maxAttempts: cfg.Fetcher.MaxAttempts,
		authHeader:  cfg.Wildberries.AuthHeader,
		log:         log,
	}
}

// Do выполняет запрос и возвращает разобранный результат либо
// классифицированную ошибку *Error
func (f *Fetcher) Do(ctx context.Context, req *Request) (*Result, error) {
	select {
	case f.permits <- struct{}{}:
	case <-ctx.Done():
		return nil, &Error{Kind: KindOrchestration, URL: req.Endpoint.Name, Err: ctx.Err()}
	}
	defer func() { <-f.permits }()

	fullURL := f.resolver.URL(req.Endpoint)
	if len(req.PathArgs) > 0 {
		fullURL = f.resolver.URLf(req.Endpoint, req.PathArgs...)
	}
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	fp := Fingerprint(req.AuthValue)
	if f.denial.Contains(fp) {
		return nil, &Error{Kind: KindAccessDenied, URL: fullURL}
	}

	var body []byte
	if req.Body != nil {
		raw, err := json.Marshal(req.Body)
		if err != nil {
			return nil, &Error{Kind: KindClient, URL: fullURL, Err: err}
		}
		body = raw
	}

	// Каждая попытка отмечается в реестре интервалов, поэтому и повторы,
	// и последующие запросы отсчитывают паузу от последнего обращения
	ledgerKey := fp + ":" + req.Endpoint.Name

	var lastErr error
	for attempt := 1; attempt <= f.maxAttempts; attempt++ {
		if err := f.ledger.Wait(ctx, ledgerKey, req.Endpoint.Spacing); err != nil {
			return nil, &Error{Kind: KindOrchestration, URL: fullURL, Err: err}
		}

		res, err := f.attempt(ctx, req, fullURL, body, fp)
		if err == nil {
			return res, nil
		}

		fe, ok := err.(*Error)
		if ok && fe.Kind != KindAttemptsExceeded {
			// Отказ в доступе, ошибка запроса и нарушение контракта
			// повтором не лечатся
			return nil, err
		}
		lastErr = err

		f.log.Warn("повтор запроса к API",
			"endpoint", req.Endpoint.Name,
			"attempt", attempt,
			"error", err,
		)
	}

	return nil, &Error{Kind: KindAttemptsExceeded, URL: fullURL, Err: lastErr}
}

// attempt выполняет одну попытку запроса. Ошибка с типом
// KindAttemptsExceeded означает временный сбой, допускающий повтор.
func (f *Fetcher) attempt(ctx context.Context, req *Request, fullURL string, body []byte, fp string) (*Result, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Endpoint.Method, fullURL, reader)
	if err != nil {
		return nil, &Error{Kind: KindClient, URL: fullURL, Err: err}
	}
	httpReq.Header.Set(f.authHeader, req.AuthValue)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := f.client.Do(httpReq)
	if err != nil {
		return nil, &Error{Kind: KindAttemptsExceeded, URL: fullURL, Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		f.denial.Add(ctx, fp)
		f.log.Warn("доступ к API отвергнут, ключ добавлен в список отказов",
			"endpoint", req.Endpoint.Name,
			"status", resp.StatusCode,
			"fingerprint", fp,
		)
		return nil, &Error{Kind: KindAccessDenied, StatusCode: resp.StatusCode, URL: fullURL}
	case http.StatusTooManyRequests, http.StatusInternalServerError:
		// повтор допускают только эти коды и сетевые сбои
		return nil, &Error{Kind: KindAttemptsExceeded, StatusCode: resp.StatusCode, URL: fullURL}
	}

	if resp.StatusCode != req.Endpoint.PositiveStatus {
		return nil, &Error{Kind: KindClient, StatusCode: resp.StatusCode, URL: fullURL}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindAttemptsExceeded, StatusCode: resp.StatusCode, URL: fullURL, Err: err}
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return &Result{StatusCode: resp.StatusCode}, nil
	}

	if req.NewTarget == nil {
		return nil, &Error{Kind: KindSchema, StatusCode: resp.StatusCode, URL: fullURL,
			Err: errUnexpectedBody}
	}
	target := req.NewTarget()
	if err := json.Unmarshal(raw, target); err != nil {
		return nil, &Error{Kind: KindSchema, StatusCode: resp.StatusCode, URL: fullURL, Err: err}
	}
	return &Result{StatusCode: resp.StatusCode, Payload: target}, nil
}
