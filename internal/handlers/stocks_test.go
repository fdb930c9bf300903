package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athebyme/wildberries-sync/config"
	"github.com/athebyme/wildberries-sync/internal/fetcher"
	"github.com/athebyme/wildberries-sync/internal/platform"
	"github.com/athebyme/wildberries-sync/internal/wb"
	"github.com/athebyme/wildberries-sync/internal/wb/endpoints"
)

func newTestDeps(t *testing.T, serverURL string) *Deps {
	t.Helper()

	cfg := &config.Config{}
	cfg.Wildberries.SandboxURL = serverURL
	cfg.Wildberries.UseSandbox = true
	cfg.Wildberries.AuthHeader = "Authorization"
	cfg.Fetcher.MaxAttempts = 3
	cfg.Fetcher.Concurrency = 10
	cfg.Fetcher.ClientTimeout = 5 * time.Second
	cfg.Fetcher.PageCap = 1000

	resolver := endpoints.NewResolver(cfg)
	denial := fetcher.NewDenialSet(nil, nopLog{})
	f := fetcher.New(cfg, resolver, denial, fetcher.NewLedger(), nopLog{})
	return &Deps{Cfg: cfg, Fetcher: f, Logger: nopLog{}}
}

func testEvent(name string) *platform.StartEvent {
	return &platform.StartEvent{
		Event:         name,
		EventID:       "ev-1",
		CompanyID:     3,
		MarketplaceID: 42,
		Headers:       map[string]string{"Authorization": "token-1"},
	}
}

func writeJSON(t *testing.T, w http.ResponseWriter, v interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestImportWarehouses(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/warehouses", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "token-1", r.Header.Get("Authorization"))
		writeJSON(t, w, []map[string]interface{}{
			{"id": 51, "name": "Основной"},
		})
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	deps := newTestDeps(t, ts.URL)
	resp := ImportWarehouses(context.Background(), deps, testEvent(EventImportWarehouses))

	require.Empty(t, resp.Errors)
	warehouses := resp.Data.([]wb.Warehouse)
	require.Len(t, warehouses, 1)
	assert.Equal(t, int64(51), warehouses[0].ID)
	assert.Equal(t, "Основной", warehouses[0].Name)
}

func TestImportWarehousesWithoutAuth(t *testing.T) {
	deps := newTestDeps(t, "http://127.0.0.1:0")
	event := testEvent(EventImportWarehouses)
	event.Headers = nil

	resp := ImportWarehouses(context.Background(), deps, event)

	require.Len(t, resp.Errors, 1)
	assert.Contains(t, resp.Errors[0]["errorText"], "нет ключа доступа")
}

func TestImportStockMatchesBarcodes(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/warehouses", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []map[string]interface{}{
			{"id": 51, "name": "Основной"},
		})
	})
	mux.HandleFunc("/content/v2/get/cards/list", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]interface{}{
			"cards": []map[string]interface{}{
				{
					"nmID": 900,
					"sizes": []map[string]interface{}{
						{"chrtID": 1, "skus": []string{"sku-1"}},
					},
				},
			},
			"cursor": map[string]interface{}{"nmID": 0},
		})
	})
	mux.HandleFunc("/api/v3/stocks/51", func(w http.ResponseWriter, r *http.Request) {
		var body wb.StocksRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"sku-1"}, body.Skus)

		writeJSON(t, w, map[string]interface{}{
			"stocks": []map[string]interface{}{
				{"sku": "sku-1", "amount": 4},
			},
		})
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	deps := newTestDeps(t, ts.URL)
	resp := ImportStock(context.Background(), deps, testEvent(EventImportStock))

	require.Empty(t, resp.Errors)
	stocks := resp.Data.([]wb.Stock)
	require.Len(t, stocks, 1)
	assert.Equal(t, "sku-1", stocks[0].Sku)
	assert.Equal(t, 4, stocks[0].Amount)
	assert.Equal(t, int64(51), stocks[0].WarehouseID)
	assert.Equal(t, int64(900), stocks[0].GoodIDMp)
	assert.Equal(t, "FBS", stocks[0].TraderSchema)
}

func TestImportStockFailureReturnsError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/warehouses", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []map[string]interface{}{
			{"id": 51, "name": "Основной"},
		})
	})
	mux.HandleFunc("/content/v2/get/cards/list", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]interface{}{
			"cards":  []map[string]interface{}{},
			"cursor": map[string]interface{}{"nmID": 0},
		})
	})
	mux.HandleFunc("/api/v3/stocks/51", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	deps := newTestDeps(t, ts.URL)
	resp := ImportStock(context.Background(), deps, testEvent(EventImportStock))

	require.Len(t, resp.Errors, 1)
	assert.Contains(t, resp.Errors[0]["errorText"], "ошибка выгрузки остатков")
}
