package requesters

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athebyme/wildberries-sync/internal/wb"
)

func TestStocksRequesterFetchWarehouses(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/warehouses", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "token-1", r.Header.Get("Authorization"))
		writeJSON(t, w, []map[string]interface{}{
			{"id": 715123, "name": "Коледино"},
			{"id": 715124, "name": "Электросталь"},
		})
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	r := NewStocksRequester(newTestFetcher(t, ts.URL), "token-1", nopLog{})
	warehouses, err := r.FetchWarehouses(context.Background())
	require.NoError(t, err)

	require.Len(t, warehouses, 2)
	assert.Equal(t, int64(715123), warehouses[0].ID)
	assert.Equal(t, "Коледино", warehouses[0].Name)
}

func TestStocksRequesterFetchStocks(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/stocks/715123", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var body wb.StocksRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"sku-1", "sku-2"}, body.Skus)

		writeJSON(t, w, map[string]interface{}{
			"stocks": []map[string]interface{}{
				{"sku": "sku-1", "amount": 3},
				{"sku": "sku-2", "amount": 0},
			},
		})
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	r := NewStocksRequester(newTestFetcher(t, ts.URL), "token-1", nopLog{})
	warehouses := []wb.Warehouse{{ID: 715123, Name: "Коледино"}}
	stocks, err := r.FetchStocks(context.Background(), warehouses, []string{"sku-1", "sku-2"})
	require.NoError(t, err)

	require.Len(t, stocks, 2)
	assert.Equal(t, "sku-1", stocks[0].Sku)
	assert.Equal(t, 3, stocks[0].Amount)
	assert.Equal(t, int64(715123), stocks[0].WarehouseID)
	assert.Equal(t, "FBS", stocks[0].TraderSchema)
}
