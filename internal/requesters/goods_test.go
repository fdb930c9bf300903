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

func TestGoodsRequesterFetchNomenclature(t *testing.T) {
	var requests []wb.CardsRequest

	mux := http.NewServeMux()
	mux.HandleFunc("/content/v2/get/cards/list", func(w http.ResponseWriter, r *http.Request) {
		var req wb.CardsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		requests = append(requests, req)

		if len(requests) == 1 {
			writeJSON(t, w, wb.CardsResponse{
				Cards: []wb.Card{
					{NmID: 100, VendorCode: "a-100"},
					{NmID: 200, VendorCode: "a-200"},
				},
				Cursor: wb.CardsCursor{NmID: 200, UpdatedAt: "2026-08-19T10:00:00Z"},
			})
			return
		}
		writeJSON(t, w, wb.CardsResponse{
			Cards:  []wb.Card{{NmID: 300, VendorCode: "a-300"}},
			Cursor: wb.CardsCursor{NmID: 0},
		})
	})

	ts := httptest.NewServer(mux)
	defer ts.Close()

	r := NewGoodsRequester(newTestFetcher(t, ts.URL), "token-1", 1000, nopLog{})
	cards, err := r.FetchNomenclature(context.Background())

	require.NoError(t, err)
	require.Len(t, cards, 3)
	assert.EqualValues(t, 300, cards[2].NmID)

	require.Len(t, requests, 2)
	assert.Equal(t, -1, requests[0].Settings.Filter.WithPhoto)
	assert.Equal(t, cardsPageLimit, requests[0].Settings.Cursor.Limit)
	// Курсор второй страницы продолжает первую
	assert.EqualValues(t, 200, requests[1].Settings.Cursor.NmID)
	assert.Equal(t, "2026-08-19T10:00:00Z", requests[1].Settings.Cursor.UpdatedAt)
}

func TestGoodsRequesterStopsAtPageCap(t *testing.T) {
	var calls int
	mux := http.NewServeMux()
	mux.HandleFunc("/content/v2/get/cards/list", func(w http.ResponseWriter, r *http.Request) {
		calls++
		writeJSON(t, w, wb.CardsResponse{
			Cards:  []wb.Card{{NmID: int64(calls)}},
			Cursor: wb.CardsCursor{NmID: int64(calls)},
		})
	})

	ts := httptest.NewServer(mux)
	defer ts.Close()

	r := NewGoodsRequester(newTestFetcher(t, ts.URL), "token-1", 2, nopLog{})
	cards, err := r.FetchNomenclature(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Len(t, cards, 2)
}
