package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athebyme/wildberries-sync/config"
	"github.com/athebyme/wildberries-sync/internal/wb/endpoints"
	"github.com/athebyme/wildberries-sync/pkg/interfaces"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{})                          {}
func (nopLogger) Info(string, ...interface{})                           {}
func (nopLogger) Warn(string, ...interface{})                           {}
func (nopLogger) Error(string, ...interface{})                          {}
func (nopLogger) Fatal(string, ...interface{})                          {}
func (l nopLogger) WithField(string, interface{}) interfaces.LoggerPort { return l }
func (l nopLogger) WithFields(...interfaces.LogField) interfaces.LoggerPort {
	return l
}
func (l nopLogger) WithCompany(int64, int64) interfaces.LoggerPort { return l }
func (nopLogger) Sync() error                                      { return nil }

func testEndpoint() endpoints.Endpoint {
	return endpoints.Endpoint{
		Name:           "test",
		Method:         http.MethodGet,
		Host:           endpoints.HostMarketplace,
		Path:           "/test",
		PositiveStatus: http.StatusOK,
	}
}

func newTestFetcher(t *testing.T, serverURL string) *Fetcher {
	t.Helper()

	cfg := &config.Config{}
	cfg.Wildberries.UseSandbox = true
	cfg.Wildberries.SandboxURL = serverURL
	cfg.Wildberries.AuthHeader = "Authorization"
	cfg.Fetcher.MaxAttempts = 3
	cfg.Fetcher.Concurrency = 4
	cfg.Fetcher.ClientTimeout = 5 * time.Second
	cfg.Fetcher.PageCap = 1000

	return New(cfg, endpoints.NewResolver(cfg), NewDenialSet(nil, nopLogger{}), NewLedger(), nopLogger{})
}

type testPayload struct {
	Next   int      `json:"next"`
	Values []string `json:"values"`
}

func TestDoDecodesPositiveResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key-1", r.Header.Get("Authorization"))
		w.Write([]byte(`{"next": 42, "values": ["a", "b"]}`))
	}))
	defer server.Close()

	f := newTestFetcher(t, server.URL)
	res, err := f.Do(context.Background(), &Request{
		Endpoint:  testEndpoint(),
		AuthValue: "key-1",
		NewTarget: func() interface{} { return &testPayload{} },
	})
	require.NoError(t, err)

	payload := res.Payload.(*testPayload)
	assert.Equal(t, 42, payload.Next)
	assert.Equal(t, []string{"a", "b"}, payload.Values)
}

func TestDoEmptyBodyWithoutError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	f := newTestFetcher(t, server.URL)
	res, err := f.Do(context.Background(), &Request{
		Endpoint:  testEndpoint(),
		AuthValue: "key-1",
		NewTarget: func() interface{} { return &testPayload{} },
	})
	require.NoError(t, err)
	assert.Nil(t, res.Payload)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestDoRetriesUntilAttemptsExceeded(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	f := newTestFetcher(t, server.URL)
	_, err := f.Do(context.Background(), &Request{
		Endpoint:  testEndpoint(),
		AuthValue: "key-1",
	})

	require.Error(t, err)
	fe := err.(*Error)
	assert.Equal(t, KindAttemptsExceeded, fe.Kind)
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestDoStopsOnClientError(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	f := newTestFetcher(t, server.URL)
	_, err := f.Do(context.Background(), &Request{
		Endpoint:  testEndpoint(),
		AuthValue: "key-1",
	})

	require.Error(t, err)
	fe := err.(*Error)
	assert.Equal(t, KindClient, fe.Kind)
	assert.Equal(t, http.StatusBadRequest, fe.StatusCode)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestDoUnexpectedStatusIsNotRetried(t *testing.T) {
	for _, status := range []int{http.StatusConflict, http.StatusBadGateway} {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(status)
		}))

		f := newTestFetcher(t, server.URL)
		_, err := f.Do(context.Background(), &Request{
			Endpoint:  testEndpoint(),
			AuthValue: "key-1",
		})
		server.Close()

		require.Error(t, err)
		fe := err.(*Error)
		assert.Equal(t, KindClient, fe.Kind)
		assert.Equal(t, status, fe.StatusCode)
		assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
	}
}

func TestDoSpacesEachAttempt(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	f := newTestFetcher(t, server.URL)
	var waits []time.Duration
	f.ledger.sleep = func(_ context.Context, d time.Duration) error {
		waits = append(waits, d)
		return nil
	}

	ep := testEndpoint()
	ep.Spacing = time.Second
	_, err := f.Do(context.Background(), &Request{Endpoint: ep, AuthValue: "key-1"})

	require.Error(t, err)
	assert.Equal(t, KindAttemptsExceeded, err.(*Error).Kind)

	// Первая попытка проходит без паузы, каждая следующая выдерживает
	// интервал от предыдущей
	require.Len(t, waits, 2)
	for _, d := range waits {
		assert.Greater(t, d, time.Duration(0))
	}
}

func TestDoAccessDeniedRemembersKey(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	f := newTestFetcher(t, server.URL)
	req := &Request{Endpoint: testEndpoint(), AuthValue: "revoked-key"}

	_, err := f.Do(context.Background(), req)
	require.Error(t, err)
	assert.True(t, IsAccessDenied(err))
	assert.True(t, f.denial.Contains(Fingerprint("revoked-key")))

	// Повторный запрос тем же ключом отклоняется без обращения к API
	_, err = f.Do(context.Background(), req)
	require.Error(t, err)
	assert.True(t, IsAccessDenied(err))
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestDoOtherKeyUnaffectedByDenial(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "revoked-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"next": 1}`))
	}))
	defer server.Close()

	f := newTestFetcher(t, server.URL)
	_, err := f.Do(context.Background(), &Request{Endpoint: testEndpoint(), AuthValue: "revoked-key"})
	require.Error(t, err)

	res, err := f.Do(context.Background(), &Request{
		Endpoint:  testEndpoint(),
		AuthValue: "valid-key",
		NewTarget: func() interface{} { return &testPayload{} },
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Payload.(*testPayload).Next)
}

func TestDoSchemaMismatchIsNotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`{"next": "not-a-number"}`))
	}))
	defer server.Close()

	f := newTestFetcher(t, server.URL)
	_, err := f.Do(context.Background(), &Request{
		Endpoint:  testEndpoint(),
		AuthValue: "key-1",
		NewTarget: func() interface{} { return &testPayload{} },
	})

	require.Error(t, err)
	assert.Equal(t, KindSchema, err.(*Error).Kind)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestDoBodyWithoutTarget(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"unexpected": true}`))
	}))
	defer server.Close()

	f := newTestFetcher(t, server.URL)
	_, err := f.Do(context.Background(), &Request{Endpoint: testEndpoint(), AuthValue: "key-1"})

	require.Error(t, err)
	assert.Equal(t, KindSchema, err.(*Error).Kind)
}

func TestDoRecoversAfterTransientErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"next": 7}`))
	}))
	defer server.Close()

	f := newTestFetcher(t, server.URL)
	res, err := f.Do(context.Background(), &Request{
		Endpoint:  testEndpoint(),
		AuthValue: "key-1",
		NewTarget: func() interface{} { return &testPayload{} },
	})
	require.NoError(t, err)
	assert.Equal(t, 7, res.Payload.(*testPayload).Next)
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestFingerprintHidesKey(t *testing.T) {
	fp := Fingerprint("secret-token")
	assert.Len(t, fp, 64)
	assert.NotContains(t, fp, "secret")
	assert.Equal(t, fp, Fingerprint("secret-token"))
	assert.NotEqual(t, fp, Fingerprint("other-token"))
}
