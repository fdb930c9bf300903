package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athebyme/wildberries-sync/internal/platform"
	"github.com/athebyme/wildberries-sync/pkg/interfaces"
)

type nopLog struct{}

func (nopLog) Debug(msg string, args ...interface{}) {}
func (nopLog) Info(msg string, args ...interface{})  {}
func (nopLog) Warn(msg string, args ...interface{})  {}
func (nopLog) Error(msg string, args ...interface{}) {}
func (nopLog) Fatal(msg string, args ...interface{}) {}
func (l nopLog) WithField(key string, value interface{}) interfaces.LoggerPort {
	return l
}
func (l nopLog) WithFields(fields ...interfaces.LogField) interfaces.LoggerPort {
	return l
}
func (l nopLog) WithCompany(companyID, marketplaceID int64) interfaces.LoggerPort {
	return l
}
func (nopLog) Sync() error { return nil }

func TestDispatchRejectsUnknownEvent(t *testing.T) {
	deps := &Deps{Logger: nopLog{}}
	event := &platform.StartEvent{
		Event:         "drop_tables",
		EventID:       "ev-1",
		CompanyID:     3,
		MarketplaceID: 42,
	}

	resp := Dispatch(context.Background(), deps, event)

	require.NotNil(t, resp)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, true, resp.Errors[0]["error"])
	assert.Contains(t, resp.Errors[0]["errorText"], "drop_tables")
	assert.Equal(t, "ev-1", resp.EventID)
	assert.Equal(t, "wb", resp.Sender)
}

func TestDispatchRejectsEnumeratedEventWithoutHandler(t *testing.T) {
	deps := &Deps{Logger: nopLog{}}
	event := &platform.StartEvent{Event: EventGenerateBarcodes, EventID: "ev-2"}

	resp := Dispatch(context.Background(), deps, event)

	require.Len(t, resp.Errors, 1)
	assert.Contains(t, resp.Errors[0]["errorText"], EventGenerateBarcodes)
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported(EventImportOrders))
	assert.True(t, Supported(EventCheckingOrderStatuses))
	assert.True(t, Supported(EventExportProducts))
	assert.True(t, Supported(EventImportWarehouses))
	assert.True(t, Supported(EventImportStock))
	assert.True(t, Supported(EventExportPrices))

	assert.False(t, Supported(EventExportStock))
	assert.False(t, Supported("unknown"))
}
