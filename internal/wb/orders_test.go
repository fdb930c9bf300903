package wb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFBSOrderStatus(t *testing.T) {
	cases := []struct {
		name     string
		wb       string
		supplier string
		want     string
	}{
		{"выкуп важнее статуса продавца", StatusSold, StatusConfirm, StatusSold},
		{"отказ покупателя закрывает заказ", StatusDeclinedByClient, StatusConfirm, StatusCancel},
		{"отмена покупателем закрывает заказ", StatusCanceledByClient, StatusNew, StatusCancel},
		{"отмена закрывает заказ", StatusCanceled, StatusComplete, StatusCancel},
		{"статус продавца new", "", StatusNew, StatusNew},
		{"статус продавца confirm", "", StatusConfirm, StatusConfirm},
		{"статус продавца complete", "waiting", StatusComplete, StatusComplete},
		{"статус продавца cancel", "", StatusCancel, StatusCancel},
		{"нераспознанный статус", "waiting", "packed", StatusError},
		{"нет данных", "", "", StatusError},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			o := &FBSOrder{WBStatus: c.wb, SupplierStatus: c.supplier}
			assert.Equal(t, c.want, o.Status())
		})
	}
}

func TestFBOOrderStatus(t *testing.T) {
	t.Run("отмененный заказ", func(t *testing.T) {
		o := &FBOOrder{IsCancel: true, WBStatus: StatusReadyForPickup}
		assert.Equal(t, StatusCancel, o.Status())
	})

	t.Run("без статуса после Normalize", func(t *testing.T) {
		o := &FBOOrder{}
		o.Normalize()
		assert.Equal(t, StatusReadyForPickup, o.Status())
	})

	t.Run("статус из продажи", func(t *testing.T) {
		o := &FBOOrder{WBStatus: StatusReadyForPickup}
		o.MergeSaleStatus(&Sale{SaleID: "S12345"})
		assert.Equal(t, StatusSold, o.Status())
	})

	t.Run("возврат из продажи", func(t *testing.T) {
		o := &FBOOrder{WBStatus: StatusReadyForPickup}
		o.MergeSaleStatus(&Sale{SaleID: "R12345"})
		assert.Equal(t, StatusDeclinedByClient, o.Status())
	})

	t.Run("отмена важнее продажи", func(t *testing.T) {
		o := &FBOOrder{IsCancel: true}
		o.MergeSaleStatus(&Sale{SaleID: "S12345"})
		assert.Equal(t, StatusCancel, o.Status())
	})
}

func TestStatusBySale(t *testing.T) {
	assert.Equal(t, StatusSold, StatusBySale(&Sale{SaleID: "S0001"}))
	assert.Equal(t, StatusDeclinedByClient, StatusBySale(&Sale{SaleID: "R0001"}))
	assert.Equal(t, StatusDeclinedByClient, StatusBySale(&Sale{SaleID: ""}))
}

func TestFBSOrderSubstitute(t *testing.T) {
	fbs := &FBSOrder{OrderID: 10, RID: "rid-1"}
	fbo := &FBOOrder{
		SRID:            "rid-1",
		DiscountPercent: 25,
		SPP:             5.5,
		FinishedPrice:   740.0,
		PriceWithDisc:   760.0,
	}

	fbs.Substitute(fbo)

	assert.Equal(t, 25, fbs.DiscountPercent)
	assert.Equal(t, 5.5, fbs.SPP)
	assert.Equal(t, 740.0, fbs.FinishedPrice)
	assert.Equal(t, 760.0, fbs.PriceWithDisc)
	require.NotNil(t, fbs.Statistics)
	assert.Equal(t, "rid-1", fbs.Statistics.SRID)
}

func TestFBSOrderToPlatform(t *testing.T) {
	o := &FBSOrder{
		OrderID:        1234567,
		RID:            "rid-9",
		CreatedAt:      "2026-08-20T10:00:00Z",
		ConvertedPrice: 123456,
		CurrencyCode:   643,
		SupplierStatus: StatusConfirm,
	}
	o.SetPlatformProduct(&RelationProduct{Variant: 77, Name: "Футболка", IDMp: "100"})

	row := o.ToPlatform(3, 42)

	assert.EqualValues(t, 3, row.CompanyID)
	assert.EqualValues(t, 42, row.MarketplaceID)
	assert.Equal(t, SchemaFBS, row.Schema)
	// Копейки отбрасываются целочисленным делением
	assert.Equal(t, 1234.0, row.Total)
	assert.Equal(t, "643", row.Currency)
	assert.Equal(t, StatusConfirm, row.Status)
	assert.Equal(t, "1234567", row.PostingNumber)
	assert.Equal(t, "rid-9", row.IDMp)
	assert.True(t, row.AllMatched)
	assert.Same(t, o, row.JSONData)
}

func TestFBOOrderToPlatform(t *testing.T) {
	o := &FBOOrder{
		Date:          "2026-08-20T12:30:00",
		SRID:          "srid-1",
		GNumber:       "g-100",
		PriceWithDisc: 760.5,
	}
	o.Normalize()

	row := o.ToPlatform(3, 42)

	assert.Equal(t, SchemaFBO, row.Schema)
	assert.Equal(t, 760.5, row.Total)
	assert.Equal(t, "RUB", row.Currency)
	// Московское время приводится к UTC
	assert.Equal(t, "2026-08-20T09:30:00Z", row.DateReg)
	assert.Equal(t, "g-100", row.PostingNumber)
	assert.Equal(t, "srid-1", row.IDMp)
	assert.Equal(t, StatusReadyForPickup, row.Status)
	assert.False(t, row.AllMatched)
}

func TestFBSOrderMergeStatus(t *testing.T) {
	o := &FBSOrder{OrderID: 5}
	o.MergeStatus(OrderStatus{ID: 5, SupplierStatus: StatusComplete, WBStatus: StatusWaiting})

	assert.Equal(t, StatusComplete, o.SupplierStatus)
	assert.Equal(t, StatusWaiting, o.WBStatus)
	assert.Equal(t, StatusComplete, o.Status())
}

func TestRelationProductMatchesNmID(t *testing.T) {
	p := &RelationProduct{IDMp: "123456"}
	assert.True(t, p.MatchesNmID(123456))
	assert.False(t, p.MatchesNmID(123457))
}

func TestCrossRefIDSharedBetweenSchemas(t *testing.T) {
	fbs := &FBSOrder{RID: "shared-id"}
	fbo := &FBOOrder{SRID: "shared-id"}
	assert.Equal(t, fbs.CrossRefID(), fbo.CrossRefID())
}
