package wb

import (
	"strconv"
	"time"
)

// Схемы работы с заказами
const (
	SchemaFBS = "FBS" // отгрузка со склада продавца
	SchemaFBO = "FBO" // отгрузка со склада Wildberries
)

const dateRegLayout = "2006-01-02T15:04:05Z"

// Order объединяет заказы обеих схем. Каждый вариант знает свой
// сквозной идентификатор и умеет собирать строку для платформы.
type Order interface {
	// Kind возвращает схему заказа: SchemaFBS или SchemaFBO
	Kind() string
	// CrossRefID возвращает сквозной идентификатор, общий для обеих
	// схем: rid у сборочного задания равен srid у заказа статистики
	CrossRefID() string
	// ProductNmID возвращает артикул Wildberries
	ProductNmID() int64
	// Status возвращает итоговый статус заказа
	Status() string
	SetPlatformProduct(p *RelationProduct)
	SetSale(s *Sale)
	SetReportRow(row map[string]interface{})
	// ToPlatform собирает строку заказа для отправки на платформу
	ToPlatform(companyID, marketplaceID int64) *PlatformOrder
}

// FBSOrder - сборочное задание из раздела marketplace
type FBSOrder struct {
	OrderID        int64    `json:"id"`
	RID            string   `json:"rid"`
	CreatedAt      string   `json:"createdAt"`
	WarehouseID    int64    `json:"warehouseId"`
	SupplyID       string   `json:"supplyId,omitempty"`
	Skus           []string `json:"skus"`
	Price          int64    `json:"price"`
	ConvertedPrice int64    `json:"convertedPrice"`
	CurrencyCode   int      `json:"currencyCode"`
	OrderUID       string   `json:"orderUid,omitempty"`
	DeliveryType   string   `json:"deliveryType,omitempty"`
	NmID           int64    `json:"nmId"`
	ChrtID         int64    `json:"chrtId"`
	Article        string   `json:"article,omitempty"`
	SupplierStatus string   `json:"supplierStatus,omitempty"`
	WBStatus       string   `json:"wbStatus,omitempty"`

	// Поля сопоставления с платформой
	IDPlatform   int64  `json:"id_platform,omitempty"`
	NamePlatform string `json:"name_platform,omitempty"`
	AllMatched   bool   `json:"all_products_matched_to_platform"`

	// Поля, перенесенные из дубликата заказа в разделе статистики
	DiscountPercent int                    `json:"discountPercent,omitempty"`
	SPP             float64                `json:"spp,omitempty"`
	FinishedPrice   float64                `json:"finishedPrice,omitempty"`
	PriceWithDisc   float64                `json:"priceWithDisc,omitempty"`
	Statistics      *FBOOrder              `json:"statistics,omitempty"`
	Sales           *Sale                  `json:"sales,omitempty"`
	SalesReport     map[string]interface{} `json:"sales_report,omitempty"`
}

func (o *FBSOrder) Kind() string       { return SchemaFBS }
func (o *FBSOrder) CrossRefID() string { return o.RID }
func (o *FBSOrder) ProductNmID() int64 { return o.NmID }

func (o *FBSOrder) SetPlatformProduct(p *RelationProduct) {
	o.IDPlatform = p.Variant
	o.NamePlatform = p.Name
	o.AllMatched = true
}

func (o *FBSOrder) SetSale(s *Sale) { o.Sales = s }

func (o *FBSOrder) SetReportRow(row map[string]interface{}) { o.SalesReport = row }

// Substitute переносит ценовые поля и строку статистики из заказа FBO,
// дублирующего это сборочное задание
func (o *FBSOrder) Substitute(src *FBOOrder) {
	o.DiscountPercent = src.DiscountPercent
	o.SPP = src.SPP
	o.FinishedPrice = src.FinishedPrice
	o.PriceWithDisc = src.PriceWithDisc
	o.Statistics = src
}

// MergeStatus переносит статусы из ответа метода статусов заданий
func (o *FBSOrder) MergeStatus(st OrderStatus) {
	o.WBStatus = st.WBStatus
	o.SupplierStatus = st.SupplierStatus
}

// Status возвращает статус задания. Статус системы Wildberries важнее
// статуса продавца: выкуп и отказ покупателя закрывают заказ
// независимо от состояния сборки.
func (o *FBSOrder) Status() string {
	if o.WBStatus == StatusSold {
		return StatusSold
	}
	switch o.WBStatus {
	case StatusDeclinedByClient, StatusCanceledByClient, StatusCanceled:
		return StatusCancel
	}
	switch o.SupplierStatus {
	case StatusNew, StatusComplete, StatusConfirm, StatusCancel:
		return o.SupplierStatus
	}
	return StatusError
}

func (o *FBSOrder) ToPlatform(companyID, marketplaceID int64) *PlatformOrder {
	return &PlatformOrder{
		ID:            1,
		CompanyID:     companyID,
		MarketplaceID: marketplaceID,
		Total:         float64(o.ConvertedPrice / 100),
		Schema:        SchemaFBS,
		CreatedAt:     o.CreatedAt,
		Currency:      strconv.Itoa(o.CurrencyCode),
		DateReg:       o.CreatedAt,
		Status:        o.Status(),
		PostingNumber: strconv.FormatInt(o.OrderID, 10),
		IDMp:          o.RID,
		JSONData:      o,
		AllMatched:    o.AllMatched,
	}
}

// FBOOrder - заказ со склада Wildberries из раздела статистики
type FBOOrder struct {
	Date            string  `json:"date"`
	LastChangeDate  string  `json:"lastChangeDate"`
	WarehouseName   string  `json:"warehouseName"`
	RegionName      string  `json:"regionName,omitempty"`
	SupplierArticle string  `json:"supplierArticle"`
	NmID            int64   `json:"nmId"`
	Barcode         string  `json:"barcode"`
	TechSize        string  `json:"techSize,omitempty"`
	TotalPrice      float64 `json:"totalPrice"`
	DiscountPercent int     `json:"discountPercent"`
	SPP             float64 `json:"spp"`
	FinishedPrice   float64 `json:"finishedPrice"`
	PriceWithDisc   float64 `json:"priceWithDisc"`
	IsCancel        bool    `json:"isCancel"`
	CancelDate      string  `json:"cancelDate,omitempty"`
	Sticker         string  `json:"sticker"`
	GNumber         string  `json:"gNumber"`
	SRID            string  `json:"srid"`

	// Поля сопоставления с платформой
	IDPlatform     int64  `json:"id_platform,omitempty"`
	NamePlatform   string `json:"name_platform,omitempty"`
	AllMatched     bool   `json:"all_products_matched_to_platform"`
	SupplierStatus string `json:"supplierStatus,omitempty"`
	WBStatus       string `json:"wbStatus,omitempty"`

	Sales       *Sale                  `json:"sales,omitempty"`
	SalesReport map[string]interface{} `json:"sales_report,omitempty"`
}

func (o *FBOOrder) Kind() string       { return SchemaFBO }
func (o *FBOOrder) CrossRefID() string { return o.SRID }
func (o *FBOOrder) ProductNmID() int64 { return o.NmID }

func (o *FBOOrder) SetPlatformProduct(p *RelationProduct) {
	o.IDPlatform = p.Variant
	o.NamePlatform = p.Name
	o.AllMatched = true
}

func (o *FBOOrder) SetSale(s *Sale) { o.Sales = s }

func (o *FBOOrder) SetReportRow(row map[string]interface{}) { o.SalesReport = row }

// Normalize выставляет статус по умолчанию: заказ без отмены и продажи
// ожидает выдачи покупателю
func (o *FBOOrder) Normalize() {
	if o.WBStatus == "" {
		o.WBStatus = StatusReadyForPickup
	}
}

// MergeSaleStatus переводит заказ в статус по данным продажи:
// выкуп или отказ покупателя. Отмененный заказ продажи не ждет.
func (o *FBOOrder) MergeSaleStatus(s *Sale) {
	if o.IsCancel {
		o.WBStatus = StatusCanceled
		return
	}
	if s == nil {
		return
	}
	o.WBStatus = StatusBySale(s)
	o.SupplierStatus = ""
}

func (o *FBOOrder) Status() string {
	if o.IsCancel {
		return StatusCancel
	}
	if o.WBStatus != "" {
		return o.WBStatus
	}
	return StatusNew
}

func (o *FBOOrder) ToPlatform(companyID, marketplaceID int64) *PlatformOrder {
	dateReg := o.dateReg()
	return &PlatformOrder{
		ID:            1,
		CompanyID:     companyID,
		MarketplaceID: marketplaceID,
		Total:         o.PriceWithDisc,
		Schema:        SchemaFBO,
		CreatedAt:     dateReg,
		Currency:      "RUB",
		DateReg:       dateReg,
		Status:        o.Status(),
		PostingNumber: o.GNumber,
		IDMp:          o.SRID,
		JSONData:      o,
		AllMatched:    o.AllMatched,
	}
}

// dateReg приводит дату заказа из московского времени к UTC
func (o *FBOOrder) dateReg() string {
	t, err := time.Parse("2006-01-02T15:04:05", o.Date)
	if err != nil {
		return o.Date
	}
	return t.Add(-3 * time.Hour).Format(dateRegLayout)
}

// OrderStatus - пара статусов сборочного задания из метода статусов
type OrderStatus struct {
	ID             int64  `json:"id"`
	SupplierStatus string `json:"supplierStatus"`
	WBStatus       string `json:"wbStatus"`
}

// StatusBySale выводит статус заказа из идентификатора продажи:
// префикс S означает выкуп, остальное - отказ покупателя
func StatusBySale(s *Sale) string {
	if len(s.SaleID) > 0 && s.SaleID[0] == 'S' {
		return StatusSold
	}
	return StatusDeclinedByClient
}
