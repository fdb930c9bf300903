package wb

// Sale - продажа или возврат из раздела статистики.
// Первый символ saleID определяет тип операции: S - продажа, R - возврат.
type Sale struct {
	Date            string  `json:"date"`
	LastChangeDate  string  `json:"lastChangeDate"`
	SaleID          string  `json:"saleID"`
	SRID            string  `json:"srid"`
	GNumber         string  `json:"gNumber"`
	NmID            int64   `json:"nmId"`
	SupplierArticle string  `json:"supplierArticle"`
	Barcode         string  `json:"barcode"`
	TotalPrice      float64 `json:"totalPrice"`
	DiscountPercent int     `json:"discountPercent"`
	SPP             float64 `json:"spp"`
	ForPay          float64 `json:"forPay"`
	FinishedPrice   float64 `json:"finishedPrice"`
	PriceWithDisc   float64 `json:"priceWithDisc"`
	WarehouseName   string  `json:"warehouseName"`
	RegionName      string  `json:"regionName"`
	CountryName     string  `json:"countryName"`
}
