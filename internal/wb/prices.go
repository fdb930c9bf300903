package wb

// PriceUpdate - новая цена и скидка одной номенклатуры
type PriceUpdate struct {
	NmID     int64 `json:"nmID"`
	Price    int   `json:"price"`
	Discount int   `json:"discount"`
}

// PricesRequest - тело задачи загрузки цен и скидок
type PricesRequest struct {
	Data []PriceUpdate `json:"data"`
}

// PricesUploadResponse - подтверждение постановки задачи загрузки
type PricesUploadResponse struct {
	Data      interface{} `json:"data"`
	Error     bool        `json:"error"`
	ErrorText string      `json:"errorText"`
}
