package wb

// Warehouse - склад продавца
type Warehouse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// StocksRequest - запрос остатков по списку баркодов
type StocksRequest struct {
	Skus []string `json:"skus"`
}

// Stock - остаток товара на складе продавца. GoodIDMp заполняется
// по баркоду из карточек товаров.
type Stock struct {
	Sku          string `json:"sku"`
	Amount       int    `json:"amount"`
	WarehouseID  int64  `json:"warehouse_id,omitempty"`
	TraderSchema string `json:"trader_schema,omitempty"`
	GoodIDMp     int64  `json:"good_id_mp,omitempty"`
}

// StocksResponse - остатки одного склада
type StocksResponse struct {
	Stocks []Stock `json:"stocks"`
}
