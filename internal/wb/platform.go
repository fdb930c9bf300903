package wb

import "strconv"

// RelationProduct - связь товара платформы с карточкой маркетплейса.
// Поле id_mp хранит артикул Wildberries строкой.
type RelationProduct struct {
	Product     int64  `json:"product"`
	Marketplace int64  `json:"marketplace"`
	IDMp        string `json:"id_mp"`
	Variant     int64  `json:"variant"`
	Name        string `json:"name"`
	Article     string `json:"article"`
}

// MatchesNmID сверяет связь с артикулом Wildberries из заказа
func (p *RelationProduct) MatchesNmID(nmID int64) bool {
	return p.IDMp == strconv.FormatInt(nmID, 10)
}

// RelationProductsPage - страница связей товаров в формате платформы
type RelationProductsPage struct {
	Count    int               `json:"count"`
	Next     string            `json:"next"`
	Previous string            `json:"previous"`
	Results  []RelationProduct `json:"results"`
}

// PlatformOrder - строка заказа в формате платформы
type PlatformOrder struct {
	ID            int64       `json:"id"`
	CompanyID     int64       `json:"company_id"`
	MarketplaceID int64       `json:"marketplace_id"`
	Total         float64     `json:"total"`
	Schema        string      `json:"schema"`
	CreatedAt     string      `json:"created_at"`
	Currency      string      `json:"currency"`
	DateReg       string      `json:"date_reg"`
	Status        string      `json:"status"`
	PostingNumber string      `json:"posting_number"`
	IDMp          string      `json:"id_mp"`
	JSONData      interface{} `json:"json_data"`
	AllMatched    bool        `json:"all_products_matched_to_platform"`
}

// StatusChange - строка сверки статуса заказа между платформой и
// маркетплейсом
type StatusChange struct {
	IDPlatform               int64  `json:"id_platform"`
	OrderID                  string `json:"order_id"`
	OldStatusPlatform        string `json:"old_status_platform"`
	NewStatusPlatform        string `json:"new_status_platform,omitempty"`
	NewStatusFromMarketplace string `json:"new_status_from_marketplace,omitempty"`
}
