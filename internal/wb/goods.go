package wb

// CardsCursor - курсор постраничной выборки карточек товаров
type CardsCursor struct {
	UpdatedAt string `json:"updatedAt,omitempty"`
	NmID      int64  `json:"nmID,omitempty"`
	Limit     int    `json:"limit,omitempty"`
	Total     int    `json:"total,omitempty"`
}

// CardsRequest - запрос списка карточек товаров
type CardsRequest struct {
	Settings CardsSettings `json:"settings"`
}

type CardsSettings struct {
	Cursor CardsCursor `json:"cursor"`
	Filter CardsFilter `json:"filter"`
}

type CardsFilter struct {
	WithPhoto int `json:"withPhoto"`
}

// Card - карточка товара из раздела контента
type Card struct {
	NmID        int64      `json:"nmID"`
	ImtID       int64      `json:"imtID"`
	VendorCode  string     `json:"vendorCode"`
	Brand       string     `json:"brand"`
	Title       string     `json:"title"`
	SubjectID   int64      `json:"subjectID"`
	SubjectName string     `json:"subjectName"`
	Sizes       []CardSize `json:"sizes"`
	UpdatedAt   string     `json:"updatedAt"`
}

type CardSize struct {
	ChrtID   int64    `json:"chrtID"`
	TechSize string   `json:"techSize"`
	Skus     []string `json:"skus"`
}

// CardsResponse - страница карточек с курсором продолжения
type CardsResponse struct {
	Cards  []Card      `json:"cards"`
	Cursor CardsCursor `json:"cursor"`
}
