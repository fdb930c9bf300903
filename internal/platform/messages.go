package platform

import "encoding/json"

// StartEvent - сообщение платформы о запуске события в микросервисе
type StartEvent struct {
	Callback      string                 `json:"callback,omitempty"`
	CompanyID     int64                  `json:"company_id,omitempty"`
	CustomerID    int64                  `json:"customer_id,omitempty"`
	Data          json.RawMessage        `json:"data,omitempty"`
	Event         string                 `json:"event"`
	EventID       string                 `json:"event_id"`
	Headers       map[string]string      `json:"headers"`
	MarketplaceID int64                  `json:"marketplace_id,omitempty"`
	TaskID        int64                  `json:"task_id,omitempty"`
	Token         string                 `json:"token,omitempty"`
	AddInfo       map[string]interface{} `json:"add_info,omitempty"`
	Cached        *bool                  `json:"cached,omitempty"`
}

// AuthValue возвращает ключ доступа к API Wildberries из заголовков события
func (e *StartEvent) AuthValue(header string) string {
	if v, ok := e.Headers[header]; ok {
		return v
	}
	return ""
}

// UseCache сообщает, можно ли отдать событие из сохраненной выгрузки.
// По умолчанию кеширование включено.
func (e *StartEvent) UseCache() bool {
	return e.Cached == nil || *e.Cached
}

// Response - ответ микросервиса платформе по завершению события.
// Поле errors заполняется всегда, даже пустым списком.
type Response struct {
	MarketplaceID int64                    `json:"marketplace_id,omitempty"`
	CompanyID     int64                    `json:"company_id,omitempty"`
	CustomerID    int64                    `json:"customer_id,omitempty"`
	Data          interface{}              `json:"data"`
	Errors        []map[string]interface{} `json:"errors"`
	EventID       string                   `json:"event_id,omitempty"`
	Traceback     string                   `json:"traceback,omitempty"`
	TaskID        int64                    `json:"task_id,omitempty"`
	Event         string                   `json:"event,omitempty"`
	Callback      string                   `json:"callback,omitempty"`
	Token         string                   `json:"token,omitempty"`
	Sender        string                   `json:"sender"`
	AddInfo       map[string]interface{}   `json:"add_info,omitempty"`
}

// NewResponse собирает ответ платформе, перенося метаданные события
func NewResponse(e *StartEvent, data interface{}, errs []map[string]interface{}) *Response {
	if errs == nil {
		errs = []map[string]interface{}{}
	}
	return &Response{
		MarketplaceID: e.MarketplaceID,
		CompanyID:     e.CompanyID,
		CustomerID:    e.CustomerID,
		Data:          data,
		Errors:        errs,
		EventID:       e.EventID,
		TaskID:        e.TaskID,
		Event:         e.Event,
		Callback:      e.Callback,
		Token:         e.Token,
		Sender:        "wb",
		AddInfo:       e.AddInfo,
	}
}
