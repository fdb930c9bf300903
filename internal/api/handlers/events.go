package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/render"

	"github.com/athebyme/wildberries-sync/internal/adapters/storage"
	"github.com/athebyme/wildberries-sync/internal/handlers"
	"github.com/athebyme/wildberries-sync/internal/platform"
	"github.com/athebyme/wildberries-sync/pkg/interfaces"
)

const (
	defaultOrdersPageSize = 100
	maxOrdersPageSize     = 1000
)

// errorResponse представляет структуру ответа с ошибкой
type errorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
}

// response представляет структуру успешного ответа
type response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// EventHandler обработчик запросов запуска событий и чтения заказов
type EventHandler struct {
	deps    *handlers.Deps
	storage *storage.PostgresStorage
	logger  interfaces.LoggerPort
}

// NewEventHandler создает новый обработчик событий
func NewEventHandler(deps *handlers.Deps, logger interfaces.LoggerPort) *EventHandler {
	return &EventHandler{deps: deps, storage: deps.Storage, logger: logger}
}

// StartEvent обрабатывает запрос на запуск события вне очереди.
// Событие выполняется синхронно, ответ платформе возвращается в теле.
func (h *EventHandler) StartEvent(w http.ResponseWriter, r *http.Request) {
	var event platform.StartEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorResponse{
			Error:   "bad_request",
			Code:    http.StatusBadRequest,
			Message: "не удалось разобрать тело события",
		})
		return
	}
	if event.Event == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorResponse{
			Error:   "bad_request",
			Code:    http.StatusBadRequest,
			Message: "не указано событие",
		})
		return
	}

	result := handlers.Dispatch(r.Context(), h.deps, &event)

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response{Success: len(result.Errors) == 0, Data: result})
}

// ListOrders возвращает сохраненные заказы компании на маркетплейсе
func (h *EventHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	companyID, err1 := strconv.ParseInt(r.URL.Query().Get("company_id"), 10, 64)
	marketplaceID, err2 := strconv.ParseInt(r.URL.Query().Get("marketplace_id"), 10, 64)
	if err1 != nil || err2 != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorResponse{
			Error:   "bad_request",
			Code:    http.StatusBadRequest,
			Message: "параметры company_id и marketplace_id обязательны",
		})
		return
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 || limit > maxOrdersPageSize {
		limit = defaultOrdersPageSize
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	rows, err := h.storage.ListOrderRowsPage(r.Context(), companyID, marketplaceID, limit, offset)
	if err != nil {
		h.logger.Error("ошибка чтения заказов", "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, errorResponse{
			Error:   "internal_error",
			Code:    http.StatusInternalServerError,
			Message: "не удалось получить заказы",
		})
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response{
		Success: true,
		Data:    rows,
		Meta: map[string]interface{}{
			"count":  len(rows),
			"limit":  limit,
			"offset": offset,
		},
	})
}
