package platform

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/athebyme/wildberries-sync/config"
	"github.com/athebyme/wildberries-sync/internal/wb"
	"github.com/athebyme/wildberries-sync/pkg/interfaces"
)

// Client - HTTP-клиент платформы: выгрузка связей товаров и отправка
// результатов обработки событий на вебхук
type Client struct {
	http        *http.Client
	webhookURL  string
	relationURL string // шаблон с %d вместо идентификатора маркетплейса
	pageCap     int
	log         interfaces.LoggerPort
}

func NewClient(cfg *config.Config, log interfaces.LoggerPort) *Client {
	return &Client{
		http:        &http.Client{Timeout: 30 * time.Second},
		webhookURL:  cfg.Platform.WebhookURL,
		relationURL: cfg.Platform.RelationProductsURL,
		pageCap:     cfg.Fetcher.PageCap,
		log:         log,
	}
}

// FetchRelationProducts выгружает все связи товаров маркетплейса,
// следуя по ссылкам next до конца списка
func (c *Client) FetchRelationProducts(ctx context.Context, authValue string, marketplaceID int64) ([]wb.RelationProduct, error) {
	products := make([]wb.RelationProduct, 0)
	next := fmt.Sprintf(c.relationURL, marketplaceID)

	for page := 0; next != ""; page++ {
		if page >= c.pageCap {
			return nil, fmt.Errorf("список связей товаров не закончился за %d страниц", c.pageCap)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, next, nil)
		if err != nil {
			return nil, fmt.Errorf("ошибка создания запроса связей товаров: %w", err)
		}
		if authValue != "" {
			req.Header.Set("Authorization", authValue)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("ошибка запроса связей товаров: %w", err)
		}
		raw, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения ответа платформы: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("платформа вернула статус %d по адресу %s", resp.StatusCode, next)
		}

		var pageBody wb.RelationProductsPage
		if err := json.Unmarshal(raw, &pageBody); err != nil {
			return nil, fmt.Errorf("ошибка разбора страницы связей товаров: %w", err)
		}

		products = append(products, pageBody.Results...)
		next = pageBody.Next
	}

	return products, nil
}

// CallbackURL собирает адрес вебхука для ответа платформе. Сегмент
// с идентификатором кодируется как base64 от "Marketplace:<id>".
func (c *Client) CallbackURL(marketplaceID int64, callback string) string {
	slug := base64.StdEncoding.EncodeToString([]byte(fmt.Sprintf("Marketplace:%d", marketplaceID)))
	return fmt.Sprintf("%s/%s/%s/", c.webhookURL, slug, callback)
}

// SendCallback отправляет результат обработки события на вебхук платформы
func (c *Client) SendCallback(ctx context.Context, marketplaceID int64, callback string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("ошибка сериализации ответа платформе: %w", err)
	}

	target := c.CallbackURL(marketplaceID, callback)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("ошибка создания запроса к вебхуку: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("ошибка отправки ответа на вебхук: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("вебхук платформы вернул статус %d", resp.StatusCode)
	}

	c.log.Debug("ответ доставлен на вебхук платформы",
		"marketplace_id", marketplaceID,
		"callback", callback,
	)
	return nil
}
