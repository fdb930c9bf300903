package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/athebyme/wildberries-sync/config"
	"github.com/athebyme/wildberries-sync/internal/wb"
	"github.com/athebyme/wildberries-sync/pkg/interfaces"
)

// PostgresStorage хранит выгруженные заказы и отметки времени выгрузок
type PostgresStorage struct {
	pool *pgxpool.Pool
	log  interfaces.LoggerPort
}

// NewPostgresStorage создает хранилище и проверяет соединение
func NewPostgresStorage(ctx context.Context, cfg *config.Config, log interfaces.LoggerPort) (*PostgresStorage, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s&pool_max_conns=%d",
		cfg.Postgres.User,
		cfg.Postgres.Password,
		cfg.Postgres.Host,
		cfg.Postgres.Port,
		cfg.Postgres.DBName,
		cfg.Postgres.SSLMode,
		cfg.Postgres.PoolSize,
	)

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания пула соединений: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Postgres.Timeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ошибка подключения к базе данных: %w", err)
	}

	return &PostgresStorage{pool: pool, log: log}, nil
}

// UpsertOrders сохраняет строки заказов. Повторная выгрузка обновляет
// строку по ключу компания-маркетплейс-заказ.
func (s *PostgresStorage) UpsertOrders(ctx context.Context, orders []*wb.PlatformOrder) error {
	if len(orders) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка открытия транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	const query = `
		INSERT INTO orders (
			id_mp, date_reg, posting_number, company_id, marketplace_id,
			status, currency, total, json_data, order_schema
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (company_id, marketplace_id, id_mp)
		DO UPDATE SET
			date_reg = EXCLUDED.date_reg,
			posting_number = EXCLUDED.posting_number,
			status = EXCLUDED.status,
			currency = EXCLUDED.currency,
			total = EXCLUDED.total,
			json_data = EXCLUDED.json_data,
			order_schema = EXCLUDED.order_schema
	`
	for _, o := range orders {
		raw, err := json.Marshal(o.JSONData)
		if err != nil {
			return fmt.Errorf("ошибка сериализации заказа %s: %w", o.IDMp, err)
		}
		if _, err := tx.Exec(ctx, query,
			o.IDMp, o.DateReg, o.PostingNumber, o.CompanyID, o.MarketplaceID,
			o.Status, o.Currency, o.Total, raw, o.Schema,
		); err != nil {
			return fmt.Errorf("ошибка сохранения заказа %s: %w", o.IDMp, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("ошибка фиксации транзакции: %w", err)
	}
	return nil
}

// ListOrderRows возвращает сохраненные заказы компании на маркетплейсе
func (s *PostgresStorage) ListOrderRows(ctx context.Context, companyID, marketplaceID int64) ([]json.RawMessage, error) {
	const query = `
		SELECT json_data
		FROM orders
		WHERE company_id = $1 AND marketplace_id = $2
		ORDER BY date_reg DESC
	`
	rows, err := s.pool.Query(ctx, query, companyID, marketplaceID)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения заказов: %w", err)
	}
	defer rows.Close()

	result := make([]json.RawMessage, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("ошибка чтения строки заказа: %w", err)
		}
		result = append(result, json.RawMessage(raw))
	}
	return result, rows.Err()
}

// ListOrderRowsPage возвращает страницу сохраненных заказов
func (s *PostgresStorage) ListOrderRowsPage(ctx context.Context, companyID, marketplaceID int64, limit, offset int) ([]json.RawMessage, error) {
	const query = `
		SELECT json_data
		FROM orders
		WHERE company_id = $1 AND marketplace_id = $2
		ORDER BY date_reg DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := s.pool.Query(ctx, query, companyID, marketplaceID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения страницы заказов: %w", err)
	}
	defer rows.Close()

	result := make([]json.RawMessage, 0, limit)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("ошибка чтения строки заказа: %w", err)
		}
		result = append(result, json.RawMessage(raw))
	}
	return result, rows.Err()
}

// LastFetch возвращает время последней успешной выгрузки источника.
// Если выгрузок не было, возвращается нулевое время.
func (s *PostgresStorage) LastFetch(ctx context.Context, companyID, marketplaceID int64, source string) (time.Time, error) {
	const query = `
		SELECT last_fetch
		FROM fetch_markers
		WHERE company_id = $1 AND marketplace_id = $2 AND source = $3
	`
	var last time.Time
	err := s.pool.QueryRow(ctx, query, companyID, marketplaceID, source).Scan(&last)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("ошибка чтения отметки выгрузки: %w", err)
	}
	return last, nil
}

// RecordFetch отмечает успешную выгрузку источника. Вызывается только
// после сохранения данных.
func (s *PostgresStorage) RecordFetch(ctx context.Context, companyID, marketplaceID int64, source string, at time.Time) error {
	const query = `
		INSERT INTO fetch_markers (company_id, marketplace_id, source, last_fetch)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (company_id, marketplace_id, source)
		DO UPDATE SET last_fetch = EXCLUDED.last_fetch
	`
	if _, err := s.pool.Exec(ctx, query, companyID, marketplaceID, source, at); err != nil {
		return fmt.Errorf("ошибка записи отметки выгрузки: %w", err)
	}
	return nil
}

// IsFresh сообщает, укладывается ли последняя выгрузка источника в окно
// актуальности
func (s *PostgresStorage) IsFresh(ctx context.Context, companyID, marketplaceID int64, source string, window time.Duration) (bool, error) {
	last, err := s.LastFetch(ctx, companyID, marketplaceID, source)
	if err != nil {
		return false, err
	}
	if last.IsZero() {
		return false, nil
	}
	return time.Since(last) <= window, nil
}

// Close закрывает пул соединений
func (s *PostgresStorage) Close() {
	s.pool.Close()
}
