// Package handlers обрабатывает события платформы: собирает данные из
// API Wildberries и готовит ответ на вебхук
package handlers

import (
	"context"

	"github.com/athebyme/wildberries-sync/config"
	"github.com/athebyme/wildberries-sync/internal/adapters/storage"
	"github.com/athebyme/wildberries-sync/internal/fetcher"
	"github.com/athebyme/wildberries-sync/internal/platform"
	"github.com/athebyme/wildberries-sync/pkg/interfaces"
)

// Deps - зависимости обработчиков событий
type Deps struct {
	Cfg      *config.Config
	Fetcher  *fetcher.Fetcher
	Storage  *storage.PostgresStorage
	Platform *platform.Client
	Logger   interfaces.LoggerPort
}

// Handler обрабатывает одно событие платформы. Ошибки выполнения
// попадают в список errors ответа, ответ возвращается всегда.
type Handler func(ctx context.Context, deps *Deps, event *platform.StartEvent) *platform.Response
