package interfaces

import (
	"context"
	"time"
)

// Message представляет сообщение, передаваемое через брокер
type Message struct {
	ID          string
	Topic       string
	Key         string
	Value       []byte
	Headers     map[string]string
	TenantID    string
	PublishedAt time.Time
}

// MessageHandler обрабатывает одно входящее сообщение
type MessageHandler func(ctx context.Context, msg *Message) error

// MessagingPort определяет интерфейс для системы обмена сообщениями
type MessagingPort interface {
	// Publish публикует сообщение в указанную тему
	Publish(ctx context.Context, topic string, message []byte) error

	// PublishWithKey публикует сообщение с указанным ключом
	PublishWithKey(ctx context.Context, topic string, key string, message []byte) error

	// Subscribe подписывается на указанную тему и обрабатывает сообщения с помощью handler
	// Возвращает функцию для отмены подписки
	Subscribe(ctx context.Context, topic string, handler MessageHandler) (func() error, error)

	// Close закрывает соединение с системой обмена сообщениями
	Close() error
}
