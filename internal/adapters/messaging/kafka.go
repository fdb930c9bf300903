package messaging

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/athebyme/wildberries-sync/pkg/interfaces"
	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/google/uuid"
)

// KafkaMessaging реализация MessagingPort с использованием Kafka
type KafkaMessaging struct {
	producer       *kafka.Producer
	consumers      map[string]*kafka.Consumer
	consumersMutex sync.Mutex
	brokers        string
	groupID        string
}

// NewKafkaMessaging создает новый экземпляр KafkaMessaging
func NewKafkaMessaging(brokers string, groupID string) (interfaces.MessagingPort, error) {
	producer, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": brokers,
		"client.id":         "wildberries-sync-producer",
		"acks":              "all",
		"retries":           5,
		"retry.backoff.ms":  500,
		"compression.type":  "snappy",
		"linger.ms":         10,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка создания Kafka producer: %w", err)
	}

	return &KafkaMessaging{
		producer:  producer,
		consumers: make(map[string]*kafka.Consumer),
		brokers:   brokers,
		groupID:   groupID,
	}, nil
}

// Publish публикует сообщение в указанную тему
func (k *KafkaMessaging) Publish(ctx context.Context, topic string, message []byte) error {
	return k.PublishWithKey(ctx, topic, "", message)
}

// PublishWithKey публикует сообщение с указанным ключом
func (k *KafkaMessaging) PublishWithKey(ctx context.Context, topic string, key string, message []byte) error {
	var keyBytes []byte
	if key != "" {
		keyBytes = []byte(key)
	}

	msg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Value:          message,
		Key:            keyBytes,
		Headers: []kafka.Header{
			{Key: "message_id", Value: []byte(uuid.New().String())},
			{Key: "timestamp", Value: []byte(time.Now().UTC().Format(time.RFC3339Nano))},
		},
	}
	return k.producer.Produce(msg, nil)
}

// Subscribe подписывается на указанную тему и обрабатывает сообщения с помощью handler
func (k *KafkaMessaging) Subscribe(ctx context.Context, topic string, handler interfaces.MessageHandler) (func() error, error) {
	consumer, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers":     k.brokers,
		"group.id":              k.groupID,
		"auto.offset.reset":     "latest",
		"enable.auto.commit":    true,
		"session.timeout.ms":    30000,
		"heartbeat.interval.ms": 3000,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка создания Kafka consumer: %w", err)
	}

	if err = consumer.Subscribe(topic, nil); err != nil {
		consumer.Close()
		return nil, fmt.Errorf("ошибка подписки на топик %s: %w", topic, err)
	}

	consumerID := uuid.New().String()
	k.consumersMutex.Lock()
	k.consumers[consumerID] = consumer
	k.consumersMutex.Unlock()

	// обработка сообщений в отдельной горутине
	go k.consumeMessages(ctx, consumer, topic, handler)

	unsubscribe := func() error {
		k.consumersMutex.Lock()
		c := k.consumers[consumerID]
		delete(k.consumers, consumerID)
		k.consumersMutex.Unlock()

		if c != nil {
			return c.Close()
		}
		return nil
	}

	return unsubscribe, nil
}

// consumeMessages обрабатывает сообщения из Kafka
func (k *KafkaMessaging) consumeMessages(ctx context.Context, consumer *kafka.Consumer, topic string, handler interfaces.MessageHandler) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			ev := consumer.Poll(100)
			if ev == nil {
				continue
			}

			switch e := ev.(type) {
			case *kafka.Message:
				msg := kafkaMessageToMessage(e)
				// Ошибки обработки не прерывают цикл потребления:
				// обработчик сам формирует отрицательный ответ платформе
				_ = handler(ctx, msg)

			case kafka.Error:
				if e.Code() == kafka.ErrAllBrokersDown {
					return
				}
			}
		}
	}
}

// kafkaMessageToMessage преобразует kafka.Message в Message
func kafkaMessageToMessage(msg *kafka.Message) *interfaces.Message {
	headers := make(map[string]string)
	for _, header := range msg.Headers {
		headers[header.Key] = string(header.Value)
	}

	var key string
	if msg.Key != nil {
		key = string(msg.Key)
	}

	publishedAt := time.Now()
	if tsStr, ok := headers["timestamp"]; ok {
		if ts, err := time.Parse(time.RFC3339Nano, tsStr); err == nil {
			publishedAt = ts
		}
	}

	return &interfaces.Message{
		ID:          headers["message_id"],
		Topic:       *msg.TopicPartition.Topic,
		Key:         key,
		Value:       msg.Value,
		Headers:     headers,
		TenantID:    headers["tenant_id"],
		PublishedAt: publishedAt,
	}
}

// Close закрывает соединение с системой обмена сообщениями
func (k *KafkaMessaging) Close() error {
	k.consumersMutex.Lock()
	for id, consumer := range k.consumers {
		consumer.Close()
		delete(k.consumers, id)
	}
	k.consumersMutex.Unlock()

	k.producer.Flush(15 * 1000)
	k.producer.Close()

	return nil
}
