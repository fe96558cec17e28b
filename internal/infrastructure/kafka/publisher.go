// Package kafka publica los eventos de dominio en Kafka con un SyncProducer de sarama.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"github.com/jhoicas/stockpro-api/internal/application/ports"
)

var _ ports.EventPublisher = (*Publisher)(nil)

// Publisher envía cada evento como JSON al topic "<prefix>.<topic>", con key = tenant.
type Publisher struct {
	producer sarama.SyncProducer
	prefix   string
	now      func() time.Time
}

// NewConfig configuración del productor: acks de todas las réplicas.
func NewConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	return cfg
}

// Dial conecta con los brokers.
func Dial(brokers []string, prefix string) (*Publisher, error) {
	producer, err := sarama.NewSyncProducer(brokers, NewConfig())
	if err != nil {
		return nil, fmt.Errorf("kafka: crear productor: %w", err)
	}
	return NewPublisher(producer, prefix), nil
}

// NewPublisher envuelve un productor existente.
func NewPublisher(producer sarama.SyncProducer, prefix string) *Publisher {
	return &Publisher{producer: producer, prefix: prefix, now: time.Now}
}

// Topic nombre completo del topic.
func (p *Publisher) Topic(topic string) string {
	if p.prefix == "" {
		return topic
	}
	return p.prefix + "." + topic
}

func (p *Publisher) Publish(ctx context.Context, topic, key string, payload any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("kafka: serializar %s: %w", topic, err)
	}
	msg := &sarama.ProducerMessage{
		Topic:     p.Topic(topic),
		Key:       sarama.StringEncoder(key),
		Value:     sarama.ByteEncoder(data),
		Timestamp: p.now(),
	}
	if _, _, err := p.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("kafka: enviar %s: %w", msg.Topic, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.producer.Close()
}
