package ports

import "context"

// Tópicos de eventos de dominio (sin prefijo de entorno).
const (
	TopicSaleRecorded = "sale.recorded"
	TopicSaleUpdated  = "sale.updated"
	TopicSaleDeleted  = "sale.deleted"
	TopicStockUpdated = "stock.updated"
)

// EventPublisher publica eventos de dominio hacia un broker externo.
// payload se serializa como JSON; key agrupa los eventos de un mismo tenant.
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, payload any) error
}

// NopPublisher descarta los eventos (broker no configurado).
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, string, any) error { return nil }
