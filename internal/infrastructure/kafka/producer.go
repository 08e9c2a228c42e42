package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/jhoicas/fieldservice-api/internal/application/dto"
	"github.com/jhoicas/fieldservice-api/internal/application/inventory"
	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
)

var _ inventory.EventPublisher = (*Producer)(nil)

// EventTransferCompleted tipo del evento emitido tras cada traslado confirmado.
const EventTransferCompleted = "TransferCompleted"

// TransferEvent mensaje publicado en el tópico de traslados.
type TransferEvent struct {
	Type  string                       `json:"type"`
	Entry dto.TransferLogEntryResponse `json:"entry"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publica eventos de traslado. La clave del mensaje es el ID del repuesto para
// conservar el orden por repuesto dentro de la partición.
type Producer struct {
	writer messageWriter
}

// NewProducer crea el productor para brokers y topic.
func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}
	return &Producer{writer: writer}
}

// PublishTransfer publica TransferCompleted con la entrada del libro.
func (p *Producer) PublishTransfer(ctx context.Context, entry *entity.TransferLogEntry) error {
	data, err := json.Marshal(TransferEvent{
		Type:  EventTransferCompleted,
		Entry: *dto.ToTransferLogEntryResponse(entry),
	})
	if err != nil {
		return fmt.Errorf("serializar evento: %w", err)
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(entry.PartID),
		Value: data,
		Time:  entry.Timestamp,
	})
}

// Close vacía y cierra el writer.
func (p *Producer) Close() error {
	return p.writer.Close()
}
