package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"juicepos/internal/models"
)

// SaleEvent is the payload streamed when the ledger commits a sale.
type SaleEvent struct {
	Type      string      `json:"type"`
	SaleID    string      `json:"sale_id"`
	Sale      models.Sale `json:"sale"`
	Timestamp time.Time   `json:"timestamp"`
}

type Producer struct {
	Writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	writer := kafka.NewWriter(kafka.WriterConfig{
		Brokers: brokers,
		Topic:   topic,
	})
	return &Producer{Writer: writer}
}

// PublishSaleRecorded streams the sale-recorded event. The ledger treats
// a failure here as telemetry loss, never as a failed sale.
func (p *Producer) PublishSaleRecorded(sale models.Sale) error {
	event := SaleEvent{
		Type:      "sale.recorded",
		SaleID:    sale.ID,
		Sale:      sale,
		Timestamp: time.Now(),
	}

	msgBytes, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.Writer.WriteMessages(context.Background(),
		kafka.Message{
			Key:   []byte(sale.ID),
			Value: msgBytes,
		},
	)
}

func (p *Producer) Close() error {
	return p.Writer.Close()
}
