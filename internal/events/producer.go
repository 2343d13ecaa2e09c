package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/murtaza0641/truck-dispatch-load-dashboard/internal/models"
)

// Event types carried in models.LoadEvent.Type.
const (
	LoadCreated = "created"
	LoadUpdated = "updated"
	LoadDeleted = "deleted"
)

// Producer publishes load lifecycle events to Kafka. Handlers publish
// best-effort: a broker outage must not fail the mutation that triggered it.
type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	w := kafka.NewWriter(kafka.WriterConfig{Brokers: brokers, Topic: topic, Balancer: &kafka.LeastBytes{}})
	return &Producer{writer: w}
}

func (p *Producer) PublishLoadEvent(evType string, l models.Load) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	ev := models.LoadEvent{Type: evType, Load: l, At: time.Now()}
	b, _ := json.Marshal(ev)
	key := []byte(strconv.FormatInt(l.ID, 10))
	return p.writer.WriteMessages(ctx, kafka.Message{Key: key, Value: b})
}

func (p *Producer) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
