package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"asset-tracker/internal/config"
	"asset-tracker/internal/models"
	"asset-tracker/pkg/logger"

	"github.com/segmentio/kafka-go"
)

// EnsureTopic creates the change topic if brokers are configured. Failure is logged
// and ignored: the topic may already exist or auto-creation may be on.
func EnsureTopic(ctx context.Context) {
	cfg := config.Get()
	if len(cfg.KafkaBroker) == 0 {
		return
	}
	conn, err := kafka.DialContext(ctx, "tcp", cfg.KafkaBroker[0])
	if err != nil {
		logger.Debug(ctx, "Kafka dial for topic creation failed", "error", err)
		return
	}
	defer conn.Close()
	controller, err := conn.Controller()
	if err != nil {
		logger.Debug(ctx, "Kafka controller lookup failed", "error", err)
		return
	}
	ctrlConn, err := kafka.DialContext(ctx, "tcp", fmt.Sprintf("%s:%d", controller.Host, controller.Port))
	if err != nil {
		logger.Debug(ctx, "Kafka controller dial failed", "error", err)
		return
	}
	defer ctrlConn.Close()
	err = ctrlConn.CreateTopics(kafka.TopicConfig{
		Topic:             cfg.KafkaTopic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	})
	if err != nil {
		logger.Debug(ctx, "Kafka create topic failed (topic may already exist)", "error", err)
		return
	}
	logger.Info(ctx, "Kafka topic ensured", "topic", cfg.KafkaTopic)
}

// Writer is the subset of *kafka.Writer used by Publisher.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher sends ChangeEvents. A Publisher without a writer drops events silently.
type Publisher struct {
	w Writer
}

func NewPublisher(w Writer) *Publisher {
	return &Publisher{w: w}
}

var (
	publisher *Publisher
	pOnce     sync.Once
)

// Producer returns the global publisher. With no brokers configured it is a no-op publisher.
func Producer(ctx context.Context) *Publisher {
	pOnce.Do(func() {
		cfg := config.Get()
		if len(cfg.KafkaBroker) == 0 {
			logger.Info(ctx, "Change events disabled (KAFKA_BROKERS not set)")
			publisher = NewPublisher(nil)
			return
		}
		publisher = NewPublisher(&kafka.Writer{
			Addr:         kafka.TCP(cfg.KafkaBroker...),
			Topic:        cfg.KafkaTopic,
			Balancer:     &kafka.Hash{},
			BatchTimeout: 10 * time.Millisecond,
			Async:        true,
			RequiredAcks: kafka.RequireOne,
		})
		logger.Info(ctx, "Kafka producer initialized", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBroker)
	})
	return publisher
}

// Publish sends one change event keyed by entity and id.
func (p *Publisher) Publish(ctx context.Context, ev *models.ChangeEvent) error {
	if p == nil || p.w == nil {
		return nil
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal change event: %w", err)
	}
	return p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.Entity + ":" + strconv.FormatInt(ev.ID, 10)),
		Value: payload,
	})
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	if p == nil || p.w == nil {
		return nil
	}
	return p.w.Close()
}
