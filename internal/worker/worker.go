package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"asset-tracker/internal/config"
	"asset-tracker/internal/models"
	"asset-tracker/pkg/logger"

	"github.com/segmentio/kafka-go"
)

// Invalidator drops cached lists for an entity.
type Invalidator interface {
	Invalidate(ctx context.Context, entity string)
}

// Run consumes change events and invalidates the cached lists they affect. Every replica
// uses the same consumer group, so writes made by other processes (the seed script,
// other API instances) also clear the shared cache. Run returns when ctx is done.
func Run(ctx context.Context, inv Invalidator) {
	cfg := config.Get()
	if len(cfg.KafkaBroker) == 0 {
		logger.Info(ctx, "Worker disabled (no Kafka brokers)")
		return
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.KafkaBroker,
		Topic:    cfg.KafkaTopic,
		GroupID:  cfg.KafkaGroup,
		MinBytes: 1,
		MaxBytes: 1e6,
	})
	defer reader.Close()

	logger.Info(ctx, "Kafka consumer started", "topic", cfg.KafkaTopic, "group", cfg.KafkaGroup)
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error(ctx, "Worker fetch failed", "error", err)
			continue
		}
		if err := handleMessage(ctx, inv, msg.Value); err != nil {
			// Commit anyway so a bad payload cannot block the partition.
			logger.Error(ctx, "Worker handle failed", "error", err, "payload", string(msg.Value))
		}
		if err := reader.CommitMessages(ctx, msg); err != nil {
			logger.Error(ctx, "Worker commit failed", "error", err)
		}
	}
}

func handleMessage(ctx context.Context, inv Invalidator, payload []byte) error {
	var ev models.ChangeEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return fmt.Errorf("decode change event: %w", err)
	}
	switch ev.Entity {
	case models.EntityAsset, models.EntityCategory:
		inv.Invalidate(ctx, ev.Entity)
		logger.Debug(ctx, "Cache invalidated", "entity", ev.Entity, "action", ev.Action, "id", ev.ID)
	case models.EntityTodo:
		// todos are never cached
	default:
		return fmt.Errorf("unknown entity %q", ev.Entity)
	}
	return nil
}
