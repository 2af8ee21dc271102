package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/triplex1/trading-notification-bot/internal/domain/strategy"
	"github.com/triplex1/trading-notification-bot/internal/infrastructure/logger"
)

// RedisSignalPublisher implements the SignalPublisher port from application layer
type RedisSignalPublisher struct {
	client *RedisClient
	logger logger.Logger
}

// NewRedisSignalPublisher creates a new RedisSignalPublisher
func NewRedisSignalPublisher(client *RedisClient, log logger.Logger) *RedisSignalPublisher {
	return &RedisSignalPublisher{
		client: client,
		logger: log,
	}
}

// Publish implements application.SignalPublisher interface
// Publishes signal to Redis Pub/Sub channel: signals.{ticker}
func (p *RedisSignalPublisher) Publish(ctx context.Context, signal strategy.Signal) error {
	channel := fmt.Sprintf("signals.%s", signal.Ticker())

	// Signal already implements MarshalJSON, serialize directly
	data, err := json.Marshal(signal)
	if err != nil {
		return fmt.Errorf("failed to marshal signal: %w", err)
	}

	// Publish to Redis
	if err := p.client.Client().Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish signal to channel %s: %w", channel, err)
	}

	p.logger.Info("Signal published", map[string]any{
		"channel": channel,
		"action":  signal.Action(),
		"entry":   signal.EntryPrice(),
		"size":    signal.PositionSize(),
	})

	return nil
}
