package application

import (
	"context"
	"time"

	"github.com/triplex1/trading-notification-bot/internal/domain/strategy"
	"github.com/triplex1/trading-notification-bot/internal/infrastructure/logger"
	"github.com/triplex1/trading-notification-bot/internal/infrastructure/notification"
)

// SignalPublisher 信號發布器介面（端口）
// 應用層定義介面，基礎設施層實現
type SignalPublisher interface {
	Publish(ctx context.Context, signal strategy.Signal) error
}

// SignalService 信號應用服務
// 職責：
// 1. 編排領域對象（處理器、格式化器）
// 2. 處理 webhook 信號用例流程
// 3. 協調基礎設施（通知渠道、發布器）
type SignalService struct {
	processor    *strategy.Processor
	riskPerTrade float64
	notifier     *notification.MultiNotifier
	publisher    SignalPublisher
	logger       logger.Logger
}

// NewSignalService 創建信號服務
// publisher 可為 nil（未配置 Redis 時）
func NewSignalService(
	processor *strategy.Processor,
	riskPerTrade float64,
	notifier *notification.MultiNotifier,
	publisher SignalPublisher,
	logger logger.Logger,
) *SignalService {
	return &SignalService{
		processor:    processor,
		riskPerTrade: riskPerTrade,
		notifier:     notifier,
		publisher:    publisher,
		logger:       logger,
	}
}

// HandleAlert 處理 webhook 告警用例
// 這是應用層的入口方法
func (s *SignalService) HandleAlert(ctx context.Context, payload strategy.AlertPayload) (strategy.Signal, error) {
	// 1. 調用領域邏輯生成信號
	signal, err := s.processor.ProcessSignal(payload)
	if err != nil {
		s.logger.Warn("Signal rejected", map[string]any{
			"error":  err.Error(),
			"ticker": payload.Ticker,
		})
		return strategy.Signal{}, err
	}

	// 2. 入場區域檢查僅作提示，不攔截信號
	if level := signal.EntryLevel(); level != "" {
		inZone := strategy.ValidateEntryZone(
			signal.Action(),
			signal.TrendBias(),
			level,
			signal.EntryPrice(),
			payload.Levels(),
		)
		if !inZone {
			s.logger.Warn("⚠️  Entry price outside expected zone", map[string]any{
				"ticker": signal.Ticker(),
				"level":  level,
				"price":  signal.EntryPrice(),
			})
		}
	}

	s.logger.Info("Signal generated", map[string]any{
		"ticker":    signal.Ticker(),
		"action":    string(signal.Action()),
		"entry":     signal.EntryPrice(),
		"stop_loss": signal.StopLoss(),
		"size":      signal.PositionSize(),
	})

	// 3. 通知與發布不阻塞 webhook 響應
	message := strategy.FormatSignalMessage(signal, s.riskPerTrade)
	go s.dispatch(message, signal)

	return signal, nil
}

// dispatch 將信號送往所有通知渠道與發布器
func (s *SignalService) dispatch(message string, signal strategy.Signal) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.notifier.Send(ctx, message); err != nil {
		s.logger.Error("Failed to send notifications", map[string]any{
			"error":  err.Error(),
			"ticker": signal.Ticker(),
		})
	}

	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, signal); err != nil {
		s.logger.Error("Failed to publish signal", map[string]any{
			"error":  err.Error(),
			"ticker": signal.Ticker(),
		})
	}
}
