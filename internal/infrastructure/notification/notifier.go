package notification

import (
	"context"

	"github.com/triplex1/trading-notification-bot/internal/infrastructure/logger"
)

// Notifier 通知渠道介面
// 引擎只負責交付格式化後的消息，投遞結果不回傳引擎（fire-and-forget）
type Notifier interface {
	Name() string
	Send(ctx context.Context, message string) error
}

// MultiNotifier 將消息扇出到所有已配置的渠道
// 單個渠道失敗只記錄日誌，不影響其他渠道
type MultiNotifier struct {
	channels []Notifier
	logger   logger.Logger
}

// NewMultiNotifier 創建扇出通知器
func NewMultiNotifier(log logger.Logger, channels ...Notifier) *MultiNotifier {
	return &MultiNotifier{
		channels: channels,
		logger:   log,
	}
}

func (m *MultiNotifier) Name() string {
	return "multi"
}

// Send 嘗試所有渠道；沒有渠道配置時僅記錄消息
func (m *MultiNotifier) Send(ctx context.Context, message string) error {
	if len(m.channels) == 0 {
		m.logger.Warn("⚠️  No notification channel configured", map[string]any{
			"message": message,
		})
		return nil
	}

	for _, ch := range m.channels {
		if err := ch.Send(ctx, message); err != nil {
			m.logger.Error("Notification delivery failed", map[string]any{
				"channel": ch.Name(),
				"error":   err.Error(),
			})
			continue
		}
		m.logger.Debug("Notification delivered", map[string]any{
			"channel": ch.Name(),
		})
	}
	return nil
}
