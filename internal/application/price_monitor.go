package application

import (
	"context"
	"fmt"
	"time"

	"github.com/triplex1/trading-notification-bot/internal/infrastructure/exchange"
	"github.com/triplex1/trading-notification-bot/internal/infrastructure/logger"
	"github.com/triplex1/trading-notification-bot/internal/infrastructure/notification"
)

// PriceMonitor 價格監控服務
// 週期性拉取行情（或接收推送行情），在價格穿越閾值時發送告警
// 邊緣觸發：僅在從一側穿越到另一側時告警，避免重複轟炸
type PriceMonitor struct {
	fetcher        exchange.PriceFetcher
	notifier       *notification.MultiNotifier
	symbol         string
	thresholdAbove float64
	thresholdBelow float64
	interval       time.Duration
	lastPrice      float64
	hasLast        bool
	logger         logger.Logger
}

// NewPriceMonitor 創建價格監控
func NewPriceMonitor(
	fetcher exchange.PriceFetcher,
	notifier *notification.MultiNotifier,
	symbol string,
	thresholdAbove, thresholdBelow float64,
	interval time.Duration,
	logger logger.Logger,
) *PriceMonitor {
	return &PriceMonitor{
		fetcher:        fetcher,
		notifier:       notifier,
		symbol:         symbol,
		thresholdAbove: thresholdAbove,
		thresholdBelow: thresholdBelow,
		interval:       interval,
		logger:         logger,
	}
}

// Start 啟動輪詢循環，阻塞直到 ctx 取消
func (m *PriceMonitor) Start(ctx context.Context) {
	m.logger.Info("Price monitor started", map[string]any{
		"symbol":   m.symbol,
		"above":    m.thresholdAbove,
		"below":    m.thresholdBelow,
		"interval": m.interval.String(),
		"exchange": m.fetcher.Name(),
	})

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			m.logger.Info("Price monitor stopped", map[string]any{"symbol": m.symbol})
			return
		case <-ticker.C:
			m.poll(ctx)
		}
	}
}

func (m *PriceMonitor) poll(ctx context.Context) {
	price, err := m.fetcher.GetCurrentPrice(ctx, m.symbol)
	if err != nil {
		m.logger.Warn("Failed to fetch price", map[string]any{
			"symbol": m.symbol,
			"error":  err.Error(),
		})
		return
	}
	m.OnPrice(ctx, price)
}

// OnPrice 處理一次價格更新，推送行情流模式下由流回調直接調用
func (m *PriceMonitor) OnPrice(ctx context.Context, price float64) {
	alerts := m.CheckConditions(price)
	for _, alert := range alerts {
		m.logger.Info("Price alert triggered", map[string]any{
			"symbol": m.symbol,
			"price":  price,
		})
		if err := m.notifier.Send(ctx, alert); err != nil {
			m.logger.Error("Failed to send price alert", map[string]any{
				"error": err.Error(),
			})
		}
	}
}

// CheckConditions 判斷本次價格是否穿越閾值，返回要發送的告警消息
func (m *PriceMonitor) CheckConditions(price float64) []string {
	defer func() {
		m.lastPrice = price
		m.hasLast = true
	}()

	// 首個樣本僅建立基線
	if !m.hasLast {
		return nil
	}

	var alerts []string
	if m.thresholdAbove > 0 && m.lastPrice < m.thresholdAbove && price >= m.thresholdAbove {
		alerts = append(alerts, fmt.Sprintf(
			"🚀 %s price crossed above %.2f (current: %.2f)",
			m.symbol, m.thresholdAbove, price,
		))
	}
	if m.thresholdBelow > 0 && m.lastPrice > m.thresholdBelow && price <= m.thresholdBelow {
		alerts = append(alerts, fmt.Sprintf(
			"📉 %s price dropped below %.2f (current: %.2f)",
			m.symbol, m.thresholdBelow, price,
		))
	}
	return alerts
}
