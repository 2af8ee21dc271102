package exchange

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/triplex1/trading-notification-bot/internal/infrastructure/logger"
	"github.com/triplex1/trading-notification-bot/internal/infrastructure/websocket"
)

const binanceWSBase = "wss://stream.binance.com:9443/ws"

// PriceHandler 行情回調
type PriceHandler func(symbol string, price float64)

// miniTickerEvent Binance miniTicker 推送格式
type miniTickerEvent struct {
	EventType string `json:"e"`
	Symbol    string `json:"s"`
	Close     string `json:"c"`
}

// BinanceStream 通過 websocket 訂閱 Binance miniTicker 行情流
// 作為價格監控的推送式數據源，替代 REST 輪詢
type BinanceStream struct {
	client  *websocket.Client
	symbol  string
	handler PriceHandler
	logger  logger.Logger
}

// NewBinanceStream 創建行情流
func NewBinanceStream(symbol string, handler PriceHandler, log logger.Logger) *BinanceStream {
	// 流名稱使用小寫交易對：btcusdt@miniTicker
	url := fmt.Sprintf("%s/%s@miniTicker", binanceWSBase, strings.ToLower(symbol))

	s := &BinanceStream{
		client:  websocket.NewClient(websocket.Config{URL: url}, log),
		symbol:  symbol,
		handler: handler,
		logger:  log,
	}
	s.client.SetMessageHandler(s.onMessage)
	return s
}

// Start 建立連接並開始接收行情
func (s *BinanceStream) Start() error {
	if err := s.client.Connect(); err != nil {
		return fmt.Errorf("connect binance stream for %s: %w", s.symbol, err)
	}
	s.logger.Info("Binance price stream started", map[string]any{"symbol": s.symbol})
	return nil
}

// Stop 關閉行情流
func (s *BinanceStream) Stop() error {
	return s.client.Close()
}

func (s *BinanceStream) onMessage(messageType int, data []byte) error {
	var event miniTickerEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return fmt.Errorf("parse miniTicker event: %w", err)
	}
	if event.EventType != "24hrMiniTicker" {
		return nil
	}

	price, err := strconv.ParseFloat(event.Close, 64)
	if err != nil {
		return fmt.Errorf("parse miniTicker close %q: %w", event.Close, err)
	}

	s.handler(event.Symbol, price)
	return nil
}
