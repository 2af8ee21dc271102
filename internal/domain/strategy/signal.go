package strategy

import (
	"encoding/json"
	"time"
)

// Action 信號動作類型
type Action string

const (
	ActionBuy  Action = "buy"
	ActionSell Action = "sell"
)

// Signal 交易信號值對象
// 特點：不可變、包含完整的風險參數
type Signal struct {
	ticker       string
	action       Action
	entryPrice   float64
	stopLoss     float64
	takeProfit1  float64
	takeProfit2  float64
	trendBias    TrendBias
	entryLevel   EntryLevel
	positionSize float64
	riskAmount   float64
	timestamp    string
	processedAt  time.Time
}

// Getters
func (s Signal) Ticker() string         { return s.ticker }
func (s Signal) Action() Action         { return s.action }
func (s Signal) EntryPrice() float64    { return s.entryPrice }
func (s Signal) StopLoss() float64      { return s.stopLoss }
func (s Signal) TakeProfit1() float64   { return s.takeProfit1 }
func (s Signal) TakeProfit2() float64   { return s.takeProfit2 }
func (s Signal) TrendBias() TrendBias   { return s.trendBias }
func (s Signal) EntryLevel() EntryLevel { return s.entryLevel }
func (s Signal) PositionSize() float64  { return s.positionSize }
func (s Signal) RiskAmount() float64    { return s.riskAmount }
func (s Signal) Timestamp() string      { return s.timestamp }
func (s Signal) ProcessedAt() time.Time { return s.processedAt }

// MarshalJSON 自定義 JSON 序列化（用於 HTTP 響應與 Redis 發布）
func (s Signal) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"ticker":        s.ticker,
		"action":        string(s.action),
		"entry_price":   s.entryPrice,
		"stop_loss":     s.stopLoss,
		"tp1":           s.takeProfit1,
		"tp2":           s.takeProfit2,
		"trend_bias":    string(s.trendBias),
		"entry_level":   string(s.entryLevel),
		"position_size": s.positionSize,
		"risk_amount":   s.riskAmount,
		"timestamp":     s.timestamp,
		"processed_at":  s.processedAt.Format(time.RFC3339),
	})
}
