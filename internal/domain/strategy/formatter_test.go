package strategy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestSignal(t *testing.T) Signal {
	t.Helper()
	proc := NewProcessor(NewCalculator(1.0, 10000, 1.0, 0), NewDedupGate(900)).
		WithClock(func() time.Time { return time.Unix(1700000000, 0).UTC() })

	sig, err := proc.ProcessSignal(AlertPayload{
		Ticker: "BTCUSDT", Action: "buy",
		Price:      NewFloatField(45000),
		StopLoss:   NewFloatField(44500),
		TakeProfit: NewFloatField(45500),
		TrendBias:  "bullish",
		EntryLevel: "ML",
		Timestamp:  "1700000000",
	})
	require.NoError(t, err)
	return sig
}

// TestFormatSignalMessage 消息內容
func TestFormatSignalMessage(t *testing.T) {
	msg := FormatSignalMessage(buildTestSignal(t), 1.0)

	assert.Contains(t, msg, "🟢 TRADE SIGNAL - BTCUSDT")
	assert.Contains(t, msg, "Action: BUY")
	assert.Contains(t, msg, "Entry Price: $45,000.00")
	assert.Contains(t, msg, "Entry Level: ML")
	assert.Contains(t, msg, "Trend: 📈 BULLISH")
	assert.Contains(t, msg, "Stop Loss: $44,500.00")
	assert.Contains(t, msg, "Take Profit 1: $45,500.00")
	assert.Contains(t, msg, "Position Size: 0.20000000")
	assert.Contains(t, msg, "Risk Amount: $100.00 (1% of equity)")
	assert.Contains(t, msg, "Time: 1700000000")
}

// TestFormatSignalMessage_Idempotent 同一信號兩次格式化輸出一致
func TestFormatSignalMessage_Idempotent(t *testing.T) {
	sig := buildTestSignal(t)
	assert.Equal(t, FormatSignalMessage(sig, 1.0), FormatSignalMessage(sig, 1.0))
}

// TestFormatSignalMessage_ShortSignal 空單使用紅色與看跌標記
func TestFormatSignalMessage_ShortSignal(t *testing.T) {
	proc := NewProcessor(NewCalculator(1.0, 10000, 1.0, 0), NewDedupGate(900))
	sig, err := proc.ProcessSignal(AlertPayload{
		Ticker: "ETHUSDT", Action: "sell",
		Price:     NewFloatField(3000),
		StopLoss:  NewFloatField(3050),
		TrendBias: "bearish",
		Timestamp: "1700000000",
	})
	require.NoError(t, err)

	msg := FormatSignalMessage(sig, 1.0)
	assert.Contains(t, msg, "🔴 TRADE SIGNAL - ETHUSDT")
	assert.Contains(t, msg, "Trend: 📉 BEARISH")
	assert.Contains(t, msg, "Entry Level: N/A")
}

// TestFormatMoney 千分位格式化
func TestFormatMoney(t *testing.T) {
	tests := []struct {
		value    float64
		expected string
	}{
		{45000, "45,000.00"},
		{1234567.891, "1,234,567.89"},
		{999.5, "999.50"},
		{0, "0.00"},
		{-44500, "-44,500.00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, formatMoney(tt.value))
	}
}
