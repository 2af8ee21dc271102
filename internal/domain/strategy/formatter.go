package strategy

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatSignalMessage 將信號格式化為通知消息（純函數）
// 給定相同的 Signal 與風險百分比，輸出完全一致
func FormatSignalMessage(sig Signal, riskPerTrade float64) string {
	actionEmoji := "🟢"
	if sig.Action() == ActionSell {
		actionEmoji = "🔴"
	}
	trendEmoji := "📈"
	if sig.TrendBias() != TrendBullish {
		trendEmoji = "📉"
	}

	entryLevel := string(sig.EntryLevel())
	if entryLevel == "" {
		entryLevel = "N/A"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s TRADE SIGNAL - %s\n\n", actionEmoji, sig.Ticker())
	fmt.Fprintf(&b, "Action: %s\n", strings.ToUpper(string(sig.Action())))
	fmt.Fprintf(&b, "Entry Price: $%s\n", formatMoney(sig.EntryPrice()))
	fmt.Fprintf(&b, "Entry Level: %s\n", entryLevel)
	fmt.Fprintf(&b, "Trend: %s %s\n\n", trendEmoji, strings.ToUpper(string(sig.TrendBias())))
	fmt.Fprintf(&b, "Stop Loss: $%s\n", formatMoney(sig.StopLoss()))
	fmt.Fprintf(&b, "Take Profit 1: $%s\n", formatMoney(sig.TakeProfit1()))
	fmt.Fprintf(&b, "Take Profit 2: $%s\n\n", formatMoney(sig.TakeProfit2()))
	fmt.Fprintf(&b, "Position Size: %.8f\n", sig.PositionSize())
	fmt.Fprintf(&b, "Risk Amount: $%s (%s%% of equity)\n\n",
		formatMoney(sig.RiskAmount()),
		strconv.FormatFloat(riskPerTrade, 'f', -1, 64))
	fmt.Fprintf(&b, "Time: %s", sig.Timestamp())

	return b.String()
}

// formatMoney 千分位 + 兩位小數（45000 → "45,000.00"）
func formatMoney(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	intPart := s[:len(s)-3]
	fracPart := s[len(s)-3:]

	var b strings.Builder
	b.WriteString(sign)
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	b.WriteString(fracPart)

	return b.String()
}
