package strategy

// TrendBias 趨勢傾向
type TrendBias string

const (
	TrendBullish TrendBias = "bullish"
	TrendBearish TrendBias = "bearish"
)

// CheckTrendFilter 基於均線關係判斷趨勢傾向（領域服務）
// 規則：
//   - 價格 > 快線 > 慢線 → bullish
//   - 價格 < 快線 < 慢線 → bearish
//   - 震盪行情退化為價格與快線的比較，避免下游無法處理的中性狀態
func CheckTrendFilter(price, emaFast, emaSlow float64) TrendBias {
	if price > emaFast && emaFast > emaSlow {
		return TrendBullish
	}
	if price < emaFast && emaFast < emaSlow {
		return TrendBearish
	}
	if price > emaFast {
		return TrendBullish
	}
	return TrendBearish
}
