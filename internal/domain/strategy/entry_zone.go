package strategy

import "math"

// EntryLevel 入場區域標識
type EntryLevel string

const (
	LevelMondayLow    EntryLevel = "ML"  // 週一低點
	LevelWeeklyOpen   EntryLevel = "WO"  // 週開盤價
	LevelMondayHigh   EntryLevel = "MH"  // 週一高點
	LevelPrevWeekHigh EntryLevel = "PWH" // 前週高點
)

// Levels 參考價格水平集合
// 無效欄位視為缺失
type Levels struct {
	MondayLow    FloatField
	MondayMid    FloatField
	MondayHigh   FloatField
	WeeklyOpen   FloatField
	PrevWeekHigh FloatField
}

// 入場區域允許的價格偏差：0.1%
const entryZoneTolerance = 0.001

// ValidateEntryZone 驗證入場條件是否成立（領域服務）
// 規則：
//   - 多單要求 bullish 趨勢，入場區域限 ML / WO
//   - 空單要求 bearish 趨勢，入場區域限 MH / PWH
//   - 價格須在參考水平 0.1% 偏差內
//   - 趨勢不符、區域未知、參考水平缺失一律拒絕
func ValidateEntryZone(action Action, bias TrendBias, level EntryLevel, price float64, levels Levels) bool {
	switch action {
	case ActionBuy:
		if bias != TrendBullish {
			return false
		}
		switch level {
		case LevelMondayLow:
			return priceNearLevel(price, levels.MondayLow)
		case LevelWeeklyOpen:
			return priceNearLevel(price, levels.WeeklyOpen)
		}
	case ActionSell:
		if bias != TrendBearish {
			return false
		}
		switch level {
		case LevelMondayHigh:
			return priceNearLevel(price, levels.MondayHigh)
		case LevelPrevWeekHigh:
			return priceNearLevel(price, levels.PrevWeekHigh)
		}
	}
	return false
}

func priceNearLevel(price float64, ref FloatField) bool {
	level, ok := ref.Get()
	if !ok || level <= 0 {
		return false
	}
	return math.Abs(price-level)/level <= entryZoneTolerance
}
