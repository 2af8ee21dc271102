package strategy

import "testing"

// TestValidateEntryZone 測試入場區域驗證
func TestValidateEntryZone(t *testing.T) {
	levels := Levels{
		MondayLow:    NewFloatField(44000),
		MondayMid:    NewFloatField(45000),
		MondayHigh:   NewFloatField(46000),
		WeeklyOpen:   NewFloatField(44500),
		PrevWeekHigh: NewFloatField(46500),
	}

	tests := []struct {
		name     string
		action   Action
		bias     TrendBias
		level    EntryLevel
		price    float64
		levels   Levels
		expected bool
	}{
		{
			name:   "多單在 ML 附近 - 通過",
			action: ActionBuy, bias: TrendBullish, level: LevelMondayLow,
			price: 44010, levels: levels, expected: true,
		},
		{
			name:   "多單在 WO 附近 - 通過",
			action: ActionBuy, bias: TrendBullish, level: LevelWeeklyOpen,
			price: 44500, levels: levels, expected: true,
		},
		{
			name:   "多單偏離 ML 超過 0.1% - 拒絕",
			action: ActionBuy, bias: TrendBullish, level: LevelMondayLow,
			price: 44100, levels: levels, expected: false,
		},
		{
			name:   "多單趨勢為 bearish - 拒絕",
			action: ActionBuy, bias: TrendBearish, level: LevelMondayLow,
			price: 44000, levels: levels, expected: false,
		},
		{
			name:   "多單在空頭區域 MH - 拒絕",
			action: ActionBuy, bias: TrendBullish, level: LevelMondayHigh,
			price: 46000, levels: levels, expected: false,
		},
		{
			name:   "空單在 MH 附近 - 通過",
			action: ActionSell, bias: TrendBearish, level: LevelMondayHigh,
			price: 45990, levels: levels, expected: true,
		},
		{
			name:   "空單在 PWH 附近 - 通過",
			action: ActionSell, bias: TrendBearish, level: LevelPrevWeekHigh,
			price: 46500, levels: levels, expected: true,
		},
		{
			name:   "空單趨勢為 bullish - 拒絕",
			action: ActionSell, bias: TrendBullish, level: LevelMondayHigh,
			price: 46000, levels: levels, expected: false,
		},
		{
			name:   "參考水平缺失 - 拒絕",
			action: ActionBuy, bias: TrendBullish, level: LevelMondayLow,
			price: 44000, levels: Levels{}, expected: false,
		},
		{
			name:   "未知入場區域 - 拒絕",
			action: ActionBuy, bias: TrendBullish, level: EntryLevel("XX"),
			price: 44000, levels: levels, expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateEntryZone(tt.action, tt.bias, tt.level, tt.price, tt.levels)
			if result != tt.expected {
				t.Errorf("ValidateEntryZone() = %v, want %v", result, tt.expected)
			}
		})
	}
}
