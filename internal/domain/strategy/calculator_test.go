package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestCalculator_CalculateTakeProfit 測試止盈映射
func TestCalculator_CalculateTakeProfit(t *testing.T) {
	calc := NewCalculator(1.0, 10000, 1.0, 0)

	levels := Levels{
		MondayLow:  NewFloatField(44000),
		MondayMid:  NewFloatField(45000),
		MondayHigh: NewFloatField(46000),
	}

	tests := []struct {
		name        string
		level       EntryLevel
		entryPrice  float64
		levels      Levels
		expectedTP1 float64
		expectedTP2 float64
	}{
		{
			name:  "ML 多單 → (MM, MH)",
			level: LevelMondayLow, entryPrice: 44000, levels: levels,
			expectedTP1: 45000, expectedTP2: 46000,
		},
		{
			name:  "WO 多單 → (MM, MH)",
			level: LevelWeeklyOpen, entryPrice: 44500, levels: levels,
			expectedTP1: 45000, expectedTP2: 46000,
		},
		{
			name:  "MH 空單 → (MM, ML)",
			level: LevelMondayHigh, entryPrice: 46000, levels: levels,
			expectedTP1: 45000, expectedTP2: 44000,
		},
		{
			name:  "PWH 空單 → (MH, MM)",
			level: LevelPrevWeekHigh, entryPrice: 46500, levels: levels,
			expectedTP1: 46000, expectedTP2: 45000,
		},
		{
			name:  "水平缺失 → 百分比回退",
			level: LevelMondayLow, entryPrice: 1000, levels: Levels{},
			expectedTP1: 1010, expectedTP2: 1020,
		},
		{
			name:  "未知區域 → 百分比回退",
			level: EntryLevel(""), entryPrice: 1000, levels: levels,
			expectedTP1: 1010, expectedTP2: 1020,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tp1, tp2 := calc.CalculateTakeProfit(tt.level, tt.entryPrice, tt.levels)
			assert.InDelta(t, tt.expectedTP1, tp1, 1e-9)
			assert.InDelta(t, tt.expectedTP2, tp2, 1e-9)
		})
	}
}

// TestCalculator_CalculateStopLoss 測試停損優先級
func TestCalculator_CalculateStopLoss(t *testing.T) {
	t.Run("固定百分比優先", func(t *testing.T) {
		calc := NewCalculator(1.0, 10000, 1.0, 2.0) // 2% 固定停損

		sl := calc.CalculateStopLoss(1000, NewFloatField(50), ActionBuy)
		assert.InDelta(t, 980.0, sl, 1e-9)

		sl = calc.CalculateStopLoss(1000, NewFloatField(50), ActionSell)
		assert.InDelta(t, 1020.0, sl, 1e-9)
	})

	t.Run("ATR 乘數", func(t *testing.T) {
		calc := NewCalculator(1.0, 10000, 1.5, 0)

		sl := calc.CalculateStopLoss(45000, NewFloatField(500), ActionBuy)
		assert.InDelta(t, 44250.0, sl, 1e-9)

		sl = calc.CalculateStopLoss(3000, NewFloatField(50), ActionSell)
		assert.InDelta(t, 3075.0, sl, 1e-9)
	})

	t.Run("默認 1% 回退", func(t *testing.T) {
		calc := NewCalculator(1.0, 10000, 1.0, 0)

		sl := calc.CalculateStopLoss(45000, FloatField{}, ActionBuy)
		assert.InDelta(t, 44550.0, sl, 1e-9)

		sl = calc.CalculateStopLoss(3000, FloatField{}, ActionSell)
		assert.InDelta(t, 3030.0, sl, 1e-9)
	})
}

// TestCalculator_CalculatePositionSize 測試倉位計算
func TestCalculator_CalculatePositionSize(t *testing.T) {
	calc := NewCalculator(1.0, 10000, 1.0, 0) // 風險金額 100

	t.Run("多單", func(t *testing.T) {
		// 100 / (45000 - 44500) = 0.2
		size := calc.CalculatePositionSize(45000, 44500, ActionBuy)
		assert.Equal(t, 0.2, size)
	})

	t.Run("空單", func(t *testing.T) {
		// 100 / (3050 - 3000) = 2.0
		size := calc.CalculatePositionSize(3000, 3050, ActionSell)
		assert.Equal(t, 2.0, size)
	})

	t.Run("8 位小數捨入", func(t *testing.T) {
		// 100 / 3 = 33.33333333...
		size := calc.CalculatePositionSize(6, 3, ActionBuy)
		assert.Equal(t, 33.33333333, size)
	})

	t.Run("多單停損在入場價之上 → 0", func(t *testing.T) {
		size := calc.CalculatePositionSize(45000, 45500, ActionBuy)
		assert.Equal(t, 0.0, size)
	})

	t.Run("空單停損在入場價之下 → 0", func(t *testing.T) {
		size := calc.CalculatePositionSize(3000, 2950, ActionSell)
		assert.Equal(t, 0.0, size)
	})

	t.Run("停損等於入場價 → 0", func(t *testing.T) {
		size := calc.CalculatePositionSize(45000, 45000, ActionBuy)
		assert.Equal(t, 0.0, size)
	})
}

// TestCalculator_RiskAmount 測試風險金額
func TestCalculator_RiskAmount(t *testing.T) {
	calc := NewCalculator(1.5, 20000, 1.0, 0)
	assert.Equal(t, 300.0, calc.RiskAmount())
}
