package strategy

import "github.com/shopspring/decimal"

// Calculator 風險參數計算器（領域服務）
// 特點：無狀態、純函數、可獨立測試
type Calculator struct {
	riskPerTrade   float64 // 每筆交易風險百分比（1.0 = 1%）
	totalEquity    float64 // 帳戶總權益
	atrMultiplier  float64 // ATR 停損乘數
	fixedSLPercent float64 // 固定停損百分比（0 = 停用）
}

// NewCalculator 創建計算器（工廠方法）
func NewCalculator(riskPerTrade, totalEquity, atrMultiplier, fixedSLPercent float64) *Calculator {
	return &Calculator{
		riskPerTrade:   riskPerTrade,
		totalEquity:    totalEquity,
		atrMultiplier:  atrMultiplier,
		fixedSLPercent: fixedSLPercent,
	}
}

// CalculateTakeProfit 根據入場區域計算 TP1 / TP2
//
// 映射關係：
//
//	ML  → (MM, MH)    WO  → (MM, MH)
//	MH  → (MM, ML)    PWH → (MH, MM)
//
// 參考水平缺失或區域未知時回退為 entry×1.01 / entry×1.02。
// 已知限制：百分比回退始終高於入場價（偏多），空單呼叫方
// 必須提供真實參考水平才能避免此偏差。
func (c *Calculator) CalculateTakeProfit(level EntryLevel, entryPrice float64, levels Levels) (float64, float64) {
	var tp1, tp2 FloatField

	switch level {
	case LevelMondayLow, LevelWeeklyOpen:
		tp1, tp2 = levels.MondayMid, levels.MondayHigh
	case LevelMondayHigh:
		tp1, tp2 = levels.MondayMid, levels.MondayLow
	case LevelPrevWeekHigh:
		tp1, tp2 = levels.MondayHigh, levels.MondayMid
	}

	target1, ok1 := tp1.Get()
	if !ok1 || target1 <= 0 {
		target1 = entryPrice * 1.01
	}
	target2, ok2 := tp2.Get()
	if !ok2 || target2 <= 0 {
		target2 = entryPrice * 1.02
	}

	return target1, target2
}

// CalculateStopLoss 計算停損價格
// 優先級：固定百分比 > ATR 乘數 > 默認 1%
// 確定性、全函數、無失敗情況
func (c *Calculator) CalculateStopLoss(entryPrice float64, atr FloatField, action Action) float64 {
	if c.fixedSLPercent > 0 {
		if action == ActionBuy {
			return entryPrice * (1 - c.fixedSLPercent/100)
		}
		return entryPrice * (1 + c.fixedSLPercent/100)
	}

	if atrValue, ok := atr.Get(); ok && atrValue > 0 {
		if action == ActionBuy {
			return entryPrice - atrValue*c.atrMultiplier
		}
		return entryPrice + atrValue*c.atrMultiplier
	}

	if action == ActionBuy {
		return entryPrice * 0.99
	}
	return entryPrice * 1.01
}

// CalculatePositionSize 基於權益風險百分比計算倉位大小
//
// 單位風險 = entry − stop（多單）或 stop − entry（空單）。
// 單位風險 ≤ 0 時返回 0，防止停損方向錯誤導致無限槓桿。
// ⭐ 使用 decimal 計算並保留 8 位小數，匹配加密貨幣最小交易增量
func (c *Calculator) CalculatePositionSize(entryPrice, stopLoss float64, action Action) float64 {
	var riskPerUnit float64
	if action == ActionBuy {
		riskPerUnit = entryPrice - stopLoss
	} else {
		riskPerUnit = stopLoss - entryPrice
	}

	if riskPerUnit <= 0 {
		return 0
	}

	sizeD := decimal.NewFromFloat(c.RiskAmount()).
		Div(decimal.NewFromFloat(riskPerUnit)).
		Round(8)
	return sizeD.InexactFloat64()
}

// RiskAmount 每筆交易的風險金額（帳戶貨幣單位）
func (c *Calculator) RiskAmount() float64 {
	riskD := decimal.NewFromFloat(c.totalEquity).
		Mul(decimal.NewFromFloat(c.riskPerTrade)).
		Div(decimal.NewFromInt(100))
	return riskD.InexactFloat64()
}

// RiskPerTrade 配置的風險百分比（格式化消息用）
func (c *Calculator) RiskPerTrade() float64 {
	return c.riskPerTrade
}
