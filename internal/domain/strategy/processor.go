package strategy

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrDuplicateSignal 去重窗口內的重複信號
var ErrDuplicateSignal = errors.New("duplicate signal within deduplication window")

// ValidationError 必填欄位驗證失敗
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid signal: field %q %s", e.Field, e.Reason)
}

// Processor 信號處理器（編排領域服務）
//
// 流程：欄位驗證 → 去重 → 停損 → 止盈 → 倉位 → 組裝信號。
// 除去重緩存外每次調用無副作用；去重緩存每次被接受的調用恰好變更一次。
type Processor struct {
	calc  *Calculator
	dedup *DedupGate
	clock func() time.Time
}

// NewProcessor 創建信號處理器
func NewProcessor(calc *Calculator, dedup *DedupGate) *Processor {
	return &Processor{
		calc:  calc,
		dedup: dedup,
		clock: time.Now,
	}
}

// WithClock 注入時鐘（測試用）
func (p *Processor) WithClock(clock func() time.Time) *Processor {
	p.clock = clock
	return p
}

// ProcessSignal 處理一條原始信號請求
//
// 返回完整計算的 Signal，或拒絕原因：
//   - *ValidationError: 必填欄位缺失 / 不支持的動作 / 價格非正數
//   - ErrDuplicateSignal: 去重窗口內的重複信號
//
// 內部意外故障在此邊界捕獲，以一般性處理錯誤返回而非崩潰
func (p *Processor) ProcessSignal(payload AlertPayload) (sig Signal, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("signal processing failed: %v", r)
		}
	}()

	// 1. 必填欄位驗證
	if payload.Ticker == "" {
		return Signal{}, &ValidationError{Field: "ticker", Reason: "is required"}
	}

	action := Action(strings.ToLower(payload.Action))
	if action != ActionBuy && action != ActionSell {
		return Signal{}, &ValidationError{Field: "action", Reason: "must be buy or sell"}
	}

	price, ok := payload.Price.Get()
	if !ok || price <= 0 {
		return Signal{}, &ValidationError{Field: "price", Reason: "must be a positive number"}
	}

	// 2. 去重檢查（缺失時間戳默認為當前時間）
	timestamp := payload.Timestamp.String()
	if timestamp == "" {
		timestamp = p.clock().UTC().Format(time.RFC3339)
	}
	if p.dedup.IsDuplicate(payload.Ticker, timestamp) {
		return Signal{}, ErrDuplicateSignal
	}

	entryLevel := EntryLevel(strings.ToUpper(payload.EntryLevel))

	// 3. 停損：顯式提供且可解析時直接使用，否則由計算器派生
	stopLoss, ok := payload.StopLoss.Get()
	if !ok {
		stopLoss = p.calc.CalculateStopLoss(price, payload.ATR, action)
	}

	// 4. 止盈：顯式提供時 TP2 = TP1×1.01，否則按入場區域映射
	var tp1, tp2 float64
	if explicit, ok := payload.TakeProfit.Get(); ok {
		tp1 = explicit
		tp2 = explicit * 1.01
	} else {
		tp1, tp2 = p.calc.CalculateTakeProfit(entryLevel, price, payload.Levels())
	}

	// 5. 倉位大小
	positionSize := p.calc.CalculatePositionSize(price, stopLoss, action)

	// 6. 組裝信號
	return Signal{
		ticker:       payload.Ticker,
		action:       action,
		entryPrice:   price,
		stopLoss:     stopLoss,
		takeProfit1:  tp1,
		takeProfit2:  tp2,
		trendBias:    TrendBias(strings.ToLower(payload.TrendBias)),
		entryLevel:   entryLevel,
		positionSize: positionSize,
		riskAmount:   p.calc.RiskAmount(),
		timestamp:    timestamp,
		processedAt:  p.clock(),
	}, nil
}
