package strategy

import (
	"strconv"
	"strings"
	"time"
)

// FloatField 可選數值欄位
// 外部告警平台的欄位可能是字串（"45000.00"）也可能是數字（45000），
// 解析失敗不報錯，標記為無效後由計算器提供回退值
type FloatField struct {
	value float64
	valid bool
}

// NewFloatField 創建有效的數值欄位（測試與內部構造用）
func NewFloatField(value float64) FloatField {
	return FloatField{value: value, valid: true}
}

// UnmarshalJSON 實現寬鬆解析：字串或數字都接受，其他情況標記無效
func (f *FloatField) UnmarshalJSON(data []byte) error {
	f.value, f.valid = 0, false

	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)
	if s == "" {
		return nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}

	f.value, f.valid = v, true
	return nil
}

// Get 返回數值與有效標記
func (f FloatField) Get() (float64, bool) {
	return f.value, f.valid
}

// Valid 欄位是否攜帶可用數值
func (f FloatField) Valid() bool {
	return f.valid
}

// StringField 接受字串或數字的 JSON 欄位（用於 timestamp）
type StringField string

// UnmarshalJSON 保留原始內容，僅剝除字串引號
func (s *StringField) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*s = ""
		return nil
	}
	*s = StringField(strings.Trim(raw, `"`))
	return nil
}

func (s StringField) String() string {
	return string(s)
}

// AlertPayload 告警平台發來的原始信號請求
// 信任邊界上的類型化中間表示：欄位缺失或格式錯誤不會在深層計算中引發異常
type AlertPayload struct {
	Ticker     string      `json:"ticker"`
	Action     string      `json:"action"`
	Price      FloatField  `json:"price"`
	StopLoss   FloatField  `json:"sl"`
	TakeProfit FloatField  `json:"tp"`
	TrendBias  string      `json:"trend_bias"`
	Timestamp  StringField `json:"timestamp"`
	EntryLevel string      `json:"entry_level"`
	ATR        FloatField  `json:"atr"`
	Secret     string      `json:"secret"`

	// 參考價格水平（可選）
	MondayLow    FloatField `json:"ml"`
	MondayMid    FloatField `json:"mm"`
	MondayHigh   FloatField `json:"mh"`
	WeeklyOpen   FloatField `json:"wo"`
	PrevWeekHigh FloatField `json:"pwh"`
}

// Levels 提取參考價格水平集合
func (p AlertPayload) Levels() Levels {
	return Levels{
		MondayLow:    p.MondayLow,
		MondayMid:    p.MondayMid,
		MondayHigh:   p.MondayHigh,
		WeeklyOpen:   p.WeeklyOpen,
		PrevWeekHigh: p.PrevWeekHigh,
	}
}

// 支持的 ISO-8601 佈局（依序嘗試）
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseSignalTime 解析信號時間戳為 epoch 秒
// 接受純數字（epoch 秒）或 ISO-8601 字串（尾部 "Z" 視為 UTC）
// 返回 false 表示解析失敗，去重閘門對此保持放行（fail-open）
func ParseSignalTime(raw string) (int64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}

	if epoch, err := strconv.ParseInt(s, 10, 64); err == nil {
		return epoch, true
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Unix(), true
		}
	}

	return 0, false
}
