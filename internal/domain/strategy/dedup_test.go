package strategy

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestDedupGate_WindowBehavior 測試去重時間窗口
func TestDedupGate_WindowBehavior(t *testing.T) {
	base := int64(1700000000)

	t.Run("首次信號 - 放行", func(t *testing.T) {
		gate := NewDedupGate(900)
		assert.False(t, gate.IsDuplicate("BTCUSDT", epoch(base)))
	})

	t.Run("窗口內重複（5 分鐘）- 拒絕且不更新", func(t *testing.T) {
		gate := NewDedupGate(900)
		assert.False(t, gate.IsDuplicate("BTCUSDT", epoch(base)))
		assert.True(t, gate.IsDuplicate("BTCUSDT", epoch(base+300)))

		// 登記時間保持首次接受的時間
		last, ok := gate.LastSeen("BTCUSDT")
		assert.True(t, ok)
		assert.Equal(t, base, last)
	})

	t.Run("窗口外（20 分鐘）- 放行且更新", func(t *testing.T) {
		gate := NewDedupGate(900)
		assert.False(t, gate.IsDuplicate("BTCUSDT", epoch(base)))
		assert.False(t, gate.IsDuplicate("BTCUSDT", epoch(base+1200)))

		last, _ := gate.LastSeen("BTCUSDT")
		assert.Equal(t, base+1200, last)
	})

	t.Run("恰好等於窗口長度 - 放行", func(t *testing.T) {
		gate := NewDedupGate(900)
		assert.False(t, gate.IsDuplicate("BTCUSDT", epoch(base)))
		assert.False(t, gate.IsDuplicate("BTCUSDT", epoch(base+900)))
	})

	t.Run("不同 ticker 互不影響", func(t *testing.T) {
		gate := NewDedupGate(900)
		assert.False(t, gate.IsDuplicate("BTCUSDT", epoch(base)))
		assert.False(t, gate.IsDuplicate("ETHUSDT", epoch(base+10)))
	})
}

// TestDedupGate_TimestampFormats 測試時間戳格式支持
func TestDedupGate_TimestampFormats(t *testing.T) {
	t.Run("ISO-8601 帶 Z 後綴", func(t *testing.T) {
		gate := NewDedupGate(900)
		assert.False(t, gate.IsDuplicate("BTCUSDT", "2023-11-14T22:13:20Z"))
		assert.True(t, gate.IsDuplicate("BTCUSDT", "2023-11-14T22:18:20Z"))
	})

	t.Run("epoch 與 ISO-8601 混用", func(t *testing.T) {
		gate := NewDedupGate(900)
		assert.False(t, gate.IsDuplicate("BTCUSDT", "2023-11-14T22:13:20Z")) // 1700000000
		assert.True(t, gate.IsDuplicate("BTCUSDT", epoch(1700000300)))
	})

	t.Run("解析失敗 - fail-open 放行且不登記", func(t *testing.T) {
		gate := NewDedupGate(900)
		assert.False(t, gate.IsDuplicate("BTCUSDT", "not-a-timestamp"))
		assert.False(t, gate.IsDuplicate("BTCUSDT", "not-a-timestamp"))

		_, ok := gate.LastSeen("BTCUSDT")
		assert.False(t, ok)
	})
}

// TestDedupGate_Concurrent 並發下同一 ticker 只會被接受一次
func TestDedupGate_Concurrent(t *testing.T) {
	gate := NewDedupGate(900)
	ts := epoch(1700000000)

	const workers = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if !gate.IsDuplicate("BTCUSDT", ts) {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, admitted)
}

// TestParseSignalTime 測試時間戳解析
func TestParseSignalTime(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected int64
		ok       bool
	}{
		{name: "epoch 秒", raw: "1700000000", expected: 1700000000, ok: true},
		{name: "RFC3339 UTC", raw: "2023-11-14T22:13:20Z", expected: 1700000000, ok: true},
		{name: "RFC3339 帶時區偏移", raw: "2023-11-15T00:13:20+02:00", expected: 1700000000, ok: true},
		{name: "無時區 ISO-8601", raw: "2023-11-14T22:13:20", expected: 1700000000, ok: true},
		{name: "空字串", raw: "", ok: false},
		{name: "垃圾輸入", raw: "yesterday", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseSignalTime(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func epoch(sec int64) string {
	return strconv.FormatInt(sec, 10)
}
