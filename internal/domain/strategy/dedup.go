package strategy

import "sync"

// DedupGate 信號去重閘門
// 記錄每個 ticker 最後一次被接受的信號時間（信號自帶的聲明時間，
// 非到達時間——告警平台的時間戳被視為可信時鐘源）。
//
// 條目只增不刪：增長上限為出現過的不同 ticker 數量，屬於可接受的取捨。
type DedupGate struct {
	mu        sync.Mutex
	lastSeen  map[string]int64 // ticker → 最後接受的 epoch 秒
	windowSec int64
}

// NewDedupGate 創建去重閘門
func NewDedupGate(windowSec int64) *DedupGate {
	return &DedupGate{
		lastSeen:  make(map[string]int64),
		windowSec: windowSec,
	}
}

// IsDuplicate 檢查並登記信號時間
//
// 狀態轉移（每 ticker）：
//   - 時間戳解析失敗 → 放行，不更新（fail-open）
//   - 首次出現 → 登記，放行
//   - 距上次接受 < window → 重複，拒絕且不更新
//   - 其他 → 更新登記時間，放行
//
// 鎖覆蓋整個 read-check-write 序列，並發請求下同一 ticker
// 不會同時觀察到「未出現」狀態
func (g *DedupGate) IsDuplicate(ticker, rawTimestamp string) bool {
	signalTime, ok := ParseSignalTime(rawTimestamp)
	if !ok {
		return false
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if prior, seen := g.lastSeen[ticker]; seen {
		if signalTime-prior < g.windowSec {
			return true
		}
	}

	g.lastSeen[ticker] = signalTime
	return false
}

// LastSeen 返回 ticker 最後接受時間（測試與狀態查詢用）
func (g *DedupGate) LastSeen(ticker string) (int64, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	t, ok := g.lastSeen[ticker]
	return t, ok
}
