package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const binanceAPIBase = "https://api.binance.com"

// BinanceFetcher 從 Binance REST API 查詢現貨價格
type BinanceFetcher struct {
	baseURL string
	client  *http.Client
}

// NewBinanceFetcher 創建 Binance 查詢器
func NewBinanceFetcher() *BinanceFetcher {
	return &BinanceFetcher{
		baseURL: binanceAPIBase,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// WithBaseURL 覆寫 API 地址（測試用）
func (b *BinanceFetcher) WithBaseURL(baseURL string) *BinanceFetcher {
	b.baseURL = baseURL
	return b
}

func (b *BinanceFetcher) Name() string {
	return "binance"
}

// GetCurrentPrice 調用 /api/v3/ticker/price
func (b *BinanceFetcher) GetCurrentPrice(ctx context.Context, symbol string) (float64, error) {
	endpoint := fmt.Sprintf("%s/api/v3/ticker/price?%s", b.baseURL,
		url.Values{"symbol": {symbol}}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("build binance request: %w", err)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("binance API error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("binance API returned status %d", resp.StatusCode)
	}

	var ticker struct {
		Symbol string `json:"symbol"`
		Price  string `json:"price"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ticker); err != nil {
		return 0, fmt.Errorf("parse binance response: %w", err)
	}

	price, err := strconv.ParseFloat(ticker.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("parse binance price %q: %w", ticker.Price, err)
	}
	return price, nil
}
