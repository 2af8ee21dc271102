package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const coinbaseAPIBase = "https://api.coinbase.com"

// CoinbaseFetcher 從 Coinbase 匯率 API 查詢現貨價格
type CoinbaseFetcher struct {
	baseURL string
	client  *http.Client
}

// NewCoinbaseFetcher 創建 Coinbase 查詢器
func NewCoinbaseFetcher() *CoinbaseFetcher {
	return &CoinbaseFetcher{
		baseURL: coinbaseAPIBase,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// WithBaseURL 覆寫 API 地址（測試用）
func (c *CoinbaseFetcher) WithBaseURL(baseURL string) *CoinbaseFetcher {
	c.baseURL = baseURL
	return c
}

func (c *CoinbaseFetcher) Name() string {
	return "coinbase"
}

// GetCurrentPrice 調用 /v2/exchange-rates
// 接受 BTC-USD 格式；BTCUSDT 形式自動轉換為 BTC-USD
func (c *CoinbaseFetcher) GetCurrentPrice(ctx context.Context, symbol string) (float64, error) {
	base, quote := splitSymbol(symbol)

	endpoint := fmt.Sprintf("%s/v2/exchange-rates?%s", c.baseURL,
		url.Values{"currency": {base}}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("build coinbase request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("coinbase API error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("coinbase API returned status %d", resp.StatusCode)
	}

	var payload struct {
		Data struct {
			Currency string            `json:"currency"`
			Rates    map[string]string `json:"rates"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("parse coinbase response: %w", err)
	}

	rate, ok := payload.Data.Rates[quote]
	if !ok {
		return 0, fmt.Errorf("coinbase response missing rate for %s", quote)
	}

	price, err := strconv.ParseFloat(rate, 64)
	if err != nil {
		return 0, fmt.Errorf("parse coinbase rate %q: %w", rate, err)
	}
	return price, nil
}

// splitSymbol 拆分交易對（BTC-USD 或 BTCUSDT → BTC / USD）
func splitSymbol(symbol string) (base, quote string) {
	if i := strings.Index(symbol, "-"); i > 0 {
		return symbol[:i], symbol[i+1:]
	}
	base = strings.TrimSuffix(strings.TrimSuffix(symbol, "USDT"), "USD")
	if base == "" {
		base = symbol
	}
	return base, "USD"
}
