package exchange

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBinanceFetcher_GetCurrentPrice 測試 Binance 價格查詢
func TestBinanceFetcher_GetCurrentPrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/ticker/price", r.URL.Path)
		assert.Equal(t, "BTCUSDT", r.URL.Query().Get("symbol"))
		w.Write([]byte(`{"symbol":"BTCUSDT","price":"45123.45000000"}`))
	}))
	defer server.Close()

	fetcher := NewBinanceFetcher().WithBaseURL(server.URL)
	price, err := fetcher.GetCurrentPrice(context.Background(), "BTCUSDT")

	require.NoError(t, err)
	assert.Equal(t, 45123.45, price)
}

// TestBinanceFetcher_APIError 非 200 響應報錯
func TestBinanceFetcher_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	fetcher := NewBinanceFetcher().WithBaseURL(server.URL)
	_, err := fetcher.GetCurrentPrice(context.Background(), "BTCUSDT")
	assert.Error(t, err)
}

// TestCoinbaseFetcher_GetCurrentPrice 測試 Coinbase 匯率查詢與符號轉換
func TestCoinbaseFetcher_GetCurrentPrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/exchange-rates", r.URL.Path)
		assert.Equal(t, "BTC", r.URL.Query().Get("currency"))
		w.Write([]byte(`{"data":{"currency":"BTC","rates":{"USD":"45000.12","EUR":"41000"}}}`))
	}))
	defer server.Close()

	fetcher := NewCoinbaseFetcher().WithBaseURL(server.URL)

	// BTCUSDT 自動轉換為 BTC/USD
	price, err := fetcher.GetCurrentPrice(context.Background(), "BTCUSDT")
	require.NoError(t, err)
	assert.Equal(t, 45000.12, price)

	// BTC-USD 格式直接拆分
	price, err = fetcher.GetCurrentPrice(context.Background(), "BTC-USD")
	require.NoError(t, err)
	assert.Equal(t, 45000.12, price)
}

// TestNewPriceFetcher 交易所選擇與回退
func TestNewPriceFetcher(t *testing.T) {
	assert.Equal(t, "binance", NewPriceFetcher("binance").Name())
	assert.Equal(t, "coinbase", NewPriceFetcher("Coinbase").Name())
	assert.Equal(t, "binance", NewPriceFetcher("unknown").Name())
}

// TestSplitSymbol 交易對拆分
func TestSplitSymbol(t *testing.T) {
	tests := []struct {
		symbol string
		base   string
		quote  string
	}{
		{"BTC-USD", "BTC", "USD"},
		{"BTCUSDT", "BTC", "USD"},
		{"ETHUSD", "ETH", "USD"},
		{"SOL-EUR", "SOL", "EUR"},
	}
	for _, tt := range tests {
		base, quote := splitSymbol(tt.symbol)
		assert.Equal(t, tt.base, base)
		assert.Equal(t, tt.quote, quote)
	}
}
