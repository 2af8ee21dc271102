package exchange

import (
	"context"
	"strings"
)

// PriceFetcher 現貨價格查詢介面
// 引擎本身不抓取價格，行情查詢只服務於價格監控
type PriceFetcher interface {
	Name() string
	GetCurrentPrice(ctx context.Context, symbol string) (float64, error)
}

// NewPriceFetcher 根據交易所名稱創建查詢器
// 不認識的名稱回退到 Binance
func NewPriceFetcher(exchange string) PriceFetcher {
	switch strings.ToLower(exchange) {
	case "coinbase":
		return NewCoinbaseFetcher()
	default:
		return NewBinanceFetcher()
	}
}
