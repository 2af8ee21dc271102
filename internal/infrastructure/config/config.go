package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string
	Strategy    StrategyConfig
	Redis       RedisConfig
	Monitor     MonitorConfig
	Notify      NotifyConfig
}

// StrategyConfig 策略配置
// 進程啟動時載入一次，生命週期內不可變
type StrategyConfig struct {
	RiskPerTrade   float64 // 每筆交易風險百分比（1.0 = 1%）
	TotalEquity    float64 // 帳戶總權益
	ATRPeriod      int     // ATR 回溯周期
	ATRMultiplier  float64 // ATR 停損乘數
	FixedSLPercent float64 // 固定停損百分比（0 = 停用，改用 ATR）
	DedupWindowSec int64   // 信號去重時間窗口（秒）
	WebhookSecret  string  // webhook 共享密鑰（空 = 不驗證）
}

type RedisConfig struct {
	Addr     string // 空 = 不啟用信號發布
	Password string
	DB       int
	PoolSize int
}

// MonitorConfig 價格監控配置
type MonitorConfig struct {
	Enabled        bool
	Symbol         string
	ThresholdAbove float64
	ThresholdBelow float64
	CheckInterval  int    // 輪詢間隔（秒）
	Exchange       string // binance / coinbase
	UseStream      bool   // true = 使用 websocket 行情流取代輪詢
}

// NotifyConfig 通知渠道配置（未配置的渠道自動跳過）
type NotifyConfig struct {
	TelegramToken  string
	TelegramChatID string
	DiscordWebhook string
	EmailSMTPHost  string
	EmailSMTPPort  int
	EmailUser      string
	EmailPassword  string
	EmailTo        string
}

// Load loads configuration from environment variables and returns it
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found")
	}

	cfg := &Config{
		Port:        getEnvOrDefault("WEBHOOK_PORT", "5000"),
		Environment: getEnvOrDefault("ENVIRONMENT", "development"),
		LogLevel:    getEnvOrDefault("LOG_LEVEL", "info"),
		Strategy: StrategyConfig{
			RiskPerTrade:   getEnvFloatOrDefault("RISK_PER_TRADE", 1.0),
			TotalEquity:    getEnvFloatOrDefault("TOTAL_EQUITY", 10000),
			ATRPeriod:      getEnvIntOrDefault("ATR_PERIOD", 14),
			ATRMultiplier:  getEnvFloatOrDefault("ATR_MULTIPLIER", 1.0),
			FixedSLPercent: getEnvFloatOrDefault("FIXED_SL_PERCENT", 0),
			DedupWindowSec: int64(getEnvIntOrDefault("DEDUP_WINDOW_SEC", 900)),
			WebhookSecret:  getEnvOrDefault("WEBHOOK_SECRET", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnvOrDefault("REDIS_ADDR", ""),
			Password: getEnvOrDefault("REDIS_PASSWORD", ""),
			DB:       getEnvIntOrDefault("REDIS_DB", 0),
			PoolSize: getEnvIntOrDefault("REDIS_POOL_SIZE", 10),
		},
		Monitor: MonitorConfig{
			Enabled:        getEnvBoolOrDefault("ENABLE_MONITOR", false),
			Symbol:         getEnvOrDefault("SYMBOL", "BTCUSDT"),
			ThresholdAbove: getEnvFloatOrDefault("PRICE_THRESHOLD_ABOVE", 50000),
			ThresholdBelow: getEnvFloatOrDefault("PRICE_THRESHOLD_BELOW", 45000),
			CheckInterval:  getEnvIntOrDefault("CHECK_INTERVAL", 60),
			Exchange:       getEnvOrDefault("EXCHANGE", "binance"),
			UseStream:      getEnvBoolOrDefault("MONITOR_USE_STREAM", false),
		},
		Notify: NotifyConfig{
			TelegramToken:  getEnvOrDefault("TELEGRAM_BOT_TOKEN", ""),
			TelegramChatID: getEnvOrDefault("TELEGRAM_CHAT_ID", ""),
			DiscordWebhook: getEnvOrDefault("DISCORD_WEBHOOK_URL", ""),
			EmailSMTPHost:  getEnvOrDefault("EMAIL_SMTP_SERVER", ""),
			EmailSMTPPort:  getEnvIntOrDefault("EMAIL_PORT", 587),
			EmailUser:      getEnvOrDefault("EMAIL_USER", ""),
			EmailPassword:  getEnvOrDefault("EMAIL_PASSWORD", ""),
			EmailTo:        getEnvOrDefault("EMAIL_TO", ""),
		},
	}

	if cfg.Notify.EmailTo == "" {
		cfg.Notify.EmailTo = cfg.Notify.EmailUser
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("⚠️  Invalid integer value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}
	return intValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("⚠️  Invalid float value for %s, using default: %f", key, defaultValue)
		return defaultValue
	}
	return floatValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("⚠️  Invalid boolean value for %s, using default: %t", key, defaultValue)
		return defaultValue
	}
	return boolValue
}
