package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/triplex1/trading-notification-bot/internal/application"
	"github.com/triplex1/trading-notification-bot/internal/domain/strategy"
	"github.com/triplex1/trading-notification-bot/internal/handler"
	"github.com/triplex1/trading-notification-bot/internal/infrastructure/config"
	"github.com/triplex1/trading-notification-bot/internal/infrastructure/exchange"
	"github.com/triplex1/trading-notification-bot/internal/infrastructure/logger"
	"github.com/triplex1/trading-notification-bot/internal/infrastructure/messaging"
	"github.com/triplex1/trading-notification-bot/internal/infrastructure/notification"
)

func main() {
	// 1. 載入配置
	cfg := config.Load()

	// 2. 創建 logger
	log := logger.Must(cfg)
	defer log.Sync()

	log.Info("Starting Trading Notification Bot", map[string]any{
		"environment": cfg.Environment,
		"port":        cfg.Port,
	})

	// 3. 創建 Redis 客戶端（可選：未配置地址則不啟用信號發布）
	var publisher application.SignalPublisher
	if cfg.Redis.Addr != "" {
		redisClient, err := messaging.NewRedisClient(
			cfg.Redis.Addr,
			cfg.Redis.Password,
			cfg.Redis.DB,
			cfg.Redis.PoolSize,
			log,
		)
		if err != nil {
			log.Error("Failed to connect to Redis", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		defer redisClient.Close()

		publisher = messaging.NewRedisSignalPublisher(redisClient, log)
		log.Info("Connected to Redis", map[string]any{"addr": cfg.Redis.Addr})
	}

	// 4. 組裝通知渠道（未配置的自動跳過）
	notifier := buildNotifier(cfg, log)

	// 5. 創建領域層 - 計算器、去重閘門、處理器
	calc := strategy.NewCalculator(
		cfg.Strategy.RiskPerTrade,
		cfg.Strategy.TotalEquity,
		cfg.Strategy.ATRMultiplier,
		cfg.Strategy.FixedSLPercent,
	)
	processor := strategy.NewProcessor(calc, strategy.NewDedupGate(cfg.Strategy.DedupWindowSec))

	// 6. 創建應用層 - SignalService
	signalService := application.NewSignalService(
		processor,
		cfg.Strategy.RiskPerTrade,
		notifier,
		publisher,
		log,
	)

	// 7. 設置 HTTP 路由
	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	webhookHandler := handler.NewWebhookHandler(signalService, cfg.Strategy.WebhookSecret, log)
	healthHandler := handler.NewHealthHandler()
	router.POST("/webhook", webhookHandler.Handle)
	router.GET("/health", healthHandler.Check)
	router.GET("/", healthHandler.Index)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Webhook server failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
	}()

	log.Info("Webhook server listening", map[string]any{
		"port":         cfg.Port,
		"risk":         cfg.Strategy.RiskPerTrade,
		"equity":       cfg.Strategy.TotalEquity,
		"dedup_window": cfg.Strategy.DedupWindowSec,
	})

	// 8. 啟動價格監控（可選）
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var stream *exchange.BinanceStream
	if cfg.Monitor.Enabled {
		monitor := application.NewPriceMonitor(
			exchange.NewPriceFetcher(cfg.Monitor.Exchange),
			notifier,
			cfg.Monitor.Symbol,
			cfg.Monitor.ThresholdAbove,
			cfg.Monitor.ThresholdBelow,
			time.Duration(cfg.Monitor.CheckInterval)*time.Second,
			log,
		)

		if cfg.Monitor.UseStream {
			// 推送模式：行情流直接驅動監控，不輪詢
			stream = exchange.NewBinanceStream(cfg.Monitor.Symbol, func(_ string, price float64) {
				monitor.OnPrice(ctx, price)
			}, log)
			if err := stream.Start(); err != nil {
				log.Error("Failed to start price stream", map[string]any{"error": err.Error()})
				os.Exit(1)
			}
		} else {
			go monitor.Start(ctx)
		}
	}

	// 9. 等待退出信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down Trading Notification Bot...")
	cancel()

	if stream != nil {
		if err := stream.Stop(); err != nil {
			log.Warn("Failed to close price stream", map[string]any{"error": err.Error()})
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", map[string]any{"error": err.Error()})
	}
}

// buildNotifier 按配置組裝通知渠道
func buildNotifier(cfg *config.Config, log logger.Logger) *notification.MultiNotifier {
	var channels []notification.Notifier

	if cfg.Notify.TelegramToken != "" && cfg.Notify.TelegramChatID != "" {
		channels = append(channels, notification.NewTelegramNotifier(
			cfg.Notify.TelegramToken,
			cfg.Notify.TelegramChatID,
		))
	}
	if cfg.Notify.DiscordWebhook != "" {
		channels = append(channels, notification.NewDiscordNotifier(cfg.Notify.DiscordWebhook))
	}
	if cfg.Notify.EmailSMTPHost != "" && cfg.Notify.EmailUser != "" {
		channels = append(channels, notification.NewEmailNotifier(
			cfg.Notify.EmailSMTPHost,
			cfg.Notify.EmailSMTPPort,
			cfg.Notify.EmailUser,
			cfg.Notify.EmailPassword,
			cfg.Notify.EmailTo,
		))
	}

	names := make([]string, 0, len(channels))
	for _, ch := range channels {
		names = append(names, ch.Name())
	}
	log.Info("Notification channels configured", map[string]any{"channels": names})

	return notification.NewMultiNotifier(log, channels...)
}
