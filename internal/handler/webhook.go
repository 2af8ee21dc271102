package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/triplex1/trading-notification-bot/internal/application"
	"github.com/triplex1/trading-notification-bot/internal/domain/strategy"
	"github.com/triplex1/trading-notification-bot/internal/infrastructure/logger"
)

// WebhookHandler 接收告警平台的 webhook 信號
type WebhookHandler struct {
	service *application.SignalService
	secret  string
	logger  logger.Logger
}

// NewWebhookHandler 創建 webhook 處理器
// secret 為空時跳過請求驗證
func NewWebhookHandler(service *application.SignalService, secret string, log logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		service: service,
		secret:  secret,
		logger:  log,
	}
}

// Handle POST /webhook
// 響應：
//   - 200 處理成功，返回完整信號
//   - 400 欄位驗證失敗或去重窗口內重複
//   - 401 密鑰不匹配
//   - 500 內部處理故障
func (h *WebhookHandler) Handle(c *gin.Context) {
	var payload strategy.AlertPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.logger.Warn("Malformed webhook body", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "error",
			"reason": "invalid JSON body",
		})
		return
	}

	if h.secret != "" && payload.Secret != h.secret {
		h.logger.Warn("❌ Webhook secret mismatch", map[string]any{
			"ticker": payload.Ticker,
		})
		c.JSON(http.StatusUnauthorized, gin.H{
			"status": "error",
			"reason": "unauthorized",
		})
		return
	}

	signal, err := h.service.HandleAlert(c.Request.Context(), payload)
	if err != nil {
		var vErr *strategy.ValidationError
		switch {
		case errors.As(err, &vErr):
			c.JSON(http.StatusBadRequest, gin.H{
				"status": "error",
				"reason": vErr.Error(),
				"field":  vErr.Field,
			})
		case errors.Is(err, strategy.ErrDuplicateSignal):
			c.JSON(http.StatusBadRequest, gin.H{
				"status": "error",
				"reason": "duplicate signal within deduplication window",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"status": "error",
				"reason": "signal processing failed",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"signal": signal,
	})
}
