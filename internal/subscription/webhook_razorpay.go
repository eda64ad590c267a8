package subscription

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stardust-edu/career-advisor-backend/internal/platform/config"
	"github.com/stardust-edu/career-advisor-backend/pkg/signature"
)

// razorpayEvent 只反序列化我们关心的字段
type razorpayEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID     string            `json:"id"`
				Notes  map[string]string `json:"notes"`
				Amount int64             `json:"amount"`
			} `json:"entity"`
		} `json:"payment"`
		Subscription struct {
			Entity struct {
				ID         string            `json:"id"`
				CustomerID string            `json:"customer_id"`
				Notes      map[string]string `json:"notes"`
				CurrentEnd int64             `json:"current_end"`
				// current_start 在某些事件里缺失，用0值兜底
				CurrentStart int64 `json:"current_start"`
			} `json:"entity"`
		} `json:"subscription"`
	} `json:"payload"`
}

// HandleRazorpayWebhook 处理Razorpay的订阅回调。
// Razorpay用HMAC-SHA256对原始请求体签名，放在X-Razorpay-Signature头中。
func HandleRazorpayWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "无法读取请求体"})
		return
	}

	sigHeader := c.GetHeader("X-Razorpay-Signature")
	if sigHeader == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少X-Razorpay-Signature头"})
		return
	}

	secret := config.Cfg.Payment.Razorpay.WebhookSecret
	if secret == "" || !signature.Verify([]byte(secret), payload, sigHeader) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "签名校验失败"})
		return
	}

	var event razorpayEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无法解析事件"})
		return
	}

	switch event.Event {
	case "subscription.charged":
		err = handleRazorpayCharged(event)
	case "subscription.cancelled":
		err = MarkCanceledByProvider(event.Payload.Subscription.Entity.ID)
	default:
		// 其余事件直接确认
	}

	if err != nil {
		fmt.Printf("处理Razorpay事件 %s 失败: %v\n", event.Event, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "事件处理失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}

// handleRazorpayCharged 在扣款成功时激活订阅。
// 用户ID和档位放在订阅的notes里（创建订阅时由前端写入）。
func handleRazorpayCharged(event razorpayEvent) error {
	entity := event.Payload.Subscription.Entity
	userID := entity.Notes["userID"]
	tier := entity.Notes["tier"]
	if userID == "" || tier == "" {
		return fmt.Errorf("razorpay订阅 %s 缺少userID/tier notes", entity.ID)
	}

	periodStart := time.Now()
	if entity.CurrentStart > 0 {
		periodStart = time.Unix(entity.CurrentStart, 0)
	}
	periodEnd := time.Unix(entity.CurrentEnd, 0)

	billingPeriod := "monthly"
	if periodEnd.Sub(periodStart) > 40*24*time.Hour {
		billingPeriod = "yearly"
	}

	return ApplySubscription(userID, Tier(tier), "razorpay", entity.CustomerID, entity.ID, billingPeriod, periodStart, periodEnd)
}
