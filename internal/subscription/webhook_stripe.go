package subscription

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
	"github.com/stardust-edu/career-advisor-backend/internal/platform/config"
	"github.com/stardust-edu/career-advisor-backend/internal/platform/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// stripeWebhookMaxBody 限制Webhook请求体大小，Stripe官方示例同样是64KB
const stripeWebhookMaxBody = int64(65536)

// HandleStripeWebhook 处理Stripe的订阅生命周期回调。
// 签名缺失或无效一律400；事件处理失败返回500让Stripe重试。
func HandleStripeWebhook(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, stripeWebhookMaxBody)
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "无法读取请求体"})
		return
	}

	sigHeader := c.GetHeader("Stripe-Signature")
	if sigHeader == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少Stripe-Signature头"})
		return
	}

	event, err := webhook.ConstructEventWithOptions(
		payload,
		sigHeader,
		config.Cfg.Payment.Stripe.WebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		fmt.Printf("Stripe Webhook签名校验失败: %v\n", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "签名校验失败"})
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		err = handleCheckoutCompleted(event)
	case "invoice.paid":
		err = handleInvoicePaid(event)
	case "customer.subscription.updated":
		err = handleSubscriptionUpdated(event)
	case "customer.subscription.deleted":
		err = handleSubscriptionDeleted(event)
	default:
		// 未订阅处理的事件类型，直接确认
	}

	if err != nil {
		fmt.Printf("处理Stripe事件 %s 失败: %v\n", event.Type, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "事件处理失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}

// handleCheckoutCompleted 在结账完成时登记一条pending订阅。
// 真正的周期信息由随后的invoice.paid补全。
func handleCheckoutCompleted(event stripe.Event) error {
	var cs stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
		return fmt.Errorf("无法解析checkout.session.completed: %w", err)
	}

	userID := cs.Metadata["userID"]
	tier := cs.Metadata["tier"]
	if userID == "" || tier == "" {
		return errors.New("checkout session缺少userID/tier元数据")
	}

	var customerID, subID string
	if cs.Customer != nil {
		customerID = cs.Customer.ID
	}
	if cs.Subscription != nil {
		subID = cs.Subscription.ID
	}
	if subID == "" {
		return errors.New("checkout session缺少订阅引用")
	}

	pending := Subscription{
		UserUUID:               userID,
		Tier:                   Tier(tier),
		Status:                 StatusPending,
		Provider:               "stripe",
		ProviderCustomerID:     customerID,
		ProviderSubscriptionID: subID,
	}
	// 同一订阅ID的重复事件幂等处理
	return database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "provider_subscription_id"}},
		DoNothing: true,
	}).Create(&pending).Error
}

// handleInvoicePaid 在账单支付成功时把订阅置为active并写入计费周期。
func handleInvoicePaid(event stripe.Event) error {
	var inv stripe.Invoice
	if err := json.Unmarshal(event.Data.Raw, &inv); err != nil {
		return fmt.Errorf("无法解析invoice.paid: %w", err)
	}

	periodStart := time.Unix(inv.PeriodStart, 0)
	periodEnd := time.Unix(inv.PeriodEnd, 0)

	// 从账单行的订阅元数据中找到用户和档位
	var userID, tier, subID string
	if inv.Lines != nil {
		for _, line := range inv.Lines.Data {
			if line.Metadata == nil {
				continue
			}
			if uid, ok := line.Metadata["userID"]; ok && userID == "" {
				userID = uid
			}
			if t, ok := line.Metadata["tier"]; ok && tier == "" {
				tier = t
			}
		}
	}
	if inv.Parent != nil && inv.Parent.SubscriptionDetails != nil && inv.Parent.SubscriptionDetails.Subscription != nil {
		subID = inv.Parent.SubscriptionDetails.Subscription.ID
	}

	if userID == "" || tier == "" {
		return errors.New("invoice缺少userID/tier元数据")
	}

	billingPeriod := "monthly"
	if periodEnd.Sub(periodStart) > 40*24*time.Hour {
		billingPeriod = "yearly"
	}

	var customerID string
	if inv.Customer != nil {
		customerID = inv.Customer.ID
	}
	return ApplySubscription(userID, Tier(tier), "stripe", customerID, subID, billingPeriod, periodStart, periodEnd)
}

// handleSubscriptionUpdated 同步取消标记和终止状态。
func handleSubscriptionUpdated(event stripe.Event) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return fmt.Errorf("无法解析customer.subscription.updated: %w", err)
	}

	if sub.Status == stripe.SubscriptionStatusCanceled {
		return MarkCanceledByProvider(sub.ID)
	}

	err := database.DB.Model(&Subscription{}).
		Where("provider_subscription_id = ?", sub.ID).
		Update("cancel_at_period_end", sub.CancelAtPeriodEnd).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

// handleSubscriptionDeleted 处理服务商侧的订阅终止。
func handleSubscriptionDeleted(event stripe.Event) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return fmt.Errorf("无法解析customer.subscription.deleted: %w", err)
	}
	return MarkCanceledByProvider(sub.ID)
}
