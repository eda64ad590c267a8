package subscription

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stardust-edu/career-advisor-backend/internal/platform/config"
	"github.com/stardust-edu/career-advisor-backend/internal/user"
)

// CheckoutRequestBody 定义了发起订阅结账的请求体
type CheckoutRequestBody struct {
	Tier          string `json:"tier" binding:"required"`
	BillingPeriod string `json:"billingPeriod"`
}

// CreateCheckout 为当前用户创建一个Stripe Checkout会话。
// 用户在Stripe托管页完成支付后，由Webhook回调落库订阅。
func CreateCheckout(c *gin.Context) {
	userID := user.CurrentUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authentication required"})
		return
	}

	stripeCfg := config.Cfg.Payment.Stripe
	if stripeCfg.SecretKey == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "支付服务未配置"})
		return
	}

	var body CheckoutRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}
	if !IsValidTier(body.Tier) || Tier(body.Tier) == TierFree {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的订阅档位: " + body.Tier})
		return
	}
	priceID, ok := stripeCfg.PriceIDs[body.Tier]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "该档位未配置价格: " + body.Tier})
		return
	}

	params := &stripe.CheckoutSessionParams{
		SuccessURL: stripe.String(stripeCfg.SuccessURL),
		CancelURL:  stripe.String(stripeCfg.CancelURL),
		Mode:       stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		// 订阅元数据携带用户ID和档位，Webhook侧用它们把订阅归属到用户
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: map[string]string{
				"userID": userID,
				"tier":   body.Tier,
			},
		},
	}
	params.AddMetadata("userID", userID)
	params.AddMetadata("tier", body.Tier)

	result, err := session.New(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "创建结账会话失败", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"checkoutUrl": result.URL,
	})
}
