package subscription

import (
	"errors"
	"fmt"
	"time"

	"github.com/stardust-edu/career-advisor-backend/internal/platform/database"
	"github.com/stardust-edu/career-advisor-backend/internal/user"
	"gorm.io/gorm"
)

// StatusResult 是实体权益解析的结果。
type StatusResult struct {
	Tier      Tier           `json:"tier"`
	IsActive  bool           `json:"isActive"`
	ExpiresAt *time.Time     `json:"expiresAt,omitempty"`
	Features  []string       `json:"features"`
	Limits    map[string]int `json:"limits"`
}

// AccessResult 是单个功能访问检查的结果。
type AccessResult struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// freeStatus 构造Free档位的权益描述。
// 所有解析失败的路径最终都落到这里——系统绝不因为权益检查故障而阻塞请求，
// 只会降级到限制最严格的真实档位。
func freeStatus() *StatusResult {
	return &StatusResult{
		Tier:     TierFree,
		IsActive: true,
		Features: FeaturesForTier(TierFree),
		Limits:   LimitsForTier(TierFree),
	}
}

// GetStatus 解析一个用户当前的订阅状态。
//   - 没有订阅记录或记录已过期 -> Free档位，并把tier=free/status=expired回写到用户行
//   - 查询出错 -> 按Free处理，不向上抛错
func GetStatus(userID string) *StatusResult {
	if userID == "" {
		return freeStatus()
	}

	var sub Subscription
	err := database.DB.
		Where("user_uuid = ? AND status IN ?", userID, []Status{StatusActive, StatusCanceled}).
		Order("period_end desc").
		First(&sub).Error

	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			fmt.Printf("解析用户 %s 的订阅时出错，降级为free: %v\n", userID, err)
		}
		return freeStatus()
	}

	// 周期已结束：逻辑过期，回写快照
	if time.Now().After(sub.PeriodEnd) {
		expireSubscription(&sub)
		return freeStatus()
	}

	expiresAt := sub.PeriodEnd
	return &StatusResult{
		Tier:      sub.Tier,
		IsActive:  true,
		ExpiresAt: &expiresAt,
		Features:  FeaturesForTier(sub.Tier),
		Limits:    LimitsForTier(sub.Tier),
	}
}

// expireSubscription 把一条到期的订阅标记为expired，并回写用户快照。
// 失败只记录日志——下一次读取还会再尝试。
func expireSubscription(sub *Subscription) {
	if err := database.DB.Model(sub).Update("status", StatusExpired).Error; err != nil {
		fmt.Printf("无法将订阅 %d 标记为过期: %v\n", sub.ID, err)
	}
	if err := user.UpdateSubscriptionSnapshot(sub.UserUUID, string(TierFree), string(StatusExpired)); err != nil {
		fmt.Printf("无法回写用户 %s 的订阅快照: %v\n", sub.UserUUID, err)
	}
}

// CanAccessFeature 检查一个用户是否可以使用指定功能。
// 未知的功能键一律拒绝，并附带明确的原因。
func CanAccessFeature(userID, featureKey string) AccessResult {
	minTier, ok := featureMatrix[featureKey]
	if !ok {
		return AccessResult{Allowed: false, Reason: fmt.Sprintf("unknown feature: %s", featureKey)}
	}

	status := GetStatus(userID)
	if !status.Tier.AtLeast(minTier) {
		return AccessResult{
			Allowed: false,
			Reason:  fmt.Sprintf("feature %s requires %s tier or above", featureKey, minTier),
		}
	}
	return AccessResult{Allowed: true}
}

// ApplySubscription 根据支付服务商的回调结果创建或更新订阅记录。
// 同一个服务商订阅ID的重复事件是幂等的。
func ApplySubscription(userID string, tier Tier, provider, customerID, providerSubID, billingPeriod string, periodStart, periodEnd time.Time) error {
	if !IsValidTier(string(tier)) || tier == TierFree {
		return fmt.Errorf("无效的订阅档位: %s", tier)
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		// 同一用户之前的active订阅标记为canceled（升级/改签场景）
		if err := tx.Model(&Subscription{}).
			Where("user_uuid = ? AND status = ? AND provider_subscription_id <> ?", userID, StatusActive, providerSubID).
			Update("status", StatusCanceled).Error; err != nil {
			return err
		}

		var existing Subscription
		err := tx.Where("provider_subscription_id = ?", providerSubID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			newSub := Subscription{
				UserUUID:               userID,
				Tier:                   tier,
				Status:                 StatusActive,
				BillingPeriod:          billingPeriod,
				PeriodStart:            periodStart,
				PeriodEnd:              periodEnd,
				Provider:               provider,
				ProviderCustomerID:     customerID,
				ProviderSubscriptionID: providerSubID,
			}
			if err := tx.Create(&newSub).Error; err != nil {
				return fmt.Errorf("无法创建订阅记录: %w", err)
			}
		case err != nil:
			return err
		default:
			updates := map[string]interface{}{
				"tier":                 tier,
				"status":               StatusActive,
				"period_start":         periodStart,
				"period_end":           periodEnd,
				"cancel_at_period_end": false,
			}
			if err := tx.Model(&existing).Updates(updates).Error; err != nil {
				return fmt.Errorf("无法更新订阅记录: %w", err)
			}
		}

		// 回写用户快照
		return tx.Model(&user.User{}).Where("uuid = ?", userID).
			Updates(map[string]interface{}{
				"tier":                string(tier),
				"subscription_status": string(StatusActive),
			}).Error
	})
}

// RequestCancel 把用户的active订阅标记为"周期结束时取消"。
// 订阅在周期结束前保持可用。
func RequestCancel(userID string) (*Subscription, error) {
	var sub Subscription
	err := database.DB.Where("user_uuid = ? AND status = ?", userID, StatusActive).
		Order("period_end desc").First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("无法查询订阅: %w", err)
	}

	if err := database.DB.Model(&sub).Update("cancel_at_period_end", true).Error; err != nil {
		return nil, fmt.Errorf("无法标记订阅取消: %w", err)
	}
	sub.CancelAtPeriodEnd = true
	return &sub, nil
}

// RequestReactivate 撤销"周期结束时取消"的标记。
func RequestReactivate(userID string) (*Subscription, error) {
	var sub Subscription
	err := database.DB.Where("user_uuid = ? AND status = ? AND cancel_at_period_end = ?", userID, StatusActive, true).
		Order("period_end desc").First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("无法查询订阅: %w", err)
	}

	if err := database.DB.Model(&sub).Update("cancel_at_period_end", false).Error; err != nil {
		return nil, fmt.Errorf("无法恢复订阅: %w", err)
	}
	sub.CancelAtPeriodEnd = false
	return &sub, nil
}

// MarkCanceledByProvider 处理服务商侧的订阅终止事件。
func MarkCanceledByProvider(providerSubID string) error {
	var sub Subscription
	err := database.DB.Where("provider_subscription_id = ?", providerSubID).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// 没见过的订阅ID，幂等地忽略
		return nil
	}
	if err != nil {
		return err
	}

	if err := database.DB.Model(&sub).Update("status", StatusCanceled).Error; err != nil {
		return err
	}
	return user.UpdateSubscriptionSnapshot(sub.UserUUID, string(TierFree), string(StatusCanceled))
}
