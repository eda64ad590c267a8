package subscription

import (
	"time"

	"gorm.io/gorm"
)

// Tier 定义了订阅档位的枚举类型
type Tier string

const (
	TierFree    Tier = "free"
	TierBasic   Tier = "basic"
	TierPremium Tier = "premium"
	TierElite   Tier = "elite"
)

// tierRank 用于档位之间的大小比较（功能门槛按"最低档位"表达）
var tierRank = map[Tier]int{
	TierFree:    0,
	TierBasic:   1,
	TierPremium: 2,
	TierElite:   3,
}

// IsValidTier 报告一个字符串是否是已知档位。
func IsValidTier(s string) bool {
	_, ok := tierRank[Tier(s)]
	return ok
}

// AtLeast 报告档位t是否不低于档位min。
func (t Tier) AtLeast(min Tier) bool {
	return tierRank[t] >= tierRank[min]
}

// Status 定义了订阅生命周期状态的枚举类型
type Status string

const (
	StatusActive   Status = "active"
	StatusCanceled Status = "canceled"
	StatusExpired  Status = "expired"
	StatusPending  Status = "pending"
)

// Subscription 定义了单条订阅记录的数据结构。
// 一个用户同一时刻至多有一条active记录；历史记录保留用于审计。
type Subscription struct {
	gorm.Model

	// UserUUID 是订阅所属的用户
	UserUUID string `gorm:"index;not null;type:varchar(36)"`

	Tier   Tier   `gorm:"type:varchar(20);not null"`
	Status Status `gorm:"type:varchar(20);not null"`

	// BillingPeriod 是计费周期，monthly / yearly
	BillingPeriod string `gorm:"type:varchar(20)"`

	PeriodStart time.Time
	PeriodEnd   time.Time

	// 外部支付服务商的引用
	Provider               string `gorm:"type:varchar(20)"` // stripe / razorpay
	ProviderCustomerID     string `gorm:"type:varchar(255);index"`
	ProviderSubscriptionID string `gorm:"type:varchar(255);index"`

	// CancelAtPeriodEnd 表示用户已请求取消，但订阅保持active直到周期结束
	CancelAtPeriodEnd bool
}

// --- 功能门槛与用量上限的静态表 ---

// UnlimitedLimit 表示"不限量"的哨兵值
const UnlimitedLimit = -1

// 计量动作的指标名。usage模块的每日计数器使用同样的名字。
const (
	MetricChatMessages      = "chat_messages"
	MetricRoadmapsGenerated = "roadmaps_generated"
)

// featureMatrix 定义了功能键到最低可用档位的映射。
// 未出现在表中的功能键一律视为未知并拒绝（fail closed）。
var featureMatrix = map[string]Tier{
	"career_quiz":        TierFree,
	"college_search":     TierFree,
	"skill_tracking":     TierFree,
	"ai_recommendations": TierFree,
	"roadmap_generation": TierFree,
	"quiz_ai_analysis":   TierBasic,
	"job_hunting":        TierPremium,
	"outreach_drafts":    TierPremium,
	"resume_analysis":    TierPremium,
	"priority_support":   TierElite,
}

// tierLimits 定义了各档位下计量动作的每日上限。
var tierLimits = map[Tier]map[string]int{
	TierFree: {
		MetricChatMessages:      10,
		MetricRoadmapsGenerated: 1,
	},
	TierBasic: {
		MetricChatMessages:      50,
		MetricRoadmapsGenerated: 3,
	},
	TierPremium: {
		MetricChatMessages:      200,
		MetricRoadmapsGenerated: 10,
	},
	TierElite: {
		MetricChatMessages:      UnlimitedLimit,
		MetricRoadmapsGenerated: UnlimitedLimit,
	},
}

// FeaturesForTier 返回一个档位可用的全部功能键，顺序稳定。
func FeaturesForTier(t Tier) []string {
	keys := make([]string, 0, len(featureMatrix))
	for key, min := range featureMatrix {
		if t.AtLeast(min) {
			keys = append(keys, key)
		}
	}
	sortStrings(keys)
	return keys
}

// LimitsForTier 返回一个档位的用量上限表（副本，调用方可以随意修改）。
func LimitsForTier(t Tier) map[string]int {
	limits := make(map[string]int, len(tierLimits[t]))
	for metric, limit := range tierLimits[t] {
		limits[metric] = limit
	}
	return limits
}

// IsMeteredMetric 报告一个指标名是否是受限计量动作。
func IsMeteredMetric(metric string) bool {
	_, ok := tierLimits[TierFree][metric]
	return ok
}

// 插入排序足够了，功能表只有十来个键
func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j] < s[j-1]; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}
