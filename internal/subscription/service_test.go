package subscription

import (
	"fmt"
	"testing"
	"time"

	"github.com/stardust-edu/career-advisor-backend/internal/platform/database"
	"github.com/stardust-edu/career-advisor-backend/internal/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int

func setupTestDB(t *testing.T) {
	t.Helper()
	testDBSeq++
	dsn := fmt.Sprintf("file:subscription_test_%d?mode=memory&cache=shared", testDBSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&user.User{}, &Subscription{}))
	database.DB = db
}

func TestTierAtLeast(t *testing.T) {
	assert.True(t, TierElite.AtLeast(TierPremium))
	assert.True(t, TierBasic.AtLeast(TierBasic))
	assert.False(t, TierFree.AtLeast(TierBasic))
}

func TestFeaturesForTier(t *testing.T) {
	free := FeaturesForTier(TierFree)
	assert.Contains(t, free, "career_quiz")
	assert.Contains(t, free, "roadmap_generation")
	assert.NotContains(t, free, "quiz_ai_analysis")
	assert.NotContains(t, free, "job_hunting")

	premium := FeaturesForTier(TierPremium)
	assert.Contains(t, premium, "job_hunting")
	assert.Contains(t, premium, "quiz_ai_analysis")
	assert.NotContains(t, premium, "priority_support")
}

func TestLimitsForTier(t *testing.T) {
	free := LimitsForTier(TierFree)
	assert.Equal(t, 10, free[MetricChatMessages])
	assert.Equal(t, 1, free[MetricRoadmapsGenerated])

	elite := LimitsForTier(TierElite)
	assert.Equal(t, UnlimitedLimit, elite[MetricChatMessages])
	assert.Equal(t, UnlimitedLimit, elite[MetricRoadmapsGenerated])
}

func TestGetStatusNoSubscriptionDefaultsToFree(t *testing.T) {
	setupTestDB(t)

	status := GetStatus("user-without-sub")
	assert.Equal(t, TierFree, status.Tier)
	assert.True(t, status.IsActive)
	assert.Nil(t, status.ExpiresAt)
}

func TestGetStatusActiveSubscription(t *testing.T) {
	setupTestDB(t)

	end := time.Now().Add(20 * 24 * time.Hour)
	require.NoError(t, database.DB.Create(&Subscription{
		UserUUID:               "user-1",
		Tier:                   TierPremium,
		Status:                 StatusActive,
		PeriodStart:            time.Now().Add(-10 * 24 * time.Hour),
		PeriodEnd:              end,
		Provider:               "stripe",
		ProviderSubscriptionID: "sub_123",
	}).Error)

	status := GetStatus("user-1")
	assert.Equal(t, TierPremium, status.Tier)
	require.NotNil(t, status.ExpiresAt)
	assert.Equal(t, 200, status.Limits[MetricChatMessages])
}

func TestGetStatusExpiredSubscriptionFallsBackToFree(t *testing.T) {
	setupTestDB(t)

	require.NoError(t, database.DB.Create(&Subscription{
		UserUUID:               "user-1",
		Tier:                   TierPremium,
		Status:                 StatusActive,
		PeriodStart:            time.Now().Add(-40 * 24 * time.Hour),
		PeriodEnd:              time.Now().Add(-10 * 24 * time.Hour),
		Provider:               "stripe",
		ProviderSubscriptionID: "sub_expired",
	}).Error)

	status := GetStatus("user-1")
	assert.Equal(t, TierFree, status.Tier)

	// 过期快照被回写，记录状态变为expired
	var sub Subscription
	require.NoError(t, database.DB.Where("provider_subscription_id = ?", "sub_expired").First(&sub).Error)
	assert.Equal(t, StatusExpired, sub.Status)
}

func TestCanAccessFeatureUnknownKeyFailsClosed(t *testing.T) {
	setupTestDB(t)

	result := CanAccessFeature("user-1", "time_travel")
	assert.False(t, result.Allowed)
	assert.Contains(t, result.Reason, "unknown feature")
}

func TestCanAccessFeatureTierGating(t *testing.T) {
	setupTestDB(t)

	// 无订阅用户可以用free功能，不能用premium功能
	assert.True(t, CanAccessFeature("user-1", "career_quiz").Allowed)
	denied := CanAccessFeature("user-1", "job_hunting")
	assert.False(t, denied.Allowed)
	assert.Contains(t, denied.Reason, "premium")
}

func TestApplySubscriptionIdempotent(t *testing.T) {
	setupTestDB(t)
	require.NoError(t, database.DB.Create(&user.User{UUID: "user-1", Tier: "free"}).Error)

	start := time.Now()
	end := start.Add(30 * 24 * time.Hour)
	require.NoError(t, ApplySubscription("user-1", TierBasic, "stripe", "cus_1", "sub_1", "monthly", start, end))
	// 同一个服务商订阅ID的重复事件不产生新行
	require.NoError(t, ApplySubscription("user-1", TierBasic, "stripe", "cus_1", "sub_1", "monthly", start, end))

	var count int64
	require.NoError(t, database.DB.Model(&Subscription{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestApplySubscriptionUpgradeCancelsPrevious(t *testing.T) {
	setupTestDB(t)
	require.NoError(t, database.DB.Create(&user.User{UUID: "user-1", Tier: "free"}).Error)

	start := time.Now()
	end := start.Add(30 * 24 * time.Hour)
	require.NoError(t, ApplySubscription("user-1", TierBasic, "stripe", "cus_1", "sub_1", "monthly", start, end))
	require.NoError(t, ApplySubscription("user-1", TierPremium, "stripe", "cus_1", "sub_2", "monthly", start, end))

	var old Subscription
	require.NoError(t, database.DB.Where("provider_subscription_id = ?", "sub_1").First(&old).Error)
	assert.Equal(t, StatusCanceled, old.Status)

	status := GetStatus("user-1")
	assert.Equal(t, TierPremium, status.Tier)
}

func TestRequestCancelAndReactivate(t *testing.T) {
	setupTestDB(t)

	start := time.Now()
	end := start.Add(30 * 24 * time.Hour)
	require.NoError(t, database.DB.Create(&Subscription{
		UserUUID: "user-1", Tier: TierBasic, Status: StatusActive,
		PeriodStart: start, PeriodEnd: end,
		Provider: "stripe", ProviderSubscriptionID: "sub_1",
	}).Error)

	sub, err := RequestCancel("user-1")
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.True(t, sub.CancelAtPeriodEnd)

	// 周期结束前订阅仍然有效
	assert.Equal(t, TierBasic, GetStatus("user-1").Tier)

	sub, err = RequestReactivate("user-1")
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.False(t, sub.CancelAtPeriodEnd)
}

func TestRequestCancelWithoutSubscription(t *testing.T) {
	setupTestDB(t)

	sub, err := RequestCancel("user-1")
	require.NoError(t, err)
	assert.Nil(t, sub)
}

func TestMarkCanceledByProviderUnknownIDIsIdempotent(t *testing.T) {
	setupTestDB(t)

	assert.NoError(t, MarkCanceledByProvider("sub_never_seen"))
}
