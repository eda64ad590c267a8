package usage

import (
	"fmt"
	"testing"
	"time"

	"github.com/stardust-edu/career-advisor-backend/internal/platform/database"
	"github.com/stardust-edu/career-advisor-backend/internal/subscription"
	"github.com/stardust-edu/career-advisor-backend/internal/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int

// setupTestDB 用内存SQLite替换全局数据库连接，并把Redis标记为不可用，
// 让所有计数路径走数据库降级分支。
func setupTestDB(t *testing.T) {
	t.Helper()
	testDBSeq++
	dsn := fmt.Sprintf("file:usage_test_%d?mode=memory&cache=shared", testDBSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&UsageMetric{}, &subscription.Subscription{}, &user.User{}))
	database.DB = db

	database.UpdateStatus(false, "")
	t.Cleanup(func() { database.UpdateStatus(true, "") })
}

func TestDateKey(t *testing.T) {
	ts := time.Date(2026, 3, 7, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-07", DateKey(ts))
}

func TestDirtyMemberFormat(t *testing.T) {
	assert.Equal(t, "chat_messages|2026-03-07|user-1", DirtyMember("chat_messages", "2026-03-07", "user-1"))
}

func TestTrackDegradesToDatabase(t *testing.T) {
	setupTestDB(t)

	Track("user-1", subscription.MetricChatMessages, 1)
	Track("user-1", subscription.MetricChatMessages, 2)

	stats := GetStats("user-1")
	assert.EqualValues(t, 3, stats[subscription.MetricChatMessages].Used)
	assert.Equal(t, 10, stats[subscription.MetricChatMessages].Limit)
	assert.False(t, stats[subscription.MetricChatMessages].Unlimited)
}

func TestTrackIgnoresInvalidInput(t *testing.T) {
	setupTestDB(t)

	Track("", subscription.MetricChatMessages, 1)
	Track("user-1", "", 1)
	Track("user-1", subscription.MetricChatMessages, 0)

	var count int64
	require.NoError(t, database.DB.Model(&UsageMetric{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestCheckLimitUnmeteredAlwaysAllowed(t *testing.T) {
	setupTestDB(t)

	result := CheckLimit("user-1", "career_quiz")
	assert.True(t, result.Allowed)
}

func TestCheckLimitDeniesAtLimit(t *testing.T) {
	setupTestDB(t)

	// free档位的roadmaps_generated上限是1
	Track("user-1", subscription.MetricRoadmapsGenerated, 1)

	result := CheckLimit("user-1", subscription.MetricRoadmapsGenerated)
	assert.False(t, result.Allowed)
	assert.Contains(t, result.Reason, "daily limit reached")
}

func TestCheckLimitAllowsBelowLimit(t *testing.T) {
	setupTestDB(t)

	Track("user-1", subscription.MetricChatMessages, 9)
	assert.True(t, CheckLimit("user-1", subscription.MetricChatMessages).Allowed)

	Track("user-1", subscription.MetricChatMessages, 1)
	assert.False(t, CheckLimit("user-1", subscription.MetricChatMessages).Allowed)
}

func TestCheckLimitUnlimitedTier(t *testing.T) {
	setupTestDB(t)

	// elite档位的计量指标不限量
	require.NoError(t, database.DB.Create(&subscription.Subscription{
		UserUUID:               "user-elite",
		Tier:                   subscription.TierElite,
		Status:                 subscription.StatusActive,
		PeriodStart:            time.Now().Add(-24 * time.Hour),
		PeriodEnd:              time.Now().Add(30 * 24 * time.Hour),
		Provider:               "stripe",
		ProviderSubscriptionID: "sub_elite",
	}).Error)

	Track("user-elite", subscription.MetricChatMessages, 10000)
	assert.True(t, CheckLimit("user-elite", subscription.MetricChatMessages).Allowed)

	stats := GetStats("user-elite")
	assert.True(t, stats[subscription.MetricChatMessages].Unlimited)
}

func TestUpsertCountAccumulates(t *testing.T) {
	setupTestDB(t)

	require.NoError(t, upsertCount(database.DB, "user-1", "chat_messages", "2026-03-07", 2))
	require.NoError(t, upsertCount(database.DB, "user-1", "chat_messages", "2026-03-07", 3))

	var row UsageMetric
	require.NoError(t, database.DB.Where("user_uuid = ? AND date = ?", "user-1", "2026-03-07").First(&row).Error)
	assert.EqualValues(t, 5, row.Count)
}

func TestSetCountOverwrites(t *testing.T) {
	setupTestDB(t)

	require.NoError(t, setCount(database.DB, "user-1", "chat_messages", "2026-03-07", 2))
	require.NoError(t, setCount(database.DB, "user-1", "chat_messages", "2026-03-07", 7))

	var row UsageMetric
	require.NoError(t, database.DB.Where("user_uuid = ? AND date = ?", "user-1", "2026-03-07").First(&row).Error)
	assert.EqualValues(t, 7, row.Count)
}
