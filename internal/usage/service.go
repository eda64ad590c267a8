package usage

import (
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stardust-edu/career-advisor-backend/internal/platform/database"
	"github.com/stardust-edu/career-advisor-backend/internal/subscription"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MetricStats 是单个指标的用量视图。
type MetricStats struct {
	Used      int64 `json:"used"`
	Limit     int   `json:"limit"`
	Unlimited bool  `json:"unlimited"`
}

// CheckResult 是一次限额检查的结果。
type CheckResult struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// DateKey 返回一个时间所属自然日的计数键，格式YYYY-MM-DD。
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// Track 为一个用户的指标增加delta次计数。
// 正常路径写Redis并标记dirty；Redis不可用时直接落库兜底。
// 计数失败绝不阻塞调用方，只记录日志。
func Track(userID, metric string, delta int64) {
	if userID == "" || metric == "" || delta <= 0 {
		return
	}
	date := DateKey(time.Now())

	if database.IsRedisHealthy() {
		repoMutex.RLock()
		defer repoMutex.RUnlock()

		key := CounterKey(metric, date)
		pipe := database.RDB.TxPipeline()
		pipe.HIncrBy(database.Ctx, key, userID, delta)
		pipe.Expire(database.Ctx, key, counterTTL)
		pipe.SAdd(database.Ctx, DirtySetKey, DirtyMember(metric, date, userID))
		if _, err := pipe.Exec(database.Ctx); err != nil {
			fmt.Printf("用量计数写入Redis失败 (user=%s metric=%s): %v\n", userID, metric, err)
		}
		return
	}

	// 降级路径：跳过缓存直接upsert数据库
	if err := upsertCount(database.DB, userID, metric, date, delta); err != nil {
		fmt.Printf("用量计数降级落库失败 (user=%s metric=%s): %v\n", userID, metric, err)
	}
}

// upsertCount 对(user, metric, period, date)做原子的计数累加。
func upsertCount(db *gorm.DB, userID, metric, date string, delta int64) error {
	row := UsageMetric{
		UserUUID: userID,
		Metric:   metric,
		Period:   PeriodDaily,
		Date:     date,
		Count:    delta,
	}
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_uuid"}, {Name: "metric"}, {Name: "period"}, {Name: "date"},
		},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"count": gorm.Expr("count + ?", delta),
		}),
	}).Create(&row).Error
}

// setCount 把(user, metric, period, date)的计数覆盖为绝对值（flusher使用）。
func setCount(db *gorm.DB, userID, metric, date string, count int64) error {
	row := UsageMetric{
		UserUUID: userID,
		Metric:   metric,
		Period:   PeriodDaily,
		Date:     date,
		Count:    count,
	}
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_uuid"}, {Name: "metric"}, {Name: "period"}, {Name: "date"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"count"}),
	}).Create(&row).Error
}

// todayCount 读取一个用户某指标今天的计数。
// Redis优先，失败或不可用时回源数据库。
func todayCount(userID, metric string) (int64, error) {
	date := DateKey(time.Now())

	if database.IsRedisHealthy() {
		val, err := database.RDB.HGet(database.Ctx, CounterKey(metric, date), userID).Int64()
		if err == nil {
			return val, nil
		}
		if errors.Is(err, redis.Nil) { // 今天还没有计数
			return 0, nil
		}
		fmt.Printf("读取用量缓存失败，回源数据库 (metric=%s): %v\n", metric, err)
	}

	var row UsageMetric
	err := database.DB.
		Where("user_uuid = ? AND metric = ? AND period = ? AND date = ?", userID, metric, PeriodDaily, date).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return row.Count, nil
}

// GetStats 返回一个用户所有计量指标的用量与上限。
func GetStats(userID string) map[string]MetricStats {
	status := subscription.GetStatus(userID)

	stats := make(map[string]MetricStats, len(status.Limits))
	for metric, limit := range status.Limits {
		used, err := todayCount(userID, metric)
		if err != nil {
			fmt.Printf("读取用量失败 (user=%s metric=%s): %v\n", userID, metric, err)
			used = 0
		}
		stats[metric] = MetricStats{
			Used:      used,
			Limit:     limit,
			Unlimited: limit == subscription.UnlimitedLimit,
		}
	}
	return stats
}

// CheckLimit 检查一个动作是否超出当日限额。
//   - 非计量动作总是允许
//   - 上限为-1表示不限量
//   - 读取失败时放行（宁可少计一次，不能挡住用户）
func CheckLimit(userID, action string) CheckResult {
	if !subscription.IsMeteredMetric(action) {
		return CheckResult{Allowed: true}
	}

	status := subscription.GetStatus(userID)
	limit, ok := status.Limits[action]
	if !ok || limit == subscription.UnlimitedLimit {
		return CheckResult{Allowed: true}
	}

	used, err := todayCount(userID, action)
	if err != nil {
		fmt.Printf("限额检查读取用量失败，放行 (user=%s action=%s): %v\n", userID, action, err)
		return CheckResult{Allowed: true}
	}

	if used >= int64(limit) {
		return CheckResult{
			Allowed: false,
			Reason:  fmt.Sprintf("daily limit reached for %s (%d/%d)", action, used, limit),
		}
	}
	return CheckResult{Allowed: true}
}
