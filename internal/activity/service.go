package activity

import (
	"encoding/json"
	"fmt"

	"github.com/stardust-edu/career-advisor-backend/internal/platform/database"
)

// Record 追加一条活动日志。
// 活动日志是业务流程的副作用，写入失败只记录日志，绝不影响主流程。
func Record(userID, activityType, title, description string, meta map[string]interface{}) {
	if userID == "" || activityType == "" {
		return
	}

	row := Activity{
		UserUUID:    userID,
		Type:        activityType,
		Title:       title,
		Description: description,
	}
	if meta != nil {
		if raw, err := json.Marshal(meta); err == nil {
			row.Metadata = raw
		}
	}

	if err := database.DB.Create(&row).Error; err != nil {
		fmt.Printf("活动日志写入失败 (user=%s type=%s): %v\n", userID, activityType, err)
	}
}

// ListRecent 返回一个用户最近的n条活动，按时间倒序。
func ListRecent(userID string, n int) ([]Activity, error) {
	if n <= 0 {
		n = 10
	}
	var rows []Activity
	err := database.DB.
		Where("user_uuid = ?", userID).
		Order("created_at desc").
		Limit(n).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("无法读取活动日志: %w", err)
	}
	return rows, nil
}

// CountByType 统计一个用户某类型活动的总数（成就推导使用）。
func CountByType(userID, activityType string) (int64, error) {
	var count int64
	err := database.DB.Model(&Activity{}).
		Where("user_uuid = ? AND type = ?", userID, activityType).
		Count(&count).Error
	return count, err
}

// CountAll 统计一个用户的活动总数。
func CountAll(userID string) (int64, error) {
	var count int64
	err := database.DB.Model(&Activity{}).
		Where("user_uuid = ?", userID).
		Count(&count).Error
	return count, err
}
