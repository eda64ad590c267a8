package college

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/stardust-edu/career-advisor-backend/internal/platform/database"
	"github.com/stardust-edu/career-advisor-backend/pkg/retry"
	"gorm.io/gorm/clause"
)

// SourceDatabase / SourceFallback 标记列表数据的来源
const (
	SourceDatabase = "database"
	SourceFallback = "fallback"
)

const (
	saveAttempts   = 3
	saveRetryDelay = 100 * time.Millisecond
)

// SearchQuery 定义了院校目录的查询条件
type SearchQuery struct {
	Page   int
	Limit  int
	Search string
	Major  string
	State  string
}

// SearchResult 是目录查询的结果页
type SearchResult struct {
	Colleges []College
	Total    int64
	Page     int
	Limit    int
	Source   string
}

func (q *SearchQuery) normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 20
	}
}

// Search 查询院校目录。
// 数据库查询失败或结果为空时，退回到内置数据集并在内存里做同样的过滤。
func Search(query SearchQuery) SearchResult {
	query.normalize()

	rows, total, err := searchDB(query)
	if err == nil && total > 0 {
		return SearchResult{Colleges: rows, Total: total, Page: query.Page, Limit: query.Limit, Source: SourceDatabase}
	}
	if err != nil {
		fmt.Printf("警告: 院校目录查询失败，使用内置数据: %v\n", err)
	}

	rows, total = searchFallback(query)
	return SearchResult{Colleges: rows, Total: total, Page: query.Page, Limit: query.Limit, Source: SourceFallback}
}

func searchDB(query SearchQuery) ([]College, int64, error) {
	tx := database.DB.Model(&College{})
	if query.Search != "" {
		pattern := "%" + strings.ToLower(query.Search) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(location) LIKE ?", pattern, pattern)
	}
	if query.Major != "" {
		tx = tx.Where("LOWER(majors) LIKE ?", "%"+strings.ToLower(query.Major)+"%")
	}
	if query.State != "" {
		tx = tx.Where("LOWER(state) = ?", strings.ToLower(query.State))
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("无法统计院校数量: %w", err)
	}

	var rows []College
	err := tx.Order("ranking asc").
		Offset((query.Page - 1) * query.Limit).
		Limit(query.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("无法读取院校列表: %w", err)
	}
	return rows, total, nil
}

// searchFallback 在内置数据集上执行与数据库相同语义的过滤和分页。
func searchFallback(query SearchQuery) ([]College, int64) {
	matched := make([]College, 0, len(fallbackColleges))
	for _, col := range fallbackColleges {
		if query.Search != "" {
			needle := strings.ToLower(query.Search)
			if !strings.Contains(strings.ToLower(col.Name), needle) &&
				!strings.Contains(strings.ToLower(col.Location), needle) {
				continue
			}
		}
		if query.Major != "" && !strings.Contains(strings.ToLower(col.Majors), strings.ToLower(query.Major)) {
			continue
		}
		if query.State != "" && !strings.EqualFold(col.State, query.State) {
			continue
		}
		matched = append(matched, col)
	}

	total := int64(len(matched))
	start := (query.Page - 1) * query.Limit
	if start >= len(matched) {
		return []College{}, total
	}
	end := start + query.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total
}

// --- 收藏 ---

// ListSaved 返回一个用户收藏的全部院校。
func ListSaved(userID string) ([]SavedCollege, error) {
	var rows []SavedCollege
	err := database.DB.
		Where("user_uuid = ?", userID).
		Order("created_at desc").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("无法读取收藏列表: %w", err)
	}
	return rows, nil
}

// Save 收藏一所院校。
// 重复收藏同一所院校是幂等的：第二次调用返回alreadyExists=true，不产生新行。
// 写入包在有限重试里，吸收瞬时的存储错误。
func Save(userID, collegeID, name, location, collegeType string) (row *SavedCollege, alreadyExists bool, err error) {
	if collegeID == "" {
		return nil, false, errors.New("collegeId不能为空")
	}

	record := SavedCollege{
		UserUUID:        userID,
		CollegeID:       collegeID,
		CollegeName:     name,
		CollegeLocation: location,
		CollegeType:     collegeType,
	}

	var rowsAffected int64
	err = retry.Do(context.Background(), saveAttempts, saveRetryDelay, func() error {
		result := database.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_uuid"}, {Name: "college_id"}},
			DoNothing: true,
		}).Create(&record)
		rowsAffected = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return nil, false, fmt.Errorf("无法保存收藏: %w", err)
	}

	// RowsAffected == 0 说明冲突被忽略，即已收藏过
	return &record, rowsAffected == 0, nil
}

// Unsave 取消收藏。院校本就没被收藏时同样视为成功。
func Unsave(userID, collegeID string) (found bool, err error) {
	result := database.DB.
		Where("user_uuid = ? AND college_id = ?", userID, collegeID).
		Delete(&SavedCollege{})
	if result.Error != nil {
		return false, fmt.Errorf("无法取消收藏: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// CountSaved 统计一个用户的收藏数量（成就推导使用）。
func CountSaved(userID string) (int64, error) {
	var count int64
	err := database.DB.Model(&SavedCollege{}).Where("user_uuid = ?", userID).Count(&count).Error
	return count, err
}
