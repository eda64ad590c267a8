package achievement

import (
	"fmt"

	"github.com/stardust-edu/career-advisor-backend/internal/activity"
	"github.com/stardust-edu/career-advisor-backend/internal/college"
	"github.com/stardust-edu/career-advisor-backend/internal/platform/database"
	"github.com/stardust-edu/career-advisor-backend/internal/quiz"
	"github.com/stardust-edu/career-advisor-backend/internal/skill"
	"gorm.io/gorm/clause"
)

// ErrUnknownAchievement 表示请求的成就id不在目录里。
var ErrUnknownAchievement = fmt.Errorf("未知的成就id")

// State 是单个成就对一个用户的当前状态
type State struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Rarity      string `json:"rarity"`
	Progress    int    `json:"progress"`
	MaxProgress int    `json:"maxProgress"`
	Unlocked    bool   `json:"unlocked"`
}

// Progress 计算推导进度: min(100, 100*count/threshold)。
// 对输入单调：计数增加时进度不会下降。
func Progress(count, threshold int64) int {
	if threshold <= 0 {
		return 100
	}
	progress := 100 * count / threshold
	if progress > 100 {
		progress = 100
	}
	return int(progress)
}

// Evaluate 计算一个用户的全部成就状态。
// 推导进度来自来源计数；已持久化的解锁记录强制进度为100，
// 即使来源计数后来回落（比如删除技能），解锁也不会被收回。
func Evaluate(userID string) ([]State, error) {
	counts, err := sourceCounts(userID)
	if err != nil {
		return nil, err
	}

	unlocked, err := unlockedSet(userID)
	if err != nil {
		return nil, err
	}

	states := make([]State, 0, len(definitions))
	for _, def := range definitions {
		progress := Progress(counts[def.Source], def.Threshold)
		if unlocked[def.ID] {
			progress = 100
		}
		states = append(states, State{
			ID:          def.ID,
			Title:       def.Title,
			Description: def.Description,
			Rarity:      def.Rarity,
			Progress:    progress,
			MaxProgress: 100,
			Unlocked:    progress >= 100,
		})
	}
	return states, nil
}

// Award 显式解锁一个成就（幂等）。
// 未知id返回ErrUnknownAchievement，路由层据此回400。
func Award(userID, achievementID string) (*State, error) {
	def, ok := DefinitionByID(achievementID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAchievement, achievementID)
	}

	row := UnlockedAchievement{UserUUID: userID, AchievementID: achievementID}
	result := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_uuid"}, {Name: "achievement_id"}},
		DoNothing: true,
	}).Create(&row)
	if result.Error != nil {
		return nil, fmt.Errorf("无法保存成就解锁: %w", result.Error)
	}

	// 首次解锁才记动态
	if result.RowsAffected > 0 {
		activity.Record(userID, activity.TypeAchievementEarned,
			"解锁成就: "+def.Title, def.Description,
			map[string]interface{}{"achievementId": def.ID, "rarity": def.Rarity})
	}

	return &State{
		ID:          def.ID,
		Title:       def.Title,
		Description: def.Description,
		Rarity:      def.Rarity,
		Progress:    100,
		MaxProgress: 100,
		Unlocked:    true,
	}, nil
}

// sourceCounts 拉取四个来源指标的聚合计数。
func sourceCounts(userID string) (map[string]int64, error) {
	skillCount, err := skill.CountByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("无法统计技能数量: %w", err)
	}
	quizCount, err := quiz.CountByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("无法统计测评数量: %w", err)
	}
	collegeCount, err := college.CountSaved(userID)
	if err != nil {
		return nil, fmt.Errorf("无法统计收藏数量: %w", err)
	}
	activityCount, err := activity.CountAll(userID)
	if err != nil {
		return nil, fmt.Errorf("无法统计动态数量: %w", err)
	}

	return map[string]int64{
		SourceSkills:     skillCount,
		SourceQuizzes:    quizCount,
		SourceColleges:   collegeCount,
		SourceActivities: activityCount,
	}, nil
}

// unlockedSet 读取一个用户已持久化的解锁记录。
func unlockedSet(userID string) (map[string]bool, error) {
	var rows []UnlockedAchievement
	err := database.DB.Where("user_uuid = ?", userID).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("无法读取解锁记录: %w", err)
	}

	set := make(map[string]bool, len(rows))
	for _, row := range rows {
		set[row.AchievementID] = true
	}
	return set, nil
}

// CountUnlocked 统计一个用户已解锁的成就数量（dashboard聚合使用）。
func CountUnlocked(userID string) (int, error) {
	states, err := Evaluate(userID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, state := range states {
		if state.Unlocked {
			count++
		}
	}
	return count, nil
}
