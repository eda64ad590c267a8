package skill

import (
	"errors"
	"fmt"

	"github.com/stardust-edu/career-advisor-backend/internal/platform/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListByUser 返回一个用户的全部技能。
func ListByUser(userID string) ([]Skill, error) {
	var skills []Skill
	err := database.DB.
		Where("user_uuid = ?", userID).
		Order("created_at desc").
		Find(&skills).Error
	if err != nil {
		return nil, fmt.Errorf("无法读取技能列表: %w", err)
	}
	return skills, nil
}

// Upsert 创建或更新一个技能，等级先钳到[0,100]。
// (user, name) 唯一，重复添加同名技能等价于更新。
func Upsert(userID, name, category string, currentLevel, targetLevel int) (*Skill, error) {
	if name == "" {
		return nil, errors.New("技能名不能为空")
	}

	row := Skill{
		UserUUID:     userID,
		Name:         name,
		Category:     category,
		CurrentLevel: ClampLevel(currentLevel),
		TargetLevel:  ClampLevel(targetLevel),
	}
	err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_uuid"}, {Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"category", "current_level", "target_level"}),
	}).Create(&row).Error
	if err != nil {
		return nil, fmt.Errorf("无法保存技能: %w", err)
	}
	return &row, nil
}

// UpdateProgress 更新一个技能的当前等级。技能不存在时返回nil。
func UpdateProgress(userID, name string, currentLevel int) (*Skill, error) {
	var row Skill
	err := database.DB.Where("user_uuid = ? AND name = ?", userID, name).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("无法查询技能: %w", err)
	}

	row.CurrentLevel = ClampLevel(currentLevel)
	if err := database.DB.Model(&row).Update("current_level", row.CurrentLevel).Error; err != nil {
		return nil, fmt.Errorf("无法更新技能进度: %w", err)
	}
	return &row, nil
}

// Remove 删除一个技能。技能本就不存在时同样视为成功。
func Remove(userID, name string) (found bool, err error) {
	result := database.DB.Where("user_uuid = ? AND name = ?", userID, name).Delete(&Skill{})
	if result.Error != nil {
		return false, fmt.Errorf("无法删除技能: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// CountByUser 统计一个用户的技能数量（成就推导使用）。
func CountByUser(userID string) (int64, error) {
	var count int64
	err := database.DB.Model(&Skill{}).Where("user_uuid = ?", userID).Count(&count).Error
	return count, err
}
