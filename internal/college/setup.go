package college

import (
	"fmt"

	"github.com/stardust-edu/career-advisor-backend/internal/platform/database"
	"gorm.io/gorm/clause"
)

// PrimeDB 负责初始化college模块的数据库部分
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&College{}, &SavedCollege{}); err != nil {
		return fmt.Errorf("无法迁移college表: %w", err)
	}

	// 把内置数据集播种进目录表，已存在的行跳过
	seed := FallbackColleges()
	err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "college_id"}},
		DoNothing: true,
	}).Create(&seed).Error
	if err != nil {
		return fmt.Errorf("无法播种院校目录: %w", err)
	}

	fmt.Println("College数据库表迁移成功。")
	return nil
}
