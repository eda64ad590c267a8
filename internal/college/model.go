package college

import (
	"gorm.io/gorm"
)

// College 定义了院校目录中的一条记录。
// 目录随应用内置一份种子数据，数据库不可用时直接用内存数据兜底。
type College struct {
	gorm.Model

	CollegeID string `gorm:"uniqueIndex;not null;type:varchar(50)"`
	Name      string `gorm:"not null;type:varchar(255)"`
	Location  string `gorm:"type:varchar(255)"`
	State     string `gorm:"index;type:varchar(50)"`
	Type      string `gorm:"type:varchar(50)"` // public / private
	Majors    string `gorm:"type:text"`        // 逗号分隔的专业列表
	Ranking   int
}

// SavedCollege 定义了用户收藏的院校。
// (user, college) 唯一；重复收藏是无害的upsert空操作。
type SavedCollege struct {
	gorm.Model

	UserUUID  string `gorm:"not null;type:varchar(36);uniqueIndex:idx_user_college,priority:1"`
	CollegeID string `gorm:"not null;type:varchar(50);uniqueIndex:idx_user_college,priority:2"`

	// 冗余保存名称等展示字段，避免列表页再回表
	CollegeName     string `gorm:"type:varchar(255)"`
	CollegeLocation string `gorm:"type:varchar(255)"`
	CollegeType     string `gorm:"type:varchar(50)"`
}
