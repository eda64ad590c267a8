package jobhunt

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// 外联文案类型
const (
	OutreachEmail       = "email"
	OutreachCoverLetter = "cover_letter"
	OutreachLinkedIn    = "linkedin"
)

// JobMatch 是为用户找到的职位匹配
type JobMatch struct {
	gorm.Model

	UserUUID   string `gorm:"index;not null;type:varchar(36)"`
	JobTitle   string `gorm:"not null;type:varchar(200)"`
	Company    string `gorm:"type:varchar(200)"`
	Location   string `gorm:"type:varchar(200)"`
	MatchScore int    `gorm:"not null;default:0"` // 0-100
	JobURL     string `gorm:"type:varchar(500)"`

	MatchReasons datatypes.JSON `gorm:"type:json"` // 匹配原因列表
}

// OutreachDraft 是生成的外联文案，可选关联到一个JobMatch。
type OutreachDraft struct {
	gorm.Model

	UserUUID   string `gorm:"index;not null;type:varchar(36)"`
	JobMatchID *uint  `gorm:"index"`
	DraftType  string `gorm:"not null;type:varchar(30)"` // email / cover_letter / linkedin
	Subject    string `gorm:"type:varchar(300)"`
	Content    string `gorm:"type:text;not null"`
	Source     string `gorm:"type:varchar(20)"` // ai / template
}

// Resume 保存用户上传的简历和AI抽取的结构化信息。
type Resume struct {
	gorm.Model

	UserUUID string `gorm:"index;not null;type:varchar(36)"`
	FileName string `gorm:"type:varchar(300)"`
	RawText  string `gorm:"type:text"`

	ExtractedSkills     datatypes.JSON `gorm:"type:json"`
	ExtractedExperience datatypes.JSON `gorm:"type:json"`
}
