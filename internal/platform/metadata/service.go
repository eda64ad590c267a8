package metadata

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// --- Generic Accessors ---

// GetValue retrieves a value for a given key from the metadata table.
func GetValue(db *gorm.DB, key string) (string, error) {
	var meta Metadata
	err := db.Where("key = ?", key).First(&meta).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// If the key doesn't exist, return an empty string, which is a valid default.
			return "", nil
		}
		return "", err
	}
	return meta.Value, nil
}

// SetValue creates or updates a value for a given key.
func SetValue(db *gorm.DB, key, value string) error {
	// Use GORM's OnConflict clause for an efficient and atomic "upsert" operation.
	meta := Metadata{
		Key:   key,
		Value: value,
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&meta).Error
}

// --- Specific Helpers for Type Conversion ---

// GetLastUsageFlushAt 读取最近一次用量落库时间。没有记录时返回零值。
func GetLastUsageFlushAt(db *gorm.DB) (time.Time, error) {
	valueStr, err := GetValue(db, LastUsageFlushAtKey)
	if err != nil {
		return time.Time{}, err
	}
	if valueStr == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, valueStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("无法解析元数据 '%s' 的值: %w", LastUsageFlushAtKey, err)
	}
	return t, nil
}

// SetLastUsageFlushAt 写入最近一次用量落库时间。
func SetLastUsageFlushAt(db *gorm.DB, t time.Time) error {
	return SetValue(db, LastUsageFlushAtKey, t.Format(time.RFC3339))
}
