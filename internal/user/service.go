package user

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/stardust-edu/career-advisor-backend/internal/platform/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NewUserID 生成一个新的用户UUID（v7，时间有序，利于索引局部性）。
func NewUserID() (string, error) {
	newUUID, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("无法生成UUID v7: %w", err)
	}
	return newUUID.String(), nil
}

// IsValidUUID 检查一个字符串是否是合法的UUID。
func IsValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// IsKnownUser 检查一个UUID是否属于已注册用户。
// 优先查Redis缓存；缓存不可用时回源数据库，保证认证路径不被缓存故障阻塞。
func IsKnownUser(uuidStr string) (bool, error) {
	if uuidStr == "" {
		return false, nil
	}

	if database.IsRedisHealthy() {
		exists, err := database.RDB.SIsMember(database.Ctx, KnownUsersKey, uuidStr).Result()
		if err == nil {
			return exists, nil
		}
		fmt.Printf("检查Redis用户缓存时出错，回源数据库: %v\n", err)
	}

	var count int64
	if err := database.DB.Model(&User{}).Where("uuid = ?", uuidStr).Count(&count).Error; err != nil {
		return false, fmt.Errorf("无法从数据库确认用户: %w", err)
	}
	return count > 0, nil
}

// EnsureUser 幂等地创建一个用户记录，并同步到Redis缓存。
// 重复调用同一个UUID不会产生重复行。
func EnsureUser(uuidStr, email, firstName, lastName string) error {
	if !IsValidUUID(uuidStr) {
		return errors.New("无效的用户UUID")
	}

	newUser := User{
		UUID:      uuidStr,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Tier:      "free",
	}
	// upsert：已存在时什么都不做
	err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "uuid"}},
		DoNothing: true,
	}).Create(&newUser).Error
	if err != nil {
		return fmt.Errorf("无法创建用户记录: %w", err)
	}

	// 缓存写入失败只记录，不影响主流程
	if database.IsRedisHealthy() {
		if err := database.RDB.SAdd(database.Ctx, KnownUsersKey, uuidStr).Err(); err != nil {
			fmt.Printf("无法将用户 %s 写入Redis缓存: %v\n", uuidStr, err)
		}
	}
	return nil
}

// GetByID 根据UUID读取用户记录。用户不存在时返回nil。
func GetByID(uuidStr string) (*User, error) {
	var u User
	err := database.DB.Where("uuid = ?", uuidStr).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("无法读取用户 %s: %w", uuidStr, err)
	}
	return &u, nil
}

// UpdateSubscriptionSnapshot 回写用户行上的订阅快照字段。
func UpdateSubscriptionSnapshot(uuidStr, tier, status string) error {
	return database.DB.Model(&User{}).Where("uuid = ?", uuidStr).
		Updates(map[string]interface{}{"tier": tier, "subscription_status": status}).Error
}
