package achievement

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stardust-edu/career-advisor-backend/internal/user"
)

// AwardBody 定义了显式解锁的请求体
type AwardBody struct {
	AchievementID string `json:"achievementId"`
}

// GetAchievements 返回当前用户的全部成就状态
func GetAchievements(c *gin.Context) {
	userID := user.CurrentUserID(c)

	states, err := Evaluate(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "无法读取成就状态", "success": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "achievements": states})
}

// AwardAchievement 按id显式解锁一个成就
func AwardAchievement(c *gin.Context) {
	userID := user.CurrentUserID(c)

	var body AwardBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}
	if body.AchievementID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少必填字段: achievementId"})
		return
	}

	state, err := Award(userID, body.AchievementID)
	if err != nil {
		if errors.Is(err, ErrUnknownAchievement) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "未知的成就id: " + body.AchievementID})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "无法解锁成就"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "achievement": state})
}
