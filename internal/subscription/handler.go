package subscription

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stardust-edu/career-advisor-backend/internal/user"
)

// ActionRequestBody 定义了订阅管理操作的请求体
type ActionRequestBody struct {
	Action string `json:"action" binding:"required"`
}

// GetSubscription 返回当前用户解析后的权益状态
func GetSubscription(c *gin.Context) {
	userID := user.CurrentUserID(c)

	status := GetStatus(userID)
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"subscription": status,
	})
}

// ManageSubscription 处理取消/恢复订阅的请求
func ManageSubscription(c *gin.Context) {
	userID := user.CurrentUserID(c)

	var body ActionRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	switch body.Action {
	case "cancel":
		sub, err := RequestCancel(userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "取消订阅失败"})
			return
		}
		if sub == nil {
			c.JSON(http.StatusOK, gin.H{"success": true, "message": "没有可取消的订阅", "notFound": true})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "订阅将在本周期结束时取消", "expiresAt": sub.PeriodEnd})

	case "reactivate":
		sub, err := RequestReactivate(userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "恢复订阅失败"})
			return
		}
		if sub == nil {
			c.JSON(http.StatusOK, gin.H{"success": true, "message": "没有待恢复的订阅", "notFound": true})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "订阅已恢复"})

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "未知的action: " + body.Action})
	}
}
