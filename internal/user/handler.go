package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SessionBody 定义了会话创建的请求体
type SessionBody struct {
	UserID    string `json:"userId"` // 可选：已有用户续签
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// StartSession 创建（或复用）一个用户并签发会话Token。
// Token同时写进响应体和cookie，前端任选一种携带方式。
func StartSession(c *gin.Context) {
	var body SessionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	userID := body.UserID
	if userID == "" {
		newID, err := NewUserID()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "无法生成用户ID"})
			return
		}
		userID = newID
	} else if !IsValidUUID(userID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId不是合法的UUID"})
		return
	}

	if err := EnsureUser(userID, body.Email, body.FirstName, body.LastName); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "无法创建用户"})
		return
	}

	tokenString, err := IssueSessionToken(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "无法签发会话Token"})
		return
	}

	c.SetCookie("session-token", tokenString, int(sessionTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"userId":  userID,
		"token":   tokenString,
	})
}
