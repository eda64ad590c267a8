package activity

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stardust-edu/career-advisor-backend/internal/user"
)

// ActivityResponse 是活动日志的API响应模型
type ActivityResponse struct {
	ID          uint        `json:"id"`
	Type        string      `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Metadata    interface{} `json:"metadata,omitempty"`
	CreatedAt   string      `json:"createdAt"`
}

// GetActivities 返回当前用户最近的活动流
func GetActivities(c *gin.Context) {
	userID := user.CurrentUserID(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	rows, err := ListRecent(userID, limit)
	if err != nil {
		// 活动流属于可降级内容：读取失败时返回空列表而不是报错
		c.JSON(http.StatusOK, gin.H{"success": true, "activities": []ActivityResponse{}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "activities": FormatActivities(rows)})
}

// FormatActivities 把活动行批量转换成响应模型（dashboard聚合复用）。
func FormatActivities(rows []Activity) []ActivityResponse {
	responses := make([]ActivityResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, formatActivity(row))
	}
	return responses
}

func formatActivity(row Activity) ActivityResponse {
	resp := ActivityResponse{
		ID:          row.ID,
		Type:        row.Type,
		Title:       row.Title,
		Description: row.Description,
		CreatedAt:   row.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if len(row.Metadata) > 0 {
		resp.Metadata = json.RawMessage(row.Metadata)
	}
	return resp
}
