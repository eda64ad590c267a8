package jobhunt

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stardust-edu/career-advisor-backend/internal/activity"
	"github.com/stardust-edu/career-advisor-backend/internal/subscription"
	"github.com/stardust-edu/career-advisor-backend/internal/user"
)

// JobMatchResponse 是职位匹配的API响应模型
type JobMatchResponse struct {
	ID           uint        `json:"id"`
	JobTitle     string      `json:"jobTitle"`
	Company      string      `json:"company"`
	Location     string      `json:"location"`
	MatchScore   int         `json:"matchScore"`
	JobURL       string      `json:"jobUrl,omitempty"`
	MatchReasons interface{} `json:"matchReasons,omitempty"`
}

// requireJobHunting 检查用户档位是否包含求职功能（premium及以上）。
func requireJobHunting(c *gin.Context, userID string) bool {
	if access := subscription.CanAccessFeature(userID, "job_hunting"); !access.Allowed {
		c.JSON(http.StatusForbidden, gin.H{
			"error":        "求职功能需要premium及以上订阅",
			"success":      false,
			"requiredTier": string(subscription.TierPremium),
		})
		return false
	}
	return true
}

// GetMatches 返回当前用户的职位匹配列表
func GetMatches(c *gin.Context) {
	userID := user.CurrentUserID(c)
	if !requireJobHunting(c, userID) {
		return
	}

	rows, err := ListMatches(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "无法读取职位匹配", "success": false})
		return
	}

	responses := make([]JobMatchResponse, 0, len(rows))
	for _, row := range rows {
		resp := JobMatchResponse{
			ID:         row.ID,
			JobTitle:   row.JobTitle,
			Company:    row.Company,
			Location:   row.Location,
			MatchScore: row.MatchScore,
			JobURL:     row.JobURL,
		}
		if len(row.MatchReasons) > 0 {
			resp.MatchReasons = json.RawMessage(row.MatchReasons)
		}
		responses = append(responses, resp)
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "matches": responses})
}

// CreateOutreach 生成一份外联文案
func CreateOutreach(c *gin.Context) {
	userID := user.CurrentUserID(c)
	if !requireJobHunting(c, userID) {
		return
	}

	var input OutreachInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}
	if input.DraftType == "" {
		input.DraftType = OutreachEmail
	}
	if !validDraftType(input.DraftType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未知的文案类型: " + input.DraftType})
		return
	}

	draft, err := GenerateOutreach(c.Request.Context(), userID, input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "无法生成外联文案", "success": false})
		return
	}

	activity.Record(userID, activity.TypeOutreachGenerated,
		"生成外联文案", "类型: "+draft.DraftType,
		map[string]interface{}{"type": draft.DraftType, "source": draft.Source})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"draft": gin.H{
			"id":      draft.ID,
			"type":    draft.DraftType,
			"subject": draft.Subject,
			"content": draft.Content,
			"source":  draft.Source,
		},
	})
}
