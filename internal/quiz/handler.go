package quiz

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stardust-edu/career-advisor-backend/internal/activity"
	"github.com/stardust-edu/career-advisor-backend/internal/user"
)

// SubmitQuiz 处理测评提交。
// 这个端点永远返回200：请求体残缺时用空画像打分，
// AI失败时走规则引擎，持久化失败时只丢结果行。
func SubmitQuiz(c *gin.Context) {
	userID := user.CurrentUserID(c)

	var input SubmitInput
	// 解析失败不报错，用零值画像继续走规则引擎
	_ = c.ShouldBindJSON(&input)

	result := Submit(c.Request.Context(), userID, input)

	if userID != "" {
		activity.Record(userID, activity.TypeQuizCompleted,
			"完成职业测评", "主推荐: "+result.Recommendations.PrimaryCareer.Title,
			map[string]interface{}{
				"career": result.Recommendations.PrimaryCareer.Title,
				"match":  result.Recommendations.PrimaryCareer.Match,
				"source": result.Source,
			})
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"recommendations": result.Recommendations,
		"source":          result.Source,
	})
}
