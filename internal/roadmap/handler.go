package roadmap

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stardust-edu/career-advisor-backend/internal/activity"
	"github.com/stardust-edu/career-advisor-backend/internal/platform/ai"
	"github.com/stardust-edu/career-advisor-backend/internal/subscription"
	"github.com/stardust-edu/career-advisor-backend/internal/usage"
	"github.com/stardust-edu/career-advisor-backend/internal/user"
)

// GenerateRoadmap 处理路线图生成。
// 这是严格端点：参数缺失返回400，AI失败返回500和分类后的错误文案，不降级。
func GenerateRoadmap(c *gin.Context) {
	userID := user.CurrentUserID(c)

	var input GenerateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error(), "success": false})
		return
	}
	if input.CareerGoal == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少必填字段: careerGoal", "success": false})
		return
	}

	// 1. 档位功能检查
	if access := subscription.CanAccessFeature(userID, "roadmap_generation"); !access.Allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": "当前订阅档位不包含路线图生成", "success": false})
		return
	}

	// 2. 每日限额检查
	if check := usage.CheckLimit(userID, subscription.MetricRoadmapsGenerated); !check.Allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": check.Reason, "success": false})
		return
	}

	// 3. 生成
	result, err := Generate(c.Request.Context(), userID, input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": categorizeError(err), "success": false})
		return
	}

	// 4. 成功后才计量和记录动态
	usage.Track(userID, subscription.MetricRoadmapsGenerated, 1)
	activity.Record(userID, activity.TypeRoadmapGenerated,
		"生成学习路线图: "+input.CareerGoal, "",
		map[string]interface{}{"careerGoal": input.CareerGoal, "phases": len(result.Phases)})

	c.JSON(http.StatusOK, gin.H{"success": true, "roadmap": result})
}

// categorizeError 把AI错误映射成对外的文案。
func categorizeError(err error) string {
	switch {
	case errors.Is(err, ai.ErrQuota):
		return "AI服务配额不足，请稍后再试"
	case errors.Is(err, ai.ErrAuth):
		return "AI服务配置有误，请联系管理员"
	case errors.Is(err, ai.ErrModelUnavailable):
		return "AI模型暂不可用，请稍后再试"
	case errors.Is(err, ai.ErrDisabled):
		return "AI服务未配置"
	default:
		return "路线图生成失败，请稍后再试"
	}
}
