package recommendation

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stardust-edu/career-advisor-backend/internal/user"
)

// GetRecommendations 返回当前用户的推荐批次。
// 生成过程内部已兜底，这个端点永远返回200和非空列表。
func GetRecommendations(c *gin.Context) {
	userID := user.CurrentUserID(c)

	set := Generate(c.Request.Context(), userID)
	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"source":          set.Source,
		"recommendations": set.Items,
	})
}
