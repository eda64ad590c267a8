package api

import (
	"github.com/gin-gonic/gin"
	"github.com/stardust-edu/career-advisor-backend/internal/achievement"
	"github.com/stardust-edu/career-advisor-backend/internal/activity"
	"github.com/stardust-edu/career-advisor-backend/internal/college"
	"github.com/stardust-edu/career-advisor-backend/internal/dashboard"
	"github.com/stardust-edu/career-advisor-backend/internal/jobhunt"
	"github.com/stardust-edu/career-advisor-backend/internal/quiz"
	"github.com/stardust-edu/career-advisor-backend/internal/recommendation"
	"github.com/stardust-edu/career-advisor-backend/internal/roadmap"
	"github.com/stardust-edu/career-advisor-backend/internal/skill"
	"github.com/stardust-edu/career-advisor-backend/internal/subscription"
	"github.com/stardust-edu/career-advisor-backend/internal/user"
)

// SetupRoutes 注册项目的所有API路由
func SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		// 会话
		api.POST("/session", user.StartSession)

		// Webhook不经过用户中间件，各自做签名校验
		webhooks := api.Group("/webhooks")
		{
			webhooks.POST("/stripe", subscription.HandleStripeWebhook)
			webhooks.POST("/razorpay", subscription.HandleRazorpayWebhook)
		}

		// 其余路由统一尽力加载用户身份
		authed := api.Group("", user.LoadUserMiddleware())
		{
			// 院校目录与收藏
			authed.GET("/colleges", college.GetColleges)
			authed.POST("/colleges", college.CollegeAction)
			authed.GET("/saved-colleges", college.GetSavedColleges)
			authed.POST("/saved-colleges", college.SaveCollege)
			authed.DELETE("/saved-colleges", college.DeleteSavedCollege)

			// 技能
			authed.GET("/skills", skill.GetSkills)
			authed.POST("/skills", skill.SaveSkill)
			authed.DELETE("/skills", skill.DeleteSkill)

			// 测评与推荐
			authed.POST("/quiz/submit", quiz.SubmitQuiz)
			authed.GET("/recommendations", recommendation.GetRecommendations)
			authed.POST("/roadmap/generate", roadmap.GenerateRoadmap)

			// 动态与成就
			authed.GET("/activities", activity.GetActivities)
			authed.GET("/achievements", achievement.GetAchievements)
			authed.POST("/achievements", achievement.AwardAchievement)

			// 订阅与支付
			authed.GET("/subscription", subscription.GetSubscription)
			authed.POST("/subscription", subscription.ManageSubscription)
			authed.POST("/payments/create-checkout", subscription.CreateCheckout)

			// 求职（premium+）
			authed.GET("/jobhunt/matches", jobhunt.GetMatches)
			authed.POST("/jobhunt/outreach", jobhunt.CreateOutreach)

			// 仪表盘是严格端点：必须有有效会话
			authed.GET("/dashboard", user.RequireAuthMiddleware(), dashboard.GetDashboard)
		}
	}
}
