package dashboard

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/stardust-edu/career-advisor-backend/internal/achievement"
	"github.com/stardust-edu/career-advisor-backend/internal/activity"
	"github.com/stardust-edu/career-advisor-backend/internal/college"
	"github.com/stardust-edu/career-advisor-backend/internal/quiz"
	"github.com/stardust-edu/career-advisor-backend/internal/recommendation"
	"github.com/stardust-edu/career-advisor-backend/internal/skill"
	"github.com/stardust-edu/career-advisor-backend/internal/usage"
	"github.com/stardust-edu/career-advisor-backend/internal/user"
)

const recentActivityLimit = 10

// Stats 是仪表盘的核心统计块
type Stats struct {
	SkillCount    int64                        `json:"skillCount"`
	QuizCount     int64                        `json:"quizCount"`
	SavedColleges int64                        `json:"savedColleges"`
	Achievements  int                          `json:"achievements"`
	Usage         map[string]usage.MetricStats `json:"usage"`
}

// GetDashboard 返回当前用户的聚合视图。
// 这是严格端点：未登录由RequireAuth拦截为401，核心统计失败返回500，
// 永远不返回演示数据。次要分支（动态、推荐）失败时降级为空。
func GetDashboard(c *gin.Context) {
	userID := user.CurrentUserID(c)

	// 1. 核心统计，任何一项失败整个请求失败
	stats, err := coreStats(userID)
	if err != nil {
		fmt.Printf("仪表盘核心统计失败 (user=%s): %v\n", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "无法读取仪表盘数据", "success": false})
		return
	}

	// 2. 次要分支并发拉取，单支失败降级为空
	var (
		wg              sync.WaitGroup
		activities      []activity.ActivityResponse
		recommendations []recommendation.Item
		achievements    []achievement.State
	)
	wg.Add(3)

	go func() {
		defer wg.Done()
		rows, err := activity.ListRecent(userID, recentActivityLimit)
		if err != nil {
			fmt.Printf("警告: 仪表盘读取动态失败: %v\n", err)
			activities = []activity.ActivityResponse{}
			return
		}
		activities = activity.FormatActivities(rows)
	}()
	go func() {
		defer wg.Done()
		set := recommendation.Generate(c.Request.Context(), userID)
		recommendations = set.Items
	}()
	go func() {
		defer wg.Done()
		states, err := achievement.Evaluate(userID)
		if err != nil {
			fmt.Printf("警告: 仪表盘读取成就失败: %v\n", err)
			achievements = []achievement.State{}
			return
		}
		achievements = states
	}()

	wg.Wait()

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"stats":           stats,
		"recentActivity":  activities,
		"recommendations": recommendations,
		"achievements":    achievements,
	})
}

// coreStats 串行读取核心统计。任何一项失败都向上返回错误。
func coreStats(userID string) (*Stats, error) {
	skillCount, err := skill.CountByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("无法统计技能: %w", err)
	}
	quizCount, err := quiz.CountByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("无法统计测评: %w", err)
	}
	collegeCount, err := college.CountSaved(userID)
	if err != nil {
		return nil, fmt.Errorf("无法统计收藏: %w", err)
	}
	unlockedCount, err := achievement.CountUnlocked(userID)
	if err != nil {
		return nil, fmt.Errorf("无法统计成就: %w", err)
	}

	return &Stats{
		SkillCount:    skillCount,
		QuizCount:     quizCount,
		SavedColleges: collegeCount,
		Achievements:  unlockedCount,
		Usage:         usage.GetStats(userID),
	}, nil
}
