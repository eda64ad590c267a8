package skill

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stardust-edu/career-advisor-backend/internal/activity"
	"github.com/stardust-edu/career-advisor-backend/internal/user"
)

// SkillRequestBody 定义了技能写操作的请求体
type SkillRequestBody struct {
	Action       string `json:"action"` // add / update，默认add
	Name         string `json:"name"`
	Category     string `json:"category"`
	CurrentLevel *int   `json:"currentLevel"`
	TargetLevel  *int   `json:"targetLevel"`
}

// SkillResponse 是技能的API响应模型
type SkillResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	CurrentLevel int    `json:"currentLevel"`
	TargetLevel  int    `json:"targetLevel"`
}

func formatSkill(s Skill) SkillResponse {
	return SkillResponse{
		ID:           s.ID,
		Name:         s.Name,
		Category:     s.Category,
		CurrentLevel: s.CurrentLevel,
		TargetLevel:  s.TargetLevel,
	}
}

// GetSkills 返回当前用户的技能列表
func GetSkills(c *gin.Context) {
	userID := user.CurrentUserID(c)

	skills, err := ListByUser(userID)
	if err != nil {
		// 可降级内容：读取失败返回空列表
		c.JSON(http.StatusOK, gin.H{"success": true, "skills": []SkillResponse{}})
		return
	}

	responses := make([]SkillResponse, 0, len(skills))
	for _, s := range skills {
		responses = append(responses, formatSkill(s))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "skills": responses})
}

// SaveSkill 处理技能的添加与进度更新
func SaveSkill(c *gin.Context) {
	userID := user.CurrentUserID(c)

	var body SkillRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}
	if body.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少必填字段: name"})
		return
	}

	switch body.Action {
	case "", "add":
		currentLevel := 0
		if body.CurrentLevel != nil {
			currentLevel = *body.CurrentLevel
		}
		targetLevel := 100
		if body.TargetLevel != nil {
			targetLevel = *body.TargetLevel
		}

		row, err := Upsert(userID, body.Name, body.Category, currentLevel, targetLevel)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "保存技能失败"})
			return
		}
		activity.Record(userID, activity.TypeSkillAdded, "添加技能: "+body.Name, "", map[string]interface{}{
			"skill": body.Name,
			"level": row.CurrentLevel,
		})
		c.JSON(http.StatusOK, gin.H{"success": true, "skill": formatSkill(*row)})

	case "update":
		if body.CurrentLevel == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "缺少必填字段: currentLevel"})
			return
		}
		row, err := UpdateProgress(userID, body.Name, *body.CurrentLevel)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "更新技能失败"})
			return
		}
		if row == nil {
			c.JSON(http.StatusOK, gin.H{"success": true, "notFound": true, "message": "技能不存在"})
			return
		}
		activity.Record(userID, activity.TypeSkillUpdated, "更新技能进度: "+body.Name, "", map[string]interface{}{
			"skill": body.Name,
			"level": row.CurrentLevel,
		})
		c.JSON(http.StatusOK, gin.H{"success": true, "skill": formatSkill(*row)})

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "未知的action: " + body.Action})
	}
}

// DeleteSkill 删除一个技能。技能不存在时仍然返回成功。
func DeleteSkill(c *gin.Context) {
	userID := user.CurrentUserID(c)

	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少必填参数: name"})
		return
	}

	found, err := Remove(userID, name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "删除技能失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "notFound": !found})
}
