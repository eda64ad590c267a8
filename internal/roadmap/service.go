package roadmap

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/stardust-edu/career-advisor-backend/internal/platform/ai"
	"github.com/stardust-edu/career-advisor-backend/internal/platform/database"
)

const generateTimeout = 45 * time.Second

// GenerateInput 定义了路线图生成的请求参数
type GenerateInput struct {
	CareerGoal    string   `json:"careerGoal"`
	CurrentLevel  string   `json:"currentLevel"`
	Timeframe     string   `json:"timeframe"`
	Interests     []string `json:"interests"`
	Skills        []string `json:"skills"`
	CurrentSkills []string `json:"currentSkills"` // 旧字段名，和skills合并
	LearningStyle string   `json:"learningStyle"`
	Budget        string   `json:"budget"`
}

// Phase 是路线图中的一个阶段
type Phase struct {
	Title       string   `json:"title"`
	Duration    string   `json:"duration"`
	Goals       []string `json:"goals"`
	Resources   []string `json:"resources"`
	Milestones  []string `json:"milestones"`
	Description string   `json:"description"`
}

// Result 是模型输出的完整路线图
type Result struct {
	CareerGoal string   `json:"careerGoal"`
	Overview   string   `json:"overview"`
	Phases     []Phase  `json:"phases"`
	Tips       []string `json:"tips"`
}

// aiClient 由Setup注入。
var aiClient ai.Client

// SetAIClient 注入AI客户端。
func SetAIClient(client ai.Client) {
	aiClient = client
}

// mergedSkills 合并新旧两个技能字段。
func (in GenerateInput) mergedSkills() []string {
	if len(in.Skills) > 0 {
		return in.Skills
	}
	return in.CurrentSkills
}

const roadmapSystemPrompt = `你是一个职业规划顾问。为用户生成一份分阶段的学习路线图，` +
	`每个阶段包含目标、资源和里程碑。只输出JSON，不要任何额外说明。`

// Generate 调用模型生成路线图并持久化。
// 这是严格端点：AI失败原样返回分类错误，不做规则兜底。
func Generate(ctx context.Context, userID string, input GenerateInput) (*Result, error) {
	if aiClient == nil || !aiClient.Enabled() {
		return nil, ai.ErrDisabled
	}

	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	var result Result
	if err := aiClient.GenerateJSON(ctx, roadmapSystemPrompt, buildPrompt(input), &result); err != nil {
		return nil, err
	}
	if len(result.Phases) == 0 {
		return nil, fmt.Errorf("%w: 路线图没有阶段", ai.ErrBadJSON)
	}
	if result.CareerGoal == "" {
		result.CareerGoal = input.CareerGoal
	}

	if err := persist(userID, input, result); err != nil {
		// 生成已经成功，持久化失败不回滚响应
		fmt.Printf("警告: 无法保存路线图: %v\n", err)
	}
	return &result, nil
}

func buildPrompt(input GenerateInput) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "职业目标: %s\n", input.CareerGoal)
	if input.CurrentLevel != "" {
		fmt.Fprintf(&sb, "当前水平: %s\n", input.CurrentLevel)
	}
	if input.Timeframe != "" {
		fmt.Fprintf(&sb, "期望周期: %s\n", input.Timeframe)
	}
	if len(input.Interests) > 0 {
		fmt.Fprintf(&sb, "兴趣方向: %s\n", strings.Join(input.Interests, ", "))
	}
	if skills := input.mergedSkills(); len(skills) > 0 {
		fmt.Fprintf(&sb, "已有技能: %s\n", strings.Join(skills, ", "))
	}
	if input.LearningStyle != "" {
		fmt.Fprintf(&sb, "学习偏好: %s\n", input.LearningStyle)
	}
	if input.Budget != "" {
		fmt.Fprintf(&sb, "预算: %s\n", input.Budget)
	}

	sb.WriteString("\n按以下JSON schema输出:\n")
	sb.WriteString(`{"careerGoal":"","overview":"","phases":[{"title":"","duration":"",` +
		`"description":"","goals":[],"resources":[],"milestones":[]}],"tips":[]}`)
	return sb.String()
}

func persist(userID string, input GenerateInput, result Result) error {
	if userID == "" {
		return nil
	}
	request, _ := json.Marshal(input)
	content, _ := json.Marshal(result)

	row := Roadmap{
		UserUUID:   userID,
		CareerGoal: input.CareerGoal,
		Timeframe:  input.Timeframe,
		Level:      input.CurrentLevel,
		Request:    request,
		Content:    content,
	}
	return database.DB.Create(&row).Error
}

// CountByUser 统计一个用户生成过的路线图数量。
func CountByUser(userID string) (int64, error) {
	var count int64
	err := database.DB.Model(&Roadmap{}).Where("user_uuid = ?", userID).Count(&count).Error
	return count, err
}
