package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/stardust-edu/career-advisor-backend/internal/platform/ai"
	"github.com/stardust-edu/career-advisor-backend/internal/platform/database"
	"github.com/stardust-edu/career-advisor-backend/internal/subscription"
)

// SourceAI / SourceRules 标记推荐结果产生自哪条路径
const (
	SourceAI    = "ai"
	SourceRules = "rules"
)

const aiAnalysisTimeout = 20 * time.Second

// SubmitInput 是一次测评提交的完整输入
type SubmitInput struct {
	QuizType     string          `json:"quizType"`
	Responses    json.RawMessage `json:"responses"`
	PersonalInfo PersonalInfo    `json:"personalInfo"`
}

// SubmitResult 包含推荐结果和来源标记
type SubmitResult struct {
	Recommendations Recommendations
	Source          string
}

// aiClient 由Setup注入；为nil时所有提交都走规则引擎。
var aiClient ai.Client

// Submit 处理一次测评提交：优先走AI分析，任何失败都回退到规则引擎。
// 这个函数永不失败——结果持久化失败只记日志，推荐照常返回。
func Submit(ctx context.Context, userID string, input SubmitInput) SubmitResult {
	result := SubmitResult{Source: SourceRules}

	// 1. 有资格且AI可用时尝试AI分析
	if canUseAIAnalysis(userID) {
		if recs, err := analyzeWithAI(ctx, input); err == nil {
			result.Recommendations = *recs
			result.Source = SourceAI
		} else {
			fmt.Printf("警告: AI测评分析失败，回退到规则引擎: %v\n", err)
		}
	}

	// 2. AI路径没有产出时用规则引擎兜底
	if result.Source == SourceRules {
		result.Recommendations = Score(input.PersonalInfo)
	}

	// 3. 持久化结果行（失败不影响响应）
	if userID != "" {
		if err := persistResult(userID, input, result); err != nil {
			fmt.Printf("警告: 无法保存测评结果: %v\n", err)
		}
	}
	return result
}

// canUseAIAnalysis 检查用户的订阅档位是否包含AI测评分析。
func canUseAIAnalysis(userID string) bool {
	if aiClient == nil || !aiClient.Enabled() || userID == "" {
		return false
	}
	return subscription.CanAccessFeature(userID, "quiz_ai_analysis").Allowed
}

const analysisSystemPrompt = `你是一个职业规划顾问。根据用户的测评答案和个人信息，` +
	`输出最匹配的职业推荐。只输出JSON，不要任何额外说明。`

// analyzeWithAI 把测评输入交给AI模型，要求按固定schema输出。
func analyzeWithAI(ctx context.Context, input SubmitInput) (*Recommendations, error) {
	ctx, cancel := context.WithTimeout(ctx, aiAnalysisTimeout)
	defer cancel()

	var sb strings.Builder
	sb.WriteString("用户兴趣: ")
	sb.WriteString(strings.Join(input.PersonalInfo.Interests, ", "))
	sb.WriteString("\n用户技能: ")
	sb.WriteString(strings.Join(input.PersonalInfo.Skills, ", "))
	sb.WriteString("\n经验水平: ")
	sb.WriteString(input.PersonalInfo.Experience)
	if len(input.Responses) > 0 {
		sb.WriteString("\n测评答案: ")
		sb.Write(input.Responses)
	}
	sb.WriteString("\n\n按以下JSON schema输出:\n")
	sb.WriteString(`{"primaryCareer":{"title":"","match":0,"description":"","skills":[],"salary":"","outlook":""},` +
		`"alternativeCareers":[],"skillGaps":[],"nextSteps":[]}`)

	var recs Recommendations
	if err := aiClient.GenerateJSON(ctx, analysisSystemPrompt, sb.String(), &recs); err != nil {
		return nil, err
	}
	// 模型偶尔返回空壳JSON，视为失败走规则回退
	if recs.PrimaryCareer.Title == "" {
		return nil, fmt.Errorf("%w: primaryCareer为空", ai.ErrBadJSON)
	}
	return &recs, nil
}

// persistResult 把一次提交写成QuizResult行。
func persistResult(userID string, input SubmitInput, result SubmitResult) error {
	interests, _ := json.Marshal(input.PersonalInfo.Interests)
	skills, _ := json.Marshal(input.PersonalInfo.Skills)

	row := QuizResult{
		UserUUID:   userID,
		QuizType:   input.QuizType,
		CareerPath: result.Recommendations.PrimaryCareer.Title,
		Score:      result.Recommendations.PrimaryCareer.Match,
		Interests:  interests,
		Skills:     skills,
		RawAnswers: []byte(input.Responses),
	}
	if result.Source == SourceAI {
		if blob, err := json.Marshal(result.Recommendations); err == nil {
			row.AIAnalysis = blob
		}
	}
	return database.DB.Create(&row).Error
}

// ListByUser 返回一个用户的历史测评结果（新的在前）。
func ListByUser(userID string, limit int) ([]QuizResult, error) {
	var rows []QuizResult
	tx := database.DB.Where("user_uuid = ?", userID).Order("created_at desc")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	if err := tx.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("无法读取测评历史: %w", err)
	}
	return rows, nil
}

// CountByUser 统计一个用户的测评次数（成就推导使用）。
func CountByUser(userID string) (int64, error) {
	var count int64
	err := database.DB.Model(&QuizResult{}).Where("user_uuid = ?", userID).Count(&count).Error
	return count, err
}
