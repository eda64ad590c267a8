package recommendation

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/stardust-edu/career-advisor-backend/internal/activity"
	"github.com/stardust-edu/career-advisor-backend/internal/college"
	"github.com/stardust-edu/career-advisor-backend/internal/platform/ai"
	"github.com/stardust-edu/career-advisor-backend/internal/quiz"
	"github.com/stardust-edu/career-advisor-backend/internal/skill"
)

// SourcePrimary / SourceFallback 标记推荐批次产生自AI还是规则回退
const (
	SourcePrimary  = "primary"
	SourceFallback = "fallback"
)

const (
	maxItems        = 5
	generateTimeout = 20 * time.Second
	recentActivity  = 10
	recentQuizzes   = 3
)

// Item 是单条推荐
type Item struct {
	ID          string                 `json:"id"`
	Type        string                 `json:"type"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Confidence  float64                `json:"confidence"`
	Action      string                 `json:"action"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// Set 是一次生成的完整推荐批次
type Set struct {
	Source string `json:"source"`
	Items  []Item `json:"items"`
}

// userContext 汇总生成提示词所需的用户状态。
// 各分支独立拉取，失败的分支降级为空，不影响其他分支。
type userContext struct {
	Skills     []skill.Skill
	Colleges   []college.SavedCollege
	Quizzes    []quiz.QuizResult
	Activities []activity.Activity
}

// aiClient 由Setup注入；为nil时直接走规则回退。
var aiClient ai.Client

// SetAIClient 注入AI客户端。
func SetAIClient(client ai.Client) {
	aiClient = client
}

// Generate 为一个用户生成推荐批次。
// AI路径的任何失败（网络、配额、解析）都回退到规则引擎，结果永不为空。
func Generate(ctx context.Context, userID string) Set {
	uc := gatherContext(userID)

	if aiClient != nil && aiClient.Enabled() {
		if items, err := generateWithAI(ctx, uc); err == nil {
			result := Set{Source: SourcePrimary, Items: items}
			recordBatch(userID, result)
			return result
		} else {
			fmt.Printf("警告: AI推荐生成失败，回退到规则引擎: %v\n", err)
		}
	}

	result := Set{Source: SourceFallback, Items: ruleBasedItems(uc)}
	recordBatch(userID, result)
	return result
}

// gatherContext 并发拉取四个分支的用户状态。
// 单个分支失败只打日志并降级为空结果。
func gatherContext(userID string) userContext {
	var uc userContext
	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		rows, err := skill.ListByUser(userID)
		if err != nil {
			fmt.Printf("警告: 推荐上下文读取技能失败: %v\n", err)
			return
		}
		uc.Skills = rows
	}()
	go func() {
		defer wg.Done()
		rows, err := college.ListSaved(userID)
		if err != nil {
			fmt.Printf("警告: 推荐上下文读取收藏失败: %v\n", err)
			return
		}
		uc.Colleges = rows
	}()
	go func() {
		defer wg.Done()
		rows, err := quiz.ListByUser(userID, recentQuizzes)
		if err != nil {
			fmt.Printf("警告: 推荐上下文读取测评失败: %v\n", err)
			return
		}
		uc.Quizzes = rows
	}()
	go func() {
		defer wg.Done()
		rows, err := activity.ListRecent(userID, recentActivity)
		if err != nil {
			fmt.Printf("警告: 推荐上下文读取动态失败: %v\n", err)
			return
		}
		uc.Activities = rows
	}()

	wg.Wait()
	return uc
}

const generateSystemPrompt = `你是一个职业发展顾问。根据用户当前的技能、收藏院校、` +
	`测评历史和最近动态，给出最多5条具体可执行的下一步建议。只输出JSON。`

// generateWithAI 构造提示词并调用模型，解析后做形状校验。
func generateWithAI(ctx context.Context, uc userContext) ([]Item, error) {
	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	var parsed struct {
		Recommendations []Item `json:"recommendations"`
	}
	if err := aiClient.GenerateJSON(ctx, generateSystemPrompt, buildPrompt(uc), &parsed); err != nil {
		return nil, err
	}

	items := sanitizeItems(parsed.Recommendations)
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: 推荐列表为空", ai.ErrBadJSON)
	}
	return items, nil
}

// buildPrompt 把用户状态压成自然语言提示词，附带目标schema。
func buildPrompt(uc userContext) string {
	var sb strings.Builder

	sb.WriteString("用户技能:\n")
	if len(uc.Skills) == 0 {
		sb.WriteString("（无）\n")
	}
	for _, s := range uc.Skills {
		fmt.Fprintf(&sb, "- %s: 当前%d / 目标%d\n", s.Name, s.CurrentLevel, s.TargetLevel)
	}

	sb.WriteString("收藏院校:\n")
	if len(uc.Colleges) == 0 {
		sb.WriteString("（无）\n")
	}
	for _, col := range uc.Colleges {
		fmt.Fprintf(&sb, "- %s\n", col.CollegeName)
	}

	sb.WriteString("测评历史:\n")
	if len(uc.Quizzes) == 0 {
		sb.WriteString("（未做过测评）\n")
	}
	for _, q := range uc.Quizzes {
		fmt.Fprintf(&sb, "- %s (匹配度%d)\n", q.CareerPath, q.Score)
	}

	sb.WriteString("最近动态:\n")
	for _, act := range uc.Activities {
		fmt.Fprintf(&sb, "- [%s] %s\n", act.Type, act.Title)
	}

	sb.WriteString("\n按以下JSON schema输出，最多5条:\n")
	sb.WriteString(`{"recommendations":[{"id":"","type":"","title":"","description":"",` +
		`"confidence":0.0,"action":"","metadata":{}}]}`)
	return sb.String()
}

// sanitizeItems 对模型输出做形状校验：
// 丢弃没有标题的条目，置信度钳到[0,1]，最多保留5条。
func sanitizeItems(items []Item) []Item {
	out := make([]Item, 0, maxItems)
	for _, item := range items {
		if item.Title == "" {
			continue
		}
		if item.Confidence < 0 {
			item.Confidence = 0
		}
		if item.Confidence > 1 {
			item.Confidence = 1
		}
		if item.ID == "" {
			item.ID = fmt.Sprintf("ai-%d", len(out)+1)
		}
		out = append(out, item)
		if len(out) == maxItems {
			break
		}
	}
	return out
}

// ruleBasedItems 是确定性的规则回退，保证至少产出一条推荐。
func ruleBasedItems(uc userContext) []Item {
	items := []Item{}

	// 1. 没做过测评 → 先做测评
	if len(uc.Quizzes) == 0 {
		items = append(items, Item{
			ID:          "take-assessment",
			Type:        "assessment",
			Title:       "完成职业测评",
			Description: "回答几个关于兴趣和技能的问题，获得个性化的职业方向。",
			Confidence:  0.9,
			Action:      "/quiz",
		})
	}

	// 2. 有低于目标的技能 → 推当前等级最低的那个
	if lowest := lowestSkillBelowTarget(uc.Skills); lowest != nil {
		items = append(items, Item{
			ID:          "improve-skill",
			Type:        "skill",
			Title:       "提升技能: " + lowest.Name,
			Description: fmt.Sprintf("当前%d，距离目标%d还有空间，建议优先投入。", lowest.CurrentLevel, lowest.TargetLevel),
			Confidence:  0.8,
			Action:      "/skills",
			Metadata:    map[string]interface{}{"skill": lowest.Name},
		})
	}

	// 3. 做过测评但没收藏院校 → 去逛院校目录
	if len(uc.Quizzes) > 0 && len(uc.Colleges) == 0 {
		items = append(items, Item{
			ID:          "explore-colleges",
			Type:        "college",
			Title:       "浏览院校目录",
			Description: "根据测评推荐的方向，看看哪些学校提供对应的专业。",
			Confidence:  0.7,
			Action:      "/colleges",
		})
	}

	// 兜底：上面一条都没命中时给通用建议
	if len(items) == 0 {
		items = append(items, Item{
			ID:          "keep-going",
			Type:        "general",
			Title:       "保持学习节奏",
			Description: "你的资料已经很完整，继续跟踪技能进度，定期回顾职业目标。",
			Confidence:  0.6,
			Action:      "/dashboard",
		})
	}
	return items
}

// lowestSkillBelowTarget 找出当前等级最低、且还没达到目标的技能。
func lowestSkillBelowTarget(skills []skill.Skill) *skill.Skill {
	var lowest *skill.Skill
	for i := range skills {
		s := &skills[i]
		if s.CurrentLevel >= s.TargetLevel {
			continue
		}
		if lowest == nil || s.CurrentLevel < lowest.CurrentLevel {
			lowest = s
		}
	}
	return lowest
}

// recordBatch 为这次生成写一条Activity，只记数量不记内容。
func recordBatch(userID string, set Set) {
	if userID == "" {
		return
	}
	activity.Record(userID, activity.TypeRecommendations,
		"生成个性化推荐", "",
		map[string]interface{}{
			"count":  len(set.Items),
			"source": set.Source,
		})
}
