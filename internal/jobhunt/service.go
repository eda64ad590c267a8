package jobhunt

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/stardust-edu/career-advisor-backend/internal/platform/ai"
	"github.com/stardust-edu/career-advisor-backend/internal/platform/database"
	"github.com/stardust-edu/career-advisor-backend/internal/skill"
)

// 文案来源标记
const (
	DraftSourceAI       = "ai"
	DraftSourceTemplate = "template"
)

const outreachTimeout = 30 * time.Second

// OutreachInput 定义了外联文案生成的输入
type OutreachInput struct {
	DraftType  string `json:"type"` // email / cover_letter / linkedin
	JobTitle   string `json:"jobTitle"`
	Company    string `json:"company"`
	JobMatchID *uint  `json:"jobMatchId"`
	Notes      string `json:"notes"`
}

// aiClient 由Setup注入。
var aiClient ai.Client

// SetAIClient 注入AI客户端。
func SetAIClient(client ai.Client) {
	aiClient = client
}

func validDraftType(t string) bool {
	return t == OutreachEmail || t == OutreachCoverLetter || t == OutreachLinkedIn
}

// GenerateOutreach 生成一份外联文案并持久化。
// AI失败时退回模板文案，文案来源打在Source字段上。
func GenerateOutreach(ctx context.Context, userID string, input OutreachInput) (*OutreachDraft, error) {
	if !validDraftType(input.DraftType) {
		return nil, fmt.Errorf("未知的文案类型: %s", input.DraftType)
	}

	subject, content, source := composeDraft(ctx, userID, input)

	draft := OutreachDraft{
		UserUUID:   userID,
		JobMatchID: input.JobMatchID,
		DraftType:  input.DraftType,
		Subject:    subject,
		Content:    content,
		Source:     source,
	}
	if err := database.DB.Create(&draft).Error; err != nil {
		return nil, fmt.Errorf("无法保存外联文案: %w", err)
	}
	return &draft, nil
}

// composeDraft 优先走AI，失败退回模板。
func composeDraft(ctx context.Context, userID string, input OutreachInput) (subject, content, source string) {
	if aiClient != nil && aiClient.Enabled() {
		if s, c, err := draftWithAI(ctx, userID, input); err == nil {
			return s, c, DraftSourceAI
		} else {
			fmt.Printf("警告: AI外联文案生成失败，使用模板: %v\n", err)
		}
	}
	s, c := templateDraft(input)
	return s, c, DraftSourceTemplate
}

const outreachSystemPrompt = `你是一个求职顾问。为用户撰写专业、简洁、个性化的求职外联文案。` +
	`只输出JSON: {"subject":"","content":""}。`

func draftWithAI(ctx context.Context, userID string, input OutreachInput) (string, string, error) {
	ctx, cancel := context.WithTimeout(ctx, outreachTimeout)
	defer cancel()

	var sb strings.Builder
	fmt.Fprintf(&sb, "文案类型: %s\n目标职位: %s\n公司: %s\n", input.DraftType, input.JobTitle, input.Company)
	if input.Notes != "" {
		fmt.Fprintf(&sb, "补充说明: %s\n", input.Notes)
	}

	// 把用户技能带进提示词，失败就不带
	if skills, err := skill.ListByUser(userID); err == nil && len(skills) > 0 {
		names := make([]string, 0, len(skills))
		for _, s := range skills {
			names = append(names, s.Name)
		}
		fmt.Fprintf(&sb, "用户技能: %s\n", strings.Join(names, ", "))
	}

	var parsed struct {
		Subject string `json:"subject"`
		Content string `json:"content"`
	}
	if err := aiClient.GenerateJSON(ctx, outreachSystemPrompt, sb.String(), &parsed); err != nil {
		return "", "", err
	}
	if parsed.Content == "" {
		return "", "", fmt.Errorf("%w: content为空", ai.ErrBadJSON)
	}
	return parsed.Subject, parsed.Content, nil
}

// templateDraft 是确定性的模板兜底。
func templateDraft(input OutreachInput) (subject, content string) {
	company := input.Company
	if company == "" {
		company = "贵公司"
	}
	title := input.JobTitle
	if title == "" {
		title = "该职位"
	}

	switch input.DraftType {
	case OutreachCoverLetter:
		subject = fmt.Sprintf("%s求职信", title)
		content = fmt.Sprintf(
			"尊敬的招聘负责人：\n\n我对%s的%s职位非常感兴趣。"+
				"我的技能背景与该职位的要求高度契合，希望能有机会进一步沟通。\n\n"+
				"感谢您的时间，期待您的回复。",
			company, title)
	case OutreachLinkedIn:
		subject = ""
		content = fmt.Sprintf(
			"您好！我注意到%s正在招聘%s。我对这个方向很感兴趣，"+
				"想和您简单聊聊团队的情况，谢谢！",
			company, title)
	default: // email
		subject = fmt.Sprintf("应聘%s - 求职咨询", title)
		content = fmt.Sprintf(
			"您好：\n\n我在浏览职位信息时看到%s的%s岗位，"+
				"我的背景和该岗位比较匹配，想咨询一下招聘的进展。"+
				"如方便的话希望能约个时间简单沟通。\n\n谢谢！",
			company, title)
	}
	return subject, content
}

// ListMatches 返回一个用户的职位匹配列表（按分数降序）。
func ListMatches(userID string) ([]JobMatch, error) {
	var rows []JobMatch
	err := database.DB.
		Where("user_uuid = ?", userID).
		Order("match_score desc").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("无法读取职位匹配: %w", err)
	}
	return rows, nil
}
