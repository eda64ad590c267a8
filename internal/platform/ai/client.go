package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/stardust-edu/career-advisor-backend/internal/platform/config"
)

// Client 是AI文本生成服务商的统一接口。
// 各业务模块通过Setup注入该实例，而不是各自持有模块级单例，方便测试替换。
type Client interface {
	// GenerateText 返回纯文本补全结果。
	GenerateText(ctx context.Context, system, user string) (string, error)

	// GenerateJSON 请求模型输出JSON，剥离Markdown代码围栏后反序列化到out。
	// 解析失败返回包装了原始文本的ErrBadJSON，调用方据此走规则回退。
	GenerateJSON(ctx context.Context, system, user string, out any) error

	// Enabled 报告客户端是否配置了可用的服务商。
	Enabled() bool
}

// --- 错误分类 ---
// 路由层依赖这些哨兵错误来决定对外的错误文案（配额/鉴权/模型不可用/其他）。

var (
	ErrDisabled         = errors.New("AI服务未配置")
	ErrQuota            = errors.New("AI服务商配额不足")
	ErrAuth             = errors.New("AI服务商鉴权失败")
	ErrModelUnavailable = errors.New("AI模型暂不可用")
	ErrBadJSON          = errors.New("AI返回内容不是合法的JSON")
)

// --- 具体实现 ---

type client struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
	maxRetries  int
	httpClient  *http.Client
}

// NewClient 根据配置构造AI客户端。
// 未配置apiKey时返回一个禁用实例，所有调用快速失败，调用方走回退路径。
func NewClient(cfg config.AIConfig) Client {
	if cfg.APIKey == "" {
		return disabledClient{}
	}
	return &client{
		baseURL:     cfg.BaseURL,
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		maxRetries:  cfg.MaxRetries,
		httpClient:  &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
	}
}

func (c *client) Enabled() bool { return true }

// --- OpenAI兼容的chat completions协议 ---

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// doOnce 执行一次HTTP调用，不做重试。
func (c *client) doOnce(ctx context.Context, body chatRequest) (string, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return "", readErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", classifyHTTPError(resp.StatusCode, raw)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("无法解析AI服务商响应: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: 响应中没有choices", ErrModelUnavailable)
	}
	return parsed.Choices[0].Message.Content, nil
}

// classifyHTTPError 将服务商的HTTP状态码映射到本模块的哨兵错误。
func classifyHTTPError(status int, body []byte) error {
	switch {
	case status == http.StatusTooManyRequests || status == http.StatusPaymentRequired:
		return fmt.Errorf("%w: http %d: %s", ErrQuota, status, truncate(body, 200))
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w: http %d", ErrAuth, status)
	case status == http.StatusNotFound || status == http.StatusServiceUnavailable:
		return fmt.Errorf("%w: http %d: %s", ErrModelUnavailable, status, truncate(body, 200))
	default:
		return fmt.Errorf("AI服务商请求失败: http %d: %s", status, truncate(body, 200))
	}
}

// isRetryable 判断一次失败是否值得重试。
// 鉴权失败和JSON问题重试无意义；配额、服务端错误和网络错误可以重试。
func isRetryable(err error) bool {
	if errors.Is(err, ErrAuth) {
		return false
	}
	return true
}

// GenerateText 带有界退避重试地调用服务商。
func (c *client) GenerateText(ctx context.Context, system, user string) (string, error) {
	body := chatRequest{
		Model:       c.model,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}

	backoff := 1 * time.Second
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		text, err := c.doOnce(ctx, body)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if !isRetryable(err) || attempt == c.maxRetries {
			break
		}

		fmt.Printf("AI请求失败，第%d次重试 (等待%v): %v\n", attempt+1, backoff, err)
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			if !timer.Stop() {
				<-timer.C
			}
			return "", ctx.Err()
		case <-timer.C:
		}
		backoff *= 2
	}
	return "", lastErr
}

// GenerateJSON 调用服务商并把结果解析为JSON。
func (c *client) GenerateJSON(ctx context.Context, system, user string, out any) error {
	text, err := c.GenerateText(ctx, system, user)
	if err != nil {
		return err
	}
	return DecodeJSONResponse(text, out)
}

// DecodeJSONResponse 剥离Markdown代码围栏并反序列化模型输出。
// 解析失败时把原始文本带进错误里，方便日志排查。
func DecodeJSONResponse(text string, out any) error {
	cleaned := StripCodeFences(text)
	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		return fmt.Errorf("%w: %v; 原始文本: %s", ErrBadJSON, err, truncate([]byte(text), 500))
	}
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

// --- 禁用实现 ---

type disabledClient struct{}

func (disabledClient) Enabled() bool { return false }

func (disabledClient) GenerateText(ctx context.Context, system, user string) (string, error) {
	return "", ErrDisabled
}

func (disabledClient) GenerateJSON(ctx context.Context, system, user string, out any) error {
	return ErrDisabled
}
