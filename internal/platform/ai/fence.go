package ai

import "strings"

// StripCodeFences 去掉模型习惯性包裹在JSON外面的Markdown代码围栏。
// 支持 ```json ... ``` 和裸 ``` ... ``` 两种形式；没有围栏时原样返回。
func StripCodeFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	// 去掉起始围栏行（可能带有语言标记，如```json）
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	} else {
		return strings.TrimSpace(strings.TrimPrefix(trimmed, "```"))
	}

	// 去掉结尾围栏
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}
