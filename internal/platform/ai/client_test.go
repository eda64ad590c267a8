package ai

import (
	"context"
	"net/http"
	"testing"

	"github.com/stardust-edu/career-advisor-backend/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"无围栏", `{"a":1}`, `{"a":1}`},
		{"json围栏", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"裸围栏", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"带前后空白", "  ```json\n{\"a\":1}\n```  ", `{"a":1}`},
		{"单行围栏", "```{\"a\":1}", `{"a":1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StripCodeFences(tc.in))
		})
	}
}

func TestDecodeJSONResponseBadJSON(t *testing.T) {
	var out map[string]interface{}
	err := DecodeJSONResponse("这不是JSON", &out)
	assert.ErrorIs(t, err, ErrBadJSON)
}

func TestClassifyHTTPError(t *testing.T) {
	assert.ErrorIs(t, classifyHTTPError(http.StatusTooManyRequests, nil), ErrQuota)
	assert.ErrorIs(t, classifyHTTPError(http.StatusPaymentRequired, nil), ErrQuota)
	assert.ErrorIs(t, classifyHTTPError(http.StatusUnauthorized, nil), ErrAuth)
	assert.ErrorIs(t, classifyHTTPError(http.StatusForbidden, nil), ErrAuth)
	assert.ErrorIs(t, classifyHTTPError(http.StatusNotFound, nil), ErrModelUnavailable)
	assert.ErrorIs(t, classifyHTTPError(http.StatusServiceUnavailable, nil), ErrModelUnavailable)

	generic := classifyHTTPError(http.StatusInternalServerError, []byte("boom"))
	require.Error(t, generic)
	assert.NotErrorIs(t, generic, ErrQuota)
	assert.NotErrorIs(t, generic, ErrAuth)
}

func TestIsRetryable(t *testing.T) {
	assert.False(t, isRetryable(ErrAuth))
	assert.True(t, isRetryable(ErrQuota))
	assert.True(t, isRetryable(ErrModelUnavailable))
}

func TestDisabledClient(t *testing.T) {
	client := NewClient(config.AIConfig{}) // 没有apiKey
	assert.False(t, client.Enabled())

	_, err := client.GenerateText(context.Background(), "s", "u")
	assert.ErrorIs(t, err, ErrDisabled)

	var out map[string]interface{}
	assert.ErrorIs(t, client.GenerateJSON(context.Background(), "s", "u", &out), ErrDisabled)
}
