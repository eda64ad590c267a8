package subscription

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stardust-edu/career-advisor-backend/internal/platform/config"
	"github.com/stardust-edu/career-advisor-backend/internal/platform/database"
	"github.com/stardust-edu/career-advisor-backend/internal/user"
	"github.com/stardust-edu/career-advisor-backend/pkg/signature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const razorpayTestSecret = "rzp-test-secret"

func setupWebhookTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	setupTestDB(t)

	config.Cfg = &config.Config{}
	config.Cfg.Payment.Razorpay.WebhookSecret = razorpayTestSecret
	t.Cleanup(func() { config.Cfg = nil })

	r := gin.New()
	r.POST("/api/webhooks/razorpay", HandleRazorpayWebhook)
	return r
}

func postWebhook(r *gin.Engine, payload []byte, sign bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/razorpay", bytes.NewReader(payload))
	if sign {
		req.Header.Set("X-Razorpay-Signature", signature.Sign([]byte(razorpayTestSecret), payload))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRazorpayWebhookRejectsMissingSignature(t *testing.T) {
	r := setupWebhookTest(t)

	w := postWebhook(r, []byte(`{"event":"subscription.charged"}`), false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRazorpayWebhookRejectsBadSignature(t *testing.T) {
	r := setupWebhookTest(t)

	payload := []byte(`{"event":"subscription.charged"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/razorpay", bytes.NewReader(payload))
	req.Header.Set("X-Razorpay-Signature", "deadbeef")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRazorpayWebhookChargedActivatesSubscription(t *testing.T) {
	r := setupWebhookTest(t)
	require.NoError(t, database.DB.Create(&user.User{UUID: "user-1", Tier: "free"}).Error)

	end := time.Now().Add(30 * 24 * time.Hour).Unix()
	payload := []byte(fmt.Sprintf(`{
		"event": "subscription.charged",
		"payload": {
			"subscription": {
				"entity": {
					"id": "rzp_sub_1",
					"customer_id": "rzp_cus_1",
					"notes": {"userID": "user-1", "tier": "premium"},
					"current_end": %d
				}
			}
		}
	}`, end))

	w := postWebhook(r, payload, true)
	require.Equal(t, http.StatusOK, w.Code)

	status := GetStatus("user-1")
	assert.Equal(t, TierPremium, status.Tier)

	// 同一事件重放是幂等的
	w = postWebhook(r, payload, true)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, database.DB.Model(&Subscription{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRazorpayWebhookCancelledUnknownSubscription(t *testing.T) {
	r := setupWebhookTest(t)

	payload := []byte(`{
		"event": "subscription.cancelled",
		"payload": {"subscription": {"entity": {"id": "rzp_unknown"}}}
	}`)
	w := postWebhook(r, payload, true)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRazorpayWebhookIgnoresUnknownEvents(t *testing.T) {
	r := setupWebhookTest(t)

	payload := []byte(`{"event": "payment.authorized"}`)
	w := postWebhook(r, payload, true)
	assert.Equal(t, http.StatusOK, w.Code)
}
