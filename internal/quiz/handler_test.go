package quiz

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stardust-edu/career-advisor-backend/internal/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuizRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/quiz/submit", user.LoadUserMiddleware(), SubmitQuiz)
	return r
}

type quizResponse struct {
	Success         bool            `json:"success"`
	Source          string          `json:"source"`
	Recommendations Recommendations `json:"recommendations"`
}

func TestSubmitQuizEmptyBodyStillReturns200(t *testing.T) {
	r := newQuizRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/quiz/submit", strings.NewReader(""))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// 残缺的请求体也必须返回200和非空的主推荐
	require.Equal(t, http.StatusOK, w.Code)

	var body quizResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.NotEmpty(t, body.Recommendations.PrimaryCareer.Title)
	assert.Equal(t, SourceRules, body.Source)
}

func TestSubmitQuizMalformedJSONStillReturns200(t *testing.T) {
	r := newQuizRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/quiz/submit", strings.NewReader("{这不是JSON"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body quizResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Recommendations.PrimaryCareer.Title)
}

func TestSubmitQuizSoftwareDeveloperScenario(t *testing.T) {
	r := newQuizRouter()

	payload := `{
		"quizType": "career",
		"personalInfo": {
			"interests": ["Technology", "Programming"],
			"skills": ["Programming"],
			"experience": "beginner"
		}
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/quiz/submit", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body quizResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Software Developer", body.Recommendations.PrimaryCareer.Title)
	assert.GreaterOrEqual(t, body.Recommendations.PrimaryCareer.Match, 75)
	assert.Len(t, body.Recommendations.AlternativeCareers, 3)
}
