package college

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stardust-edu/career-advisor-backend/internal/activity"
	"github.com/stardust-edu/career-advisor-backend/internal/platform/config"
	"github.com/stardust-edu/career-advisor-backend/internal/platform/database"
	"github.com/stardust-edu/career-advisor-backend/internal/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// demo用户让未登录请求也有稳定的用户身份，和本地联调的行为一致
const demoUser = "99999999-8888-7777-6666-555555555555"

func setupHandlerTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	setupTestDB(t)
	require.NoError(t, database.DB.AutoMigrate(&activity.Activity{}, &user.User{}))

	config.Cfg = &config.Config{
		Server: config.ServerConfig{Mode: "debug"},
		Auth:   config.AuthConfig{JWTSecret: "test-secret", DemoUserID: demoUser},
	}
	t.Cleanup(func() { config.Cfg = nil })

	r := gin.New()
	r.POST("/api/colleges", user.LoadUserMiddleware(), CollegeAction)
	r.GET("/api/saved-colleges", user.LoadUserMiddleware(), GetSavedColleges)
	r.POST("/api/saved-colleges", user.LoadUserMiddleware(), SaveCollege)
	r.DELETE("/api/saved-colleges", user.LoadUserMiddleware(), DeleteSavedCollege)
	return r
}

func doJSON(r *gin.Engine, method, path, payload string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCollegeActionUnknownActionReturns400(t *testing.T) {
	r := setupHandlerTest(t)

	w := doJSON(r, http.MethodPost, "/api/colleges", `{"action":"explode","collegeId":"mit"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCollegeActionMissingCollegeIDReturns400(t *testing.T) {
	r := setupHandlerTest(t)

	w := doJSON(r, http.MethodPost, "/api/colleges", `{"action":"save"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaveCollegeTwiceDoesNotDuplicate(t *testing.T) {
	r := setupHandlerTest(t)

	payload := `{"collegeId":"mit","collegeName":"MIT","collegeLocation":"Cambridge, MA","collegeType":"private"}`

	w := doJSON(r, http.MethodPost, "/api/saved-colleges", payload)
	require.Equal(t, http.StatusOK, w.Code)

	// 第二次提交：alreadyExists，收藏列表不增长
	w = doJSON(r, http.MethodPost, "/api/saved-colleges", payload)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["alreadyExists"])

	w = doJSON(r, http.MethodGet, "/api/saved-colleges", "")
	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Colleges []SavedCollegeResponse `json:"colleges"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list.Colleges, 1)
}

func TestDeleteSavedCollegeNeverSavedIsTolerant(t *testing.T) {
	r := setupHandlerTest(t)

	w := doJSON(r, http.MethodDelete, "/api/saved-colleges?collegeId=mit", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, true, body["notFound"])
}

func TestDeleteSavedCollegeMissingParamReturns400(t *testing.T) {
	r := setupHandlerTest(t)

	w := doJSON(r, http.MethodDelete, "/api/saved-colleges", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
