package college

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stardust-edu/career-advisor-backend/internal/activity"
	"github.com/stardust-edu/career-advisor-backend/internal/user"
)

// CollegeResponse 是院校目录的API响应模型
type CollegeResponse struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Location string   `json:"location"`
	State    string   `json:"state"`
	Type     string   `json:"type"`
	Majors   []string `json:"majors"`
	Ranking  int      `json:"ranking"`
}

// SavedCollegeResponse 是收藏院校的API响应模型
type SavedCollegeResponse struct {
	CollegeID string `json:"collegeId"`
	Name      string `json:"collegeName"`
	Location  string `json:"collegeLocation"`
	Type      string `json:"collegeType"`
	SavedAt   string `json:"savedAt"`
}

// CollegeActionBody 定义了收藏写操作的请求体
type CollegeActionBody struct {
	Action          string `json:"action"` // save / remove
	CollegeID       string `json:"collegeId"`
	CollegeName     string `json:"collegeName"`
	CollegeLocation string `json:"collegeLocation"`
	CollegeType     string `json:"collegeType"`
}

func formatCollege(col College) CollegeResponse {
	majors := []string{}
	if col.Majors != "" {
		for _, m := range strings.Split(col.Majors, ",") {
			majors = append(majors, strings.TrimSpace(m))
		}
	}
	return CollegeResponse{
		ID:       col.CollegeID,
		Name:     col.Name,
		Location: col.Location,
		State:    col.State,
		Type:     col.Type,
		Majors:   majors,
		Ranking:  col.Ranking,
	}
}

func formatSaved(row SavedCollege) SavedCollegeResponse {
	return SavedCollegeResponse{
		CollegeID: row.CollegeID,
		Name:      row.CollegeName,
		Location:  row.CollegeLocation,
		Type:      row.CollegeType,
		SavedAt:   row.CreatedAt.Format("2006-01-02"),
	}
}

// GetColleges 返回院校目录（带分页和筛选）
func GetColleges(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	result := Search(SearchQuery{
		Page:   page,
		Limit:  limit,
		Search: c.Query("search"),
		Major:  c.Query("major"),
		State:  c.Query("state"),
	})

	responses := make([]CollegeResponse, 0, len(result.Colleges))
	for _, col := range result.Colleges {
		responses = append(responses, formatCollege(col))
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"colleges": responses,
		"total":    result.Total,
		"page":     result.Page,
		"limit":    result.Limit,
		"source":   result.Source,
	})
}

// CollegeAction 处理收藏/取消收藏的动作式写入
func CollegeAction(c *gin.Context) {
	userID := user.CurrentUserID(c)

	var body CollegeActionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}
	if body.CollegeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少必填字段: collegeId"})
		return
	}

	switch body.Action {
	case "save":
		saveCollege(c, userID, body)
	case "remove":
		removeCollege(c, userID, body.CollegeID)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "未知的action: " + body.Action})
	}
}

// GetSavedColleges 返回当前用户收藏的院校列表
func GetSavedColleges(c *gin.Context) {
	userID := user.CurrentUserID(c)

	rows, err := ListSaved(userID)
	if err != nil {
		// 可降级内容：读取失败返回空列表
		c.JSON(http.StatusOK, gin.H{"success": true, "colleges": []SavedCollegeResponse{}})
		return
	}

	responses := make([]SavedCollegeResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, formatSaved(row))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "colleges": responses})
}

// SaveCollege 处理 POST /api/saved-colleges
func SaveCollege(c *gin.Context) {
	userID := user.CurrentUserID(c)

	var body CollegeActionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}
	if body.CollegeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少必填字段: collegeId"})
		return
	}
	saveCollege(c, userID, body)
}

// DeleteSavedCollege 处理 DELETE /api/saved-colleges?collegeId=
func DeleteSavedCollege(c *gin.Context) {
	userID := user.CurrentUserID(c)

	collegeID := c.Query("collegeId")
	if collegeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少必填参数: collegeId"})
		return
	}
	removeCollege(c, userID, collegeID)
}

func saveCollege(c *gin.Context, userID string, body CollegeActionBody) {
	row, alreadyExists, err := Save(userID, body.CollegeID, body.CollegeName, body.CollegeLocation, body.CollegeType)
	if err != nil {
		// 存储故障不阻塞前端：返回本地成功，数据下次会重新提交
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "已在本地保存",
			"local":   true,
		})
		return
	}
	if alreadyExists {
		c.JSON(http.StatusOK, gin.H{
			"success":       true,
			"alreadyExists": true,
			"message":       "院校已在收藏列表中",
		})
		return
	}

	activity.Record(userID, activity.TypeCollegeSaved, "收藏院校: "+body.CollegeName, "", map[string]interface{}{
		"collegeId": body.CollegeID,
	})
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "收藏成功",
		"data":    formatSaved(*row),
	})
}

func removeCollege(c *gin.Context, userID, collegeID string) {
	found, err := Unsave(userID, collegeID)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "已在本地移除",
			"local":   true,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "notFound": !found})
}
