package college

import (
	"fmt"
	"testing"

	"github.com/stardust-edu/career-advisor-backend/internal/platform/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int

func setupTestDB(t *testing.T) {
	t.Helper()
	testDBSeq++
	dsn := fmt.Sprintf("file:college_test_%d?mode=memory&cache=shared", testDBSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&College{}, &SavedCollege{}))
	database.DB = db
}

func seedCatalog(t *testing.T) {
	t.Helper()
	seed := FallbackColleges()
	require.NoError(t, database.DB.Create(&seed).Error)
}

func TestSearchEmptyDatabaseFallsBack(t *testing.T) {
	setupTestDB(t)

	result := Search(SearchQuery{})
	assert.Equal(t, SourceFallback, result.Source)
	assert.NotEmpty(t, result.Colleges)
	assert.EqualValues(t, len(fallbackColleges), result.Total)
}

func TestSearchDatabaseSource(t *testing.T) {
	setupTestDB(t)
	seedCatalog(t)

	result := Search(SearchQuery{Limit: 5})
	assert.Equal(t, SourceDatabase, result.Source)
	assert.Len(t, result.Colleges, 5)
	// 按排名升序
	assert.Equal(t, "mit", result.Colleges[0].CollegeID)
}

func TestSearchFilters(t *testing.T) {
	setupTestDB(t)
	seedCatalog(t)

	byState := Search(SearchQuery{State: "ca"})
	for _, col := range byState.Colleges {
		assert.Equal(t, "CA", col.State)
	}
	assert.EqualValues(t, 3, byState.Total)

	byMajor := Search(SearchQuery{Major: "robotics"})
	require.EqualValues(t, 1, byMajor.Total)
	assert.Equal(t, "cmu", byMajor.Colleges[0].CollegeID)

	bySearch := Search(SearchQuery{Search: "washington"})
	require.EqualValues(t, 1, bySearch.Total)
	assert.Equal(t, "uw", bySearch.Colleges[0].CollegeID)
}

func TestSearchFallbackPagination(t *testing.T) {
	setupTestDB(t)

	page1 := Search(SearchQuery{Page: 1, Limit: 5})
	page2 := Search(SearchQuery{Page: 2, Limit: 5})
	require.Len(t, page1.Colleges, 5)
	require.Len(t, page2.Colleges, 5)
	assert.NotEqual(t, page1.Colleges[0].CollegeID, page2.Colleges[0].CollegeID)

	// 超出范围的页返回空列表，但总数不变
	pageFar := Search(SearchQuery{Page: 99, Limit: 5})
	assert.Empty(t, pageFar.Colleges)
	assert.EqualValues(t, len(fallbackColleges), pageFar.Total)
}

func TestSaveIsIdempotent(t *testing.T) {
	setupTestDB(t)

	row, alreadyExists, err := Save("user-1", "mit", "MIT", "Cambridge, MA", "private")
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.False(t, alreadyExists)

	// 第二次收藏同一所院校：无新行，alreadyExists=true
	_, alreadyExists, err = Save("user-1", "mit", "MIT", "Cambridge, MA", "private")
	require.NoError(t, err)
	assert.True(t, alreadyExists)

	rows, err := ListSaved("user-1")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestSaveRequiresCollegeID(t *testing.T) {
	setupTestDB(t)

	_, _, err := Save("user-1", "", "MIT", "", "")
	assert.Error(t, err)
}

func TestUnsaveTolerant(t *testing.T) {
	setupTestDB(t)

	// 从未收藏过：不报错，found=false
	found, err := Unsave("user-1", "mit")
	require.NoError(t, err)
	assert.False(t, found)

	_, _, err = Save("user-1", "mit", "MIT", "", "")
	require.NoError(t, err)

	found, err = Unsave("user-1", "mit")
	require.NoError(t, err)
	assert.True(t, found)

	count, err := CountSaved("user-1")
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}
