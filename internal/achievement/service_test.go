package achievement

import (
	"fmt"
	"testing"

	"github.com/stardust-edu/career-advisor-backend/internal/activity"
	"github.com/stardust-edu/career-advisor-backend/internal/college"
	"github.com/stardust-edu/career-advisor-backend/internal/platform/database"
	"github.com/stardust-edu/career-advisor-backend/internal/quiz"
	"github.com/stardust-edu/career-advisor-backend/internal/skill"
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
	dsn := fmt.Sprintf("file:achievement_test_%d?mode=memory&cache=shared", testDBSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&UnlockedAchievement{},
		&skill.Skill{},
		&quiz.QuizResult{},
		&college.SavedCollege{},
		&activity.Activity{},
	))
	database.DB = db
}

func TestProgressFormula(t *testing.T) {
	assert.Equal(t, 0, Progress(0, 10))
	assert.Equal(t, 50, Progress(5, 10))
	assert.Equal(t, 100, Progress(10, 10))
	// 超过阈值钳到100
	assert.Equal(t, 100, Progress(25, 10))
}

func TestProgressMonotonic(t *testing.T) {
	// 计数增加时进度绝不下降
	prev := 0
	for count := int64(0); count <= 30; count++ {
		p := Progress(count, 10)
		assert.GreaterOrEqual(t, p, prev)
		prev = p
	}
}

func TestEvaluateDerivesProgressFromCounts(t *testing.T) {
	setupTestDB(t)

	// 收藏5所院校：college-explorer (阈值10) 应为50%
	for i := 0; i < 5; i++ {
		require.NoError(t, database.DB.Create(&college.SavedCollege{
			UserUUID:  "user-1",
			CollegeID: fmt.Sprintf("college-%d", i),
		}).Error)
	}

	states, err := Evaluate("user-1")
	require.NoError(t, err)

	var explorer *State
	for i := range states {
		if states[i].ID == "college-explorer" {
			explorer = &states[i]
		}
	}
	require.NotNil(t, explorer)
	assert.Equal(t, 50, explorer.Progress)
	assert.False(t, explorer.Unlocked)
}

func TestEvaluateUnlockAtThreshold(t *testing.T) {
	setupTestDB(t)

	require.NoError(t, database.DB.Create(&quiz.QuizResult{
		UserUUID:   "user-1",
		CareerPath: "Software Developer",
	}).Error)

	states, err := Evaluate("user-1")
	require.NoError(t, err)

	for _, state := range states {
		if state.ID == "first-steps" {
			assert.Equal(t, 100, state.Progress)
			assert.True(t, state.Unlocked)
		}
	}
}

func TestAwardUnknownID(t *testing.T) {
	setupTestDB(t)

	_, err := Award("user-1", "made-up-achievement")
	assert.ErrorIs(t, err, ErrUnknownAchievement)
}

func TestAwardIsIdempotentAndSticky(t *testing.T) {
	setupTestDB(t)

	state, err := Award("user-1", "college-explorer")
	require.NoError(t, err)
	assert.True(t, state.Unlocked)
	assert.Equal(t, 100, state.Progress)

	// 重复解锁不报错、不产生新行
	_, err = Award("user-1", "college-explorer")
	require.NoError(t, err)

	var count int64
	require.NoError(t, database.DB.Model(&UnlockedAchievement{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// 来源计数为0，但已解锁的成就进度保持100（不回落）
	states, err := Evaluate("user-1")
	require.NoError(t, err)
	for _, s := range states {
		if s.ID == "college-explorer" {
			assert.Equal(t, 100, s.Progress)
			assert.True(t, s.Unlocked)
		}
	}
}
