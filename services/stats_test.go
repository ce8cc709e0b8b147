package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"walkinplus-backend/utils"
)

func TestBuildOverviewStatsNoBusinessIsHardZero(t *testing.T) {
	db := setupTestDB(t)

	stats, err := BuildOverviewStats(db, uuid.New(), nil, time.Now())
	require.NoError(t, err)
	assert.Zero(t, stats.TodayWalkins)
	assert.Zero(t, stats.WeekWalkins)
	assert.Zero(t, stats.MonthWalkins)
	assert.Zero(t, stats.CurrentPendingWalkins)
	assert.Zero(t, stats.TotalWalkins)
	assert.Zero(t, stats.AvgPerDay)
}

func TestBuildOverviewStatsWindows(t *testing.T) {
	db := setupTestDB(t)
	userID := uuid.New()
	business := createBusiness(t, db, userID, "City Clinic", true)

	// Wednesday; the week started Monday 2024-01-15.
	now := time.Date(2024, 1, 17, 12, 0, 0, 0, time.UTC)

	createVisit(t, db, userID, business.ID, "2024-01-17", "09:00:00") // stays open
	closedToday := createVisit(t, db, userID, business.ID, "2024-01-17", "10:00:00")
	closeVisit(t, db, closedToday.ID, "10:45:00")
	createVisit(t, db, userID, business.ID, "2024-01-15", "09:00:00") // Monday, in week
	createVisit(t, db, userID, business.ID, "2024-01-14", "09:00:00") // Sunday, out of week, in month
	createVisit(t, db, userID, business.ID, "2023-12-10", "09:00:00") // out of month and 30-day window

	stats, err := BuildOverviewStats(db, userID, &business, now)
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.TodayWalkins)
	assert.Equal(t, int64(3), stats.WeekWalkins)
	assert.Equal(t, int64(4), stats.MonthWalkins)
	assert.Equal(t, int64(1), stats.CurrentPendingWalkins)
	assert.Equal(t, int64(5), stats.TotalWalkins)
	// 4 visits in the trailing 30 days / 30, rounded to one decimal
	assert.InDelta(t, 0.1, float64(stats.AvgPerDay), 0.0001)
}

func TestBuildOverviewStatsCrossBusinessIsolation(t *testing.T) {
	db := setupTestDB(t)
	userID := uuid.New()
	businessA := createBusiness(t, db, userID, "A", true)
	businessB := createBusiness(t, db, userID, "B", true)

	now := time.Date(2024, 1, 17, 12, 0, 0, 0, time.UTC)
	createVisit(t, db, userID, businessA.ID, "2024-01-17", "09:00:00")

	stats, err := BuildOverviewStats(db, userID, &businessB, now)
	require.NoError(t, err)
	assert.Zero(t, stats.TodayWalkins)
	assert.Zero(t, stats.TotalWalkins)
}

func TestRollingAverageOnePerDay(t *testing.T) {
	db := setupTestDB(t)
	userID := uuid.New()
	business := createBusiness(t, db, userID, "City Clinic", true)

	now := time.Date(2024, 3, 30, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 30; i++ {
		createVisit(t, db, userID, business.ID, utils.FormatDate(now.AddDate(0, 0, -i)), "09:00:00")
	}

	stats, err := BuildOverviewStats(db, userID, &business, now)
	require.NoError(t, err)
	assert.Equal(t, DailyAverage(1.0), stats.AvgPerDay)
}

func TestDailyAverageMarshalAsymmetry(t *testing.T) {
	zero, err := json.Marshal(DailyAverage(0))
	require.NoError(t, err)
	assert.Equal(t, "0", string(zero))

	one, err := json.Marshal(DailyAverage(1.0))
	require.NoError(t, err)
	assert.Equal(t, "1.0", string(one))

	tenth, err := json.Marshal(DailyAverage(0.1))
	require.NoError(t, err)
	assert.Equal(t, "0.1", string(tenth))
}
