package services

import (
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"walkinplus-backend/models"
	"walkinplus-backend/utils"
)

// DailyAverage formats like the dashboard expects: plain 0 when there were
// no visits in the window, one decimal place otherwise.
type DailyAverage float64

func (a DailyAverage) MarshalJSON() ([]byte, error) {
	if a == 0 {
		return []byte("0"), nil
	}
	return []byte(strconv.FormatFloat(float64(a), 'f', 1, 64)), nil
}

// OverviewStats are the per-business counters on the management overview.
type OverviewStats struct {
	TodayWalkins          int64        `json:"todayWalkins"`
	WeekWalkins           int64        `json:"weekWalkins"`
	MonthWalkins          int64        `json:"monthWalkins"`
	CurrentPendingWalkins int64        `json:"currentPendingWalkins"`
	TotalWalkins          int64        `json:"totalWalkins"`
	AvgPerDay             DailyAverage `json:"avgPerDay"`
}

// BuildOverviewStats computes every counter strictly scoped to the account
// and the resolved business. A nil business short-circuits to all zeros
// without touching the store.
//
// Windows: week = most recent Monday through today, month = first of the
// current month through today, average = trailing 30 calendar days / 30.
func BuildOverviewStats(db *gorm.DB, userID uuid.UUID, business *models.Business, now time.Time) (OverviewStats, error) {
	var stats OverviewStats
	if business == nil {
		return stats, nil
	}

	scoped := func() *gorm.DB {
		return db.Model(&models.Visit{}).
			Where("user_id = ? AND business_id = ?", userID, business.ID)
	}

	today := utils.FormatDate(now)
	weekStart := utils.FormatDate(utils.WeekStart(now))
	monthStart := utils.FormatDate(utils.MonthStart(now))
	last30Start := utils.FormatDate(now.AddDate(0, 0, -29))

	if err := scoped().Where("walkin_date = ?", today).
		Count(&stats.TodayWalkins).Error; err != nil {
		return stats, err
	}
	if err := scoped().Where("walkin_date >= ? AND walkin_date <= ?", weekStart, today).
		Count(&stats.WeekWalkins).Error; err != nil {
		return stats, err
	}
	if err := scoped().Where("walkin_date >= ? AND walkin_date <= ?", monthStart, today).
		Count(&stats.MonthWalkins).Error; err != nil {
		return stats, err
	}
	if err := scoped().Where("walkin_date = ? AND clock_out IS NULL", today).
		Count(&stats.CurrentPendingWalkins).Error; err != nil {
		return stats, err
	}
	if err := scoped().Count(&stats.TotalWalkins).Error; err != nil {
		return stats, err
	}

	var last30 int64
	if err := scoped().Where("walkin_date >= ? AND walkin_date <= ?", last30Start, today).
		Count(&last30).Error; err != nil {
		return stats, err
	}
	if last30 > 0 {
		stats.AvgPerDay = DailyAverage(math.Round(float64(last30)/30*10) / 10)
	}

	return stats, nil
}
