package services

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"walkinplus-backend/models"
	"walkinplus-backend/utils"
)

// ReportCap is how many rows the on-screen report shows at most. The exact
// total is reported separately, uncapped.
const ReportCap = 200

// ReportFilter is the composite report predicate: date range, time window on
// the range's edge days, free-text search. Fields hold normalized values;
// empty string means the filter is absent.
type ReportFilter struct {
	FromDate string
	ToDate   string
	TimeFrom string
	TimeTo   string
	Search   string
}

// ParseReportFilter normalizes raw query values. A single supplied date is
// copied to the other side, so one date means a single-day range.
// Unparseable dates and times are dropped rather than rejected.
func ParseReportFilter(fromDate, toDate, timeFrom, timeTo, search string) ReportFilter {
	f := ReportFilter{
		FromDate: utils.ParseDate(strings.TrimSpace(fromDate)),
		ToDate:   utils.ParseDate(strings.TrimSpace(toDate)),
		TimeFrom: utils.ParseClock(strings.TrimSpace(timeFrom)),
		TimeTo:   utils.ParseClock(strings.TrimSpace(timeTo)),
		Search:   strings.TrimSpace(search),
	}
	if f.FromDate != "" && f.ToDate == "" {
		f.ToDate = f.FromDate
	}
	if f.ToDate != "" && f.FromDate == "" {
		f.FromDate = f.ToDate
	}
	return f
}

// Apply adds the filter predicates to a visit query, in order: date range,
// then time window, then search.
//
// The time window only constrains the range's edge days: with both bounds
// set, interior days pass regardless of clock-in, the first day requires
// clock-in >= TimeFrom and the last day clock-in <= TimeTo. A single bound
// only applies when the range is one day; on a multi-day range it is
// ignored. That asymmetry is the documented behavior, not an oversight.
func (f ReportFilter) Apply(q *gorm.DB) *gorm.DB {
	if f.FromDate != "" && f.ToDate != "" {
		q = q.Where("walkin_date >= ? AND walkin_date <= ?", f.FromDate, f.ToDate)

		switch {
		case f.TimeFrom != "" && f.TimeTo != "":
			q = q.Where(
				"(walkin_date > ? AND walkin_date < ?) OR (walkin_date = ? AND clock_in >= ?) OR (walkin_date = ? AND clock_in <= ?)",
				f.FromDate, f.ToDate,
				f.FromDate, f.TimeFrom,
				f.ToDate, f.TimeTo,
			)
		case f.TimeFrom != "" && f.FromDate == f.ToDate:
			q = q.Where("clock_in >= ?", f.TimeFrom)
		case f.TimeTo != "" && f.FromDate == f.ToDate:
			q = q.Where("clock_in <= ?", f.TimeTo)
		}
	}

	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where(
			"LOWER(customer_name) LIKE ? OR LOWER(contact_number) LIKE ? OR LOWER(purpose) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	return q
}

// ReportPage is the on-screen report: newest first, capped, plus the exact
// uncapped total.
type ReportPage struct {
	Records []models.Visit `json:"records"`
	Total   int64          `json:"total"`
}

// BuildReport runs the filter against the scoped visit set. A nil business
// yields an empty page.
func BuildReport(db *gorm.DB, userID uuid.UUID, business *models.Business, filter ReportFilter) (ReportPage, error) {
	page := ReportPage{Records: []models.Visit{}}
	if business == nil {
		return page, nil
	}

	scoped := func() *gorm.DB {
		return db.Model(&models.Visit{}).
			Where("user_id = ? AND business_id = ?", userID, business.ID)
	}

	if err := filter.Apply(scoped()).Count(&page.Total).Error; err != nil {
		return page, err
	}
	if err := filter.Apply(scoped()).
		Order("walkin_date DESC, clock_in DESC").
		Limit(ReportCap).
		Find(&page.Records).Error; err != nil {
		return page, err
	}
	return page, nil
}

// FilteredForExport returns the same filtered set in export order, oldest
// first and uncapped.
func FilteredForExport(db *gorm.DB, userID uuid.UUID, business *models.Business, filter ReportFilter) ([]models.Visit, error) {
	visits := []models.Visit{}
	if business == nil {
		return visits, nil
	}

	q := db.Model(&models.Visit{}).
		Where("user_id = ? AND business_id = ?", userID, business.ID)
	err := filter.Apply(q).
		Order("walkin_date ASC, clock_in ASC").
		Find(&visits).Error
	return visits, err
}
