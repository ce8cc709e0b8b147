package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"walkinplus-backend/config"
	"walkinplus-backend/models"
	"walkinplus-backend/services"
	"walkinplus-backend/utils"
)

// businessRow is one entry of the management business table.
type businessRow struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Location   string `json:"location"`
	Logo       string `json:"logo"`
	IsActive   bool   `json:"isActive"`
	IsSelected bool   `json:"isSelected"`
}

// GetManagementDashboard is the stateful query/reporting endpoint: resolves
// the business scope, builds the overview stats, applies the report filters,
// and diverts to CSV export when asked.
func GetManagementDashboard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var user models.User
	if err := config.DB.Preload("Contact").First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return
	}

	selected, err := services.ResolveBusinessScope(config.DB, userID, c.Query("business_id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	filter := services.ParseReportFilter(
		c.Query("from_date"),
		c.Query("to_date"),
		c.Query("time_from"),
		c.Query("time_to"),
		c.Query("search"),
	)

	// Export short-circuits the rendered report and streams the same
	// filtered set instead.
	if c.Query("export") == "csv" {
		visits, err := services.FilteredForExport(config.DB, userID, selected, filter)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to export report")
			return
		}
		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", `attachment; filename="`+services.ExportFilename+`"`)
		if err := services.WriteWalkinsCSV(c.Writer, visits); err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to export report")
		}
		return
	}

	now := time.Now()
	stats, err := services.BuildOverviewStats(config.DB, userID, selected, now)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute statistics")
		return
	}

	report, err := services.BuildReport(config.DB, userID, selected, filter)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to build report")
		return
	}

	// The table lists every business the account owns, active or not;
	// only scoping is restricted to active ones.
	var allBusinesses []models.Business
	if err := config.DB.Where("owner_id = ?", userID).
		Order("created_at, id").Find(&allBusinesses).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load businesses")
		return
	}

	businesses := make([]businessRow, 0, len(allBusinesses))
	for _, b := range allBusinesses {
		businesses = append(businesses, businessRow{
			ID:         b.ID,
			Name:       b.Name,
			Location:   b.Location,
			Logo:       b.Logo,
			IsActive:   b.IsActive,
			IsSelected: selected != nil && b.ID == selected.ID,
		})
	}

	phone := ""
	passwordUpdatedAt := "N/A"
	if user.Contact != nil {
		phone = user.Contact.PhoneNumber
		passwordUpdatedAt = user.Contact.CreatedAt.Format("Jan 2006")
	}

	selectedID := uint(0)
	selectedName := ""
	if selected != nil {
		selectedID = selected.ID
		selectedName = selected.Name
	}

	c.JSON(http.StatusOK, gin.H{
		"activeTab": c.DefaultQuery("tab", "overview"),

		"businesses":           businesses,
		"selectedBusinessId":   selectedID,
		"selectedBusinessName": selectedName,

		"stats": stats,

		"records":      report.Records,
		"totalRecords": report.Total,
		"fromDate":     c.Query("from_date"),
		"toDate":       c.Query("to_date"),
		"timeFrom":     c.Query("time_from"),
		"timeTo":       c.Query("time_to"),
		"search":       c.Query("search"),

		"profile": gin.H{
			"username":          user.Username,
			"displayName":       user.DisplayNameOrUsername(),
			"email":             user.Email,
			"phone":             phone,
			"passwordUpdatedAt": passwordUpdatedAt,
		},

		"currentPlanName":  "Starter Pack – Monthly",
		"currentPlanPrice": 49,
	})
}

type ManagementFormInput struct {
	FormType string `form:"form_type" json:"form_type" binding:"required"`
	Tab      string `form:"tab" json:"tab"`

	// add_business / update_business fields
	BusinessID   string `form:"business_id" json:"business_id"`
	BusinessName string `form:"business_name" json:"business_name"`
	Location     string `form:"location" json:"location"`
	BusinessLogo string `form:"business_logo" json:"business_logo"`
	Status       string `form:"status" json:"status"`

	// update_profile fields
	Username    string `form:"username" json:"username"`
	DisplayName string `form:"display_name" json:"display_name"`
	Email       string `form:"email" json:"email"`
	Phone       string `form:"phone" json:"phone"`
	Password    string `form:"password" json:"password"`
}

// PostManagementForm translates form_type submissions into commands and
// dispatches them.
func PostManagementForm(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input ManagementFormInput
	if err := c.ShouldBind(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var cmd services.Command
	switch input.FormType {
	case "add_business":
		cmd = services.AddBusinessCommand{
			Name:     input.BusinessName,
			Location: input.Location,
			Logo:     input.BusinessLogo,
		}
	case "update_business":
		cmd = services.UpdateBusinessCommand{
			BusinessID: input.BusinessID,
			Name:       input.BusinessName,
			Location:   input.Location,
			Logo:       input.BusinessLogo,
			Status:     input.Status,
		}
	case "update_profile":
		cmd = services.UpdateProfileCommand{
			Username:    input.Username,
			DisplayName: input.DisplayName,
			Email:       input.Email,
			Phone:       input.Phone,
			Password:    input.Password,
		}
	default:
		utils.RespondWithError(c, http.StatusBadRequest, "Unknown form type")
		return
	}

	res := services.Dispatch(config.DB, userID, cmd)
	if !res.OK() {
		if errors.Is(res.Err, services.ErrNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Business not found")
			return
		}
		respondSubmission(c, res)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Saved.",
		"tab":     input.Tab,
		"entity":  res.Entity,
	})
}
