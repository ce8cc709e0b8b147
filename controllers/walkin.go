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

// managementRedirect is where clients are sent when an operation needs a
// business and the account has no active one.
const managementRedirect = "/management?tab=business"

// GetWalkinDashboard lists today's open visits for the resolved business.
func GetWalkinDashboard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	business, err := services.ResolveBusinessScope(config.DB, userID, c.Query("business_id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if business == nil {
		respondNoBusiness(c)
		return
	}

	today := utils.FormatDate(time.Now())
	visits := []models.Visit{}
	if err := config.DB.
		Where("user_id = ? AND business_id = ? AND walkin_date = ? AND clock_out IS NULL",
			userID, business.ID, today).
		Order("clock_in").
		Find(&visits).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load visits")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"visits":               visits,
		"todayDate":            time.Now().Format("02 Jan 2006"),
		"selectedBusinessId":   business.ID,
		"selectedBusinessName": business.Name,
	})
}

type WalkinActionInput struct {
	Action string `form:"action" json:"action" binding:"required"`

	// new_walkin fields
	Phone     string `form:"phone" json:"phone"`
	FirstName string `form:"first_name" json:"first_name"`
	LastName  string `form:"last_name" json:"last_name"`
	DOB       string `form:"dob" json:"dob"`
	CareOf    string `form:"care_of" json:"care_of"`
	Relation  string `form:"relation" json:"relation"`
	Purpose   string `form:"purpose" json:"purpose"`
	Notes     string `form:"notes" json:"notes"`

	// clockout fields
	VisitID string `form:"visit_id" json:"visit_id"`
}

// PostWalkinAction dispatches the walk-in dashboard submissions: new_walkin
// registers a visit, clockout closes one.
func PostWalkinAction(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input WalkinActionInput
	if err := c.ShouldBind(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	business, err := services.ResolveBusinessScope(config.DB, userID, c.Query("business_id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if business == nil {
		respondNoBusiness(c)
		return
	}

	switch input.Action {
	case "new_walkin":
		cmd := services.NewWalkinCommand{
			Business:  business,
			Phone:     input.Phone,
			FirstName: input.FirstName,
			LastName:  input.LastName,
			DOB:       input.DOB,
			Companion: input.CareOf,
			Relation:  input.Relation,
			Purpose:   input.Purpose,
			Notes:     input.Notes,
		}
		res := services.Dispatch(config.DB, userID, cmd)
		if !res.OK() {
			respondSubmission(c, res)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message": "Walk-in registered successfully.",
			"visit":   res.Entity,
		})

	case "clockout":
		cmd := services.ClockOutCommand{Business: business, VisitID: input.VisitID}
		res := services.Dispatch(config.DB, userID, cmd)
		if !res.OK() {
			if errors.Is(res.Err, services.ErrNotFound) {
				utils.RespondWithError(c, http.StatusNotFound, "Visit not found or already clocked out.")
			} else {
				respondSubmission(c, res)
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Clock-out recorded.",
			"visit":   res.Entity,
		})

	default:
		utils.RespondWithError(c, http.StatusBadRequest, "Unknown action")
	}
}

// respondNoBusiness is the ScopeError response: point the client at the
// business-management flow instead of failing silently.
func respondNoBusiness(c *gin.Context) {
	c.JSON(http.StatusConflict, gin.H{
		"error":    "Please add and activate a business in Management → Add Business before using the Walk-In dashboard.",
		"redirect": managementRedirect,
	})
}

// respondSubmission maps a failed SubmissionResult onto the error taxonomy:
// field errors re-render with the original input, anything else is generic.
func respondSubmission(c *gin.Context, res services.SubmissionResult) {
	if len(res.FieldErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"fieldErrors": res.FieldErrors,
			"input":       res.Input,
		})
		return
	}
	utils.RespondWithError(c, http.StatusInternalServerError, "Something went wrong. Please try again.")
}
