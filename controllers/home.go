package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"walkinplus-backend/config"
	"walkinplus-backend/models"
	"walkinplus-backend/utils"
)

// Home returns the landing data after login: derived display name and the
// account's active businesses.
func Home(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return
	}

	var activeBusinesses []models.Business
	if err := config.DB.Where("owner_id = ? AND is_active = ?", userID, true).
		Order("created_at, id").Find(&activeBusinesses).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load businesses")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userName":          user.DisplayNameOrUsername(),
		"hasActiveBusiness": len(activeBusinesses) > 0,
		"activeBusinesses":  activeBusinesses,
	})
}
