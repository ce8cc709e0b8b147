package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"walkinplus-backend/config"
	"walkinplus-backend/models"
	"walkinplus-backend/utils"
)

type RegisterInput struct {
	OwnerName       string `form:"owner_name" json:"owner_name"`
	Username        string `form:"username" json:"username" binding:"required"`
	Email           string `form:"email" json:"email" binding:"required,email"`
	Phone           string `form:"phone" json:"phone" binding:"required"`
	Password        string `form:"password" json:"password" binding:"required"`
	ConfirmPassword string `form:"confirm_password" json:"confirm_password" binding:"required"`
}

type LoginInput struct {
	Email    string `form:"email" json:"email"`
	Phone    string `form:"phone" json:"phone"`
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password" binding:"required"`
}

// currentUserID pulls the authenticated account id set by the auth middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return uuid.Nil, false
	}
	return id, true
}

// Register creates an account plus its contact profile. Every uniqueness
// check runs before any row is written.
func Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBind(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	username := strings.TrimSpace(input.Username)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	phone := strings.TrimSpace(input.Phone)

	if input.Password != input.ConfirmPassword {
		utils.RespondWithError(c, http.StatusBadRequest, "Passwords do not match.")
		return
	}
	if len(input.Password) < 6 {
		utils.RespondWithError(c, http.StatusBadRequest, "Password should be at least 6 characters long.")
		return
	}
	if !utils.ValidatePhone(phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Please enter a valid mobile number.")
		return
	}

	var count int64
	config.DB.Model(&models.User{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		utils.RespondWithError(c, http.StatusConflict, "This username is already taken. Please choose another.")
		return
	}
	config.DB.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		utils.RespondWithError(c, http.StatusConflict, "This email is already registered.")
		return
	}
	config.DB.Model(&models.ContactProfile{}).Where("phone_number = ?", phone).Count(&count)
	if count > 0 {
		utils.RespondWithError(c, http.StatusConflict, "This mobile number is already registered.")
		return
	}

	newUser := models.User{
		Username:    username,
		Email:       email,
		DisplayName: strings.TrimSpace(input.OwnerName),
		Password:    input.Password, // hashed in BeforeCreate hook
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&newUser).Error; err != nil {
			return err
		}
		profile := models.ContactProfile{UserID: newUser.ID, PhoneNumber: phone}
		return tx.Create(&profile).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Something went wrong while creating your account. Please try again.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully. You can now log in.",
		"user": gin.H{
			"id":       newUser.ID,
			"username": newUser.Username,
			"email":    newUser.Email,
		},
	})
}

// Login resolves the account by email, phone, or username, in that order.
func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBind(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	var user models.User
	var err error

	switch {
	case strings.TrimSpace(input.Email) != "":
		err = config.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(input.Email))).
			First(&user).Error
	case strings.TrimSpace(input.Phone) != "":
		var profile models.ContactProfile
		err = config.DB.Where("phone_number = ?", strings.TrimSpace(input.Phone)).
			First(&profile).Error
		if err == nil {
			err = config.DB.First(&user, "id = ?", profile.UserID).Error
		}
	case strings.TrimSpace(input.Username) != "":
		err = config.DB.Where("username = ?", strings.TrimSpace(input.Username)).
			First(&user).Error
	default:
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "No account found. Please sign up to continue.")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials. Please try again.")
		return
	}

	token, err := utils.GenerateToken(user.ID.String())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	now := time.Now()
	config.DB.Model(&user).Update("last_login", &now)

	expiryHours := 24
	maxAge := expiryHours * 3600
	c.SetCookie("token", token, maxAge, "/", "", true, true)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":          user.ID,
			"username":    user.Username,
			"email":       user.Email,
			"displayName": user.DisplayNameOrUsername(),
		},
	})
}

type ResetPasswordInput struct {
	ResetMethod     string `form:"reset_method" json:"reset_method" binding:"required"`
	Identifier      string `form:"identifier" json:"identifier" binding:"required"`
	OTP             string `form:"otp" json:"otp" binding:"required"`
	NewPassword     string `form:"new_password" json:"new_password" binding:"required"`
	ConfirmPassword string `form:"confirm_password" json:"confirm_password" binding:"required"`
}

// ResetPassword is the demo OTP reset flow. Real OTP delivery is an external
// concern; the accepted code is fixed.
func ResetPassword(c *gin.Context) {
	var input ResetPasswordInput
	if err := c.ShouldBind(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	if input.OTP != "123456" {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid OTP. Please try again.")
		return
	}
	if input.NewPassword != input.ConfirmPassword {
		utils.RespondWithError(c, http.StatusBadRequest, "Passwords do not match.")
		return
	}
	if len(input.NewPassword) < 6 {
		utils.RespondWithError(c, http.StatusBadRequest, "Password should be at least 6 characters long.")
		return
	}

	identifier := strings.ToLower(strings.TrimSpace(input.Identifier))

	var user models.User
	var err error
	switch input.ResetMethod {
	case "email":
		err = config.DB.Where("email = ?", identifier).First(&user).Error
	case "phone":
		var profile models.ContactProfile
		err = config.DB.Where("phone_number = ?", identifier).First(&profile).Error
		if err == nil {
			err = config.DB.First(&user, "id = ?", profile.UserID).Error
		}
	default:
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid reset method")
		return
	}
	if err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "No account found with those details. Please sign up.")
		return
	}

	hashed, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to reset password")
		return
	}
	if err := config.DB.Model(&user).Update("password", hashed).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to reset password")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password reset successful. You can now log in with your new password.",
	})
}

func Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var user models.User
	if err := config.DB.Preload("Contact").First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return
	}

	phone := ""
	if user.Contact != nil {
		phone = user.Contact.PhoneNumber
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":          user.ID,
			"username":    user.Username,
			"email":       user.Email,
			"displayName": user.DisplayNameOrUsername(),
			"phone":       phone,
		},
	})
}
