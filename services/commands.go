package services

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"walkinplus-backend/models"
	"walkinplus-backend/utils"
)

// ErrNotFound means the mutation target does not exist within the caller's
// scope (wrong id, foreign ownership, or already closed).
var ErrNotFound = errors.New("not found")

// SubmissionResult is the outcome of one mutation command: either the entity
// it produced, or the field errors plus the submitted input echoed back so
// the caller can re-render the form.
type SubmissionResult struct {
	Entity      interface{}       `json:"entity,omitempty"`
	Input       map[string]string `json:"input,omitempty"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
	Err         error             `json:"-"`
}

func (r SubmissionResult) OK() bool {
	return r.Err == nil && len(r.FieldErrors) == 0
}

// Command is one dashboard mutation. Each variant validates its own input
// and performs its own side effects; controllers only translate requests
// into commands and results into responses.
type Command interface {
	Execute(db *gorm.DB, userID uuid.UUID) SubmissionResult
}

// Dispatch runs a command against the store on behalf of an account.
func Dispatch(db *gorm.DB, userID uuid.UUID, cmd Command) SubmissionResult {
	return cmd.Execute(db, userID)
}

// AddBusinessCommand creates a business. New businesses start active.
type AddBusinessCommand struct {
	Name     string
	Location string
	Logo     string
}

func (cmd AddBusinessCommand) Execute(db *gorm.DB, userID uuid.UUID) SubmissionResult {
	res := SubmissionResult{
		Input:       map[string]string{"business_name": cmd.Name, "location": cmd.Location, "business_logo": cmd.Logo},
		FieldErrors: map[string]string{},
	}
	if strings.TrimSpace(cmd.Name) == "" {
		res.FieldErrors["business_name"] = "Business name is required."
	}
	if strings.TrimSpace(cmd.Location) == "" {
		res.FieldErrors["location"] = "Location is required."
	}
	if len(res.FieldErrors) > 0 {
		return res
	}

	business := models.Business{
		OwnerID:  userID,
		Name:     strings.TrimSpace(cmd.Name),
		Location: strings.TrimSpace(cmd.Location),
		Logo:     strings.TrimSpace(cmd.Logo),
		IsActive: true,
	}
	if err := db.Create(&business).Error; err != nil {
		res.Err = err
		return res
	}
	res.Entity = business
	return res
}

// UpdateBusinessCommand edits a business the account owns. Empty name or
// location means leave unchanged; the logo is always overwritten; the active
// flag is recomputed from the status token, defaulting to active.
type UpdateBusinessCommand struct {
	BusinessID string
	Name       string
	Location   string
	Logo       string
	Status     string
}

func (cmd UpdateBusinessCommand) Execute(db *gorm.DB, userID uuid.UUID) SubmissionResult {
	res := SubmissionResult{}

	id, err := strconv.ParseUint(cmd.BusinessID, 10, 64)
	if err != nil {
		res.Err = ErrNotFound
		return res
	}

	var business models.Business
	if err := db.Where("id = ? AND owner_id = ?", uint(id), userID).
		First(&business).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			res.Err = ErrNotFound
		} else {
			res.Err = err
		}
		return res
	}

	if name := strings.TrimSpace(cmd.Name); name != "" {
		business.Name = name
	}
	if location := strings.TrimSpace(cmd.Location); location != "" {
		business.Location = location
	}
	business.Logo = strings.TrimSpace(cmd.Logo)

	status := cmd.Status
	if status == "" {
		status = "active"
	}
	business.IsActive = status == "active"

	if err := db.Save(&business).Error; err != nil {
		res.Err = err
		return res
	}
	res.Entity = business
	return res
}

// UpdateProfileCommand edits account fields. Every field is optional: empty
// submitted values leave the current value alone. The contact profile row is
// created lazily the first time a phone number is saved. Changing the
// password does not invalidate tokens already issued.
type UpdateProfileCommand struct {
	Username    string
	DisplayName string
	Email       string
	Phone       string
	Password    string
}

func (cmd UpdateProfileCommand) Execute(db *gorm.DB, userID uuid.UUID) SubmissionResult {
	res := SubmissionResult{}

	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		res.Err = err
		return res
	}

	if username := strings.TrimSpace(cmd.Username); username != "" && username != user.Username {
		user.Username = username
	}
	if email := strings.TrimSpace(cmd.Email); email != "" {
		user.Email = email
	}
	if name := strings.TrimSpace(cmd.DisplayName); name != "" {
		user.DisplayName = name
	}
	if err := db.Save(&user).Error; err != nil {
		res.Err = err
		return res
	}

	if phone := strings.TrimSpace(cmd.Phone); phone != "" {
		var profile models.ContactProfile
		err := db.Where("user_id = ?", userID).First(&profile).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			profile = models.ContactProfile{UserID: userID, PhoneNumber: phone}
			err = db.Create(&profile).Error
		case err == nil:
			profile.PhoneNumber = phone
			err = db.Save(&profile).Error
		}
		if err != nil {
			res.Err = err
			return res
		}
	}

	if cmd.Password != "" {
		hashed, err := utils.HashPassword(cmd.Password)
		if err != nil {
			res.Err = err
			return res
		}
		if err := db.Model(&models.User{}).Where("id = ?", userID).
			Update("password", hashed).Error; err != nil {
			res.Err = err
			return res
		}
	}

	res.Entity = user
	return res
}

// NewWalkinCommand registers a walk-in against the resolved business. The
// walk-in date and clock-in come from the request's local clock; clock-out
// stays NULL until the visit is closed.
type NewWalkinCommand struct {
	Business  *models.Business
	Phone     string
	FirstName string
	LastName  string
	DOB       string
	Companion string
	Relation  string
	Purpose   string
	Notes     string
	Now       time.Time
}

func (cmd NewWalkinCommand) Execute(db *gorm.DB, userID uuid.UUID) SubmissionResult {
	res := SubmissionResult{
		Input: map[string]string{
			"phone": cmd.Phone, "first_name": cmd.FirstName, "last_name": cmd.LastName,
			"dob": cmd.DOB, "care_of": cmd.Companion, "relation": cmd.Relation,
			"purpose": cmd.Purpose, "notes": cmd.Notes,
		},
		FieldErrors: map[string]string{},
	}

	phone := strings.TrimSpace(cmd.Phone)
	firstName := strings.TrimSpace(cmd.FirstName)
	if phone == "" {
		res.FieldErrors["phone"] = "Phone and first name are required."
	}
	if firstName == "" {
		res.FieldErrors["first_name"] = "Phone and first name are required."
	}
	if len(res.FieldErrors) > 0 {
		return res
	}

	now := cmd.Now
	if now.IsZero() {
		now = time.Now()
	}

	visit := models.Visit{
		UserID:            userID,
		BusinessID:        cmd.Business.ID,
		CustomerName:      strings.TrimSpace(firstName + " " + strings.TrimSpace(cmd.LastName)),
		CustomerDOB:       utils.ParseDate(cmd.DOB),
		ContactNumber:     phone,
		Companion:         strings.TrimSpace(cmd.Companion),
		CompanionRelation: strings.TrimSpace(cmd.Relation),
		Purpose:           strings.TrimSpace(cmd.Purpose),
		Notes:             strings.TrimSpace(cmd.Notes),
		WalkinDate:        utils.FormatDate(now),
		ClockIn:           utils.FormatClock(now),
	}
	if err := db.Create(&visit).Error; err != nil {
		res.Err = err
		return res
	}
	res.Entity = visit
	return res
}

// ClockOutCommand closes an open visit. The existence check and the write
// are one conditional UPDATE so two concurrent clock-outs cannot both
// succeed; zero affected rows means not found, foreign, or already closed.
type ClockOutCommand struct {
	Business *models.Business
	VisitID  string
	Now      time.Time
}

func (cmd ClockOutCommand) Execute(db *gorm.DB, userID uuid.UUID) SubmissionResult {
	res := SubmissionResult{}

	id, err := strconv.ParseUint(cmd.VisitID, 10, 64)
	if err != nil {
		res.Err = ErrNotFound
		return res
	}

	now := cmd.Now
	if now.IsZero() {
		now = time.Now()
	}

	result := db.Model(&models.Visit{}).
		Where("id = ? AND user_id = ? AND business_id = ? AND clock_out IS NULL",
			uint(id), userID, cmd.Business.ID).
		Update("clock_out", utils.FormatClock(now))
	if result.Error != nil {
		res.Err = result.Error
		return res
	}
	if result.RowsAffected == 0 {
		res.Err = ErrNotFound
		return res
	}

	var visit models.Visit
	if err := db.First(&visit, uint(id)).Error; err != nil {
		res.Err = err
		return res
	}
	res.Entity = visit
	return res
}
