package services

import (
	"strconv"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"walkinplus-backend/models"
)

// ResolveBusinessScope picks the single business every dashboard query is
// scoped to. Candidates are the account's active businesses in creation
// order. A business_id that matches a candidate selects it; anything else
// (foreign, inactive, unparseable) falls back to the first candidate. With
// no candidates the scope is nil and callers degrade to zero/empty.
func ResolveBusinessScope(db *gorm.DB, userID uuid.UUID, businessIDParam string) (*models.Business, error) {
	var candidates []models.Business
	if err := db.Where("owner_id = ? AND is_active = ?", userID, true).
		Order("created_at, id").Find(&candidates).Error; err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	if businessIDParam != "" {
		if id, err := strconv.ParseUint(businessIDParam, 10, 64); err == nil {
			for i := range candidates {
				if candidates[i].ID == uint(id) {
					return &candidates[i], nil
				}
			}
		}
	}
	return &candidates[0], nil
}
