// Package pushtoken manages device registration tokens for push delivery.
package pushtoken

import (
	"errors"

	"gorm.io/gorm"

	"github.com/GoShelter-Admin/GoShelter-Admin/internal/db/models"
)

// ErrDBNil is returned when the database connection is nil.
var ErrDBNil = errors.New("database connection is nil")

// ListByUser lists the registration tokens of a user's devices.
func ListByUser(db *gorm.DB, userID uint64) ([]models.PushToken, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var tokens []models.PushToken
	result := db.Where("user_id = ?", userID).Find(&tokens)
	if result.Error != nil {
		return nil, result.Error
	}

	return tokens, nil
}

// Create registers a token for a user. Re-registering the same token is a no-op.
func Create(db *gorm.DB, userID uint64, token string) error {
	if db == nil {
		return ErrDBNil
	}

	row := &models.PushToken{UserID: userID, Token: token}

	var existing models.PushToken
	err := db.Where("token = ?", token).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return db.Create(row).Error
}

// Delete removes a registration token, typically after the push provider
// reported it stale.
func Delete(db *gorm.DB, token string) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Where("token = ?", token).Delete(&models.PushToken{}).Error
}
