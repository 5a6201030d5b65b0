// Package user provides CRUD operations for managing shelter users.
package user

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/GoShelter-Admin/GoShelter-Admin/internal/db/models"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// GetByID retrieves a user by ID together with roles and team.
func GetByID(db *gorm.DB, id uint64) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var u models.User
	result := db.Preload("Roles").Preload("Team").First(&u, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}

	return &u, nil
}

// GetByUID retrieves a user by its identity-provider UID.
func GetByUID(db *gorm.DB, uid string) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var u models.User
	result := db.Preload("Roles").Preload("Team").Where("uid = ?", uid).First(&u)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}

	return &u, nil
}

// Create persists a new user.
func Create(db *gorm.DB, u *models.User) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Create(u).Error
}

// Save persists changes to an existing user. Associations are skipped so
// that preloaded role or team rows are never written back alongside the
// user's own columns.
func Save(db *gorm.DB, u *models.User) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Omit(clause.Associations).Save(u).Error
}

// CountActiveInTeam counts active members of a team.
func CountActiveInTeam(db *gorm.DB, teamID uint) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	var count int64
	result := db.Model(&models.User{}).
		Where("team_id = ? AND active = ?", teamID, true).
		Count(&count)

	return count, result.Error
}

// ListActiveInTeam lists the active members of a team.
func ListActiveInTeam(db *gorm.DB, teamID uint) ([]models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var users []models.User
	result := db.Where("team_id = ? AND active = ?", teamID, true).Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

// ListManagersForRegion lists the users holding a RegionManager role scoped
// to the given region.
func ListManagersForRegion(db *gorm.DB, regionID uint) ([]models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var users []models.User
	result := db.
		Joins("JOIN role_assignments ON role_assignments.user_id = users.id").
		Where("role_assignments.role = ? AND role_assignments.region_id = ?", models.RoleRegionManager, regionID).
		Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}
