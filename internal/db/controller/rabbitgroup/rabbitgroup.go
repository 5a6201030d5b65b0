// Package rabbitgroup provides CRUD operations and scoped lookups for rabbit groups.
package rabbitgroup

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/GoShelter-Admin/GoShelter-Admin/internal/db/models"
)

var (
	// ErrGroupNotFound is returned when a rabbit group is not found.
	ErrGroupNotFound = errors.New("rabbit group not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// GetByID retrieves a group by its ID together with its member rabbits and team.
func GetByID(db *gorm.DB, id uint) (*models.RabbitGroup, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var g models.RabbitGroup
	result := db.Preload("Rabbits").Preload("Team").First(&g, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, result.Error
	}

	return &g, nil
}

// ExistsInRegions reports whether the group exists within one of the given
// regions. An empty region set never matches.
func ExistsInRegions(db *gorm.DB, id uint, regionIDs []uint) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}

	if len(regionIDs) == 0 {
		return false, nil
	}

	var count int64
	result := db.Model(&models.RabbitGroup{}).
		Where("id = ? AND region_id IN ?", id, regionIDs).
		Count(&count)

	return count > 0, result.Error
}

// Create persists a new group.
func Create(db *gorm.DB, g *models.RabbitGroup) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Create(g).Error
}

// Save persists changes to an existing group. Associations are skipped so
// that a group loaded with preloaded rabbits does not write those member
// rows back with whatever group membership they had at load time.
func Save(db *gorm.DB, g *models.RabbitGroup) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Omit(clause.Associations).Save(g).Error
}
