// Package rabbit provides CRUD operations and scoped lookups for rabbits.
// The scoped Exists* lookups back the access decision engine: they answer
// "does a rabbit with this id exist within these region/team constraints"
// without revealing anything else about the entity.
package rabbit

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/GoShelter-Admin/GoShelter-Admin/internal/db/models"
)

var (
	// ErrRabbitNotFound is returned when a rabbit is not found.
	ErrRabbitNotFound = errors.New("rabbit not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// GetByID retrieves a rabbit by its ID.
func GetByID(db *gorm.DB, id uint) (*models.Rabbit, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var r models.Rabbit
	result := db.First(&r, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRabbitNotFound
		}
		return nil, result.Error
	}

	return &r, nil
}

// ExistsInRegions reports whether the rabbit exists within one of the given
// regions. An empty region set never matches.
func ExistsInRegions(db *gorm.DB, id uint, regionIDs []uint) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}

	if len(regionIDs) == 0 {
		return false, nil
	}

	var count int64
	result := db.Model(&models.Rabbit{}).
		Joins("JOIN rabbit_groups ON rabbit_groups.id = rabbits.rabbit_group_id").
		Where("rabbits.id = ? AND rabbit_groups.region_id IN ?", id, regionIDs).
		Count(&count)

	return count > 0, result.Error
}

// ExistsInTeam reports whether the rabbit exists within the given team.
func ExistsInTeam(db *gorm.DB, id uint, teamID uint) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}

	var count int64
	result := db.Model(&models.Rabbit{}).
		Joins("JOIN rabbit_groups ON rabbit_groups.id = rabbits.rabbit_group_id").
		Where("rabbits.id = ? AND rabbit_groups.team_id = ?", id, teamID).
		Count(&count)

	return count > 0, result.Error
}

// ListByGroup lists the member rabbits of a group.
func ListByGroup(db *gorm.DB, groupID uint) ([]models.Rabbit, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var rabbits []models.Rabbit
	result := db.Where("rabbit_group_id = ?", groupID).Find(&rabbits)
	if result.Error != nil {
		return nil, result.Error
	}

	return rabbits, nil
}

// ListIncomingOverdue lists rabbits still Incoming whose expected admission
// date lies before the given deadline.
func ListIncomingOverdue(db *gorm.DB, deadline time.Time) ([]models.Rabbit, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var rabbits []models.Rabbit
	result := db.
		Where("status = ? AND expected_admission_date IS NOT NULL AND expected_admission_date < ?",
			models.StatusIncoming, deadline).
		Find(&rabbits)
	if result.Error != nil {
		return nil, result.Error
	}

	return rabbits, nil
}

// Save persists changes to an existing rabbit.
func Save(db *gorm.DB, r *models.Rabbit) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Save(r).Error
}
