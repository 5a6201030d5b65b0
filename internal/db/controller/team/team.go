// Package team provides CRUD operations for managing volunteer teams.
package team

import (
	"errors"

	"gorm.io/gorm"

	"github.com/GoShelter-Admin/GoShelter-Admin/internal/db/models"
)

var (
	// ErrTeamNotFound is returned when a team is not found.
	ErrTeamNotFound = errors.New("team not found")
	// ErrTeamInactive is returned when an operation requires an active team.
	ErrTeamInactive = errors.New("team is not active")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// GetByID retrieves a team by its ID.
func GetByID(db *gorm.DB, id uint) (*models.Team, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var t models.Team
	result := db.First(&t, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, result.Error
	}

	return &t, nil
}

// GetActiveByID retrieves a team by its ID and fails if it is inactive.
func GetActiveByID(db *gorm.DB, id uint) (*models.Team, error) {
	t, err := GetByID(db, id)
	if err != nil {
		return nil, err
	}

	if !t.Active {
		return nil, ErrTeamInactive
	}

	return t, nil
}

// Create creates a fresh active team in the given region.
func Create(db *gorm.DB, regionID uint) (*models.Team, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	t := &models.Team{RegionID: regionID, Active: true}
	if err := db.Create(t).Error; err != nil {
		return nil, err
	}

	return t, nil
}

// SetActive toggles a team's active flag.
func SetActive(db *gorm.DB, id uint, active bool) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Model(&models.Team{}).Where("id = ?", id).Update("active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTeamNotFound
	}

	return nil
}

// CountOutstandingGroups counts the rabbit groups assigned to the team that
// are not yet in a terminal status. A team with outstanding groups still has
// rabbits in its care.
func CountOutstandingGroups(db *gorm.DB, teamID uint) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	var count int64
	result := db.Model(&models.RabbitGroup{}).
		Where("team_id = ? AND status NOT IN ?", teamID,
			[]models.RabbitGroupStatus{models.GroupStatusAdopted, models.GroupStatusDeceased}).
		Count(&count)

	return count, result.Error
}
