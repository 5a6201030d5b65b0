// Package teamhistory manages the append-only team tenure ledger.
package teamhistory

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/GoShelter-Admin/GoShelter-Admin/internal/db/models"
)

// ErrDBNil is returned when the database connection is nil.
var ErrDBNil = errors.New("database connection is nil")

// HasOpen reports whether an open interval exists for the exact (user, team) pair.
func HasOpen(db *gorm.DB, userID uint64, teamID uint) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}

	var count int64
	result := db.Model(&models.TeamHistory{}).
		Where("user_id = ? AND team_id = ? AND end_date IS NULL", userID, teamID).
		Count(&count)

	return count > 0, result.Error
}

// Open appends a new open interval for the user on the team.
func Open(db *gorm.DB, userID uint64, teamID uint, start time.Time) error {
	if db == nil {
		return ErrDBNil
	}

	row := &models.TeamHistory{UserID: userID, TeamID: teamID, StartDate: start}

	return db.Create(row).Error
}

// CloseOpen closes every open interval of the user. The ledger invariant
// allows at most one, but closing all repairs historic inconsistencies.
func CloseOpen(db *gorm.DB, userID uint64, end time.Time) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Model(&models.TeamHistory{}).
		Where("user_id = ? AND end_date IS NULL", userID).
		Update("end_date", end).Error
}

// ListByUser returns the user's tenure rows, oldest first.
func ListByUser(db *gorm.DB, userID uint64) ([]models.TeamHistory, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var rows []models.TeamHistory
	result := db.Where("user_id = ?", userID).Order("start_date asc").Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}
