// Package region provides CRUD operations for managing shelter regions.
package region

import (
	"errors"

	"gorm.io/gorm"

	"github.com/GoShelter-Admin/GoShelter-Admin/internal/db/models"
)

var (
	// ErrRegionNotFound is returned when a region is not found.
	ErrRegionNotFound = errors.New("region not found")
	// ErrRegionNameEmpty is returned when creating a region with an empty name.
	ErrRegionNameEmpty = errors.New("region name cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// GetByID retrieves a region by its ID.
func GetByID(db *gorm.DB, id uint) (*models.Region, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var r models.Region
	result := db.First(&r, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRegionNotFound
		}
		return nil, result.Error
	}

	return &r, nil
}

// Exists reports whether a region with the given ID exists.
func Exists(db *gorm.DB, id uint) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}

	var count int64
	result := db.Model(&models.Region{}).Where("id = ?", id).Count(&count)

	return count > 0, result.Error
}

// Create creates a new region with the given name.
func Create(db *gorm.DB, name string) (*models.Region, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrRegionNameEmpty
	}

	r := &models.Region{Name: name}
	if err := db.Create(r).Error; err != nil {
		return nil, err
	}

	return r, nil
}

// GetAll retrieves all regions.
func GetAll(db *gorm.DB) ([]models.Region, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var regions []models.Region
	result := db.Find(&regions)
	if result.Error != nil {
		return nil, result.Error
	}

	return regions, nil
}
