package daemon

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoShelter-Admin/GoShelter-Admin/internal/config"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/db/controller/user"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/db/models"
)

// seed creates the bootstrap admin on an empty database. Without it nobody
// could assign the first role.
func seed(cfg *config.Config, db *gorm.DB) {
	var count int64

	db.Model(&models.User{}).Count(&count)
	if count > 0 {
		return
	}

	if cfg.Bootstrap.AdminUID == "" {
		log.Warn().Msg("empty database and no bootstrap admin configured")
		return
	}

	admin := models.User{
		UID:    cfg.Bootstrap.AdminUID,
		Email:  cfg.Bootstrap.AdminEmail,
		Active: true,
	}

	if err := user.Create(db, &admin); err != nil {
		log.Error().Err(err).Msg("failed to create bootstrap admin")
		return
	}

	assignment := models.NewAdminAssignment(admin.ID)
	if err := db.Create(&assignment).Error; err != nil {
		log.Error().Err(err).Msg("failed to assign bootstrap admin role")
		return
	}

	log.Info().Str("uid", cfg.Bootstrap.AdminUID).Msg("created bootstrap admin")
}
