// Package role provides the admin endpoints for managing a user's roles and
// account state. All routes are guarded by the admin role.
package role

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoShelter-Admin/GoShelter-Admin/internal/apperr"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/config"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/db/models"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/permission"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/web/handler"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/web/middleware/auth"
)

// Path is the base path for user role administration.
const Path = handler.RootPath + "users"

// Service provides the role administration endpoints.
type Service struct {
	cfg         *config.Config
	db          *gorm.DB
	permissions *permission.Service
	validator   *validator.Validate
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, permissions *permission.Service) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.db = db
	s.permissions = permissions
	s.validator = validator.New()

	// Routes
	app.Post(Path+"/:id/roles", auth.RequireAdmin, s.AddRole)
	app.Delete(Path+"/:id/roles", auth.RequireAdmin, s.RemoveRole)
	app.Post(Path+"/:id/deactivate", auth.RequireAdmin, s.Deactivate)
	app.Post(Path+"/:id/activate", auth.RequireAdmin, s.Activate)
}

type roleRequest struct {
	Role     string `json:"role" validate:"required"`
	RegionID *uint  `json:"regionId"`
	TeamID   *uint  `json:"teamId"`
}

// AddRole assigns a role to the user.
func (s *Service) AddRole(c *fiber.Ctx) error {
	id, err := userID(c)
	if err != nil {
		return handler.Error(c, err)
	}

	var in roleRequest
	if err := c.BodyParser(&in); err != nil {
		return handler.Error(c, apperr.BadRequest("invalid request body"))
	}

	if err := s.validator.Struct(in); err != nil {
		return handler.Error(c, apperr.BadRequest("role is required"))
	}

	role := models.Role(in.Role)
	if !role.Valid() {
		return handler.Error(c, apperr.BadRequest("unknown role %q", in.Role))
	}

	if err := s.permissions.AddRoleToUser(c.UserContext(), id, role, in.RegionID, in.TeamID); err != nil {
		return handler.Error(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// RemoveRole removes a role from the user.
func (s *Service) RemoveRole(c *fiber.Ctx) error {
	id, err := userID(c)
	if err != nil {
		return handler.Error(c, err)
	}

	var in roleRequest
	if err := c.BodyParser(&in); err != nil {
		return handler.Error(c, apperr.BadRequest("invalid request body"))
	}

	if err := s.validator.Struct(in); err != nil {
		return handler.Error(c, apperr.BadRequest("role is required"))
	}

	role := models.Role(in.Role)
	if !role.Valid() {
		return handler.Error(c, apperr.BadRequest("unknown role %q", in.Role))
	}

	if err := s.permissions.RemoveRoleFromUser(c.UserContext(), id, role, in.RegionID); err != nil {
		return handler.Error(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Deactivate disables the user account.
func (s *Service) Deactivate(c *fiber.Ctx) error {
	id, err := userID(c)
	if err != nil {
		return handler.Error(c, err)
	}

	if err := s.permissions.DeactivateUser(c.UserContext(), id); err != nil {
		return handler.Error(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Activate re-enables the user account.
func (s *Service) Activate(c *fiber.Ctx) error {
	id, err := userID(c)
	if err != nil {
		return handler.Error(c, err)
	}

	if err := s.permissions.ActivateUser(c.UserContext(), id); err != nil {
		return handler.Error(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func userID(c *fiber.Ctx) (uint64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, apperr.BadRequest("invalid user id")
	}

	return uint64(id), nil
}
