// Package rabbitgroup provides the JSON handlers for rabbit groups.
package rabbitgroup

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoShelter-Admin/GoShelter-Admin/internal/apperr"
	coreauth "github.com/GoShelter-Admin/GoShelter-Admin/internal/auth"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/config"
	groupctl "github.com/GoShelter-Admin/GoShelter-Admin/internal/db/controller/rabbitgroup"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/db/models"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/status"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/web/handler"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/web/middleware/auth"
)

// Path is the base path for rabbit group endpoints.
const Path = handler.RootPath + "rabbit-groups"

// Service provides the rabbit group endpoints.
type Service struct {
	cfg       *config.Config
	db        *gorm.DB
	engine    *coreauth.Engine
	cascade   *status.Cascade
	validator *validator.Validate
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, engine *coreauth.Engine, cascade *status.Cascade) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.db = db
	s.engine = engine
	s.cascade = cascade
	s.validator = validator.New()

	// Routes
	app.Get(Path+"/:id", s.Get)
	app.Put(Path+"/:id/status", s.UpdateStatus)
}

// Get returns a group with its member rabbits.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := groupID(c)
	if err != nil {
		return handler.Error(c, err)
	}

	if err := s.requireAccess(c, id); err != nil {
		return handler.Error(c, err)
	}

	g, err := groupctl.GetByID(s.db, id)
	if err != nil {
		if errors.Is(err, groupctl.ErrGroupNotFound) {
			return handler.Error(c, apperr.NotFound("rabbit group %d not found", id))
		}

		return handler.Error(c, err)
	}

	return c.JSON(g)
}

// UpdateStatus changes the group's status, propagating to its member rabbits.
func (s *Service) UpdateStatus(c *fiber.Ctx) error {
	id, err := groupID(c)
	if err != nil {
		return handler.Error(c, err)
	}

	var in struct {
		Status string `json:"status" validate:"required"`
	}

	if err := c.BodyParser(&in); err != nil {
		return handler.Error(c, apperr.BadRequest("invalid request body"))
	}

	if err := s.validator.Struct(in); err != nil {
		return handler.Error(c, apperr.BadRequest("status is required"))
	}

	newStatus := models.RabbitGroupStatus(in.Status)
	if !newStatus.Valid() {
		return handler.Error(c, apperr.BadRequest("unknown status %q", in.Status))
	}

	if err := s.requireAccess(c, id); err != nil {
		return handler.Error(c, err)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.cascade.GroupStatusChanged(tx, id, newStatus)
	})
	if err != nil {
		return handler.Error(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Service) requireAccess(c *fiber.Ctx, id uint) error {
	principal := auth.Principal(c)

	ok, err := s.engine.ValidateRabbitGroupAccess(principal, id)
	if err != nil {
		return err
	}

	if !ok {
		return apperr.Forbidden("no access to rabbit group %d", id)
	}

	return nil
}

func groupID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, apperr.BadRequest("invalid rabbit group id")
	}

	return uint(id), nil
}
