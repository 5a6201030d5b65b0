// Package rabbit provides the JSON handlers for single rabbits: lookup,
// status changes, moves between groups and the photo access decision.
package rabbit

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoShelter-Admin/GoShelter-Admin/internal/apperr"
	coreauth "github.com/GoShelter-Admin/GoShelter-Admin/internal/auth"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/config"
	rabbitctl "github.com/GoShelter-Admin/GoShelter-Admin/internal/db/controller/rabbit"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/db/models"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/status"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/web/handler"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/web/middleware/auth"
)

// Path is the base path for rabbit endpoints.
const Path = handler.RootPath + "rabbits"

// Service provides the rabbit endpoints.
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
	app.Post(Path+"/:id/move", s.Move)
	app.Get(Path+"/:id/photo-access", s.PhotoAccess)
}

// Get returns a single rabbit, subject to the caller's view access.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := rabbitID(c)
	if err != nil {
		return handler.Error(c, err)
	}

	if err := s.requireAccess(c, id, false); err != nil {
		return handler.Error(c, err)
	}

	r, err := rabbitctl.GetByID(s.db, id)
	if err != nil {
		if errors.Is(err, rabbitctl.ErrRabbitNotFound) {
			return handler.Error(c, apperr.NotFound("rabbit %d not found", id))
		}

		return handler.Error(c, err)
	}

	return c.JSON(r)
}

// UpdateStatus changes the rabbit's lifecycle status, cascading to its group.
func (s *Service) UpdateStatus(c *fiber.Ctx) error {
	id, err := rabbitID(c)
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

	newStatus := models.RabbitStatus(in.Status)
	if !newStatus.Valid() {
		return handler.Error(c, apperr.BadRequest("unknown status %q", in.Status))
	}

	if err := s.requireAccess(c, id, true); err != nil {
		return handler.Error(c, err)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.cascade.RabbitStatusChanged(tx, id, newStatus)
	})
	if err != nil {
		return handler.Error(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Move reassigns the rabbit to another group, recomputing both groups.
func (s *Service) Move(c *fiber.Ctx) error {
	id, err := rabbitID(c)
	if err != nil {
		return handler.Error(c, err)
	}

	var in struct {
		GroupID uint `json:"groupId" validate:"required"`
	}

	if err := c.BodyParser(&in); err != nil {
		return handler.Error(c, apperr.BadRequest("invalid request body"))
	}

	if err := s.validator.Struct(in); err != nil {
		return handler.Error(c, apperr.BadRequest("groupId is required"))
	}

	if err := s.requireAccess(c, id, true); err != nil {
		return handler.Error(c, err)
	}

	// The caller also needs group-level access to the destination.
	principal := auth.Principal(c)

	ok, err := s.engine.ValidateRabbitGroupAccess(principal, in.GroupID)
	if err != nil {
		return handler.Error(c, err)
	}

	if !ok {
		return handler.Error(c, apperr.Forbidden("no access to rabbit group %d", in.GroupID))
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.cascade.MoveRabbit(c.UserContext(), tx, id, in.GroupID)
	})
	if err != nil {
		return handler.Error(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// PhotoAccess returns the caller's photo access tier for the rabbit.
func (s *Service) PhotoAccess(c *fiber.Ctx) error {
	id, err := rabbitID(c)
	if err != nil {
		return handler.Error(c, err)
	}

	principal := auth.Principal(c)

	tier, err := s.engine.GrantPhotoAccess(principal, id)
	if err != nil {
		return handler.Error(c, err)
	}

	return c.JSON(fiber.Map{"access": tier.String()})
}

// requireAccess runs the access decision for the rabbit and converts a
// denial into a Forbidden error.
func (s *Service) requireAccess(c *fiber.Ctx, id uint, editable bool) error {
	principal := auth.Principal(c)

	ok, err := s.engine.ValidateRabbitAccess(principal, id, editable)
	if err != nil {
		return err
	}

	if !ok {
		return apperr.Forbidden("no access to rabbit %d", id)
	}

	return nil
}

func rabbitID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, apperr.BadRequest("invalid rabbit id")
	}

	return uint(id), nil
}
