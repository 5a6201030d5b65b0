// Package pushtoken provides the endpoints for registering and removing the
// caller's own device push tokens.
package pushtoken

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoShelter-Admin/GoShelter-Admin/internal/apperr"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/config"
	tokenctl "github.com/GoShelter-Admin/GoShelter-Admin/internal/db/controller/pushtoken"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/db/controller/user"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/db/models"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/web/handler"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/web/middleware/auth"
)

// Path is the base path for push token endpoints.
const Path = handler.RootPath + "push-tokens"

// Service provides the push token endpoints.
type Service struct {
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.db = db
	s.validator = validator.New()

	// Routes
	app.Post(Path, s.Register)
	app.Delete(Path, s.Unregister)
}

type tokenRequest struct {
	Token string `json:"token" validate:"required,max=512"`
}

// Register stores a push token for the calling user. Re-registering the same
// token is a no-op.
func (s *Service) Register(c *fiber.Ctx) error {
	u, err := s.currentUser(c)
	if err != nil {
		return handler.Error(c, err)
	}

	var in tokenRequest
	if err := c.BodyParser(&in); err != nil {
		return handler.Error(c, apperr.BadRequest("invalid request body"))
	}

	if err := s.validator.Struct(in); err != nil {
		return handler.Error(c, apperr.BadRequest("token is required"))
	}

	if err := tokenctl.Create(s.db, u.ID, in.Token); err != nil {
		return handler.Error(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Unregister removes a push token.
func (s *Service) Unregister(c *fiber.Ctx) error {
	if _, err := s.currentUser(c); err != nil {
		return handler.Error(c, err)
	}

	var in tokenRequest
	if err := c.BodyParser(&in); err != nil {
		return handler.Error(c, apperr.BadRequest("invalid request body"))
	}

	if err := s.validator.Struct(in); err != nil {
		return handler.Error(c, apperr.BadRequest("token is required"))
	}

	if err := tokenctl.Delete(s.db, in.Token); err != nil {
		return handler.Error(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Service) currentUser(c *fiber.Ctx) (*models.User, error) {
	principal := auth.Principal(c)
	if principal == nil {
		return nil, apperr.Forbidden("no principal")
	}

	u, err := user.GetByUID(s.db, principal.UID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperr.NotFound("no local account for the calling user")
		}

		return nil, err
	}

	return u, nil
}
