// Package web wires the Fiber application: the JSON API for rabbits, groups,
// roles and push tokens behind the identity-provider token middleware, plus
// the unauthenticated health and metrics endpoints.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	coreauth "github.com/GoShelter-Admin/GoShelter-Admin/internal/auth"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/config"
	accesslog "github.com/GoShelter-Admin/GoShelter-Admin/internal/logger/adapter/fiber"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/permission"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/status"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/web/handler/pushtoken"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/web/handler/rabbit"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/web/handler/rabbitgroup"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/web/handler/role"
	authmw "github.com/GoShelter-Admin/GoShelter-Admin/internal/web/middleware/auth"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
}

// Deps are the domain services the handlers depend on.
type Deps struct {
	Verifier    *coreauth.Verifier
	Engine      *coreauth.Engine
	Permissions *permission.Service
	Cascade     *status.Cascade
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for graceful shutdown of the service.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so healthz returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	// stop fiber http server
	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, db *gorm.DB, deps Deps) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        "GoShelter-Admin",
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
		},
	)

	// init web service
	service := &Service{
		cfg: cfg,
		App: app,
		db:  db,
	}
	service.alive.Store(true)

	// access logging
	app.Use(accesslog.New(accesslog.Config{
		Config:        cfg.Log,
		CheckAliveURI: "/healthz",
	}))

	// health and metrics stay outside the auth middleware
	app.Get("/healthz", func(c *fiber.Ctx) error {
		if !service.alive.Load() {
			return c.SendStatus(fiber.StatusServiceUnavailable)
		}

		return c.SendString("ok")
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// token auth middleware
	app.Use(authmw.New(deps.Verifier))

	// init handlers (they register their own routes)
	rabbit.Handler.Init(app, cfg, db, deps.Engine, deps.Cascade)
	rabbitgroup.Handler.Init(app, cfg, db, deps.Engine, deps.Cascade)
	role.Handler.Init(app, cfg, db, deps.Permissions)
	pushtoken.Handler.Init(app, cfg, db)

	return service
}
