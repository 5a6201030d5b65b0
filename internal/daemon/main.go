// Package daemon wires the application together: database, identity
// provider, notification channels, domain services, the admission sweep
// schedule and the web service.
package daemon

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/GoShelter-Admin/GoShelter-Admin/internal/auth"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/config"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/db/dsn"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/db/models"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/identity"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/notify"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/permission"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/status"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/sweep"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/web"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
	scheduler  *cron.Cron
	sweeper    *sweep.Sweeper
}

// Start starts the sweep schedule and the web service, then blocks until
// shutdown.
func (d *Daemon) Start() error {
	if d.cfg.Sweep.Schedule != "" {
		if _, err := d.scheduler.AddFunc(d.cfg.Sweep.Schedule, func() {
			if err := d.sweeper.Run(context.Background()); err != nil {
				log.Error().Err(err).Msg("admission sweep failed")
			}
		}); err != nil {
			return fmt.Errorf("invalid sweep schedule %q: %w", d.cfg.Sweep.Schedule, err)
		}

		d.scheduler.Start()
		defer d.scheduler.Stop()
	}

	go d.webService.WaitShutdown()

	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// Sweep runs a single admission sweep pass and exits. Used by the one-shot
// sweep command.
func (d *Daemon) Sweep(ctx context.Context) error {
	return d.sweeper.Run(ctx)
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	db := openDB(cfg)

	if err := db.AutoMigrate(
		&models.Region{},
		&models.Team{},
		&models.TeamHistory{},
		&models.User{},
		&models.RoleAssignment{},
		&models.RabbitGroup{},
		&models.Rabbit{},
		&models.PushToken{},
	); err != nil {
		panic("failed to migrate database")
	}

	seed(cfg, db)

	ctx := context.Background()

	verifier, err := auth.NewVerifier(ctx, cfg.Identity)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize token verifier")
		return nil
	}

	provider := identity.New(cfg.Identity)

	var email notify.EmailClient
	if cfg.Notify.EmailEnabled {
		gmail, err := notify.NewGmailClient(ctx, cfg.Notify)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize email client")
			return nil
		}

		email = gmail
	}

	dispatcher := notify.NewDispatcher(db, notify.NewFCMClient(cfg.Notify), email)
	cascade := status.NewCascade(dispatcher)
	permissions := permission.NewService(db, provider, nil)
	sweeper := sweep.New(db, dispatcher, cfg.Sweep)

	webService := web.New(cfg, db, web.Deps{
		Verifier:    verifier,
		Engine:      auth.NewEngine(db),
		Permissions: permissions,
		Cascade:     cascade,
	})

	return &Daemon{
		cfg:        cfg,
		webService: webService,
		scheduler:  cron.New(),
		sweeper:    sweeper,
	}
}

func openDB(cfg *config.Config) *gorm.DB {
	var dialector gorm.Dialector

	switch cfg.DB.GormEngine {
	case "postgres":
		dialector = gormpostgres.Open(dsn.Create(cfg))
	default:
		dialector = gormmysql.Open(dsn.Create(cfg))
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	return db
}
