package app

import (
	"context"
	"errors"
	"log"
	"time"

	"referhub/internal/config"
	"referhub/internal/database"
	dbpostgres "referhub/internal/database/postgres"
	"referhub/internal/infrastructure/cache"
	"referhub/internal/infrastructure/fetcher"
	"referhub/internal/infrastructure/imagehost"
	"referhub/internal/infrastructure/llm"
	"referhub/internal/infrastructure/mailer"
	"referhub/internal/infrastructure/persistence/postgres"
	"referhub/internal/notification"
	"referhub/internal/pkg/jwt"
	"referhub/internal/repository"
	"referhub/internal/usecase"
	"referhub/internal/ws"
)

// Container owns every long-lived dependency. Optional integrations (Redis,
// SMTP, Gemini, Cloudinary) fall back to disabled implementations instead of
// failing start-up.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB       database.DB
	Cache    *cache.Redis
	Hub      *ws.Hub
	Notifier *notification.Dispatcher
	JWT      jwt.Service

	Auth      *usecase.Auth
	Users     *usecase.User
	Sessions  *usecase.Sessions
	Profiles  *usecase.Profiles
	JobList   *usecase.JobList
	Jobs      *usecase.Jobs
	Referrals *usecase.Referrals
	Chat      *usecase.Chat
	Admin     *usecase.Admin

	stopHub context.CancelFunc
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.Default()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	completer, err := llm.New(ctx, cfg.LLM, logger)
	if err != nil {
		logger.Printf("[LLM] init failed, AI features disabled: %v", err)
		completer = llm.Disabled{}
	}

	images, err := imagehost.New(cfg.ImageHost, logger)
	if err != nil {
		logger.Printf("[ImageHost] init failed, uploads disabled: %v", err)
		images = imagehost.Disabled{}
	}

	c := &Container{
		Config:   cfg,
		Logger:   logger,
		DB:       db,
		Cache:    cache.NewRedis(cfg.Redis, logger),
		Hub:      ws.NewHub(logger),
		Notifier: notification.NewDispatcher(mailer.New(cfg.Mail, logger), cfg.Mail.Workers, logger),
		JWT: jwt.NewHMACService(
			cfg.JWT.AccessSecret,
			cfg.JWT.RefreshSecret,
			cfg.JWT.AccessExpiresIn,
			cfg.JWT.RefreshExpiresIn,
		),
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	c.stopHub = stopHub
	go c.Hub.Run(hubCtx)

	userRepo := postgres.NewUserRepository(db)
	profileRepo := repository.NewPostgresProfileRepository(db)
	jobRepo := repository.NewPostgresJobRepository(db)
	referralRepo := repository.NewPostgresReferralRepository(db)
	messageRepo := repository.NewPostgresMessageRepository(db)
	statsRepo := repository.NewPostgresStatsRepository(db)

	c.Auth = usecase.NewAuthUsecase(userRepo, c.JWT)
	c.Users = usecase.NewUserUsecase(userRepo, images, logger)
	c.Sessions = usecase.NewSessionUsecase(profileRepo)
	c.Profiles = usecase.NewProfileUsecase(profileRepo, images, logger)
	c.JobList = usecase.NewJobListUsecase(jobRepo, profileRepo, c.Cache, logger)
	c.Jobs = usecase.NewJobUsecase(jobRepo, profileRepo, c.Cache, fetcher.New(cfg.Importer.Headless, cfg.Importer.Timeout, logger), completer, logger)
	c.Referrals = usecase.NewReferralUsecase(usecase.ReferralDeps{
		Referrals: referralRepo,
		Jobs:      jobRepo,
		Profiles:  profileRepo,
		Cache:     c.Cache,
		LLM:       completer,
		Notifier:  c.Notifier,
		Hub:       c.Hub,
		PublicURL: cfg.App.PublicURL,
		Logger:    logger,
	})
	c.Chat = usecase.NewChatUsecase(referralRepo, messageRepo, c.Hub, logger)
	c.Admin = usecase.NewAdminUsecase(userRepo, profileRepo, jobRepo, statsRepo, c.Cache, logger)

	return c, nil
}

// Close stops the hub, drains pending email, then releases Redis and the
// pool.
func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.stopHub != nil {
		c.stopHub()
	}

	var errs []error
	if c.Notifier != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		if err := c.Notifier.Close(ctx); err != nil {
			errs = append(errs, err)
		}
		cancel()
	}
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
