package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/RafiALMahmud/Job-portal1/config"
	"github.com/RafiALMahmud/Job-portal1/internal/api/handlers"
	"github.com/RafiALMahmud/Job-portal1/internal/api/middleware"
	"github.com/RafiALMahmud/Job-portal1/internal/api/routes"
	"github.com/RafiALMahmud/Job-portal1/internal/cache"
	"github.com/RafiALMahmud/Job-portal1/internal/events"
	"github.com/RafiALMahmud/Job-portal1/internal/logger"
	mongorepo "github.com/RafiALMahmud/Job-portal1/internal/repositories/mongo"
	"github.com/RafiALMahmud/Job-portal1/internal/repositories/postgres"
	"github.com/RafiALMahmud/Job-portal1/internal/services"
	"github.com/RafiALMahmud/Job-portal1/internal/storage"
	"github.com/RafiALMahmud/Job-portal1/internal/utils"
	"github.com/RafiALMahmud/Job-portal1/internal/workers"
)

func main() {
	_ = godotenv.Load()

	settings, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("config error")
	}
	log := logger.New(settings.LogLevel)
	utils.SetBcryptCost(settings.BcryptCost)

	if err := config.InitDatabase(settings.DB); err != nil {
		log.WithError(err).Fatal("database init error")
	}
	log.WithField("driver", settings.DB.Driver).Info("database connected")

	// Redis is optional: without it the cache is in-process and notifications are written inline.
	var kv cache.Cache = cache.NewMemoryCache()
	if settings.Redis.Addr != "" {
		if err := config.InitRedis(settings.Redis.Addr); err != nil {
			log.WithError(err).Fatal("redis init error")
		}
		kv = cache.NewRedisCache(config.RedisClient)
		log.Info("redis connected")
	} else {
		log.Warn("REDIS_ADDR not set; using in-process cache, live notifications disabled")
	}

	activity := services.NewNopActivityRecorder()
	if settings.Mongo.URI != "" {
		if err := config.InitMongo(settings.Mongo.URI); err != nil {
			log.WithError(err).Fatal("mongo init error")
		}
		if err := config.EnsureMongoIndexes(settings.Mongo.Database); err != nil {
			log.WithError(err).Warn("mongo index setup failed")
		}
		activity = services.NewActivityService(mongorepo.NewActivityRepo(config.MongoClient.Database(settings.Mongo.Database)), log)
		log.Info("mongo connected")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, settings.Storage)
	if err != nil {
		log.WithError(err).Fatal("storage init error")
	}
	defer closeStore()

	db := config.DB
	users := postgres.NewUserRepo(db)
	employers := postgres.NewEmployerRepo(db)
	jobs := postgres.NewJobRepo(db)
	categories := postgres.NewCategoryRepo(db)
	jobTypes := postgres.NewJobTypeRepo(db)
	applications := postgres.NewApplicationRepo(db)
	saved := postgres.NewSavedJobRepo(db)
	notificationRepo := postgres.NewNotificationRepo(db)

	var live services.LivePublisher
	if config.RedisClient != nil {
		live = events.NewRedisPublisher(config.RedisClient)
	}
	notificationSvc := services.NewNotificationService(notificationRepo, live, log)

	var notifier services.Notifier = notificationSvc
	if config.RedisClient != nil {
		notifier = events.NewStreamNotifier(config.RedisClient, settings.Workers.Stream)
	}

	tokens := services.NewTokenService(settings.JWT.Secret, settings.JWT.Issuer, settings.JWT.TTL, kv, users)
	accountSvc := services.NewAccountService(users, employers, notificationRepo, store, tokens, activity)
	resetSvc := services.NewPasswordResetService(users, kv, activity, log, services.ResetOptions{
		TTL:            settings.Reset.TTL,
		MaxAttempts:    settings.Reset.MaxAttempts,
		CodeInResponse: settings.Reset.CodeInResponse,
	})
	jobSvc := services.NewJobService(jobs, categories, jobTypes, employers, applications, saved, kv)
	applicationSvc := services.NewApplicationService(jobs, users, applications, saved, notifier, log)
	employerSvc := services.NewEmployerService(users, employers, jobs, applications, notificationRepo)
	adminSvc := services.NewAdminService(users, jobs, categories, applications, store, kv, activity)

	if settings.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))
	if settings.Storage.Driver == "local" {
		r.Static(settings.Storage.PublicURL, settings.Storage.LocalDir)
	}

	routes.RegisterRoutes(r, routes.Deps{
		Tokens:      tokens,
		CookieName:  settings.JWT.CookieName,
		CORSOrigins: settings.CORSOrigins,

		Account: handlers.NewAccountHandler(accountSvc, resetSvc, handlers.CookieOptions{
			Name:   settings.JWT.CookieName,
			Secure: settings.IsProduction(),
		}),
		Jobs:         handlers.NewJobHandler(jobSvc),
		Applications: handlers.NewApplicationHandler(applicationSvc),
		Employer:     handlers.NewEmployerHandler(employerSvc),
		Admin:        handlers.NewAdminHandler(adminSvc),
		Notification: handlers.NewNotificationHandler(notificationSvc),
		WS:           handlers.NewWSHandler(notificationSvc, config.RedisClient, handlers.AllowedOrigins(settings.CORSOrigins)),
	})

	srv := &http.Server{
		Addr:              ":" + settings.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithField("port", settings.Port).Info("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if config.RedisClient != nil {
		pool := &workers.NotificationWorkerPool{
			Redis:      config.RedisClient,
			Notifier:   notificationSvc,
			NumWorkers: settings.Workers.Notifications,
			Logger:     log,
			Stream:     settings.Workers.Stream,
			Group:      settings.Workers.Group,
			ClaimIdle:  settings.Workers.ClaimIdle,
		}
		g.Go(func() error { return pool.Run(gctx) })
	}

	if err := g.Wait(); err != nil {
		log.WithError(err).Error("server stopped with error")
		os.Exit(1)
	}
	log.Info("server stopped")
}

func openStore(ctx context.Context, s config.StorageSettings) (storage.ObjectStore, func(), error) {
	switch s.Driver {
	case "gcs":
		gcs, err := storage.NewGCSStore(ctx, s.Bucket, s.Public)
		if err != nil {
			return nil, nil, err
		}
		return gcs, func() { _ = gcs.Close() }, nil
	default:
		local, err := storage.NewLocalStore(s.LocalDir, s.PublicURL)
		if err != nil {
			return nil, nil, err
		}
		return local, func() {}, nil
	}
}
