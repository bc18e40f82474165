package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/techblog/core/internal/config"
	"github.com/techblog/core/internal/database"
	"github.com/techblog/core/internal/middleware"
	"github.com/techblog/core/internal/modules/analytics"
	"github.com/techblog/core/internal/modules/auth"
	"github.com/techblog/core/internal/modules/content"
	"github.com/techblog/core/internal/modules/content/comment"
	"github.com/techblog/core/internal/modules/content/post"
	"github.com/techblog/core/internal/modules/storage/upload"
	"github.com/techblog/core/internal/pkg/jwt"
	"github.com/techblog/core/internal/pkg/mongodb"
	pkgredis "github.com/techblog/core/internal/pkg/redis"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds all application dependencies.
type App struct {
	cfg     *config.AppConfig
	router  *gin.Engine
	db      *gorm.DB
	mongo   *mongodb.Client
	redis   *pkgredis.Client
	emitter *analytics.Emitter
	logger  *zap.Logger
}

// New initializes the application: config → stores → services → routes.
// Components are wired by explicit constructor injection; nothing here is
// proxied or deferred.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	jwt.SetSecret(cfg.JWTSecret)

	db, err := database.Connect(cfg, true)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	mc, err := mongodb.Connect(cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		return nil, fmt.Errorf("mongo: %w", err)
	}
	commentStore := comment.NewMongoStore(mc.Collection(cfg.Mongo.CommentsCollection))
	{
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := commentStore.EnsureIndexes(ctx)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("mongo: %w", err)
		}
	}

	var rc *pkgredis.Client
	if cfg.RedisURL != "" {
		rc, err = pkgredis.Connect(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
	}

	emitter, uploadSvc, err := buildAWS(cfg, logger)
	if err != nil {
		return nil, err
	}

	postSvc := post.NewService(db)
	likeLedger := post.NewLikeLedger(db, postSvc)
	commentSvc := comment.NewService(commentStore, logger.Named("comments"))
	contentSvc := content.NewService(postSvc, likeLedger, commentSvc, emitter)
	authSvc := auth.NewService(db)

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(corsConfig(cfg)))

	app := &App{
		cfg:     cfg,
		router:  router,
		db:      db,
		mongo:   mc,
		redis:   rc,
		emitter: emitter,
		logger:  logger,
	}
	app.registerRoutes(contentSvc, authSvc, uploadSvc)

	return app, nil
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown drains the emitter and closes store connections.
func (a *App) Shutdown() {
	a.emitter.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.mongo.Disconnect(ctx); err != nil {
		a.logger.Warn("mongo disconnect", zap.Error(err))
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("redis close", zap.Error(err))
		}
	}
}

// buildAWS constructs the Firehose emitter and the S3 upload service. Either
// can be disabled by leaving its name out of the config; the emitter then
// drops silently and uploads report the storage as unavailable.
func buildAWS(cfg *config.AppConfig, logger *zap.Logger) (*analytics.Emitter, *upload.Service, error) {
	var (
		sink      analytics.Sink
		uploadSvc = upload.NewService(nil, "", "")
	)

	if cfg.AWS.FirehoseStream != "" || cfg.AWS.S3Bucket != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
		if err != nil {
			return nil, nil, fmt.Errorf("aws: %w", err)
		}

		if cfg.AWS.FirehoseStream != "" {
			client := analytics.NewFirehoseClient(awsCfg, cfg.AWS.Endpoint)
			sink = analytics.NewFirehoseSink(client, cfg.AWS.FirehoseStream)
		}
		if cfg.AWS.S3Bucket != "" {
			client := upload.NewS3Client(awsCfg, cfg.AWS.Endpoint)
			uploadSvc = upload.NewService(client, cfg.AWS.S3Bucket, cfg.AWS.Region)
		}
	} else {
		logger.Warn("no firehose stream or s3 bucket configured, analytics and uploads disabled")
	}

	return analytics.NewEmitter(sink, logger.Named("analytics")), uploadSvc, nil
}

func corsConfig(cfg *config.AppConfig) cors.Config {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}
	if len(cfg.AllowedOrigins) > 0 && !cfg.IsDev() {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsCfg.AllowOriginFunc = func(string) bool { return true }
	}
	return corsCfg
}
