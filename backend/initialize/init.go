package initialize

import (
	"context"
	"fmt"
	"net/http"
	"pupshare/backend/app/controllers"
	"pupshare/backend/app/db"
	jwtutil "pupshare/backend/app/jwt"
	"pupshare/backend/app/media"
	"pupshare/backend/app/middleware"
	"pupshare/backend/app/models"
	"pupshare/backend/app/repo"
	"pupshare/backend/app/seed"
	"pupshare/backend/app/services"
	"pupshare/backend/app/session"
	"pupshare/backend/app/socket"
	"pupshare/backend/config"
	"pupshare/backend/global"
	"pupshare/backend/router"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type App struct {
	Cfg        *config.Config
	DB         *gorm.DB
	Redis      *redis.Client
	Router     http.Handler
	Hub        *socket.Hub
	Signer     *jwtutil.Signer
	Users      *services.UserService
	Photos     *services.PhotoService
	Social     *services.SocialService
	Tags       *services.TagService
	Visibility *services.VisibilityService
	Comments   *services.CommentService
	Moderation *services.ModerationService
}

// Build loads the config at configPath and wires the whole application.
func Build(ctx context.Context, configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	SetLogLevel(cfg.LogLevel)

	gdb, err := db.Connect(db.Config{
		Driver:   cfg.DB.Driver,
		Path:     cfg.DB.Path,
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Pass,
		DBName:   cfg.DB.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
	}
	return BuildWith(ctx, cfg, gdb, rdb)
}

// BuildWith wires the application around an open database. rdb may be nil,
// in which case token revocation is kept in memory.
func BuildWith(ctx context.Context, cfg *config.Config, gdb *gorm.DB, rdb *redis.Client) (*App, error) {
	global.Config = *cfg
	global.Mdb = gdb
	global.Rdb = rdb

	if err := gdb.AutoMigrate(models.All()...); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	store := repo.NewStore(gdb)
	if cfg.SeedDemo {
		if _, err := seed.Photos(ctx, store); err != nil {
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	// Repositories
	userRepo := repo.NewUserRepository(gdb)
	photoRepo := repo.NewPhotoRepository(gdb)
	likeRepo := repo.NewLikeRepository(gdb)
	commentRepo := repo.NewCommentRepository(gdb)
	tagRepo := repo.NewTagRepository(gdb)

	// Services
	hub := socket.NewHub()
	mediaStore := media.NewLocalStore(cfg.Media.UploadDir, cfg.Media.URLPrefix, cfg.Media.MaxWidth)
	userSvc := services.NewUserService(store, userRepo, mediaStore)
	tagSvc := services.NewTagService(store, tagRepo, photoRepo)
	socialSvc := services.NewSocialService(store, photoRepo, likeRepo, commentRepo, userRepo)
	visibilitySvc := services.NewVisibilityService(store, photoRepo, mediaStore, hub)
	photoSvc := services.NewPhotoService(store, photoRepo, tagSvc, socialSvc, mediaStore)
	commentSvc := services.NewCommentService(store, commentRepo, photoRepo, userRepo)
	moderationSvc := services.NewModerationService(store, photoRepo, userSvc, socialSvc, visibilitySvc, commentSvc)

	if cfg.Admin.Password != "" {
		if err := userSvc.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Email, cfg.Admin.Password); err != nil {
			// non-critical, the server is usable without a bootstrap admin
			global.Logger.Warn().Err(err).Str("username", cfg.Admin.Username).Msg("ensure admin")
		}
	}

	var revoker session.Revoker = session.NewMemoryRevoker()
	checks := map[string]controllers.Pinger{"db": sqlPinger{gdb}}
	if rdb != nil {
		revoker = session.NewRedisRevoker(rdb)
		checks["redis"] = redisPinger{rdb}
	}

	// Controllers
	signer := &jwtutil.Signer{Secret: []byte(cfg.JWT.Secret), Issuer: cfg.JWT.Issuer, ExpMin: cfg.JWT.ExpMin}
	mw := &middleware.Auth{Signer: signer, Users: userSvc, Revoker: revoker}
	ctrls := router.Controllers{
		HTTP:     controllers.NewHTTPController(checks),
		Auth:     controllers.NewAuthController(userSvc, signer, revoker, cfg.Media.MaxBytes),
		Photos:   controllers.NewPhotoController(photoSvc, socialSvc, tagSvc, visibilitySvc, cfg.Media.MaxBytes),
		Comments: controllers.NewCommentController(commentSvc),
		Admin:    controllers.NewAdminController(moderationSvc),
		Socket:   controllers.NewSocketController(hub, cfg.Server.CORSOrigin),
	}

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.PerSecond > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst)
	}

	// Router
	h := router.NewRouter(ctrls, mw, router.Options{
		UploadDir:    cfg.Media.UploadDir,
		UploadPrefix: cfg.Media.URLPrefix,
		CORSOrigin:   cfg.Server.CORSOrigin,
		Limiter:      limiter,
	})
	// Wrap with logging middleware
	h = middleware.Logging(h)

	return &App{
		Cfg:        cfg,
		DB:         gdb,
		Redis:      rdb,
		Router:     h,
		Hub:        hub,
		Signer:     signer,
		Users:      userSvc,
		Photos:     photoSvc,
		Social:     socialSvc,
		Tags:       tagSvc,
		Visibility: visibilitySvc,
		Comments:   commentSvc,
		Moderation: moderationSvc,
	}, nil
}

// Close releases the database and redis connections.
func (a *App) Close() error {
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type sqlPinger struct{ db *gorm.DB }

func (p sqlPinger) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

type redisPinger struct{ rdb *redis.Client }

func (p redisPinger) Ping(ctx context.Context) error { return p.rdb.Ping(ctx).Err() }
