package global

import (
	"pupshare/backend/config"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var (
	Config config.Config
	Logger zerolog.Logger = zerolog.Nop()
	Mdb    *gorm.DB
	// Rdb is nil when no redis address is configured.
	Rdb *redis.Client
)
