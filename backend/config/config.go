package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

type Server struct {
	Host       string
	Port       int
	CORSOrigin string
}

type DB struct {
	Driver string // sqlite | mysql
	Path   string // sqlite file, ":memory:" allowed
	Host   string
	Port   int
	User   string
	Pass   string
	Name   string
}

type Media struct {
	UploadDir string
	URLPrefix string
	MaxWidth  uint
	MaxBytes  int64
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type RateLimit struct {
	PerSecond float64
	Burst     int
}

type Admin struct {
	Username string
	Email    string
	Password string
}

type Config struct {
	Server Server
	DB     DB
	JWT    struct {
		Secret string
		Issuer string
		ExpMin int
	}
	Media     Media
	Redis     Redis
	RateLimit RateLimit
	Admin     Admin
	LogLevel  string
	SeedDemo  bool
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("PUPSHARE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.cors_origin", "http://localhost:5173")
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.path", "data/pupshare.db")
	v.SetDefault("db.host", "127.0.0.1")
	v.SetDefault("db.port", 3306)
	v.SetDefault("db.user", "root")
	v.SetDefault("db.pass", "")
	v.SetDefault("db.name", "pupshare")
	v.SetDefault("jwt.issuer", "pupshare")
	v.SetDefault("jwt.exp_min", 7*24*60)
	v.SetDefault("media.upload_dir", "public/uploads")
	v.SetDefault("media.url_prefix", "/uploads/")
	v.SetDefault("media.max_width", 1200)
	v.SetDefault("media.max_bytes", 10<<20)
	v.SetDefault("redis.db", 0)
	v.SetDefault("rate_limit.per_second", 5)
	v.SetDefault("rate_limit.burst", 10)
	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.email", "admin@pupshare.local")
	v.SetDefault("log_level", "info")
	v.SetDefault("seed_demo", true)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := &Config{
		Server: Server{
			Host:       v.GetString("server.host"),
			Port:       v.GetInt("server.port"),
			CORSOrigin: v.GetString("server.cors_origin"),
		},
		DB: DB{
			Driver: strings.ToLower(v.GetString("db.driver")),
			Path:   v.GetString("db.path"),
			Host:   v.GetString("db.host"),
			Port:   v.GetInt("db.port"),
			User:   v.GetString("db.user"),
			Pass:   v.GetString("db.pass"),
			Name:   v.GetString("db.name"),
		},
		Media: Media{
			UploadDir: v.GetString("media.upload_dir"),
			URLPrefix: v.GetString("media.url_prefix"),
			MaxWidth:  v.GetUint("media.max_width"),
			MaxBytes:  v.GetInt64("media.max_bytes"),
		},
		Redis: Redis{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		RateLimit: RateLimit{
			PerSecond: v.GetFloat64("rate_limit.per_second"),
			Burst:     v.GetInt("rate_limit.burst"),
		},
		Admin: Admin{
			Username: v.GetString("admin.username"),
			Email:    v.GetString("admin.email"),
			Password: v.GetString("admin.password"),
		},
		LogLevel: v.GetString("log_level"),
		SeedDemo: v.GetBool("seed_demo"),
	}
	if cfg.DB.Driver != "sqlite" && cfg.DB.Driver != "mysql" {
		return nil, fmt.Errorf("unsupported db driver %q", cfg.DB.Driver)
	}
	if !strings.HasSuffix(cfg.Media.URLPrefix, "/") {
		cfg.Media.URLPrefix += "/"
	}
	cfg.JWT.Secret = v.GetString("jwt.secret")
	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = "dev-secret"
	}
	cfg.JWT.Issuer = v.GetString("jwt.issuer")
	if cfg.JWT.Issuer == "" {
		cfg.JWT.Issuer = "pupshare"
	}
	cfg.JWT.ExpMin = v.GetInt("jwt.exp_min")
	if cfg.JWT.ExpMin <= 0 {
		cfg.JWT.ExpMin = 7 * 24 * 60
	}
	if cfg.RateLimit.Burst <= 0 {
		cfg.RateLimit.Burst = 1
	}
	return cfg, nil
}
