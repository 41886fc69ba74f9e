package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"pupshare/backend/config"
	"pupshare/backend/global"
	"pupshare/backend/initialize"
	"pupshare/backend/server"
	"syscall"
	"time"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "Path to the YAML config file")
		watch      = flag.Bool("watch", true, "Reload log level when the config file changes")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := initialize.Build(ctx, *configPath)
	if err != nil {
		global.Logger.Fatal().Err(err).Msg("build app")
	}
	defer app.Close()

	if *watch {
		err := config.Watch(ctx, *configPath, func(cfg *config.Config) {
			initialize.SetLogLevel(cfg.LogLevel)
			global.Logger.Info().Str("level", cfg.LogLevel).Msg("config reloaded")
		}, func(err error) {
			global.Logger.Warn().Err(err).Msg("config watch")
		})
		if err != nil {
			global.Logger.Warn().Err(err).Msg("config watch disabled")
		}
	}

	srv, err := server.StartHTTPServer(app.Cfg.Server.Host, app.Cfg.Server.Port, app.Router)
	if err != nil {
		global.Logger.Fatal().Err(err).Msg("start http server")
	}

	<-ctx.Done()
	global.Logger.Info().Msg("shutting down")
	if err := server.Shutdown(srv, 10*time.Second); err != nil {
		global.Logger.Error().Err(err).Msg("http shutdown")
	}
}
