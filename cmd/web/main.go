package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/zhouzirui/masterblog/backend/internal/config"
	"github.com/zhouzirui/masterblog/backend/internal/handler/web"
	"github.com/zhouzirui/masterblog/backend/internal/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.WithError(err).Debug("no .env file, using system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	cfg.Log.Apply()

	srv := server.New(cfg.Web.Addr, web.NewRouter(cfg.Web.APIBaseURL))
	log.WithFields(log.Fields{"addr": cfg.Web.Addr, "api": cfg.Web.APIBaseURL}).Info("Masterblog web listening")
	if err := server.Run(ctx, srv, cfg.Server.ShutdownTimeout); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
