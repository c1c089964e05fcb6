package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/zhouzirui/masterblog/backend/internal/config"
	"github.com/zhouzirui/masterblog/backend/internal/handler"
	"github.com/zhouzirui/masterblog/backend/internal/model/post"
	"github.com/zhouzirui/masterblog/backend/internal/server"
	postservice "github.com/zhouzirui/masterblog/backend/internal/service/post"
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

	var seed []post.Post
	if cfg.Server.SeedPosts {
		seed = post.Seed()
	}
	posts := postservice.NewService(seed)
	log.WithField("posts", len(seed)).Info("post store initialized")

	router := handler.NewRouter(posts, cfg.Server.AllowedOrigins)

	srv := server.New(cfg.Server.Addr, router)
	log.WithField("addr", cfg.Server.Addr).Info("Masterblog API listening")
	if err := server.Run(ctx, srv, cfg.Server.ShutdownTimeout); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
