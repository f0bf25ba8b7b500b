package main

import (
	"net/http"
	"time"

	"github.com/rs/cors"

	"webcheckers/api/routes"
	"webcheckers/archive"
	"webcheckers/gamecenter"
	"webcheckers/internal/config"
	"webcheckers/live"
	"webcheckers/logger"
	"webcheckers/session"
	"webcheckers/web"
)

var store archive.GameArchive

func init() {
	config.LoadConfig()

	if config.Cfg.Redis.Addr != "" {
		redisArchive, err := archive.NewRedisArchive(config.Cfg.Redis.Addr, config.Cfg.Redis.DB)
		if err != nil {
			logger.Default.Fatalf("[webserver] error initializing Redis archive: %v", err)
		}
		store = redisArchive
		logger.Default.Infof("[webserver] replay archive on redis at %s", config.Cfg.Redis.Addr)
	} else {
		store = archive.NewMemoryArchive()
		logger.Default.Info("[webserver] replay archive in memory")
	}
}

func main() {
	defer func() {
		if redisArchive, ok := store.(*archive.RedisArchive); ok {
			redisArchive.Close()
		}
	}()

	views, err := web.NewViews()
	if err != nil {
		logger.Default.Fatalf("[webserver] error loading views: %v", err)
	}

	center := gamecenter.New(store)
	sessions := session.NewStore(
		time.Duration(config.Cfg.Session.TTLMinutes)*time.Minute,
		[]byte(config.Cfg.Session.SigningKey),
	)
	defer sessions.Close()

	feed := live.NewFeed()
	defer feed.Close()

	router := routes.RegisterRoutes(center, sessions, views, feed)

	corsHandler := cors.New(cors.Options{
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}).Handler(router)

	addr := config.Cfg.Server.Addr
	logger.Default.Infof("[webserver] HTTP server starting on %s...", addr)
	logger.Default.Fatal(http.ListenAndServe(addr, corsHandler))
}
