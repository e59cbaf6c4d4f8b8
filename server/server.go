package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ecosnap/ecosnap/config"
	"github.com/ecosnap/ecosnap/db"
	"github.com/ecosnap/ecosnap/mailingservices"
	"github.com/ecosnap/ecosnap/services"
	"github.com/ecosnap/ecosnap/services/weather"
)

type Server struct {
	Config *config.Config
	Mail   *mailingservices.Mailgun

	UserRepository           db.UserRepository
	HotspotRepository        db.HotspotRepository
	GarbageRequestRepository db.GarbageRequestRepository
	RewardRepository         db.RewardRepository

	AuthService           services.AuthService
	HotspotService        services.HotspotService
	GarbageRequestService services.GarbageRequestService
	RewardService         services.RewardService
	MediaService          services.MediaService
	WeatherClient         *weather.Client

	DB db.GormDB
}

// Start runs the HTTP server until SIGINT/SIGTERM, then drains in-flight
// requests for up to 15 seconds.
func (s *Server) Start() {
	port := s.Config.Port
	if port == 0 {
		port = 8080
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.setupRouter(),
	}

	go func() {
		log.Printf("server started on port %d", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("server exited")
}
