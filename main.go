package main

import (
	"log"
	"time"

	"github.com/ecosnap/ecosnap/config"
	"github.com/ecosnap/ecosnap/db"
	"github.com/ecosnap/ecosnap/mailingservices"
	"github.com/ecosnap/ecosnap/server"
	"github.com/ecosnap/ecosnap/services"
	"github.com/ecosnap/ecosnap/services/detection"
	"github.com/ecosnap/ecosnap/services/weather"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	mailgunClient := &mailingservices.Mailgun{}
	mailgunClient.Init()

	gormDB := db.GetDB(conf)
	userRepo := db.NewUserRepo(gormDB)
	hotspotRepo := db.NewHotspotRepo(gormDB)
	garbageRequestRepo := db.NewGarbageRequestRepo(gormDB)
	rewardRepo := db.NewRewardRepo(gormDB)

	mediaService, err := services.NewMediaService(conf)
	if err != nil {
		log.Fatalf("error initializing media service: %v", err)
	}
	detectionGateway := detection.NewHTTPGateway(conf.DetectionServiceURL, time.Duration(conf.DetectionTimeoutSecs)*time.Second)
	weatherClient := weather.NewClient(conf.WeatherBaseURL, conf.AirQualityBaseURL)

	authService := services.NewAuthService(userRepo, conf)
	hotspotService := services.NewHotspotService(hotspotRepo, garbageRequestRepo, detectionGateway, mediaService)
	garbageRequestService := services.NewGarbageRequestService(garbageRequestRepo)
	rewardService := services.NewRewardService(rewardRepo, userRepo, mailgunClient)

	s := &server.Server{
		Mail:                     mailgunClient,
		Config:                   conf,
		UserRepository:           userRepo,
		HotspotRepository:        hotspotRepo,
		GarbageRequestRepository: garbageRequestRepo,
		RewardRepository:         rewardRepo,
		AuthService:              authService,
		HotspotService:           hotspotService,
		GarbageRequestService:    garbageRequestService,
		RewardService:            rewardService,
		MediaService:             mediaService,
		WeatherClient:            weatherClient,
		DB:                       db.GormDB{},
	}

	s.Start()
}
