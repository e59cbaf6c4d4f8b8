package server

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (s *Server) setupRouter() *gin.Engine {
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "test" {
		r := gin.New()
		s.defineRoutes(r)
		return r
	}

	r := gin.New()
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
			param.ClientIP,
			param.TimeStamp.Format(time.RFC1123),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.Latency,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.MaxMultipartMemory = 32 << 20
	s.defineRoutes(r)

	return r
}

func (s *Server) defineRoutes(router *gin.Engine) {
	submissionLimiter := limitSubmissions(newSubmissionStore())

	apirouter := router.Group("/api/v1")
	apirouter.POST("/auth/signup", s.handleSignup())
	apirouter.POST("/auth/login", s.handleLogin())
	apirouter.POST("/auth/government/login", s.handleGovernmentLogin())
	apirouter.GET("/weather", s.handleGetWeather())

	authorized := apirouter.Group("/")
	authorized.Use(s.Authorize())
	authorized.POST("/auth/logout", s.handleLogout())
	authorized.GET("/me", s.handleGetMe())
	authorized.GET("/me/stats", s.handleGetUserStats())

	authorized.POST("/hotspots", submissionLimiter, s.handleCreateHotspot())
	authorized.GET("/hotspots", s.handleGetHotspots())
	authorized.GET("/hotspots/:id", s.handleGetHotspot())

	authorized.POST("/garbage-requests", submissionLimiter, s.handleCreateGarbageRequest())
	authorized.GET("/garbage-requests", s.handleGetGarbageRequests())

	authorized.GET("/rewards", s.handleGetRewards())
	authorized.POST("/rewards/redeem", s.handleRedeemReward())
	authorized.GET("/rewards/redemptions", s.handleGetRedemptions())

	government := authorized.Group("/")
	government.Use(s.GovernmentOnly())
	government.POST("/hotspots/:id/verify", s.handleVerifyHotspot())
	government.POST("/hotspots/:id/clean", s.handleMarkHotspotCleaned())
	government.POST("/admin/rewards", s.handleCreateReward())
	government.POST("/admin/government", s.handleCreateGovernmentBody())
	government.GET("/admin/government", s.handleListGovernmentBodies())
	government.DELETE("/admin/government/:id", s.handleDeleteGovernmentBody())
	government.POST("/admin/users/:id/points", s.handleAdjustUserPoints())
}
