package server

import (
	"os"
	"strings"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const authAttemptsPerMinute = 10

func (s *Server) setupRouter() *gin.Engine {
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "test" {
		r := gin.New()
		s.defineRoutes(r)
		return r
	}

	r := gin.New()
	r.Use(requestLogger())
	r.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if origins := s.Config.AccessControlAllowOrigin; origins != "" && origins != "*" {
		corsConfig.AllowOrigins = strings.Split(origins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}
	r.Use(cors.New(corsConfig))
	r.MaxMultipartMemory = 32 << 20
	s.defineRoutes(r)

	return r
}

func (s *Server) defineRoutes(router *gin.Engine) {
	store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: authAttemptsPerMinute,
	})
	limitRate := limitAuthAttempts(store)
	limitSubmissions := newSubmissionLimiter(s.Config.ReportsPerHour).middleware()

	if s.Config.StorageDriver != "s3" && s.Config.MediaDir != "" {
		router.Static(s.Config.MediaBaseURL, s.Config.MediaDir)
	}

	apirouter := router.Group("/api/v1")
	apirouter.POST("/auth/signup", limitRate, s.handleSignup())
	apirouter.POST("/auth/login", limitRate, s.handleLogin())
	apirouter.GET("/violation-types", s.handleGetViolationTypes())
	apirouter.GET("/rewards", s.handleGetAllRewards())

	authorized := apirouter.Group("/")
	authorized.Use(s.Authorize())
	authorized.GET("/logout", s.handleLogout())
	authorized.GET("/me", s.handleShowProfile())
	authorized.PUT("/me/device-token", s.handleUpdateDeviceToken())
	authorized.GET("/me/reports", s.handleGetMyReports())
	authorized.GET("/me/stats", s.handleGetMyStats())
	authorized.GET("/me/points", s.handleGetPointHistory())
	authorized.GET("/me/notifications", s.handleGetNotifications())
	authorized.POST("/reports", limitSubmissions, s.handleSubmitReport())
	authorized.GET("/reports/:reportID", s.handleGetReport())
	authorized.POST("/plates/detect", s.handleDetectPlate())
	authorized.POST("/rewards/:rewardID/redeem", s.handleRedeemReward())
	authorized.GET("/ws/reports", s.handleReportFeed())

	admin := authorized.Group("/admin")
	admin.Use(s.RequireAdmin())
	admin.GET("/reports", s.handleGetReviewQueue())
	admin.PUT("/reports/:reportID/status", s.handleUpdateReportStatus())
	admin.GET("/stats", s.handleGetAdminStats())
	admin.POST("/violation-types", s.handleCreateViolationType())
	admin.GET("/users", s.handleGetUsers())
	admin.POST("/officials", s.handleCreateOfficial())
}
