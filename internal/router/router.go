package router

import (
	"log"

	"basemap/config"
	"basemap/internal/domain"
	"basemap/internal/handler"
	"basemap/internal/identity"
	"basemap/internal/middleware"
	"basemap/internal/repository"
	"basemap/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, idClient *identity.Client) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(cfg.API.RateLimit, cfg.API.RateLimitWindow)))
	r.Use(middleware.APIKeyRequired(cfg.API.Key))

	// Repositories
	locationRepo := repository.NewLocationRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	savedRepo := repository.NewSavedLocationRepository(db)
	logbookRepo := repository.NewLogbookRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Services
	fcmSvc := service.NewFCMService(cfg.Firebase.ServiceAccountPath)
	if fcmSvc != nil {
		log.Printf("[FCM] Push notifications enabled")
	} else if cfg.Firebase.ServiceAccountPath != "" {
		log.Printf("[FCM] Push notifications disabled: failed to init (check service account file)")
	} else {
		log.Printf("[FCM] Push notifications disabled: set FIREBASE_SERVICE_ACCOUNT_PATH to enable")
	}
	notifSvc := service.NewNotificationService(notificationRepo, profileRepo, fcmSvc)
	profileSvc := service.NewProfileService(profileRepo)
	locationSvc := service.NewLocationService(locationRepo)
	submissionSvc := service.NewSubmissionService(db, submissionRepo, locationRepo, notifSvc)
	savedSvc := service.NewSavedLocationService(savedRepo, locationRepo)
	logbookSvc := service.NewLogbookService(logbookRepo)
	subscriptionSvc := service.NewSubscriptionService(profileRepo)
	accountSvc := service.NewAccountService(db, profileRepo, submissionRepo, savedRepo, logbookRepo, notificationRepo, idClient)

	// Handlers
	healthHandler := handler.NewHealthHandler(db)
	locationHandler := handler.NewLocationHandler(locationSvc)
	submissionHandler := handler.NewSubmissionHandler(submissionSvc)
	adminHandler := handler.NewAdminHandler(submissionSvc, locationSvc, profileRepo)
	savedHandler := handler.NewSavedLocationHandler(savedSvc)
	logbookHandler := handler.NewLogbookHandler(logbookSvc)
	profileHandler := handler.NewProfileHandler(profileSvc)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionSvc, cfg.API.WebhookSecret)
	accountHandler := handler.NewAccountHandler(accountSvc)
	notificationHandler := handler.NewNotificationHandler(notifSvc)

	authMw := middleware.AuthRequired(idClient, profileSvc)
	adminMw := middleware.RequireRole(domain.RoleAdmin)
	superuserMw := middleware.RequireRole(domain.RoleSuperuser)

	r.GET("/health", healthHandler.Check)

	api := r.Group("/api/v1")
	{
		locations := api.Group("/locations")
		locations.Use(authMw)
		{
			locations.GET("", locationHandler.List)
			locations.GET("/:id", locationHandler.Get)
			locations.POST("/:id/save", savedHandler.Save)
			locations.DELETE("/:id/save", savedHandler.Unsave)
		}
		api.GET("/saved-locations", authMw, savedHandler.List)

		submissions := api.Group("/submissions")
		submissions.Use(authMw)
		{
			submissions.GET("/limits", submissionHandler.Limits)
			submissions.POST("", submissionHandler.Create)
			submissions.GET("", submissionHandler.List)
			submissions.GET("/:id", submissionHandler.Get)
			submissions.PATCH("/:id", submissionHandler.Update)
			submissions.DELETE("/:id", submissionHandler.Delete)
		}

		logbook := api.Group("/logbook")
		logbook.Use(authMw)
		{
			logbook.POST("", logbookHandler.Create)
			logbook.GET("", logbookHandler.List)
			logbook.PATCH("/:id", logbookHandler.Update)
			logbook.DELETE("/:id", logbookHandler.Delete)
		}

		profile := api.Group("/profile")
		profile.Use(authMw)
		{
			profile.GET("", profileHandler.Get)
			profile.PATCH("", profileHandler.Update)
			profile.POST("/fcm-token", profileHandler.RegisterFCMToken)
		}

		notifications := api.Group("/notifications")
		notifications.Use(authMw)
		{
			notifications.GET("", notificationHandler.List)
			notifications.PATCH("/:id/read", notificationHandler.MarkRead)
		}

		subscriptions := api.Group("/subscriptions")
		{
			subscriptions.POST("/webhook", subscriptionHandler.Webhook)
			subscriptions.POST("/restore", authMw, subscriptionHandler.Restore)
		}

		api.DELETE("/account", authMw, accountHandler.Delete)

		admin := api.Group("/admin")
		admin.Use(authMw, adminMw)
		{
			admin.GET("/submissions", adminHandler.ListSubmissions)
			admin.PATCH("/submissions/:id", adminHandler.ReviewSubmission)
			admin.POST("/locations", adminHandler.CreateLocation)
			admin.PATCH("/locations/:id", adminHandler.UpdateLocation)
			admin.DELETE("/locations/:id", superuserMw, adminHandler.DeleteLocation)
			admin.POST("/roles", superuserMw, adminHandler.SetRole)
		}
	}

	return r
}
