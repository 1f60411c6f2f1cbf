package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yassine/stagelink/internal/app/controllers"
	"github.com/yassine/stagelink/internal/app/models"
	"github.com/yassine/stagelink/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	offerController *controllers.OfferController,
	applicationController *controllers.ApplicationController,
	notificationController *controllers.NotificationController,
	profileController *controllers.ProfileController,
	adminController *controllers.AdminController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register/candidate", authController.RegisterCandidate)
		auth.POST("/register/company", authController.RegisterCompany)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
		auth.POST("/logout", authController.Logout)
	}

	// --- Offer routes ---
	// Reads are public with optional credentials: visibility depends on who asks
	offers := v1.Group("/offers")
	offers.Use(authMiddleware.OptionalAuth())
	{
		offers.GET("", offerController.GetOffers)
		offers.GET("/:id", offerController.GetOfferByID)
	}

	offersProtected := v1.Group("/offers")
	offersProtected.Use(authMiddleware.JWTAuth())
	{
		offersProtected.GET("/:id/applications", applicationController.GetOfferApplications)

		offersCompany := offersProtected.Group("")
		offersCompany.Use(authMiddleware.RoleRequired(models.RoleCompany))
		{
			offersCompany.GET("/mine", offerController.GetMyOffers)
		}

		offersOwner := offersProtected.Group("")
		offersOwner.Use(authMiddleware.RoleRequired(models.RoleCompany, models.RoleAdmin))
		{
			offersOwner.POST("", offerController.CreateOffer)
			offersOwner.PUT("/:id", offerController.UpdateOffer)
			offersOwner.DELETE("/:id", offerController.DeleteOffer)
		}
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Application routes
		applications := authenticated.Group("/applications")
		{
			applications.GET("", applicationController.GetApplications)
			applications.GET("/mine", applicationController.GetMyApplications)
			applications.GET("/:id", applicationController.GetApplicationByID)
			applications.PUT("/:id", applicationController.UpdateApplication)
			applications.DELETE("/:id", applicationController.DeleteApplication)

			applicationsDecision := applications.Group("")
			applicationsDecision.Use(authMiddleware.RoleRequired(models.RoleCompany, models.RoleAdmin))
			{
				applicationsDecision.POST("/:id/accept", applicationController.AcceptApplication)
				applicationsDecision.POST("/:id/reject", applicationController.RejectApplication)
			}

			applicationsCandidate := applications.Group("")
			applicationsCandidate.Use(authMiddleware.RoleRequired(models.RoleCandidate))
			{
				applicationsCandidate.POST("", applicationController.CreateApplication)
			}
		}

		// Notification routes
		notifications := authenticated.Group("/notifications")
		{
			notifications.GET("", notificationController.GetNotifications)
			notifications.GET("/unread-count", notificationController.GetUnreadCount)
			notifications.POST("/read-all", notificationController.MarkAllRead)
			notifications.POST("/:id/read", notificationController.MarkRead)
		}

		// Profile routes
		profiles := authenticated.Group("/profiles")
		{
			profilesCandidate := profiles.Group("/candidate")
			profilesCandidate.Use(authMiddleware.RoleRequired(models.RoleCandidate))
			{
				profilesCandidate.GET("", profileController.GetCandidateProfile)
				profilesCandidate.PUT("", profileController.UpdateCandidateProfile)
				profilesCandidate.POST("/resume", profileController.UploadResume)
			}

			profilesCompany := profiles.Group("/company")
			profilesCompany.Use(authMiddleware.RoleRequired(models.RoleCompany))
			{
				profilesCompany.GET("", profileController.GetCompanyProfile)
				profilesCompany.PUT("", profileController.UpdateCompanyProfile)
			}
		}

		// Admin routes
		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			admin.GET("/users", adminController.GetUsers)
			admin.POST("/users/:id/deactivate", adminController.DeactivateUser)
			admin.POST("/users/:id/activate", adminController.ActivateUser)
		}
	}
}
