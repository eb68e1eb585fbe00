package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/work-spot/api-go/controllers"
	"github.com/work-spot/api-go/middleware"
	"github.com/work-spot/api-go/services"
	"github.com/work-spot/api-go/storage"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, blobs storage.BlobStorage) {
	gateway := services.NewDatabaseNotificationGateway(db)
	approval := services.NewApprovalService(db, gateway)

	// Initialize controllers
	authController := controllers.NewAuthController(db)
	officeController := controllers.NewOfficeController(db, approval, blobs)
	imageController := controllers.NewImageController(db, blobs)
	reservationController := controllers.NewReservationController(db)
	tagController := controllers.NewTagController(db)
	notificationController := controllers.NewNotificationController(db)

	// Public routes
	public := r.Group("/api")
	{
		public.POST("/register", authController.Register)
		public.POST("/login", authController.Login)
		public.POST("/auth/google", authController.GoogleLogin)
		public.GET("/tags", tagController.ListTags)
	}

	// Listing and lookup are public but honour a token when one is sent:
	// owners see their own hidden and pending offices.
	browse := r.Group("/api")
	browse.Use(middleware.OptionalAuthMiddleware())
	{
		browse.GET("/offices", officeController.ListOffices)
		browse.GET("/offices/:id", officeController.GetOffice)
	}

	// Protected routes
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/logout", authController.Logout)
		protected.POST("/refresh-token", authController.RefreshToken)
		protected.GET("/profile", authController.GetProfile)
		protected.GET("/notifications", notificationController.ListNotifications)

		SetupOfficeRoutes(protected, officeController)
		SetupImageRoutes(protected, imageController)
		SetupReservationRoutes(protected, reservationController)
	}
}
