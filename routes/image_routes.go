package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/work-spot/api-go/controllers"
)

func SetupImageRoutes(protected *gin.RouterGroup, imageController *controllers.ImageController) {
	images := protected.Group("/offices/:id/images")
	{
		images.POST("/presign", imageController.PresignUpload)
		images.POST("", imageController.AttachImage)
		images.DELETE("/:imageId", imageController.DeleteImage)
	}
}
