package deduction

import (
	"github.com/gin-gonic/gin"

	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	deductions := r.Group("/deductions")
	deductions.Use(middleware.AuthMiddleware())
	{
		deductions.GET("", handler.GetAllByEmployee)
		deductions.POST("", middleware.RoleMiddleware("ADMIN", "SUPER_ADMIN"), handler.Create)
		deductions.DELETE("/:id", middleware.RoleMiddleware("ADMIN", "SUPER_ADMIN"), handler.Deactivate)
	}
}
