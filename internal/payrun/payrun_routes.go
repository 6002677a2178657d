package payrun

import (
	"github.com/gin-gonic/gin"

	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	payruns := r.Group("/payruns")
	payruns.Use(middleware.AuthMiddleware())
	{
		payruns.GET("", handler.GetAll)
		payruns.GET("/:id", handler.GetById)
		payruns.POST("", middleware.RoleMiddleware("ADMIN", "SUPER_ADMIN"), handler.Create)
		payruns.PUT("/:id", middleware.RoleMiddleware("ADMIN", "SUPER_ADMIN"), handler.Update)
		payruns.PATCH("/:id/approve", middleware.RoleMiddleware("ADMIN", "SUPER_ADMIN"), handler.Approve)
		payruns.PATCH("/:id/close", middleware.RoleMiddleware("ADMIN", "SUPER_ADMIN"), handler.Close)
		payruns.POST("/:id/archive", middleware.RoleMiddleware("ADMIN", "SUPER_ADMIN"), handler.Archive)
		payruns.DELETE("/:id", middleware.RoleMiddleware("ADMIN", "SUPER_ADMIN"), handler.Delete)
	}
}
