package worklocation

import (
	"go-attendance/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, auth gin.HandlerFunc, rbacService middleware.RBACService) {
	locations := r.Group("/work-locations")
	locations.Use(auth)
	{
		locations.GET("", middleware.RBACAuthorize(rbacService, "worklocation", "read"), h.List)
		locations.POST("", middleware.RBACAuthorize(rbacService, "worklocation", "create"), h.Create)
		locations.PUT("/:id", middleware.RBACAuthorize(rbacService, "worklocation", "update"), h.Update)
		locations.DELETE("/:id", middleware.RBACAuthorize(rbacService, "worklocation", "delete"), h.Delete)
	}
}
