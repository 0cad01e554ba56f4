package worktime

import (
	"go-attendance/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, auth gin.HandlerFunc, rbacService middleware.RBACService) {
	cfg := r.Group("/work-time-config")
	cfg.Use(auth)
	{
		cfg.GET("", middleware.RBACAuthorize(rbacService, "worktime", "read"), h.Get)
		cfg.PUT("", middleware.RBACAuthorize(rbacService, "worktime", "update"), h.Update)
	}
}
