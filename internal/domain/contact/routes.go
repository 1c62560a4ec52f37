package contact

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes registers the contact form route.
func RegisterPublicRoutes(r *gin.RouterGroup, handler *Handler, limit gin.HandlerFunc) {
	r.POST("/contact", limit, handler.Submit)
}
