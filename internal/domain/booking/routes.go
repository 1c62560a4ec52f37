package booking

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the booking endpoints. sessionAuth guards the wizard
// routes; limit throttles the endpoints that create sessions or call out.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, sessionAuth, limit gin.HandlerFunc) {
	scrap := r.Group("/booking/scrap")
	{
		scrap.POST("/materials/toggle", h.ToggleMaterial)
		scrap.POST("/materials/clear", h.ClearMaterials)
		scrap.POST("/materials/continue", h.ContinueMaterials)
		scrap.POST("/weight", h.EnterWeight)
		scrap.POST("/weight/continue", h.ContinueWeight)
		scrap.POST("/weight/back", h.BackFromWeight)
		scrap.POST("/sessions", limit, h.StartSession(ModeScrap))
	}
	r.POST("/booking/waste/sessions", limit, h.StartSession(ModeWaste))

	session := r.Group("/booking/session", sessionAuth)
	{
		session.GET("", h.GetSession)
		session.DELETE("", h.Abandon)
		session.PATCH("/draft", h.UpdateDraft)
		session.POST("/next", h.Next)
		session.POST("/prev", h.Prev)
		session.POST("/location/pin", limit, h.SetPin)
		session.POST("/location/search", limit, h.SearchLocation)
		session.POST("/submit", limit, h.Submit)
	}

	r.POST("/booking/receipt", h.Receipt)
}
