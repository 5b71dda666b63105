package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Входные сигналы
	reports := api.Group("/reports")
	{
		reports.POST("/photo", h.triagePhotoReport)
	}
	api.POST("/sos", h.triageSOS)

	// Маршруты жизненного цикла инцидентов
	incidents := api.Group("/incidents")
	{
		incidents.GET("", h.listIncidents)
		incidents.GET("/:id", h.getIncident)
		incidents.POST("/:id/dispatch", h.confirmDispatch)
		incidents.POST("/:id/resolve", h.resolveIncident)
		incidents.POST("/:id/reassign", h.reassignIncident)
	}

	// Актуальный снимок реестра команд
	api.GET("/teams", h.listTeams)

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
