package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Калькуляторный шлюз: проверка ввода и смена кода доступа
	gate := api.Group("/gate")
	{
		gate.POST("/check", h.gateCheck)
		gate.PUT("/code", h.changeAccessCode)
	}

	// Управление доверенными контактами
	contacts := api.Group("/contacts")
	{
		contacts.GET("", h.listContacts)
		contacts.POST("", h.createContact)
		contacts.PUT("/:id", h.updateContact)
		contacts.DELETE("/:id", h.deleteContact)
		contacts.GET("/predefined", h.listPredefined)
		contacts.POST("/predefined/toggle", h.togglePredefined)
		contacts.POST("/publish", h.publishContacts)
	}

	// Верификация номера по одноразовому коду
	verification := api.Group("/verification")
	{
		verification.POST("/request", h.requestVerification)
		verification.POST("/submit", h.submitVerification)
		verification.POST("/cancel", h.cancelVerification)
	}

	// Экстренный сценарий: удержание, статус, выход
	panicGroup := api.Group("/panic")
	{
		panicGroup.POST("/press", h.panicPress)
		panicGroup.POST("/release", h.panicRelease)
		panicGroup.GET("/status", h.panicStatus)
		panicGroup.POST("/exit", h.panicExit)
	}

	// Непрерывное отслеживание координат
	tracking := api.Group("/tracking")
	{
		tracking.POST("/start", h.startTracking)
		tracking.POST("/stop", h.stopTracking)
	}

	// Геолокация
	location := api.Group("/location")
	{
		location.POST("/permission", h.requestPermission)
		location.GET("/current", h.currentLocation)
	}

	// Журнал тревог
	api.GET("/alerts", h.listAlerts)
}

// RegisterSystemRoutes регистрирует маршруты, открытые без аутентификации
func (h *Handler) RegisterSystemRoutes(api *gin.RouterGroup) {
	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
