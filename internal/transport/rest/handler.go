package rest

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medbook/config"
	"medbook/internal/service"
)

type Handler struct {
	services *service.Services
	logger   *zap.Logger
	config   *config.Config
}

func NewHandler(services *service.Services, logger *zap.Logger, config *config.Config) *Handler {
	return &Handler{
		services: services,
		logger:   logger,
		config:   config,
	}
}

func (h *Handler) InitRoutes(router *gin.Engine) {
	router.Use(h.loggerMiddleware())

	router.Use(h.errorMiddleware())

	router.Use(h.corsMiddleware())

	api := router.Group("/api/v1")
	{
		api.GET("/availability", h.getAvailability)

		reservations := api.Group("/reservations")
		{
			reservations.POST("/", h.createReservation)
			reservations.POST("/:id/extend", h.extendReservation)
			reservations.DELETE("/:id", h.releaseReservation)
		}

		experts := api.Group("/experts")
		{
			experts.GET("/:id/schedule", h.getSchedule)
			experts.GET("/:id/booking-policy", h.getBookingPolicy)
			experts.GET("/:id/blocked-dates", h.listBlockedDates)
			experts.GET("/:id/event-types", h.listEventTypes)

			auth := experts.Group("/", h.authMiddleware())
			{
				auth.PUT("/:id/schedule", h.upsertSchedule)
				auth.PUT("/:id/booking-policy", h.updateBookingPolicy)
				auth.POST("/:id/blocked-dates", h.addBlockedDate)
				auth.POST("/:id/event-types", h.createEventType)
			}
		}

		auth := api.Group("/", h.authMiddleware())
		{
			auth.DELETE("/blocked-dates/:id", h.deleteBlockedDate)
			auth.PUT("/event-types/:id", h.updateEventType)
			auth.DELETE("/event-types/:id", h.deleteEventType)
		}
	}

	// Триггеры для внешнего cron; сетевой доступ ограничивается на уровне
	// инфраструктуры, поэтому авторизации здесь нет.
	internal := router.Group("/internal")
	{
		internal.POST("/sweep/reservations", h.sweepReservations)
		internal.POST("/sweep/blocked-dates", h.sweepBlockedDates)
	}
}
