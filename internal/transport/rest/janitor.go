package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @Summary Удалить истекшие резервации
// @Description Чистка хранилища; на корректность выдачи слотов не влияет
// @Tags Служебные
// @Produce json
// @Success 200 {object} map[string]interface{} "Количество удаленных строк"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Router /internal/sweep/reservations [post]
func (h *Handler) sweepReservations(c *gin.Context) {
	deleted, err := h.services.Janitor.SweepReservations(c.Request.Context())
	if err != nil {
		h.logger.Error("ошибка чистки резерваций", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	successResponse(c, http.StatusOK, gin.H{"deleted": deleted})
}

// @Summary Удалить прошедшие заблокированные даты
// @Description Удаляет даты, полностью прошедшие в их собственной таймзоне
// @Tags Служебные
// @Produce json
// @Success 200 {object} map[string]interface{} "Количество удаленных строк"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Router /internal/sweep/blocked-dates [post]
func (h *Handler) sweepBlockedDates(c *gin.Context) {
	deleted, err := h.services.Janitor.SweepBlockedDates(c.Request.Context())
	if err != nil {
		h.logger.Error("ошибка чистки заблокированных дат", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	successResponse(c, http.StatusOK, gin.H{"deleted": deleted})
}
