package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medbook/internal/domain"
)

// @Summary Получить настройки бронирования
// @Description Возвращает действующие настройки; при отсутствии строки — значения по умолчанию
// @Tags Настройки бронирования
// @Produce json
// @Param id path int true "ID эксперта"
// @Success 200 {object} domain.BookingPolicy "Настройки бронирования"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Router /experts/{id}/booking-policy [get]
func (h *Handler) getBookingPolicy(c *gin.Context) {
	expertID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	policy, err := h.services.Policy.Get(c.Request.Context(), expertID)
	if err != nil {
		h.logger.Error("ошибка получения настроек бронирования", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	successResponse(c, http.StatusOK, policy)
}

// @Summary Обновить настройки бронирования
// @Description Частично обновляет настройки; значения вне границ корректируются
// @Tags Настройки бронирования
// @Accept json
// @Produce json
// @Param id path int true "ID эксперта"
// @Param input body domain.UpdateBookingPolicyDTO true "Изменяемые поля"
// @Success 200 {object} domain.BookingPolicy "Сохраненные настройки"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /experts/{id}/booking-policy [put]
func (h *Handler) updateBookingPolicy(c *gin.Context) {
	expertID, ok := h.authorizedExpert(c)
	if !ok {
		return
	}

	var req domain.UpdateBookingPolicyDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	policy, err := h.services.Policy.Update(c.Request.Context(), expertID, req)
	if err != nil {
		h.logger.Error("ошибка сохранения настроек бронирования", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	successResponse(c, http.StatusOK, policy)
}
