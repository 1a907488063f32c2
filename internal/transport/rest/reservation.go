package rest

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"medbook/internal/domain"
	"medbook/pkg/validator"
)

// @Summary Зарезервировать слот
// @Description Создает временный холд на точное время слота на период оформления брони
// @Tags Резервации
// @Accept json
// @Produce json
// @Param input body domain.CreateReservationDTO true "Данные резервации"
// @Success 201 {object} domain.SlotReservation "Созданная резервация"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 409 {object} errorResponseBody "Слот уже занят"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Router /reservations [post]
func (h *Handler) createReservation(c *gin.Context) {
	var req domain.CreateReservationDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if !validator.ValidateEmail(req.GuestEmail) {
		badRequestResponse(c, "некорректный email гостя")
		return
	}

	if !req.StartTime.After(time.Now()) {
		badRequestResponse(c, "время слота уже прошло")
		return
	}

	reservation, err := h.services.Reservation.Reserve(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrSlotConflict) {
			conflictResponse(c, "слот уже занят, выберите другое время")
			return
		}
		h.logger.Error("ошибка создания резервации", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	createdResponse(c, reservation)
}

// @Summary Продлить резервацию
// @Description Продлевает срок жизни активной резервации на полный TTL
// @Tags Резервации
// @Produce json
// @Param id path string true "ID резервации (UUID)"
// @Success 200 {object} domain.SlotReservation "Продленная резервация"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 404 {object} errorResponseBody "Резервация не найдена или истекла"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Router /reservations/{id}/extend [post]
func (h *Handler) extendReservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequestResponse(c, "неверный формат ID резервации")
		return
	}

	reservation, err := h.services.Reservation.Extend(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrReservationNotFound) {
			notFoundResponse(c, "резервация не найдена или уже истекла")
			return
		}
		h.logger.Error("ошибка продления резервации", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	successResponse(c, http.StatusOK, reservation)
}

// @Summary Отменить резервацию
// @Description Снимает холд со слота; повторный вызов безопасен
// @Tags Резервации
// @Produce json
// @Param id path string true "ID резервации (UUID)"
// @Success 204 "Резервация снята"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Router /reservations/{id} [delete]
func (h *Handler) releaseReservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequestResponse(c, "неверный формат ID резервации")
		return
	}

	if err := h.services.Reservation.Release(c.Request.Context(), id); err != nil {
		h.logger.Error("ошибка удаления резервации", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	noContentResponse(c)
}
