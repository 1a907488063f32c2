package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medbook/internal/domain"
	"medbook/pkg/validator"
)

// @Summary Получить расписание эксперта
// @Description Возвращает еженедельное расписание с интервалами доступности
// @Tags Расписание
// @Produce json
// @Param id path int true "ID эксперта"
// @Success 200 {object} domain.Schedule "Расписание"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 404 {object} errorResponseBody "Расписание не найдено"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Router /experts/{id}/schedule [get]
func (h *Handler) getSchedule(c *gin.Context) {
	expertID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	schedule, err := h.services.Schedule.GetByExpertID(c.Request.Context(), expertID)
	if err != nil {
		h.logger.Error("ошибка получения расписания", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	if schedule == nil {
		notFoundResponse(c, "расписание не найдено")
		return
	}

	successResponse(c, http.StatusOK, schedule)
}

// @Summary Сохранить расписание эксперта
// @Description Полностью заменяет еженедельные интервалы доступности
// @Tags Расписание
// @Accept json
// @Produce json
// @Param id path int true "ID эксперта"
// @Param input body domain.UpsertScheduleDTO true "Таймзона и интервалы доступности"
// @Success 200 {object} domain.Schedule "Сохраненное расписание"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /experts/{id}/schedule [put]
func (h *Handler) upsertSchedule(c *gin.Context) {
	expertID, ok := h.authorizedExpert(c)
	if !ok {
		return
	}

	var req domain.UpsertScheduleDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if !validator.ValidateTimezone(req.Timezone) {
		badRequestResponse(c, "неизвестная таймзона")
		return
	}

	for _, a := range req.Availability {
		if !validator.ValidateClock(a.StartTime) || !validator.ValidateClock(a.EndTime) {
			badRequestResponse(c, "неверный формат времени, ожидается HH:MM")
			return
		}
	}

	schedule, err := h.services.Schedule.Upsert(c.Request.Context(), expertID, req)
	if err != nil {
		h.logger.Error("ошибка сохранения расписания", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	successResponse(c, http.StatusOK, schedule)
}

// @Summary Получить заблокированные даты
// @Description Возвращает список заблокированных дат эксперта
// @Tags Расписание
// @Produce json
// @Param id path int true "ID эксперта"
// @Success 200 {array} domain.BlockedDate "Заблокированные даты"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Router /experts/{id}/blocked-dates [get]
func (h *Handler) listBlockedDates(c *gin.Context) {
	expertID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	dates, err := h.services.Schedule.ListBlockedDates(c.Request.Context(), expertID)
	if err != nil {
		h.logger.Error("ошибка получения заблокированных дат", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	if dates == nil {
		dates = []domain.BlockedDate{}
	}

	successResponse(c, http.StatusOK, dates)
}

// @Summary Заблокировать дату
// @Description Добавляет дату, в которую слоты не выдаются; дата истекает в своей таймзоне
// @Tags Расписание
// @Accept json
// @Produce json
// @Param id path int true "ID эксперта"
// @Param input body domain.CreateBlockedDateDTO true "Дата, таймзона и признак ежегодного повтора"
// @Success 201 {object} map[string]interface{} "ID созданной записи"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /experts/{id}/blocked-dates [post]
func (h *Handler) addBlockedDate(c *gin.Context) {
	expertID, ok := h.authorizedExpert(c)
	if !ok {
		return
	}

	var req domain.CreateBlockedDateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if !validator.ValidateDate(req.Date) {
		badRequestResponse(c, "неверный формат даты, ожидается YYYY-MM-DD")
		return
	}

	if !validator.ValidateTimezone(req.Timezone) {
		badRequestResponse(c, "неизвестная таймзона")
		return
	}

	id, err := h.services.Schedule.AddBlockedDate(c.Request.Context(), expertID, req)
	if err != nil {
		h.logger.Error("ошибка создания заблокированной даты", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	createdResponse(c, gin.H{"id": id})
}

// @Summary Удалить заблокированную дату
// @Description Удаляет заблокированную дату эксперта
// @Tags Расписание
// @Produce json
// @Param id path int true "ID заблокированной даты"
// @Success 204 "Дата разблокирована"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 404 {object} errorResponseBody "Заблокированная дата не найдена"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /blocked-dates/{id} [delete]
func (h *Handler) deleteBlockedDate(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	expertID, err := getExpertID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	if err := h.services.Schedule.DeleteBlockedDate(c.Request.Context(), expertID, id); err != nil {
		if errors.Is(err, domain.ErrBlockedDateNotFound) {
			notFoundResponse(c, "заблокированная дата не найдена")
			return
		}
		h.logger.Error("ошибка удаления заблокированной даты", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	noContentResponse(c)
}
