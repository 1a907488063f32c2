package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medbook/internal/domain"
)

// @Summary Получить список услуг эксперта
// @Description Возвращает услуги эксперта; active=true отдает только активные
// @Tags Услуги
// @Produce json
// @Param id path int true "ID эксперта"
// @Param active query bool false "Только активные услуги"
// @Success 200 {array} domain.EventType "Список услуг"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Router /experts/{id}/event-types [get]
func (h *Handler) listEventTypes(c *gin.Context) {
	expertID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	activeOnly := c.DefaultQuery("active", "false") == "true"

	eventTypes, err := h.services.EventType.ListByExpertID(c.Request.Context(), expertID, activeOnly)
	if err != nil {
		h.logger.Error("ошибка получения списка услуг", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	if eventTypes == nil {
		eventTypes = []domain.EventType{}
	}

	successResponse(c, http.StatusOK, eventTypes)
}

// @Summary Создать услугу
// @Description Создает новую бронируемую услугу эксперта
// @Tags Услуги
// @Accept json
// @Produce json
// @Param id path int true "ID эксперта"
// @Param input body domain.CreateEventTypeDTO true "Данные услуги"
// @Success 201 {object} map[string]interface{} "ID созданной услуги"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /experts/{id}/event-types [post]
func (h *Handler) createEventType(c *gin.Context) {
	expertID, ok := h.authorizedExpert(c)
	if !ok {
		return
	}

	var req domain.CreateEventTypeDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных, длительность услуги — от 5 до 480 минут")
		return
	}

	id, err := h.services.EventType.Create(c.Request.Context(), expertID, req)
	if err != nil {
		h.logger.Error("ошибка создания услуги", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	createdResponse(c, gin.H{"id": id})
}

// @Summary Обновить услугу
// @Description Частично обновляет услугу эксперта
// @Tags Услуги
// @Accept json
// @Produce json
// @Param id path int true "ID услуги"
// @Param input body domain.UpdateEventTypeDTO true "Изменяемые поля"
// @Success 200 {object} messageResponseType "Сообщение об успешном обновлении"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 404 {object} errorResponseBody "Услуга не найдена"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /event-types/{id} [put]
func (h *Handler) updateEventType(c *gin.Context) {
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

	var req domain.UpdateEventTypeDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.EventType.Update(c.Request.Context(), expertID, id, req); err != nil {
		if errors.Is(err, domain.ErrEventTypeNotFound) {
			notFoundResponse(c, "услуга не найдена")
			return
		}
		h.logger.Error("ошибка обновления услуги", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	messageResponse(c, http.StatusOK, "услуга успешно обновлена")
}

// @Summary Удалить услугу
// @Description Удаляет услугу эксперта
// @Tags Услуги
// @Produce json
// @Param id path int true "ID услуги"
// @Success 200 {object} messageResponseType "Сообщение об успешном удалении"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 404 {object} errorResponseBody "Услуга не найдена"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /event-types/{id} [delete]
func (h *Handler) deleteEventType(c *gin.Context) {
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

	if err := h.services.EventType.Delete(c.Request.Context(), expertID, id); err != nil {
		if errors.Is(err, domain.ErrEventTypeNotFound) {
			notFoundResponse(c, "услуга не найдена")
			return
		}
		h.logger.Error("ошибка удаления услуги", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	messageResponse(c, http.StatusOK, "услуга успешно удалена")
}
