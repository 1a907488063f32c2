package rest

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medbook/internal/domain"
)

// @Summary Получить доступные слоты
// @Description Возвращает упорядоченный список свободных моментов начала слота в UTC
// @Tags Доступность
// @Produce json
// @Param expert_id query int true "ID эксперта"
// @Param event_type_id query int true "ID услуги"
// @Param from query string true "Начало окна (RFC3339 или YYYY-MM-DD)"
// @Param to query string true "Конец окна (RFC3339 или YYYY-MM-DD, включительно)"
// @Success 200 {object} map[string]interface{} "Список доступных слотов"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 404 {object} errorResponseBody "Услуга не найдена"
// @Failure 502 {object} errorResponseBody "Внешний календарь недоступен"
// @Router /availability [get]
func (h *Handler) getAvailability(c *gin.Context) {
	expertID, err := strconv.ParseInt(c.Query("expert_id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID эксперта")
		return
	}

	eventTypeID, err := strconv.ParseInt(c.Query("event_type_id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID услуги")
		return
	}

	from, err := parseTimeParam(c.Query("from"), false)
	if err != nil {
		badRequestResponse(c, "неверный формат параметра from")
		return
	}

	to, err := parseTimeParam(c.Query("to"), true)
	if err != nil {
		badRequestResponse(c, "неверный формат параметра to")
		return
	}

	if !to.After(from) {
		badRequestResponse(c, "параметр to должен быть позже from")
		return
	}

	times, err := h.services.Availability.AvailableTimes(c.Request.Context(), expertID, eventTypeID, from, to)
	if err != nil {
		if errors.Is(err, domain.ErrEventTypeNotFound) {
			notFoundResponse(c, "услуга не найдена")
			return
		}
		if errors.Is(err, domain.ErrUpstreamUnavailable) {
			badGatewayResponse(c, "внешний календарь недоступен, повторите запрос позже")
			return
		}
		h.logger.Error("ошибка получения доступных слотов", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	if times == nil {
		times = []time.Time{}
	}

	successResponse(c, http.StatusOK, gin.H{
		"expert_id":     expertID,
		"event_type_id": eventTypeID,
		"times":         times,
	})
}

// parseTimeParam принимает либо момент RFC3339, либо дату YYYY-MM-DD.
// Дата в параметре "to" трактуется включительно, до конца суток UTC.
func parseTimeParam(value string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}

	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24 * time.Hour)
	}
	return t, nil
}
