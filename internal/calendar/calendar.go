// Package calendar абстрагирует внешний источник занятости: подключённый
// календарь эксперта превращается в непрозрачный список интервалов
// {start, end} в UTC. Как события попали в календарь, сервис не знает.
package calendar

import (
	"context"
	"time"
)

type BusyInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type Source interface {
	// BusyIntervals возвращает занятые интервалы эксперта в [from, to].
	// Ошибка означает "неизвестно", а не "свободно": вызывающий обязан
	// поднять её наверх, а не считать, что конфликтов нет.
	BusyIntervals(ctx context.Context, expertID int64, from, to time.Time) ([]BusyInterval, error)
}

// NoopSource используется, когда интеграция с календарями не настроена:
// у экспертов нет подключённых календарей, занятых интервалов нет.
type NoopSource struct{}

func NewNoopSource() *NoopSource {
	return &NoopSource{}
}

func (s *NoopSource) BusyIntervals(ctx context.Context, expertID int64, from, to time.Time) ([]BusyInterval, error) {
	return nil, nil
}
