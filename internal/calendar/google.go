package calendar

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendarapi "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"medbook/config"
	"medbook/internal/repository"
)

// GoogleSource получает занятость из Google Calendar через FreeBusy-запрос
// по токену, сохранённому внешним сервисом OAuth-подключений. FreeBusy сам
// исключает отменённые и "свободные" (transparent) события.
type GoogleSource struct {
	oauthConfig *oauth2.Config
	tokens      repository.CalendarTokenRepository
	timeout     time.Duration
	logger      *zap.Logger
}

func NewGoogleSource(cfg config.GoogleConfig, tokens repository.CalendarTokenRepository, logger *zap.Logger) *GoogleSource {
	return &GoogleSource{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Scopes:       []string{calendarapi.CalendarReadonlyScope},
			Endpoint:     google.Endpoint,
		},
		tokens:  tokens,
		timeout: cfg.FetchTimeout,
		logger:  logger,
	}
}

func (s *GoogleSource) BusyIntervals(ctx context.Context, expertID int64, from, to time.Time) ([]BusyInterval, error) {
	token, err := s.tokens.GetByExpertID(ctx, expertID)
	if err != nil {
		return nil, err
	}
	if token == nil {
		// Календарь не подключён — занятых интервалов нет.
		return nil, nil
	}

	// Таймаут только на внешний вызов: это единственное обращение к системе
	// вне нашего контроля на пути выдачи слотов.
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	client := s.oauthConfig.Client(ctx, token)
	srv, err := calendarapi.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("ошибка создания клиента календаря: %w", err)
	}

	resp, err := srv.Freebusy.Query(&calendarapi.FreeBusyRequest{
		TimeMin: from.UTC().Format(time.RFC3339),
		TimeMax: to.UTC().Format(time.RFC3339),
		Items:   []*calendarapi.FreeBusyRequestItem{{Id: "primary"}},
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса занятости календаря: %w", err)
	}

	var intervals []BusyInterval
	for _, cal := range resp.Calendars {
		for _, e := range cal.Errors {
			s.logger.Warn("календарь вернул ошибку в ответе freebusy",
				zap.Int64("expert_id", expertID),
				zap.String("reason", e.Reason),
			)
		}
		for _, period := range cal.Busy {
			start, err := time.Parse(time.RFC3339, period.Start)
			if err != nil {
				return nil, fmt.Errorf("ошибка разбора начала занятого интервала: %w", err)
			}
			end, err := time.Parse(time.RFC3339, period.End)
			if err != nil {
				return nil, fmt.Errorf("ошибка разбора конца занятого интервала: %w", err)
			}
			intervals = append(intervals, BusyInterval{Start: start.UTC(), End: end.UTC()})
		}
	}

	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].Start.Before(intervals[j].Start)
	})

	return intervals, nil
}
