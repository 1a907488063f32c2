package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/oauth2"
)

// CalendarTokenRepo читает OAuth-токены, записанные внешним сервисом
// подключения календарей. Выпуск и обновление токенов — вне этого сервиса.
type CalendarTokenRepo struct {
	db *pgxpool.Pool
}

func NewCalendarTokenRepository(db *pgxpool.Pool) CalendarTokenRepository {
	return &CalendarTokenRepo{db: db}
}

func (r *CalendarTokenRepo) GetByExpertID(ctx context.Context, expertID int64) (*oauth2.Token, error) {
	var raw []byte
	err := r.db.QueryRow(ctx, `
		SELECT token FROM calendar_connections WHERE expert_id = $1
	`, expertID).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения токена календаря: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(raw, &token); err != nil {
		return nil, fmt.Errorf("ошибка разбора токена календаря: %w", err)
	}
	return &token, nil
}
