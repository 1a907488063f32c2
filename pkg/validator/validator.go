package validator

import (
	"regexp"
	"time"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidateClock проверяет локальное время вида "HH:MM".
func ValidateClock(value string) bool {
	_, err := time.Parse("15:04", value)
	return err == nil
}

func ValidateDate(value string) bool {
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}

// ValidateTimezone принимает только имена из базы IANA ("Europe/Moscow").
// Пустая строка и сокращения вроде "MSK" не годятся: от них зависит
// пересчёт локальных интервалов в моменты времени.
func ValidateTimezone(name string) bool {
	if name == "" {
		return false
	}
	_, err := time.LoadLocation(name)
	return err == nil
}

func ValidateWeekday(weekday int) bool {
	return weekday >= 0 && weekday <= 6
}
