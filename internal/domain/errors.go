package domain

import "errors"

var (
	// ErrSlotConflict — на слот уже есть живая резервация другого гостя.
	ErrSlotConflict = errors.New("слот уже зарезервирован")

	// ErrUpstreamUnavailable — внешний календарь не ответил; считать, что
	// конфликтов нет, нельзя, поэтому ошибка поднимается до вызывающего.
	ErrUpstreamUnavailable = errors.New("внешний календарь недоступен")

	// ErrReservationNotFound — резервации нет или она уже истекла.
	ErrReservationNotFound = errors.New("резервация не найдена")

	ErrEventTypeNotFound = errors.New("услуга не найдена")

	ErrBlockedDateNotFound = errors.New("заблокированная дата не найдена")
)
