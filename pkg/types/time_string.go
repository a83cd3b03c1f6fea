package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTimeString возвращается, если строка не в формате HH:MM
var ErrInvalidTimeString = errors.New("invalid time string format")

// TimeString время суток в формате "HH:MM"
// Бэкенд иногда отдаёт LocalTime как "HH:MM:SS", секунды отбрасываются
type TimeString string

// NewTimeString создаёт TimeString из time.Time (берутся только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()))
}

// NewTimeStringFromString парсит строку "HH:MM" или "HH:MM:SS"
func NewTimeStringFromString(s string) (TimeString, error) {
	h, m, err := parseClock(strings.TrimSpace(s))
	if err != nil {
		return "", err
	}
	return TimeString(fmt.Sprintf("%02d:%02d", h, m)), nil
}

func parseClock(s string) (int, int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, 0, ErrInvalidTimeString
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, ErrInvalidTimeString
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, ErrInvalidTimeString
	}
	if len(parts) == 3 {
		sec, err := strconv.Atoi(parts[2])
		if err != nil || sec < 0 || sec > 59 {
			return 0, 0, ErrInvalidTimeString
		}
	}
	return h, m, nil
}

// String возвращает строковое представление
func (t TimeString) String() string {
	return string(t)
}

// IsZero true, если время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет формат
func (t TimeString) Validate() error {
	_, _, err := parseClock(string(t))
	return err
}

// Minutes возвращает количество минут от полуночи
func (t TimeString) Minutes() (int, error) {
	h, m, err := parseClock(string(t))
	if err != nil {
		return 0, err
	}
	return h*60 + m, nil
}

// IsBefore сравнивает два времени, некорректные значения считаются полуночью
func (t TimeString) IsBefore(other TimeString) bool {
	a, _ := t.Minutes()
	b, _ := other.Minutes()
	return a < b
}

// UnmarshalJSON нормализует "HH:MM:SS" в "HH:MM"
func (t *TimeString) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil || *raw == "" {
		*t = ""
		return nil
	}
	parsed, err := NewTimeStringFromString(*raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
