package domain

import (
	"errors"
	"fmt"
	"strconv"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 3600
	secondsPerDay    = 24 * secondsPerHour
)

var ErrInvalidTimeFormat = errors.New("неверный формат времени, ожидается HH:MM:SS")

// TimeOfDay — время внутри суток с точностью до секунды, без даты и часового пояса.
// Хранится как число секунд с начала суток, диапазон 00:00:00–23:59:59.
type TimeOfDay int

func NewTimeOfDay(hour, minute, second int) TimeOfDay {
	return TimeOfDay(hour*secondsPerHour + minute*secondsPerMinute + second)
}

func StartOfDay() TimeOfDay {
	return TimeOfDay(0)
}

// EndOfDay — последняя представимая секунда суток. Значения "24:00:00" не существует:
// конец дня всегда моделируется как 23:59:59.
func EndOfDay() TimeOfDay {
	return TimeOfDay(secondsPerDay - 1)
}

// ParseTimeOfDay разбирает строку строго в формате HH:MM:SS (двузначные компоненты,
// 24-часовая шкала). Любой другой формат, включая ISO-8601 с датой, отклоняется.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != 8 || s[2] != ':' || s[5] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	hour, err := parseTwoDigits(s[0:2])
	if err != nil || hour > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	minute, err := parseTwoDigits(s[3:5])
	if err != nil || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	second, err := parseTwoDigits(s[6:8])
	if err != nil || second > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	return NewTimeOfDay(hour, minute, second), nil
}

func parseTwoDigits(s string) (int, error) {
	if s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, ErrInvalidTimeFormat
	}
	return strconv.Atoi(s)
}

func (t TimeOfDay) Hour() int {
	return int(t) / secondsPerHour
}

func (t TimeOfDay) Minute() int {
	return int(t) % secondsPerHour / secondsPerMinute
}

func (t TimeOfDay) Second() int {
	return int(t) % secondsPerMinute
}

// String возвращает каноническую форму HH:MM:SS. Для любого корректного t
// выполняется ParseTimeOfDay(t.String()) == t.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}

func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t < other
}

func (t TimeOfDay) After(other TimeOfDay) bool {
	return t > other
}

// AddMinutes возвращает время, сдвинутое на n минут вперед. Если результат
// выходит за пределы суток, возвращается значение по модулю суток и overflow=true;
// вызывающий код, который обязан оставаться в рамках одного дня, проверяет флаг сам.
func (t TimeOfDay) AddMinutes(n int) (TimeOfDay, bool) {
	raw := int(t) + n*secondsPerMinute
	if raw > int(EndOfDay()) {
		return TimeOfDay(raw % secondsPerDay), true
	}
	return TimeOfDay(raw), false
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(t.String())), nil
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTimeFormat, data)
	}

	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}

	*t = parsed
	return nil
}
