package locale

import (
	"fmt"

	"golang.org/x/text/language"

	"freebusy/internal/domain"
)

// Пакет locale — внешний коллаборатор локализации: отдает упорядоченные имена
// дней недели, выровненные по индексам корзин расписания (0 — первый день недели,
// воскресенье), и человекочитаемые подписи времени. Ядро расписания само имена
// дней не выводит и подписи не строит.

type weekdayTable struct {
	names  [domain.DaysPerWeek]string
	use12h bool
}

var supported = []language.Tag{
	language.English,
	language.Russian,
}

var matcher = language.NewMatcher(supported)

var tables = map[language.Tag]weekdayTable{
	language.English: {
		names:  [domain.DaysPerWeek]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
		use12h: true,
	},
	language.Russian: {
		names:  [domain.DaysPerWeek]string{"Воскресенье", "Понедельник", "Вторник", "Среда", "Четверг", "Пятница", "Суббота"},
		use12h: false,
	},
}

// Match подбирает ближайшую поддерживаемую локаль по тегу BCP 47.
// Нераспознанный или пустой тег откатывается к первой поддерживаемой локали.
func Match(tag string) language.Tag {
	desired, _ := language.Parse(tag)
	_, index, _ := matcher.Match(desired)
	return supported[index]
}

// WeekdayNames возвращает 7 имен дней недели, выровненных по индексам 0-6.
func WeekdayNames(tag string) [domain.DaysPerWeek]string {
	return tables[Match(tag)].names
}

// FormatLabel строит подпись времени для пикера: час и минута в привычной
// для локали записи. Подпись — чисто презентационное значение, парсить его
// обратно нельзя, для этого есть каноническая форма TimeOfDay.String.
func FormatLabel(t domain.TimeOfDay, tag string) string {
	table := tables[Match(tag)]

	if !table.use12h {
		return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
	}

	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	suffix := "AM"
	if t.Hour() >= 12 {
		suffix = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", hour, t.Minute(), suffix)
}
