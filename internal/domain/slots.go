package domain

import (
	"sync"
)

const DefaultSlotIncrementMinutes = 15

// SlotOption — один пункт каталога времени для выбора в пикере: машинное
// значение (каноническая форма, служит ключом выбора) и локализованная подпись.
// Подпись заполняется слоем, знающим про локаль, и никогда не парсится обратно.
type SlotOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var (
	catalogMu sync.Mutex
	catalogs  = make(map[int][]TimeOfDay)
)

// SlotCatalog возвращает каталог допустимых времен суток с заданным шагом в минутах,
// начиная с 00:00:00 и строго до конца суток. Каталог зависит только от шага,
// поэтому вычисляется один раз на процесс и переиспользуется всеми пикерами.
// Возвращаемый срез общий — вызывающий код не должен его изменять.
func SlotCatalog(incrementMinutes int) []TimeOfDay {
	if incrementMinutes <= 0 {
		incrementMinutes = DefaultSlotIncrementMinutes
	}

	catalogMu.Lock()
	defer catalogMu.Unlock()

	if catalog, ok := catalogs[incrementMinutes]; ok {
		return catalog
	}

	step := incrementMinutes * secondsPerMinute
	catalog := make([]TimeOfDay, 0, secondsPerDay/step+1)
	for secs := 0; secs < secondsPerDay; secs += step {
		catalog = append(catalog, TimeOfDay(secs))
	}

	catalogs[incrementMinutes] = catalog
	return catalog
}

// FilterSlots возвращает подмножество каталога строго после after и строго до before.
// Обе границы необязательны и применяются независимо; без границ возвращается
// каталог целиком. Используется, например, чтобы предлагать только времена
// окончания позже выбранного начала.
func FilterSlots(catalog []TimeOfDay, after, before *TimeOfDay) []TimeOfDay {
	filtered := make([]TimeOfDay, 0, len(catalog))
	for _, t := range catalog {
		if after != nil && !t.After(*after) {
			continue
		}
		if before != nil && !t.Before(*before) {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered
}
