package domain

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"
)

const (
	DaysPerWeek = 7

	appendRangeMinutes = 60
)

var (
	ErrDayIndexOutOfRange   = errors.New("индекс дня недели вне диапазона 0-6")
	ErrRangeIndexOutOfRange = errors.New("индекс интервала вне диапазона")
)

// Время сида по умолчанию: будни 09:00–17:00.
var (
	defaultRangeStart = NewTimeOfDay(9, 0, 0)
	defaultRangeEnd   = NewTimeOfDay(17, 0, 0)
)

// TimeRange — один интервал доступности внутри дня. Key — стабильный ключ
// идентичности для списков в UI: он не зависит от позиции интервала, поэтому
// удаление соседнего элемента не "переименовывает" выжившие.
type TimeRange struct {
	Key   string    `json:"key"`
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

func NewTimeRange(start, end TimeOfDay) TimeRange {
	return TimeRange{
		Key:   uuid.New().String(),
		Start: start,
		End:   end,
	}
}

// DayBucket — упорядоченный список интервалов одного дня недели в порядке
// добавления. Непересекаемость интервалов гарантируется только правилом
// AppendRange; загруженные извне данные не перепроверяются и не чинятся.
type DayBucket []TimeRange

// Пустой день сериализуется как [], а не null: контракт формата хранения
// требует ровно 7 массивов.
func (b DayBucket) MarshalJSON() ([]byte, error) {
	if b == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]TimeRange(b))
}

func (b DayBucket) Enabled() bool {
	return len(b) > 0
}

// WeeklySchedule — недельное расписание доступности: ровно 7 дней,
// индекс 0 соответствует первому дню недели активной локали (обычно воскресенье).
// Имена дней по индексам поставляет локальный коллаборатор, не само расписание.
type WeeklySchedule [DaysPerWeek]DayBucket

// DefaultWeeklySchedule — каноническое расписание по умолчанию: будни (индексы 1-5)
// с одним интервалом 09:00-17:00, выходные (индексы 0 и 6) пустые. Каждый день
// получает собственную копию интервала со своим ключом: изменение понедельника
// не должно затрагивать вторник.
func DefaultWeeklySchedule() WeeklySchedule {
	var w WeeklySchedule
	for day := 0; day < DaysPerWeek; day++ {
		if day == 0 || day == DaysPerWeek-1 {
			w[day] = DayBucket{}
			continue
		}
		w[day] = DayBucket{NewTimeRange(defaultRangeStart, defaultRangeEnd)}
	}
	return w
}

// Normalize заменяет nil-дни пустыми срезами. Вызывается после десериализации,
// чтобы отсутствующий день никогда не отличался от пустого.
func (w *WeeklySchedule) Normalize() {
	for day := range w {
		if w[day] == nil {
			w[day] = DayBucket{}
		}
	}
}

// EnableDay включает день: пустой день получает один интервал по умолчанию,
// уже включенный день не меняется. Идемпотентна.
func (w *WeeklySchedule) EnableDay(day int) error {
	if err := w.checkDay(day); err != nil {
		return err
	}

	if w[day].Enabled() {
		return nil
	}

	w[day] = DayBucket{NewTimeRange(defaultRangeStart, defaultRangeEnd)}
	return nil
}

// DisableDay выключает день, безусловно заменяя его пустым списком. Идемпотентна.
func (w *WeeklySchedule) DisableDay(day int) error {
	if err := w.checkDay(day); err != nil {
		return err
	}

	w[day] = DayBucket{}
	return nil
}

// AppendRange добавляет в конец дня часовой интервал, начинающийся там, где
// закончился последний. Тихо ничего не делает, если день пуст (не от чего
// отталкиваться) или если новый интервал вылез бы за полночь: интервалы дня
// никогда не продлеваются на следующие сутки. Это единственный путь создания
// интервалов помимо сида, поэтому новые интервалы по построению не пересекаются
// с предыдущими.
func (w *WeeklySchedule) AppendRange(day int) error {
	if err := w.checkDay(day); err != nil {
		return err
	}

	bucket := w[day]
	if len(bucket) == 0 {
		return nil
	}

	lastEnd := bucket[len(bucket)-1].End
	candidateEnd, overflowed := lastEnd.AddMinutes(appendRangeMinutes)
	if overflowed {
		return nil
	}

	w[day] = append(bucket, NewTimeRange(lastEnd, candidateEnd))
	return nil
}

// RemoveRange удаляет интервал по позиции в порядке добавления. Выход индекса
// за границы — ошибка программирования вызывающей стороны, а не обычное
// пользовательское состояние, поэтому здесь она не замалчивается.
func (w *WeeklySchedule) RemoveRange(day, index int) error {
	if err := w.checkDay(day); err != nil {
		return err
	}

	bucket := w[day]
	if index < 0 || index >= len(bucket) {
		return ErrRangeIndexOutOfRange
	}

	w[day] = append(bucket[:index], bucket[index+1:]...)
	return nil
}

// ReplaceRanges целиком заменяет интервалы дня без какой-либо валидации:
// корректность данных в обход AppendRange — ответственность вызывающего.
func (w *WeeklySchedule) ReplaceRanges(day int, ranges []TimeRange) error {
	if err := w.checkDay(day); err != nil {
		return err
	}

	if ranges == nil {
		ranges = []TimeRange{}
	}

	w[day] = DayBucket(ranges)
	return nil
}

func (w *WeeklySchedule) checkDay(day int) error {
	if day < 0 || day >= DaysPerWeek {
		return ErrDayIndexOutOfRange
	}
	return nil
}
