package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestDefaultWeeklySchedule(t *testing.T) {
	w := DefaultWeeklySchedule()

	for _, day := range []int{0, 6} {
		if len(w[day]) != 0 {
			t.Errorf("day %d: weekend must start empty, got %d ranges", day, len(w[day]))
		}
		if w[day] == nil {
			t.Errorf("day %d: bucket must be an empty slice, not nil", day)
		}
	}

	for day := 1; day <= 5; day++ {
		if len(w[day]) != 1 {
			t.Fatalf("day %d: want exactly one seeded range, got %d", day, len(w[day]))
		}
		r := w[day][0]
		if r.Start != NewTimeOfDay(9, 0, 0) || r.End != NewTimeOfDay(17, 0, 0) {
			t.Errorf("day %d: seeded range %v-%v, want 09:00:00-17:00:00", day, r.Start, r.End)
		}
		if r.Key == "" {
			t.Errorf("day %d: seeded range has no identity key", day)
		}
	}
}

func TestDefaultWeeklyScheduleDaysAreIndependent(t *testing.T) {
	w := DefaultWeeklySchedule()

	if w[1][0].Key == w[2][0].Key {
		t.Error("seeded ranges must not share identity keys across days")
	}

	w[1][0].End = NewTimeOfDay(12, 0, 0)
	if w[2][0].End != NewTimeOfDay(17, 0, 0) {
		t.Error("mutating one day's seeded range leaked into another day")
	}
}

func TestEnableDay(t *testing.T) {
	w := DefaultWeeklySchedule()

	if err := w.EnableDay(0); err != nil {
		t.Fatalf("EnableDay(0): %v", err)
	}
	if len(w[0]) != 1 || w[0][0].Start != NewTimeOfDay(9, 0, 0) {
		t.Fatalf("enabling an empty day must seed the default range, got %v", w[0])
	}

	key := w[0][0].Key
	if err := w.EnableDay(0); err != nil {
		t.Fatalf("second EnableDay(0): %v", err)
	}
	if len(w[0]) != 1 || w[0][0].Key != key {
		t.Error("EnableDay on an enabled day must be a no-op")
	}

	if err := w.EnableDay(7); !errors.Is(err, ErrDayIndexOutOfRange) {
		t.Errorf("EnableDay(7): want ErrDayIndexOutOfRange, got %v", err)
	}
}

func TestDisableDay(t *testing.T) {
	w := DefaultWeeklySchedule()

	if err := w.DisableDay(1); err != nil {
		t.Fatalf("DisableDay(1): %v", err)
	}
	if len(w[1]) != 0 || w[1] == nil {
		t.Errorf("disabled day must be an empty non-nil bucket, got %#v", w[1])
	}

	if err := w.DisableDay(1); err != nil {
		t.Fatalf("repeated DisableDay(1): %v", err)
	}

	if err := w.DisableDay(-1); !errors.Is(err, ErrDayIndexOutOfRange) {
		t.Errorf("DisableDay(-1): want ErrDayIndexOutOfRange, got %v", err)
	}
}

func TestAppendRange(t *testing.T) {
	w := DefaultWeeklySchedule()

	if err := w.AppendRange(1); err != nil {
		t.Fatalf("AppendRange(1): %v", err)
	}
	if len(w[1]) != 2 {
		t.Fatalf("want 2 ranges after append, got %d", len(w[1]))
	}
	added := w[1][1]
	if added.Start != NewTimeOfDay(17, 0, 0) || added.End != NewTimeOfDay(18, 0, 0) {
		t.Errorf("appended range %v-%v, want 17:00:00-18:00:00", added.Start, added.End)
	}
	if added.Key == w[1][0].Key {
		t.Error("appended range must get a fresh identity key")
	}
}

func TestAppendRangeOnEmptyDayIsNoOp(t *testing.T) {
	w := DefaultWeeklySchedule()

	if err := w.AppendRange(0); err != nil {
		t.Fatalf("AppendRange(0): %v", err)
	}
	if len(w[0]) != 0 {
		t.Errorf("append on a disabled day must do nothing, got %d ranges", len(w[0]))
	}
}

func TestAppendRangeRejectsMidnightOverflow(t *testing.T) {
	var w WeeklySchedule
	w.Normalize()
	if err := w.ReplaceRanges(3, []TimeRange{NewTimeRange(NewTimeOfDay(23, 30, 0), NewTimeOfDay(23, 45, 0))}); err != nil {
		t.Fatalf("ReplaceRanges: %v", err)
	}

	if err := w.AppendRange(3); err != nil {
		t.Fatalf("AppendRange(3): %v", err)
	}
	if len(w[3]) != 1 {
		t.Errorf("append past midnight must be silently rejected, got %d ranges", len(w[3]))
	}

	// 23:00:00 + 60m would land exactly on the nonexistent 24:00:00.
	if err := w.ReplaceRanges(3, []TimeRange{NewTimeRange(NewTimeOfDay(22, 0, 0), NewTimeOfDay(23, 0, 0))}); err != nil {
		t.Fatalf("ReplaceRanges: %v", err)
	}
	if err := w.AppendRange(3); err != nil {
		t.Fatalf("AppendRange(3): %v", err)
	}
	if len(w[3]) != 1 {
		t.Errorf("append ending on 24:00:00 must be rejected, got %d ranges", len(w[3]))
	}
}

func TestRemoveRange(t *testing.T) {
	var w WeeklySchedule
	w.Normalize()
	ranges := []TimeRange{
		NewTimeRange(NewTimeOfDay(8, 0, 0), NewTimeOfDay(9, 0, 0)),
		NewTimeRange(NewTimeOfDay(10, 0, 0), NewTimeOfDay(11, 0, 0)),
		NewTimeRange(NewTimeOfDay(12, 0, 0), NewTimeOfDay(13, 0, 0)),
	}
	if err := w.ReplaceRanges(2, ranges); err != nil {
		t.Fatalf("ReplaceRanges: %v", err)
	}

	if err := w.RemoveRange(2, 1); err != nil {
		t.Fatalf("RemoveRange(2, 1): %v", err)
	}
	if len(w[2]) != 2 {
		t.Fatalf("want 2 ranges after removal, got %d", len(w[2]))
	}
	if w[2][0].Key != ranges[0].Key || w[2][1].Key != ranges[2].Key {
		t.Error("removal must preserve the order and identity of surviving ranges")
	}

	if err := w.RemoveRange(2, 5); !errors.Is(err, ErrRangeIndexOutOfRange) {
		t.Errorf("RemoveRange(2, 5): want ErrRangeIndexOutOfRange, got %v", err)
	}
	if err := w.RemoveRange(2, -1); !errors.Is(err, ErrRangeIndexOutOfRange) {
		t.Errorf("RemoveRange(2, -1): want ErrRangeIndexOutOfRange, got %v", err)
	}
}

func TestReplaceRanges(t *testing.T) {
	var w WeeklySchedule

	if err := w.ReplaceRanges(4, nil); err != nil {
		t.Fatalf("ReplaceRanges(4, nil): %v", err)
	}
	if w[4] == nil || len(w[4]) != 0 {
		t.Errorf("nil ranges must become an empty bucket, got %#v", w[4])
	}

	// Deliberately out of order: replacement is unvalidated by contract.
	weird := []TimeRange{
		NewTimeRange(NewTimeOfDay(20, 0, 0), NewTimeOfDay(21, 0, 0)),
		NewTimeRange(NewTimeOfDay(8, 0, 0), NewTimeOfDay(9, 0, 0)),
	}
	if err := w.ReplaceRanges(4, weird); err != nil {
		t.Fatalf("ReplaceRanges with unordered ranges: %v", err)
	}
	if len(w[4]) != 2 || w[4][0].Start != NewTimeOfDay(20, 0, 0) {
		t.Error("ReplaceRanges must store ranges exactly as given")
	}
}

func TestWeeklyScheduleJSON(t *testing.T) {
	w := DefaultWeeklySchedule()

	data, err := json.Marshal(w)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded WeeklySchedule
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	decoded.Normalize()

	for day := 0; day < DaysPerWeek; day++ {
		if len(decoded[day]) != len(w[day]) {
			t.Errorf("day %d: %d ranges after round trip, want %d", day, len(decoded[day]), len(w[day]))
		}
	}
	if decoded[1][0].Key != w[1][0].Key {
		t.Error("identity keys must survive serialization")
	}
}

func TestDayBucketMarshalsNilAsEmptyArray(t *testing.T) {
	var w WeeklySchedule

	data, err := json.Marshal(w)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != "[[],[],[],[],[],[],[]]" {
		t.Errorf("zero schedule marshals as %s, want seven empty arrays", data)
	}
}

func TestNormalize(t *testing.T) {
	var w WeeklySchedule
	w[3] = DayBucket{NewTimeRange(NewTimeOfDay(9, 0, 0), NewTimeOfDay(10, 0, 0))}

	w.Normalize()

	for day := 0; day < DaysPerWeek; day++ {
		if w[day] == nil {
			t.Errorf("day %d is still nil after Normalize", day)
		}
	}
	if len(w[3]) != 1 {
		t.Error("Normalize must not touch populated days")
	}
}
