package domain

import (
	"errors"
	"testing"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in   string
		want TimeOfDay
	}{
		{"00:00:00", NewTimeOfDay(0, 0, 0)},
		{"09:00:00", NewTimeOfDay(9, 0, 0)},
		{"17:30:45", NewTimeOfDay(17, 30, 45)},
		{"23:59:59", EndOfDay()},
	}

	for _, tc := range cases {
		got, err := ParseTimeOfDay(tc.in)
		if err != nil {
			t.Errorf("ParseTimeOfDay(%q): unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseTimeOfDay(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseTimeOfDayRejectsMalformed(t *testing.T) {
	bad := []string{
		"",
		"9:00:00",
		"09:00",
		"24:00:00",
		"12:60:00",
		"12:00:60",
		"12-00-00",
		"ab:cd:ef",
		"12:0 :00",
		"2024-01-01T12:00:00",
		"12:00:00Z",
	}

	for _, in := range bad {
		if _, err := ParseTimeOfDay(in); !errors.Is(err, ErrInvalidTimeFormat) {
			t.Errorf("ParseTimeOfDay(%q): want ErrInvalidTimeFormat, got %v", in, err)
		}
	}
}

func TestTimeOfDayStringRoundTrip(t *testing.T) {
	for _, in := range []TimeOfDay{StartOfDay(), NewTimeOfDay(7, 5, 3), NewTimeOfDay(12, 0, 0), EndOfDay()} {
		parsed, err := ParseTimeOfDay(in.String())
		if err != nil {
			t.Fatalf("ParseTimeOfDay(%q): %v", in.String(), err)
		}
		if parsed != in {
			t.Errorf("round trip %q: got %d, want %d", in.String(), parsed, in)
		}
	}

	if got := NewTimeOfDay(9, 5, 0).String(); got != "09:05:00" {
		t.Errorf("String() = %q, want zero-padded 09:05:00", got)
	}
}

func TestTimeOfDayOrdering(t *testing.T) {
	a := NewTimeOfDay(9, 0, 0)
	b := NewTimeOfDay(17, 0, 0)

	if !a.Before(b) || b.Before(a) {
		t.Errorf("Before: expected %v < %v", a, b)
	}
	if !b.After(a) || a.After(b) {
		t.Errorf("After: expected %v > %v", b, a)
	}
	if a.Before(a) || a.After(a) {
		t.Error("ordering must be strict: a is neither before nor after itself")
	}
}

func TestAddMinutes(t *testing.T) {
	got, overflow := NewTimeOfDay(17, 0, 0).AddMinutes(60)
	if overflow {
		t.Fatal("17:00:00 + 60m must not overflow")
	}
	if got != NewTimeOfDay(18, 0, 0) {
		t.Errorf("17:00:00 + 60m = %v, want 18:00:00", got)
	}

	got, overflow = NewTimeOfDay(23, 0, 0).AddMinutes(59)
	if overflow || got != NewTimeOfDay(23, 59, 0) {
		t.Errorf("23:00:00 + 59m = %v overflow=%v, want 23:59:00 without overflow", got, overflow)
	}

	if _, overflow = NewTimeOfDay(23, 30, 0).AddMinutes(60); !overflow {
		t.Error("23:30:00 + 60m must overflow past midnight")
	}
	if _, overflow = NewTimeOfDay(23, 0, 0).AddMinutes(60); !overflow {
		t.Error("23:00:00 + 60m lands on 24:00:00, which does not exist")
	}
}

func TestTimeOfDayJSON(t *testing.T) {
	data, err := NewTimeOfDay(9, 30, 0).MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if string(data) != `"09:30:00"` {
		t.Errorf("MarshalJSON = %s, want \"09:30:00\"", data)
	}

	var parsed TimeOfDay
	if err := parsed.UnmarshalJSON([]byte(`"14:45:00"`)); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if parsed != NewTimeOfDay(14, 45, 0) {
		t.Errorf("UnmarshalJSON = %v, want 14:45:00", parsed)
	}

	if err := parsed.UnmarshalJSON([]byte(`"24:00:00"`)); !errors.Is(err, ErrInvalidTimeFormat) {
		t.Errorf("UnmarshalJSON(24:00:00): want ErrInvalidTimeFormat, got %v", err)
	}
	if err := parsed.UnmarshalJSON([]byte(`1234`)); !errors.Is(err, ErrInvalidTimeFormat) {
		t.Errorf("UnmarshalJSON(1234): want ErrInvalidTimeFormat, got %v", err)
	}
}
