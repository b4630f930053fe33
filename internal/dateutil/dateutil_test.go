package dateutil

import (
	"errors"
	"testing"
	"time"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestParseDate(t *testing.T) {
	t.Run("valid date", func(t *testing.T) {
		got, err := ParseDate("2025-01-15")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := time.Date(2025, 1, 15, 0, 0, 0, 0, time.Local)
		if !got.Equal(want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("empty defaults to today", func(t *testing.T) {
		got, err := ParseDate("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.Equal(TruncateToDay(time.Now())) {
			t.Errorf("got %v, want today", got)
		}
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := ParseDate("01-15-2025")
		if !errors.Is(err, ErrInvalidDateFormat) {
			t.Errorf("got error %v, want %v", err, ErrInvalidDateFormat)
		}
	})
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Weekday
		wantErr bool
	}{
		{"monday", time.Monday, false},
		{"Sun", time.Sunday, false},
		{" SATURDAY ", time.Saturday, false},
		{"funday", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseWeekday(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidWeekday) {
					t.Errorf("expected ErrInvalidWeekday, got %v", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseWeekday(%q) = %v, %v", tt.in, got, err)
			}
		})
	}
}

func TestWeekRange(t *testing.T) {
	tests := []struct {
		name  string
		input time.Time
	}{
		{"monday", time.Date(2025, 1, 6, 10, 30, 0, 0, time.UTC)},
		{"wednesday", time.Date(2025, 1, 8, 14, 0, 0, 0, time.UTC)},
		{"sunday", time.Date(2025, 1, 12, 23, 59, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mon, sun := WeekRange(tt.input)
			if !mon.Equal(date(2025, 1, 6)) || !sun.Equal(date(2025, 1, 12)) {
				t.Errorf("WeekRange = %v..%v", mon, sun)
			}
		})
	}
}

func TestDays(t *testing.T) {
	start := time.Date(2025, 1, 13, 15, 0, 0, 0, time.UTC)

	got := Days(start, 3, false)
	want := []time.Time{date(2025, 1, 13), date(2025, 1, 14), date(2025, 1, 15)}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("Days[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	rtl := Days(start, 3, true)
	if !rtl[0].Equal(date(2025, 1, 15)) || !rtl[2].Equal(date(2025, 1, 13)) {
		t.Errorf("rtl days = %v", rtl)
	}

	if Days(start, 0, false) != nil {
		t.Error("zero days should be nil")
	}
}

func TestPageStart(t *testing.T) {
	wednesday := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		at   PageStartAt
		want time.Time
	}{
		{"no offset", PageStartAt{}, date(2025, 1, 15)},
		{"two days left", PageStartAt{Left: 2}, date(2025, 1, 13)},
		{"negative left ignored", PageStartAt{Left: -4}, date(2025, 1, 15)},
		{"monday weeks", PageStartAt{Weekday: time.Monday, UseWeekday: true}, date(2025, 1, 13)},
		{"sunday weeks", PageStartAt{Weekday: time.Sunday, UseWeekday: true}, date(2025, 1, 12)},
		{"same weekday", PageStartAt{Weekday: time.Wednesday, UseWeekday: true}, date(2025, 1, 15)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PageStart(wednesday, tt.at); !got.Equal(tt.want) {
				t.Errorf("PageStart = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPageNavigation(t *testing.T) {
	start := date(2025, 3, 28)
	if got := NextPage(start, 7); !got.Equal(date(2025, 4, 4)) {
		t.Errorf("NextPage = %v", got)
	}
	if got := PrevPage(start, 3); !got.Equal(date(2025, 3, 25)) {
		t.Errorf("PrevPage = %v", got)
	}
}

func TestFixedWeekDate(t *testing.T) {
	got := FixedWeekDate(time.Wednesday, 9, 30)
	if got.Weekday() != time.Wednesday || got.Hour() != 9 || got.Minute() != 30 {
		t.Errorf("FixedWeekDate = %v", got)
	}
	sun := FixedWeekDate(time.Sunday, 0, 0)
	sat := FixedWeekDate(time.Saturday, 0, 0)
	if sat.Sub(sun) != 6*24*time.Hour {
		t.Errorf("fixed week spans %v", sat.Sub(sun))
	}
}

func TestParseRelativeDate(t *testing.T) {
	// Friday, January 10, 2025
	friday := time.Date(2025, 1, 10, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr error
	}{
		{"empty returns today", "", date(2025, 1, 10), nil},
		{"today uppercase", "TODAY", date(2025, 1, 10), nil},
		{"tomorrow", "tomorrow", date(2025, 1, 11), nil},
		{"yesterday", "yesterday", date(2025, 1, 9), nil},
		{"monday from friday", "monday", date(2025, 1, 13), nil},
		{"friday from friday returns next friday", "friday", date(2025, 1, 17), nil},
		{"short name", "tue", date(2025, 1, 14), nil},
		{"next-saturday", "next-saturday", date(2025, 1, 11), nil},
		{"next-week", "next-week", date(2025, 1, 17), nil},
		{"last-week", "last-week", date(2025, 1, 3), nil},
		{"last-monday", "last-monday", date(2025, 1, 6), nil},
		{"last-friday from friday", "last-friday", date(2025, 1, 3), nil},
		{"absolute past date", "2024-12-31", date(2024, 12, 31), nil},
		{"whitespace", "  monday  ", date(2025, 1, 13), nil},
		{"unknown next", "next-funday", time.Time{}, ErrInvalidDateFormat},
		{"garbage", "someday", time.Time{}, ErrInvalidDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRelativeDate(tt.input, friday)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("got error %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
