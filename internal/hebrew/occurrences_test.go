package hebrew

import (
	"errors"
	"testing"

	"github.com/desertthunder/luach/internal/models"
	"github.com/desertthunder/luach/internal/shared"
	luachtest "github.com/desertthunder/luach/internal/testing"
)

func TestFindOccurrences(t *testing.T) {
	conv := NewConverter()

	got, err := FindOccurrences(conv, 7, 1, 2024, 3)
	if err != nil {
		t.Fatalf("FindOccurrences() error = %v", err)
	}

	want := []models.GregorianDate{
		{Year: 2024, Month: 10, Day: 3},
		{Year: 2025, Month: 9, Day: 23},
		{Year: 2026, Month: 9, Day: 12},
	}
	if len(got) != len(want) {
		t.Fatalf("FindOccurrences() returned %d dates, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("FindOccurrences()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

// 1 Adar II only exists in leap years. 5786, the Hebrew year covering
// most of 2026, is common, so the year yields nothing rather than an
// error.
func TestFindOccurrencesSkipsMissingYears(t *testing.T) {
	conv := NewConverter()

	got, err := FindOccurrences(conv, 13, 1, 2025, 1)
	if err != nil {
		t.Fatalf("FindOccurrences() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("FindOccurrences() = %v, want none", got)
	}
}

func TestFindOccurrencesAdarIILeapYear(t *testing.T) {
	conv := NewConverter()

	got, err := FindOccurrences(conv, 13, 1, 2024, 1)
	if err != nil {
		t.Fatalf("FindOccurrences() error = %v", err)
	}
	want := models.GregorianDate{Year: 2024, Month: 3, Day: 11}
	if len(got) != 1 || got[0] != want {
		t.Errorf("FindOccurrences() = %v, want [%v]", got, want)
	}
}

// 10 Tevet fell twice in 1996, on January 2 (5756) and again on
// December 20 (5757). Only the first instance counts for the year.
func TestFindOccurrencesOnePerYear(t *testing.T) {
	conv := NewConverter()

	got, err := FindOccurrences(conv, 10, 10, 1996, 1)
	if err != nil {
		t.Fatalf("FindOccurrences() error = %v", err)
	}
	want := models.GregorianDate{Year: 1996, Month: 1, Day: 2}
	if len(got) != 1 || got[0] != want {
		t.Errorf("FindOccurrences() = %v, want [%v]", got, want)
	}
}

func TestFindOccurrencesOrdered(t *testing.T) {
	conv := NewConverter()

	got, err := FindOccurrences(conv, 1, 15, 2020, 8)
	if err != nil {
		t.Fatalf("FindOccurrences() error = %v", err)
	}
	if len(got) == 0 {
		t.Fatal("FindOccurrences() returned no dates")
	}
	for i := 1; i < len(got); i++ {
		if !got[i-1].Before(got[i]) {
			t.Errorf("dates out of order at %d: %v then %v", i, got[i-1], got[i])
		}
	}
}

// The finder sees the calendar only through its Converter argument, so
// a table-backed fake can stand in for the real library.
func TestFindOccurrencesWithFakeConverter(t *testing.T) {
	conv := &luachtest.FakeConverter{
		ToHeb: map[models.GregorianDate]models.HebrewDate{
			{Year: 1996, Month: 1, Day: 1}: {Year: 5756, Month: 10, Day: 9},
		},
		ToGreg: map[models.HebrewDate]models.GregorianDate{
			{Year: 5756, Month: 10, Day: 10}: {Year: 1996, Month: 1, Day: 2},
			{Year: 5757, Month: 10, Day: 10}: {Year: 1996, Month: 12, Day: 20},
		},
	}

	got, err := FindOccurrences(conv, 10, 10, 1996, 1)
	if err != nil {
		t.Fatalf("FindOccurrences() error = %v", err)
	}
	want := models.GregorianDate{Year: 1996, Month: 1, Day: 2}
	if len(got) != 1 || got[0] != want {
		t.Errorf("FindOccurrences() = %v, want [%v]", got, want)
	}
}

func TestFindOccurrencesMalformed(t *testing.T) {
	conv := NewConverter()

	tests := []struct {
		name      string
		month     int
		day       int
		startYear int
		yearCount int
	}{
		{"month too high", 14, 1, 2024, 1},
		{"month zero", 0, 1, 2024, 1},
		{"day too high", 7, 31, 2024, 1},
		{"day zero", 7, 0, 2024, 1},
		{"zero years", 7, 1, 2024, 0},
		{"negative years", 7, 1, 2024, -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FindOccurrences(conv, tt.month, tt.day, tt.startYear, tt.yearCount)
			if !errors.Is(err, shared.ErrMalformedInput) {
				t.Errorf("FindOccurrences() error = %v, want ErrMalformedInput", err)
			}
		})
	}
}
