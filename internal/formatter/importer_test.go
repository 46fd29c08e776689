package formatter

import (
	"errors"
	"strings"
	"testing"

	"github.com/desertthunder/luach/internal/hebrew"
	"github.com/desertthunder/luach/internal/models"
	"github.com/desertthunder/luach/internal/shared"
)

func TestReadBirthdays(t *testing.T) {
	input := "\uFEFFשם,יום,חודש,שנה\n" +
		"רבקה,א,תשרי,תשמ״ה\n" +
		"Moshe,טו,ניסן,\n" +
		"דוד,כ״ט,אדר א,תשס״ה\n"

	result, err := ReadBirthdays(strings.NewReader(input), hebrew.NewConverter())
	if err != nil {
		t.Fatalf("ReadBirthdays() error = %v", err)
	}
	if len(result.Failures) != 0 {
		t.Fatalf("unexpected failures: %+v", result.Failures)
	}

	want := []models.BirthdayRecord{
		{Name: "רבקה", HebrewMonth: 7, HebrewDay: 1, OriginYear: 5745},
		{Name: "Moshe", HebrewMonth: 1, HebrewDay: 15},
		{Name: "דוד", HebrewMonth: 12, HebrewDay: 29, OriginYear: 5765},
	}
	if len(result.Records) != len(want) {
		t.Fatalf("got %d records, want %d", len(result.Records), len(want))
	}
	for i := range want {
		if result.Records[i] != want[i] {
			t.Errorf("record[%d] = %+v, want %+v", i, result.Records[i], want[i])
		}
	}
}

func TestReadBirthdaysCollectsFailures(t *testing.T) {
	input := "שם,יום,חודש,שנה\n" +
		"רבקה,א,תשרי,\n" +
		",א,תשרי,\n" +
		"bad month,א,January,\n" +
		"bad day,xyz,תשרי,\n"

	result, err := ReadBirthdays(strings.NewReader(input), hebrew.NewConverter())
	if err != nil {
		t.Fatalf("ReadBirthdays() error = %v", err)
	}

	if len(result.Records) != 1 {
		t.Errorf("got %d records, want 1", len(result.Records))
	}
	if len(result.Failures) != 3 {
		t.Fatalf("got %d failures, want 3: %+v", len(result.Failures), result.Failures)
	}

	if result.Failures[0].Line != 3 {
		t.Errorf("first failure line = %d, want 3", result.Failures[0].Line)
	}
	if !errors.Is(result.Failures[1].Err, shared.ErrUnknownMonthName) {
		t.Errorf("month failure = %v, want ErrUnknownMonthName", result.Failures[1].Err)
	}
	if result.Failures[2].Name != "bad day" {
		t.Errorf("failure name = %q", result.Failures[2].Name)
	}
}

// A stated birth date that does not exist on the calendar fails the row
// instead of silently shifting.
func TestReadBirthdaysRejectsImpossibleBirthDate(t *testing.T) {
	input := "שם,יום,חודש,שנה\n" +
		"דוד,ל,אייר,תשפ״ה\n"

	result, err := ReadBirthdays(strings.NewReader(input), hebrew.NewConverter())
	if err != nil {
		t.Fatalf("ReadBirthdays() error = %v", err)
	}
	if len(result.Records) != 0 || len(result.Failures) != 1 {
		t.Fatalf("records = %d, failures = %d", len(result.Records), len(result.Failures))
	}
	if !errors.Is(result.Failures[0].Err, shared.ErrInvalidHebrewDate) {
		t.Errorf("failure = %v, want ErrInvalidHebrewDate", result.Failures[0].Err)
	}
}

func TestReadBirthdaysMissingColumn(t *testing.T) {
	input := "שם,חודש\nרבקה,תשרי\n"

	_, err := ReadBirthdays(strings.NewReader(input), hebrew.NewConverter())
	if !errors.Is(err, shared.ErrMalformedInput) {
		t.Errorf("ReadBirthdays() error = %v, want ErrMalformedInput", err)
	}
}
