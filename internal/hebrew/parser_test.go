package hebrew

import (
	"errors"
	"testing"

	"github.com/desertthunder/luach/internal/models"
	"github.com/desertthunder/luach/internal/shared"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name      string
		day       string
		month     string
		year      string
		want      models.HebrewDate
	}{
		{"plain", "טו", "ניסן", "תשפד", models.HebrewDate{Year: 5784, Month: 1, Day: 15}},
		{"gershayim", "כ״ט", "שבט", "תשס״ה", models.HebrewDate{Year: 5765, Month: 11, Day: 29}},
		{"quote marks", `כ"ט`, "אדר א'", `תשס"ה`, models.HebrewDate{Year: 5765, Month: 12, Day: 29}},
		{"rosh hashana", "א", "תשרי", "התשפ״ה", models.HebrewDate{Year: 5785, Month: 7, Day: 1}},
		{"adar sheni", "ל", "אדר ב", "תשפ״ד", models.HebrewDate{Year: 5784, Month: 13, Day: 30}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.day, tt.month, tt.year)
			if err != nil {
				t.Fatalf("ParseDate() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseDate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseDateErrors(t *testing.T) {
	tests := []struct {
		name  string
		day   string
		month string
		year  string
		want  error
	}{
		{"bad day", "xyz", "ניסן", "תשפד", shared.ErrMalformedInput},
		{"empty day", "", "ניסן", "תשפד", shared.ErrMalformedInput},
		{"bad month", "טו", "nisan", "תשפד", shared.ErrUnknownMonthName},
		{"bad year", "טו", "ניסן", "5784", shared.ErrMalformedInput},
		{"day out of range", "לא", "ניסן", "תשפד", shared.ErrMalformedInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDate(tt.day, tt.month, tt.year)
			if !errors.Is(err, tt.want) {
				t.Errorf("ParseDate() error = %v, want %v", err, tt.want)
			}
		})
	}
}
