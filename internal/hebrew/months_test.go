package hebrew

import (
	"errors"
	"testing"

	"github.com/desertthunder/luach/internal/shared"
)

func TestNormalizeMonthName(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{"ניסן", 1},
		{"אייר", 2},
		{"סיון", 3},
		{"סיוון", 3},
		{"תמוז", 4},
		{"אב", 5},
		{"מנחם אב", 5},
		{"אלול", 6},
		{"תשרי", 7},
		{"חשון", 8},
		{"מרחשון", 8},
		{"כסלו", 9},
		{"טבת", 10},
		{"שבט", 11},
		{"אדר", 12},
		{"אדר א", 12},
		{"אדר א'", 12},
		{"אדר א׳", 12},
		{"אדר ראשון", 12},
		{"באדר", 12},
		{"אדר ב", 13},
		{"אדר ב'", 13},
		{"אדר שני", 13},
		{"באדר ב", 13},
		{" תשרי ", 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeMonthName(tt.name)
			if err != nil {
				t.Fatalf("NormalizeMonthName(%q) error = %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("NormalizeMonthName(%q) = %d, want %d", tt.name, got, tt.want)
			}
		})
	}
}

func TestNormalizeMonthNameUnknown(t *testing.T) {
	for _, name := range []string{"", "January", "תשר", "אדר ג"} {
		_, err := NormalizeMonthName(name)
		if !errors.Is(err, shared.ErrUnknownMonthName) {
			t.Errorf("NormalizeMonthName(%q) error = %v, want ErrUnknownMonthName", name, err)
		}
	}
}
