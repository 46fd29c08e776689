package hebrew

import (
	"fmt"
	"strings"

	"github.com/desertthunder/luach/internal/shared"
)

// monthNumbers maps normalized month spellings to month numbers, with
// Nisan as month 1. Keys are stored without spaces so spelling variants
// like אדר ב׳ and אדר ב collapse to the same entry.
var monthNumbers = map[string]int{
	"ניסן":   1,
	"אייר":   2,
	"איר":    2,
	"סיון":   3,
	"סיוון":  3,
	"תמוז":   4,
	"אב":     5,
	"מנחםאב": 5,
	"אלול":   6,
	"תשרי":   7,
	"חשון":   8,
	"חשוון":  8,
	"מרחשון": 8,
	"כסלו":   9,
	"כסליו":  9,
	"טבת":    10,
	"שבט":    11,
	"אדר":    12,
	"אדרא":   12,
	"אדרא’":  12,
	"אדרראשון": 12,
	"אדרב":    13,
	"אדרב’":   13,
	"אדרשני":  13,
}

// NormalizeMonthName resolves a Hebrew month name, in any of its common
// spellings, to its month number (Nisan = 1, Adar II = 13).
func NormalizeMonthName(name string) (int, error) {
	cleaned := CleanText(name)
	cleaned = strings.ReplaceAll(cleaned, "באדר", "אדר")
	cleaned = strings.ReplaceAll(cleaned, " ", "")

	if num, ok := monthNumbers[cleaned]; ok {
		return num, nil
	}
	return 0, fmt.Errorf("%w: %q", shared.ErrUnknownMonthName, name)
}
