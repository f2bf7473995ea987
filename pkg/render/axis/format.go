package axis

import (
	"math"
	"strconv"
)

var siPrefixes = []struct {
	exp    int
	symbol string
}{
	{12, "T"},
	{9, "G"},
	{6, "M"},
	{3, "k"},
	{0, ""},
	{-3, "m"},
	{-6, "µ"},
}

// FormatSI formats v with at most three significant digits and an SI
// prefix: 1500 → "1.5k", 2e6 → "2M", 20 → "20", 0 → "0".
func FormatSI(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "∞"
	case math.IsInf(v, -1):
		return "-∞"
	case v == 0:
		return "0"
	}

	// Round first so 999_950 becomes 1M rather than 1000k.
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'g', 3, 64), 64)
	abs := math.Abs(r)
	for _, p := range siPrefixes {
		scaled := abs / math.Pow(10, float64(p.exp))
		if scaled < 1 {
			continue
		}
		return strconv.FormatFloat(math.Copysign(scaled, r), 'g', 3, 64) + p.symbol
	}
	return strconv.FormatFloat(r, 'g', 3, 64)
}
