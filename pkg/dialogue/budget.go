package dialogue

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	DefaultBudgetMin int64 = 0
	DefaultBudgetMax int64 = 2000000
)

// PriceRange is a parsed budget. A nil bound is unconstrained.
type PriceRange struct {
	Min *int64
	Max *int64
}

const (
	amountPattern = `(\d+(?:[.,]\d+)?)`
	unitPattern   = `(triệu|tr|nghìn|k)`
	// unitEnd stops "k" in "không" or "tr" in "trước" from reading as a unit.
	unitEnd = `(?:$|[^\p{L}\p{N}])`
)

var (
	maxClause   = regexp.MustCompile(`(?:dưới|không quá|tối đa|max)\s+` + amountPattern + `\s*` + unitPattern + unitEnd)
	minClause   = regexp.MustCompile(`(?:trên|từ|hơn|min)\s+` + amountPattern + `\s*` + unitPattern + unitEnd)
	rangeClause = regexp.MustCompile(`từ\s+` + amountPattern + `\s*` + unitPattern + `?\s+đến\s+` + amountPattern + `\s*` + unitPattern + unitEnd)
)

// ParseBudget reads price constraints from a lower-cased utterance. An
// explicit "từ X đến Y" range overrides any single-bound clause. The boolean
// is false when no clause was found.
func ParseBudget(text string) (PriceRange, bool) {
	var out PriceRange
	found := false

	if m := maxClause.FindStringSubmatch(text); m != nil {
		if v, ok := toVND(m[1], m[2]); ok {
			out.Max = &v
			found = true
		}
	}
	if m := minClause.FindStringSubmatch(text); m != nil {
		if v, ok := toVND(m[1], m[2]); ok {
			out.Min = &v
			found = true
		}
	}
	if m := rangeClause.FindStringSubmatch(text); m != nil {
		lowUnit := m[2]
		if lowUnit == "" {
			lowUnit = m[4]
		}
		low, okLow := toVND(m[1], lowUnit)
		high, okHigh := toVND(m[3], m[4])
		if okLow && okHigh {
			out = PriceRange{Min: &low, Max: &high}
			found = true
		}
	}

	return out, found
}

func toVND(amount, unit string) (int64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(amount, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	multiplier := 1000.0
	if unit == "triệu" || unit == "tr" {
		multiplier = 1000000
	}
	return int64(v * multiplier), true
}
