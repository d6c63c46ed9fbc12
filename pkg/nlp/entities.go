package nlp

import "strings"

type EntityCategory string

const (
	EntityProductType EntityCategory = "productType"
	EntityColor       EntityCategory = "color"
	EntitySize        EntityCategory = "size"
	EntityOccasion    EntityCategory = "occasion"
	EntityGender      EntityCategory = "gender"
)

var vocabulary = map[EntityCategory][]string{
	EntityProductType: {"áo", "quần", "váy", "giày", "mũ", "túi", "đầm", "kính", "dép", "áo khoác"},
	EntityColor:       {"đỏ", "xanh", "vàng", "đen", "trắng", "hồng", "tím", "cam", "xám", "nâu"},
	EntitySize:        {"s", "m", "l", "xl", "xxl", "38", "39", "40", "41", "42"},
	EntityOccasion:    {"đi chơi", "đi làm", "đi biển", "đi tiệc", "sự kiện", "hàng ngày", "dạo phố"},
	EntityGender:      {"nam", "nữ", "unisex"},
}

// Categories lists every entity category in a stable order.
func Categories() []EntityCategory {
	return []EntityCategory{EntityProductType, EntityColor, EntitySize, EntityOccasion, EntityGender}
}

// EntitySet maps a category to the vocabulary literals found in an utterance.
// Values keep vocabulary order; each literal appears at most once.
type EntitySet map[EntityCategory][]string

func (s EntitySet) Get(category EntityCategory) []string {
	return s[category]
}

func (s EntitySet) Has(category EntityCategory, literal string) bool {
	for _, v := range s[category] {
		if v == literal {
			return true
		}
	}
	return false
}

func (s EntitySet) First(category EntityCategory) (string, bool) {
	values := s[category]
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// Extract runs a literal substring match per category. Every category is
// present in the result, possibly with an empty slice.
func Extract(text string) EntitySet {
	normalized := Normalize(text)
	set := make(EntitySet, len(vocabulary))
	for _, category := range Categories() {
		matches := []string{}
		if normalized != "" {
			for _, literal := range vocabulary[category] {
				if strings.Contains(normalized, literal) {
					matches = append(matches, literal)
				}
			}
		}
		set[category] = matches
	}
	return set
}
