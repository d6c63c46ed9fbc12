package dialogue

import (
	"strings"
	"unicode"

	"fashion-chatbot-be/internal/entity"
	"fashion-chatbot-be/pkg/nlp"
)

const SearchLimit = 6

var productTypeCategories = map[string]string{
	"áo":       entity.CategoryTops,
	"quần":     entity.CategoryBottoms,
	"váy":      entity.CategoryDresses,
	"đầm":      entity.CategoryDresses,
	"áo khoác": entity.CategoryOuterwear,
	"giày":     entity.CategoryShoes,
	"dép":      entity.CategoryShoes,
	"mũ":       entity.CategoryAccessories,
	"túi":      entity.CategoryAccessories,
	"kính":     entity.CategoryAccessories,
}

var occasionTags = map[string]string{
	"đi chơi":   "casual",
	"đi làm":    "work",
	"đi biển":   "beach",
	"đi tiệc":   "party",
	"sự kiện":   "formal",
	"hàng ngày": "casual",
	"dạo phố":   "casual",
}

var genderTags = map[string]string{
	"nam":    "men",
	"nữ":     "women",
	"unisex": "unisex",
}

type StyleBucket string

const (
	StyleFormal  StyleBucket = "formal"
	StyleCasual  StyleBucket = "casual"
	StyleSport   StyleBucket = "sport"
	StyleGeneral StyleBucket = ""
)

var styleBucketKeywords = []struct {
	bucket   StyleBucket
	keywords []string
}{
	{StyleFormal, []string{"công sở", "văn phòng", "formal", "business"}},
	{StyleCasual, []string{"casual", "đời thường", "hàng ngày"}},
	{StyleSport, []string{"sport", "thể thao", "active"}},
}

// styleTag is the catalog style value queried for a bucket.
func styleTag(bucket StyleBucket) string {
	if bucket == StyleGeneral {
		return string(StyleCasual)
	}
	return string(bucket)
}

// DetectStyleBucket returns the first bucket whose keywords occur in text, or
// StyleGeneral.
func DetectStyleBucket(text string) StyleBucket {
	for _, entry := range styleBucketKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(text, kw) {
				return entry.bucket
			}
		}
	}
	return StyleGeneral
}

// category picks the most specific product type literal, so "áo khoác" wins
// over the "áo" it contains.
func category(entities nlp.EntitySet) (string, bool) {
	best := ""
	for _, literal := range entities.Get(nlp.EntityProductType) {
		if _, ok := productTypeCategories[literal]; ok && len(literal) > len(best) {
			best = literal
		}
	}
	if best == "" {
		return "", false
	}
	return productTypeCategories[best], true
}

func mapped(values []string, table map[string]string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, v := range values {
		tag, ok := table[v]
		if !ok || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

// BuildFilter turns extracted entities and the utterance's budget into a
// catalog query. Without a budget clause the profile budget applies, else the
// default range.
func BuildFilter(entities nlp.EntitySet, text string, profile *entity.UserPreferences) entity.ProductFilter {
	filter := entity.ProductFilter{InStockOnly: true, Limit: SearchLimit}

	if c, ok := category(entities); ok {
		filter.Categories = []string{c}
	}
	filter.Colors = append([]string{}, entities.Get(nlp.EntityColor)...)
	filter.Sizes = standaloneSizes(entities.Get(nlp.EntitySize), text)
	filter.Occasions = mapped(entities.Get(nlp.EntityOccasion), occasionTags)
	filter.Genders = mapped(entities.Get(nlp.EntityGender), genderTags)

	if budget, ok := ParseBudget(text); ok {
		filter.MinPrice = budget.Min
		filter.MaxPrice = budget.Max
	} else {
		min, max := DefaultBudgetMin, DefaultBudgetMax
		if profile != nil && profile.Budget != nil {
			min, max = profile.Budget.Min, profile.Budget.Max
		}
		filter.MinPrice = &min
		filter.MaxPrice = &max
	}

	return filter
}

// standaloneSizes keeps the size literals that appear as a whole word of
// text. Single letters like "m" otherwise match inside "tìm" or "mua".
func standaloneSizes(sizes []string, text string) []string {
	if len(sizes) == 0 {
		return nil
	}
	words := map[string]bool{}
	for _, w := range strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		words[w] = true
	}

	var out []string
	for _, s := range sizes {
		if words[s] {
			out = append(out, strings.ToUpper(s))
		}
	}
	return out
}
