package nlp

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

type Intent string

const (
	IntentGreeting        Intent = "greeting"
	IntentProductSearch   Intent = "productSearch"
	IntentSizeAdvice      Intent = "sizeAdvice"
	IntentStyleAdvice     Intent = "styleAdvice"
	IntentPriceQuery      Intent = "priceQuery"
	IntentOccasionAdvice  Intent = "occasionAdvice"
	IntentMaterialInfo    Intent = "materialInfo"
	IntentRecommendations Intent = "recommendations"
	IntentShoppingCart    Intent = "shoppingCart"
	IntentGoodbye         Intent = "goodbye"
	IntentUnknown         Intent = "unknown"
)

// confidenceNormalizer turns a keyword-match count into a 0..1 confidence.
const confidenceNormalizer = 5.0

type intentKeywords struct {
	intent   Intent
	keywords []string
}

// Declaration order is the tie-break priority.
var intentTable = []intentKeywords{
	{IntentGreeting, []string{"xin chào", "chào", "hi", "hello", "hey"}},
	{IntentProductSearch, []string{"tìm", "kiếm", "muốn mua", "cần", "có", "tìm kiếm"}},
	{IntentSizeAdvice, []string{"size", "kích cỡ", "số", "cỡ", "vừa"}},
	{IntentStyleAdvice, []string{"phối đồ", "mix", "phong cách", "style", "mặc với", "hợp với"}},
	{IntentPriceQuery, []string{"giá", "bao nhiêu", "tiền"}},
	{IntentOccasionAdvice, []string{"mặc khi nào", "dịp", "sự kiện", "đi chơi", "đi làm", "đi tiệc"}},
	{IntentMaterialInfo, []string{"chất liệu", "vải", "cotton", "len", "da", "vải gì"}},
	{IntentRecommendations, []string{"gợi ý", "đề xuất", "recommend", "giới thiệu"}},
	{IntentShoppingCart, []string{"giỏ hàng", "cart", "thanh toán", "mua"}},
	{IntentGoodbye, []string{"tạm biệt", "bye", "gặp lại sau", "hẹn gặp lại"}},
}

type IntentResult struct {
	Intent     Intent  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

// Classify scores every intent by the number of its keyword phrases present in
// the text. Only a strictly higher score replaces the current best, so ties
// resolve to the intent declared first.
func Classify(text string) IntentResult {
	normalized := Normalize(text)
	if normalized == "" {
		return IntentResult{Intent: IntentUnknown}
	}

	best := IntentUnknown
	bestScore := 0
	for _, entry := range intentTable {
		score := 0
		for _, kw := range entry.keywords {
			if strings.Contains(normalized, kw) {
				score++
			}
		}
		if score > bestScore {
			best = entry.intent
			bestScore = score
		}
	}

	if bestScore == 0 {
		return IntentResult{Intent: IntentUnknown}
	}

	confidence := float64(bestScore) / confidenceNormalizer
	if confidence > 1 {
		confidence = 1
	}
	return IntentResult{Intent: best, Confidence: confidence}
}

// Normalize composes Vietnamese diacritics (NFC), lower-cases and trims the
// utterance so keyword tables match decomposed client input too.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(text)))
}

// Intents returns the declared intents in priority order.
func Intents() []Intent {
	out := make([]Intent, 0, len(intentTable))
	for _, entry := range intentTable {
		out = append(out, entry.intent)
	}
	return out
}
