package dialogue

import (
	"fmt"
	"strconv"
	"strings"

	"fashion-chatbot-be/internal/entity"
)

const (
	msgGreeting        = "Xin chào %s! Tôi có thể giúp gì cho bạn về thời trang hôm nay?"
	msgSearchFound     = "Tôi đã tìm thấy một số %s phù hợp với yêu cầu của bạn:"
	msgSearchEmpty     = "Xin lỗi, tôi không tìm thấy sản phẩm nào phù hợp với yêu cầu của bạn. Bạn có thể mô tả lại chi tiết hơn được không?"
	msgStyleFormal     = "Với phong cách công sở, bạn có thể tham khảo những outfit sau đây:"
	msgStyleCasual     = "Với phong cách đời thường, tôi gợi ý cho bạn:"
	msgStyleSport      = "Với phong cách thể thao, bạn có thể tham khảo:"
	msgStyleGeneral    = "Dưới đây là một số gợi ý phong cách thời trang cho bạn:"
	msgStyleEmpty      = "Hiện tại tôi chưa có sản phẩm phù hợp với phong cách này. Bạn thử mô tả phong cách khác nhé!"
	msgSizeGuide       = "Bảng size tham khảo: S (45-52kg), M (52-60kg), L (60-68kg), XL (68-75kg), XXL (trên 75kg). Giày: size 38-42 theo chiều dài bàn chân."
	msgSizeProfile     = " Theo hồ sơ của bạn, size thường mặc là %s."
	msgPriceRange      = "Các %s hiện có giá từ %s đến %s."
	msgPriceGeneral    = "Sản phẩm của chúng tôi có giá từ vài trăm nghìn đến vài triệu đồng. Bạn quan tâm đến loại sản phẩm nào để tôi báo giá cụ thể?"
	msgOccasionFound   = "Đây là một số gợi ý phù hợp cho dịp của bạn:"
	msgOccasionAsk     = "Bạn định mặc vào dịp nào? Ví dụ: đi làm, đi chơi, đi tiệc, đi biển hay dạo phố."
	msgMaterial        = "Chúng tôi sử dụng nhiều chất liệu như cotton, len, lụa, da và vải tổng hợp. Bạn có thể xem chất liệu cụ thể trong chi tiết từng sản phẩm."
	msgRecommendations = "Dựa trên sở thích của bạn, đây là một số sản phẩm tôi đề xuất:"
	msgRecommendEmpty  = "Hiện tại tôi chưa có đề xuất phù hợp. Bạn hãy cho tôi biết thêm về phong cách yêu thích nhé!"
	msgShoppingCart    = "Bạn có thể xem giỏ hàng và tiến hành thanh toán bằng COD hoặc ví MoMo."
	msgGoodbye         = "Cảm ơn bạn đã ghé thăm! Hẹn gặp lại bạn lần sau."
	msgFallback        = "Tôi có thể giúp bạn tìm kiếm sản phẩm thời trang, tư vấn phong cách, hoặc gợi ý các outfit phù hợp. Bạn cần hỗ trợ gì về thời trang?"
)

var categoryNames = map[string]string{
	entity.CategoryTops:        "áo",
	entity.CategoryBottoms:     "quần",
	entity.CategoryDresses:     "váy/đầm",
	entity.CategoryOuterwear:   "áo khoác",
	entity.CategoryShoes:       "giày",
	entity.CategoryAccessories: "phụ kiện",
}

func categoryName(filter entity.ProductFilter) string {
	if len(filter.Categories) == 1 {
		if name, ok := categoryNames[filter.Categories[0]]; ok {
			return name
		}
	}
	return "sản phẩm"
}

func styleMessage(bucket StyleBucket) string {
	switch bucket {
	case StyleFormal:
		return msgStyleFormal
	case StyleCasual:
		return msgStyleCasual
	case StyleSport:
		return msgStyleSport
	default:
		return msgStyleGeneral
	}
}

// FormatVND renders an amount with dot thousand separators, e.g. 450.000đ.
func FormatVND(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return fmt.Sprintf("%s%sđ", sign, b.String())
}
