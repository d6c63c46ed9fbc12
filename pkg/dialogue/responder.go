package dialogue

import (
	"context"
	"fmt"

	"fashion-chatbot-be/internal/entity"
	"fashion-chatbot-be/pkg/nlp"
)

const (
	ActionViewProducts = "view_products"
	ActionOpenCart     = "open_cart"
)

// Searcher is the read-only catalog query the responder depends on.
type Searcher interface {
	SearchProducts(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error)
}

type Action struct {
	Type  string `json:"type"`
	Label string `json:"label"`
}

type Request struct {
	Intent   nlp.Intent
	Entities nlp.EntitySet
	Text     string
	User     *entity.User
}

type Response struct {
	Message  string            `json:"message"`
	Products []*entity.Product `json:"products"`
	Actions  []Action          `json:"actions"`
}

type Responder struct {
	catalog Searcher
}

func NewResponder(catalog Searcher) *Responder {
	return &Responder{catalog: catalog}
}

// Respond produces the reply for a classified turn. Catalog errors are
// returned to the caller; nothing is written.
func (r *Responder) Respond(ctx context.Context, req Request) (*Response, error) {
	text := nlp.Normalize(req.Text)
	entities := req.Entities
	if entities == nil {
		entities = nlp.Extract(text)
	}

	var prefs *entity.UserPreferences
	if req.User != nil {
		prefs = &req.User.Preferences
	}

	switch req.Intent {
	case nlp.IntentGreeting:
		return reply(fmt.Sprintf(msgGreeting, req.User.DisplayName())), nil
	case nlp.IntentProductSearch:
		return r.productSearch(ctx, entities, text, prefs)
	case nlp.IntentStyleAdvice:
		return r.styleAdvice(ctx, entities, text, prefs)
	case nlp.IntentSizeAdvice:
		msg := msgSizeGuide
		if prefs != nil && prefs.Size != "" {
			msg += fmt.Sprintf(msgSizeProfile, prefs.Size)
		}
		return reply(msg), nil
	case nlp.IntentPriceQuery:
		return r.priceQuery(ctx, entities, text, prefs)
	case nlp.IntentOccasionAdvice:
		return r.occasionAdvice(ctx, entities, text, prefs)
	case nlp.IntentMaterialInfo:
		return reply(msgMaterial), nil
	case nlp.IntentRecommendations:
		return r.recommendations(ctx, prefs)
	case nlp.IntentShoppingCart:
		res := reply(msgShoppingCart)
		res.Actions = append(res.Actions, Action{Type: ActionOpenCart, Label: "Xem giỏ hàng"})
		return res, nil
	case nlp.IntentGoodbye:
		return reply(msgGoodbye), nil
	default:
		return reply(msgFallback), nil
	}
}

func reply(message string) *Response {
	return &Response{Message: message, Products: []*entity.Product{}, Actions: []Action{}}
}

func (r *Responder) productSearch(ctx context.Context, entities nlp.EntitySet, text string, prefs *entity.UserPreferences) (*Response, error) {
	filter := BuildFilter(entities, text, prefs)
	products, err := r.catalog.SearchProducts(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return reply(msgSearchEmpty), nil
	}

	res := reply(fmt.Sprintf(msgSearchFound, categoryName(filter)))
	res.Products = products
	res.Actions = append(res.Actions, Action{Type: ActionViewProducts, Label: "Xem sản phẩm"})
	return res, nil
}

func (r *Responder) styleAdvice(ctx context.Context, entities nlp.EntitySet, text string, prefs *entity.UserPreferences) (*Response, error) {
	bucket := DetectStyleBucket(text)
	filter := BuildFilter(entities, text, prefs)
	filter.Styles = []string{styleTag(bucket)}

	products, err := r.catalog.SearchProducts(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return reply(msgStyleEmpty), nil
	}

	res := reply(styleMessage(bucket))
	res.Products = products
	res.Actions = append(res.Actions, Action{Type: ActionViewProducts, Label: "Xem sản phẩm"})
	return res, nil
}

func (r *Responder) priceQuery(ctx context.Context, entities nlp.EntitySet, text string, prefs *entity.UserPreferences) (*Response, error) {
	c, ok := category(entities)
	if !ok {
		return reply(msgPriceGeneral), nil
	}

	filter := entity.ProductFilter{Categories: []string{c}, InStockOnly: true, Limit: SearchLimit}
	if budget, found := ParseBudget(text); found {
		filter.MinPrice, filter.MaxPrice = budget.Min, budget.Max
	}
	products, err := r.catalog.SearchProducts(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return reply(msgSearchEmpty), nil
	}

	low, high := products[0].Price, products[0].Price
	for _, p := range products[1:] {
		if p.Price < low {
			low = p.Price
		}
		if p.Price > high {
			high = p.Price
		}
	}

	res := reply(fmt.Sprintf(msgPriceRange, categoryName(filter), FormatVND(low), FormatVND(high)))
	res.Products = products
	res.Actions = append(res.Actions, Action{Type: ActionViewProducts, Label: "Xem sản phẩm"})
	return res, nil
}

func (r *Responder) occasionAdvice(ctx context.Context, entities nlp.EntitySet, text string, prefs *entity.UserPreferences) (*Response, error) {
	filter := BuildFilter(entities, text, prefs)
	if len(filter.Occasions) == 0 {
		return reply(msgOccasionAsk), nil
	}

	products, err := r.catalog.SearchProducts(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return reply(msgSearchEmpty), nil
	}

	res := reply(msgOccasionFound)
	res.Products = products
	res.Actions = append(res.Actions, Action{Type: ActionViewProducts, Label: "Xem sản phẩm"})
	return res, nil
}

func (r *Responder) recommendations(ctx context.Context, prefs *entity.UserPreferences) (*Response, error) {
	filter := entity.ProductFilter{InStockOnly: true, Limit: SearchLimit}
	if prefs != nil {
		filter.Styles = prefs.PreferredStyles
		filter.Colors = prefs.FavoriteColors
		if prefs.Budget != nil {
			min, max := prefs.Budget.Min, prefs.Budget.Max
			filter.MinPrice, filter.MaxPrice = &min, &max
		}
	}

	products, err := r.catalog.SearchProducts(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return reply(msgRecommendEmpty), nil
	}

	res := reply(msgRecommendations)
	res.Products = products
	res.Actions = append(res.Actions, Action{Type: ActionViewProducts, Label: "Xem sản phẩm"})
	return res, nil
}
