package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"

	"fashion-chatbot-be/internal/entity"
	"fashion-chatbot-be/internal/repository/contract"
	"fashion-chatbot-be/internal/repository/specification"
	"fashion-chatbot-be/internal/repository/unitofwork"
	"fashion-chatbot-be/pkg/events"
	"fashion-chatbot-be/pkg/payment/momo"

	"github.com/google/uuid"
)

type storeState struct {
	users    map[uuid.UUID]entity.User
	carts    map[uuid.UUID][]entity.CartLineItem
	turns    map[uuid.UUID][]entity.ChatTurn
	products map[uuid.UUID]entity.Product
	orders   map[uuid.UUID]entity.Order
}

func (s storeState) clone() storeState {
	out := storeState{
		users:    make(map[uuid.UUID]entity.User, len(s.users)),
		carts:    make(map[uuid.UUID][]entity.CartLineItem, len(s.carts)),
		turns:    make(map[uuid.UUID][]entity.ChatTurn, len(s.turns)),
		products: make(map[uuid.UUID]entity.Product, len(s.products)),
		orders:   make(map[uuid.UUID]entity.Order, len(s.orders)),
	}
	for k, v := range s.users {
		out.users[k] = v
	}
	for k, v := range s.carts {
		out.carts[k] = append([]entity.CartLineItem(nil), v...)
	}
	for k, v := range s.turns {
		out.turns[k] = append([]entity.ChatTurn(nil), v...)
	}
	for k, v := range s.products {
		out.products[k] = v
	}
	for k, v := range s.orders {
		out.orders[k] = v
	}
	return out
}

// fakeStore is an in-memory backing for the unit of work. Writes made inside
// a transaction are undone by Rollback.
type fakeStore struct {
	mu           sync.Mutex
	state        storeState
	productReads int
	orderErr     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{state: storeState{}.clone()}
}

func (f *fakeStore) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUoW{store: f}
}

func (f *fakeStore) addUser(u entity.User) entity.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u.Id == uuid.Nil {
		u.Id = uuid.New()
	}
	f.state.users[u.Id] = u
	return u
}

func (f *fakeStore) addProduct(p entity.Product) entity.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.Id == uuid.Nil {
		p.Id = uuid.New()
	}
	f.state.products[p.Id] = p
	return p
}

func (f *fakeStore) deleteProduct(id uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.state.products, id)
}

func (f *fakeStore) setCart(userId uuid.UUID, items ...entity.CartLineItem) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.carts[userId] = items
}

func (f *fakeStore) cart(userId uuid.UUID) []entity.CartLineItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.CartLineItem(nil), f.state.carts[userId]...)
}

func (f *fakeStore) transcript(userId uuid.UUID) []entity.ChatTurn {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.ChatTurn(nil), f.state.turns[userId]...)
}

func (f *fakeStore) orders() []entity.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.Order, 0, len(f.state.orders))
	for _, o := range f.state.orders {
		out = append(out, o)
	}
	return out
}

func (f *fakeStore) order(code string) (entity.Order, bool) {
	for _, o := range f.orders() {
		if o.OrderCode == code {
			return o, true
		}
	}
	return entity.Order{}, false
}

type fakeUoW struct {
	store    *fakeStore
	snapshot *storeState
}

func (u *fakeUoW) Begin(ctx context.Context) error {
	if u.snapshot != nil {
		return errors.New("transaction already started")
	}
	u.store.mu.Lock()
	snap := u.store.state.clone()
	u.store.mu.Unlock()
	u.snapshot = &snap
	return nil
}

func (u *fakeUoW) Commit() error {
	if u.snapshot == nil {
		return errors.New("no transaction to commit")
	}
	u.snapshot = nil
	return nil
}

func (u *fakeUoW) Rollback() error {
	if u.snapshot == nil {
		return nil
	}
	u.store.mu.Lock()
	u.store.state = *u.snapshot
	u.store.mu.Unlock()
	u.snapshot = nil
	return nil
}

func (u *fakeUoW) UserRepository() contract.UserRepository         { return fakeUserRepo{u.store} }
func (u *fakeUoW) CartRepository() contract.CartRepository         { return fakeCartRepo{u.store} }
func (u *fakeUoW) ChatTurnRepository() contract.ChatTurnRepository { return fakeTurnRepo{u.store} }
func (u *fakeUoW) ProductRepository() contract.ProductRepository   { return fakeProductRepo{u.store} }
func (u *fakeUoW) OrderRepository() contract.OrderRepository       { return fakeOrderRepo{u.store} }

type fakeUserRepo struct{ s *fakeStore }

func (r fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	*user = r.s.addUser(*user)
	return nil
}

func (r fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.state.users {
		if matchesUser(u, specs) {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

func matchesUser(u entity.User, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.ByID:
			if u.Id != sp.ID {
				return false
			}
		case specification.ByUsername:
			if u.Username != sp.Username {
				return false
			}
		}
	}
	return true
}

func (r fakeUserRepo) UpdatePreferences(ctx context.Context, id uuid.UUID, prefs entity.UserPreferences) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.state.users[id]
	if !ok {
		return nil
	}
	u.Preferences = prefs
	r.s.state.users[id] = u
	return nil
}

type fakeCartRepo struct{ s *fakeStore }

func (r fakeCartRepo) FindByUser(ctx context.Context, userId uuid.UUID) (*entity.Cart, error) {
	return &entity.Cart{UserId: userId, Items: r.s.cart(userId)}, nil
}

func (r fakeCartRepo) Replace(ctx context.Context, c *entity.Cart) error {
	r.s.setCart(c.UserId, append([]entity.CartLineItem(nil), c.Items...)...)
	return nil
}

func (r fakeCartRepo) Clear(ctx context.Context, userId uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.state.carts, userId)
	return nil
}

type fakeTurnRepo struct{ s *fakeStore }

func (r fakeTurnRepo) Append(ctx context.Context, turns ...entity.ChatTurn) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range turns {
		r.s.state.turns[t.UserId] = append(r.s.state.turns[t.UserId], t)
	}
	return nil
}

func (r fakeTurnRepo) Trim(ctx context.Context, userId uuid.UUID, keep int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	turns := r.s.state.turns[userId]
	if len(turns) > keep {
		r.s.state.turns[userId] = append([]entity.ChatTurn(nil), turns[len(turns)-keep:]...)
	}
	return nil
}

func (r fakeTurnRepo) FindByUser(ctx context.Context, userId uuid.UUID) ([]entity.ChatTurn, error) {
	return r.s.transcript(userId), nil
}

type fakeProductRepo struct{ s *fakeStore }

func (r fakeProductRepo) Create(ctx context.Context, p *entity.Product) error {
	*p = r.s.addProduct(*p)
	return nil
}

func (r fakeProductRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.productReads++
	for _, spec := range specs {
		if byId, ok := spec.(specification.ByID); ok {
			if p, found := r.s.state.products[byId.ID]; found {
				return &p, nil
			}
			return nil, nil
		}
	}
	return nil, nil
}

func (r fakeProductRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var filter entity.ProductFilter
	for _, spec := range specs {
		if m, ok := spec.(specification.MatchesProductFilter); ok {
			filter = m.Filter
		}
	}

	var out []*entity.Product
	for _, p := range r.s.state.products {
		if matchesProduct(p, filter) {
			p := p
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func matchesProduct(p entity.Product, f entity.ProductFilter) bool {
	if len(f.Categories) > 0 && !contains(f.Categories, p.Category) {
		return false
	}
	if len(f.Styles) > 0 && !anyOf(f.Styles, p.Styles) {
		return false
	}
	if len(f.Colors) > 0 && !anyOf(f.Colors, p.Colors) {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.InStockOnly && !p.InStock {
		return false
	}
	if f.Exclude != nil && p.Id == *f.Exclude {
		return false
	}
	return true
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func anyOf(want, have []string) bool {
	for _, w := range want {
		if contains(have, w) {
			return true
		}
	}
	return false
}

func (r fakeProductRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.state.products)), nil
}

type fakeOrderRepo struct{ s *fakeStore }

func (r fakeOrderRepo) Create(ctx context.Context, o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.orderErr != nil {
		return r.s.orderErr
	}
	for _, existing := range r.s.state.orders {
		if existing.OrderCode == o.OrderCode {
			return errors.New("duplicate order code")
		}
	}
	r.s.state.orders[o.Id] = *o
	return nil
}

func (r fakeOrderRepo) Update(ctx context.Context, o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.state.orders[o.Id] = *o
	return nil
}

func (r fakeOrderRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Order, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r fakeOrderRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*entity.Order
	for _, o := range r.s.state.orders {
		if matchesOrder(o, specs) {
			o := o
			out = append(out, &o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	for _, spec := range specs {
		if p, ok := spec.(specification.Pagination); ok && p.Limit > 0 && len(out) > p.Limit {
			out = out[:p.Limit]
		}
	}
	return out, nil
}

func matchesOrder(o entity.Order, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.ByID:
			if o.Id != sp.ID {
				return false
			}
		case specification.ByOrderCode:
			if o.OrderCode != sp.Code {
				return false
			}
		case specification.UserOwnedBy:
			if o.UserId != sp.UserID {
				return false
			}
		}
	}
	return true
}

type fakeGateway struct {
	mu          sync.Mutex
	partnerCode string
	createResp  *momo.CreateResponse
	createErr   error
	queryResp   *momo.QueryResponse
	queryErr    error
	validIPN    bool
	created     []string
}

func (g *fakeGateway) PartnerCode() string { return g.partnerCode }

func (g *fakeGateway) CreatePayment(ctx context.Context, orderId string, amount int64) (*momo.CreateResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.created = append(g.created, orderId)
	if g.createErr != nil {
		return nil, g.createErr
	}
	resp := *g.createResp
	resp.OrderId = orderId
	resp.Amount = momo.FlexInt(amount)
	return &resp, nil
}

func (g *fakeGateway) QueryStatus(ctx context.Context, orderId string) (*momo.QueryResponse, error) {
	if g.queryErr != nil {
		return nil, g.queryErr
	}
	return g.queryResp, nil
}

func (g *fakeGateway) VerifyIPN(n *momo.IPN) bool {
	return g.validIPN && n != nil
}

type recordingEvents struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recordingEvents) Publish(ctx context.Context, evt events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
	return nil
}

func (r *recordingEvents) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.EventType())
	}
	return out
}

type recordingQueue struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (q *recordingQueue) Publish(ctx context.Context, payload []byte) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.payloads = append(q.payloads, payload)
	return nil
}

func (q *recordingQueue) orderIds() []uuid.UUID {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]uuid.UUID, 0, len(q.payloads))
	for _, p := range q.payloads {
		var msg struct {
			OrderId uuid.UUID `json:"order_id"`
		}
		if json.Unmarshal(p, &msg) == nil {
			out = append(out, msg.OrderId)
		}
	}
	return out
}
