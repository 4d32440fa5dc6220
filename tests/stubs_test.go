package tests

// In-memory repository stubs. Service tests run with DB() == nil so the
// transaction helper calls the body directly, exactly like the real flow
// minus the SQL.

import (
	"context"
	"sort"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"veloservice/internal/dto"
	"veloservice/internal/model"
	"veloservice/internal/repository"
)

// ── Products ──────────────────────────────────────────────────────────────────

type stubProductRepo struct {
	products map[uint]*model.Product
	seq      uint
	// findErr, when set, simulates an infrastructure failure on reads.
	findErr error
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uint]*model.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	r.seq++
	p.ID = r.seq
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uint) (*model.Product, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) FindOwned(_ context.Context, ids []uint, centerID uint) ([]model.Product, error) {
	var out []model.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok && p.ServiceCenterID == centerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) List(_ context.Context, _ dto.ProductFilter) ([]model.Product, int64, error) {
	var out []model.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) SoftDelete(_ context.Context, id uint) error {
	if p, ok := r.products[id]; ok {
		p.IsActive = false
	}
	return nil
}

func (r *stubProductRepo) UpdateStockTx(_ *gorm.DB, id uint, delta int) error {
	p, ok := r.products[id]
	if !ok || p.Stock+delta < 0 {
		return repository.ErrInsufficientStock
	}
	p.Stock += delta
	return nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// ── Components ────────────────────────────────────────────────────────────────

type stubComponentRepo struct {
	components map[uint]*model.Component
	seq        uint
}

func newStubComponentRepo() *stubComponentRepo {
	return &stubComponentRepo{components: make(map[uint]*model.Component)}
}

func (r *stubComponentRepo) Create(_ context.Context, c *model.Component) error {
	r.seq++
	c.ID = r.seq
	r.components[c.ID] = c
	return nil
}

func (r *stubComponentRepo) FindByID(_ context.Context, id uint) (*model.Component, error) {
	c, ok := r.components[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubComponentRepo) FindOwned(_ context.Context, ids []uint, centerID uint) ([]model.Component, error) {
	var out []model.Component
	for _, id := range ids {
		if c, ok := r.components[id]; ok && c.ServiceCenterID == centerID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubComponentRepo) List(_ context.Context, centerID uint, _ dto.ComponentFilter) ([]model.Component, int64, error) {
	var out []model.Component
	for _, c := range r.components {
		if c.ServiceCenterID == centerID {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubComponentRepo) Update(_ context.Context, c *model.Component) error {
	r.components[c.ID] = c
	return nil
}

func (r *stubComponentRepo) SoftDelete(_ context.Context, id uint) error {
	if c, ok := r.components[id]; ok {
		c.IsActive = false
	}
	return nil
}

func (r *stubComponentRepo) DB() *gorm.DB { return nil }

var _ repository.ComponentRepository = (*stubComponentRepo)(nil)

// ── Workshop services ─────────────────────────────────────────────────────────

type stubWorkshopRepo struct {
	services map[uint]*model.WorkshopService
	seq      uint
}

func newStubWorkshopRepo() *stubWorkshopRepo {
	return &stubWorkshopRepo{services: make(map[uint]*model.WorkshopService)}
}

func (r *stubWorkshopRepo) CreateTx(_ *gorm.DB, ws *model.WorkshopService) error {
	r.seq++
	ws.ID = r.seq
	for i := range ws.ComponentUsages {
		ws.ComponentUsages[i].WorkshopServiceID = ws.ID
	}
	r.services[ws.ID] = ws
	return nil
}

func (r *stubWorkshopRepo) FindByID(_ context.Context, id uint) (*model.WorkshopService, error) {
	ws, ok := r.services[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return ws, nil
}

func (r *stubWorkshopRepo) FindOwned(_ context.Context, ids []uint, centerID uint) ([]model.WorkshopService, error) {
	var out []model.WorkshopService
	for _, id := range ids {
		if ws, ok := r.services[id]; ok && ws.ServiceCenterID == centerID {
			out = append(out, *ws)
		}
	}
	return out, nil
}

func (r *stubWorkshopRepo) List(_ context.Context, _ dto.WorkshopServiceFilter) ([]model.WorkshopService, int64, error) {
	var out []model.WorkshopService
	for _, ws := range r.services {
		out = append(out, *ws)
	}
	return out, int64(len(out)), nil
}

func (r *stubWorkshopRepo) UpdateTx(_ *gorm.DB, ws *model.WorkshopService) error {
	r.services[ws.ID] = ws
	return nil
}

func (r *stubWorkshopRepo) ReplaceUsagesTx(_ *gorm.DB, serviceID uint, usages []model.ServiceComponent) error {
	ws, ok := r.services[serviceID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i := range usages {
		usages[i].WorkshopServiceID = serviceID
	}
	ws.ComponentUsages = usages
	return nil
}

func (r *stubWorkshopRepo) SoftDelete(_ context.Context, id uint) error {
	if ws, ok := r.services[id]; ok {
		ws.IsActive = false
	}
	return nil
}

func (r *stubWorkshopRepo) DB() *gorm.DB { return nil }

var _ repository.WorkshopServiceRepository = (*stubWorkshopRepo)(nil)

// ── Price lists ───────────────────────────────────────────────────────────────

type stubPriceListRepo struct {
	lists   map[uint]*model.PriceList
	seq     uint
	itemSeq uint
}

func newStubPriceListRepo() *stubPriceListRepo {
	return &stubPriceListRepo{lists: make(map[uint]*model.PriceList)}
}

func (r *stubPriceListRepo) CreateTx(_ *gorm.DB, pl *model.PriceList) error {
	r.seq++
	pl.ID = r.seq
	for i := range pl.Items {
		r.itemSeq++
		pl.Items[i].ID = r.itemSeq
		pl.Items[i].PriceListID = pl.ID
	}
	r.lists[pl.ID] = pl
	return nil
}

func (r *stubPriceListRepo) UpdateTx(_ *gorm.DB, pl *model.PriceList) error {
	existing, ok := r.lists[pl.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	items := existing.Items
	r.lists[pl.ID] = pl
	pl.Items = items
	return nil
}

func (r *stubPriceListRepo) ReplaceItemsTx(_ *gorm.DB, listID uint, items []model.PriceListItem) error {
	pl, ok := r.lists[listID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i := range items {
		r.itemSeq++
		items[i].ID = r.itemSeq
		items[i].PriceListID = listID
	}
	pl.Items = items
	return nil
}

func (r *stubPriceListRepo) ClearDefaultTx(_ *gorm.DB, centerID, exceptID uint) error {
	for _, pl := range r.lists {
		if pl.ServiceCenterID == centerID && pl.ID != exceptID {
			pl.IsDefault = false
		}
	}
	return nil
}

func (r *stubPriceListRepo) FindByID(_ context.Context, id uint) (*model.PriceList, error) {
	pl, ok := r.lists[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	sortItemsByName(pl)
	return pl, nil
}

func (r *stubPriceListRepo) FindDefault(_ context.Context, centerID uint) (*model.PriceList, error) {
	for _, pl := range r.lists {
		if pl.ServiceCenterID == centerID && pl.IsDefault {
			sortItemsByName(pl)
			return pl, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// sortItemsByName mirrors the item_name ASC preload order of the real repo.
func sortItemsByName(pl *model.PriceList) {
	sort.SliceStable(pl.Items, func(i, j int) bool {
		return pl.Items[i].ItemName < pl.Items[j].ItemName
	})
}

func (r *stubPriceListRepo) List(_ context.Context, centerID uint, _ dto.PriceListFilter) ([]model.PriceList, int64, error) {
	var out []model.PriceList
	for _, pl := range r.lists {
		if pl.ServiceCenterID == centerID {
			out = append(out, *pl)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubPriceListRepo) Delete(_ context.Context, id uint) error {
	delete(r.lists, id)
	return nil
}

func (r *stubPriceListRepo) DB() *gorm.DB { return nil }

var _ repository.PriceListRepository = (*stubPriceListRepo)(nil)

// ── Carts ─────────────────────────────────────────────────────────────────────

type stubCartRepo struct {
	carts    map[uint]*model.Cart // keyed by user id
	itemSeq  uint
	cartSeq  uint
	products *stubProductRepo
}

func newStubCartRepo(products *stubProductRepo) *stubCartRepo {
	return &stubCartRepo{carts: make(map[uint]*model.Cart), products: products}
}

func (r *stubCartRepo) FindOrCreateByUser(_ context.Context, userID uint) (*model.Cart, error) {
	if cart, ok := r.carts[userID]; ok {
		// refresh product snapshots the way Preload would
		for i := range cart.Items {
			if p, ok := r.products.products[cart.Items[i].ProductID]; ok {
				cart.Items[i].Product = p
			}
		}
		return cart, nil
	}
	r.cartSeq++
	cart := &model.Cart{ID: r.cartSeq, UserID: userID}
	r.carts[userID] = cart
	return cart, nil
}

func (r *stubCartRepo) FindItem(_ context.Context, itemID uint) (*model.CartItem, error) {
	for _, cart := range r.carts {
		for i := range cart.Items {
			if cart.Items[i].ID == itemID {
				return &cart.Items[i], nil
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCartRepo) FindItemByProduct(_ context.Context, cartID, productID uint) (*model.CartItem, error) {
	for _, cart := range r.carts {
		if cart.ID != cartID {
			continue
		}
		for i := range cart.Items {
			if cart.Items[i].ProductID == productID {
				return &cart.Items[i], nil
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCartRepo) AddItem(_ context.Context, item *model.CartItem) error {
	for _, cart := range r.carts {
		if cart.ID == item.CartID {
			r.itemSeq++
			item.ID = r.itemSeq
			if p, ok := r.products.products[item.ProductID]; ok {
				item.Product = p
			}
			cart.Items = append(cart.Items, *item)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubCartRepo) UpdateItem(_ context.Context, item *model.CartItem) error {
	for _, cart := range r.carts {
		for i := range cart.Items {
			if cart.Items[i].ID == item.ID {
				cart.Items[i].Quantity = item.Quantity
				return nil
			}
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubCartRepo) DeleteItem(_ context.Context, itemID uint) error {
	for _, cart := range r.carts {
		for i := range cart.Items {
			if cart.Items[i].ID == itemID {
				cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
				return nil
			}
		}
	}
	return nil
}

func (r *stubCartRepo) Clear(_ context.Context, cartID uint) error {
	for _, cart := range r.carts {
		if cart.ID == cartID {
			cart.Items = nil
		}
	}
	return nil
}

func (r *stubCartRepo) ClearTx(tx *gorm.DB, cartID uint) error {
	return r.Clear(context.Background(), cartID)
}

func (r *stubCartRepo) DB() *gorm.DB { return nil }

var _ repository.CartRepository = (*stubCartRepo)(nil)

// ── Orders ────────────────────────────────────────────────────────────────────

type stubOrderRepo struct {
	orders map[uint]*model.Order
	seq    uint
	// afterCreate, when set, runs right after the order row is written.
	// Tests use it to mutate stock mid-transaction, like a concurrent
	// checkout committing first.
	afterCreate func()
}

func newStubOrderRepo() *stubOrderRepo { return &stubOrderRepo{orders: make(map[uint]*model.Order)} }

func (r *stubOrderRepo) CreateTx(_ *gorm.DB, o *model.Order) error {
	r.seq++
	o.ID = r.seq
	for i := range o.Items {
		o.Items[i].ID = uint(i + 1)
		o.Items[i].OrderID = o.ID
	}
	r.orders[o.ID] = o
	if r.afterCreate != nil {
		r.afterCreate()
	}
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id uint) (*model.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (r *stubOrderRepo) ListByUser(_ context.Context, userID uint, _ dto.OrderFilter) ([]model.Order, int64, error) {
	var out []model.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubOrderRepo) ListByCenter(_ context.Context, centerID uint, _ dto.OrderFilter) ([]model.Order, int64, error) {
	var out []model.Order
	for _, o := range r.orders {
		if o.ServiceCenterID == centerID {
			out = append(out, *o)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, id uint, status string) error {
	o, ok := r.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	o.Status = status
	return nil
}

func (r *stubOrderRepo) DB() *gorm.DB { return nil }

var _ repository.OrderRepository = (*stubOrderRepo)(nil)

// ── Users / service centers ───────────────────────────────────────────────────

type stubUserRepo struct {
	users map[uint]*model.User
	seq   uint
}

func newStubUserRepo() *stubUserRepo { return &stubUserRepo{users: make(map[uint]*model.User)} }

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	r.seq++
	u.ID = r.seq
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uint) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

type stubCenterRepo struct {
	centers map[uint]*model.ServiceCenter
	seq     uint
}

func newStubCenterRepo() *stubCenterRepo {
	return &stubCenterRepo{centers: make(map[uint]*model.ServiceCenter)}
}

func (r *stubCenterRepo) Create(_ context.Context, sc *model.ServiceCenter) error {
	r.seq++
	sc.ID = r.seq
	r.centers[sc.ID] = sc
	return nil
}

func (r *stubCenterRepo) FindByID(_ context.Context, id uint) (*model.ServiceCenter, error) {
	sc, ok := r.centers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return sc, nil
}

func (r *stubCenterRepo) FindByEmail(_ context.Context, email string) (*model.ServiceCenter, error) {
	for _, sc := range r.centers {
		if sc.Email == email {
			return sc, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCenterRepo) List(_ context.Context, _ dto.ServiceCenterFilter) ([]model.ServiceCenter, int64, error) {
	var out []model.ServiceCenter
	for _, sc := range r.centers {
		out = append(out, *sc)
	}
	return out, int64(len(out)), nil
}

func (r *stubCenterRepo) Update(_ context.Context, sc *model.ServiceCenter) error {
	r.centers[sc.ID] = sc
	return nil
}

var _ repository.ServiceCenterRepository = (*stubCenterRepo)(nil)

// ── Service requests ──────────────────────────────────────────────────────────

type stubRequestRepo struct {
	requests map[uint]*model.ServiceRequest
	seq      uint
}

func newStubRequestRepo() *stubRequestRepo {
	return &stubRequestRepo{requests: make(map[uint]*model.ServiceRequest)}
}

func (r *stubRequestRepo) Create(_ context.Context, sr *model.ServiceRequest) error {
	r.seq++
	sr.ID = r.seq
	r.requests[sr.ID] = sr
	return nil
}

func (r *stubRequestRepo) FindByID(_ context.Context, id uint) (*model.ServiceRequest, error) {
	sr, ok := r.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return sr, nil
}

func (r *stubRequestRepo) ListByUser(_ context.Context, userID uint, _ dto.ServiceRequestFilter) ([]model.ServiceRequest, int64, error) {
	var out []model.ServiceRequest
	for _, sr := range r.requests {
		if sr.UserID == userID {
			out = append(out, *sr)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubRequestRepo) ListByCenter(_ context.Context, centerID uint, _ dto.ServiceRequestFilter) ([]model.ServiceRequest, int64, error) {
	var out []model.ServiceRequest
	for _, sr := range r.requests {
		if sr.ServiceCenterID == centerID {
			out = append(out, *sr)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubRequestRepo) Update(_ context.Context, sr *model.ServiceRequest) error {
	r.requests[sr.ID] = sr
	return nil
}

var _ repository.ServiceRequestRepository = (*stubRequestRepo)(nil)

// ── Warranties ────────────────────────────────────────────────────────────────

type stubWarrantyRepo struct {
	warranties map[uint]*model.RepairWarranty
	seq        uint
}

func newStubWarrantyRepo() *stubWarrantyRepo {
	return &stubWarrantyRepo{warranties: make(map[uint]*model.RepairWarranty)}
}

func (r *stubWarrantyRepo) Create(_ context.Context, w *model.RepairWarranty) error {
	r.seq++
	w.ID = r.seq
	r.warranties[w.ID] = w
	return nil
}

func (r *stubWarrantyRepo) FindByID(_ context.Context, id uint) (*model.RepairWarranty, error) {
	w, ok := r.warranties[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return w, nil
}

func (r *stubWarrantyRepo) ListByCenter(_ context.Context, centerID uint, _ dto.WarrantyFilter) ([]model.RepairWarranty, int64, error) {
	var out []model.RepairWarranty
	for _, w := range r.warranties {
		if w.ServiceCenterID == centerID {
			out = append(out, *w)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubWarrantyRepo) Update(_ context.Context, w *model.RepairWarranty) error {
	r.warranties[w.ID] = w
	return nil
}

func (r *stubWarrantyRepo) Delete(_ context.Context, id uint) error {
	delete(r.warranties, id)
	return nil
}

var _ repository.WarrantyRepository = (*stubWarrantyRepo)(nil)

// ── Reviews ───────────────────────────────────────────────────────────────────

type stubReviewRepo struct {
	reviews map[uint]*model.Review
	seq     uint
}

func newStubReviewRepo() *stubReviewRepo {
	return &stubReviewRepo{reviews: make(map[uint]*model.Review)}
}

func (r *stubReviewRepo) Create(_ context.Context, rv *model.Review) error {
	r.seq++
	rv.ID = r.seq
	r.reviews[rv.ID] = rv
	return nil
}

func (r *stubReviewRepo) FindByID(_ context.Context, id uint) (*model.Review, error) {
	rv, ok := r.reviews[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return rv, nil
}

func (r *stubReviewRepo) FindByUserAndCenter(_ context.Context, userID, centerID uint) (*model.Review, error) {
	for _, rv := range r.reviews {
		if rv.UserID == userID && rv.ServiceCenterID == centerID {
			return rv, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubReviewRepo) ListByCenter(_ context.Context, centerID uint) ([]model.Review, float64, error) {
	var out []model.Review
	sum := 0
	for _, rv := range r.reviews {
		if rv.ServiceCenterID == centerID {
			out = append(out, *rv)
			sum += rv.Rating
		}
	}
	avg := 0.0
	if len(out) > 0 {
		avg = float64(sum) / float64(len(out))
	}
	return out, avg, nil
}

func (r *stubReviewRepo) Update(_ context.Context, rv *model.Review) error {
	r.reviews[rv.ID] = rv
	return nil
}

func (r *stubReviewRepo) Delete(_ context.Context, id uint) error {
	delete(r.reviews, id)
	return nil
}

var _ repository.ReviewRepository = (*stubReviewRepo)(nil)

// ── Seed helpers ──────────────────────────────────────────────────────────────

func seedUser(r *stubUserRepo) *model.User {
	u := &model.User{
		Email:        gofakeit.Email(),
		PasswordHash: "x",
		FirstName:    gofakeit.FirstName(),
		LastName:     gofakeit.LastName(),
	}
	_ = r.Create(context.Background(), u)
	return u
}

func seedProduct(r *stubProductRepo, centerID uint, name string, price float64, stock int) *model.Product {
	p := &model.Product{
		ServiceCenterID: centerID,
		Name:            name,
		Category:        "parts",
		Price:           decimal.NewFromFloat(price),
		Stock:           stock,
		IsActive:        true,
	}
	_ = r.Create(context.Background(), p)
	return p
}

func seedComponent(r *stubComponentRepo, centerID uint, name string, price float64) *model.Component {
	c := &model.Component{
		ServiceCenterID: centerID,
		Name:            name,
		Manufacturer:    "Shimano",
		Unit:            "pcs",
		UnitPrice:       decimal.NewFromFloat(price),
		Stock:           10,
		IsActive:        true,
	}
	_ = r.Create(context.Background(), c)
	return c
}

func seedWorkshopService(r *stubWorkshopRepo, centerID uint, name string, price float64) *model.WorkshopService {
	duration := 45
	desc := "Full check of drivetrain and brakes"
	ws := &model.WorkshopService{
		ServiceCenterID: centerID,
		Name:            name,
		Description:     &desc,
		BasePrice:       decimal.NewFromFloat(price),
		DurationMinutes: &duration,
		IsActive:        true,
	}
	_ = r.CreateTx(nil, ws)
	return ws
}
