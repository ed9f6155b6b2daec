package application

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ecofinds/ecofinds-api/internal/domain/entity"
	repo "github.com/ecofinds/ecofinds-api/internal/domain/repository"
)

// In-memory fakes shared by the service tests.

type mockUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*entity.User // by id
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*entity.User)}
}

func (m *mockUserRepo) nextID() string {
	m.seq++
	return fmt.Sprintf("user-%d", m.seq)
}

func (m *mockUserRepo) Create(ctx context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ex := range m.users {
		if ex.Username == u.Username {
			return repo.ErrUsernameTaken
		}
		if ex.Email == u.Email {
			return repo.ErrEmailTaken
		}
	}
	u.ID = m.nextID()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repo.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrUserNotFound
}

func (m *mockUserRepo) FindConflict(ctx context.Context, excludeID, username, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == excludeID {
			continue
		}
		if (username != "" && u.Username == username) || (email != "" && u.Email == email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) Update(ctx context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.ID]; !ok {
		return repo.ErrUserNotFound
	}
	u.UpdatedAt = time.Now()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

type mockProductRepo struct {
	mu       sync.Mutex
	seq      int
	products map[string]*entity.Product
	lastList repo.ProductFilter
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{products: make(map[string]*entity.Product)}
}

func (m *mockProductRepo) Create(ctx context.Context, p *entity.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	p.ID = fmt.Sprintf("prod-%d", m.seq)
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	m.products[p.ID] = &cp
	return nil
}

func (m *mockProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, repo.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockProductRepo) List(ctx context.Context, f repo.ProductFilter) ([]entity.Product, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastList = f

	all := make([]entity.Product, 0, len(m.products))
	for _, p := range m.products {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		all = append(all, *p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := int64(len(all))
	start := (f.Page - 1) * f.Limit
	if start >= len(all) {
		return []entity.Product{}, total, nil
	}
	end := start + f.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (m *mockProductRepo) ListSimilar(ctx context.Context, category, excludeID string, limit int) ([]entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []entity.Product{}
	for _, p := range m.products {
		if p.ID == excludeID || p.Category != category {
			continue
		}
		out = append(out, *p)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *mockProductRepo) Update(ctx context.Context, p *entity.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[p.ID]; !ok {
		return repo.ErrProductNotFound
	}
	p.UpdatedAt = time.Now()
	cp := *p
	m.products[p.ID] = &cp
	return nil
}

func (m *mockProductRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return repo.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

// mockCartRepo keeps line insertion order, mirroring the SQL semantics.
type mockCartRepo struct {
	mu       sync.Mutex
	products *mockProductRepo
	lines    map[string][]cartLine // userID -> ordered lines
}

type cartLine struct {
	productID string
	quantity  int
}

func newMockCartRepo(products *mockProductRepo) *mockCartRepo {
	return &mockCartRepo{products: products, lines: make(map[string][]cartLine)}
}

func (m *mockCartRepo) AddItem(ctx context.Context, userID, productID string, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	lines := m.lines[userID]
	for i := range lines {
		if lines[i].productID == productID {
			lines[i].quantity += quantity
			m.lines[userID] = lines
			return nil
		}
	}
	m.lines[userID] = append(lines, cartLine{productID: productID, quantity: quantity})
	return nil
}

func (m *mockCartRepo) GetView(ctx context.Context, userID string) (*repo.CartView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	lines, ok := m.lines[userID]
	if !ok {
		return nil, repo.ErrCartNotFound
	}
	view := &repo.CartView{ID: "cart-" + userID, UserID: userID, Lines: []repo.CartLine{}}
	for _, l := range lines {
		p, exists := m.products.products[l.productID]
		if !exists {
			// deleted products drop out of the cart view
			continue
		}
		view.Lines = append(view.Lines, repo.CartLine{
			ProductID: p.ID,
			Title:     p.Title,
			Price:     p.Price,
			Image:     p.Image,
			Category:  p.Category,
			OwnerID:   p.OwnerID,
			Quantity:  l.quantity,
		})
	}
	return view, nil
}

func (m *mockCartRepo) RemoveItem(ctx context.Context, userID, productID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	lines, ok := m.lines[userID]
	if !ok {
		return repo.ErrCartNotFound
	}
	out := lines[:0]
	for _, l := range lines {
		if l.productID != productID {
			out = append(out, l)
		}
	}
	m.lines[userID] = out
	return nil
}

// mockPurchaseRepo snapshots cart lines at current prices, like the
// transactional Postgres implementation.
type mockPurchaseRepo struct {
	mu        sync.Mutex
	seq       int
	carts     *mockCartRepo
	purchases map[string][]entity.Purchase // by userID, oldest first
}

func newMockPurchaseRepo(carts *mockCartRepo) *mockPurchaseRepo {
	return &mockPurchaseRepo{carts: carts, purchases: make(map[string][]entity.Purchase)}
}

func (m *mockPurchaseRepo) Checkout(ctx context.Context, userID string) (*entity.Purchase, error) {
	view, err := m.carts.GetView(ctx, userID)
	if err != nil {
		return nil, repo.ErrCartEmpty
	}
	if len(view.Lines) == 0 {
		return nil, repo.ErrCartEmpty
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	p := entity.Purchase{
		ID:          fmt.Sprintf("purchase-%d", m.seq),
		UserID:      userID,
		Items:       []entity.PurchaseItem{},
		PurchasedAt: time.Now(),
	}
	for _, l := range view.Lines {
		p.Items = append(p.Items, entity.PurchaseItem{
			ProductID: l.ProductID,
			Title:     l.Title,
			Category:  l.Category,
			Price:     l.Price,
			Quantity:  l.Quantity,
		})
		p.TotalAmount += l.Price * float64(l.Quantity)
	}
	m.purchases[userID] = append(m.purchases[userID], p)

	m.carts.mu.Lock()
	delete(m.carts.lines, userID)
	m.carts.mu.Unlock()
	return &p, nil
}

func (m *mockPurchaseRepo) ListByUser(ctx context.Context, userID string, page, limit int) ([]entity.Purchase, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.purchases[userID]
	// newest first
	out := make([]entity.Purchase, len(all))
	for i, p := range all {
		out[len(all)-1-i] = p
	}
	total := int64(len(out))
	start := (page - 1) * limit
	if start >= len(out) {
		return []entity.Purchase{}, total, nil
	}
	end := start + limit
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

func (m *mockPurchaseRepo) Summary(ctx context.Context, userID string) (repo.PurchaseSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var s repo.PurchaseSummary
	for _, p := range m.purchases[userID] {
		s.TotalOrders++
		s.TotalSpent += p.TotalAmount
	}
	return s, nil
}

var (
	_ repo.UserRepository     = (*mockUserRepo)(nil)
	_ repo.ProductRepository  = (*mockProductRepo)(nil)
	_ repo.CartRepository     = (*mockCartRepo)(nil)
	_ repo.PurchaseRepository = (*mockPurchaseRepo)(nil)
)
