package usecase

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/foodlens/backend/internal/domain"
)

// MockCacheRepository is a mock implementation of domain.CacheRepository.
// Values are stored JSON encoded like the real caches do.
type MockCacheRepository struct {
	mu        sync.Mutex
	data      map[string][]byte
	getError  error
	setError  error
	getCalled int
	setCalled int
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{data: make(map[string][]byte)}
}

func (m *MockCacheRepository) Get(ctx context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalled++
	if m.getError != nil {
		return m.getError
	}
	raw, ok := m.data[key]
	if !ok {
		return domain.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setCalled++
	if m.setError != nil {
		return m.setError
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok, nil
}

// MockFoodDatabase is a mock implementation of domain.FoodDatabase
type MockFoodDatabase struct {
	mu       sync.Mutex
	products map[string]domain.Product
	err      error
	calls    []string
}

func NewMockFoodDatabase(products ...domain.Product) *MockFoodDatabase {
	m := &MockFoodDatabase{products: make(map[string]domain.Product)}
	for _, p := range products {
		m.products[p.Code] = p
	}
	return m
}

func (m *MockFoodDatabase) GetProduct(ctx context.Context, barcode string) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, barcode)
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.products[barcode]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &p, nil
}

func (m *MockFoodDatabase) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// MockHistoryRepository keeps history items newest first
type MockHistoryRepository struct {
	mu     sync.Mutex
	items  []domain.HistoryItem
	addErr error
}

func (m *MockHistoryRepository) Add(ctx context.Context, item domain.HistoryItem, limit int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.addErr != nil {
		return m.addErr
	}
	kept := []domain.HistoryItem{item}
	for _, existing := range m.items {
		if existing.Product.Code != item.Product.Code {
			kept = append(kept, existing)
		}
	}
	if len(kept) > limit {
		kept = kept[:limit]
	}
	m.items = kept
	return nil
}

func (m *MockHistoryRepository) List(ctx context.Context) ([]domain.HistoryItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.HistoryItem{}, m.items...), nil
}

func (m *MockHistoryRepository) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = nil
	return nil
}

// MockProductList backs both FavoriteRepository and ComparisonRepository
type MockProductList struct {
	products []domain.Product
	err      error
}

func (m *MockProductList) Toggle(ctx context.Context, product domain.Product) (bool, error) {
	exists, err := m.Exists(ctx, product.Code)
	if err != nil {
		return false, err
	}
	if exists {
		return false, m.Remove(ctx, product.Code)
	}
	m.products = append(m.products, product)
	return true, nil
}

func (m *MockProductList) AddWithLimit(ctx context.Context, product domain.Product, limit int) error {
	exists, err := m.Exists(ctx, product.Code)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrAlreadyInComparison
	}
	if len(m.products) >= limit {
		return domain.ErrComparisonFull
	}
	m.products = append(m.products, product)
	return nil
}

func (m *MockProductList) Remove(ctx context.Context, code string) error {
	kept := m.products[:0]
	for _, p := range m.products {
		if p.Code != code {
			kept = append(kept, p)
		}
	}
	m.products = kept
	return nil
}

func (m *MockProductList) Exists(ctx context.Context, code string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	for _, p := range m.products {
		if p.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockProductList) List(ctx context.Context) ([]domain.Product, error) {
	return append([]domain.Product{}, m.products...), nil
}

func (m *MockProductList) Clear(ctx context.Context) error {
	m.products = nil
	return nil
}

// MockProfileRepository is a mock implementation of domain.ProfileRepository
type MockProfileRepository struct {
	profile *domain.UserProfile
	saveErr error
}

func (m *MockProfileRepository) Get(ctx context.Context) (*domain.UserProfile, error) {
	if m.profile == nil {
		return nil, domain.ErrProfileNotFound
	}
	p := *m.profile
	return &p, nil
}

func (m *MockProfileRepository) Save(ctx context.Context, profile *domain.UserProfile) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	p := *profile
	m.profile = &p
	return nil
}

// MockTrackedFoodRepository is a mock implementation of domain.TrackedFoodRepository
type MockTrackedFoodRepository struct {
	entries map[string]domain.TrackedFoodEntry
}

func NewMockTrackedFoodRepository(entries ...domain.TrackedFoodEntry) *MockTrackedFoodRepository {
	m := &MockTrackedFoodRepository{entries: make(map[string]domain.TrackedFoodEntry)}
	for _, e := range entries {
		m.entries[e.ID] = e
	}
	return m
}

func (m *MockTrackedFoodRepository) Create(ctx context.Context, entry *domain.TrackedFoodEntry) error {
	m.entries[entry.ID] = *entry
	return nil
}

func (m *MockTrackedFoodRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.entries[id]; !ok {
		return domain.ErrEntryNotFound
	}
	delete(m.entries, id)
	return nil
}

func (m *MockTrackedFoodRepository) ListByDate(ctx context.Context, date string) ([]domain.TrackedFoodEntry, error) {
	var out []domain.TrackedFoodEntry
	for _, e := range m.sorted() {
		if e.Date == date {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *MockTrackedFoodRepository) sorted() []domain.TrackedFoodEntry {
	out := make([]domain.TrackedFoodEntry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}
