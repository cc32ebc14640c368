package mockpos

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

type user struct {
	ID       string
	Name     string
	Email    string
	Password string
}

type category struct {
	ID          string
	Name        string
	Description string
	seq         int
}

type product struct {
	ID         string
	CategoryID string
	Code       string
	Name       string
	Price      int
	Cost       int
	Stock      int
	seq        int
}

// memoryStore holds everything the fake API knows. Listing order is creation order.
type memoryStore struct {
	mu         sync.RWMutex
	users      map[string]*user // by email
	categories map[string]*category
	products   map[string]*product
	seq        int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:      make(map[string]*user),
		categories: make(map[string]*category),
		products:   make(map[string]*product),
	}
}

func (s *memoryStore) addUser(name, email, password string) (*user, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[email]; exists {
		return nil, false
	}
	u := &user{ID: uuid.NewString(), Name: name, Email: email, Password: password}
	s.users[email] = u
	return u, true
}

func (s *memoryStore) findUser(email, password string) (*user, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[email]
	if !ok || u.Password != password {
		return nil, false
	}
	return u, true
}

func (s *memoryStore) addCategory(name, description string) *category {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	c := &category{ID: uuid.NewString(), Name: name, Description: description, seq: s.seq}
	s.categories[c.ID] = c
	return c
}

func (s *memoryStore) getCategory(id string) (category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[id]
	if !ok {
		return category{}, false
	}
	return *c, true
}

func (s *memoryStore) listCategories() []category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ret := make([]category, 0, len(s.categories))
	for _, c := range s.categories {
		ret = append(ret, *c)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].seq < ret[j].seq })
	return ret
}

func (s *memoryStore) addProduct(p product) product {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	p.ID = uuid.NewString()
	p.seq = s.seq
	s.products[p.ID] = &p
	return p
}

func (s *memoryStore) updateProduct(id string, p product) (product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.products[id]
	if !ok {
		return product{}, false
	}
	p.ID, p.seq = existing.ID, existing.seq
	*existing = p
	return p, true
}

func (s *memoryStore) deleteProduct(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return false
	}
	delete(s.products, id)
	return true
}

func (s *memoryStore) listProducts() []product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ret := make([]product, 0, len(s.products))
	for _, p := range s.products {
		ret = append(ret, *p)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].seq < ret[j].seq })
	return ret
}
