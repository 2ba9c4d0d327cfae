package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"room_ledger/internal/domain"
)

type Customers struct {
	mu   sync.RWMutex
	byID map[string]domain.Customer
}

func NewCustomers() *Customers {
	return &Customers{byID: make(map[string]domain.Customer)}
}

func (s *Customers) Insert(_ context.Context, c domain.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[c.Email]; ok {
		return fmt.Errorf("%s: %w", c.Email, domain.ErrDuplicateCustomer)
	}
	s.byID[c.Email] = c
	return nil
}

func (s *Customers) Get(_ context.Context, email string) (domain.Customer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.byID[email]
	return c, ok
}

func (s *Customers) List(_ context.Context) []domain.Customer {
	s.mu.RLock()
	out := make([]domain.Customer, 0, len(s.byID))
	for _, c := range s.byID {
		out = append(out, c)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out
}
