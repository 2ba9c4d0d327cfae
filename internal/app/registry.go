package app

import (
	"context"

	"room_ledger/internal/domain"
)

type CustomerRegistry struct {
	repo domain.CustomerRepository
}

func NewCustomerRegistry(r domain.CustomerRepository) *CustomerRegistry {
	return &CustomerRegistry{repo: r}
}

// Register validates the email before touching the repository, so a malformed
// email is reported as ErrInvalidEmail even when it would also collide.
func (s *CustomerRegistry) Register(ctx context.Context, email, firstName, lastName string) (domain.Customer, error) {
	c, err := domain.NewCustomer(email, firstName, lastName)
	if err != nil {
		return domain.Customer{}, err
	}
	if err := s.repo.Insert(ctx, c); err != nil {
		return domain.Customer{}, err
	}
	return c, nil
}

func (s *CustomerRegistry) Find(ctx context.Context, email string) (domain.Customer, bool) {
	return s.repo.Get(ctx, email)
}

func (s *CustomerRegistry) ListAll(ctx context.Context) []domain.Customer {
	return s.repo.List(ctx)
}
