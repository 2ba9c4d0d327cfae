package domain

import (
	"fmt"
	"regexp"
)

// emailPattern admits <something>@<something>.<something>; the last dot wins.
var emailPattern = regexp.MustCompile(`^(.+)@(.+)[.](.+)$`)

type Customer struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// NewCustomer validates the email and builds an immutable customer record.
func NewCustomer(email, firstName, lastName string) (Customer, error) {
	if !ValidEmail(email) {
		return Customer{}, fmt.Errorf("%q: %w", email, ErrInvalidEmail)
	}
	return Customer{Email: email, FirstName: firstName, LastName: lastName}, nil
}

func ValidEmail(email string) bool { return emailPattern.MatchString(email) }

// Is reports identity: customers are the same person iff their emails match exactly.
func (c Customer) Is(other Customer) bool { return c.Email == other.Email }

func (c Customer) String() string {
	return fmt.Sprintf("Customer %s %s, %s.", c.FirstName, c.LastName, c.Email)
}
