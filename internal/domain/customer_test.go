package domain_test

import (
	"errors"
	"testing"

	"room_ledger/internal/domain"
)

func TestValidEmail(t *testing.T) {
	cases := map[string]bool{
		"a@b.com":          true,
		"first.last@x.org": true,
		"a@b.c.d":          true,
		"a@@b.com":         true, // the pattern only asks for something on each side
		"":                 false,
		"plain":            false,
		"a@b":              false,
		"@b.com":           false,
		"a@.com":           false,
		"a@b.":             false,
		"a.b.com":          false,
	}
	for email, want := range cases {
		if got := domain.ValidEmail(email); got != want {
			t.Errorf("ValidEmail(%q) = %v, want %v", email, got, want)
		}
	}
}

func TestNewCustomer(t *testing.T) {
	c, err := domain.NewCustomer("a@b.com", "Ann", "Lee")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if c.String() != "Customer Ann Lee, a@b.com." {
		t.Fatalf("unexpected string: %s", c)
	}

	if _, err := domain.NewCustomer("nope", "Ann", "Lee"); !errors.Is(err, domain.ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
}

func TestCustomerIdentityIsEmail(t *testing.T) {
	a, _ := domain.NewCustomer("a@b.com", "Ann", "Lee")
	b, _ := domain.NewCustomer("a@b.com", "Someone", "Else")
	upper, _ := domain.NewCustomer("A@b.com", "Ann", "Lee")

	if !a.Is(b) {
		t.Fatalf("same email must be the same customer")
	}
	if a.Is(upper) {
		t.Fatalf("email comparison is case-sensitive")
	}
}
