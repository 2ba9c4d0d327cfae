package domain

import "errors"

var (
	ErrInvalidEmail      = errors.New("email is of wrong format")
	ErrInvalidRoom       = errors.New("invalid room")
	ErrInvalidDateRange  = errors.New("invalid date range")
	ErrDuplicateCustomer = errors.New("customer with this email is already registered")
	ErrDuplicateRoom     = errors.New("room number already exists")
	ErrRoomNotFound      = errors.New("room not found")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrAlreadyReserved   = errors.New("room is already reserved for these days")
)
