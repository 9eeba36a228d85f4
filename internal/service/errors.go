package service

import "errors"

var (
	ErrEmptyCart       = errors.New("cart is empty, nothing to checkout")
	ErrProfileNotFound = errors.New("profile not found, cannot ship order")
)
