package entity

import "fmt"

// Product is a catalog entry managed by admins. Its price is snapshotted
// into order items at order time, so a later edit never rewrites an order.
type Product struct {
	ID       int64
	Name     string
	Category string
	Price    Cents
}

func NewProduct(name, category string, price Cents) (*Product, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: product name is required", ErrValidation)
	}
	if category == "" {
		return nil, fmt.Errorf("%w: product category is required", ErrValidation)
	}
	if price < 0 {
		return nil, ErrPriceMustBeNonNeg
	}
	return &Product{Name: name, Category: category, Price: price}, nil
}
