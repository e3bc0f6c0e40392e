package product

import (
	"github.com/ctrlmarket/ctrlmarket/internal/domain/entity"
)

// Input

type CreateInput struct {
	Name         string `json:"name"`
	Category     string `json:"category"`
	PriceCents   int64  `json:"price_cents"`
	ActingUserID int64
}

// UpdateInput carries a partial update; nil fields keep the current value.
type UpdateInput struct {
	ProductID    int64
	Name         *string `json:"name,omitempty"`
	Category     *string `json:"category,omitempty"`
	PriceCents   *int64  `json:"price_cents,omitempty"`
	ActingUserID int64
}

type DeleteInput struct {
	ProductID    int64
	ActingUserID int64
}

// Output

type Output struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	PriceCents int64  `json:"price_cents"`
	Price      string `json:"price"`
}

func ToOutput(p *entity.Product) Output {
	return Output{
		ID:         p.ID,
		Name:       p.Name,
		Category:   p.Category,
		PriceCents: int64(p.Price),
		Price:      p.Price.String(),
	}
}
