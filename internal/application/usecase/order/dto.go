package order

import (
	"time"

	"github.com/ctrlmarket/ctrlmarket/internal/domain/entity"
)

// Input

type CreateItemInput struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type CreateInput struct {
	CustomerID int64             `json:"customer_id"`
	Items      []CreateItemInput `json:"items"`
}

type CancelInput struct {
	OrderID      int64
	ActingUserID int64
}

type CompleteInput struct {
	OrderID      int64
	ActingUserID int64
}

// Output

type ItemOutput struct {
	ID             int64  `json:"id"`
	ProductID      int64  `json:"product_id"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	UnitPrice      string `json:"unit_price"`
}

type Output struct {
	ID         int64        `json:"id"`
	CustomerID int64        `json:"customer_id"`
	Status     string       `json:"status"`
	OrderDate  time.Time    `json:"order_date"`
	TotalCents int64        `json:"total_cents"`
	Total      string       `json:"total"`
	Items      []ItemOutput `json:"items"`
}

// ToOutput flattens an order aggregate into the wire shape shared by the
// use cases, the outbox payloads and the read endpoints.
func ToOutput(o *entity.Order) Output {
	items := make([]ItemOutput, len(o.Items()))
	for i, item := range o.Items() {
		items[i] = ItemOutput{
			ID:             item.ID,
			ProductID:      item.ProductID,
			Quantity:       item.Quantity,
			UnitPriceCents: int64(item.UnitPrice),
			UnitPrice:      item.UnitPrice.String(),
		}
	}
	return Output{
		ID:         o.ID(),
		CustomerID: o.CustomerID(),
		Status:     string(o.Status()),
		OrderDate:  o.OrderDate(),
		TotalCents: int64(o.Total()),
		Total:      o.Total().String(),
		Items:      items,
	}
}
