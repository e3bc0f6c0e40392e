package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ctrlmarket/ctrlmarket/internal/domain/entity"
)

type OrderRepositoryImpl struct {
	db DBTX
}

func NewOrderRepository(db DBTX) *OrderRepositoryImpl {
	return &OrderRepositoryImpl{db: db}
}

// Save inserts the order row and one row per item. Atomicity comes from the
// surrounding unit of work; this method never commits on its own.
func (r *OrderRepositoryImpl) Save(ctx context.Context, order *entity.Order) error {
	var orderID int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO orders (user_id, order_date, status, total_price_cents)
		 VALUES ($1, $2, $3, $4)
		 RETURNING order_id`,
		order.CustomerID(), order.OrderDate(), string(order.Status()), int64(order.Total()),
	).Scan(&orderID)
	if err != nil {
		return fmt.Errorf("%w: insert order: %w", entity.ErrStorage, err)
	}
	order.SetID(orderID)

	items := order.Items()
	for i := range items {
		err := r.db.QueryRowContext(ctx,
			`INSERT INTO order_items (order_id, product_id, quantity, unit_price_cents)
			 VALUES ($1, $2, $3, $4)
			 RETURNING order_item_id`,
			orderID, items[i].ProductID, items[i].Quantity, int64(items[i].UnitPrice),
		).Scan(&items[i].ID)
		if err != nil {
			return fmt.Errorf("%w: insert order item: %w", entity.ErrStorage, err)
		}
	}
	return nil
}

func (r *OrderRepositoryImpl) FindByID(ctx context.Context, id int64) (*entity.Order, error) {
	var (
		customerID int64
		orderDate  time.Time
		status     string
		total      int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, order_date, status, total_price_cents FROM orders WHERE order_id = $1`,
		id,
	).Scan(&customerID, &orderDate, &status, &total)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: order %d", entity.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: query order: %w", entity.ErrStorage, err)
	}

	items, err := r.loadItems(ctx, id)
	if err != nil {
		return nil, err
	}
	return entity.RestoreOrder(id, customerID, orderDate, entity.OrderStatus(status), entity.Cents(total), items)
}

func (r *OrderRepositoryImpl) loadItems(ctx context.Context, orderID int64) ([]entity.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT order_item_id, product_id, quantity, unit_price_cents
		 FROM order_items WHERE order_id = $1 ORDER BY order_item_id`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: query order items: %w", entity.ErrStorage, err)
	}
	defer rows.Close()

	var items []entity.OrderItem
	for rows.Next() {
		var item entity.OrderItem
		var unitPrice int64
		if err := rows.Scan(&item.ID, &item.ProductID, &item.Quantity, &unitPrice); err != nil {
			return nil, fmt.Errorf("%w: scan order item: %w", entity.ErrStorage, err)
		}
		item.UnitPrice = entity.Cents(unitPrice)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: query order items: %w", entity.ErrStorage, err)
	}
	return items, nil
}

// UpdateStatus is guarded on the expected current status so a concurrent
// transition loses cleanly instead of overwriting.
func (r *OrderRepositoryImpl) UpdateStatus(ctx context.Context, id int64, from, to entity.OrderStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $1 WHERE order_id = $2 AND status = $3`,
		string(to), id, string(from),
	)
	if err != nil {
		return fmt.Errorf("%w: update order status: %w", entity.ErrStorage, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: update order status: %w", entity.ErrStorage, err)
	}
	if affected == 0 {
		return entity.ErrInvalidStateTransition
	}
	return nil
}

func (r *OrderRepositoryImpl) List(ctx context.Context, customerID int64, status entity.OrderStatus) ([]*entity.Order, error) {
	query := `SELECT order_id, user_id, order_date, status, total_price_cents FROM orders WHERE 1=1`
	args := []any{}

	if customerID != 0 {
		args = append(args, customerID)
		query += fmt.Sprintf(" AND user_id = $%d", len(args))
	}
	if status != "" {
		args = append(args, string(status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY order_date DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list orders: %w", entity.ErrStorage, err)
	}

	type orderRow struct {
		id, userID, total int64
		orderDate         time.Time
		status            string
	}
	var heads []orderRow
	for rows.Next() {
		var h orderRow
		if err := rows.Scan(&h.id, &h.userID, &h.orderDate, &h.status, &h.total); err != nil {
			rows.Close()
			return nil, fmt.Errorf("%w: scan order: %w", entity.ErrStorage, err)
		}
		heads = append(heads, h)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("%w: list orders: %w", entity.ErrStorage, err)
	}
	rows.Close()

	orders := make([]*entity.Order, 0, len(heads))
	for _, h := range heads {
		items, err := r.loadItems(ctx, h.id)
		if err != nil {
			return nil, err
		}
		order, err := entity.RestoreOrder(h.id, h.userID, h.orderDate, entity.OrderStatus(h.status), entity.Cents(h.total), items)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}
