package order

import (
	"database/sql"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FirstByUser(userID int) (Order, error) {
	var ord Order
	err := r.db.QueryRow(
		`SELECT id, user_id, created_at FROM orders WHERE user_id = $1 ORDER BY id LIMIT 1`,
		userID,
	).Scan(&ord.ID, &ord.UserID, &ord.CreatedAt)
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) ListByUser(userID int) ([]Order, error) {
	rows, err := r.db.Query(
		`SELECT id, user_id, created_at FROM orders WHERE user_id = $1 ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		var ord Order
		if err := rows.Scan(&ord.ID, &ord.UserID, &ord.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, ord)
	}
	return orders, rows.Err()
}

func (r *PostgresRepository) Create(ord Order) (Order, error) {
	err := r.db.QueryRow(
		`INSERT INTO orders (user_id, created_at) VALUES ($1, $2) RETURNING id`,
		ord.UserID, ord.CreatedAt,
	).Scan(&ord.ID)
	if err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) AddItem(item Item) (Item, error) {
	err := r.db.QueryRow(
		`INSERT INTO order_items (order_id, name, quantity, price) VALUES ($1, $2, $3, $4) RETURNING id`,
		item.OrderID, item.Name, item.Quantity, item.Price,
	).Scan(&item.ID)
	if err != nil {
		return Item{}, err
	}
	return item, nil
}

func (r *PostgresRepository) ListItems(orderID int) ([]Item, error) {
	rows, err := r.db.Query(
		`SELECT id, order_id, name, quantity, price FROM order_items WHERE order_id = $1 ORDER BY id`,
		orderID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanItems(rows)
}

func (r *PostgresRepository) ListItemsByOrders(orderIDs []int) ([]Item, error) {
	if len(orderIDs) == 0 {
		return []Item{}, nil
	}

	rows, err := r.db.Query(
		`SELECT id, order_id, name, quantity, price FROM order_items
		 WHERE order_id = ANY($1::int[])
		 ORDER BY array_position($1::int[], order_id), id`,
		pq.Array(orderIDs),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanItems(rows)
}

func scanItems(rows *sql.Rows) ([]Item, error) {
	items := make([]Item, 0)
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.OrderID, &item.Name, &item.Quantity, &item.Price); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
