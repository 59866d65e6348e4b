package order

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("order not found")

type Repository interface {
	// FirstByUser returns the user's first (open) order.
	FirstByUser(userID int) (Order, error)
	// ListByUser returns every order of the user, oldest first.
	ListByUser(userID int) ([]Order, error)
	Create(ord Order) (Order, error)
	AddItem(item Item) (Item, error)
	ListItems(orderID int) ([]Item, error)
	// ListItemsByOrders returns the items of all given orders, grouped in
	// the sequence of the ids argument. Empty ids means no query at all.
	ListItemsByOrders(orderIDs []int) ([]Item, error)
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu         sync.RWMutex
	orders     []Order
	items      []Item
	nextOrder  int
	nextItemID int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextOrder: 1, nextItemID: 1}
}

func (r *InMemoryRepository) FirstByUser(userID int) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, ord := range r.orders {
		if ord.UserID == userID {
			return ord, nil
		}
	}

	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) ListByUser(userID int) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Order, 0)
	for _, ord := range r.orders {
		if ord.UserID == userID {
			out = append(out, ord)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) Create(ord Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ord.ID = r.nextOrder
	r.nextOrder++
	r.orders = append(r.orders, ord)
	return ord, nil
}

func (r *InMemoryRepository) AddItem(item Item) (Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = r.nextItemID
	r.nextItemID++
	r.items = append(r.items, item)
	return item, nil
}

func (r *InMemoryRepository) ListItems(orderID int) ([]Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Item, 0)
	for _, item := range r.items {
		if item.OrderID == orderID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) ListItemsByOrders(orderIDs []int) ([]Item, error) {
	if len(orderIDs) == 0 {
		return []Item{}, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Item, 0)
	for _, id := range orderIDs {
		for _, item := range r.items {
			if item.OrderID == id {
				out = append(out, item)
			}
		}
	}
	return out, nil
}
