package order

import (
	"errors"
	"time"
)

// Service provides business logic for the order aggregator.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// History pairs an order with its line items and computed total.
type History struct {
	Order
	Items []Item  `json:"items"`
	Total float64 `json:"total"`
}

// OpenOrder returns the user's open order, creating one lazily on first use.
// This is a read-then-create with no lock or uniqueness constraint, so two
// concurrent first calls can both insert; the first-match lookup keeps all
// later traffic on one of them.
func (s *Service) OpenOrder(userID int) (Order, error) {
	if userID <= 0 {
		return Order{}, errors.New("invalid user")
	}

	ord, err := s.repo.FirstByUser(userID)
	if err == nil {
		return ord, nil
	}
	if err != ErrNotFound {
		return Order{}, err
	}

	return s.repo.Create(Order{
		UserID:    userID,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// AddItem appends a line item to the user's open order. Name and price are
// stored as given; there is no cross-check against the catalog.
func (s *Service) AddItem(userID int, name string, quantity int, price float64) (Item, error) {
	if name == "" {
		return Item{}, errors.New("item name is required")
	}

	ord, err := s.OpenOrder(userID)
	if err != nil {
		return Item{}, err
	}

	return s.repo.AddItem(Item{
		OrderID:  ord.ID,
		Name:     name,
		Quantity: quantity,
		Price:    price,
	})
}

// Summary returns the open order's items and Σ(quantity × price). A user
// with no orders gets an empty list and total 0.
func (s *Service) Summary(userID int) ([]Item, float64, error) {
	ord, err := s.repo.FirstByUser(userID)
	if err == ErrNotFound {
		return []Item{}, 0, nil
	}
	if err != nil {
		return nil, 0, err
	}

	items, err := s.repo.ListItems(ord.ID)
	if err != nil {
		return nil, 0, err
	}

	var total float64
	for _, item := range items {
		total += item.Subtotal()
	}
	return items, total, nil
}

// AllOrders lists every order of the user with items and totals. Normally one
// entry, but the unguarded lazy creation can leave a user with several.
func (s *Service) AllOrders(userID int) ([]History, error) {
	orders, err := s.repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return []History{}, nil
	}

	ids := make([]int, 0, len(orders))
	for _, ord := range orders {
		ids = append(ids, ord.ID)
	}

	items, err := s.repo.ListItemsByOrders(ids)
	if err != nil {
		return nil, err
	}

	byOrder := make(map[int][]Item, len(orders))
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}

	out := make([]History, 0, len(orders))
	for _, ord := range orders {
		h := History{Order: ord, Items: byOrder[ord.ID]}
		if h.Items == nil {
			h.Items = []Item{}
		}
		for _, item := range h.Items {
			h.Total += item.Subtotal()
		}
		out = append(out, h)
	}
	return out, nil
}
