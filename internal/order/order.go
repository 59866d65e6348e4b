package order

// Order is a per-user accumulating collection of line items. There is no
// checkout: the first order found for a user is their open order, forever.
type Order struct {
	ID        int    `json:"orderId"`
	UserID    int    `json:"userId"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// Item is one line of an order. Name and price are captured at add time and
// are not checked against the catalog.
type Item struct {
	ID       int     `json:"itemId"`
	OrderID  int     `json:"orderId"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

func (i Item) Subtotal() float64 {
	return float64(i.Quantity) * i.Price
}
