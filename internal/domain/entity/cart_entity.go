package entity

// CartItem is a cart line expanded with live product data.
// Price always reflects the current product record, never a stored copy.
type CartItem struct {
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Category  string  `json:"category"`
	OwnerID   string  `json:"owner_id"`
	Quantity  int     `json:"quantity"`
}

// Cart is a user's shopping cart, one per user, lines in insertion order.
type Cart struct {
	ID          string     `json:"id,omitempty"`
	UserID      string     `json:"user_id"`
	Items       []CartItem `json:"items"`
	TotalItems  int        `json:"total_items"`
	TotalAmount float64    `json:"total_amount"`
}

// EmptyCart is the synthetic shape returned when a user has no cart yet.
func EmptyCart(userID string) *Cart {
	return &Cart{UserID: userID, Items: []CartItem{}}
}

// Recalculate derives the cart totals from its lines.
func (c *Cart) Recalculate() {
	c.TotalItems = 0
	c.TotalAmount = 0
	for _, it := range c.Items {
		c.TotalItems += it.Quantity
		c.TotalAmount += it.Price * float64(it.Quantity)
	}
}
