package models

// CartItem is identified by (ID, Size, Color). Name, Price and Image are
// snapshots taken when the item was first added.
type CartItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Size     string  `json:"size"`
	Color    string  `json:"color"`
	Quantity int     `json:"quantity"`
}

// AddCartItemRequest represents a storefront add-to-cart call. Size and
// Color must be among the product's options when it lists any.
type AddCartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity" binding:"max=999"`
}

// UpdateCartItemRequest sets the quantity of an existing row; zero or
// less removes it.
type UpdateCartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity" binding:"max=999"`
}

// RemoveCartItemRequest identifies a cart row
type RemoveCartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

// CartResponse is the storefront view of a cart. Amounts are rounded to
// cents; Total is Subtotal plus Tax.
type CartResponse struct {
	Items             []CartItem `json:"items"`
	ItemCount         int        `json:"itemCount"`
	Subtotal          float64    `json:"subtotal"`
	FormattedSubtotal string     `json:"formattedSubtotal"`
	TaxRate           float64    `json:"taxRate"`
	Tax               float64    `json:"tax"`
	FormattedTax      string     `json:"formattedTax"`
	Total             float64    `json:"total"`
	FormattedTotal    string     `json:"formattedTotal"`
}
