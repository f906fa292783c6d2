// Package cart keeps storefront shopping carts in memory.
package cart

import (
	"errors"
	"math"
	"sync"

	"storefront-service/internal/models"
)

const (
	// MaxQuantity caps a single row.
	MaxQuantity = 999
	// TaxRate is applied to the subtotal.
	TaxRate = 0.08
)

var (
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrQuantityLimit   = errors.New("quantity exceeds the per-item limit")
	ErrItemNotFound    = errors.New("cart item not found")
)

// Cart is a list of rows keyed by (product id, size, color).
type Cart struct {
	mu    sync.Mutex
	items []models.CartItem
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

func (c *Cart) index(id, size, color string) int {
	for i, item := range c.items {
		if item.ID == id && item.Size == size && item.Color == color {
			return i
		}
	}
	return -1
}

// Add inserts item or, when a row with the same product, size and color
// exists, increases its quantity. The first snapshot of name, price and
// image is kept.
func (c *Cart) Add(item models.CartItem) error {
	if item.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if item.Quantity > MaxQuantity {
		return ErrQuantityLimit
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.index(item.ID, item.Size, item.Color); i >= 0 {
		if c.items[i].Quantity+item.Quantity > MaxQuantity {
			return ErrQuantityLimit
		}
		c.items[i].Quantity += item.Quantity
		return nil
	}
	c.items = append(c.items, item)
	return nil
}

// UpdateQuantity sets a row's quantity; zero or less removes the row.
func (c *Cart) UpdateQuantity(id, size, color string, quantity int) error {
	if quantity > MaxQuantity {
		return ErrQuantityLimit
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.index(id, size, color)
	if i < 0 {
		return ErrItemNotFound
	}
	if quantity <= 0 {
		c.items = append(c.items[:i], c.items[i+1:]...)
		return nil
	}
	c.items[i].Quantity = quantity
	return nil
}

// Remove deletes a row.
func (c *Cart) Remove(id, size, color string) error {
	return c.UpdateQuantity(id, size, color, 0)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
}

// Items returns a copy of the rows in insertion order.
func (c *Cart) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// ItemCount is the total quantity across rows.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, item := range c.items {
		n += item.Quantity
	}
	return n
}

// Subtotal is the sum of price times quantity.
func (c *Cart) Subtotal() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total float64
	for _, item := range c.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// Summary holds the order amounts, each rounded to cents.
type Summary struct {
	Subtotal float64
	Tax      float64
	Total    float64
}

func cents(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// Summary computes subtotal, tax at TaxRate and their sum.
func (c *Cart) Summary() Summary {
	subtotal := cents(c.Subtotal())
	tax := cents(subtotal * TaxRate)
	return Summary{Subtotal: subtotal, Tax: tax, Total: cents(subtotal + tax)}
}
