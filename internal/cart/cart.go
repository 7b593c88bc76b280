package cart

import (
	"sync"
	"time"

	"juicepos/internal/models"
)

// Cart accumulates line items for the order being built. One cashier
// mutates it at a time, but the HTTP surface may read it concurrently,
// so every access goes through the mutex.
type Cart struct {
	mu    sync.Mutex
	items []models.OrderItem
}

func New() *Cart {
	return &Cart{}
}

// Add merges the drink into an existing line when one with a
// structurally identical drink exists, otherwise appends a new line.
// Quantity is clamped to at least 1.
func (c *Cart) Add(drink models.Drink, quantity int) models.OrderItem {
	if quantity < 1 {
		quantity = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].Drink.Equal(drink) {
			c.items[i].Quantity += quantity
			if c.items[i].Quantity < 1 {
				c.items[i].Quantity = 1
			}
			return c.items[i]
		}
	}

	item := models.NewOrderItem(drink, quantity)
	c.items = append(c.items, item)
	return item
}

// Remove deletes the line with the given id. Unknown ids are a no-op.
func (c *Cart) Remove(itemID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == itemID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// RemoveAt deletes the lines at the given indexes. Out-of-range indexes
// are ignored.
func (c *Cart) RemoveAt(indexes []int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	drop := make(map[int]bool, len(indexes))
	for _, idx := range indexes {
		if idx >= 0 && idx < len(c.items) {
			drop[idx] = true
		}
	}
	if len(drop) == 0 {
		return
	}

	kept := c.items[:0]
	for i := range c.items {
		if !drop[i] {
			kept = append(kept, c.items[i])
		}
	}
	c.items = kept
}

// SetQuantity clamps to at least 1; an explicit Remove is the only way
// a line leaves the cart.
func (c *Cart) SetQuantity(itemID string, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == itemID {
			c.items[i].Quantity = quantity
			return
		}
	}
}

func (c *Cart) Increment(itemID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == itemID {
			c.items[i].Quantity++
			return
		}
	}
}

// Decrement floors at 1, it never removes the line.
func (c *Cart) Decrement(itemID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == itemID {
			if c.items[i].Quantity > 1 {
				c.items[i].Quantity--
			}
			return
		}
	}
}

// Clear empties the cart. Called after a successful checkout commit.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []models.OrderItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.OrderItem, len(c.items))
	copy(out, c.items)
	return out
}

// Total is computed on demand; add-on pricing is expected to evolve, so
// nothing is cached.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0.0
	for _, item := range c.items {
		total += item.LineTotal()
	}
	return total
}

// Snapshot flattens the cart into an order: quantity N of a line becomes
// N repeated drink entries, preserving line order. Flavour statistics
// count one drink entry per physical cup, so the flattening is exact.
func (c *Cart) Snapshot(timestamp time.Time) models.Order {
	c.mu.Lock()
	defer c.mu.Unlock()

	var drinks []models.Drink
	for _, item := range c.items {
		for n := 0; n < item.Quantity; n++ {
			drinks = append(drinks, item.Drink)
		}
	}
	return models.NewOrder(drinks, timestamp)
}
