package client

import (
	"slices"
	"sync"

	"github.com/bryanwahyu/ayurconnect/internal/domain/analysis"
)

// Cart collects herbs across results for a WhatsApp order. Herbs are
// unique by ID.
type Cart struct {
	mu    sync.Mutex
	items []analysis.HerbSuggestion
}

// Add appends h unless a herb with the same ID is already present. A
// missing ID is derived from the name.
func (c *Cart) Add(h analysis.HerbSuggestion) bool {
	if h.ID == "" {
		h.ID = analysis.Slug(h.Name)
	}
	if h.ID == "" {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.indexOf(h.ID) >= 0 {
		return false
	}
	c.items = append(c.items, h)
	return true
}

func (c *Cart) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.items = slices.Delete(c.items, i, i+1)
	return true
}

func (c *Cart) Contains(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.indexOf(id) >= 0
}

// Items returns the herbs in insertion order.
func (c *Cart) Items() []analysis.HerbSuggestion {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.items)
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Cart) Clear() {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
}

// WhatsAppURL builds the order hand-off link for number.
func (c *Cart) WhatsAppURL(number string) (string, error) {
	return analysis.WhatsAppOrderURL(number, c.Items())
}

func (c *Cart) indexOf(id string) int {
	return slices.IndexFunc(c.items, func(h analysis.HerbSuggestion) bool { return h.ID == id })
}
