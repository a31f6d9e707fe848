// Package suggest derives autocomplete suggestions from the recent cities.
//
// A Controller is either hidden or visible with a non-empty list. An empty
// query hides the list, as does a query with no matches.
package suggest

import "strings"

// Filter returns the cities whose lowercase form contains the lowercase,
// trimmed query, preserving their order. An empty query matches nothing.
func Filter(cities []string, query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var matches []string
	for _, c := range cities {
		if strings.Contains(strings.ToLower(c), q) {
			matches = append(matches, c)
		}
	}
	return matches
}

// Controller tracks suggestion visibility and the highlighted item
type Controller struct {
	items  []string
	cursor int // -1 when nothing is highlighted
}

// New returns a hidden controller
func New() *Controller {
	return &Controller{cursor: -1}
}

// Update re-derives the list after the input text changed
func (c *Controller) Update(query string, cities []string) {
	c.items = Filter(cities, query)
	c.cursor = -1
}

// Hide clears the list
func (c *Controller) Hide() {
	c.items = nil
	c.cursor = -1
}

// Visible reports whether the list is shown
func (c *Controller) Visible() bool {
	return len(c.items) > 0
}

// Items returns the shown suggestions
func (c *Controller) Items() []string {
	return c.items
}

// Cursor returns the highlighted index, or -1
func (c *Controller) Cursor() int {
	return c.cursor
}

// Next highlights the following item, wrapping to the first
func (c *Controller) Next() {
	if !c.Visible() {
		return
	}
	c.cursor = (c.cursor + 1) % len(c.items)
}

// Prev highlights the preceding item, wrapping to the last
func (c *Controller) Prev() {
	if !c.Visible() {
		return
	}
	if c.cursor <= 0 {
		c.cursor = len(c.items) - 1
		return
	}
	c.cursor--
}

// Highlighted returns the highlighted item, if any
func (c *Controller) Highlighted() (string, bool) {
	if c.cursor < 0 || c.cursor >= len(c.items) {
		return "", false
	}
	return c.items[c.cursor], true
}

// Select returns item i and hides the list
func (c *Controller) Select(i int) (string, bool) {
	if i < 0 || i >= len(c.items) {
		return "", false
	}
	city := c.items[i]
	c.Hide()
	return city, true
}
