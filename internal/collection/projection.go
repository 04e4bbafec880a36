package collection

import "rockalpatio/internal/model"

// All is the category that selects every item.
const All = "todos"

// IsAll reports whether category means "no filter". The objetivos page
// historically used "todas", and an empty filter means the same.
func IsAll(category string) bool {
	return category == "" || category == All || category == "todas"
}

// Project returns the items whose key equals category, in their original
// order. For the All category the input is returned as is. items is never
// modified.
func Project[T any](items []T, category string, key func(T) string) []T {
	if IsAll(category) {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if key(it) == category {
			out = append(out, it)
		}
	}
	return out
}

// Count is len(Project(items, category, key)) without the allocation.
func Count[T any](items []T, category string, key func(T) string) int {
	if IsAll(category) {
		return len(items)
	}
	n := 0
	for _, it := range items {
		if key(it) == category {
			n++
		}
	}
	return n
}

// Tab is one filter button: a category, its label and how many items it holds.
type Tab struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
	Active bool   `json:"active"`
}

// Tabs returns the All tab followed by one tab per declared category.
func Tabs[T any](items []T, categories []model.Option, key func(T) string, active string) []Tab {
	tabs := make([]Tab, 0, len(categories)+1)
	tabs = append(tabs, Tab{ID: All, Label: "Todos", Count: len(items), Active: IsAll(active)})
	for _, c := range categories {
		tabs = append(tabs, Tab{
			ID:     c.ID,
			Label:  c.Label,
			Count:  Count(items, c.ID, key),
			Active: c.ID == active,
		})
	}
	return tabs
}
