// Package categories holds the transaction category list offered on entry.
package categories

import (
	"strings"

	"github.com/cleared-dev/bizledger/internal/model"
)

// Other is the catch-all category, always present.
const Other = "Other"

// Category is a name offered when recording a transaction. Kind is the
// usual direction of money for it; empty means either.
type Category struct {
	Name string
	Kind model.Kind
}

// Default returns the built-in category list.
func Default() []Category {
	return []Category{
		{Name: "Office Supplies", Kind: model.KindExpense},
		{Name: "Marketing", Kind: model.KindExpense},
		{Name: "Travel", Kind: model.KindExpense},
		{Name: "Meals", Kind: model.KindExpense},
		{Name: "Software", Kind: model.KindExpense},
		{Name: "Equipment", Kind: model.KindExpense},
		{Name: "Rent", Kind: model.KindExpense},
		{Name: "Utilities", Kind: model.KindExpense},
		{Name: "Insurance", Kind: model.KindExpense},
		{Name: "Professional Services", Kind: model.KindExpense},
		{Name: "Sales", Kind: model.KindIncome},
		{Name: "Consulting", Kind: model.KindIncome},
		{Name: "Products", Kind: model.KindIncome},
		{Name: "Services", Kind: model.KindIncome},
		{Name: Other},
	}
}

// FromNames builds a list from configured names; Other is appended when
// missing.
func FromNames(names []string) []Category {
	known := make(map[string]Category)
	for _, c := range Default() {
		known[strings.ToLower(c.Name)] = c
	}
	var out []Category
	hasOther := false
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		c, ok := known[strings.ToLower(n)]
		if !ok {
			c = Category{Name: n}
		}
		hasOther = hasOther || strings.EqualFold(n, Other)
		out = append(out, c)
	}
	if !hasOther {
		out = append(out, Category{Name: Other})
	}
	return out
}

// Service provides case-insensitive lookup over a category list.
type Service struct {
	categories []Category
	byName     map[string]Category
}

func NewService(categories []Category) *Service {
	byName := make(map[string]Category, len(categories))
	for _, c := range categories {
		byName[strings.ToLower(c.Name)] = c
	}
	return &Service{categories: categories, byName: byName}
}

// All returns all categories in display order.
func (s *Service) All() []Category {
	return s.categories
}

// Canonical returns the listed spelling of name.
func (s *Service) Canonical(name string) (string, bool) {
	c, ok := s.byName[strings.ToLower(strings.TrimSpace(name))]
	return c.Name, ok
}

// Exists reports whether name is listed, ignoring case.
func (s *Service) Exists(name string) bool {
	_, ok := s.Canonical(name)
	return ok
}

// ForKind returns the categories usable for kind, including kind-neutral ones.
func (s *Service) ForKind(kind model.Kind) []Category {
	var result []Category
	for _, c := range s.categories {
		if c.Kind == "" || c.Kind == kind {
			result = append(result, c)
		}
	}
	return result
}
