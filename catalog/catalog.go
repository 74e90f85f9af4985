package catalog

import (
	"errors"
	"fmt"
	"math"
	"shopmart/core"
	"strings"
)

// ErrNotFound is returned by Get when no product has the requested id.
var ErrNotFound = errors.New("product not found")

// Catalog is a fixed, read-only product list built once at startup and
// injected into everything that needs it. There are no mutation operations.
type Catalog struct {
	products []core.Product
	byID     map[int]core.Product
}

// New builds a catalog from a product list. Duplicate ids are rejected so
// the at-most-one-item-per-product cart invariant has something to lean on.
func New(products []core.Product) (*Catalog, error) {
	byID := make(map[int]core.Product, len(products))
	for _, p := range products {
		if p.ID <= 0 {
			return nil, fmt.Errorf("product %q has non-positive id %d", p.Name, p.ID)
		}
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %d", p.ID)
		}
		byID[p.ID] = p
	}
	return &Catalog{products: products, byID: byID}, nil
}

// Default returns the fixed demo catalog the service ships with.
func Default() *Catalog {
	c, err := New(demoProducts)
	if err != nil {
		// demoProducts is a compile-time constant list; this cannot happen
		// unless the list itself is edited into an invalid state.
		panic(err)
	}
	return c
}

// Get returns the product with the given id or ErrNotFound.
func (c *Catalog) Get(id int) (*core.Product, error) {
	p, ok := c.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

// All returns every product in catalog order.
func (c *Catalog) All() []core.Product {
	out := make([]core.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Search returns products whose name or description contains term,
// case-insensitively. An empty term matches everything.
func (c *Catalog) Search(term string) []core.Product {
	needle := strings.ToLower(strings.TrimSpace(term))
	out := make([]core.Product, 0, len(c.products))
	for _, p := range c.products {
		if needle == "" ||
			strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) {
			out = append(out, p)
		}
	}
	return out
}

// FilterByPrice returns products with min <= price <= max, bounds inclusive.
// Pass min <= 0 for no lower bound and max < 0 for no upper bound.
func (c *Catalog) FilterByPrice(min, max int) []core.Product {
	if min < 0 {
		min = 0
	}
	if max < 0 {
		max = math.MaxInt
	}
	out := make([]core.Product, 0, len(c.products))
	for _, p := range c.products {
		if p.Price >= min && p.Price <= max {
			out = append(out, p)
		}
	}
	return out
}
