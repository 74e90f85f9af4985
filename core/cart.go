package core

import "context"

type (
	// CartItem is one line of a cart. A cart holds at most one item per
	// product; repeated adds increment Qty in place.
	CartItem struct {
		ProductID int `json:"productId"`
		Qty       int `json:"qty"`
	}

	// Cart is the ordered list of items owned by a single user. Order is
	// insertion order and survives quantity increments.
	Cart []CartItem

	// CartTotal is the aggregate view returned by the total endpoint.
	CartTotal struct {
		Total     int `json:"total"` // minor currency units
		ItemCount int `json:"itemCount"`
	}

	// CartStore defines the persistence layer for carts. All operations are
	// keyed by userID. Implementations decide whether storage is a shared
	// blob or per-user records; callers treat writes as best effort.
	CartStore interface {
		// Load returns the persisted cart for a user, or an empty cart if
		// none has been saved yet.
		Load(ctx context.Context, userID string) (Cart, error)

		// Save persists the full cart for a user, replacing any prior state.
		Save(ctx context.Context, userID string, cart Cart) error
	}
)

// Find returns the index of the item for productID, or -1.
func (c Cart) Find(productID int) int {
	for i, item := range c {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

// Clone returns a copy safe to hand to callers while the original keeps
// being mutated under the service lock.
func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	copy(out, c)
	return out
}
