package cart

import (
	"fmt"

	"shopmart/catalog"
)

// Reason classifies why a cart mutation was rejected. Rejections surface as
// HTTP 400 with the Rejection's message; nothing is mutated or persisted
// once a rule fails.
type Reason string

const (
	MissingOrWrongType Reason = "MissingOrWrongType"
	InvalidQuantity    Reason = "InvalidQuantity"
	UnknownProduct     Reason = "UnknownProduct"
	InsufficientStock  Reason = "InsufficientStock"
)

// Rejection is a failed validation. It implements error so it can flow
// through the service's return path, but it is a client fault, not a
// server one.
type Rejection struct {
	Reason  Reason
	Message string
}

func (r *Rejection) Error() string { return r.Message }

func reject(reason Reason, format string, args ...any) *Rejection {
	return &Rejection{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

// ValidateAdd checks an add request against the catalog and the quantity
// already in the user's cart. Rules run in order and the first failure
// wins:
//
//  1. productId and qty must both be present integers.
//  2. qty must be positive.
//  3. productId must be a catalog member.
//  4. currentQty + qty must not exceed the product's stock ceiling.
//
// Presence is established at the JSON boundary (pointer fields); the
// validator receives the outcome as hasProduct/hasQty.
func ValidateAdd(cat *catalog.Catalog, productID, qty int, hasProduct, hasQty bool, currentQty int) *Rejection {
	if !hasProduct || !hasQty {
		return reject(MissingOrWrongType, "productId and qty are required and must be integers")
	}
	if qty <= 0 {
		return reject(InvalidQuantity, "qty must be a positive integer")
	}
	product, err := cat.Get(productID)
	if err != nil {
		return reject(UnknownProduct, "no product with id %d", productID)
	}
	// Compare against the remaining headroom rather than summing: both
	// operands here are bounded by the stock ceiling, so a huge qty cannot
	// wrap the arithmetic and sneak past the check.
	available := product.Stock - currentQty
	if available < 0 {
		available = 0
	}
	if qty > available {
		return reject(InsufficientStock, "insufficient stock for product %d: %d available", productID, available)
	}
	return nil
}

// ValidateRemove only requires productId to be a present integer. Removing
// a product that is not in the cart is a no-op success, so membership is
// not checked here.
func ValidateRemove(productID int, hasProduct bool) *Rejection {
	if !hasProduct {
		return reject(MissingOrWrongType, "productId is required and must be an integer")
	}
	return nil
}
