package cart

import (
	"context"
	"sync"

	"shopmart/catalog"
	"shopmart/core"

	"github.com/sirupsen/logrus"
)

// Service owns every user's in-memory cart and mirrors mutations to a
// core.CartStore. Persistence is best effort: a failed write is logged and
// the in-memory result stands, so the session keeps working without the
// durable copy. There is no cross-process coordination; see the store
// implementations for what that means per backend.
type Service struct {
	catalog *catalog.Catalog
	store   core.CartStore

	mu       sync.RWMutex
	carts    map[string]core.Cart
	hydrated map[string]bool
}

// NewService creates a cart service over the given catalog and store.
func NewService(cat *catalog.Catalog, store core.CartStore) *Service {
	return &Service{
		catalog:  cat,
		store:    store,
		carts:    make(map[string]core.Cart),
		hydrated: make(map[string]bool),
	}
}

// hydrate loads the persisted cart for userID into memory on first touch.
// A load failure is logged and treated as an empty cart; the session is
// never blocked on storage. Callers must hold s.mu.
func (s *Service) hydrate(ctx context.Context, userID string) {
	if s.hydrated[userID] {
		return
	}
	persisted, err := s.store.Load(ctx, userID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
		}).WithError(err).Warn("Failed to load persisted cart, starting empty")
		persisted = core.Cart{}
	}
	s.carts[userID] = persisted
	s.hydrated[userID] = true
}

// persist writes the user's full cart to the store. Failures are swallowed
// after logging: durability never trumps the response already computed.
func (s *Service) persist(ctx context.Context, userID string, cart core.Cart) {
	if err := s.store.Save(ctx, userID, cart); err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"items":   len(cart),
		}).WithError(err).Error("Failed to persist cart")
	}
}

// Get returns the user's cart, hydrating it from the store on first read.
func (s *Service) Get(ctx context.Context, userID string) core.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hydrate(ctx, userID)
	return s.carts[userID].Clone()
}

// Add validates and applies an add request. When an item for the product
// already exists its quantity is incremented in place, preserving the
// item's position; otherwise a new item is appended. On rejection the cart
// is untouched and nothing is persisted.
func (s *Service) Add(ctx context.Context, userID string, productID, qty int, hasProduct, hasQty bool) (core.Cart, *Rejection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hydrate(ctx, userID)

	cart := s.carts[userID]
	currentQty := 0
	idx := cart.Find(productID)
	if idx >= 0 {
		currentQty = cart[idx].Qty
	}

	if rej := ValidateAdd(s.catalog, productID, qty, hasProduct, hasQty, currentQty); rej != nil {
		logrus.WithFields(logrus.Fields{
			"user_id":    userID,
			"product_id": productID,
			"qty":        qty,
			"reason":     rej.Reason,
		}).Info("Cart add rejected")
		return cart.Clone(), rej
	}

	if idx >= 0 {
		cart[idx].Qty += qty
	} else {
		cart = append(cart, core.CartItem{ProductID: productID, Qty: qty})
	}
	s.carts[userID] = cart
	s.persist(ctx, userID, cart)

	logrus.WithFields(logrus.Fields{
		"user_id":    userID,
		"product_id": productID,
		"qty":        qty,
	}).Info("Cart item added")
	return cart.Clone(), nil
}

// Remove deletes the item for productID if present. Removing a product
// that is not in the cart succeeds and returns the cart unchanged, though
// it is still persisted.
func (s *Service) Remove(ctx context.Context, userID string, productID int) core.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hydrate(ctx, userID)

	cart := s.carts[userID]
	if idx := cart.Find(productID); idx >= 0 {
		cart = append(cart[:idx], cart[idx+1:]...)
	}
	s.carts[userID] = cart
	s.persist(ctx, userID, cart)

	logrus.WithFields(logrus.Fields{
		"user_id":    userID,
		"product_id": productID,
	}).Info("Cart item removed")
	return cart.Clone()
}

// Clear replaces the user's cart with an empty one and persists it.
func (s *Service) Clear(ctx context.Context, userID string) core.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hydrate(ctx, userID)

	cart := core.Cart{}
	s.carts[userID] = cart
	s.persist(ctx, userID, cart)

	logrus.WithField("user_id", userID).Info("Cart cleared")
	return cart
}

// Total sums price*qty over the user's cart. An item whose product has
// vanished from the catalog contributes zero rather than erroring, so a
// stale persisted cart still totals cleanly.
func (s *Service) Total(ctx context.Context, userID string) core.CartTotal {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hydrate(ctx, userID)

	var total core.CartTotal
	for _, item := range s.carts[userID] {
		if product, err := s.catalog.Get(item.ProductID); err == nil {
			total.Total += product.Price * item.Qty
		}
		total.ItemCount += item.Qty
	}
	return total
}
