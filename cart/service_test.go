package cart

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"shopmart/core"
)

// mockStore records saves and can be primed with persisted carts or forced
// to fail, standing in for the real backends.
type mockStore struct {
	mu      sync.Mutex
	carts   map[string]core.Cart
	loadErr error
	saveErr error
	saves   int
}

func newMockStore() *mockStore {
	return &mockStore{carts: make(map[string]core.Cart)}
}

func (m *mockStore) Load(ctx context.Context, userID string) (core.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.carts[userID].Clone(), nil
}

func (m *mockStore) Save(ctx context.Context, userID string, cart core.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.carts[userID] = cart.Clone()
	return nil
}

func newTestService(t *testing.T) (*Service, *mockStore) {
	t.Helper()
	store := newMockStore()
	return NewService(testCatalog(t), store), store
}

func TestAdd_NewItem(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	cart, rej := svc.Add(ctx, "u1", 1, 3, true, true)
	if rej != nil {
		t.Fatalf("Add() rejected: %v", rej)
	}
	if len(cart) != 1 || cart[0].ProductID != 1 || cart[0].Qty != 3 {
		t.Errorf("cart mismatch: got %v, want [{1 3}]", cart)
	}
	if store.saves != 1 {
		t.Errorf("store saves mismatch: got %d, want 1", store.saves)
	}
}

func TestAdd_MergesQuantityPreservingPosition(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	svc.Add(ctx, "u1", 1, 2, true, true)
	svc.Add(ctx, "u1", 2, 1, true, true)
	cart, rej := svc.Add(ctx, "u1", 1, 3, true, true)
	if rej != nil {
		t.Fatalf("Add() rejected: %v", rej)
	}

	if len(cart) != 2 {
		t.Fatalf("cart length mismatch: got %d, want 2", len(cart))
	}
	if cart[0].ProductID != 1 || cart[0].Qty != 5 {
		t.Errorf("first item mismatch: got %v, want {1 5}", cart[0])
	}
	if cart[1].ProductID != 2 || cart[1].Qty != 1 {
		t.Errorf("second item mismatch: got %v, want {2 1}", cart[1])
	}
}

func TestAdd_InsufficientStockLeavesCartUnchanged(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	// Product 1 has stock 12: filling it exactly succeeds.
	cart, rej := svc.Add(ctx, "u1", 1, 12, true, true)
	if rej != nil {
		t.Fatalf("Add(12) rejected: %v", rej)
	}
	if len(cart) != 1 || cart[0].Qty != 12 {
		t.Fatalf("cart mismatch after filling stock: got %v", cart)
	}
	savesBefore := store.saves

	// One more unit exceeds the ceiling.
	cart, rej = svc.Add(ctx, "u1", 1, 1, true, true)
	if rej == nil {
		t.Fatal("Add(1) over stock was accepted")
	}
	if rej.Reason != InsufficientStock {
		t.Errorf("Reason mismatch: got %s, want InsufficientStock", rej.Reason)
	}
	if len(cart) != 1 || cart[0].Qty != 12 {
		t.Errorf("cart changed by rejected add: got %v, want [{1 12}]", cart)
	}
	if store.saves != savesBefore {
		t.Errorf("rejected add persisted: saves went %d -> %d", savesBefore, store.saves)
	}
}

func TestAdd_HugeQuantityLeavesCartUnchanged(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	svc.Add(ctx, "u1", 1, 1, true, true)
	savesBefore := store.saves

	cart, rej := svc.Add(ctx, "u1", 1, math.MaxInt, true, true)
	if rej == nil {
		t.Fatalf("Add(MaxInt) was accepted; cart = %v", cart)
	}
	if rej.Reason != InsufficientStock {
		t.Errorf("Reason mismatch: got %s, want InsufficientStock", rej.Reason)
	}
	if len(cart) != 1 || cart[0].Qty != 1 {
		t.Errorf("cart corrupted by rejected add: got %v, want [{1 1}]", cart)
	}
	if store.saves != savesBefore {
		t.Errorf("rejected add persisted: saves went %d -> %d", savesBefore, store.saves)
	}

	// Total must still be sane.
	if total := svc.Total(ctx, "u1"); total.Total != 199999 || total.ItemCount != 1 {
		t.Errorf("Total after rejected add mismatch: got %+v", total)
	}
}

func TestAdd_UnknownProduct(t *testing.T) {
	svc, _ := newTestService(t)

	_, rej := svc.Add(context.Background(), "u2", 999, 1, true, true)
	if rej == nil || rej.Reason != UnknownProduct {
		t.Errorf("Add(999) mismatch: got %v, want UnknownProduct", rej)
	}
}

func TestAdd_PersistenceFailureDoesNotFailMutation(t *testing.T) {
	svc, store := newTestService(t)
	store.saveErr = errors.New("disk full")
	ctx := context.Background()

	cart, rej := svc.Add(ctx, "u1", 1, 2, true, true)
	if rej != nil {
		t.Fatalf("Add() rejected on persistence failure: %v", rej)
	}
	if len(cart) != 1 || cart[0].Qty != 2 {
		t.Errorf("in-memory cart mismatch: got %v, want [{1 2}]", cart)
	}

	// The in-memory cart survives even though nothing was written.
	got := svc.Get(ctx, "u1")
	if len(got) != 1 || got[0].Qty != 2 {
		t.Errorf("Get() after failed persist mismatch: got %v", got)
	}
}

func TestRemove_NoOpOnMissingItem(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cart := svc.Remove(ctx, "u1", 1)
	if len(cart) != 0 {
		t.Errorf("Remove() on empty cart mismatch: got %v, want empty", cart)
	}

	svc.Add(ctx, "u1", 1, 2, true, true)
	cart = svc.Remove(ctx, "u1", 2)
	if len(cart) != 1 || cart[0].ProductID != 1 {
		t.Errorf("Remove(non-matching) changed the cart: got %v", cart)
	}
}

func TestRemove_DeletesItem(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	svc.Add(ctx, "u1", 1, 2, true, true)
	svc.Add(ctx, "u1", 2, 1, true, true)

	cart := svc.Remove(ctx, "u1", 1)
	if len(cart) != 1 || cart[0].ProductID != 2 {
		t.Errorf("Remove(1) mismatch: got %v, want [{2 1}]", cart)
	}
}

func TestClear(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	svc.Add(ctx, "u1", 1, 2, true, true)
	svc.Add(ctx, "u1", 2, 1, true, true)

	if cart := svc.Clear(ctx, "u1"); len(cart) != 0 {
		t.Errorf("Clear() left items: %v", cart)
	}
	if cart := svc.Get(ctx, "u1"); len(cart) != 0 {
		t.Errorf("Get() after Clear() not empty: %v", cart)
	}
	// Clearing an already empty cart is still a success.
	if cart := svc.Clear(ctx, "u1"); len(cart) != 0 {
		t.Errorf("second Clear() left items: %v", cart)
	}
}

func TestTotal(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if total := svc.Total(ctx, "u1"); total.Total != 0 || total.ItemCount != 0 {
		t.Errorf("Total() on empty cart mismatch: got %+v", total)
	}

	svc.Add(ctx, "u1", 1, 2, true, true) // 199999 each
	svc.Add(ctx, "u1", 2, 1, true, true) // 149999

	total := svc.Total(ctx, "u1")
	if total.Total != 549997 {
		t.Errorf("Total mismatch: got %d, want 549997", total.Total)
	}
	if total.ItemCount != 3 {
		t.Errorf("ItemCount mismatch: got %d, want 3", total.ItemCount)
	}
}

func TestTotal_UnknownProductContributesZero(t *testing.T) {
	store := newMockStore()
	// A persisted cart can reference a product the catalog no longer has.
	store.carts["u1"] = core.Cart{{ProductID: 1, Qty: 1}, {ProductID: 42, Qty: 2}}
	svc := NewService(testCatalog(t), store)

	total := svc.Total(context.Background(), "u1")
	if total.Total != 199999 {
		t.Errorf("Total mismatch: got %d, want 199999", total.Total)
	}
	if total.ItemCount != 3 {
		t.Errorf("ItemCount mismatch: got %d, want 3", total.ItemCount)
	}
}

func TestGet_HydratesFromStoreOnce(t *testing.T) {
	store := newMockStore()
	store.carts["u1"] = core.Cart{{ProductID: 2, Qty: 4}}
	svc := NewService(testCatalog(t), store)
	ctx := context.Background()

	cart := svc.Get(ctx, "u1")
	if len(cart) != 1 || cart[0].ProductID != 2 || cart[0].Qty != 4 {
		t.Fatalf("hydrated cart mismatch: got %v, want [{2 4}]", cart)
	}

	// Later store changes are invisible: the session reads its cached cart.
	store.mu.Lock()
	store.carts["u1"] = core.Cart{}
	store.mu.Unlock()

	cart = svc.Get(ctx, "u1")
	if len(cart) != 1 {
		t.Errorf("cached cart was re-read from store: got %v", cart)
	}
}

func TestGet_HydrationFailureYieldsEmptyCart(t *testing.T) {
	store := newMockStore()
	store.loadErr = errors.New("corrupt file")
	svc := NewService(testCatalog(t), store)

	if cart := svc.Get(context.Background(), "u1"); len(cart) != 0 {
		t.Errorf("Get() with failing store mismatch: got %v, want empty", cart)
	}
}

func TestRoundTrip_NewSessionSameUser(t *testing.T) {
	store := newMockStore()
	svc := NewService(testCatalog(t), store)
	ctx := context.Background()

	svc.Add(ctx, "u1", 1, 2, true, true)
	svc.Add(ctx, "u1", 2, 1, true, true)

	// A new service over the same store models a new session for the same
	// userId reloading its persisted cart.
	svc2 := NewService(testCatalog(t), store)
	cart := svc2.Get(ctx, "u1")
	if len(cart) != 2 || cart[0].ProductID != 1 || cart[0].Qty != 2 || cart[1].ProductID != 2 || cart[1].Qty != 1 {
		t.Errorf("reloaded cart mismatch: got %v, want [{1 2} {2 1}]", cart)
	}
}
