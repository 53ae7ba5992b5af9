// Package cartstate keeps a concurrency-safe snapshot of a single user's
// cart for storefront frontends (BFF handlers, SSR renderers). The snapshot
// is always replaced wholesale with the server's post-mutation cart, never
// patched locally, so it cannot drift from what the backend persisted.
package cartstate

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/partsdepot/partsdepot-backend/internal/cart"
	pkgerrors "github.com/partsdepot/partsdepot-backend/pkg/errors"
)

// FetchFunc loads the current cart for the user the store is bound to.
type FetchFunc func(ctx context.Context) (*cart.CartDTO, error)

// MutateFunc performs a cart mutation and returns the resulting full cart.
type MutateFunc func(ctx context.Context) (*cart.CartDTO, error)

// Store holds the latest known cart snapshot. All methods are safe for
// concurrent use.
type Store struct {
	mu       sync.RWMutex
	fetch    FetchFunc
	snapshot *cart.CartDTO
	lastErr  error
}

// NewStore builds a store around the injected fetcher. The store starts with
// an empty cart until the first Refresh or Apply.
func NewStore(fetch FetchFunc) (*Store, error) {
	if fetch == nil {
		return nil, fmt.Errorf("cart fetcher required")
	}
	return &Store{
		fetch:    fetch,
		snapshot: emptyCart(),
	}, nil
}

// Refresh replaces the snapshot with the server's current cart. A session
// that turns out to be unauthenticated degrades to an empty cart instead of
// failing, so logged-out rendering keeps working. Any other failure keeps
// the previous snapshot and is retained as the store's last error.
func (s *Store) Refresh(ctx context.Context) error {
	fetched, err := s.fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeUnauthorized {
			s.snapshot = emptyCart()
			s.lastErr = nil
			return nil
		}
		s.lastErr = err
		return err
	}

	s.snapshot = fetched
	s.lastErr = nil
	return nil
}

// Apply runs a mutation and stores the cart it returns. On failure the
// snapshot is re-synced from the server so a rejected mutation, for example
// an insufficient-stock add, still leaves the store consistent; the mutation
// error is retained and returned.
func (s *Store) Apply(ctx context.Context, mutate MutateFunc) error {
	if mutate == nil {
		return fmt.Errorf("mutation required")
	}

	updated, err := mutate(ctx)
	if err != nil {
		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()

		// Refresh clears lastErr on success; re-set it so the caller's
		// failure stays visible until dismissed.
		if refreshErr := s.Refresh(ctx); refreshErr == nil {
			s.mu.Lock()
			s.lastErr = err
			s.mu.Unlock()
		}
		return err
	}

	s.mu.Lock()
	s.snapshot = updated
	s.lastErr = nil
	s.mu.Unlock()
	return nil
}

// Snapshot returns a copy of the current cart.
func (s *Store) Snapshot() cart.CartDTO {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyCart(s.snapshot)
}

// ItemCount returns the total quantity across all lines, for badge rendering.
func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.ItemCount
}

// IsInCart reports whether the product has a line in the snapshot.
func (s *Store) IsInCart(productID uuid.UUID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.snapshot.Items {
		if s.snapshot.Items[i].ProductID == productID {
			return true
		}
	}
	return false
}

// LastError returns the retained failure from the most recent Refresh or
// Apply, if any.
func (s *Store) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// DismissError clears the retained error without touching the snapshot.
func (s *Store) DismissError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = nil
}

// Reset drops the snapshot back to an empty cart, for logout.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = emptyCart()
	s.lastErr = nil
}

func emptyCart() *cart.CartDTO {
	return &cart.CartDTO{
		Items:    []cart.CartLineDTO{},
		Subtotal: "0.00",
		Tax:      "0.00",
		Shipping: "0.00",
		Total:    "0.00",
	}
}

func copyCart(src *cart.CartDTO) cart.CartDTO {
	out := *src
	out.Items = make([]cart.CartLineDTO, len(src.Items))
	copy(out.Items, src.Items)
	return out
}
