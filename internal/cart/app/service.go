package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/pixelpatch/studio-api/internal/cart/domain"
	catalogapp "github.com/pixelpatch/studio-api/internal/catalog/app"
	catalog "github.com/pixelpatch/studio-api/internal/catalog/domain"
	"github.com/pixelpatch/studio-api/internal/notify"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

// Candidate is an item about to be committed to the cart. The catalog assigns
// name, description and price at commit time.
type Candidate struct {
	Options  catalog.Options
	Quantity int
}

// ItemPatch carries partial updates for an already-committed item. Options is
// a partial JSON object merged over the item's current options; a merge
// triggers re-pricing through the catalog.
type ItemPatch struct {
	Quantity *int
	Options  json.RawMessage
}

// Service owns all per-session cart and draft state. Server-held carts see
// concurrent requests from the same browser session, so every session's state
// sits behind its own lock.
type Service struct {
	pricer   Pricer
	notifier Notifier

	mu       sync.RWMutex
	sessions map[string]*session
}

type session struct {
	mu    sync.Mutex
	cart  domain.Cart
	draft catalog.Options
}

func NewService(pricer Pricer, notifier Notifier) *Service {
	return &Service{
		pricer:   pricer,
		notifier: notifier,
		sessions: make(map[string]*session),
	}
}

func (s *Service) getOrCreate(sessionID string) *session {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if ok {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok = s.sessions[sessionID]; ok {
		return sess
	}
	sess = &session{}
	s.sessions[sessionID] = sess
	return sess
}

// AddItem prices the candidate and commits it. A line matching an existing
// item (same category, name, description and options) merges by summing
// quantity; anything else is appended with a fresh id.
func (s *Service) AddItem(sessionID string, cand Candidate) (domain.CartItem, error) {
	if cand.Quantity < 1 {
		return domain.CartItem{}, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	}
	if cand.Options == nil {
		return domain.CartItem{}, fmt.Errorf("%w: options are required", ErrInvalidInput)
	}

	priced, err := s.pricer.PriceItem(cand.Options)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	item := domain.CartItem{
		Category:    cand.Options.Category(),
		Name:        priced.Name,
		Description: priced.Description,
		Price:       priced.Price,
		Options:     cand.Options,
		Quantity:    cand.Quantity,
	}

	sess := s.getOrCreate(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	for i := range sess.cart.Items {
		if sess.cart.Items[i].SameLine(item) {
			sess.cart.Items[i].Quantity += cand.Quantity
			merged := sess.cart.Items[i]
			s.consumeDraftLocked(sess, item.Category)
			s.notifier.Publish(sessionID, notify.KindSuccess,
				fmt.Sprintf("%s: quantity updated to %d", merged.Name, merged.Quantity))
			return merged, nil
		}
	}

	item.ID = uuid.NewString()
	sess.cart.Items = append(sess.cart.Items, item)
	s.consumeDraftLocked(sess, item.Category)
	s.notifier.Publish(sessionID, notify.KindSuccess,
		fmt.Sprintf("%s added to cart (%s)", item.Name, item.Price.Format()))
	return item, nil
}

// A successful commit consumes the session's draft for that category; the
// configurator starts over from defaults. Drafts for other categories are
// left alone.
func (s *Service) consumeDraftLocked(sess *session, cat catalog.Category) {
	if sess.draft == nil || sess.draft.Category() != cat {
		return
	}
	if base, err := catalog.DefaultOptions(cat); err == nil {
		sess.draft = base
	}
}

// RemoveItem drops the item with the given id.
func (s *Service) RemoveItem(sessionID, itemID string) (domain.CartItem, error) {
	sess := s.getOrCreate(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	return s.removeLocked(sessionID, sess, itemID)
}

func (s *Service) removeLocked(sessionID string, sess *session, itemID string) (domain.CartItem, error) {
	idx := sess.cart.IndexOf(itemID)
	if idx < 0 {
		return domain.CartItem{}, fmt.Errorf("%w: item %s", ErrNotFound, itemID)
	}

	removed := sess.cart.Items[idx]
	sess.cart.Items = append(sess.cart.Items[:idx], sess.cart.Items[idx+1:]...)
	s.notifier.Publish(sessionID, notify.KindSuccess, removed.Name+" removed from cart")
	return removed, nil
}

// UpdateItem merges partial fields into an existing item. An option change
// re-prices the line through the catalog; a quantity below 1 removes the item
// instead of leaving it at zero.
func (s *Service) UpdateItem(sessionID, itemID string, patch ItemPatch) (domain.Cart, error) {
	sess := s.getOrCreate(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	idx := sess.cart.IndexOf(itemID)
	if idx < 0 {
		return domain.Cart{}, fmt.Errorf("%w: item %s", ErrNotFound, itemID)
	}
	item := sess.cart.Items[idx]

	if len(patch.Options) > 0 {
		merged, err := catalog.MergeOptions(item.Options, patch.Options)
		if err != nil {
			return domain.Cart{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		priced, err := s.pricer.PriceItem(merged)
		if err != nil {
			return domain.Cart{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		item.Options = merged
		item.Name = priced.Name
		item.Description = priced.Description
		item.Price = priced.Price
	}

	if patch.Quantity != nil {
		if *patch.Quantity < 1 {
			if _, err := s.removeLocked(sessionID, sess, itemID); err != nil {
				return domain.Cart{}, err
			}
			return s.snapshotLocked(sess), nil
		}
		item.Quantity = *patch.Quantity
	}

	sess.cart.Items[idx] = item

	// An option change can make the line identical to another; the duplicate
	// rule applies on update just as on add.
	if len(patch.Options) > 0 {
		for i := range sess.cart.Items {
			if i != idx && sess.cart.Items[i].SameLine(item) {
				sess.cart.Items[i].Quantity += item.Quantity
				absorbed := sess.cart.Items[i]
				sess.cart.Items = append(sess.cart.Items[:idx], sess.cart.Items[idx+1:]...)
				s.notifier.Publish(sessionID, notify.KindSuccess,
					fmt.Sprintf("%s: quantity updated to %d", absorbed.Name, absorbed.Quantity))
				return s.snapshotLocked(sess), nil
			}
		}
	}

	switch {
	case patch.Quantity != nil:
		s.notifier.Publish(sessionID, notify.KindSuccess,
			fmt.Sprintf("%s: quantity updated to %d", item.Name, item.Quantity))
	case len(patch.Options) > 0:
		s.notifier.Publish(sessionID, notify.KindSuccess, item.Name+" updated")
	}

	return s.snapshotLocked(sess), nil
}

// Cart returns a copy of the session's cart.
func (s *Service) Cart(sessionID string) domain.Cart {
	sess := s.getOrCreate(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.snapshotLocked(sess)
}

// Total recomputes the cart total from the current items.
func (s *Service) Total(sessionID string) catalog.Money {
	sess := s.getOrCreate(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.cart.Total()
}

// Clear resets the session's cart to empty.
func (s *Service) Clear(sessionID string) {
	sess := s.getOrCreate(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.cart = domain.Cart{}
}

func (s *Service) snapshotLocked(sess *session) domain.Cart {
	items := make([]domain.CartItem, len(sess.cart.Items))
	copy(items, sess.cart.Items)
	return domain.Cart{Items: items}
}

// UpdateDraft merges a partial option payload into the session's in-progress
// configuration. Switching category discards the previous draft first.
func (s *Service) UpdateDraft(sessionID string, cat catalog.Category, raw json.RawMessage) (catalog.Options, error) {
	sess := s.getOrCreate(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.draft == nil || sess.draft.Category() != cat {
		base, err := catalog.DefaultOptions(cat)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		sess.draft = base
	}

	if len(raw) > 0 {
		merged, err := catalog.MergeOptions(sess.draft, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		sess.draft = merged
	}

	return sess.draft, nil
}

// ResetDraft restores the category defaults. Called after a successful commit
// and on explicit reset.
func (s *Service) ResetDraft(sessionID string, cat catalog.Category) (catalog.Options, error) {
	base, err := catalog.DefaultOptions(cat)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	sess := s.getOrCreate(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.draft = base
	return base, nil
}

// Draft exposes the current configuration for cross-component visibility.
func (s *Service) Draft(sessionID string) (catalog.Options, bool) {
	sess := s.getOrCreate(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.draft, sess.draft != nil
}

// PreviewDraft prices the draft without committing it, for the live price
// preview next to the configurator.
func (s *Service) PreviewDraft(sessionID string) (catalogapp.PricedItem, error) {
	sess := s.getOrCreate(sessionID)
	sess.mu.Lock()
	draft := sess.draft
	sess.mu.Unlock()

	if draft == nil {
		return catalogapp.PricedItem{}, fmt.Errorf("%w: no draft in progress", ErrNotFound)
	}

	priced, err := s.pricer.PriceItem(draft)
	if err != nil {
		return catalogapp.PricedItem{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return priced, nil
}
