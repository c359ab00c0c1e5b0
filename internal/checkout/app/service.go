package app

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/pixelpatch/studio-api/internal/checkout/domain"
	"github.com/pixelpatch/studio-api/internal/records"
)

var (
	ErrEmptyCart    = errors.New("cart is empty")
	ErrMissingEmail = errors.New("a contact email is required")
	ErrNotIdle      = errors.New("checkout already started; reset before retrying")
	ErrInFlight     = errors.New("checkout request is in flight")
)

// Service drives the checkout state machine: idle -> loading -> success or
// error, with an explicit reset back to idle. One outbound request per
// attempt, no automatic retries.
type Service struct {
	links    PaymentLinks
	carts    CartReader
	recorder Recorder
	log      *slog.Logger

	redirectURL string

	mu       sync.Mutex
	sessions map[string]*domain.Session
}

func NewService(links PaymentLinks, carts CartReader, recorder Recorder, redirectURL string, log *slog.Logger) *Service {
	return &Service{
		links:       links,
		carts:       carts,
		recorder:    recorder,
		log:         log,
		redirectURL: redirectURL,
		sessions:    make(map[string]*domain.Session),
	}
}

func (s *Service) session(sessionID string) *domain.Session {
	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &domain.Session{Status: domain.StatusIdle}
		s.sessions[sessionID] = sess
	}
	return sess
}

// Session returns a copy of the current checkout state.
func (s *Service) Session(sessionID string) domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.session(sessionID)
}

// Reset returns an error or success session to idle. Resetting while a
// request is in flight is not allowed.
func (s *Service) Reset(sessionID string) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(sessionID)
	if sess.Status == domain.StatusLoading {
		return *sess, ErrInFlight
	}
	*sess = domain.Session{Status: domain.StatusIdle}
	return *sess, nil
}

// Begin serializes the cart into one payment-link request and resolves it to
// success (with a redirect URL) or error. Precondition failures leave the
// state untouched; the cart is preserved on every outcome so the user can
// retry.
func (s *Service) Begin(ctx context.Context, sessionID, email string) (domain.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return s.Session(sessionID), ErrMissingEmail
	}

	cart := s.carts.Cart(sessionID)
	if len(cart.Items) == 0 {
		return s.Session(sessionID), ErrEmptyCart
	}

	s.mu.Lock()
	sess := s.session(sessionID)
	switch sess.Status {
	case domain.StatusLoading:
		s.mu.Unlock()
		return *sess, ErrInFlight
	case domain.StatusSuccess, domain.StatusError:
		copied := *sess
		s.mu.Unlock()
		return copied, ErrNotIdle
	}
	*sess = domain.Session{Status: domain.StatusLoading}
	s.mu.Unlock()

	// Fresh key per attempt; never reused across retries.
	key := uuid.NewString()

	req := LinkRequest{
		IdempotencyKey: key,
		LineItems:      make([]LineItem, 0, len(cart.Items)),
		Metadata: map[string]string{
			"session_id": sessionID,
			"item_count": strconv.Itoa(len(cart.Items)),
		},
		RedirectURL: s.redirectURL,
		BuyerEmail:  email,
	}
	total := cart.Total()
	for _, item := range cart.Items {
		req.LineItems = append(req.LineItems, LineItem{
			Name:        item.Name,
			Quantity:    item.Quantity,
			AmountCents: item.Price.Amount,
			Currency:    item.Price.Currency,
			Note:        item.Description,
		})
	}

	link, callErr := s.links.CreateLink(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	sess = s.session(sessionID)

	outcome := "success"
	detail := ""
	switch {
	case callErr != nil:
		outcome, detail = "error", callErr.Error()
		*sess = domain.Session{Status: domain.StatusError, Error: "payment link request failed: " + callErr.Error()}
	case link.URL == "":
		outcome, detail = "error", "provider response missing checkout url"
		*sess = domain.Session{Status: domain.StatusError, Error: "payment provider returned no checkout link"}
	default:
		*sess = domain.Session{Status: domain.StatusSuccess, CheckoutURL: link.URL}
	}

	s.recordAttempt(ctx, records.CheckoutAttempt{
		SessionID:      sessionID,
		IdempotencyKey: key,
		BuyerEmail:     email,
		ItemCount:      len(cart.Items),
		TotalCents:     total.Amount,
		Currency:       total.Currency,
		Outcome:        outcome,
		Detail:         detail,
	})

	return *sess, nil
}

func (s *Service) recordAttempt(ctx context.Context, att records.CheckoutAttempt) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.RecordCheckoutAttempt(ctx, att); err != nil {
		s.log.Warn("recording checkout attempt failed", slog.Any("err", err))
	}
}
