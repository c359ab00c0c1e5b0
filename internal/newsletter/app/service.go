package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

var (
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicate is returned by providers when the email is already on the
	// list. Subscribers treat it as success.
	ErrDuplicate = errors.New("already subscribed")
)

// Provider is the external newsletter platform.
type Provider interface {
	Subscribe(ctx context.Context, name, email string) error
}

type Service struct {
	provider Provider
	log      *slog.Logger
}

func NewService(provider Provider, log *slog.Logger) *Service {
	return &Service{provider: provider, log: log}
}

// Subscribe adds the address to the list. An already-subscribed address is
// not an error from the visitor's point of view.
func (s *Service) Subscribe(ctx context.Context, name, email string) error {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: a valid email is required", ErrInvalidInput)
	}

	err := s.provider.Subscribe(ctx, name, email)
	if errors.Is(err, ErrDuplicate) {
		s.log.Debug("newsletter subscription already exists", slog.String("email", email))
		return nil
	}
	if err != nil {
		return fmt.Errorf("subscribing to newsletter: %w", err)
	}
	return nil
}
