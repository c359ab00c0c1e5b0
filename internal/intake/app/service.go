package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pixelpatch/studio-api/internal/intake/domain"
	"github.com/pixelpatch/studio-api/internal/records"
)

var ErrInvalidInput = errors.New("invalid input")

// TaskTracker is the external system where each application becomes a task.
type TaskTracker interface {
	CreateTask(ctx context.Context, sub domain.Submission) error
}

// Recorder keeps a local copy of each submission. Best effort.
type Recorder interface {
	RecordIntake(ctx context.Context, sub records.IntakeSubmission) error
}

type Service struct {
	tracker  TaskTracker
	recorder Recorder
	log      *slog.Logger
}

func NewService(tracker TaskTracker, recorder Recorder, log *slog.Logger) *Service {
	return &Service{tracker: tracker, recorder: recorder, log: log}
}

// Submit validates the form and forwards it to the task tracker. The local
// record is written regardless of whether the forward succeeds, so a tracker
// outage never loses an application.
func (s *Service) Submit(ctx context.Context, sub domain.Submission) error {
	if err := sub.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if s.recorder != nil {
		if err := s.recorder.RecordIntake(ctx, records.IntakeSubmission{
			Name:       sub.Name,
			Email:      sub.Email,
			Company:    sub.Company,
			Website:    sub.Website,
			Goals:      sub.Goals,
			Timeline:   sub.Timeline,
			Budget:     sub.Budget,
			LeadSource: sub.LeadSource,
			Services:   sub.Services,
		}); err != nil {
			s.log.Warn("recording intake submission failed", slog.Any("err", err))
		}
	}

	if err := s.tracker.CreateTask(ctx, sub); err != nil {
		return fmt.Errorf("forwarding intake submission: %w", err)
	}
	return nil
}
