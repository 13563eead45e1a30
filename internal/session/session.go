// Package session keeps the per-user state of an in-progress eligibility
// conversation.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/emeklilik/sgkcalc/internal/domain"
)

// ErrNotFound is returned when a user has no open session.
var ErrNotFound = errors.New("session not found")

// Step is the question a session is waiting an answer for.
type Step int

const (
	StepStatus Step = iota
	StepGender
	StepBirthDate
	StepEntryDate
	StepDays
	StepDone
)

func (s Step) String() string {
	switch s {
	case StepStatus:
		return "status"
	case StepGender:
		return "gender"
	case StepBirthDate:
		return "birth_date"
	case StepEntryDate:
		return "entry_date"
	case StepDays:
		return "days"
	case StepDone:
		return "done"
	default:
		return "unknown"
	}
}

// Session is a value; callers change it by storing an updated copy.
type Session struct {
	ID        string
	UserID    int64
	Language  string
	Step      Step
	Status    domain.StatusCode
	Gender    domain.Gender
	BirthDate string
	EntryDate string
	UpdatedAt time.Time
}

// New starts a session at the first question.
func New(userID int64, language string, now time.Time) Session {
	return Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Language:  language,
		Step:      StepStatus,
		UpdatedAt: now,
	}
}

// Store persists sessions keyed by user id. A user has at most one session.
type Store interface {
	Get(ctx context.Context, userID int64) (Session, error)
	Put(ctx context.Context, s Session) error
	Delete(ctx context.Context, userID int64) error
	// PurgeIdle removes sessions last updated before cutoff and returns how
	// many were removed.
	PurgeIdle(ctx context.Context, cutoff time.Time) (int, error)
}
