package ports

import (
	"context"

	"github.com/aretw0/algoviz/pkg/domain"
)

// SessionStore defines the interface for persisting driver positions.
// Because simulations replay deterministically, the record alone is enough
// to rebuild the exact current snapshot.
type SessionStore interface {
	// Save persists the session under s.ID, replacing any earlier record.
	Save(ctx context.Context, s *domain.Session) error

	// Load retrieves a session.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, id string) (*domain.Session, error)

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the ids of all stored sessions.
	List(ctx context.Context) ([]string, error)
}
