package middleware

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/ports"
)

// Logging logs failed store calls. A missing session is not a failure.
func Logging(logger *slog.Logger) Middleware {
	return func(next ports.SessionStore) ports.SessionStore {
		return &loggingStore{next: next, logger: logger}
	}
}

type loggingStore struct {
	next   ports.SessionStore
	logger *slog.Logger
}

func (s *loggingStore) log(ctx context.Context, op, id string, err error) error {
	if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		s.logger.WarnContext(ctx, "Session store call failed", "op", op, "session_id", id, "err", err)
	}
	return err
}

func (s *loggingStore) Save(ctx context.Context, sess *domain.Session) error {
	return s.log(ctx, "save", sess.ID, s.next.Save(ctx, sess))
}

func (s *loggingStore) Load(ctx context.Context, id string) (*domain.Session, error) {
	sess, err := s.next.Load(ctx, id)
	return sess, s.log(ctx, "load", id, err)
}

func (s *loggingStore) Delete(ctx context.Context, id string) error {
	return s.log(ctx, "delete", id, s.next.Delete(ctx, id))
}

func (s *loggingStore) List(ctx context.Context) ([]string, error) {
	ids, err := s.next.List(ctx)
	return ids, s.log(ctx, "list", "", err)
}
