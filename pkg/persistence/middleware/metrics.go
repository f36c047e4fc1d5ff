package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

// StoreMetrics are the collectors used by Instrumented.
type StoreMetrics struct {
	Duration *prometheus.HistogramVec
	Errors   *prometheus.CounterVec
}

// NewStoreMetrics creates the collectors and registers them on reg.
// backend labels the store implementation (memory, redis, badger).
func NewStoreMetrics(reg prometheus.Registerer, backend string) *StoreMetrics {
	labels := prometheus.Labels{"backend": backend}
	m := &StoreMetrics{
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   "algoviz",
			Subsystem:   "store",
			Name:        "duration_seconds",
			Help:        "Session store call latency.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"op"}),
		Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "algoviz",
			Subsystem:   "store",
			Name:        "errors_total",
			Help:        "Failed session store calls.",
			ConstLabels: labels,
		}, []string{"op"}),
	}
	reg.MustRegister(m.Duration, m.Errors)
	return m
}

// Instrumented records call latency and failures into m.
func Instrumented(m *StoreMetrics) Middleware {
	return func(next ports.SessionStore) ports.SessionStore {
		return &instrumentedStore{next: next, m: m}
	}
}

type instrumentedStore struct {
	next ports.SessionStore
	m    *StoreMetrics
}

func (s *instrumentedStore) observe(op string, start time.Time, err error) {
	s.m.Duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		s.m.Errors.WithLabelValues(op).Inc()
	}
}

func (s *instrumentedStore) Save(ctx context.Context, sess *domain.Session) error {
	start := time.Now()
	err := s.next.Save(ctx, sess)
	s.observe("save", start, err)
	return err
}

func (s *instrumentedStore) Load(ctx context.Context, id string) (*domain.Session, error) {
	start := time.Now()
	sess, err := s.next.Load(ctx, id)
	s.observe("load", start, err)
	return sess, err
}

func (s *instrumentedStore) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := s.next.Delete(ctx, id)
	s.observe("delete", start, err)
	return err
}

func (s *instrumentedStore) List(ctx context.Context) ([]string, error) {
	start := time.Now()
	ids, err := s.next.List(ctx)
	s.observe("list", start, err)
	return ids, err
}
