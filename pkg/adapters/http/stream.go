package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/go-chi/chi/v5"
)

// Message is one server-sent event.
type Message struct {
	Event string
	Data  []byte
}

// SnapshotEvent is the payload of a "snapshot" event.
type SnapshotEvent struct {
	Diff     *domain.HeaderDiff `json:"diff"`
	Snapshot domain.Snapshot    `json:"snapshot"`
}

// streamBuffer is the per-client queue depth before messages are dropped.
const streamBuffer = 32

// StreamManager handles active SSE connections
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Message]struct{} // SessionID -> Set of Channels
	logger      *slog.Logger
}

func NewStreamManager(logger *slog.Logger) *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan Message]struct{}),
		logger:      logger,
	}
}

// Subscribe registers a client channel. The returned func is idempotent.
func (sm *StreamManager) Subscribe(sessionID string) (<-chan Message, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan Message, streamBuffer)
	if _, ok := sm.subscribers[sessionID]; !ok {
		sm.subscribers[sessionID] = make(map[chan Message]struct{})
	}
	sm.subscribers[sessionID][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		sm.removeLocked(sessionID, ch)
	}
}

func (sm *StreamManager) removeLocked(sessionID string, ch chan Message) {
	subs, ok := sm.subscribers[sessionID]
	if !ok {
		return
	}
	if _, ok := subs[ch]; !ok {
		return
	}
	delete(subs, ch)
	close(ch)
	if len(subs) == 0 {
		delete(sm.subscribers, sessionID)
	}
}

// Broadcast sends msg to every client of sessionID, dropping it for slow clients.
func (sm *StreamManager) Broadcast(sessionID string, msg Message) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers[sessionID] {
		select {
		case ch <- msg:
		default:
			sm.logger.Warn("SSE: Client buffer full, dropping message", "session_id", sessionID, "event", msg.Event)
		}
	}
}

// Close disconnects every client of sessionID.
func (sm *StreamManager) Close(sessionID string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	for ch := range sm.subscribers[sessionID] {
		sm.removeLocked(sessionID, ch)
	}
}

// Count returns the number of clients of sessionID.
func (sm *StreamManager) Count(sessionID string) int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers[sessionID])
}

// SubscribeEvents handles GET /sessions/{id}/events (SSE).
// The stream starts with the current snapshot and then carries one
// "snapshot" event per published tick plus "session" events after control calls.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	id := chi.URLParam(r, "id")
	drv, err := s.Sessions.Driver(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	ch, cancel := s.Streams.Subscribe(id)
	defer cancel()

	var (
		mu   sync.Mutex
		last *domain.Header
	)
	// encode must be called with mu held.
	encode := func(snap domain.Snapshot) (Message, bool) {
		h := snap.Head()
		data, err := json.Marshal(SnapshotEvent{Diff: domain.Diff(last, h), Snapshot: snap})
		if err != nil {
			s.logger.Warn("SSE: snapshot encode failed", "session_id", id, "err", err)
			return Message{}, false
		}
		last = &h
		return Message{Event: "snapshot", Data: data}, true
	}

	// Driver callbacks run on the tick goroutine; they only enqueue.
	snaps := make(chan Message, streamBuffer)
	mu.Lock()
	initial, unsubscribe := drv.SubscribeCurrent(func(snap domain.Snapshot) {
		mu.Lock()
		msg, ok := encode(snap)
		mu.Unlock()
		if !ok {
			return
		}
		select {
		case snaps <- msg:
		default:
			s.logger.Warn("SSE: Client buffer full, dropping message", "session_id", id, "event", msg.Event)
		}
	})
	first, firstOK := encode(initial)
	mu.Unlock()
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	if firstOK {
		writeEvent(w, first)
	}
	flusher.Flush()
	s.logger.Info("SSE: Subscribed", "session_id", id)

	for {
		var msg Message
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE Client Disconnected", "session_id", id)
			return
		case m, ok := <-ch:
			if !ok {
				return
			}
			msg = m
		case msg = <-snaps:
		}
		writeEvent(w, msg)
		flusher.Flush()
	}
}

func writeEvent(w http.ResponseWriter, msg Message) {
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Event, msg.Data)
}
