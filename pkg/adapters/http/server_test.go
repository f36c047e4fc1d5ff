package http_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/algoviz/internal/testutils"
	api "github.com/aretw0/algoviz/pkg/adapters/http"
	"github.com/aretw0/algoviz/pkg/adapters/memory"
	"github.com/aretw0/algoviz/pkg/catalog"
	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/driver"
	"github.com/aretw0/algoviz/pkg/observability"
	"github.com/aretw0/algoviz/pkg/registry"
	"github.com/aretw0/algoviz/pkg/session"
	"github.com/aretw0/algoviz/pkg/sim/search"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sessionBody struct {
	Session  domain.Session  `json:"session"`
	Snapshot json.RawMessage `json:"snapshot"`
}

func newHandler(t *testing.T) http.Handler {
	t.Helper()
	reg := registry.Builtin()
	promReg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(promReg)
	mgr := session.NewManager(reg, memory.NewStore(),
		session.WithObserver(metrics),
		session.WithDriverOptions(
			driver.WithClock(testutils.NewFakeClock()),
			driver.WithHooks(metrics.Hooks()),
		),
	)
	t.Cleanup(func() { _ = mgr.Close() })
	return api.NewHandler(mgr, reg, catalog.Default(), api.WithMetrics(promReg), api.WithVersion("test"))
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func create(t *testing.T, h http.Handler, body string) sessionBody {
	t.Helper()
	w := do(t, h, "POST", "/sessions", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var out sessionBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealthAndCatalog(t *testing.T) {
	h := newHandler(t)

	w := do(t, h, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","version":"test"}`, w.Body.String())

	w = do(t, h, "GET", "/catalog", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"topological-sort"`)

	w = do(t, h, "GET", "/modules/"+search.ID+"/scenarios", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"classic"`)

	w = do(t, h, "GET", "/modules/nope/scenarios", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionLifecycle(t *testing.T) {
	h := newHandler(t)
	created := create(t, h, `{"module":"binary-search","scenario":"missing"}`)
	id := created.Session.ID
	assert.Equal(t, domain.RunIdle, created.Session.Status)

	w := do(t, h, "POST", "/sessions/"+id+"/step", "")
	require.Equal(t, http.StatusOK, w.Code)
	var stepped sessionBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stepped))
	assert.Equal(t, 1, stepped.Session.Cursor)
	assert.Equal(t, domain.RunPaused, stepped.Session.Status)

	w = do(t, h, "GET", "/sessions/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	var got sessionBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	var head domain.Header
	require.NoError(t, json.Unmarshal(got.Snapshot, &head))
	assert.Equal(t, 1, head.Tick)

	w = do(t, h, "PUT", "/sessions/"+id+"/speed", `{"speed":2}`)
	assert.Equal(t, http.StatusOK, w.Code)
	w = do(t, h, "PUT", "/sessions/"+id+"/speed", `{"speed":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, "PUT", "/sessions/"+id+"/scenario", `{"scenario":"single"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	w = do(t, h, "PUT", "/sessions/"+id+"/scenario", `{"scenario":"nope"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, "POST", "/sessions/"+id+"/jump", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, "GET", "/sessions", "")
	assert.Contains(t, w.Body.String(), id)

	w = do(t, h, "DELETE", "/sessions/"+id, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, h, "GET", "/sessions/"+id, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateSession_Errors(t *testing.T) {
	h := newHandler(t)
	assert.Equal(t, http.StatusBadRequest, do(t, h, "POST", "/sessions", `{`).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, "POST", "/sessions", `{"module":"nope"}`).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, "POST", "/sessions", `{"module":"bfs","scenario":"nope"}`).Code)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newHandler(t)
	created := create(t, h, `{"module":"binary-search"}`)
	do(t, h, "POST", "/sessions/"+created.Session.ID+"/step", "")

	w := do(t, h, "GET", "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `algoviz_ticks_total{module="binary-search"} 1`)
	assert.Contains(t, w.Body.String(), `algoviz_active_drivers{module="binary-search"} 1`)
}

func TestSubscribeEvents(t *testing.T) {
	h := newHandler(t)
	srv := httptest.NewServer(h)
	defer srv.Close()

	created := create(t, h, `{"module":"binary-search","scenario":"missing"}`)
	id := created.Session.ID

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, "GET", srv.URL+"/sessions/"+id+"/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	events := make(chan [2]string, 16)
	go func() {
		sc := bufio.NewScanner(resp.Body)
		var event string
		for sc.Scan() {
			line := sc.Text()
			switch {
			case strings.HasPrefix(line, "event: "):
				event = strings.TrimPrefix(line, "event: ")
			case strings.HasPrefix(line, "data: "):
				events <- [2]string{event, strings.TrimPrefix(line, "data: ")}
			}
		}
		close(events)
	}()

	next := func() [2]string {
		select {
		case e, ok := <-events:
			require.True(t, ok, "stream closed early")
			return e
		case <-ctx.Done():
			t.Fatal("timed out waiting for event")
			return [2]string{}
		}
	}

	assert.Equal(t, [2]string{"ping", "connected"}, next())
	initial := next()
	assert.Equal(t, "snapshot", initial[0])
	var first struct {
		Diff domain.HeaderDiff `json:"diff"`
	}
	require.NoError(t, json.Unmarshal([]byte(initial[1]), &first))
	assert.Equal(t, 0, first.Diff.Tick)
	require.NotNil(t, first.Diff.Phase)
	assert.Equal(t, domain.PhaseIdle, *first.Diff.Phase)

	// Step through the shared handler; the stream must carry the new tick.
	stepReq := httptest.NewRequest("POST", "/sessions/"+id+"/step", bytes.NewReader(nil))
	h.ServeHTTP(httptest.NewRecorder(), stepReq)

	var sawTick, sawSession bool
	for !(sawTick && sawSession) {
		e := next()
		switch e[0] {
		case "snapshot":
			var payload struct {
				Diff domain.HeaderDiff `json:"diff"`
			}
			require.NoError(t, json.Unmarshal([]byte(e[1]), &payload))
			assert.Equal(t, 1, payload.Diff.Tick)
			sawTick = true
		case "session":
			var rec domain.Session
			require.NoError(t, json.Unmarshal([]byte(e[1]), &rec))
			assert.Equal(t, 1, rec.Cursor)
			sawSession = true
		}
	}
}

func TestSubscribeEvents_UnknownSession(t *testing.T) {
	h := newHandler(t)
	w := do(t, h, "GET", "/sessions/missing/events", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
