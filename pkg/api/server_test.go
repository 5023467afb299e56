package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dixieflatline76/wallsearch/pkg/wallpaper"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockQueryRunner struct {
	mock.Mock
}

func (m *MockQueryRunner) RunQuery(ctx context.Context, rawText, minResPref string, limit int) []wallpaper.Item {
	args := m.Called(rawText, minResPref, limit)
	return args.Get(0).([]wallpaper.Item)
}

type MockApplier struct {
	mock.Mock
}

func (m *MockApplier) Apply(ctx context.Context, req wallpaper.ApplyRequest) wallpaper.ApplyOutcome {
	args := m.Called(req)
	return args.Get(0).(wallpaper.ApplyOutcome)
}

var testOpts = Options{Addr: "127.0.0.1:0", MinResolution: "auto", Limit: 10, Version: "0.1.0"}

func resultItems() []wallpaper.Item {
	return []wallpaper.Item{{
		Kind:        wallpaper.KindWallpaper,
		Name:        "1920x1080 - abc123",
		Description: "Colors: #000000",
		Icon:        "/cache/abc.jpg",
		Action:      &wallpaper.ApplyRequest{ID: "abc123", URL: "https://w.wallhaven.cc/full/ab/wallhaven-abc123.jpg"},
	}}
}

func newTestServer(t *testing.T) (*Server, *MockQueryRunner, *MockApplier, *wallpaper.FileManager) {
	t.Helper()
	queries := new(MockQueryRunner)
	applier := new(MockApplier)
	fm := wallpaper.NewFileManager(t.TempDir(), t.TempDir())
	return NewServer(queries, applier, fm, testOpts), queries, applier, fm
}

func wsURL(server *httptest.Server) string {
	return "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
}

func TestHealthCheck(t *testing.T) {
	s, _, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "running", body["status"])
	assert.Equal(t, "0.1.0", body["version"])
	assert.EqualValues(t, 0, body["clients"])
}

func TestQuery(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantMinRes string
		wantLimit  int
	}{
		{"defaults", "/query?q=nature+sunset", "auto", 10},
		{"explicit", "/query?q=nature+sunset&min_resolution=3840x2160&limit=5", "3840x2160", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, queries, _, _ := newTestServer(t)
			queries.On("RunQuery", "nature sunset", tt.wantMinRes, tt.wantLimit).Return(resultItems()).Once()

			rr := httptest.NewRecorder()
			s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.target, nil))

			require.Equal(t, http.StatusOK, rr.Code)
			var body struct {
				Items []wallpaper.Item `json:"items"`
			}
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			require.Len(t, body.Items, 1)
			assert.Equal(t, wallpaper.KindWallpaper, body.Items[0].Kind)
			assert.Equal(t, "abc123", body.Items[0].Action.ID)
			assert.Contains(t, rr.Body.String(), `"kind":"wallpaper"`)
			queries.AssertExpectations(t)
		})
	}
}

func TestQuery_BadRequests(t *testing.T) {
	s, queries, _, _ := newTestServer(t)

	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/query?q=x&limit=zero", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/query", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	queries.AssertNotCalled(t, "RunQuery", mock.Anything, mock.Anything, mock.Anything)
}

func TestApply(t *testing.T) {
	tests := []struct {
		name    string
		outcome wallpaper.ApplyOutcome
	}{
		{"success", wallpaper.ApplyOutcome{Stage: wallpaper.StageComplete}},
		{"download failed", wallpaper.ApplyOutcome{Stage: wallpaper.StageDownload, Err: &wallpaper.HTTPError{StatusCode: 404}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, applier, _ := newTestServer(t)
			req := wallpaper.ApplyRequest{ID: "abc123", URL: "https://w.wallhaven.cc/full/ab/wallhaven-abc123.jpg"}
			applier.On("Apply", req).Return(tt.outcome).Once()

			body := `{"id":"abc123","url":"https://w.wallhaven.cc/full/ab/wallhaven-abc123.jpg"}`
			rr := httptest.NewRecorder()
			s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/apply", strings.NewReader(body)))

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.JSONEq(t, `{"action":"hide"}`, rr.Body.String())
			applier.AssertExpectations(t)
		})
	}
}

func TestApply_InvalidBody(t *testing.T) {
	s, _, applier, _ := newTestServer(t)

	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/apply", strings.NewReader("{")))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	applier.AssertNotCalled(t, "Apply", mock.Anything)
}

func TestThumbs(t *testing.T) {
	s, _, _, fm := newTestServer(t)
	path := fm.ThumbnailPath("https://th.wallhaven.cc/small/ab/abc123.jpg")
	require.NoError(t, os.WriteFile(path, []byte("thumbdata"), 0644))

	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/thumbs/"+filepath.Base(path), nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "thumbdata", rr.Body.String())

	for _, name := range []string{"missing.jpg", "x..jpg"} {
		rr = httptest.NewRecorder()
		s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/thumbs/"+name, nil))
		assert.Equal(t, http.StatusNotFound, rr.Code, name)
	}
}

func TestWebSocketQueryAndSelect(t *testing.T) {
	s, queries, applier, _ := newTestServer(t)
	queries.On("RunQuery", "nature", "auto", 10).Return(resultItems()).Once()
	sel := wallpaper.ApplyRequest{ID: "abc123", URL: "https://w.wallhaven.cc/full/ab/wallhaven-abc123.jpg"}
	applier.On("Apply", sel).Return(wallpaper.ApplyOutcome{}).Once()

	server := httptest.NewServer(s.Handler())
	defer server.Close()

	ws, _, err := websocket.DefaultDialer.Dial(wsURL(server), nil)
	require.NoError(t, err)
	defer ws.Close()

	require.NoError(t, ws.WriteJSON(Message{Type: MsgQuery, Text: "nature"}))
	var reply Message
	require.NoError(t, ws.ReadJSON(&reply))
	assert.Equal(t, MsgRender, reply.Type)
	require.Len(t, reply.Items, 1)
	assert.Equal(t, "1920x1080 - abc123", reply.Items[0].Name)

	require.NoError(t, ws.WriteJSON(Message{Type: MsgSelect, Data: &sel}))
	require.NoError(t, ws.ReadJSON(&reply))
	assert.Equal(t, MsgHide, reply.Type)

	queries.AssertExpectations(t)
	applier.AssertExpectations(t)
}

func TestWebSocketPingAndUnknown(t *testing.T) {
	s, _, _, _ := newTestServer(t)
	server := httptest.NewServer(s.Handler())
	defer server.Close()

	ws, _, err := websocket.DefaultDialer.Dial(wsURL(server), nil)
	require.NoError(t, err)
	defer ws.Close()

	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte(`{"type":"ping"}`)))
	var reply Message
	require.NoError(t, ws.ReadJSON(&reply))
	assert.Equal(t, MsgPong, reply.Type)

	require.NoError(t, ws.WriteJSON(Message{Type: "bogus"}))
	require.NoError(t, ws.ReadJSON(&reply))
	assert.Equal(t, MsgError, reply.Type)
	assert.Contains(t, reply.Error, "bogus")

	assert.Eventually(t, func() bool { return s.Clients() == 1 }, time.Second, 10*time.Millisecond)
	ws.Close()
	assert.Eventually(t, func() bool { return s.Clients() == 0 }, time.Second, 10*time.Millisecond)
}

func TestStop_BeforeStart(t *testing.T) {
	s, _, _, _ := newTestServer(t)
	assert.NoError(t, s.Stop(context.Background()))
}
