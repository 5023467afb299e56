package api

import (
	"context"
	"net/http"
	"time"

	"github.com/dixieflatline76/wallsearch/pkg/wallpaper"
	"github.com/dixieflatline76/wallsearch/util"
	"github.com/gorilla/websocket"
)

// QueryRunner produces the result list for a keyword string.
type QueryRunner interface {
	RunQuery(ctx context.Context, rawText, minResPref string, limit int) []wallpaper.Item
}

// Applier applies a selected result.
type Applier interface {
	Apply(ctx context.Context, req wallpaper.ApplyRequest) wallpaper.ApplyOutcome
}

// ThumbnailStore resolves cached thumbnail file names to paths.
type ThumbnailStore interface {
	CachedThumbnail(name string) (string, error)
}

// Options holds the defaults used when a request omits a parameter.
type Options struct {
	Addr          string
	MinResolution string
	Limit         int
	Version       string
}

// Server represents the local REST/WebSocket bridge used by the launcher.
type Server struct {
	httpServer *http.Server
	mux        *http.ServeMux
	upgrader   websocket.Upgrader
	clients    *util.SafeCounter

	queries QueryRunner
	applier Applier
	thumbs  ThumbnailStore
	opts    Options
}

// NewServer creates a new API server.
func NewServer(queries QueryRunner, applier Applier, thumbs ThumbnailStore, opts Options) *Server {
	s := &Server{
		mux: http.NewServeMux(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		clients: util.NewSafeInt(),
		queries: queries,
		applier: applier,
		thumbs:  thumbs,
		opts:    opts,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/health", s.enableCORS(s.handleHealth))
	s.mux.HandleFunc("/query", s.enableCORS(s.handleQuery))
	s.mux.HandleFunc("/apply", s.enableCORS(s.handleApply))
	s.mux.HandleFunc("/thumbs/", s.enableCORS(s.handleThumb))
	s.mux.HandleFunc("/ws", s.handleWebSocket)
}

// enableCORS adds CORS headers to the handler.
func (s *Server) enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Clients returns the number of connected WebSocket clients.
func (s *Server) Clients() int {
	return s.clients.Value()
}

// Start listens on the configured address. It blocks until Stop is called.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s.httpServer.ListenAndServe()
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
