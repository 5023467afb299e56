package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/dixieflatline76/wallsearch/pkg/wallpaper"
	"github.com/dixieflatline76/wallsearch/util/log"
	"github.com/gorilla/websocket"
)

// Message is the envelope exchanged over /ws.
type Message struct {
	Type  string                  `json:"type"`
	Text  string                  `json:"text,omitempty"`
	Data  *wallpaper.ApplyRequest `json:"data,omitempty"`
	Items []wallpaper.Item        `json:"items,omitempty"`
	Error string                  `json:"error,omitempty"`
}

// Message types.
const (
	MsgQuery  = "query"
	MsgSelect = "select"
	MsgRender = "render"
	MsgHide   = "hide"
	MsgPing   = "ping"
	MsgPong   = "pong"
	MsgError  = "error"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "running",
		"version": s.opts.Version,
		"clients": s.clients.Value(),
	})
}

// handleQuery runs a search. Missing parameters fall back to the server options.
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	params := r.URL.Query()
	minRes := params.Get("min_resolution")
	if minRes == "" {
		minRes = s.opts.MinResolution
	}
	limit := s.opts.Limit
	if raw := params.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	items := s.queries.RunQuery(r.Context(), params.Get("q"), minRes, limit)
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// handleApply applies the posted selection. The launcher hides its window
// whatever the outcome, so the response is always the same.
func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req wallpaper.ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	s.apply(r.Context(), req)
	writeJSON(w, http.StatusOK, map[string]string{"action": MsgHide})
}

// apply keeps running after the caller goes away so a closed launcher
// window does not abort a half finished download.
func (s *Server) apply(ctx context.Context, req wallpaper.ApplyRequest) {
	s.applier.Apply(context.WithoutCancel(ctx), req)
}

// handleThumb serves a file from the thumbnail cache.
func (s *Server) handleThumb(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/thumbs/")
	path, err := s.thumbs.CachedThumbnail(name)
	if err != nil {
		log.Debugf("Thumbnail %q not served: %v", name, err)
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Cache-Control", "max-age=86400")
	http.ServeFile(w, r, path)
}

// handleWebSocket upgrades the connection and serves query/select messages
// until the client disconnects.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	s.clients.Increment()
	defer s.clients.Decrement()

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket read failed: %v", err)
			}
			return
		}

		reply := s.handleMessage(r.Context(), msg)
		if err := conn.WriteJSON(reply); err != nil {
			log.Printf("WebSocket write failed: %v", err)
			return
		}
	}
}

func (s *Server) handleMessage(ctx context.Context, msg Message) Message {
	switch msg.Type {
	case MsgQuery:
		return Message{
			Type:  MsgRender,
			Items: s.queries.RunQuery(ctx, msg.Text, s.opts.MinResolution, s.opts.Limit),
		}
	case MsgSelect:
		if msg.Data != nil {
			s.apply(ctx, *msg.Data)
		}
		return Message{Type: MsgHide}
	case MsgPing:
		return Message{Type: MsgPong}
	default:
		return Message{Type: MsgError, Error: "unknown message type " + strconv.Quote(msg.Type)}
	}
}
