package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/hardest-game/internal/world"
)

// Websocket settings.
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512

	maxSubmitBody = 4 << 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server serves the leaderboard and the world document over HTTP.
type Server struct {
	store  Store
	world  []byte // encoded once at startup
	feed   *Feed
	logger *log.Logger
	mux    *http.ServeMux
}

// NewServer creates a server backed by store that hands out doc as the
// world. A nil logger discards output.
func NewServer(store Store, doc world.Document, logger *log.Logger) (*Server, error) {
	encoded, err := world.Encode(doc, world.FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: encode world: %w", err)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Server{
		store:  store,
		world:  encoded,
		feed:   NewFeed(),
		logger: logger,
		mux:    http.NewServeMux(),
	}

	s.mux.HandleFunc("GET /leaderboard", s.handleLeaderboard)
	s.mux.HandleFunc("POST /submit", s.handleSubmit)
	s.mux.HandleFunc("GET /world", s.handleWorld)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /ws", s.handleWS)

	return s, nil
}

// Handler returns the HTTP handler with CORS headers applied.
func (s *Server) Handler() http.Handler {
	return enableCORS(s.mux)
}

// Feed returns the live update feed.
func (s *Server) Feed() *Feed {
	return s.feed
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("leaderboard listening", "address", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("leaderboard: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down leaderboard")
	s.feed.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	scores, err := s.store.Top(limit)
	if err != nil {
		s.logger.Error("load leaderboard", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, nonNil(scores))
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var score Score
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSubmitBody))
	if err := dec.Decode(&score); err != nil {
		http.Error(w, "invalid score: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := score.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.store.Submit(score); err != nil {
		s.logger.Error("submit score", "player", score.Player, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	s.logger.Info("score submitted", "player", score.Player, "score", score.Score, "seconds", score.Seconds())

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, SubmitResponse)

	s.publish()
}

// publish pushes the current board to every feed subscriber.
func (s *Server) publish() {
	if s.feed.SubscriberCount() == 0 {
		return
	}
	scores, err := s.store.Top(0)
	if err != nil {
		s.logger.Warn("load leaderboard for feed", "error", err)
		return
	}
	s.feed.Broadcast(Update{Type: UpdateTypeLeaderboard, Scores: nonNil(scores)})
}

func (s *Server) handleWorld(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(s.world)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// handleWS upgrades to a websocket that receives a board snapshot on
// connect and after every accepted submission.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	id, updates := s.feed.Subscribe()
	s.logger.Debug("feed subscriber connected", "id", id, "remote", r.RemoteAddr)

	scores, err := s.store.Top(0)
	if err != nil {
		s.logger.Warn("load leaderboard for feed", "error", err)
	}
	initial := Update{Type: UpdateTypeLeaderboard, Scores: nonNil(scores)}

	go s.writePump(conn, initial, updates)
	s.readPump(conn, id)
}

// readPump discards client messages and unsubscribes when the peer goes away.
func (s *Server) readPump(conn *websocket.Conn, id uint64) {
	defer func() {
		s.feed.Unsubscribe(id)
		s.logger.Debug("feed subscriber disconnected", "id", id)
	}()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.logger.Warn("websocket read", "error", err)
			}
			return
		}
	}
}

// writePump sends updates and keepalive pings until the feed closes the
// channel or a write fails.
func (s *Server) writePump(conn *websocket.Conn, initial Update, updates <-chan Update) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(initial); err != nil {
		return
	}

	for {
		select {
		case u, ok := <-updates:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(u); err != nil {
				s.logger.Debug("websocket write", "error", err)
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "encode error", http.StatusInternalServerError)
	}
}

func nonNil(scores []Score) []Score {
	if scores == nil {
		return []Score{}
	}
	return scores
}
