package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/tomz197/invaders/internal/config"
	gamecfg "github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/scores"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"

	pollInterval = 2 * time.Second
	queryTimeout = 2 * time.Second
)

//go:embed index.html
var htmlPage string

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // The page may be served from a different host than the API
	},
}

// scoreboard is the payload of /api/scores and of every /ws message.
type scoreboard struct {
	Type   string         `json:"type"`
	Player string         `json:"player"`
	Best   int            `json:"best"`
	Total  int            `json:"total"`
	Scores []scores.Entry `json:"scores"`
}

type server struct {
	store   scores.Store
	sshHost string
	logger  *log.Logger
	poll    time.Duration
}

func main() {
	logger := config.NewLogger(os.Stderr, "web")

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")
	dbPath := config.PathsFromEnv().DB

	store, err := scores.OpenSQLite(dbPath)
	if err != nil {
		logger.Fatal("failed to open score database", "path", dbPath, "err", err)
	}
	defer store.Close()

	srv := &server{store: store, sshHost: sshHost, logger: logger, poll: pollInterval}

	addr := net.JoinHostPort(host, port)
	logger.Info("Starting web server", "url", "http://"+addr)
	if err := http.ListenAndServe(addr, srv.routes()); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /api/scores", s.handleScores)
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	return mux
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	page := strings.ReplaceAll(htmlPage, "{{.SSHHost}}", s.sshHost)
	fmt.Fprint(w, page)
}

func (s *server) handleScores(w http.ResponseWriter, r *http.Request) {
	player := r.URL.Query().Get("player")
	if player == "" {
		http.Error(w, "missing player", http.StatusBadRequest)
		return
	}
	board, err := s.scoreboard(r.Context(), player)
	if err != nil {
		s.logger.Error("load scores", "player", player, "err", err)
		http.Error(w, "failed to load scores", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(board); err != nil {
		s.logger.Debug("write scores", "err", err)
	}
}

// scoreboard loads a player's history, best first, trimmed to the shown
// top entries.
func (s *server) scoreboard(ctx context.Context, player string) (scoreboard, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	history, err := s.store.History(ctx, player)
	if err != nil {
		return scoreboard{}, fmt.Errorf("history for %q: %w", player, err)
	}
	board := scoreboard{
		Type:   "scores",
		Player: player,
		Total:  len(history),
		Scores: scores.Top(history, gamecfg.TopScoresShown),
	}
	if board.Scores == nil {
		board.Scores = []scores.Entry{}
	}
	if len(history) > 0 {
		board.Best = history[0].Score
	}
	return board, nil
}

// handleWebSocket pushes the player's scoreboard on connect and again
// whenever it changes.
func (s *server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	player := r.URL.Query().Get("player")
	if player == "" {
		http.Error(w, "missing player", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade error", "err", err)
		return
	}
	defer conn.Close()

	logger := s.logger.With("player", player, "remote", r.RemoteAddr)
	logger.Debug("websocket connected")

	// Mutex to protect concurrent writes to the WebSocket connection
	var writeMu sync.Mutex
	safeWriteJSON := func(v interface{}) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(v)
	}

	// The client never sends anything; reading only detects the close.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()

	var last string
	for {
		board, err := s.scoreboard(r.Context(), player)
		if err != nil {
			logger.Error("load scores", "err", err)
		} else if sig := signature(board); sig != last {
			if err := safeWriteJSON(board); err != nil {
				logger.Debug("write error", "err", err)
				return
			}
			last = sig
		}

		select {
		case <-closed:
			logger.Debug("websocket closed")
			return
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}
	}
}

// signature identifies a scoreboard's content for change detection.
func signature(b scoreboard) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d/%d", b.Total, b.Best)
	for _, e := range b.Scores {
		fmt.Fprintf(&sb, ";%d@%d", e.Score, e.PlayedAt.UnixMilli())
	}
	return sb.String()
}
