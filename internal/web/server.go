// Package web serves the live scatter page and pushes display frames to
// connected browsers over a websocket.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/RicArch97/particle-filter-ips/internal/export"
	"github.com/RicArch97/particle-filter-ips/internal/monitoring"
	"github.com/RicArch97/particle-filter-ips/internal/plotter"
)

//go:embed static/index.html
var staticFS embed.FS

var indexTemplate = template.Must(template.ParseFS(staticFS, "static/index.html"))

// Config contains configuration options for the web server.
type Config struct {
	Listen string
	Title  string
	// Width and Height are the plot area limits shown on the page.
	Width  float64
	Height float64
	// ShowStats enables the particle cloud statistics readout.
	ShowStats bool
}

// Server handles the HTTP interface for the live plot. It implements
// plotter.Surface: every published frame is stored as the latest frame and
// broadcast to all connected websocket clients.
type Server struct {
	cfg      Config
	server   *http.Server
	upgrader websocket.Upgrader

	mu      sync.Mutex
	latest  plotter.Frame
	clients map[*websocket.Conn]bool
}

// NewServer creates a new web server with the provided configuration.
func NewServer(cfg Config) *Server {
	s := &Server{
		cfg:     cfg,
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			// the page is served from the same local address
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
	s.server = &http.Server{
		Addr:    cfg.Listen,
		Handler: s.routes(),
	}
	return s
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/api/frame", s.handleFrame)
	mux.HandleFunc("/chart", s.handleChart)
	mux.HandleFunc("/snapshot.png", s.handleSnapshot)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Publish implements plotter.Surface.
func (s *Server) Publish(f plotter.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = f
	for conn := range s.clients {
		conn.SetWriteDeadline(time.Now().Add(time.Second))
		if err := conn.WriteJSON(f); err != nil {
			conn.Close()
			delete(s.clients, conn)
		}
	}
}

// Frame returns the most recently published frame.
func (s *Server) Frame() plotter.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

// Start begins the HTTP server and blocks until the context is cancelled,
// then shuts the server down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	monitoring.Logf("live plot available at http://%s/", s.cfg.Listen)

	select {
	case err := <-errChan:
		return fmt.Errorf("web server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return s.server.Close()
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := indexTemplate.Execute(w, map[string]any{
		"Title":     s.cfg.Title,
		"Width":     s.cfg.Width,
		"Height":    s.cfg.Height,
		"ShowStats": s.cfg.ShowStats,
	})
	if err != nil {
		monitoring.Logf("failed to render index: %v", err)
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		monitoring.Logf("websocket upgrade failed: %v", err)
		return
	}

	s.mu.Lock()
	s.clients[conn] = true
	// catch the client up with the current state
	conn.SetWriteDeadline(time.Now().Add(time.Second))
	if err := conn.WriteJSON(s.latest); err != nil {
		conn.Close()
		delete(s.clients, conn)
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	// drain reads to detect disconnect; the client never sends data
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.mu.Lock()
				if s.clients[conn] {
					conn.Close()
					delete(s.clients, conn)
				}
				s.mu.Unlock()
				return
			}
		}
	}()
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.Frame()); err != nil {
		monitoring.Logf("failed to encode frame: %v", err)
	}
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/png")
	if err := export.RenderPNG(w, s.Frame(), s.cfg.Width, s.cfg.Height); err != nil {
		monitoring.Logf("failed to render snapshot: %v", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
