// Package remote accepts layout commands over HTTP, so scripts and other
// terminals can drive a running dashboard.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"flrdash/internal/layout"
	"flrdash/internal/logging"
)

// Command ops accepted by POST /commands.
const (
	OpToggle  = "toggle"
	OpMove    = "move"
	OpPopout  = "popout"
	OpRestore = "restore"
	OpSidebar = "sidebar"
)

// maxCommandBytes bounds a request body; a command is a few dozen bytes.
const maxCommandBytes = 64 << 10

// Command is one request to mutate the layout.
type Command struct {
	Op    string      `json:"op"`
	Panel string      `json:"panel,omitempty"`
	Zone  layout.Zone `json:"zone,omitempty"`
}

// Validate checks the command's shape. It does not check that the panel exists.
func (c Command) Validate() error {
	switch c.Op {
	case OpSidebar:
		return nil
	case OpToggle, OpPopout, OpRestore:
	case OpMove:
		if !c.Zone.Valid() {
			return fmt.Errorf("move: unknown zone %q", c.Zone)
		}
	default:
		return fmt.Errorf("unknown op %q", c.Op)
	}
	if c.Panel == "" {
		return fmt.Errorf("%s: panel is required", c.Op)
	}
	return nil
}

// Dispatcher hands a validated command to the event loop. It must not touch
// the layout itself; the dashboard forwards it as a message.
type Dispatcher func(Command)

// Server receives commands via HTTP.
type Server struct {
	addr     string
	dispatch Dispatcher
	log      *slog.Logger
	server   *http.Server
	listener net.Listener
}

// NewServer creates a server that will listen on addr.
func NewServer(addr string, dispatch Dispatcher, log *slog.Logger) *Server {
	if log == nil {
		log = logging.Discard()
	}
	s := &Server{addr: addr, dispatch: dispatch, log: log}
	s.server = &http.Server{Handler: s.Handler()}
	return s
}

// Handler returns the HTTP handler, for mounting or tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /commands", s.handleCommand)
	return mux
}

// Start begins listening (non-blocking). The server runs in a background goroutine.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	s.listener = ln
	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("remote command server stopped", "err", err)
		}
	}()
	s.log.Info("remote command server listening", "addr", ln.Addr().String())
	return nil
}

// Addr returns the bound address once started.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.addr
	}
	return s.listener.Addr().String()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxCommandBytes)
	var cmd Command
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		http.Error(w, fmt.Sprintf("decode command: %v", err), status)
		return
	}
	if err := cmd.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.log.Debug("remote command", "op", cmd.Op, "panel", cmd.Panel, "zone", cmd.Zone)
	if s.dispatch != nil {
		s.dispatch(cmd)
	}
	w.WriteHeader(http.StatusAccepted)
}
