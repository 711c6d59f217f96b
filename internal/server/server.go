package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/palemoky/tichu/internal/config"
	"github.com/palemoky/tichu/internal/game/round"
)

// Deps are the server's collaborators. A nil Store runs without persistence;
// a nil Dealer deals from a shuffled deck.
type Deps struct {
	Store  ScoreStore
	Dealer round.Dealer
}

// Server accepts player connections over TCP and WebSocket and runs one
// worker goroutine per connection against a shared Table.
type Server struct {
	config   *config.Config
	table    *Table
	store    ScoreStore
	rec      *recorder
	upgrader websocket.Upgrader

	mu        sync.Mutex
	closing   bool
	listeners []net.Listener
	http      *http.Server
	conns     map[Conn]struct{}
	workers   sync.WaitGroup
}

// New 创建服务器实例
func New(cfg *config.Config, deps Deps) *Server {
	s := &Server{config: cfg, store: deps.Store, conns: make(map[Conn]struct{})}
	if deps.Store != nil {
		s.rec = newRecorder(deps.Store)
	}
	s.table = NewTable(deps.Dealer, s.rec)

	originChecker := NewOriginChecker(cfg.Server.AllowedOrigins)
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker.Check,
	}
	return s
}

// Table exposes the hosted game.
func (s *Server) Table() *Table { return s.table }

// Start binds the configured listeners and serves them in the background.
func (s *Server) Start() error {
	host := s.config.Server.Host
	ln, err := net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(s.config.Server.Port)))
	if err != nil {
		return fmt.Errorf("listen tcp: %w", err)
	}
	go func() { _ = s.Serve(ln) }()
	log.Info().Str("addr", ln.Addr().String()).Msg("line protocol listening")

	if s.config.Server.WSPort > 0 {
		wsLn, err := net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(s.config.Server.WSPort)))
		if err != nil {
			_ = ln.Close()
			return fmt.Errorf("listen websocket: %w", err)
		}
		srv := &http.Server{
			Handler:           s.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		s.mu.Lock()
		s.http = srv
		s.mu.Unlock()

		go func() {
			if err := srv.Serve(wsLn); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("websocket server stopped")
			}
		}()
		log.Info().Str("addr", "ws://"+wsLn.Addr().String()+"/ws").Msg("websocket listening")
	}
	return nil
}

// Serve accepts line protocol connections on ln until it is closed.
func (s *Server) Serve(ln net.Listener) error {
	s.mu.Lock()
	if s.closing {
		s.mu.Unlock()
		_ = ln.Close()
		return net.ErrClosed
	}
	s.listeners = append(s.listeners, ln)
	s.mu.Unlock()

	for {
		c, err := ln.Accept()
		if err != nil {
			if s.isClosing() {
				return nil
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				continue
			}
			return err
		}
		if !s.spawn(NewLineConn(c)) {
			_ = c.Close()
		}
	}
}

// spawn starts a worker unless the server is shutting down.
func (s *Server) spawn(conn Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing {
		return false
	}
	s.conns[conn] = struct{}{}
	s.workers.Add(1)
	go func() {
		defer s.workers.Done()
		defer s.forget(conn)
		s.serveConn(conn)
	}()
	return true
}

func (s *Server) forget(conn Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conns, conn)
}

func (s *Server) isClosing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closing
}

// Handler serves /ws and /health.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// handleWebSocket 处理 WebSocket 连接
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.isClosing() {
		http.Error(w, "Server is shutting down", http.StatusServiceUnavailable)
		return
	}

	c, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("ip", GetClientIP(r)).Msg("websocket upgrade failed")
		return
	}

	conn := newWSConn(c)
	if !s.spawn(conn) {
		_ = conn.Close()
	}
}

// handleHealth 健康检查接口
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// Shutdown stops accepting, closes every connection, waits for the workers
// and drains pending persistence.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if s.closing {
		s.mu.Unlock()
		return nil
	}
	s.closing = true
	for _, ln := range s.listeners {
		_ = ln.Close()
	}
	srv := s.http
	conns := make([]Conn, 0, len(s.conns))
	for c := range s.conns {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	if srv != nil {
		if err := srv.Shutdown(ctx); err != nil {
			log.Warn().Err(err).Msg("websocket server shutdown")
		}
	}

	for _, c := range conns {
		_ = c.Close()
	}

	done := make(chan struct{})
	go func() {
		s.workers.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return fmt.Errorf("waiting for connections: %w", ctx.Err())
	}

	if s.rec != nil {
		s.rec.close()
	}
	log.Info().Msg("server stopped")
	return nil
}
