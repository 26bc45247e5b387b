// ABOUTME: Websocket remote control server
// ABOUTME: Accepts play/stop requests and queues them for the audio worker
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/Resonate-Protocol/wavecast/internal/command"
	"github.com/Resonate-Protocol/wavecast/internal/discovery"
	"github.com/Resonate-Protocol/wavecast/internal/protocol"
	"github.com/Resonate-Protocol/wavecast/internal/version"
	"github.com/Resonate-Protocol/wavecast/pkg/audio/decode"
	"github.com/gorilla/websocket"
)

// DefaultPath is where the control endpoint is mounted
const DefaultPath = "/control"

const writeDeadline = 10 * time.Second

// Config holds remote control configuration
type Config struct {
	Addr string
	Path string
	Name string // advertised name
	MDNS bool
}

// Server exposes the command queue over websockets
type Server struct {
	config   Config
	queue    *command.Queue
	upgrader websocket.Upgrader
	mux      *http.ServeMux

	httpServer *http.Server
	listener   net.Listener
	mdns       *discovery.Manager

	connsMu  sync.Mutex
	conns    map[*websocket.Conn]struct{}
	stopping bool
	wg       sync.WaitGroup
}

// New creates a remote control server feeding queue
func New(config Config, queue *command.Queue) *Server {
	if config.Path == "" {
		config.Path = DefaultPath
	}

	s := &Server{
		config: config,
		queue:  queue,
		mux:    http.NewServeMux(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Non-browser clients send no Origin header
				origin := r.Header.Get("Origin")
				if origin != "" {
					log.Printf("Rejected remote control from origin: %s", origin)
					return false
				}
				return true
			},
		},
		conns: make(map[*websocket.Conn]struct{}),
	}

	s.mux.HandleFunc(config.Path, s.handleWebSocket)

	return s
}

// Handler returns the HTTP handler serving the control endpoint
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start listens on the configured address and serves in the background
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Addr, err)
	}
	s.listener = ln

	s.httpServer = &http.Server{
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("Remote control listening on %s%s", ln.Addr(), s.config.Path)

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Remote control server error: %v", err)
		}
	}()

	if s.config.MDNS {
		port := ln.Addr().(*net.TCPAddr).Port
		s.mdns = discovery.NewManager(discovery.Config{
			ServiceName: s.config.Name,
			Port:        port,
			Path:        s.config.Path,
			Info:        []string{"version=" + version.Version},
		})
		if err := s.mdns.Advertise(); err != nil {
			// Remote control still works by address
			log.Printf("mDNS advertisement failed: %v", err)
		}
	}

	return nil
}

// Addr returns the listening address once started
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Stop shuts the server down and closes open connections
func (s *Server) Stop(ctx context.Context) error {
	if s.mdns != nil {
		s.mdns.Stop()
	}

	var err error
	if s.httpServer != nil {
		if serr := s.httpServer.Shutdown(ctx); serr != nil {
			err = fmt.Errorf("remote control shutdown: %w", serr)
		}
	}

	// Hijacked websocket connections are not closed by Shutdown
	s.connsMu.Lock()
	s.stopping = true
	for conn := range s.conns {
		conn.Close()
	}
	s.connsMu.Unlock()

	s.wg.Wait()
	return err
}

// handleWebSocket handles WebSocket connections
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	if !s.track(conn) {
		conn.Close()
		return
	}

	log.Printf("Remote control connection from %s", r.RemoteAddr)

	defer func() {
		s.connsMu.Lock()
		delete(s.conns, conn)
		s.connsMu.Unlock()
		conn.Close()
		s.wg.Done()
	}()

	s.handleConnection(conn)
}

// track registers a connection unless the server is stopping
func (s *Server) track(conn *websocket.Conn) bool {
	s.connsMu.Lock()
	defer s.connsMu.Unlock()

	if s.stopping {
		return false
	}
	s.wg.Add(1)
	s.conns[conn] = struct{}{}
	return true
}

// handleConnection greets the client then answers requests until it disconnects
func (s *Server) handleConnection(conn *websocket.Conn) {
	hello := protocol.Hello{
		Name:            s.config.Name,
		ProductName:     version.Product,
		SoftwareVersion: version.Version,
		Commands:        []string{protocol.CommandPlay, protocol.CommandStop, protocol.CommandTone},
		Extensions:      decode.Extensions(),
	}
	if err := s.send(conn, hello); err != nil {
		log.Printf("Error sending hello: %v", err)
		return
	}

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			return
		}

		var reply protocol.Reply
		if msgType != websocket.TextMessage {
			reply = protocol.Reply{Error: "expected a JSON text message"}
		} else {
			reply = s.handleRequest(data)
		}

		if err := s.send(conn, reply); err != nil {
			log.Printf("Error writing reply: %v", err)
			return
		}
	}
}

// handleRequest queues a request and builds the reply
func (s *Server) handleRequest(data []byte) protocol.Reply {
	req, err := protocol.ParseRequest(data)
	if err != nil {
		log.Printf("Rejected remote request: %v", err)
		return protocol.Reply{Error: err.Error()}
	}

	var cmd command.Command
	switch req.Command {
	case protocol.CommandPlay:
		cmd = command.Play(req.Path)
	case protocol.CommandStop:
		cmd = command.Stop()
	case protocol.CommandTone:
		cmd = command.Tone(req.Freq, time.Duration(req.Millis)*time.Millisecond)
	}

	s.queue.Enqueue(cmd)
	log.Printf("Remote queued %s", cmd)

	return protocol.Reply{ID: cmd.ID, Queued: true}
}

func (s *Server) send(conn *websocket.Conn, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	conn.SetWriteDeadline(time.Now().Add(writeDeadline))
	return conn.WriteMessage(websocket.TextMessage, data)
}
