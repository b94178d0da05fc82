// Package web serves breakout sessions to browsers over WebSocket. Every
// connection plays its own session; input arrives as JSON text messages and
// frames leave as msgpack binary messages.
package web

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/session"
)

//go:embed index.html
var indexHTML []byte

// Frame types.
const (
	FrameTypeFrame = "frame"
	FrameTypeEnd   = "end"
)

const writeTimeout = 2 * time.Second

var errSessionEnded = errors.New("session ended")

// Frame is one server-to-client message.
type Frame struct {
	Type     string            `msgpack:"type"`
	FPS      int               `msgpack:"fps"`
	Snapshot breakout.Snapshot `msgpack:"snapshot"`
	Outcome  string            `msgpack:"outcome,omitempty"`
}

// ClientMessage is one client-to-server input message.
type ClientMessage struct {
	Type string `json:"type"` // "keydown" or "keyup"
	Key  string `json:"key"`  // DOM KeyboardEvent.key
}

// Event converts the message into a key event. ok is false for unknown types.
func (m ClientMessage) Event() (core.KeyEvent, bool) {
	var k core.Key
	switch m.Key {
	case "ArrowLeft", "a", "A", "h":
		k = core.KeyLeft
	case "ArrowRight", "d", "D", "l":
		k = core.KeyRight
	default:
		k = core.KeyOther
	}

	switch m.Type {
	case "keydown":
		return core.KeyDown(k), true
	case "keyup":
		return core.KeyUp(k), true
	default:
		return core.KeyEvent{}, false
	}
}

// ServerConfig holds configuration for the WebSocket server.
type ServerConfig struct {
	Address     string
	Seed        int64 // Zero picks a time-based seed per connection
	Layout      string
	RefreshRate int
}

// DefaultServerConfig returns a config with sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Address:     ":8080",
		RefreshRate: 60,
	}
}

// Server hosts one session per WebSocket connection.
type Server struct {
	config   ServerConfig
	game     config.BreakoutConfig
	journal  session.Journal
	logger   *log.Logger
	upgrader websocket.Upgrader
	http     *http.Server

	ctx    context.Context
	cancel context.CancelFunc
	conns  sync.WaitGroup
	games  atomic.Int64
}

// NewServer creates a server. The journal and logger may be nil.
func NewServer(cfg ServerConfig, game config.BreakoutConfig, journal session.Journal, logger *log.Logger) *Server {
	if cfg.RefreshRate <= 0 {
		cfg.RefreshRate = DefaultServerConfig().RefreshRate
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		config:  cfg,
		game:    game,
		journal: journal,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		ctx:    ctx,
		cancel: cancel,
	}
	s.http = &http.Server{
		Addr:              cfg.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the HTTP routes: the browser client at / and the
// WebSocket endpoint at /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(indexHTML)
	})
	return mux
}

// ListenAndServe serves until Shutdown is called.
func (s *Server) ListenAndServe() error {
	s.logger.Info("starting web server", "address", s.config.Address)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Serve accepts connections on l until Shutdown is called.
func (s *Server) Serve(l net.Listener) error {
	if err := s.http.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections, closes every live session and waits
// for connection goroutines to exit or ctx to expire.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.conns.Wait()
		close(done)
	}()

	select {
	case <-done:
		return err
	case <-ctx.Done():
		return errors.Join(err, ctx.Err())
	}
}

func (s *Server) nextSeed() int64 {
	n := s.games.Add(1) - 1
	if s.config.Seed == 0 {
		return time.Now().UnixNano()
	}
	return s.config.Seed + n
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	s.conns.Add(1)
	defer s.conns.Done()
	defer conn.Close()

	logger := s.logger.With("remote", r.RemoteAddr)
	sess, err := session.New(s.game, session.Options{
		Seed:    s.nextSeed(),
		Layout:  s.config.Layout,
		Logger:  logger,
		Journal: s.journal,
	})
	if err != nil {
		logger.Error("cannot create session", "err", err)
		msg := websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "cannot create session")
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeTimeout))
		return
	}
	defer sess.Close()

	logger.Info("connection opened", "session", sess.ID())

	g, ctx := errgroup.WithContext(s.ctx)
	events := make(chan core.KeyEvent, 16)

	g.Go(func() error {
		return readInput(ctx, conn, events)
	})
	g.Go(func() error {
		return s.runSession(ctx, conn, sess, events)
	})
	g.Go(func() error {
		// Unblocks the reader once anything else stops.
		<-ctx.Done()
		return conn.Close()
	})

	err = g.Wait()
	switch {
	case errors.Is(err, errSessionEnded):
		logger.Info("connection closed", "session", sess.ID())
	case errors.Is(err, context.Canceled):
		logger.Info("connection closed by shutdown", "session", sess.ID())
	case websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived):
		logger.Info("connection closed by client", "session", sess.ID())
	default:
		logger.Warn("connection dropped", "session", sess.ID(), "err", err)
	}
}

// readInput decodes client messages into events until the connection fails.
// Malformed messages are skipped.
func readInput(ctx context.Context, conn *websocket.Conn, events chan<- core.KeyEvent) error {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		ev, ok := msg.Event()
		if !ok {
			continue
		}

		select {
		case events <- ev:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// runSession owns sess: input, refresh and frame writes all happen here.
func (s *Server) runSession(ctx context.Context, conn *websocket.Conn, sess *session.Session, events <-chan core.KeyEvent) error {
	ticker := time.NewTicker(time.Second / time.Duration(s.config.RefreshRate))
	defer ticker.Stop()

	if err := writeFrame(conn, Frame{Type: FrameTypeFrame, FPS: sess.Rate(), Snapshot: sess.Snapshot()}); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			if ev.Down {
				sess.KeyDown(ev.Key)
			} else {
				sess.KeyUp(ev.Key)
			}

		case now := <-ticker.C:
			stepped, err := sess.Frame(now)
			if err != nil {
				return err
			}
			if stepped {
				if err := writeFrame(conn, Frame{Type: FrameTypeFrame, FPS: sess.Rate(), Snapshot: sess.Snapshot()}); err != nil {
					return err
				}
			}

			if res, ended := sess.Result(); ended {
				end := Frame{
					Type:     FrameTypeEnd,
					FPS:      sess.Rate(),
					Snapshot: sess.Snapshot(),
					Outcome:  res.Outcome.State.String(),
				}
				if err := writeFrame(conn, end); err != nil {
					return err
				}
				msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, res.Outcome.State.String())
				_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeTimeout))
				return errSessionEnded
			}
		}
	}
}

func writeFrame(conn *websocket.Conn, f Frame) error {
	data, err := msgpack.Marshal(&f)
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.BinaryMessage, data)
}
