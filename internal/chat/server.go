package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Hilal-Ahmad786/PaperWebsite/internal/observability"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
	readLimit  = 8 << 10
)

// Server upgrades chat connections and runs one session per socket.
type Server struct {
	upgrader websocket.Upgrader
	agent    Agent
	delay    time.Duration
	logger   *zap.Logger
	now      func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
	closed   bool
}

// Option configures a Server.
type Option func(*Server)

// WithTypingDelay overrides DefaultTypingDelay.
func WithTypingDelay(d time.Duration) Option {
	return func(s *Server) {
		if d >= 0 {
			s.delay = d
		}
	}
}

// WithLogger sets the logger used outside request scope.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCheckOrigin replaces the same-origin check.
func WithCheckOrigin(fn func(*http.Request) bool) Option {
	return func(s *Server) {
		s.upgrader.CheckOrigin = fn
	}
}

// NewServer returns a chat server answering through agent.
func NewServer(agent Agent, opts ...Option) *Server {
	s := &Server{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		agent:    agent,
		delay:    DefaultTypingDelay,
		logger:   zap.NewNop(),
		now:      time.Now,
		sessions: map[string]*Session{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sessions returns the number of open sessions.
func (s *Server) Sessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := observability.FromContext(r.Context())
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("chat upgrade failed", zap.Error(err))
		return
	}
	lang := strings.ToLower(r.URL.Query().Get("lang"))

	// the request context ends with the handler; sessions outlive it
	ctx, cancel := context.WithCancel(context.WithoutCancel(r.Context()))
	sess := &Session{
		ID:     uuid.NewString(),
		Lang:   lang,
		server: s,
		conn:   conn,
		send:   make(chan Frame, 32),
		ctx:    ctx,
		cancel: cancel,
		logger: logger,
	}
	s.mu.Lock()
	closed := s.closed
	if !closed {
		s.sessions[sess.ID] = sess
	}
	s.mu.Unlock()
	if closed {
		sess.goAway()
		return
	}

	go sess.writer()
	go sess.reader()
}

// Close ends every open session with a going-away frame. Connections
// accepted afterwards are closed straight away.
func (s *Server) Close() {
	s.mu.Lock()
	s.closed = true
	open := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		open = append(open, sess)
	}
	s.mu.Unlock()

	for _, sess := range open {
		sess.goAway()
	}
	if len(open) > 0 {
		s.logger.Info("chat sessions closed", zap.Int("count", len(open)))
	}
}

func (s *Server) remove(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Session is one connected widget.
type Session struct {
	ID   string
	Lang string

	server *Server
	conn   *websocket.Conn
	send   chan Frame
	ctx    context.Context
	cancel context.CancelFunc
	logger *zap.Logger

	mu      sync.Mutex
	started bool
	once    sync.Once
}

func (c *Session) reader() {
	defer c.close()
	c.conn.SetReadLimit(readLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	c.push(Frame{Type: FrameHello, ID: c.ID})
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info("chat session closed unexpectedly", zap.String("session_id", c.ID), zap.Error(err))
			}
			return
		}
		var f Frame
		if err := json.Unmarshal(data, &f); err != nil {
			c.push(Frame{Type: FrameError, Text: "malformed frame"})
			continue
		}
		c.handle(f)
	}
}

func (c *Session) handle(f Frame) {
	switch f.Type {
	case FrameStart:
		if msg := validateStart(f); msg != "" {
			c.push(Frame{Type: FrameError, Text: msg})
			return
		}
		c.mu.Lock()
		c.started = true
		c.mu.Unlock()
		c.logger.Info("chat started", zap.String("session_id", c.ID))
		if text := strings.TrimSpace(f.Text); text != "" {
			c.visitorMessage(text)
		}
	case FrameMessage:
		c.mu.Lock()
		started := c.started
		c.mu.Unlock()
		text := strings.TrimSpace(f.Text)
		switch {
		case !started:
			c.push(Frame{Type: FrameError, Text: "chat not started"})
		case text == "":
			c.push(Frame{Type: FrameError, Text: "message is empty"})
		case len(text) > maxMessageLength:
			c.push(Frame{Type: FrameError, Text: "message too long"})
		default:
			c.visitorMessage(text)
		}
	default:
		c.push(Frame{Type: FrameError, Text: "unknown frame type"})
	}
}

// visitorMessage echoes the visitor's text, shows the typing indicator and
// schedules the agent reply. The indicator is cleared before the reply.
func (c *Session) visitorMessage(text string) {
	c.push(Frame{Type: FrameMessage, ID: uuid.NewString(), Sender: SenderUser, Text: text, Timestamp: c.server.now().UnixMilli()})
	c.push(typingFrame(true))

	go func() {
		timer := time.NewTimer(c.server.delay)
		defer timer.Stop()
		select {
		case <-c.ctx.Done():
			return
		case <-timer.C:
		}
		reply, err := c.server.agent.Reply(c.ctx, c.Lang, text)
		c.push(typingFrame(false))
		if err != nil {
			c.logger.Error("chat agent reply failed", zap.String("session_id", c.ID), zap.Error(err))
			c.push(Frame{Type: FrameError, Text: "agent unavailable"})
			return
		}
		c.push(Frame{Type: FrameMessage, ID: uuid.NewString(), Sender: SenderAgent, Text: reply, Timestamp: c.server.now().UnixMilli()})
	}()
}

// push queues f unless the session is closing.
func (c *Session) push(f Frame) {
	select {
	case <-c.ctx.Done():
	case c.send <- f:
	}
}

func (c *Session) writer() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()
	for {
		select {
		case f := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(f); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.ctx.Done():
			_ = c.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return
		}
	}
}

func (c *Session) goAway() {
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	c.close()
}

func (c *Session) close() {
	c.once.Do(func() {
		c.cancel()
		_ = c.conn.Close()
		c.server.remove(c.ID)
	})
}
