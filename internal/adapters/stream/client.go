// Package stream opens the mevlog backend websocket streams.
package stream

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pawurb/mevlog-viewer/internal/domain/config"
	"github.com/pawurb/mevlog-viewer/internal/domain/models"
	"github.com/pawurb/mevlog-viewer/internal/usecase"
)

const (
	handshakeTimeout = 10 * time.Second
	closeGracePeriod = time.Second
	readLimit        = 16 << 20
	bufferedMessages = 64
)

// Client dials backend streams
type Client struct {
	baseURL string
	dialer  *websocket.Dialer
	log     *slog.Logger
}

// NewClient creates a stream client for cfg.BaseURL
func NewClient(cfg *config.RuntimeConfig, log *slog.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		dialer: &websocket.Dialer{
			Proxy:            websocket.DefaultDialer.Proxy,
			HandshakeTimeout: handshakeTimeout,
		},
		log: log.With("component", "stream"),
	}
}

// Open dials the websocket endpoint of kind with query as URI parameters.
// The stream ends when the server closes it, ctx is cancelled or Close is
// called.
func (c *Client) Open(ctx context.Context, kind models.StreamKind, query url.Values) (usecase.Stream, error) {
	endpoint, err := WebsocketURL(c.baseURL, kind, query)
	if err != nil {
		return nil, err
	}

	c.log.Debug("dialing", "url", endpoint)
	conn, resp, err := c.dialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("websocket handshake failed with status %d: %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("failed to connect to %s: %w", kind.Path(), err)
	}
	conn.SetReadLimit(readLimit)

	s := &Stream{
		conn:     conn,
		messages: make(chan models.StreamMessage, bufferedMessages),
		done:     make(chan struct{}),
		log:      c.log.With("kind", kind),
	}
	go s.read()
	go s.watch(ctx)
	return s, nil
}

// WebsocketURL maps the http(s) base URL to ws(s) and appends the stream path
func WebsocketURL(baseURL string, kind models.StreamKind, query url.Values) (string, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	switch u.Scheme {
	case "https", "wss":
		u.Scheme = "wss"
	case "http", "ws":
		u.Scheme = "ws"
	default:
		return "", fmt.Errorf("invalid base url %q: unsupported scheme", baseURL)
	}
	u.Path += kind.Path()
	u.RawQuery = query.Encode()
	return u.String(), nil
}

// Stream is one open websocket connection
type Stream struct {
	conn     *websocket.Conn
	messages chan models.StreamMessage
	done     chan struct{}
	log      *slog.Logger

	mu        sync.Mutex
	err       error
	closeOnce sync.Once
}

// Messages yields every text frame; it is closed when the stream ends
func (s *Stream) Messages() <-chan models.StreamMessage {
	return s.messages
}

// Err reports why the stream ended. A normal server close is not an error.
func (s *Stream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close sends a close frame and tears the connection down
func (s *Stream) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeGracePeriod))
		err = s.conn.Close()
	})
	return err
}

func (s *Stream) read() {
	defer close(s.messages)
	for {
		kind, data, err := s.conn.ReadMessage()
		if err != nil {
			s.finish(err)
			return
		}
		if kind != websocket.TextMessage {
			continue
		}
		select {
		case s.messages <- models.NewStreamMessage(data):
		case <-s.done:
			s.finish(nil)
			return
		}
	}
}

func (s *Stream) watch(ctx context.Context) {
	select {
	case <-ctx.Done():
		s.log.Debug("context done, closing stream")
		s.Close()
	case <-s.done:
	}
}

func (s *Stream) finish(err error) {
	select {
	case <-s.done:
		// closed locally
		err = nil
	default:
	}
	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
		err = nil
	}

	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
	if err != nil {
		s.log.Debug("stream ended", "error", err)
	}
}

var (
	_ usecase.Streamer = (*Client)(nil)
	_ usecase.Stream   = (*Stream)(nil)
)
