package source

import (
	"context"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"golang.org/x/net/websocket"

	"github.com/rusenback/updatepanel/internal/logging"
	"github.com/rusenback/updatepanel/internal/model"
)

const (
	minBackoff = 500 * time.Millisecond
	maxBackoff = 10 * time.Second
)

// WebSocket reads JSON updates from a websocket endpoint, one update per
// message. It redials with exponential backoff whenever the socket drops.
type WebSocket struct {
	url       string
	connected atomic.Bool
	now       func() time.Time
}

// NewWebSocket returns a source for the endpoint at rawURL.
func NewWebSocket(rawURL string) *WebSocket {
	return &WebSocket{url: rawURL, now: time.Now}
}

// Name implements Source.
func (w *WebSocket) Name() string { return "websocket" }

// Connected reports whether the socket is currently open.
func (w *WebSocket) Connected() bool { return w.connected.Load() }

// Stream implements Source. Dial and read failures are sent on the error
// channel; malformed messages become error updates.
func (w *WebSocket) Stream() (<-chan model.Update, <-chan error, func()) {
	updates := make(chan model.Update)
	errChan := make(chan error, 1)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		defer close(updates)
		defer close(errChan)
		defer w.connected.Store(false)

		backoff := minBackoff
		for {
			err := w.session(ctx, updates)
			if ctx.Err() != nil {
				return
			}
			if err != nil {
				select {
				case errChan <- err:
				default:
				}
			} else {
				backoff = minBackoff
			}

			logging.Debug("websocket redial", "url", w.url, "in", backoff)
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			backoff = min(backoff*2, maxBackoff)
		}
	}()

	return updates, errChan, cancel
}

// session holds one connection open until it fails or ctx ends.
func (w *WebSocket) session(ctx context.Context, updates chan<- model.Update) error {
	cfg, err := websocket.NewConfig(w.url, origin(w.url))
	if err != nil {
		return fmt.Errorf("websocket config: %w", err)
	}
	conn, err := cfg.DialContext(ctx)
	if err != nil {
		return fmt.Errorf("dial %s: %w", w.url, err)
	}
	w.connected.Store(true)
	defer w.connected.Store(false)

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()
	defer conn.Close()

	logging.Info("websocket connected", "url", w.url)

	for {
		var data []byte
		if err := websocket.Message.Receive(conn, &data); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read %s: %w", w.url, err)
		}

		u, err := model.ParseUpdate(data, w.now())
		if err != nil {
			u = malformed(err, data, w.now())
		}

		select {
		case updates <- u:
		case <-ctx.Done():
			return nil
		}
	}
}

// origin derives an http origin from a ws URL.
func origin(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "http://localhost/"
	}
	scheme := "http"
	if u.Scheme == "wss" {
		scheme = "https"
	}
	return scheme + "://" + u.Host + "/"
}

// malformed wraps an undecodable payload as an error update.
func malformed(err error, raw []byte, now time.Time) model.Update {
	return model.Update{
		Timestamp: now,
		Message:   "Malformed update: " + err.Error(),
		Level:     model.LevelError,
		Details:   map[string]any{"raw": string(raw)},
		Step:      "DECODE",
	}
}
