// Package transport maintains at most one live WebSocket connection
// per conversation and masks transient network failure behind a
// bounded automatic reconnect policy.
package transport

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"

	"github.com/renoribeiro/whatsapp-automation-v0-sub001/pkg/logger"
)

// Callbacks are the transport's event surface. Invocations are
// serialized; no callback ever runs concurrently with another.
// All fields are optional.
type Callbacks struct {
	// OnMessage receives each inbound frame as raw JSON. Frames that
	// fail JSON validation are dropped before reaching this callback.
	OnMessage func(raw []byte)
	// OnConnect fires after the socket opens.
	OnConnect func()
	// OnDisconnect fires after an established connection closes,
	// whether by the caller or by the network.
	OnDisconnect func()
	// OnError fires on socket-level failures. An error by itself does
	// not trigger reconnection; the close that follows does.
	OnError func(err error)
}

// Options tunes a Transport.
type Options struct {
	// ReconnectAttempts bounds automatic retries after an unexpected
	// close or a failed open. Zero disables automatic reconnection.
	ReconnectAttempts int
	// ReconnectInterval is the fixed delay before each retry.
	ReconnectInterval time.Duration
	// Dialer overrides the WebSocket dialer. Used by tests.
	Dialer *websocket.Dialer
	Logger *slog.Logger
}

// Transport owns one WebSocket connection for one conversation.
// Create one per open conversation view and tear it down with
// Disconnect when the view closes.
type Transport struct {
	url    string
	opts   Options
	logger *slog.Logger
	dialer *websocket.Dialer

	mu             sync.Mutex // guards everything below
	state          State
	conn           *websocket.Conn
	attempts       int
	reconnectTimer *time.Timer
	closing        bool
	// gen invalidates in-flight dials and readers of torn-down
	// connections; it bumps on every Disconnect and on every Connect
	// that starts a fresh attempt.
	gen int

	writeMu sync.Mutex // gorilla conns allow one concurrent writer
	cbMu    sync.Mutex // serializes callback invocations
	cb      Callbacks
}

// New creates a transport for the conversation-scoped endpoint
// ws(s)://<host>/chat/<conversationId>. It does not connect.
func New(wsBase, conversationID string, cb Callbacks, opts Options) *Transport {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	dialer := opts.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}
	return &Transport{
		url:    fmt.Sprintf("%s/chat/%s", wsBase, conversationID),
		opts:   opts,
		logger: opts.Logger.With("component", "transport", "conversation_id", conversationID),
		dialer: dialer,
		cb:     cb,
	}
}

// State returns the current connection state.
func (t *Transport) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Connect starts connecting. It is idempotent: a no-op while a
// connection is live or an attempt is in flight. An explicit Connect
// resets the retry budget.
func (t *Transport) Connect() {
	t.mu.Lock()
	if t.state == StateConnecting || t.state == StateConnected {
		t.mu.Unlock()
		return
	}
	// Invalidate any goroutine still finishing a previous attempt
	// (possible when Connect lands inside the errored->disconnected
	// window) so it cannot clobber the new connecting state or arm a
	// redundant retry timer.
	t.gen++
	t.closing = false
	t.attempts = 0
	t.startLocked()
}

// startLocked transitions to connecting and dials in the background.
// The caller must hold mu; startLocked releases it.
func (t *Transport) startLocked() {
	t.state = StateConnecting
	gen := t.gen
	t.mu.Unlock()
	go t.dial(gen)
}

func (t *Transport) dial(gen int) {
	conn, _, err := t.dialer.Dial(t.url, nil)

	t.mu.Lock()
	if t.closing || gen != t.gen {
		t.mu.Unlock()
		if conn != nil {
			conn.Close()
		}
		return
	}

	if err != nil {
		t.state = StateErrored
		t.mu.Unlock()
		logger.WithError(t.logger, err).Warn("connection failed")
		t.invoke(func(cb Callbacks) {
			if cb.OnError != nil {
				cb.OnError(err)
			}
		})
		t.mu.Lock()
		if t.gen == gen && !t.closing {
			t.state = StateDisconnected
		}
		t.mu.Unlock()
		t.scheduleReconnect()
		return
	}

	t.conn = conn
	t.state = StateConnected
	t.attempts = 0
	t.mu.Unlock()

	t.logger.Debug("connected", "url", t.url)
	t.invoke(func(cb Callbacks) {
		if cb.OnConnect != nil {
			cb.OnConnect()
		}
	})

	go t.readLoop(conn, gen)
}

func (t *Transport) readLoop(conn *websocket.Conn, gen int) {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			t.handleClose(gen, err)
			return
		}
		// Malformed frames are dropped, never fatal.
		if !sonic.Valid(raw) {
			t.logger.Warn("dropping malformed frame", "size", len(raw))
			continue
		}
		t.invoke(func(cb Callbacks) {
			if cb.OnMessage != nil {
				cb.OnMessage(raw)
			}
		})
	}
}

// handleClose runs when the reader sees an error or EOF. It decides
// whether the close warrants reconnection.
func (t *Transport) handleClose(gen int, err error) {
	t.mu.Lock()
	if gen != t.gen {
		// Stale reader of a connection Disconnect already tore down.
		t.mu.Unlock()
		return
	}
	callerClosed := t.closing
	t.conn = nil

	abnormal := !callerClosed && !websocket.IsCloseError(err,
		websocket.CloseNormalClosure, websocket.CloseGoingAway)
	if abnormal {
		t.state = StateErrored
	}
	t.mu.Unlock()

	if abnormal {
		logger.WithError(t.logger, err).Warn("connection lost")
		t.invoke(func(cb Callbacks) {
			if cb.OnError != nil {
				cb.OnError(err)
			}
		})
	}

	t.mu.Lock()
	if t.gen == gen {
		t.state = StateDisconnected
	}
	t.mu.Unlock()

	t.invoke(func(cb Callbacks) {
		if cb.OnDisconnect != nil {
			cb.OnDisconnect()
		}
	})

	if !callerClosed {
		t.scheduleReconnect()
	}
}

// scheduleReconnect arms the backoff timer for the next attempt, if
// the budget allows. The interval is flat, not exponential.
func (t *Transport) scheduleReconnect() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closing || t.state != StateDisconnected {
		return
	}
	if t.attempts >= t.opts.ReconnectAttempts {
		t.logger.Warn("reconnect budget exhausted", "attempts", t.attempts)
		return
	}
	t.attempts++
	attempt := t.attempts

	t.reconnectTimer = time.AfterFunc(t.opts.ReconnectInterval, func() {
		t.mu.Lock()
		if t.closing || t.state != StateDisconnected {
			t.mu.Unlock()
			return
		}
		t.logger.Info("reconnecting", "attempt", attempt, "max", t.opts.ReconnectAttempts)
		t.startLocked()
	})
}

// Send attempts immediate delivery of a JSON-serializable frame.
// It returns false without queuing when no live connection exists:
// fire-and-forget, no offline buffering.
func (t *Transport) Send(v any) bool {
	t.mu.Lock()
	conn := t.conn
	connected := t.state == StateConnected
	t.mu.Unlock()

	if !connected || conn == nil {
		return false
	}

	data, err := sonic.Marshal(v)
	if err != nil {
		logger.WithError(t.logger, err).Error("failed to marshal frame")
		return false
	}

	t.writeMu.Lock()
	err = conn.WriteMessage(websocket.TextMessage, data)
	t.writeMu.Unlock()
	if err != nil {
		logger.WithError(t.logger, err).Warn("send failed")
		return false
	}
	return true
}

// Disconnect tears the connection down, cancels any pending reconnect
// timer, and always leaves the transport disconnected. No automatic
// reconnection happens afterward until Connect is called again.
func (t *Transport) Disconnect() {
	t.mu.Lock()
	t.closing = true
	t.gen++
	if t.reconnectTimer != nil {
		t.reconnectTimer.Stop()
		t.reconnectTimer = nil
	}
	conn := t.conn
	t.conn = nil
	wasConnected := t.state == StateConnected
	t.state = StateDisconnected
	t.mu.Unlock()

	if conn != nil {
		deadline := time.Now().Add(time.Second)
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		conn.Close()
	}

	if wasConnected {
		t.invoke(func(cb Callbacks) {
			if cb.OnDisconnect != nil {
				cb.OnDisconnect()
			}
		})
	}
}

// invoke runs fn under the callback lock so that callbacks never
// observe each other mid-flight.
func (t *Transport) invoke(fn func(Callbacks)) {
	t.cbMu.Lock()
	defer t.cbMu.Unlock()
	fn(t.cb)
}
