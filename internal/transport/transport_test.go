package transport

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// chatServer is a minimal WebSocket endpoint for exercising the
// transport. It can refuse upgrades to simulate a dead backend.
type chatServer struct {
	srv      *httptest.Server
	upgrader websocket.Upgrader

	refuse atomic.Bool
	dials  atomic.Int32

	mu    sync.Mutex
	conns []*websocket.Conn
}

func newChatServer(t *testing.T) *chatServer {
	t.Helper()
	s := &chatServer{}
	s.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.dials.Add(1)
		if s.refuse.Load() {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		conn, err := s.upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		s.mu.Lock()
		s.conns = append(s.conns, conn)
		s.mu.Unlock()
		// Drain inbound frames so client writes succeed.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(func() {
		s.closeConns()
		s.srv.Close()
	})
	return s
}

func (s *chatServer) wsBase() string {
	return "ws" + strings.TrimPrefix(s.srv.URL, "http")
}

func (s *chatServer) send(t *testing.T, payload string) {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NotEmpty(t, s.conns, "no client connected")
	conn := s.conns[len(s.conns)-1]
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(payload)))
}

func (s *chatServer) closeConns() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.conns {
		c.Close()
	}
	s.conns = nil
}

// events collects transport callbacks for assertions.
type events struct {
	mu          sync.Mutex
	messages    []string
	connects    int
	disconnects int
	errors      int
}

func (e *events) callbacks() Callbacks {
	return Callbacks{
		OnMessage: func(raw []byte) {
			e.mu.Lock()
			e.messages = append(e.messages, string(raw))
			e.mu.Unlock()
		},
		OnConnect: func() {
			e.mu.Lock()
			e.connects++
			e.mu.Unlock()
		},
		OnDisconnect: func() {
			e.mu.Lock()
			e.disconnects++
			e.mu.Unlock()
		},
		OnError: func(error) {
			e.mu.Lock()
			e.errors++
			e.mu.Unlock()
		},
	}
}

func (e *events) snapshot() (msgs []string, connects, disconnects, errs int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.messages...), e.connects, e.disconnects, e.errors
}

func newTestTransport(t *testing.T, s *chatServer, ev *events, attempts int) *Transport {
	t.Helper()
	tr := New(s.wsBase(), "conv-1", ev.callbacks(), Options{
		ReconnectAttempts: attempts,
		ReconnectInterval: 20 * time.Millisecond,
	})
	t.Cleanup(tr.Disconnect)
	return tr
}

func TestConnectAndReceive(t *testing.T) {
	s := newChatServer(t)
	ev := &events{}
	tr := newTestTransport(t, s, ev, 3)

	tr.Connect()
	require.Eventually(t, func() bool { return tr.State() == StateConnected },
		time.Second, 5*time.Millisecond)

	_, connects, _, _ := ev.snapshot()
	require.Equal(t, 1, connects)

	s.send(t, `{"type":"new_message","message":{"id":"m1","content":"oi"}}`)
	require.Eventually(t, func() bool {
		msgs, _, _, _ := ev.snapshot()
		return len(msgs) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestConnectIdempotent(t *testing.T) {
	s := newChatServer(t)
	ev := &events{}
	tr := newTestTransport(t, s, ev, 3)

	tr.Connect()
	tr.Connect()
	tr.Connect()
	require.Eventually(t, func() bool { return tr.State() == StateConnected },
		time.Second, 5*time.Millisecond)

	// Give any extra dial a chance to land, then verify there was one.
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, int32(1), s.dials.Load())
	_, connects, _, _ := ev.snapshot()
	require.Equal(t, 1, connects)
}

func TestMalformedFramesDropped(t *testing.T) {
	s := newChatServer(t)
	ev := &events{}
	tr := newTestTransport(t, s, ev, 3)

	tr.Connect()
	require.Eventually(t, func() bool { return tr.State() == StateConnected },
		time.Second, 5*time.Millisecond)

	s.send(t, `this is not json`)
	s.send(t, `{"type":"typing","isTyping":true}`)

	require.Eventually(t, func() bool {
		msgs, _, _, _ := ev.snapshot()
		return len(msgs) == 1
	}, time.Second, 5*time.Millisecond)

	// The malformed frame neither surfaced nor killed the connection.
	msgs, _, _, _ := ev.snapshot()
	require.Contains(t, msgs[0], "typing")
	require.Equal(t, StateConnected, tr.State())
}

func TestSendWithoutConnectionReturnsFalse(t *testing.T) {
	s := newChatServer(t)
	tr := newTestTransport(t, s, &events{}, 0)

	require.False(t, tr.Send(map[string]string{"type": "typing"}))
}

func TestSendWhenConnected(t *testing.T) {
	s := newChatServer(t)
	ev := &events{}
	tr := newTestTransport(t, s, ev, 3)

	tr.Connect()
	require.Eventually(t, func() bool { return tr.State() == StateConnected },
		time.Second, 5*time.Millisecond)

	require.True(t, tr.Send(map[string]string{"type": "typing"}))
}

func TestBoundedReconnection(t *testing.T) {
	s := newChatServer(t)
	s.refuse.Store(true)
	ev := &events{}
	tr := newTestTransport(t, s, ev, 3)

	tr.Connect()

	// Initial attempt plus exactly 3 reconnect attempts, then nothing.
	require.Eventually(t, func() bool { return s.dials.Load() == 4 },
		time.Second, 5*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	require.Equal(t, int32(4), s.dials.Load())
	require.Equal(t, StateDisconnected, tr.State())

	// An explicit Connect resets the budget.
	tr.Connect()
	require.Eventually(t, func() bool { return s.dials.Load() == 8 },
		time.Second, 5*time.Millisecond)
}

func TestConnectDuringErrorCallback(t *testing.T) {
	s := newChatServer(t)
	s.refuse.Store(true)
	ev := &events{}

	// Re-issue Connect from inside OnError, while the transport is
	// still transiently errored and the failed attempt's goroutine has
	// not finished unwinding.
	var tr *Transport
	retried := false
	cb := ev.callbacks()
	onError := cb.OnError
	cb.OnError = func(err error) {
		onError(err)
		if !retried {
			retried = true
			s.refuse.Store(false)
			tr.Connect()
		}
	}
	tr = New(s.wsBase(), "conv-1", cb, Options{
		ReconnectAttempts: 3,
		ReconnectInterval: 20 * time.Millisecond,
	})
	t.Cleanup(tr.Disconnect)

	tr.Connect()
	require.Eventually(t, func() bool { return tr.State() == StateConnected },
		time.Second, 5*time.Millisecond)

	// The superseded attempt must neither regress the state nor arm
	// its own retry timer: exactly the refused dial plus the one from
	// the reentrant Connect.
	time.Sleep(100 * time.Millisecond)
	require.Equal(t, StateConnected, tr.State())
	require.Equal(t, int32(2), s.dials.Load())
	_, connects, _, _ := ev.snapshot()
	require.Equal(t, 1, connects)
}

func TestReconnectAfterServerDrop(t *testing.T) {
	s := newChatServer(t)
	ev := &events{}
	tr := newTestTransport(t, s, ev, 3)

	tr.Connect()
	require.Eventually(t, func() bool { return tr.State() == StateConnected },
		time.Second, 5*time.Millisecond)

	// Abnormal close from the server side.
	s.closeConns()

	require.Eventually(t, func() bool {
		_, connects, _, _ := ev.snapshot()
		return connects == 2
	}, time.Second, 5*time.Millisecond, "transport should reconnect after an unexpected close")
	require.Eventually(t, func() bool { return tr.State() == StateConnected },
		time.Second, 5*time.Millisecond)

	_, _, disconnects, _ := ev.snapshot()
	require.GreaterOrEqual(t, disconnects, 1)
}

func TestDisconnectCancelsReconnect(t *testing.T) {
	s := newChatServer(t)
	s.refuse.Store(true)
	ev := &events{}
	tr := newTestTransport(t, s, ev, 10)

	tr.Connect()
	require.Eventually(t, func() bool { return s.dials.Load() >= 1 },
		time.Second, 5*time.Millisecond)

	tr.Disconnect()
	dialsAtDisconnect := s.dials.Load()

	// The pending backoff timer must not fire after teardown.
	time.Sleep(100 * time.Millisecond)
	require.LessOrEqual(t, s.dials.Load(), dialsAtDisconnect+1,
		"at most one in-flight attempt may land after Disconnect")
	require.Equal(t, StateDisconnected, tr.State())
}

func TestDisconnectIsFinal(t *testing.T) {
	s := newChatServer(t)
	ev := &events{}
	tr := newTestTransport(t, s, ev, 3)

	tr.Connect()
	require.Eventually(t, func() bool { return tr.State() == StateConnected },
		time.Second, 5*time.Millisecond)

	tr.Disconnect()
	require.Equal(t, StateDisconnected, tr.State())

	_, _, disconnects, _ := ev.snapshot()
	require.Equal(t, 1, disconnects)

	// Caller-initiated close never triggers reconnection.
	time.Sleep(100 * time.Millisecond)
	require.Equal(t, StateDisconnected, tr.State())
	require.Equal(t, int32(1), s.dials.Load())
}
