// Package engine owns one conversation's message log and derives its
// presentation state: delivery ticks, typing indicator, connection
// badge. One engine plus one transport per open conversation view,
// torn down together.
package engine

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/renoribeiro/whatsapp-automation-v0-sub001/internal/domain"
	"github.com/renoribeiro/whatsapp-automation-v0-sub001/internal/transport"
	"github.com/renoribeiro/whatsapp-automation-v0-sub001/pkg/logger"
)

// Sender is the slice of the transport the engine needs for outbound
// frames.
type Sender interface {
	Send(v any) bool
}

// Options tunes an Engine.
type Options struct {
	// TypingTimeout is the quiet period after which an inbound typing
	// indicator clears itself.
	TypingTimeout time.Duration
	// Receipts drives outbound delivery progression. Nil selects
	// NopReceipts (server receipts only).
	Receipts ReceiptPolicy
	// OnUpdate is invoked after every observable state change, outside
	// the engine's lock. The UI uses it to re-render.
	OnUpdate func()
	Logger   *slog.Logger
}

// Engine is the single source of truth for one conversation's
// messages. All mutation happens under one mutex; the log itself is
// append-only except for in-place delivery state updates keyed by id.
type Engine struct {
	conversationID string
	opts           Options
	logger         *slog.Logger
	receipts       ReceiptPolicy

	mu          sync.Mutex
	log         []*domain.Message
	index       map[string]*domain.Message
	typing      bool
	typingTimer *time.Timer
	connState   transport.State
	sender      Sender
	tr          *transport.Transport
	closed      bool
}

// New creates an engine for one conversation. Attach a transport with
// AttachTransport before submitting, or set a Sender directly in
// tests.
func New(conversationID string, opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.TypingTimeout <= 0 {
		opts.TypingTimeout = 3 * time.Second
	}
	receipts := opts.Receipts
	if receipts == nil {
		receipts = NopReceipts{}
	}

	e := &Engine{
		conversationID: conversationID,
		opts:           opts,
		logger:         opts.Logger.With("component", "engine", "conversation_id", conversationID),
		receipts:       receipts,
		index:          make(map[string]*domain.Message),
		connState:      transport.StateDisconnected,
	}
	receipts.Start(e.advanceDelivery)
	return e
}

// AttachTransport builds the conversation's transport wired back into
// the engine and registers it as the outbound sender. The caller still
// owns the decision to Connect.
func (e *Engine) AttachTransport(wsBase string, topts transport.Options) *transport.Transport {
	t := transport.New(wsBase, e.conversationID, transport.Callbacks{
		OnMessage: e.ApplyInbound,
		OnConnect: func() { e.setConnState(transport.StateConnected) },
		OnDisconnect: func() {
			e.setConnState(transport.StateDisconnected)
			// The contact's typing state is unknowable while offline.
			e.clearTyping()
		},
		OnError: func(error) { e.setConnState(transport.StateErrored) },
	}, topts)

	e.mu.Lock()
	e.sender = t
	e.tr = t
	e.mu.Unlock()
	return t
}

// SetSender registers an outbound sender directly. Used by tests.
func (e *Engine) SetSender(s Sender) {
	e.mu.Lock()
	e.sender = s
	e.mu.Unlock()
}

// Submit creates an outbound message, appends it optimistically and
// forwards it over the transport. It returns the created message
// immediately, before any network confirmation; a dead connection
// leaves the message pending rather than failing the call.
func (e *Engine) Submit(content string, kind domain.MessageKind) domain.Message {
	msg := &domain.Message{
		ID:            uuid.NewString(),
		Content:       content,
		Timestamp:     time.Now(),
		Direction:     domain.DirectionOutbound,
		DeliveryState: domain.DeliveryPending,
		Kind:          kind,
	}

	e.mu.Lock()
	sender := e.sender
	if e.closed {
		e.mu.Unlock()
		return *msg
	}
	e.log = append(e.log, msg)
	e.index[msg.ID] = msg
	e.mu.Unlock()

	// The frame gets a copy: the log entry keeps mutating (delivery
	// state) after Send returns.
	wire := *msg
	if sender == nil || !sender.Send(domain.NewSendMessageFrame(e.conversationID, &wire)) {
		e.logger.Warn("message not sent, no live connection", "message_id", msg.ID)
	}
	e.receipts.Track(msg.ID)

	e.notify()
	return *msg
}

// SendTyping forwards the local user's typing state to the contact.
// Best-effort, like Send.
func (e *Engine) SendTyping(isTyping bool) {
	e.mu.Lock()
	sender := e.sender
	e.mu.Unlock()
	if sender != nil {
		sender.Send(domain.NewTypingFrame(e.conversationID, isTyping))
	}
}

// ApplyInbound dispatches one raw inbound frame into the log.
// Malformed frames and unknown-but-well-formed types are dropped;
// nothing here panics or propagates an error to the caller.
func (e *Engine) ApplyInbound(raw []byte) {
	frame, err := domain.ParseFrame(raw)
	if err != nil {
		logger.WithError(e.logger, err).Warn("dropping inbound frame")
		return
	}

	switch frame.Type {
	case domain.FrameNewMessage:
		if frame.Message == nil {
			e.logger.Warn("new_message frame without message")
			return
		}
		e.appendInbound(frame.Message)
	case domain.FrameMessageRead:
		e.markRead(frame.MessageID)
	case domain.FrameTyping:
		e.setTyping(frame.IsTyping)
	default:
		e.logger.Debug("ignoring frame", "type", string(frame.Type))
	}
}

// appendInbound adds a received message to the log. Duplicate ids are
// dropped; the log keeps ids unique and order append-only.
func (e *Engine) appendInbound(in *domain.Message) {
	msg := *in
	msg.Direction = domain.DirectionInbound
	msg.DeliveryState = ""
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}
	if msg.Kind == "" {
		msg.Kind = domain.KindText
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	if msg.ID != "" {
		if _, dup := e.index[msg.ID]; dup {
			e.mu.Unlock()
			e.logger.Debug("dropping duplicate message", "message_id", msg.ID)
			return
		}
	} else {
		msg.ID = uuid.NewString()
	}
	e.log = append(e.log, &msg)
	e.index[msg.ID] = &msg
	e.mu.Unlock()

	e.notify()
}

// markRead applies a genuine read receipt. Unknown ids are a silent
// no-op: the receipt may race the local append. For outbound messages
// the receipt preempts any simulated progression; skipping the
// delivered state is allowed, monotonicity is what matters.
func (e *Engine) markRead(messageID string) {
	if messageID == "" {
		return
	}

	e.mu.Lock()
	msg, ok := e.index[messageID]
	if !ok || e.closed {
		e.mu.Unlock()
		e.logger.Debug("read receipt for unknown message", "message_id", messageID)
		return
	}
	var changed bool
	outbound := msg.Direction == domain.DirectionOutbound
	if outbound {
		changed = msg.AdvanceDelivery(domain.DeliveryRead)
	} else if !msg.IsRead {
		msg.IsRead = true
		changed = true
	}
	e.mu.Unlock()

	if outbound {
		e.receipts.Cancel(messageID)
	}
	if changed {
		e.notify()
	}
}

// advanceDelivery is the receipt policy's way into the log. The
// monotonic check in AdvanceDelivery makes late or duplicate calls
// no-ops.
func (e *Engine) advanceDelivery(messageID string, state domain.DeliveryState) {
	e.mu.Lock()
	msg, ok := e.index[messageID]
	if !ok || e.closed {
		e.mu.Unlock()
		return
	}
	changed := msg.AdvanceDelivery(state)
	e.mu.Unlock()

	if changed {
		e.notify()
	}
}

// setTyping sets or refreshes the typing indicator. Each typing:true
// restarts the auto-clear timer; typing:false clears immediately.
func (e *Engine) setTyping(isTyping bool) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	if e.typingTimer != nil {
		e.typingTimer.Stop()
		e.typingTimer = nil
	}
	changed := e.typing != isTyping
	e.typing = isTyping
	if isTyping {
		e.typingTimer = time.AfterFunc(e.opts.TypingTimeout, e.clearTyping)
	}
	e.mu.Unlock()

	if changed {
		e.notify()
	}
}

func (e *Engine) clearTyping() {
	e.mu.Lock()
	changed := e.typing
	e.typing = false
	if e.typingTimer != nil {
		e.typingTimer.Stop()
		e.typingTimer = nil
	}
	e.mu.Unlock()

	if changed {
		e.notify()
	}
}

func (e *Engine) setConnState(s transport.State) {
	e.mu.Lock()
	changed := e.connState != s
	e.connState = s
	e.mu.Unlock()

	if changed {
		e.notify()
	}
}

// Messages returns a snapshot of the log in append order.
func (e *Engine) Messages() []domain.Message {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]domain.Message, len(e.log))
	for i, m := range e.log {
		out[i] = *m
	}
	return out
}

// Typing reports whether the contact is currently typing.
func (e *Engine) Typing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.typing
}

// ConnectionState is the transport state as last observed by the
// engine, for the UI's connection badge.
func (e *Engine) ConnectionState() transport.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.connState
}

// Close tears the conversation view down: disconnect the transport,
// cancel receipt and typing timers, stop accepting mutations.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	if e.typingTimer != nil {
		e.typingTimer.Stop()
		e.typingTimer = nil
	}
	tr := e.tr
	e.mu.Unlock()

	e.receipts.Close()
	if tr != nil {
		tr.Disconnect()
	}
}

// SetOnUpdate registers the update callback after construction. The
// TUI attaches itself here once its event loop exists.
func (e *Engine) SetOnUpdate(fn func()) {
	e.mu.Lock()
	e.opts.OnUpdate = fn
	e.mu.Unlock()
}

// notify must be called outside the engine lock.
func (e *Engine) notify() {
	e.mu.Lock()
	fn := e.opts.OnUpdate
	e.mu.Unlock()
	if fn != nil {
		fn()
	}
}
