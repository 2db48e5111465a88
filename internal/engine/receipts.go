package engine

import (
	"sync"
	"time"

	"github.com/renoribeiro/whatsapp-automation-v0-sub001/internal/domain"
)

// AdvanceFunc moves an outbound message's delivery state forward. The
// engine supplies it; the transition it performs is monotonic, so a
// stale call is harmless.
type AdvanceFunc func(messageID string, state domain.DeliveryState)

// ReceiptPolicy decides how outbound messages progress from pending
// to delivered to read. The engine tracks every submitted message and
// cancels tracking when a genuine read receipt arrives, which always
// takes precedence over whatever the policy would have done.
type ReceiptPolicy interface {
	// Start hands the policy its advance callback. Called once,
	// before any Track.
	Start(advance AdvanceFunc)
	// Track begins delivery progression for a submitted message.
	Track(messageID string)
	// Cancel stops progression for one message.
	Cancel(messageID string)
	// Close stops all outstanding progression.
	Close()
}

// SimulatedReceipts advances delivery state on fixed timers, standing
// in for a real acknowledgement protocol the backend does not offer
// on this socket. It is deliberately isolated behind ReceiptPolicy so
// a genuine ack-based policy can replace it without touching the
// engine's log mutation logic.
type SimulatedReceipts struct {
	deliveredAfter time.Duration
	readAfter      time.Duration

	mu      sync.Mutex
	advance AdvanceFunc
	timers  map[string][]*time.Timer
	closed  bool
}

// NewSimulatedReceipts builds the default policy: delivered after
// deliveredAfter, read after a further readAfter.
func NewSimulatedReceipts(deliveredAfter, readAfter time.Duration) *SimulatedReceipts {
	return &SimulatedReceipts{
		deliveredAfter: deliveredAfter,
		readAfter:      readAfter,
		timers:         make(map[string][]*time.Timer),
	}
}

func (s *SimulatedReceipts) Start(advance AdvanceFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.advance = advance
}

func (s *SimulatedReceipts) Track(messageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.advance == nil {
		return
	}
	delivered := time.AfterFunc(s.deliveredAfter, func() {
		s.fire(messageID, domain.DeliveryDelivered, false)
	})
	read := time.AfterFunc(s.deliveredAfter+s.readAfter, func() {
		s.fire(messageID, domain.DeliveryRead, true)
	})
	s.timers[messageID] = []*time.Timer{delivered, read}
}

func (s *SimulatedReceipts) fire(messageID string, state domain.DeliveryState, last bool) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if _, tracked := s.timers[messageID]; !tracked {
		// Canceled between timer fire and lock acquisition.
		s.mu.Unlock()
		return
	}
	if last {
		delete(s.timers, messageID)
	}
	advance := s.advance
	s.mu.Unlock()

	advance(messageID, state)
}

func (s *SimulatedReceipts) Cancel(messageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.timers[messageID] {
		t.Stop()
	}
	delete(s.timers, messageID)
}

func (s *SimulatedReceipts) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for id, timers := range s.timers {
		for _, t := range timers {
			t.Stop()
		}
		delete(s.timers, id)
	}
}

// NopReceipts performs no local progression: delivery state moves only
// on genuine server receipts. Swap it in once the backend speaks a
// real acknowledgement protocol.
type NopReceipts struct{}

func (NopReceipts) Start(AdvanceFunc) {}
func (NopReceipts) Track(string)      {}
func (NopReceipts) Cancel(string)     {}
func (NopReceipts) Close()            {}
