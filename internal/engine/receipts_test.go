package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/renoribeiro/whatsapp-automation-v0-sub001/internal/domain"
)

// recorder collects advance calls from a policy under test.
type recorder struct {
	mu    sync.Mutex
	calls []domain.DeliveryState
}

func (r *recorder) advance(_ string, state domain.DeliveryState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, state)
}

func (r *recorder) states() []domain.DeliveryState {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.DeliveryState, len(r.calls))
	copy(out, r.calls)
	return out
}

func TestSimulatedReceiptsFiresInOrder(t *testing.T) {
	rec := &recorder{}
	policy := NewSimulatedReceipts(20*time.Millisecond, 20*time.Millisecond)
	policy.Start(rec.advance)
	t.Cleanup(policy.Close)

	policy.Track("m1")

	require.Eventually(t, func() bool { return len(rec.states()) == 2 },
		time.Second, 5*time.Millisecond)
	require.Equal(t, []domain.DeliveryState{domain.DeliveryDelivered, domain.DeliveryRead}, rec.states())
}

func TestSimulatedReceiptsCancel(t *testing.T) {
	rec := &recorder{}
	policy := NewSimulatedReceipts(30*time.Millisecond, 30*time.Millisecond)
	policy.Start(rec.advance)
	t.Cleanup(policy.Close)

	policy.Track("m1")
	policy.Cancel("m1")

	time.Sleep(100 * time.Millisecond)
	require.Empty(t, rec.states(), "canceled tracking must not advance anything")
}

func TestSimulatedReceiptsCancelUnknownID(t *testing.T) {
	policy := NewSimulatedReceipts(time.Millisecond, time.Millisecond)
	policy.Start(func(string, domain.DeliveryState) {})
	t.Cleanup(policy.Close)

	// Must not panic.
	policy.Cancel("never-tracked")
}

func TestSimulatedReceiptsClose(t *testing.T) {
	rec := &recorder{}
	policy := NewSimulatedReceipts(20*time.Millisecond, 20*time.Millisecond)
	policy.Start(rec.advance)

	policy.Track("m1")
	policy.Track("m2")
	policy.Close()

	time.Sleep(80 * time.Millisecond)
	require.Empty(t, rec.states())

	// Track after close is a no-op.
	policy.Track("m3")
	time.Sleep(60 * time.Millisecond)
	require.Empty(t, rec.states())
}

func TestNopReceipts(t *testing.T) {
	var policy ReceiptPolicy = NopReceipts{}
	policy.Start(func(string, domain.DeliveryState) {
		t.Fatal("nop policy must never advance")
	})
	policy.Track("m1")
	policy.Cancel("m1")
	policy.Close()
}
