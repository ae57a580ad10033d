package pipeline

import (
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestDebouncer_LastWriteWins(t *testing.T) {
	defer goleak.VerifyNone(t)

	d := NewDebouncer(20 * time.Millisecond)
	var calls atomic.Int32
	got := make(chan string, 3)
	for _, q := range []string{"v", "vi", "visa"} {
		q := q
		d.Trigger(func() {
			calls.Add(1)
			got <- q
		})
	}

	select {
	case q := <-got:
		if q != "visa" {
			t.Errorf("fired with %q, want visa", q)
		}
	case <-time.After(time.Second):
		t.Fatal("debounced call never fired")
	}
	time.Sleep(50 * time.Millisecond)
	if n := calls.Load(); n != 1 {
		t.Errorf("calls = %d, want 1", n)
	}
	if d.Pending() {
		t.Error("nothing should be pending after firing")
	}
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	defer goleak.VerifyNone(t)

	d := NewDebouncer(20 * time.Millisecond)
	var fired atomic.Bool
	d.Trigger(func() { fired.Store(true) })
	if !d.Pending() {
		t.Fatal("expected pending call")
	}
	d.Stop()
	time.Sleep(50 * time.Millisecond)
	if fired.Load() {
		t.Error("stopped debouncer must not fire")
	}
	if d.Trigger(func() { fired.Store(true) }) {
		t.Error("Trigger after Stop should report false")
	}
}

func TestNewDebouncer_DefaultDelay(t *testing.T) {
	if got := NewDebouncer(0).Delay(); got != DefaultDebounce {
		t.Errorf("Delay() = %v, want %v", got, DefaultDebounce)
	}
}
