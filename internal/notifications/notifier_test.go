package notifications

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeNotifier struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeNotifier) SendWelcome(ctx context.Context, in WelcomeInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.err
}

func TestProtectedNotifier_OpensAfterThreshold(t *testing.T) {
	inner := &fakeNotifier{err: errors.New("provider down")}
	n := NewProtectedNotifier(inner, ProtectedNotifierConfig{FailureThreshold: 2, Cooldown: time.Minute})

	for i := 0; i < 2; i++ {
		if err := n.SendWelcome(context.Background(), WelcomeInput{Login: "ana"}); err == nil {
			t.Fatalf("call %d: expected provider error", i)
		}
	}

	if n.State() != stateOpen {
		t.Fatalf("state = %s, want open", n.State())
	}

	if err := n.SendWelcome(context.Background(), WelcomeInput{Login: "ana"}); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("got %v, want ErrCircuitOpen", err)
	}

	if inner.calls != 2 {
		t.Fatalf("inner calls = %d, want 2", inner.calls)
	}
}

func TestProtectedNotifier_HalfOpenRecovers(t *testing.T) {
	inner := &fakeNotifier{err: errors.New("provider down")}
	n := NewProtectedNotifier(inner, ProtectedNotifierConfig{FailureThreshold: 1, Cooldown: time.Minute})

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	n.now = func() time.Time { return now }

	_ = n.SendWelcome(context.Background(), WelcomeInput{})
	if n.State() != stateOpen {
		t.Fatalf("state = %s, want open", n.State())
	}

	now = now.Add(2 * time.Minute)
	inner.err = nil

	if err := n.SendWelcome(context.Background(), WelcomeInput{}); err != nil {
		t.Fatalf("trial call: %v", err)
	}
	if n.State() != stateClosed {
		t.Fatalf("state = %s, want closed", n.State())
	}
}

func TestProtectedNotifier_HalfOpenFailureReopens(t *testing.T) {
	inner := &fakeNotifier{err: errors.New("provider down")}
	n := NewProtectedNotifier(inner, ProtectedNotifierConfig{FailureThreshold: 3, Cooldown: time.Minute})

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	n.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		_ = n.SendWelcome(context.Background(), WelcomeInput{})
	}

	now = now.Add(2 * time.Minute)
	_ = n.SendWelcome(context.Background(), WelcomeInput{})

	if n.State() != stateOpen {
		t.Fatalf("state = %s, want open after failed trial", n.State())
	}
}

func TestLogNotifier_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := NewLogNotifier(nil).SendWelcome(ctx, WelcomeInput{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}
