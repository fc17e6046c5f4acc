package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/flappy-quest/internal/session"
)

func TestActiveProfiles(t *testing.T) {
	a := newActiveProfiles()

	if !a.acquire("ava") {
		t.Fatal("first acquire should succeed")
	}
	if a.acquire("ava") {
		t.Error("second session for the same profile should be refused")
	}
	if !a.acquire("bob") {
		t.Error("other profiles stay available")
	}

	p := &session.Profile{Name: "ava"}
	a.attach("ava", p)
	a.attach("carol", &session.Profile{Name: "carol"}) // not acquired: ignored

	if got := a.release("ava"); got != p {
		t.Errorf("release() = %v, want attached profile", got)
	}
	if !a.acquire("ava") {
		t.Error("released profile should be acquirable again")
	}
	if got := a.release("carol"); got != nil {
		t.Errorf("release() of unknown user = %v, want nil", got)
	}
	if a.count() != 2 {
		t.Errorf("count() = %d, want 2", a.count())
	}
}

func TestActiveProfilesWait(t *testing.T) {
	a := newActiveProfiles()

	if err := a.wait(context.Background()); err != nil {
		t.Fatalf("wait() with no sessions = %v, want nil", err)
	}

	a.acquire("ava")
	a.attach("ava", &session.Profile{Name: "ava"})

	// A live session is never closed from under its program
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := a.wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("wait() with a live session = %v, want deadline exceeded", err)
	}
	if a.count() != 1 {
		t.Errorf("wait() must not release sessions, count = %d", a.count())
	}

	done := make(chan error, 1)
	go func() { done <- a.wait(context.Background()) }()
	time.Sleep(10 * time.Millisecond)
	a.release("ava")

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("wait() after release = %v, want nil", err)
		}
	case <-time.After(time.Second):
		t.Fatal("wait() did not return after the last session ended")
	}
}
