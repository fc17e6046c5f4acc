package main

import (
	"bytes"
	"io"
	"math/rand"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-quest/internal/calendar"
	"github.com/vovakirdan/flappy-quest/internal/progression"
	"github.com/vovakirdan/flappy-quest/internal/storage"
)

func TestAcceptInvite(t *testing.T) {
	prog := progression.New(storage.NewMemory(), progression.Options{
		Clock:  calendar.NewFixedClock(calendar.NewDate(2024, 3, 4), 12),
		Logger: log.New(io.Discard),
		Rand:   rand.New(rand.NewSource(3)),
	})

	tests := []struct {
		name    string
		code    string
		want    string
		friends int
	}{
		{"empty code", "  ", "Nothing to accept", 0},
		{"own code", strings.ToLower(prog.ReferralCode()), "Nothing to accept", 0},
		{"friend code", "zz9zz9", "Player_ZZ9ZZ9 joined your friends! +200 XP", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := acceptInvite(&out, prog, tt.code, 200); err != nil {
				t.Fatalf("acceptInvite() failed: %v", err)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("output = %q, want %q", out.String(), tt.want)
			}
			if got := len(prog.Friends()); got != tt.friends {
				t.Errorf("len(Friends()) = %d, want %d", got, tt.friends)
			}
		})
	}
}
