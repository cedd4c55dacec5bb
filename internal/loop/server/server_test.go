package server

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/alessiosferro/space-shooter-v1/internal/audio"
	"github.com/alessiosferro/space-shooter-v1/internal/loop/config"
)

func TestRegisterUnregister(t *testing.T) {
	s := NewServer(config.Classic(), nil)

	a := s.Register("alice")
	b := s.Register(strings.Repeat("x", 40))
	if a.ID == b.ID {
		t.Fatal("session ids should be unique")
	}
	if len(b.Username) != config.MaxUsernameLength {
		t.Errorf("username not truncated: %q", b.Username)
	}
	if s.Sessions() != 2 {
		t.Errorf("sessions = %d", s.Sessions())
	}

	s.Unregister(a.ID)
	s.Unregister(a.ID)
	if s.Sessions() != 1 {
		t.Errorf("sessions = %d", s.Sessions())
	}
	if _, ok := <-a.EventsCh; ok {
		t.Error("events channel should be closed on unregister")
	}
}

func TestRegisterTruncatesOnRuneBoundary(t *testing.T) {
	s := NewServer(config.Classic(), nil)

	tests := []struct {
		name, in, want string
	}{
		{"fits", "pilot", "pilot"},
		{"ascii", strings.Repeat("x", 20), strings.Repeat("x", 16)},
		{"rune across limit", strings.Repeat("x", 15) + "é", strings.Repeat("x", 15)},
		{"all multibyte", strings.Repeat("ß", 9), strings.Repeat("ß", 8)},
		{"wide runes", strings.Repeat("世", 6), strings.Repeat("世", 5)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := s.Register(tc.in)
			defer s.Unregister(h.ID)
			if h.Username != tc.want {
				t.Errorf("username = %q, want %q", h.Username, tc.want)
			}
			if !utf8.ValidString(h.Username) || len(h.Username) > config.MaxUsernameLength {
				t.Errorf("username %q is not a valid name of at most %d bytes", h.Username, config.MaxUsernameLength)
			}
		})
	}
}

func TestShutdownNotifiesAndWaits(t *testing.T) {
	s := NewServer(config.Classic(), nil)
	h := s.Register("bob")

	go func() {
		ev := <-h.EventsCh
		if ev.Type == EventServerShutdown {
			s.Unregister(h.ID)
		}
	}()

	start := time.Now()
	s.Shutdown(5 * time.Second)
	if time.Since(start) > 2*time.Second {
		t.Error("shutdown should return once sessions are gone")
	}
	if s.Sessions() != 0 {
		t.Errorf("sessions = %d", s.Sessions())
	}

	late := s.Register("late")
	select {
	case ev := <-late.EventsCh:
		if ev.Type != EventServerShutdown {
			t.Errorf("event = %v", ev.Type)
		}
	default:
		t.Error("a session joining during shutdown should be told")
	}
}

func TestShutdownTimeout(t *testing.T) {
	s := NewServer(config.Classic(), nil)
	s.Register("stuck")

	start := time.Now()
	s.Shutdown(300 * time.Millisecond)
	if elapsed := time.Since(start); elapsed < 300*time.Millisecond {
		t.Errorf("returned after %v, before the timeout", elapsed)
	}
}

func TestNewGameIsPerSession(t *testing.T) {
	rules := config.Classic()
	rules.Seed = 7
	s := NewServer(rules, nil)
	a := s.Register("a")
	b := s.Register("b")

	now := time.Unix(1000, 0)
	ga := s.NewGame(a, audio.Silent{}, now)
	gb := s.NewGame(b, audio.Silent{}, now)
	defer ga.Close()
	defer gb.Close()

	if ga == gb {
		t.Fatal("sessions must not share a game")
	}
	ga.Frame(now.Add(800 * time.Millisecond))
	if len(ga.Snapshot().Hazards) != 1 || len(gb.Snapshot().Hazards) != 0 {
		t.Error("advancing one session's game should not touch another's")
	}
}

func TestReportScore(t *testing.T) {
	s := NewServer(config.Classic(), nil)
	if best := s.ReportScore(1, 120); best != 120 {
		t.Errorf("best = %d", best)
	}
	if best := s.ReportScore(2, 80); best != 120 {
		t.Errorf("lower score changed best to %d", best)
	}
	if best := s.ReportScore(2, 300); best != 300 {
		t.Errorf("best = %d", best)
	}
}
