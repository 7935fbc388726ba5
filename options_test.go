package waysurface

import "testing"

func TestNewSessionDefault(t *testing.T) {
	s := NewSession(&fakeBinder{rec: &recorder{}})

	if s.Title() != "waysurface" {
		t.Errorf("Title() = %q, want %q", s.Title(), "waysurface")
	}
	if s.AppID() != "waysurface" {
		t.Errorf("AppID() = %q, want %q", s.AppID(), "waysurface")
	}
	if s.CurrentSize() != DefaultSize {
		t.Errorf("CurrentSize() = %v, want %v", s.CurrentSize(), DefaultSize)
	}
	if !s.Running() {
		t.Error("Running() = false for a new session")
	}
	if s.State() != StateUnassigned {
		t.Errorf("State() = %v, want %v", s.State(), StateUnassigned)
	}
}

func TestWithTitleNormalizes(t *testing.T) {
	// "e" followed by a combining acute accent composes to U+00E9.
	s := NewSession(&fakeBinder{rec: &recorder{}}, WithTitle("Cafe\u0301"))
	if got, want := s.Title(), "Caf\u00e9"; got != want {
		t.Errorf("Title() = %q, want %q", got, want)
	}

	s = NewSession(&fakeBinder{rec: &recorder{}}, WithTitle("bad\xffbyte"))
	if got, want := s.Title(), "bad\uFFFDbyte"; got != want {
		t.Errorf("Title() = %q, want %q", got, want)
	}
}

func TestWithDefaultSize(t *testing.T) {
	tests := []struct {
		name string
		in   WindowSize
		want WindowSize
	}{
		{"both", WindowSize{640, 480}, WindowSize{640, 480}},
		{"zero ignored", WindowSize{0, 0}, DefaultSize},
		{"width only", WindowSize{100, 0}, WindowSize{100, 320}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(&fakeBinder{rec: &recorder{}}, WithDefaultSize(tt.in))
			if got := s.CurrentSize(); got != tt.want {
				t.Errorf("CurrentSize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMultipleOptions(t *testing.T) {
	s := NewSession(&fakeBinder{rec: &recorder{}},
		WithTitle("first"),
		WithAppID("org.example.app"),
		WithTitle("second"),
	)
	if s.Title() != "second" {
		t.Errorf("Title() = %q, want last option to win", s.Title())
	}
	if s.AppID() != "org.example.app" {
		t.Errorf("AppID() = %q, want %q", s.AppID(), "org.example.app")
	}
}
