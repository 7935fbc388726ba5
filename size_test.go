package waysurface

import "testing"

func TestResolveSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int32
		want          WindowSize
	}{
		{"client chooses", 0, 0, WindowSize{320, 320}},
		{"explicit", 800, 600, WindowSize{800, 600}},
		{"width only", 1024, 0, WindowSize{1024, 320}},
		{"height only", 0, 768, WindowSize{320, 768}},
		{"negative treated as unset", -5, 200, WindowSize{320, 200}},
		{"one pixel", 1, 1, WindowSize{1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveSize(tt.width, tt.height, DefaultSize)
			if got != tt.want {
				t.Errorf("ResolveSize(%d, %d) = %v, want %v", tt.width, tt.height, got, tt.want)
			}
			if got.IsZero() {
				t.Errorf("ResolveSize(%d, %d) returned a zero dimension", tt.width, tt.height)
			}
		})
	}
}

func TestWindowSizeString(t *testing.T) {
	if got := (WindowSize{Width: 800, Height: 600}).String(); got != "800x600" {
		t.Errorf("String() = %q, want %q", got, "800x600")
	}
	if !(WindowSize{Width: 10}).IsZero() {
		t.Error("IsZero() = false for zero height")
	}
}
