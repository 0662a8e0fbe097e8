// ABOUTME: Tests for display helpers
// ABOUTME: Covers relative dates, duration rendering, and progress math

package format

import (
	"strings"
	"testing"
	"time"
)

func TestRelativeTo(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"seconds", now.Add(-30 * time.Second), "just now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-3 * time.Hour), "3h ago"},
		{"days", now.Add(-48 * time.Hour), "2d ago"},
		{"old", now.Add(-60 * 24 * time.Hour), "2026-06-30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := relativeTo(tt.t, now); got != tt.want {
				t.Errorf("relativeTo = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{45 * time.Minute, "45m"},
		{time.Hour, "1h"},
		{65 * time.Minute, "1h05m"},
		{2*time.Hour + 30*time.Minute, "2h30m"},
		{90 * time.Second, "2m"}, // rounds to the minute
	}

	for _, tt := range tests {
		if got := Duration(tt.d); got != tt.want {
			t.Errorf("Duration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestDistance(t *testing.T) {
	if got := Distance(800); got != "800m" {
		t.Errorf("Distance(800) = %q", got)
	}
	if got := Distance(8000); got != "8.0km" {
		t.Errorf("Distance(8000) = %q", got)
	}
	if got := Distance(21097.5); got != "21.1km" {
		t.Errorf("Distance(21097.5) = %q", got)
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		current, total, want int
	}{
		{0, 300, 0},
		{150, 300, 50},
		{300, 300, 100},
		{400, 300, 100}, // capped
		{10, 0, 0},      // no division by zero
	}

	for _, tt := range tests {
		if got := Percent(tt.current, tt.total); got != tt.want {
			t.Errorf("Percent(%d, %d) = %d, want %d", tt.current, tt.total, got, tt.want)
		}
	}
}

func TestProgress(t *testing.T) {
	got := Progress(150, 300)
	if !strings.HasPrefix(got, "150/300 (") || !strings.Contains(got, "50%") {
		t.Errorf("Progress(150, 300) = %q", got)
	}
}
