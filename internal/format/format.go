// ABOUTME: Pure display helpers for dates, durations, and goal progress
// ABOUTME: Consumed by the CLI; no formatting logic lives in the services

package format

import (
	"fmt"
	"time"

	"github.com/fatih/color"
)

// RelativeTime renders a timestamp as a rough distance from now,
// e.g. "just now", "3h ago", "2d ago", or the date for anything older
// than a month.
func RelativeTime(t time.Time) string {
	return relativeTo(t, time.Now())
}

func relativeTo(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("2006-01-02")
	}
}

// Duration renders a workout duration compactly: "45m", "1h05m", "1h".
func Duration(d time.Duration) string {
	d = d.Round(time.Minute)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh%02dm", h, m)
	}
}

// Distance renders meters as km with one decimal, or plain meters below 1km.
func Distance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%.0fm", meters)
	}
	return fmt.Sprintf("%.1fkm", meters/1000)
}

// Percent computes integer progress, capped at 100.
func Percent(current, total int) int {
	if total <= 0 {
		return 0
	}
	p := current * 100 / total
	if p > 100 {
		p = 100
	}
	return p
}

// Progress renders "current/total (NN%)" with the percentage colored by
// how far along it is: red below a third, yellow below done, green at 100.
func Progress(current, total int) string {
	p := Percent(current, total)
	var c *color.Color
	switch {
	case p >= 100:
		c = color.New(color.FgGreen)
	case p >= 33:
		c = color.New(color.FgYellow)
	default:
		c = color.New(color.FgRed)
	}
	return fmt.Sprintf("%d/%d (%s)", current, total, c.Sprintf("%d%%", p))
}
