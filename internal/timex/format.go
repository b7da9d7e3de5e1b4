package timex

import (
	"fmt"
	"time"
)

// FormatSavedAt renders t the way the "last saved" element shows it,
// e.g. "May 12, 2:45p.m.".
func FormatSavedAt(t time.Time) string {
	h := t.Hour()
	suffix := "a.m."
	if h >= 12 {
		h -= 12
		suffix = "p.m."
	}
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%s %d, %d:%02d%s", t.Month(), t.Day(), h, t.Minute(), suffix)
}
