package card

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/timemap/cardstack/internal/i18n"
)

// NiceDate formats a date-like string as "DD <month> YYYY" in the active
// language, appending " HH:MM" when the value carries a time of day.
// Input that does not parse is returned trimmed.
func NiceDate(value string, messages i18n.Messages) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return ""
	}
	t, err := dateparse.ParseIn(v, time.UTC)
	if err != nil {
		return v
	}
	out := fmt.Sprintf("%02d %s %d", t.Day(), messages.Month(int(t.Month())), t.Year())
	if t.Hour() != 0 || t.Minute() != 0 {
		out += fmt.Sprintf(" %02d:%02d", t.Hour(), t.Minute())
	}
	return out
}
