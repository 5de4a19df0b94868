package panel

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/rusenback/updatepanel/internal/model"
)

// TimeFormatter turns a timestamp into display text.
type TimeFormatter func(time.Time) string

// ClockFormatter formats timestamps in local time with layout.
func ClockFormatter(layout string) TimeFormatter {
	if layout == "" {
		layout = "15:04:05"
	}
	return func(t time.Time) string {
		return t.Local().Format(layout)
	}
}

// RelativeFormatter formats timestamps as "3 minutes ago".
func RelativeFormatter(now func() time.Time) TimeFormatter {
	if now == nil {
		now = time.Now
	}
	return func(t time.Time) string {
		return humanize.RelTime(t, now(), "ago", "from now")
	}
}

// FormatEntry renders one update the way "copy all" exports it.
func FormatEntry(u model.Update, formatTime TimeFormatter) string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(formatTime(u.Timestamp))
	b.WriteString("] ")
	b.WriteString(u.DisplayMessage())
	if u.HasDetails() {
		b.WriteString("\nDetails: ")
		b.WriteString(u.PrettyDetails())
	}
	return b.String()
}

// FormatAll renders every update in order, separated by a blank line.
func FormatAll(updates []model.Update, formatTime TimeFormatter) string {
	entries := make([]string, 0, len(updates))
	for _, u := range updates {
		entries = append(entries, FormatEntry(u, formatTime))
	}
	return strings.Join(entries, "\n\n")
}
