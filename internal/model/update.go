package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// PlaceholderMessage is shown for updates that arrive without a message.
const PlaceholderMessage = "No message"

// Update is one feed entry pushed by a producer.
type Update struct {
	Timestamp time.Time
	Message   string
	Level     Level
	Details   map[string]any
	Step      string
}

// DisplayMessage returns the message, or the placeholder when it is blank.
func (u Update) DisplayMessage() string {
	if strings.TrimSpace(u.Message) == "" {
		return PlaceholderMessage
	}
	return u.Message
}

// HasDetails reports whether the update carries a non-empty details payload.
func (u Update) HasDetails() bool {
	return len(u.Details) > 0
}

// PrettyDetails renders details as indented JSON.
func (u Update) PrettyDetails() string {
	if !u.HasDetails() {
		return ""
	}
	b, err := json.MarshalIndent(u.Details, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", u.Details)
	}
	return string(b)
}

// WithDefaults fills in the documented defaults for missing fields.
func (u Update) WithDefaults(now time.Time) Update {
	if u.Timestamp.IsZero() {
		u.Timestamp = now
	}
	if strings.TrimSpace(u.Message) == "" {
		u.Message = PlaceholderMessage
	}
	u.Level = u.Level.Normalize()
	return u
}

// wireUpdate is the JSON shape producers send. Fields are kept raw so
// a mistyped one falls back to its default instead of failing the
// whole update.
type wireUpdate struct {
	Timestamp json.RawMessage `json:"timestamp"`
	Message   json.RawMessage `json:"message"`
	Level     json.RawMessage `json:"level"`
	Details   json.RawMessage `json:"details"`
	Step      json.RawMessage `json:"step"`
}

// rawString returns raw as a string if it holds one.
func rawString(raw json.RawMessage) (string, bool) {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return "", false
	}
	return s, true
}

// rawText renders any scalar as text so a numeric message is not lost.
func rawText(raw json.RawMessage) string {
	if s, ok := rawString(raw); ok {
		return s
	}
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	return string(raw)
}

// rawDetails keeps objects as they are and wraps any other value as
// {"value": ...}. null and absent mean no details.
func rawDetails(raw json.RawMessage) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil || v == nil {
		return nil
	}
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{"value": v}
}

// timestampLayouts lists the accepted timestamp shapes, most specific first.
// Python's isoformat() omits the zone, those values are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseUpdate decodes one JSON update. Missing, mistyped or unparseable
// fields fall back to their defaults; only malformed JSON, or JSON that
// is not an object, is an error.
func ParseUpdate(data []byte, now time.Time) (Update, error) {
	var w wireUpdate
	if err := json.Unmarshal(data, &w); err != nil {
		return Update{}, fmt.Errorf("decode update: %w", err)
	}

	level, _ := rawString(w.Level)
	step, _ := rawString(w.Step)
	u := Update{
		Message: rawText(w.Message),
		Level:   ParseLevel(level),
		Details: rawDetails(w.Details),
		Step:    strings.TrimSpace(step),
	}
	if ts, ok := rawString(w.Timestamp); ok {
		if parsed, ok := parseTimestamp(ts); ok {
			u.Timestamp = parsed
		}
	}
	return u.WithDefaults(now), nil
}

// UnmarshalJSON lets an Update be decoded directly from producer JSON.
func (u *Update) UnmarshalJSON(data []byte) error {
	parsed, err := ParseUpdate(data, time.Now())
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
