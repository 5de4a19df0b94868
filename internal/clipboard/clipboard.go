// Package clipboard writes plain text to the system clipboard. Writes
// always overwrite the whole clipboard; nothing here ever reads it.
package clipboard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// ErrUnavailable is returned when no clipboard backend can be used.
var ErrUnavailable = errors.New("clipboard unavailable")

// Writer overwrites the clipboard with text.
type Writer interface {
	Write(text string) error
}

// WriterFunc adapts a function to Writer.
type WriterFunc func(text string) error

func (f WriterFunc) Write(text string) error { return f(text) }

// System uses the platform clipboard tools (pbcopy, xclip, wl-copy, ...).
type System struct{}

func (System) Write(text string) error {
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("system clipboard: %w", err)
	}
	return nil
}

// OSC52 asks the terminal to set the clipboard with an OSC 52 escape
// sequence. It works over SSH where no local clipboard tool exists.
type OSC52 struct {
	// Out receives the escape sequence. Nil means /dev/tty.
	Out io.Writer
}

func (o OSC52) Write(text string) error {
	out := o.Out
	if out == nil {
		tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
		if err != nil {
			return fmt.Errorf("osc52: %w", ErrUnavailable)
		}
		defer tty.Close()
		out = tty
	}

	seq := osc52.New(text)
	term := os.Getenv("TERM")
	switch {
	case os.Getenv("TMUX") != "" || strings.HasPrefix(term, "tmux"):
		seq = seq.Tmux()
	case strings.HasPrefix(term, "screen"):
		seq = seq.Screen()
	}

	if _, err := seq.WriteTo(out); err != nil {
		return fmt.Errorf("osc52: %w", err)
	}
	return nil
}

// Fallback tries each writer in order and stops at the first success.
type Fallback []Writer

func (f Fallback) Write(text string) error {
	if len(f) == 0 {
		return ErrUnavailable
	}
	var errs []error
	for _, w := range f {
		err := w.Write(text)
		if err == nil {
			return nil
		}
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// New returns the writer for a configured backend name:
// "system", "osc52" or "auto" (system first, then OSC 52).
func New(kind string) (Writer, error) {
	switch strings.ToLower(kind) {
	case "system":
		return System{}, nil
	case "osc52":
		return OSC52{}, nil
	case "", "auto":
		return Fallback{System{}, OSC52{}}, nil
	default:
		return nil, fmt.Errorf("unknown clipboard backend %q", kind)
	}
}
