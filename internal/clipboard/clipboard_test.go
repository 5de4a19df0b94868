package clipboard

import (
	"bytes"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSC52WritesEscapeSequence(t *testing.T) {
	t.Setenv("TMUX", "")
	t.Setenv("TERM", "xterm-256color")

	var buf bytes.Buffer
	require.NoError(t, OSC52{Out: &buf}.Write("hello"))

	encoded := base64.StdEncoding.EncodeToString([]byte("hello"))
	assert.Contains(t, buf.String(), "\x1b]52;c;"+encoded)
}

func TestFallbackStopsAtFirstSuccess(t *testing.T) {
	var calls []string
	failing := WriterFunc(func(string) error {
		calls = append(calls, "failing")
		return errors.New("boom")
	})
	ok := WriterFunc(func(string) error {
		calls = append(calls, "ok")
		return nil
	})
	never := WriterFunc(func(string) error {
		calls = append(calls, "never")
		return nil
	})

	require.NoError(t, Fallback{failing, ok, never}.Write("x"))
	assert.Equal(t, []string{"failing", "ok"}, calls)
}

func TestFallbackJoinsErrors(t *testing.T) {
	first := errors.New("first")
	second := errors.New("second")
	err := Fallback{
		WriterFunc(func(string) error { return first }),
		WriterFunc(func(string) error { return second }),
	}.Write("x")

	assert.ErrorIs(t, err, first)
	assert.ErrorIs(t, err, second)
}

func TestEmptyFallback(t *testing.T) {
	assert.ErrorIs(t, Fallback{}.Write("x"), ErrUnavailable)
}

func TestNew(t *testing.T) {
	w, err := New("osc52")
	require.NoError(t, err)
	assert.IsType(t, OSC52{}, w)

	w, err = New("")
	require.NoError(t, err)
	assert.IsType(t, Fallback{}, w)

	_, err = New("carrier-pigeon")
	assert.Error(t, err)
}
