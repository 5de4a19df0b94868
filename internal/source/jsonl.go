package source

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rusenback/updatepanel/internal/model"
)

// maxLineSize bounds a single update line.
const maxLineSize = 1 << 20

// JSONLines reads one JSON update per line, from stdin or a file. It stays
// connected until the reader is exhausted.
type JSONLines struct {
	name      string
	r         io.Reader
	connected atomic.Bool
	now       func() time.Time
}

// NewJSONLines returns a source reading from r. name is used in logs.
func NewJSONLines(name string, r io.Reader) *JSONLines {
	j := &JSONLines{name: name, r: r, now: time.Now}
	j.connected.Store(true)
	return j
}

// Name implements Source.
func (j *JSONLines) Name() string { return "jsonl:" + j.name }

// Connected is true until the reader hits EOF or fails.
func (j *JSONLines) Connected() bool { return j.connected.Load() }

// Stream implements Source. Blank lines are skipped; lines that are not
// valid JSON become error updates carrying the raw text.
//
// Cancelling closes the reader when it is an io.Closer so a goroutine
// blocked in Read wakes up. A blocking terminal stdin may still hold the
// read until the process exits.
func (j *JSONLines) Stream() (<-chan model.Update, <-chan error, func()) {
	updates := make(chan model.Update)
	errChan := make(chan error, 1)

	ctx, cancelCtx := context.WithCancel(context.Background())
	var once sync.Once
	cancel := func() {
		cancelCtx()
		once.Do(func() {
			if c, ok := j.r.(io.Closer); ok {
				c.Close()
			}
		})
	}

	go func() {
		defer close(updates)
		defer close(errChan)
		defer j.connected.Store(false)

		scanner := bufio.NewScanner(j.r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

		for scanner.Scan() {
			line := bytes.TrimSpace(scanner.Bytes())
			if len(line) == 0 {
				continue
			}

			u, err := model.ParseUpdate(line, j.now())
			if err != nil {
				u = malformed(err, line, j.now())
			}

			select {
			case updates <- u:
			case <-ctx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil && ctx.Err() == nil {
			errChan <- fmt.Errorf("read %s: %w", j.name, err)
		}
	}()

	return updates, errChan, cancel
}
