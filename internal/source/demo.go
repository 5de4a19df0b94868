package source

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rusenback/updatepanel/internal/model"
)

// DefaultDemoInterval paces the demo script.
const DefaultDemoInterval = 1500 * time.Millisecond

// demoStep is one scripted update of the demo build.
type demoStep struct {
	message string
	level   model.Level
	step    string
	details map[string]any
}

var demoScript = []demoStep{
	{"Build started", model.LevelDefault, "BUILD", nil},
	{"Resolving dependencies", model.LevelInfo, "BUILD", map[string]any{"packages": 42}},
	{"Compiling sources", model.LevelDefault, "BUILD", nil},
	{"Deprecated API in use", model.LevelWarning, "LINT", map[string]any{"file": "handlers.go", "line": 118}},
	{"Unit tests passed", model.LevelSuccess, "TEST", map[string]any{"passed": 312, "skipped": 4}},
	{"Integration test failed", model.LevelError, "TEST", map[string]any{"test": "TestCheckout", "code": 1}},
	{"Retrying flaky test", model.LevelInfo, "TEST", nil},
	{"Integration tests passed", model.LevelSuccess, "TEST", nil},
	{"Image pushed", model.LevelSuccess, "DEPLOY", map[string]any{"tag": "v1.4.2"}},
}

// Demo replays a scripted build pipeline forever.
type Demo struct {
	interval time.Duration
	running  atomic.Bool
	now      func() time.Time
}

// NewDemo returns a demo source. A non-positive interval uses the default.
func NewDemo(interval time.Duration) *Demo {
	if interval <= 0 {
		interval = DefaultDemoInterval
	}
	return &Demo{interval: interval, now: time.Now}
}

// Name implements Source.
func (d *Demo) Name() string { return "demo" }

// Connected reports whether the demo is streaming.
func (d *Demo) Connected() bool { return d.running.Load() }

// Stream implements Source. The error channel is never written to.
func (d *Demo) Stream() (<-chan model.Update, <-chan error, func()) {
	updates := make(chan model.Update)
	errChan := make(chan error)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		defer close(updates)
		defer close(errChan)
		d.running.Store(true)
		defer d.running.Store(false)

		ticker := time.NewTicker(d.interval)
		defer ticker.Stop()

		for run := 1; ; run++ {
			for _, s := range demoScript {
				u := demoUpdate(s, run, d.now())
				select {
				case updates <- u:
				case <-ctx.Done():
					return
				}

				select {
				case <-ticker.C:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return updates, errChan, cancel
}

func demoUpdate(s demoStep, run int, now time.Time) model.Update {
	details := make(map[string]any, len(s.details)+1)
	for k, v := range s.details {
		details[k] = v
	}
	details["run"] = run
	return model.Update{
		Timestamp: now,
		Message:   fmt.Sprintf("%s (run %d)", s.message, run),
		Level:     s.level,
		Details:   details,
		Step:      s.step,
	}
}
