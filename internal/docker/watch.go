package docker

import (
	"cmp"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"time"

	"github.com/rusenback/updatepanel/internal/logging"
	"github.com/rusenback/updatepanel/internal/model"
)

const stepContainer = "CONTAINER"

var exitCodePattern = regexp.MustCompile(`Exited \((-?\d+)\)`)

// Stream polls the engine and sends an update for every container change.
// Engine errors are sent once when the engine stops answering; polling
// carries on and a recovery update follows when it answers again.
func (c *Client) Stream() (<-chan model.Update, <-chan error, func()) {
	updates := make(chan model.Update)
	errChan := make(chan error, 1)

	ctx, cancel := context.WithCancel(c.ctx)

	go func() {
		defer close(updates)
		defer close(errChan)

		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		var prev map[string]Container
		failing := false

		for {
			current, err := c.ListContainers()
			var batch []model.Update
			switch {
			case err != nil && !failing:
				failing = true
				logging.Warn("docker engine unreachable", "err", err)
				select {
				case errChan <- fmt.Errorf("list containers: %w", err):
				default:
				}
			case err == nil:
				if failing {
					failing = false
					logging.Info("docker engine reachable again")
					batch = append(batch, model.Update{
						Timestamp: time.Now(),
						Message:   "Docker engine reachable again",
						Level:     model.LevelSuccess,
						Step:      "ENGINE",
					})
				}
				batch = append(batch, diffContainers(prev, current, time.Now())...)
				prev = indexContainers(current)
			}

			for _, u := range batch {
				select {
				case updates <- u:
				case <-ctx.Done():
					return
				}
			}

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()

	return updates, errChan, cancel
}

func indexContainers(list []Container) map[string]Container {
	m := make(map[string]Container, len(list))
	for _, c := range list {
		m[c.ID] = c
	}
	return m
}

// diffContainers turns the difference between two polls into updates.
// A nil prev is the first poll and yields a single summary.
func diffContainers(prev map[string]Container, current []Container, now time.Time) []model.Update {
	if prev == nil {
		running := 0
		for _, c := range current {
			if c.State == "running" {
				running++
			}
		}
		return []model.Update{{
			Timestamp: now,
			Message:   fmt.Sprintf("Watching %d containers (%d running)", len(current), running),
			Level:     model.LevelInfo,
			Step:      "ENGINE",
		}}
	}

	var out []model.Update
	seen := make(map[string]bool, len(current))
	for _, c := range current {
		seen[c.ID] = true
		old, ok := prev[c.ID]
		switch {
		case !ok:
			out = append(out, containerUpdate(c, "", now))
		case old.State != c.State:
			out = append(out, containerUpdate(c, old.State, now))
		}
	}

	var removed []Container
	for id, c := range prev {
		if !seen[id] {
			removed = append(removed, c)
		}
	}
	slices.SortFunc(removed, func(a, b Container) int {
		return cmp.Compare(a.Name, b.Name)
	})
	for _, c := range removed {
		out = append(out, model.Update{
			Timestamp: now,
			Message:   fmt.Sprintf("Container %s removed", c.Name),
			Level:     model.LevelWarning,
			Details:   containerDetails(c, c.State),
			Step:      stepContainer,
		})
	}

	return out
}

// containerUpdate describes a container that appeared or changed state
func containerUpdate(c Container, previous string, now time.Time) model.Update {
	u := model.Update{
		Timestamp: now,
		Details:   containerDetails(c, previous),
		Step:      stepContainer,
	}

	switch c.State {
	case "running":
		u.Level = model.LevelSuccess
		u.Message = fmt.Sprintf("Container %s started", c.Name)
	case "exited":
		code, ok := exitCode(c.Status)
		switch {
		case ok && code != 0:
			u.Level = model.LevelError
			u.Message = fmt.Sprintf("Container %s exited with code %d", c.Name, code)
			u.Details["exit_code"] = code
		default:
			u.Level = model.LevelInfo
			u.Message = fmt.Sprintf("Container %s exited", c.Name)
		}
	case "restarting", "paused":
		u.Level = model.LevelWarning
		u.Message = fmt.Sprintf("Container %s %s", c.Name, c.State)
	case "dead":
		u.Level = model.LevelError
		u.Message = fmt.Sprintf("Container %s is dead", c.Name)
	case "created":
		u.Level = model.LevelInfo
		u.Message = fmt.Sprintf("Container %s created", c.Name)
	default:
		u.Level = model.LevelDefault
		u.Message = fmt.Sprintf("Container %s is now %s", c.Name, c.State)
	}
	return u
}

func containerDetails(c Container, previous string) map[string]any {
	d := map[string]any{
		"id":     c.ID,
		"image":  c.Image,
		"state":  c.State,
		"status": c.Status,
	}
	if previous != "" {
		d["previous_state"] = previous
	}
	return d
}

// exitCode extracts N from a status like "Exited (N) 3 seconds ago"
func exitCode(status string) (int, bool) {
	m := exitCodePattern.FindStringSubmatch(status)
	if m == nil {
		return 0, false
	}
	code, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return code, true
}
