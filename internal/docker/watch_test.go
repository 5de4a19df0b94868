package docker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/rusenback/updatepanel/internal/model"
)

// fakeEngine serves a scripted sequence of container lists.
type fakeEngine struct {
	mu    sync.Mutex
	polls [][]types.Container
	errs  []error
	n     int
}

func (f *fakeEngine) ContainerList(ctx context.Context, _ container.ListOptions) ([]types.Container, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.n
	if i >= len(f.polls) {
		i = len(f.polls) - 1
	}
	f.n++
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	return f.polls[i], err
}

func (f *fakeEngine) Ping(ctx context.Context) (types.Ping, error) {
	return types.Ping{}, nil
}

func (f *fakeEngine) Close() error { return nil }

func apiContainer(id, name, state, status string) types.Container {
	return types.Container{
		ID:     id,
		Names:  []string{"/" + name},
		Image:  "nginx:latest",
		State:  state,
		Status: status,
	}
}

func TestDiffFirstPollSummarizes(t *testing.T) {
	now := time.Now()
	got := diffContainers(nil, []Container{
		{ID: "a", Name: "web", State: "running"},
		{ID: "b", Name: "db", State: "exited"},
	}, now)

	require.Len(t, got, 1)
	assert.Equal(t, "Watching 2 containers (1 running)", got[0].Message)
	assert.Equal(t, model.LevelInfo, got[0].Level)
}

func TestDiffTransitions(t *testing.T) {
	now := time.Now()
	prev := indexContainers([]Container{
		{ID: "a", Name: "web", State: "running"},
		{ID: "b", Name: "db", State: "running"},
		{ID: "c", Name: "cache", State: "running"},
		{ID: "d", Name: "old", State: "exited"},
	})
	current := []Container{
		{ID: "a", Name: "web", State: "running"},
		{ID: "b", Name: "db", State: "exited", Status: "Exited (137) 2 seconds ago"},
		{ID: "c", Name: "cache", State: "exited", Status: "Exited (0) 1 second ago"},
		{ID: "e", Name: "worker", State: "running"},
	}

	got := diffContainers(prev, current, now)
	require.Len(t, got, 4)

	assert.Equal(t, "Container db exited with code 137", got[0].Message)
	assert.Equal(t, model.LevelError, got[0].Level)
	assert.Equal(t, 137, got[0].Details["exit_code"])
	assert.Equal(t, "running", got[0].Details["previous_state"])

	assert.Equal(t, "Container cache exited", got[1].Message)
	assert.Equal(t, model.LevelInfo, got[1].Level)

	assert.Equal(t, "Container worker started", got[2].Message)
	assert.Equal(t, model.LevelSuccess, got[2].Level)

	assert.Equal(t, "Container old removed", got[3].Message)
	assert.Equal(t, model.LevelWarning, got[3].Level)
	assert.Equal(t, stepContainer, got[3].Step)
}

func TestExitCode(t *testing.T) {
	code, ok := exitCode("Exited (1) 5 minutes ago")
	assert.True(t, ok)
	assert.Equal(t, 1, code)

	_, ok = exitCode("Up 3 hours")
	assert.False(t, ok)
}

func TestStreamReportsChangesAndStops(t *testing.T) {
	defer goleak.VerifyNone(t)

	engine := &fakeEngine{polls: [][]types.Container{
		{apiContainer("aaaaaaaaaaaaaaaa", "web", "running", "Up 1 second")},
		{apiContainer("aaaaaaaaaaaaaaaa", "web", "exited", "Exited (2) now")},
	}}
	c := newClient(engine, time.Millisecond)

	updates, _, cancel := c.Stream()

	first := <-updates
	assert.Equal(t, "Watching 1 containers (1 running)", first.Message)
	second := <-updates
	assert.Equal(t, "Container web exited with code 2", second.Message)
	assert.Equal(t, "aaaaaaaaaaaa", second.Details["id"])
	assert.True(t, c.Connected())

	cancel()
	for range updates {
	}
}

func TestStreamReportsEngineFailureOnce(t *testing.T) {
	defer goleak.VerifyNone(t)

	down := errors.New("connection refused")
	engine := &fakeEngine{
		polls: [][]types.Container{nil, nil, nil, {}},
		errs:  []error{down, down, down, nil},
	}
	c := newClient(engine, time.Millisecond)

	updates, errs, cancel := c.Stream()

	err := <-errs
	assert.ErrorIs(t, err, down)

	recovered := <-updates
	assert.Equal(t, "Docker engine reachable again", recovered.Message)
	summary := <-updates
	assert.Equal(t, "Watching 0 containers (0 running)", summary.Message)

	cancel()
	for range updates {
	}
	for range errs {
	}
}
