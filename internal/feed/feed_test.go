package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rusenback/updatepanel/internal/model"
)

func msgs(s Snapshot) []string {
	out := make([]string, 0, len(s.Updates))
	for _, u := range s.Updates {
		out = append(out, u.Message)
	}
	return out
}

func TestPushIsNewestFirst(t *testing.T) {
	f := New(0)
	f.Push(model.Update{Message: "a"})
	f.Push(model.Update{Message: "b"}, model.Update{Message: "c"})

	assert.Equal(t, []string{"c", "b", "a"}, msgs(f.Snapshot()))
	assert.Equal(t, uint64(2), f.Version())
}

func TestPushNothingKeepsVersion(t *testing.T) {
	f := New(0)
	f.Push()
	assert.Equal(t, uint64(0), f.Version())
}

func TestPushTrimsOldest(t *testing.T) {
	f := New(2)
	f.Push(model.Update{Message: "a"}, model.Update{Message: "b"}, model.Update{Message: "c"})

	assert.Equal(t, []string{"c", "b"}, msgs(f.Snapshot()))
}

func TestReplaceAndClearBumpVersion(t *testing.T) {
	f := New(10)
	f.Replace([]model.Update{{Message: "x"}, {Message: "y"}})
	require.Equal(t, uint64(1), f.Version())
	assert.Equal(t, []string{"x", "y"}, msgs(f.Snapshot()))

	// Same content still counts as a new push.
	f.Replace([]model.Update{{Message: "x"}, {Message: "y"}})
	assert.Equal(t, uint64(2), f.Version())

	f.Clear()
	assert.Equal(t, uint64(3), f.Version())
	assert.Zero(t, f.Len())
}

func TestSnapshotIsACopy(t *testing.T) {
	f := New(0)
	f.Push(model.Update{Message: "a"})
	snap := f.Snapshot()
	snap.Updates[0].Message = "mutated"

	assert.Equal(t, "a", f.Snapshot().Updates[0].Message)
}
