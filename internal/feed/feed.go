// Package feed holds the host-owned, versioned sequence of updates.
package feed

import "github.com/rusenback/updatepanel/internal/model"

// DefaultLimit bounds how many updates a Feed keeps.
const DefaultLimit = 500

// Snapshot is an immutable view of the feed at one version.
// Updates are newest first.
type Snapshot struct {
	Version uint64
	Updates []model.Update
}

// Len returns the number of updates in the snapshot.
func (s Snapshot) Len() int {
	return len(s.Updates)
}

// Feed is the ordered sequence of updates known to the host. Every
// mutation bumps Version; readers use the version as the feed's identity.
type Feed struct {
	version uint64
	items   []model.Update
	limit   int
}

// New creates an empty feed that keeps at most limit updates.
// A non-positive limit means DefaultLimit.
func New(limit int) *Feed {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Feed{limit: limit}
}

// Push adds updates given in arrival order (oldest first). The newest
// ends up at index 0. Oldest entries beyond the limit are dropped.
func (f *Feed) Push(updates ...model.Update) {
	if len(updates) == 0 {
		return
	}

	next := make([]model.Update, 0, len(updates)+len(f.items))
	for i := len(updates) - 1; i >= 0; i-- {
		next = append(next, updates[i])
	}
	next = append(next, f.items...)
	if len(next) > f.limit {
		next = next[:f.limit]
	}

	f.items = next
	f.version++
}

// Replace swaps the whole sequence. updates must already be newest first.
func (f *Feed) Replace(updates []model.Update) {
	items := make([]model.Update, len(updates))
	copy(items, updates)
	if len(items) > f.limit {
		items = items[:f.limit]
	}
	f.items = items
	f.version++
}

// Clear empties the feed.
func (f *Feed) Clear() {
	f.items = nil
	f.version++
}

// Version returns the current feed version.
func (f *Feed) Version() uint64 {
	return f.version
}

// Len returns the number of updates held.
func (f *Feed) Len() int {
	return len(f.items)
}

// Snapshot returns a copy of the current sequence with its version.
func (f *Feed) Snapshot() Snapshot {
	items := make([]model.Update, len(f.items))
	copy(items, f.items)
	return Snapshot{Version: f.version, Updates: items}
}
