package detector

import (
	"github.com/ryosukesatoh/wp-monitor/internal/fetcher"
)

// ChangeType classifies how a post differs from the stored state.
type ChangeType string

const (
	ChangeNew     ChangeType = "new"
	ChangeUpdated ChangeType = "updated"
)

// Change records a single detected new or updated post for one run.
type Change struct {
	ID          string
	Title       string
	Link        string
	Type        ChangeType
	OldModified string // empty when Type is ChangeNew
	Modified    string
}

// Detect compares fetched posts against the previous state map and returns
// the detected changes in fetch order plus the next state map.
//
// A post absent from prev is "new"; present with a differing modification
// timestamp, "updated"; present with an equal timestamp, no change record.
// Timestamps are compared as strings since the API emits normalized
// ISO-8601. The next state carries every fetched post's current timestamp,
// unchanged posts included, so a corrupted entry heals on the next run.
// Duplicate IDs within one fetch are each classified against prev; the
// last occurrence wins in the next state.
func Detect(prev map[string]string, posts []fetcher.Post) ([]Change, map[string]string) {
	next := make(map[string]string, len(prev)+len(posts))
	for id, modified := range prev {
		next[id] = modified
	}

	var changes []Change
	for _, p := range posts {
		if old, ok := prev[p.ID]; !ok {
			changes = append(changes, Change{
				ID:       p.ID,
				Title:    p.Title,
				Link:     p.Link,
				Type:     ChangeNew,
				Modified: p.Modified,
			})
		} else if old != p.Modified {
			changes = append(changes, Change{
				ID:          p.ID,
				Title:       p.Title,
				Link:        p.Link,
				Type:        ChangeUpdated,
				OldModified: old,
				Modified:    p.Modified,
			})
		}
		next[p.ID] = p.Modified
	}

	return changes, next
}
