package search

import (
	"context"
	"sort"

	"inkpad/internal/workspace"
)

// Result is one matching document.
type Result struct {
	LocationID int64
	RelPath    string
}

// maxResults caps a single search so a broad query cannot stall the UI.
const maxResults = 500

// Run evaluates the query against the indexed documents of each location.
// roots maps location id to its root path on disk. Results are sorted by
// location then path so repeated searches are stable.
func Run(ctx context.Context, q *Query, roots map[int64]string, snapshots map[int64]*workspace.Snapshot) ([]Result, error) {
	if q.IsEmpty() {
		return nil, nil
	}
	m := NewMatcher(q)

	var results []Result
	for locID, snap := range snapshots {
		root := roots[locID]
		for _, rel := range snap.Documents {
			if ctx.Err() != nil {
				return results, ctx.Err()
			}
			if len(results) >= maxResults {
				break
			}
			if m.Match(rel, workspace.AbsPath(root, rel)) {
				results = append(results, Result{LocationID: locID, RelPath: rel})
			}
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].LocationID != results[j].LocationID {
			return results[i].LocationID < results[j].LocationID
		}
		return results[i].RelPath < results[j].RelPath
	})
	return results, nil
}
