package commands

import (
	"slices"

	"dispatch/internal/pkg/errs"
)

// batchRejections collects the entries of a batch create that failed any check.
type batchRejections struct {
	ids map[int]int64
}

func newBatchRejections() *batchRejections {
	return &batchRejections{ids: make(map[int]int64)}
}

func (r *batchRejections) reject(position int, id int64) {
	r.ids[position] = id
}

func (r *batchRejections) isRejected(position int) bool {
	_, ok := r.ids[position]
	return ok
}

// rejectDuplicates rejects every entry whose id appears more than once.
// ids[i] is the id of entry i; non-positive ids are ignored.
func (r *batchRejections) rejectDuplicates(ids []int64) {
	seen := make(map[int64][]int, len(ids))
	for position, id := range ids {
		if id > 0 {
			seen[id] = append(seen[id], position)
		}
	}
	for id, positions := range seen {
		if len(positions) < 2 {
			continue
		}
		for _, position := range positions {
			r.reject(position, id)
		}
	}
}

// rejectExisting rejects entries whose id is already stored.
func (r *batchRejections) rejectExisting(ids []int64, existing []int64) {
	for position, id := range ids {
		if slices.Contains(existing, id) {
			r.reject(position, id)
		}
	}
}

// err returns nil when nothing was rejected.
func (r *batchRejections) err(entity string) error {
	if len(r.ids) == 0 {
		return nil
	}

	positions := make([]int, 0, len(r.ids))
	for position := range r.ids {
		positions = append(positions, position)
	}
	slices.Sort(positions)

	ids := make([]int64, 0, len(positions))
	for _, position := range positions {
		ids = append(ids, r.ids[position])
	}

	return errs.NewRejectedBatchError(entity, positions, ids)
}

// candidateIDs returns the positive ids of the entries that are still accepted.
func candidateIDs(ids []int64, r *batchRejections) []int64 {
	out := make([]int64, 0, len(ids))
	for position, id := range ids {
		if id > 0 && !r.isRejected(position) {
			out = append(out, id)
		}
	}
	return out
}
