package domain

import "sort"

// Streak counts consecutive calendar days backwards from the most recent day
// in days. Days are day numbers; duplicates are ignored. The count stops at
// the first gap, even if an older run is longer.
func Streak(days []int64) int {
	if len(days) == 0 {
		return 0
	}
	unique := map[int64]struct{}{}
	for _, d := range days {
		unique[d] = struct{}{}
	}
	sorted := make([]int64, 0, len(unique))
	for d := range unique {
		sorted = append(sorted, d)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] > sorted[j] })

	count := 1
	current := sorted[0]
	for _, d := range sorted[1:] {
		if current-d != 1 {
			break
		}
		count++
		current = d
	}
	return count
}

const RecentLimit = 5

// Recent is the queue of recently unlocked achievements, oldest first.
type Recent struct {
	items []Achievement
}

func (r *Recent) Push(a Achievement) {
	r.items = append(r.items, a)
	if over := len(r.items) - RecentLimit; over > 0 {
		r.items = append([]Achievement(nil), r.items[over:]...)
	}
}

func (r *Recent) Items() []Achievement {
	return append([]Achievement(nil), r.items...)
}

func (r *Recent) Clear() {
	r.items = nil
}
