package board

import (
	"cmp"
	"slices"
)

// Grouped holds the board's two directional lists. Both are always non-nil.
type Grouped struct {
	Uptown   []Arrival `json:"uptown"`
	Downtown []Arrival `json:"downtown"`
}

// Aggregate merges per-source batches, orders them by arrival time and splits
// them by direction, keeping at most limit entries per direction. Equal
// arrival times keep the order in which the batches listed them.
func Aggregate(batches [][]Arrival, limit int) Grouped {
	if limit <= 0 {
		limit = DefaultLimit
	}

	var all []Arrival
	for _, batch := range batches {
		all = append(all, batch...)
	}

	slices.SortStableFunc(all, func(a, b Arrival) int {
		return cmp.Compare(a.ArrivalTime, b.ArrivalTime)
	})

	grouped := Grouped{
		Uptown:   []Arrival{},
		Downtown: []Arrival{},
	}
	for _, arrival := range all {
		switch arrival.Direction {
		case Uptown:
			if len(grouped.Uptown) < limit {
				grouped.Uptown = append(grouped.Uptown, arrival)
			}
		case Downtown:
			if len(grouped.Downtown) < limit {
				grouped.Downtown = append(grouped.Downtown, arrival)
			}
		}
	}

	return grouped
}
