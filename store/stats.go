package store

import "sort"

// CategoryCount is one category aggregation bucket.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// YearCount is one publication-year aggregation bucket.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// CategoryCounts aggregates category tokens across the corpus metadata and
// returns buckets sorted by descending count, ties by ascending name.
func (s *Store) CategoryCounts() []CategoryCount {
	counts := map[string]int{}
	for _, m := range s.meta {
		for _, c := range m.Categories {
			counts[c]++
		}
	}
	out := make([]CategoryCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, CategoryCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// YearCounts aggregates publication years across the corpus metadata and
// returns buckets sorted by descending year. Documents with no year (zero)
// are skipped.
func (s *Store) YearCounts() []YearCount {
	counts := map[int]int{}
	for _, m := range s.meta {
		if m.Year != 0 {
			counts[m.Year]++
		}
	}
	out := make([]YearCount, 0, len(counts))
	for year, n := range counts {
		out = append(out, YearCount{Year: year, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year > out[j].Year })
	return out
}
