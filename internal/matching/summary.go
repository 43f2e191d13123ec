package matching

import "github.com/Roland-02/List2Letterboxd/internal/entities"

// Summary describes the outcome of a merge.
type Summary struct {
	Total      int `json:"total"`
	Resolved   int `json:"resolved"`
	Unresolved int `json:"unresolved"`
	Dropped    int `json:"dropped"`
}

// Summarize compares the list before and after a merge.
func Summarize(before, after []entities.Entry) Summary {
	s := Summary{Total: len(before), Dropped: len(before) - len(after)}
	for _, e := range after {
		if e.IsResolved() {
			s.Resolved++
		} else {
			s.Unresolved++
		}
	}
	return s
}
