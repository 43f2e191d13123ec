package entities

// Entry is one parsed film record.
//
// Title is never empty: lines that clean down to an empty title are dropped
// by the parser and never become an Entry. Rating is on the public 0-5 scale
// in half-step increments. Liked is a UI affordance and is never set by the
// parser.
type Entry struct {
	Title      string      `json:"title"`
	Rating     *float64    `json:"rating,omitempty"`
	Review     *string     `json:"review,omitempty"`
	Liked      *bool       `json:"liked,omitempty"`
	MatchedID  *int64      `json:"matched_id,omitempty"`
	Candidates []Candidate `json:"candidates,omitempty"`
}

// Candidate is one alternative resolution for an ambiguous title.
type Candidate struct {
	Title       string  `json:"title"`
	ID          int64   `json:"id"`
	ReleaseYear *int    `json:"release_year,omitempty"`
	Summary     *string `json:"summary,omitempty"`
}

// IsResolved reports whether the entry carries an external identifier.
func (e Entry) IsResolved() bool {
	return e.MatchedID != nil
}

// Clone returns a deep copy so callers can hand out entries without aliasing
// the pointer fields or the candidate slice.
func (e Entry) Clone() Entry {
	out := Entry{Title: e.Title}
	if e.Rating != nil {
		v := *e.Rating
		out.Rating = &v
	}
	if e.Review != nil {
		v := *e.Review
		out.Review = &v
	}
	if e.Liked != nil {
		v := *e.Liked
		out.Liked = &v
	}
	if e.MatchedID != nil {
		v := *e.MatchedID
		out.MatchedID = &v
	}
	if e.Candidates != nil {
		out.Candidates = make([]Candidate, len(e.Candidates))
		for i, c := range e.Candidates {
			out.Candidates[i] = c.clone()
		}
	}
	return out
}

func (c Candidate) clone() Candidate {
	out := Candidate{Title: c.Title, ID: c.ID}
	if c.ReleaseYear != nil {
		v := *c.ReleaseYear
		out.ReleaseYear = &v
	}
	if c.Summary != nil {
		v := *c.Summary
		out.Summary = &v
	}
	return out
}

// CloneEntries deep-copies a list, preserving order.
func CloneEntries(entries []Entry) []Entry {
	if entries == nil {
		return nil
	}
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = e.Clone()
	}
	return out
}
