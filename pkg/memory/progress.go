package memory

// Progress summarizes onboarding completion for status surfaces.
type Progress struct {
	Questions        int `json:"questions"`
	Answered         int `json:"answered"`
	Required         int `json:"required"`
	RequiredAnswered int `json:"required_answered"`
	NeedsReview      int `json:"needs_review"`

	// Complete is true once every required question has a note.
	Complete bool `json:"complete"`

	// ByCategory counts answered/total per category.
	ByCategory map[Category]CategoryProgress `json:"by_category"`
}

// CategoryProgress is the answered/total pair for one category.
type CategoryProgress struct {
	Questions int `json:"questions"`
	Answered  int `json:"answered"`
}

// Progress computes completion counts from the active snapshot.
func (s *Service) Progress() Progress {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p := Progress{
		ByCategory: make(map[Category]CategoryProgress),
	}

	for _, q := range s.snap.Questions {
		p.Questions++
		cat := p.ByCategory[q.Category]
		cat.Questions++

		note, answered := s.snap.Notes[q.ID]
		if answered {
			p.Answered++
			cat.Answered++
			if note.NeedsReview() {
				p.NeedsReview++
			}
		}

		if q.Required {
			p.Required++
			if answered {
				p.RequiredAnswered++
			}
		}

		p.ByCategory[q.Category] = cat
	}

	p.Complete = p.RequiredAnswered == p.Required
	return p
}
