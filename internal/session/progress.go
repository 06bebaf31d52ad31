package session

import (
	"github.com/abhisek/dqi/internal/completeness"
	"github.com/abhisek/dqi/internal/questionbank"
)

// Progress counts answered questions against known questions.
type Progress struct {
	Answered int
	Total    int
}

// Fraction returns Answered/Total, or 0 when nothing is known yet.
func (p Progress) Fraction() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Answered) / float64(p.Total)
}

// QuestionLookup returns an already loaded question set.
type QuestionLookup func(subcategory string) ([]questionbank.Question, bool)

// Progress counts answered questions over the subcategories whose question
// sets are already loaded. Unloaded subcategories are not counted.
func (s *State) Progress(lookup QuestionLookup) Progress {
	var p Progress
	for _, cat := range s.Tree.Categories {
		for _, sub := range cat.Subcategories {
			qs, ok := lookup(sub.Title)
			if !ok {
				continue
			}
			for _, q := range qs {
				p.Total++
				if v, ok := s.Answers.Get(cat.Title, sub.Title, q.ID); ok && !completeness.IsBlank(v) {
					p.Answered++
				}
			}
		}
	}
	return p
}
