package survey

import (
	"github.com/abhisek/dqi/internal/answers"
	"github.com/abhisek/dqi/internal/questionbank"
	"github.com/abhisek/dqi/internal/session"
	"github.com/abhisek/dqi/internal/surveytree"
)

type rowKind int

const (
	rowCategory rowKind = iota
	rowSubcategory
	rowQuestion
	rowNotice
)

// row is one selectable or informational line group of the accordion.
type row struct {
	kind        rowKind
	category    surveytree.Category
	subcategory string
	question    questionbank.Question

	// notice is the text of a rowNotice; err marks it as a load failure.
	notice string
	err    error
}

func (r row) selectable() bool {
	return r.kind != rowNotice
}

func (r row) key() answers.Key {
	return answers.NewKey(r.category.Title, r.subcategory, r.question.ID)
}

// buildRows flattens the accordion into rows as currently expanded.
func (s *SurveyScreen) buildRows(panels session.Panels) []row {
	var rows []row
	for _, cat := range s.state.Tree.Categories {
		rows = append(rows, row{kind: rowCategory, category: cat})
		if panels.OpenCategory != cat.ID {
			continue
		}
		for _, sub := range cat.Subcategories {
			rows = append(rows, row{kind: rowSubcategory, category: cat, subcategory: sub.Title})
			if !panels.IsOpen(cat.ID, sub.Title) {
				continue
			}
			rows = append(rows, s.questionRows(cat, sub.Title)...)
		}
	}
	return rows
}

func (s *SurveyScreen) questionRows(cat surveytree.Category, sub string) []row {
	if err, ok := s.loadErrs[sub]; ok {
		return []row{{kind: rowNotice, category: cat, subcategory: sub, notice: "Could not load questions", err: err}}
	}
	qs, ok := s.deps.Questions.Cached(sub)
	if !ok {
		return []row{{kind: rowNotice, category: cat, subcategory: sub, notice: "Loading questions…"}}
	}
	if len(qs) == 0 {
		return []row{{kind: rowNotice, category: cat, subcategory: sub, notice: "No questions in this section"}}
	}
	rows := make([]row, 0, len(qs))
	for _, q := range qs {
		rows = append(rows, row{kind: rowQuestion, category: cat, subcategory: sub, question: q})
	}
	return rows
}

// find returns the index of the first row matching pred, or -1.
func find(rows []row, pred func(row) bool) int {
	for i, r := range rows {
		if pred(r) {
			return i
		}
	}
	return -1
}
