package session

import (
	"maps"
	"time"

	"github.com/abhisek/dqi/internal/answers"
	"github.com/abhisek/dqi/internal/completeness"
	"github.com/abhisek/dqi/internal/surveyapi"
	"github.com/abhisek/dqi/internal/surveytree"
	"github.com/google/uuid"
)

// HighlightDuration is how long a missing question stays highlighted.
const HighlightDuration = 3 * time.Second

// Phase represents the current phase of the survey session.
type Phase int

const (
	PhaseBrowsing   Phase = iota // Answering questions
	PhaseReviewing               // Reviewing the complete answer set
	PhaseEmployeeID              // Entering the employee id
	PhaseSubmitting              // Waiting for the backend
	PhaseDone                    // Submission acknowledged
)

func (p Phase) String() string {
	switch p {
	case PhaseBrowsing:
		return "browsing"
	case PhaseReviewing:
		return "reviewing"
	case PhaseEmployeeID:
		return "employee-id"
	case PhaseSubmitting:
		return "submitting"
	case PhaseDone:
		return "done"
	}
	return "unknown"
}

// Highlight marks the first missing question until it expires.
type Highlight struct {
	Ref   completeness.MissingRef
	Until time.Time
}

// State tracks the runtime state of one survey session. It is owned by
// the top-level app model; screens read it through Panels and mutate it
// only through the controller methods.
type State struct {
	// ID identifies the session in logs.
	ID string

	Tree    *surveytree.Tree
	Answers *answers.Store

	Phase Phase

	// openCategory is the expanded category id, "" when all are collapsed.
	openCategory string

	// openSubcategory maps a category id to its expanded subcategory title.
	openSubcategory map[string]string

	highlight *Highlight

	// Review is the latest validation result.
	Review *completeness.Result

	// EmpID is the employee id being submitted.
	EmpID string

	// SubmitError is the reason of the last failed submission.
	SubmitError string

	// Ack is the backend acknowledgement once submitted.
	Ack *surveyapi.Ack

	// Summary is built when the submission succeeds.
	Summary *Summary

	// StartTime is when the session began.
	StartTime time.Time
}

// NewState creates a session for tree with an empty answer store.
func NewState(tree *surveytree.Tree, now time.Time) *State {
	return &State{
		ID:              uuid.NewString(),
		Tree:            tree,
		Answers:         answers.NewStore(),
		Phase:           PhaseBrowsing,
		openSubcategory: make(map[string]string),
		StartTime:       now,
	}
}

// Panels is an immutable snapshot of the accordion and highlight state.
type Panels struct {
	OpenCategory    string
	OpenSubcategory map[string]string
	Highlight       *completeness.MissingRef
}

// Panels returns the accordion state as of now. An expired highlight is
// reported as absent.
func (s *State) Panels(now time.Time) Panels {
	p := Panels{
		OpenCategory:    s.openCategory,
		OpenSubcategory: maps.Clone(s.openSubcategory),
	}
	if h := s.activeHighlight(now); h != nil {
		ref := h.Ref
		p.Highlight = &ref
	}
	return p
}

// IsOpen reports whether the subcategory is expanded.
func (p Panels) IsOpen(categoryID, subcategory string) bool {
	return p.OpenCategory == categoryID && p.OpenSubcategory[categoryID] == subcategory
}

// IsHighlighted reports whether a question is the highlighted missing one.
func (p Panels) IsHighlighted(category, subcategory string, questionID int) bool {
	h := p.Highlight
	return h != nil && h.Category == category && h.Subcategory == subcategory && h.QuestionID == questionID
}

func (s *State) activeHighlight(now time.Time) *Highlight {
	if s.highlight == nil || !now.Before(s.highlight.Until) {
		return nil
	}
	return s.highlight
}
