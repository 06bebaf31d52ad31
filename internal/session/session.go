// Package session holds the survey session controller: accordion state,
// the missing-question highlight, and the submit phases.
package session

import (
	"errors"
	"strings"
	"time"

	"github.com/abhisek/dqi/internal/completeness"
	"github.com/abhisek/dqi/internal/surveyapi"
)

// ErrEmptyEmployeeID is returned when no employee id was entered.
var ErrEmptyEmployeeID = errors.New("Employee ID is required")

// ErrInvalidEmployeeID is returned for a malformed employee id.
var ErrInvalidEmployeeID = errors.New(surveyapi.ErrInvalidEmployeeID)

// ToggleCategory expands a category, or collapses it when already open.
// Collapsing a category also closes its open subcategory.
func (s *State) ToggleCategory(categoryID string) {
	if s.openCategory == categoryID {
		s.openCategory = ""
		delete(s.openSubcategory, categoryID)
		return
	}
	s.openCategory = categoryID
}

// ToggleSubcategory expands a subcategory of a category, or collapses it
// when already open. At most one subcategory per category is open.
func (s *State) ToggleSubcategory(categoryID, subcategory string) {
	if s.openSubcategory[categoryID] == subcategory {
		delete(s.openSubcategory, categoryID)
		return
	}
	s.openCategory = categoryID
	s.openSubcategory[categoryID] = subcategory
}

// Select records an answer. Answering the highlighted question clears the
// highlight.
func (s *State) Select(category, subcategory string, questionID int, option string) {
	s.Answers.Set(category, subcategory, questionID, option)
	if h := s.highlight; h != nil &&
		h.Ref.Category == category && h.Ref.Subcategory == subcategory && h.Ref.QuestionID == questionID {
		s.highlight = nil
	}
}

// Reset removes every answer of a subcategory and returns how many were
// removed.
func (s *State) Reset(category, subcategory string) int {
	return s.Answers.ResetSubcategory(category, subcategory)
}

// ApplyValidation records a validation result. When a question is missing
// the session opens its panels and highlights it until now plus
// HighlightDuration; otherwise it moves to review. It reports whether the
// answer set is complete.
func (s *State) ApplyValidation(res *completeness.Result, now time.Time) bool {
	s.Review = res
	if res.Complete() {
		s.highlight = nil
		s.Phase = PhaseReviewing
		return true
	}

	ref := *res.First
	s.openCategory = ref.CategoryID
	s.openSubcategory[ref.CategoryID] = ref.Subcategory
	s.highlight = &Highlight{Ref: ref, Until: now.Add(HighlightDuration)}
	s.Phase = PhaseBrowsing
	return false
}

// ExpireHighlight drops the highlight once its time has passed. It reports
// whether a highlight was removed.
func (s *State) ExpireHighlight(now time.Time) bool {
	if s.highlight != nil && s.activeHighlight(now) == nil {
		s.highlight = nil
		return true
	}
	return false
}

// BackToSurvey leaves review without submitting.
func (s *State) BackToSurvey() {
	s.Phase = PhaseBrowsing
}

// ConfirmReview moves from review to employee id entry.
func (s *State) ConfirmReview() {
	if s.Phase == PhaseReviewing {
		s.Phase = PhaseEmployeeID
	}
}

// BackToReview leaves employee id entry for the review list.
func (s *State) BackToReview() {
	if s.Phase == PhaseEmployeeID {
		s.Phase = PhaseReviewing
	}
}

// BeginSubmit validates the employee id and enters the submitting phase.
func (s *State) BeginSubmit(empID string) error {
	empID = strings.TrimSpace(empID)
	switch {
	case empID == "":
		return ErrEmptyEmployeeID
	case !surveyapi.ValidEmployeeID(empID):
		return ErrInvalidEmployeeID
	}
	s.EmpID = empID
	s.SubmitError = ""
	s.Phase = PhaseSubmitting
	return nil
}

// SubmitSucceeded records the acknowledgement and clears the answers.
func (s *State) SubmitSucceeded(ack *surveyapi.Ack, now time.Time) {
	s.Summary = BuildSummary(s, ack, now)
	s.Ack = ack
	s.SubmitError = ""
	s.Answers.ClearAll()
	s.Phase = PhaseDone
}

// SubmitFailed keeps the answers and returns to employee id entry so the
// user can retry.
func (s *State) SubmitFailed(reason string) {
	s.SubmitError = reason
	s.Phase = PhaseEmployeeID
}

// Restart begins a fresh survey in the same process.
func (s *State) Restart(now time.Time) {
	*s = *NewState(s.Tree, now)
}

// Snapshot returns the answers to submit.
func (s *State) Snapshot() map[string]string {
	return s.Answers.Snapshot()
}

// ReviewItems returns the review list of the latest validation.
func (s *State) ReviewItems() []completeness.ReviewItem {
	if s.Review == nil {
		return nil
	}
	return s.Review.Review
}
