package store

import (
	"context"
	"time"
)

// DateLayout is how submission dates are stored: fixed width UTC, so
// lexical order is chronological order.
const DateLayout = "2006-01-02T15:04:05.000000Z07:00"

// Submission is one employee's stored survey.
type Submission struct {
	ID          int64
	EmpID       string
	SubmittedAt time.Time
	AnswerCount int
}

// Answer is one stored answer.
type Answer struct {
	Category    string
	Subcategory string
	QuestionID  int
	Question    string
	Answer      string
}

// SubmissionRepo manages submissions and their answers.
type SubmissionRepo interface {
	// Replace stores a submission for empID, deleting any previous one and
	// its answers in the same transaction. Returns the new submission id.
	Replace(ctx context.Context, empID string, at time.Time, answers []Answer) (int64, error)

	// Get returns the submission of empID, or nil if none exists.
	Get(ctx context.Context, empID string) (*Submission, error)

	// Answers returns a submission's answers in insertion order.
	Answers(ctx context.Context, submissionID int64) ([]Answer, error)

	// List returns every submission, newest first.
	List(ctx context.Context) ([]Submission, error)
}
