package surveyapi

import (
	"fmt"
	"regexp"
	"time"
)

// Ack is the backend's acknowledgement of a submission.
type Ack struct {
	Message      string `json:"message"`
	SubmissionID int64  `json:"submission_id"`
	EmpID        string `json:"emp_id"`
}

// Submission summarizes one stored submission.
type Submission struct {
	ID             int64  `json:"id"`
	EmpID          string `json:"emp_id"`
	SubmissionDate string `json:"submission_date"`
	AnswerCount    int    `json:"answer_count"`
}

// submissionDateLayouts covers RFC 3339 and offset-less ISO 8601 timestamps.
var submissionDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// SubmittedAt parses SubmissionDate.
func (s Submission) SubmittedAt() (time.Time, error) {
	for _, layout := range submissionDateLayouts {
		if t, err := time.Parse(layout, s.SubmissionDate); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized submission date %q", s.SubmissionDate)
}

// AnswerRecord is one stored answer as returned by the backend.
type AnswerRecord struct {
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	QuestionID  int    `json:"question_id"`
	Question    string `json:"question"`
	Answer      string `json:"answer"`
}

// SubmissionDetail is a single employee's stored submission.
type SubmissionDetail struct {
	EmpID       string            `json:"emp_id"`
	Answers     map[string]string `json:"answers"`
	AnswersList []AnswerRecord    `json:"answers_list"`
}

// Banner is the service identification returned by the root endpoint.
type Banner struct {
	Message string `json:"message"`
	Version string `json:"version"`
}

var employeeIDPattern = regexp.MustCompile(`^A[0-9]{4}$`)

// ValidEmployeeID reports whether id is "A" followed by four digits.
func ValidEmployeeID(id string) bool {
	return employeeIDPattern.MatchString(id)
}

// ErrInvalidEmployeeID is the reason given for a malformed employee id.
const ErrInvalidEmployeeID = "Employee ID must be 'A' followed by 4 digits"
