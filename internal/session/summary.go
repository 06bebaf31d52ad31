package session

import (
	"time"

	"github.com/abhisek/dqi/internal/surveyapi"
)

// Summary holds what the done screen shows after a submission.
type Summary struct {
	SessionID    string
	EmpID        string
	SubmissionID int64
	Answered     int
	Duration     time.Duration

	// ExportPath is set once the post-submit export was written.
	ExportPath string
}

// BuildSummary captures the submission before the answers are cleared.
func BuildSummary(state *State, ack *surveyapi.Ack, now time.Time) *Summary {
	sum := &Summary{
		SessionID: state.ID,
		EmpID:     state.EmpID,
		Answered:  state.Answers.Len(),
		Duration:  now.Sub(state.StartTime),
	}
	if ack != nil {
		sum.SubmissionID = ack.SubmissionID
		if ack.EmpID != "" {
			sum.EmpID = ack.EmpID
		}
	}
	return sum
}
