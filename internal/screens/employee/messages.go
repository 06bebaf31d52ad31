package employee

import (
	"github.com/abhisek/dqi/internal/surveyapi"
)

// submitResultMsg carries the outcome of a submission.
type submitResultMsg struct {
	ack *surveyapi.Ack
	err error
}

// exportResultMsg carries the outcome of the post-submit export.
type exportResultMsg struct {
	path string
	err  error
}
