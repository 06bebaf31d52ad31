package admin

import (
	"github.com/abhisek/dqi/internal/export"
	"github.com/abhisek/dqi/internal/surveyapi"
)

// submissionsMsg carries a fetched submission list.
type submissionsMsg struct {
	submissions []surveyapi.Submission
	err         error
}

// exportOneMsg reports a single-employee export.
type exportOneMsg struct {
	empID string
	path  string
	err   error
}

// exportAllMsg reports a bulk export.
type exportAllMsg struct {
	result *export.BulkResult
	err    error
}
