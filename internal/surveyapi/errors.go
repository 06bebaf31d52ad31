package surveyapi

import "fmt"

// SubmissionError indicates the backend rejected a submission or could not
// be reached. Reason is fit to show to the user as is.
type SubmissionError struct {
	StatusCode int // 0 when the request never got a response
	Reason     string
	Err        error
}

func (e *SubmissionError) Error() string {
	return e.Reason
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// FetchError indicates the submissions listing is unavailable.
type FetchError struct {
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch submissions: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("fetch submissions: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ExportError indicates the export rows for one employee are unavailable.
type ExportError struct {
	EmpID      string
	StatusCode int
	Err        error
}

func (e *ExportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("export survey data for %s: HTTP %d", e.EmpID, e.StatusCode)
	}
	return fmt.Sprintf("export survey data for %s: %v", e.EmpID, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }
