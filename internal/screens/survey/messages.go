package survey

import (
	"github.com/abhisek/dqi/internal/completeness"
	"github.com/abhisek/dqi/internal/questionbank"
)

// questionsLoadedMsg reports a finished question-set load.
type questionsLoadedMsg struct {
	subcategory string
	questions   []questionbank.Question
	err         error
}

// validationMsg carries a completeness check result.
type validationMsg struct {
	result *completeness.Result
	err    error
}

// highlightExpiredMsg fires once the missing-question highlight should go.
type highlightExpiredMsg struct{}
