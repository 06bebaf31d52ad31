package questionbank

import (
	"context"
	"errors"
	"fmt"
)

// Question is one multiple-choice survey question.
type Question struct {
	ID       int      `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// Dataset is the on-disk shape of one subcategory's question set.
type Dataset struct {
	Questions []Question `json:"questions"`
}

// Source maps a dataset name to its ordered questions. An empty result is
// valid; a missing or malformed dataset fails with *LoadError.
type Source interface {
	Load(ctx context.Context, name string) ([]Question, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, name string) ([]Question, error)

func (f SourceFunc) Load(ctx context.Context, name string) ([]Question, error) {
	return f(ctx, name)
}

// ErrNotFound indicates that no dataset exists for a name.
var ErrNotFound = errors.New("dataset not found")

// LoadError reports a failed load of a single dataset.
type LoadError struct {
	Name string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load questions for %s: %v", e.Name, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// FindQuestion returns the question with the given id.
func FindQuestion(qs []Question, id int) (Question, bool) {
	for _, q := range qs {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}
