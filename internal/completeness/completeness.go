// Package completeness walks the survey tree in traversal order and
// determines which questions are still unanswered before submission.
package completeness

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/dqi/internal/questionbank"
	"github.com/abhisek/dqi/internal/surveytree"
)

// Answers is the read side of the answer store.
type Answers interface {
	Get(category, subcategory string, questionID int) (string, bool)
}

// ReviewItem is one row of the pre-submission review list.
type ReviewItem struct {
	Category    string
	Subcategory string
	QuestionID  int
	Question    string
	Answer      string
	Answered    bool
	Options     []string
}

// MissingRef locates an unanswered question.
type MissingRef struct {
	CategoryID  string
	Category    string
	Subcategory string
	QuestionID  int
	Question    string
	// Index is the question's position within its subcategory.
	Index int
}

// Unchecked names a subcategory whose questions could not be loaded and
// were therefore left out of the pass.
type Unchecked struct {
	Category    string
	Subcategory string
	Err         error
}

// Result is the outcome of one validation pass.
type Result struct {
	// Review holds every checked question, answered or not, in traversal order.
	Review []ReviewItem
	// Missing holds every unanswered question in traversal order.
	Missing []MissingRef
	// First is the first unanswered question, or nil when none is missing.
	First *MissingRef
	// Unchecked lists subcategories skipped because their questions failed to load.
	Unchecked []Unchecked
}

// Complete reports whether the survey can proceed to review.
func (r *Result) Complete() bool {
	return len(r.Missing) == 0
}

// Validator runs the completeness pass.
type Validator struct {
	tree   *surveytree.Tree
	source questionbank.Source
	log    *zap.Logger
}

// New creates a Validator. A nil logger disables diagnostics.
func New(tree *surveytree.Tree, source questionbank.Source, logger *zap.Logger) *Validator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Validator{tree: tree, source: source, log: logger}
}

// Check walks categories, subcategories and questions in declared order.
// Question sets are loaded one after another so the first missing question
// is always the first in traversal order.
//
// A subcategory whose questions fail to load is logged, recorded in
// Result.Unchecked, and left out of both the review and missing lists; it
// does not block submission. The only error returned is a cancelled context.
func (v *Validator) Check(ctx context.Context, ans Answers) (*Result, error) {
	res := &Result{}

	for _, cat := range v.tree.Categories {
		for _, sub := range cat.Subcategories {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			questions, err := v.source.Load(ctx, sub.Title)
			if err != nil {
				v.log.Warn("skipping subcategory in completeness check",
					zap.String("category", cat.Title),
					zap.String("subcategory", sub.Title),
					zap.Error(err))
				res.Unchecked = append(res.Unchecked, Unchecked{
					Category:    cat.Title,
					Subcategory: sub.Title,
					Err:         err,
				})
				continue
			}

			for i, q := range questions {
				answer, ok := ans.Get(cat.Title, sub.Title, q.ID)
				answered := ok && !IsBlank(answer)

				res.Review = append(res.Review, ReviewItem{
					Category:    cat.Title,
					Subcategory: sub.Title,
					QuestionID:  q.ID,
					Question:    q.Question,
					Answer:      answer,
					Answered:    answered,
					Options:     q.Options,
				})

				if answered {
					continue
				}
				res.Missing = append(res.Missing, MissingRef{
					CategoryID:  cat.ID,
					Category:    cat.Title,
					Subcategory: sub.Title,
					QuestionID:  q.ID,
					Question:    q.Question,
					Index:       i,
				})
			}
		}
	}

	if len(res.Missing) > 0 {
		first := res.Missing[0]
		res.First = &first
	}
	return res, nil
}

// IsBlank reports whether an answer counts as missing.
func IsBlank(answer string) bool {
	return strings.TrimSpace(answer) == ""
}
