package server

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/abhisek/dqi/internal/questionbank"
	"github.com/abhisek/dqi/internal/store"
	"github.com/abhisek/dqi/internal/surveytree"
	"go.uber.org/zap"
)

// Catalog resolves question text and canonical answer order from the
// survey tree and the question bank.
type Catalog struct {
	tree   *surveytree.Tree
	source questionbank.Source
	log    *zap.Logger
}

// NewCatalog creates a Catalog.
func NewCatalog(tree *surveytree.Tree, source questionbank.Source, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{tree: tree, source: source, log: logger}
}

// QuestionText returns the text of a question, or "Question {id}" when the
// dataset or the question is unknown.
func (c *Catalog) QuestionText(ctx context.Context, subcategory string, id int) string {
	fallback := fmt.Sprintf("Question %d", id)
	qs, err := c.source.Load(ctx, subcategory)
	if err != nil {
		c.log.Debug("question text unavailable", zap.String("subcategory", subcategory), zap.Error(err))
		return fallback
	}
	q, ok := questionbank.FindQuestion(qs, id)
	if !ok {
		return fallback
	}
	return q.Question
}

// answerPos is an answer's place in survey traversal.
type answerPos struct {
	known    bool
	cat, sub int
	declared bool
	question int
}

// Sort orders answers by survey traversal: category, then subcategory as
// configured, then each question's place in its dataset. Questions the
// dataset does not declare follow the declared ones, by id. Answers outside
// the tree go last, by name.
func (c *Catalog) Sort(ctx context.Context, answers []store.Answer) {
	type ranked struct {
		a store.Answer
		p answerPos
	}
	sets := make(map[string][]questionbank.Question)
	items := make([]ranked, len(answers))
	for i, a := range answers {
		items[i] = ranked{a: a, p: c.position(ctx, sets, a)}
	}

	slices.SortStableFunc(items, func(x, y ranked) int {
		a, b, pa, pb := x.a, y.a, x.p, y.p
		if pa.known != pb.known {
			if pa.known {
				return -1
			}
			return 1
		}
		if n := cmp.Or(
			cmp.Compare(pa.cat, pb.cat),
			cmp.Compare(pa.sub, pb.sub),
			cmp.Compare(a.Category, b.Category),
			cmp.Compare(a.Subcategory, b.Subcategory),
		); n != 0 {
			return n
		}
		if pa.declared != pb.declared {
			if pa.declared {
				return -1
			}
			return 1
		}
		return cmp.Or(
			cmp.Compare(pa.question, pb.question),
			cmp.Compare(a.QuestionID, b.QuestionID),
		)
	})
	for i := range items {
		answers[i] = items[i].a
	}
}

// position locates a in the tree and its dataset. sets memoizes datasets
// for one Sort call; a dataset that fails to load is recorded as empty.
func (c *Catalog) position(ctx context.Context, sets map[string][]questionbank.Question, a store.Answer) answerPos {
	ci, si, ok := c.tree.Position(a.Category, a.Subcategory)
	p := answerPos{known: ok, cat: ci, sub: si}
	if !ok {
		return p
	}
	qs, loaded := sets[a.Subcategory]
	if !loaded {
		var err error
		if qs, err = c.source.Load(ctx, a.Subcategory); err != nil {
			c.log.Debug("question order unavailable", zap.String("subcategory", a.Subcategory), zap.Error(err))
		}
		sets[a.Subcategory] = qs
	}
	if idx := slices.IndexFunc(qs, func(q questionbank.Question) bool { return q.ID == a.QuestionID }); idx >= 0 {
		p.declared, p.question = true, idx
	}
	return p
}
