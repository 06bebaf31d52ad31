package completeness

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/abhisek/dqi/internal/answers"
	"github.com/abhisek/dqi/internal/questionbank"
	"github.com/abhisek/dqi/internal/surveytree"
)

// bank is an in-memory question source that records load order.
type bank struct {
	sets   map[string][]questionbank.Question
	failOn map[string]bool
	loaded []string
}

func (b *bank) Load(_ context.Context, name string) ([]questionbank.Question, error) {
	b.loaded = append(b.loaded, name)
	if b.failOn[name] {
		return nil, &questionbank.LoadError{Name: name, Err: errors.New("unreachable")}
	}
	qs, ok := b.sets[name]
	if !ok {
		return nil, &questionbank.LoadError{Name: name, Err: questionbank.ErrNotFound}
	}
	return qs, nil
}

func yesNo(ids ...int) []questionbank.Question {
	qs := make([]questionbank.Question, 0, len(ids))
	for _, id := range ids {
		qs = append(qs, questionbank.Question{
			ID:       id,
			Question: fmt.Sprintf("Question %d?", id),
			Options:  []string{"Yes", "No"},
		})
	}
	return qs
}

func governanceTree() *surveytree.Tree {
	return &surveytree.Tree{Categories: []surveytree.Category{
		{ID: "gov", Title: "Governance", Subcategories: []surveytree.Subcategory{
			{Title: "Ownership"}, {Title: "Lineage"},
		}},
	}}
}

func TestCheck_OnlyOwnershipAnswered(t *testing.T) {
	src := &bank{sets: map[string][]questionbank.Question{
		"Ownership": yesNo(1),
		"Lineage":   yesNo(1),
	}}
	store := answers.NewStore()
	store.Set("Governance", "Ownership", 1, "Yes")

	res, err := New(governanceTree(), src, nil).Check(context.Background(), store)
	if err != nil {
		t.Fatalf("check: %v", err)
	}

	want := []MissingRef{{
		CategoryID:  "gov",
		Category:    "Governance",
		Subcategory: "Lineage",
		QuestionID:  1,
		Question:    "Question 1?",
	}}
	if diff := cmp.Diff(want, res.Missing); diff != "" {
		t.Errorf("missing mismatch (-want +got):\n%s", diff)
	}
	if res.Complete() {
		t.Error("expected incomplete result")
	}
	if res.First == nil || res.First.Subcategory != "Lineage" {
		t.Errorf("first = %+v, want Lineage", res.First)
	}
}

func TestCheck_FullyAnswered(t *testing.T) {
	tree := &surveytree.Tree{Categories: []surveytree.Category{
		{ID: "a", Title: "A", Subcategories: []surveytree.Subcategory{{Title: "x"}, {Title: "y"}}},
		{ID: "b", Title: "B", Subcategories: []surveytree.Subcategory{{Title: "z"}}},
	}}
	src := &bank{sets: map[string][]questionbank.Question{
		"x": yesNo(3, 1),
		"y": yesNo(1),
		"z": yesNo(2, 5, 4),
	}}
	store := answers.NewStore()
	for _, c := range tree.Categories {
		for _, s := range c.Subcategories {
			for _, q := range src.sets[s.Title] {
				store.Set(c.Title, s.Title, q.ID, "Yes")
			}
		}
	}

	res, err := New(tree, src, nil).Check(context.Background(), store)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !res.Complete() || res.First != nil {
		t.Fatalf("expected complete result, missing = %+v", res.Missing)
	}

	var got []string
	for _, item := range res.Review {
		got = append(got, fmt.Sprintf("%s/%s/%d", item.Category, item.Subcategory, item.QuestionID))
	}
	want := []string{"A/x/3", "A/x/1", "A/y/1", "B/z/2", "B/z/5", "B/z/4"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("review order mismatch (-want +got):\n%s", diff)
	}
}

func TestCheck_SingleMissingIsFirst(t *testing.T) {
	tree := &surveytree.Tree{Categories: []surveytree.Category{
		{ID: "a", Title: "A", Subcategories: []surveytree.Subcategory{{Title: "x"}, {Title: "y"}}},
		{ID: "b", Title: "B", Subcategories: []surveytree.Subcategory{{Title: "z"}}},
	}}
	src := &bank{sets: map[string][]questionbank.Question{
		"x": yesNo(9, 8),
		"y": yesNo(7, 6, 5),
		"z": yesNo(4, 3, 2, 1),
	}}
	v := New(tree, src, nil)

	for _, cat := range tree.Categories {
		for _, sub := range cat.Subcategories {
			for _, q := range src.sets[sub.Title] {
				name := fmt.Sprintf("%s/%s/%d", cat.Title, sub.Title, q.ID)
				t.Run(name, func(t *testing.T) {
					store := answers.NewStore()
					for _, c := range tree.Categories {
						for _, s := range c.Subcategories {
							for _, other := range src.sets[s.Title] {
								store.Set(c.Title, s.Title, other.ID, "No")
							}
						}
					}
					store.Set(cat.Title, sub.Title, q.ID, "")

					res, err := v.Check(context.Background(), store)
					if err != nil {
						t.Fatalf("check: %v", err)
					}
					want := &MissingRef{
						CategoryID:  cat.ID,
						Category:    cat.Title,
						Subcategory: sub.Title,
						QuestionID:  q.ID,
						Question:    q.Question,
						Index:       indexOf(src.sets[sub.Title], q.ID),
					}
					if diff := cmp.Diff(want, res.First); diff != "" {
						t.Errorf("first mismatch (-want +got):\n%s", diff)
					}
					if len(res.Missing) != 1 {
						t.Errorf("missing = %d, want 1", len(res.Missing))
					}
				})
			}
		}
	}
}

func indexOf(qs []questionbank.Question, id int) int {
	for i, q := range qs {
		if q.ID == id {
			return i
		}
	}
	return -1
}

func TestCheck_FirstFollowsTraversalNotID(t *testing.T) {
	src := &bank{sets: map[string][]questionbank.Question{
		"Ownership": yesNo(10, 2),
		"Lineage":   yesNo(1),
	}}
	res, err := New(governanceTree(), src, nil).Check(context.Background(), answers.NewStore())
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if res.First.QuestionID != 10 || res.First.Subcategory != "Ownership" {
		t.Errorf("first = %+v, want Ownership/10", res.First)
	}
	if len(res.Missing) != 3 {
		t.Errorf("missing = %d, want 3", len(res.Missing))
	}
}

func TestCheck_WhitespaceIsMissing(t *testing.T) {
	src := &bank{sets: map[string][]questionbank.Question{
		"Ownership": yesNo(1),
		"Lineage":   yesNo(1),
	}}
	blank := answers.NewStore()
	blank.Set("Governance", "Ownership", 1, "Yes")
	blank.Set("Governance", "Lineage", 1, "   ")

	absent := answers.NewStore()
	absent.Set("Governance", "Ownership", 1, "Yes")

	v := New(governanceTree(), src, nil)
	withBlank, err := v.Check(context.Background(), blank)
	if err != nil {
		t.Fatal(err)
	}
	withAbsent, err := v.Check(context.Background(), absent)
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(withAbsent.Missing, withBlank.Missing); diff != "" {
		t.Errorf("blank answer treated differently from absent (-absent +blank):\n%s", diff)
	}
	ignoreAnswer := cmpopts.IgnoreFields(ReviewItem{}, "Answer")
	if diff := cmp.Diff(withAbsent.Review, withBlank.Review, ignoreAnswer); diff != "" {
		t.Errorf("review differs (-absent +blank):\n%s", diff)
	}
}

func TestCheck_LoadFailureDegrades(t *testing.T) {
	src := &bank{
		sets:   map[string][]questionbank.Question{"Ownership": yesNo(1, 2)},
		failOn: map[string]bool{"Lineage": true},
	}
	store := answers.NewStore()
	store.Set("Governance", "Ownership", 1, "Yes")
	store.Set("Governance", "Ownership", 2, "No")

	res, err := New(governanceTree(), src, nil).Check(context.Background(), store)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !res.Complete() {
		t.Errorf("expected unreachable subcategory to be skipped, missing = %+v", res.Missing)
	}
	if len(res.Review) != 2 {
		t.Errorf("review = %d items, want 2", len(res.Review))
	}
	if len(res.Unchecked) != 1 || res.Unchecked[0].Subcategory != "Lineage" {
		t.Errorf("unchecked = %+v, want Lineage", res.Unchecked)
	}
}

func TestCheck_LoadsSequentiallyInOrder(t *testing.T) {
	src := &bank{sets: map[string][]questionbank.Question{
		"Ownership": yesNo(1),
		"Lineage":   yesNo(1),
	}}
	if _, err := New(governanceTree(), src, nil).Check(context.Background(), answers.NewStore()); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"Ownership", "Lineage"}, src.loaded); diff != "" {
		t.Errorf("load order (-want +got):\n%s", diff)
	}
}

func TestCheck_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	src := &bank{sets: map[string][]questionbank.Question{}}
	_, err := New(governanceTree(), src, nil).Check(ctx, answers.NewStore())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
