package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

type submissionRepo struct {
	db *sql.DB
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *submissionRepo) Replace(ctx context.Context, empID string, at time.Time, answers []Answer) (id int64, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	b := builder()

	var prev int64
	query, args := b.Select("id").From(b.Table("submissions")).
		Where(entsql.EQ("emp_id", empID)).Query()
	switch err := tx.QueryRowContext(ctx, query, args...).Scan(&prev); {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return 0, fmt.Errorf("find previous submission: %w", err)
	default:
		query, args = b.Delete("answers").Where(entsql.EQ("submission_id", prev)).Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return 0, fmt.Errorf("delete previous answers: %w", err)
		}
		query, args = b.Delete("submissions").Where(entsql.EQ("id", prev)).Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return 0, fmt.Errorf("delete previous submission: %w", err)
		}
	}

	query, args = b.Insert("submissions").
		Columns("emp_id", "submission_date").
		Values(empID, at.UTC().Format(DateLayout)).
		Query()
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("insert submission: %w", err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("submission id: %w", err)
	}

	if len(answers) > 0 {
		ins := b.Insert("answers").
			Columns("submission_id", "category", "subcategory", "question_id", "question", "answer")
		for _, a := range answers {
			ins.Values(id, a.Category, a.Subcategory, a.QuestionID, a.Question, a.Answer)
		}
		query, args = ins.Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return 0, fmt.Errorf("insert answers: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// selectSubmissions selects submissions with their answer counts.
func selectSubmissions(preds ...func(*entsql.SelectTable) *entsql.Predicate) *entsql.Selector {
	b := builder()
	s := b.Table("submissions")
	a := b.Table("answers")
	sel := b.Select(
		s.C("id"),
		s.C("emp_id"),
		s.C("submission_date"),
		entsql.As(entsql.Count(a.C("id")), "answer_count"),
	).
		From(s).
		LeftJoin(a).On(s.C("id"), a.C("submission_id")).
		GroupBy(s.C("id"), s.C("emp_id"), s.C("submission_date")).
		OrderBy(entsql.Desc(s.C("submission_date")), entsql.Desc(s.C("id")))
	for _, p := range preds {
		sel.Where(p(s))
	}
	return sel
}

func scanSubmission(sc interface{ Scan(...any) error }) (Submission, error) {
	var (
		sub  Submission
		date string
	)
	if err := sc.Scan(&sub.ID, &sub.EmpID, &date, &sub.AnswerCount); err != nil {
		return sub, err
	}
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return sub, fmt.Errorf("parse submission date %q: %w", date, err)
	}
	sub.SubmittedAt = t
	return sub, nil
}

func (r *submissionRepo) Get(ctx context.Context, empID string) (*Submission, error) {
	query, args := selectSubmissions(func(s *entsql.SelectTable) *entsql.Predicate {
		return entsql.EQ(s.C("emp_id"), empID)
	}).Query()

	sub, err := scanSubmission(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get submission: %w", err)
	}
	return &sub, nil
}

func (r *submissionRepo) List(ctx context.Context) ([]Submission, error) {
	query, args := selectSubmissions().Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	subs := []Submission{}
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

func (r *submissionRepo) Answers(ctx context.Context, submissionID int64) ([]Answer, error) {
	b := builder()
	t := b.Table("answers")
	query, args := b.Select(
		t.C("category"),
		t.C("subcategory"),
		t.C("question_id"),
		t.C("question"),
		t.C("answer"),
	).
		From(t).
		Where(entsql.EQ(t.C("submission_id"), submissionID)).
		OrderBy(t.C("id")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	defer rows.Close()

	answers := []Answer{}
	for rows.Next() {
		var a Answer
		if err := rows.Scan(&a.Category, &a.Subcategory, &a.QuestionID, &a.Question, &a.Answer); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}
