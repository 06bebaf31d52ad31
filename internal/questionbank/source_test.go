package questionbank

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/abhisek/dqi/internal/surveytree"
)

func TestEmbeddedCoversDefaultTree(t *testing.T) {
	src := Embedded()
	for _, name := range surveytree.Default().DatasetNames() {
		qs, err := src.Load(context.Background(), name)
		if err != nil {
			t.Errorf("load %s: %v", name, err)
			continue
		}
		if len(qs) == 0 {
			t.Errorf("dataset %s has no questions", name)
		}
		for _, q := range qs {
			if len(q.Options) == 0 {
				t.Errorf("%s question %d has no options", name, q.ID)
			}
		}
	}
}

func TestFSSourcePreservesOrder(t *testing.T) {
	src := NewFSSource(fstest.MapFS{
		"Ownership.json": {Data: []byte(`{"questions":[
			{"id":7,"question":"Seventh?","options":["Yes","No"]},
			{"id":2,"question":"Second?","options":["Yes","No"]}
		]}`)},
	})
	qs, err := src.Load(context.Background(), "Ownership")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(qs) != 2 || qs[0].ID != 7 || qs[1].ID != 2 {
		t.Errorf("questions = %+v, want ids [7 2]", qs)
	}
}

func TestFSSourceEmptyIsValid(t *testing.T) {
	src := NewFSSource(fstest.MapFS{
		"Empty.json": {Data: []byte(`{"questions":[]}`)},
	})
	qs, err := src.Load(context.Background(), "Empty")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if qs == nil || len(qs) != 0 {
		t.Errorf("questions = %#v, want empty non-nil slice", qs)
	}
}

func TestFSSourceErrors(t *testing.T) {
	src := NewFSSource(fstest.MapFS{
		"Broken.json":    {Data: []byte(`{"questions":`)},
		"WrongType.json": {Data: []byte(`{"questions":[{"id":"one","question":"Q","options":[]}]}`)},
		"NoKey.json":     {Data: []byte(`{"items":[]}`)},
		"DupID.json":     {Data: []byte(`{"questions":[{"id":1,"question":"Q","options":[]},{"id":1,"question":"R","options":[]}]}`)},
	})

	tests := []struct {
		name     string
		notFound bool
	}{
		{"Missing", true},
		{"../escape", true},
		{"Broken", false},
		{"WrongType", false},
		{"NoKey", false},
		{"DupID", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := src.Load(context.Background(), tt.name)
			var le *LoadError
			if !errors.As(err, &le) {
				t.Fatalf("error = %v, want *LoadError", err)
			}
			if le.Name != tt.name {
				t.Errorf("LoadError.Name = %q, want %q", le.Name, tt.name)
			}
			if got := errors.Is(err, ErrNotFound); got != tt.notFound {
				t.Errorf("errors.Is(ErrNotFound) = %v, want %v", got, tt.notFound)
			}
		})
	}
}

func TestFindQuestion(t *testing.T) {
	qs := []Question{{ID: 1, Question: "a"}, {ID: 4, Question: "b"}}
	if q, ok := FindQuestion(qs, 4); !ok || q.Question != "b" {
		t.Errorf("FindQuestion(4) = %+v, %v", q, ok)
	}
	if _, ok := FindQuestion(qs, 2); ok {
		t.Error("FindQuestion(2) should not be found")
	}
}
