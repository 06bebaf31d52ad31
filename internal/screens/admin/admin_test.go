package admin

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/dqi/internal/export"
	"github.com/abhisek/dqi/internal/surveyapi"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

type fakeLister struct {
	subs []surveyapi.Submission
	err  error
}

func (f *fakeLister) FetchAll(context.Context) ([]surveyapi.Submission, error) {
	return f.subs, f.err
}

type fakeExporter struct {
	one     []string
	all     []string
	failOne error
}

func (f *fakeExporter) ExportOne(_ context.Context, empID string) (string, error) {
	if f.failOne != nil {
		return "", f.failOne
	}
	f.one = append(f.one, empID)
	return "survey_responses_" + empID + ".xlsx", nil
}

func (f *fakeExporter) ExportAll(_ context.Context, ids []string) (*export.BulkResult, error) {
	f.all = ids
	return &export.BulkResult{Path: "all.xlsx", Exported: ids[1:], Skipped: ids[:1]}, nil
}

var testSubs = []surveyapi.Submission{
	{ID: 3, EmpID: "A0003", SubmissionDate: "2026-10-19T09:00:00Z", AnswerCount: 8},
	{ID: 2, EmpID: "A0002", SubmissionDate: "2026-10-18T09:00:00Z", AnswerCount: 8},
	{ID: 1, EmpID: "B1001", SubmissionDate: "2026-10-17T09:00:00Z", AnswerCount: 7},
}

func run(s *AdminScreen, cmd tea.Cmd) {
	if cmd != nil {
		s.Update(cmd())
	}
}

func loaded(t *testing.T, lister *fakeLister, exp *fakeExporter) *AdminScreen {
	t.Helper()
	s := New(Deps{Lister: lister, Exporter: exp})
	run(s, s.Init())
	require.False(t, s.loading)
	return s
}

func TestListsSubmissions(t *testing.T) {
	s := loaded(t, &fakeLister{subs: testSubs}, &fakeExporter{})

	assert.Equal(t, "3 submissions", s.Status())
	view := s.View(100, 20)
	for _, id := range []string{"A0003", "A0002", "B1001"} {
		assert.Contains(t, view, id)
	}
}

func TestSearchFilters(t *testing.T) {
	s := loaded(t, &fakeLister{subs: testSubs}, &fakeExporter{})

	s.Update(keyPress('/'))
	require.True(t, s.HandlesBack())
	s.search.SetValue("b1")
	s.Update(specialKey(tea.KeyEnter))

	assert.False(t, s.searching)
	require.Len(t, s.visible(), 1)
	assert.Equal(t, "B1001", s.visible()[0].EmpID)

	s.Update(keyPress('/'))
	s.Update(specialKey(tea.KeyEscape))
	assert.Len(t, s.visible(), 3)
}

func TestFetchErrorIsPageLevel(t *testing.T) {
	lister := &fakeLister{err: &surveyapi.FetchError{StatusCode: 500}}
	s := loaded(t, lister, &fakeExporter{})

	view := s.View(100, 20)
	assert.Contains(t, view, "Could not load submissions")

	lister.err = nil
	lister.subs = testSubs
	_, cmd := s.Update(keyPress('r'))
	run(s, cmd)
	assert.NoError(t, s.fetchErr)
	assert.Len(t, s.submissions, 3)
}

func TestExportSelected(t *testing.T) {
	exp := &fakeExporter{}
	s := loaded(t, &fakeLister{subs: testSubs}, exp)

	s.Update(specialKey(tea.KeyDown))
	_, cmd := s.Update(keyPress('e'))
	require.True(t, s.busy)
	run(s, cmd)

	assert.Equal(t, []string{"A0002"}, exp.one)
	assert.False(t, s.alertErr)
	assert.Contains(t, s.alert, "survey_responses_A0002.xlsx")
}

func TestExportFailureShowsAlert(t *testing.T) {
	exp := &fakeExporter{failOne: &surveyapi.ExportError{EmpID: "A0003", StatusCode: 404}}
	s := loaded(t, &fakeLister{subs: testSubs}, exp)

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	run(s, cmd)

	assert.True(t, s.alertErr)
	assert.True(t, strings.HasPrefix(s.alert, "Failed to export A0003"), s.alert)
}

func TestExportAllReportsSkipped(t *testing.T) {
	exp := &fakeExporter{}
	s := loaded(t, &fakeLister{subs: testSubs}, exp)
	s.search.SetValue("A")

	_, cmd := s.Update(keyPress('a'))
	run(s, cmd)

	assert.Equal(t, []string{"A0003", "A0002", "B1001"}, exp.all)
	assert.Contains(t, s.alert, "Saved 2 employees to all.xlsx")
	assert.Contains(t, s.alert, "skipped 1: A0003")
}

func TestEmptyListIgnoresExport(t *testing.T) {
	s := loaded(t, &fakeLister{}, &fakeExporter{})

	_, cmd := s.Update(keyPress('e'))
	assert.Nil(t, cmd)
	_, cmd = s.Update(keyPress('a'))
	assert.Nil(t, cmd)
	assert.Contains(t, s.View(80, 20), "No submissions yet.")
}
