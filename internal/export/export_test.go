package export

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/dqi/internal/surveyapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeFetcher struct {
	rows   map[string][]surveyapi.Row
	failed map[string]bool
	calls  []string
}

func (f *fakeFetcher) ExportRows(_ context.Context, empID string) ([]surveyapi.Row, error) {
	f.calls = append(f.calls, empID)
	if f.failed[empID] {
		return nil, &surveyapi.ExportError{EmpID: empID, StatusCode: 500}
	}
	return f.rows[empID], nil
}

func rowsFor(t *testing.T, empID string, answers ...string) []surveyapi.Row {
	t.Helper()
	var b strings.Builder
	b.WriteString("[")
	for i, a := range answers {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(`{"Employee ID":"` + empID + `","Category":"Governance","Subcategory":"Ownership","Question":"Q` +
			string(rune('1'+i)) + `","Answer":"` + a + `"}`)
	}
	b.WriteString("]")
	rows, err := surveyapi.ParseRows([]byte(b.String()))
	require.NoError(t, err)
	return rows
}

func openWorkbook(t *testing.T, path string) *excelize.File {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestFileNames(t *testing.T) {
	assert.Equal(t, "survey_responses_A1234.xlsx", SingleFileName("A1234"))
	day := time.Date(2026, 3, 9, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "all_survey_responses_2026-03-09.xlsx", BulkFileName(day))
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Emp_A1234", SheetName("A1234"))
	assert.Equal(t, "Emp_a_b", SheetName("a/b"))

	long := SheetName(strings.Repeat("x", 40))
	assert.Len(t, long, 31)
	assert.True(t, strings.HasPrefix(long, "Emp_"))
}

func TestExportOne(t *testing.T) {
	dir := t.TempDir()
	fetcher := &fakeFetcher{rows: map[string][]surveyapi.Row{
		"A1234": rowsFor(t, "A1234", "Yes", "No"),
	}}
	e := NewExporter(dir, fetcher)

	path, err := e.ExportOne(context.Background(), "A1234")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "survey_responses_A1234.xlsx"), path)

	f := openWorkbook(t, path)
	assert.Equal(t, []string{SingleSheet}, f.GetSheetList())

	rows, err := f.GetRows(SingleSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Employee ID", "Category", "Subcategory", "Question", "Answer"}, rows[0])
	assert.Equal(t, "Yes", rows[1][4])
	assert.Equal(t, "No", rows[2][4])
}

func TestExportOneFailure(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(dir, &fakeFetcher{failed: map[string]bool{"A1234": true}})

	_, err := e.ExportOne(context.Background(), "A1234")
	var ee *surveyapi.ExportError
	require.True(t, errors.As(err, &ee))
	assert.NoFileExists(t, filepath.Join(dir, SingleFileName("A1234")))
}

func TestExportAllSkipsFailures(t *testing.T) {
	dir := t.TempDir()
	fetcher := &fakeFetcher{
		rows: map[string][]surveyapi.Row{
			"A0001": rowsFor(t, "A0001", "Yes"),
			"A0003": rowsFor(t, "A0003", "No"),
		},
		failed: map[string]bool{"A0002": true},
	}
	day := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	e := NewExporter(dir, fetcher, WithClock(func() time.Time { return day }))

	res, err := e.ExportAll(context.Background(), []string{"A0001", "A0002", "A0003"})
	require.NoError(t, err)
	assert.Equal(t, []string{"A0001", "A0002", "A0003"}, fetcher.calls)
	assert.Equal(t, []string{"A0001", "A0003"}, res.Exported)
	assert.Equal(t, []string{"A0002"}, res.Skipped)
	assert.Equal(t, filepath.Join(dir, "all_survey_responses_2026-10-19.xlsx"), res.Path)

	f := openWorkbook(t, res.Path)
	assert.Equal(t, []string{"Emp_A0001", "Emp_A0003"}, f.GetSheetList())

	rows, err := f.GetRows("Emp_A0003")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "A0003", rows[1][0])
}

func TestExportAllNothingExported(t *testing.T) {
	dir := t.TempDir()
	fetcher := &fakeFetcher{failed: map[string]bool{"A0001": true}}
	e := NewExporter(dir, fetcher)

	res, err := e.ExportAll(context.Background(), []string{"A0001"})
	require.NoError(t, err)
	assert.Empty(t, res.Exported)

	f := openWorkbook(t, res.Path)
	assert.Equal(t, []string{SingleSheet}, f.GetSheetList())
	rows, err := f.GetRows(SingleSheet)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestExportAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e := NewExporter(t.TempDir(), &fakeFetcher{})

	_, err := e.ExportAll(ctx, []string{"A0001"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWorkbookHeaderUnion(t *testing.T) {
	rows, err := surveyapi.ParseRows([]byte(`[{"a":"1"},{"a":"2","b":"x"}]`))
	require.NoError(t, err)

	f, err := Workbook([]Sheet{{Name: "S", Rows: rows}})
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	got, err := f.GetRows("S")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}, {"1"}, {"2", "x"}}, got)
}
