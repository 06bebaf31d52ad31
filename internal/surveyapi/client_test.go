package surveyapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(WithBaseURL(srv.URL+"/"), WithHTTPClient(srv.Client()))
}

func TestSubmit(t *testing.T) {
	var got submitRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/submissions/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		_, _ = w.Write([]byte(`{"message":"Submission successful","submission_id":7,"emp_id":"A1234"}`))
	})

	ack, err := c.Submit(context.Background(), "A1234", map[string]string{"Governance_Ownership_1": "Yes"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), ack.SubmissionID)
	assert.Equal(t, "A1234", got.EmpID)
	assert.Equal(t, map[string]string{"Governance_Ownership_1": "Yes"}, got.Answers)
}

func TestSubmitErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantReason string
	}{
		{"detail string", http.StatusBadRequest, `{"detail":"Employee ID must be 'A' followed by 4 digits"}`, "Employee ID must be 'A' followed by 4 digits"},
		{"detail list", http.StatusUnprocessableEntity, `{"detail":[{"msg":"field required"},{"msg":"bad value"}]}`, "field required; bad value"},
		{"no detail", http.StatusInternalServerError, `oops`, "Failed to submit survey"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := c.Submit(context.Background(), "A1234", nil)
			var se *SubmissionError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.status, se.StatusCode)
			assert.Equal(t, tt.wantReason, se.Reason)
			assert.Equal(t, tt.wantReason, err.Error())
		})
	}
}

func TestSubmitUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := NewClient(WithBaseURL(base), WithTimeout(2*time.Second))
	_, err := c.Submit(context.Background(), "A1234", map[string]string{})
	var se *SubmissionError
	require.ErrorAs(t, err, &se)
	assert.Zero(t, se.StatusCode)
	assert.Equal(t, "Could not reach the survey service", se.Reason)
	assert.NotNil(t, errors.Unwrap(err))
	c.client.CloseIdleConnections()
}

func TestFetchAll(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/submissions", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"id":2,"emp_id":"A0002","submission_date":"2026-10-18T09:30:00.000000Z","answer_count":20},
			{"id":1,"emp_id":"A0001","submission_date":"2026-10-17T08:00:00.123456","answer_count":19}
		]`))
	})

	subs, err := c.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "A0002", subs[0].EmpID)
	assert.Equal(t, 19, subs[1].AnswerCount)

	at, err := subs[1].SubmittedAt()
	require.NoError(t, err)
	assert.Equal(t, 17, at.Day())
}

func TestFetchAllFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	_, err := c.FetchAll(context.Background())
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, http.StatusServiceUnavailable, fe.StatusCode)
}

func TestFetchSubmission(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/submissions/E123":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"Submission not found"}`))
		case "/submissions/A0001":
			_, _ = w.Write([]byte(`{"emp_id":"A0001","answers":{"Governance_Ownership_1":"Yes"},
				"answers_list":[{"category":"Governance","subcategory":"Ownership","question_id":1,"question":"Q?","answer":"Yes"}]}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	})

	t.Run("not found is not an error", func(t *testing.T) {
		detail, err := c.FetchSubmission(context.Background(), "E123")
		require.NoError(t, err)
		assert.Nil(t, detail)
	})

	t.Run("found", func(t *testing.T) {
		detail, err := c.FetchSubmission(context.Background(), "A0001")
		require.NoError(t, err)
		require.NotNil(t, detail)
		assert.Equal(t, "Yes", detail.Answers["Governance_Ownership_1"])
		require.Len(t, detail.AnswersList, 1)
		assert.Equal(t, 1, detail.AnswersList[0].QuestionID)
	})

	t.Run("server error", func(t *testing.T) {
		_, err := c.FetchSubmission(context.Background(), "A9999")
		var fe *FetchError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, http.StatusInternalServerError, fe.StatusCode)
	})
}

func TestExportRows(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/export/A0001" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`[
			{"Employee ID":"A0001","Category":"Governance","Subcategory":"Ownership","Question":"Q1?","Answer":"Yes"},
			{"Employee ID":"A0001","Category":"Governance","Subcategory":"Lineage","Question":"Q2?","Answer":null}
		]`))
	})

	rows, err := c.ExportRows(context.Background(), "A0001")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Employee ID", "Category", "Subcategory", "Question", "Answer"}, rows[0].Columns)
	assert.Equal(t, "Ownership", rows[0].Get("Subcategory"))
	assert.Nil(t, rows[1].Get("Answer"))

	_, err = c.ExportRows(context.Background(), "A0002")
	var ee *ExportError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, "A0002", ee.EmpID)
	assert.Equal(t, http.StatusNotFound, ee.StatusCode)
}

func TestPing(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":"Data Quality Index API","version":"v1.2.0"}`))
	})
	b, err := c.Ping(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v1.2.0", b.Version)
}

func TestParseRows(t *testing.T) {
	t.Run("keeps column order", func(t *testing.T) {
		rows, err := ParseRows([]byte(`[{"b":1,"a":"x"},{"c":true,"a":"y"}]`))
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "a"}, rows[0].Columns)
		assert.Equal(t, []string{"b", "a", "c"}, Header(rows))
		assert.Equal(t, float64(1), rows[0].Get("b"))
	})
	t.Run("empty array", func(t *testing.T) {
		rows, err := ParseRows([]byte(`[]`))
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
	t.Run("not an array", func(t *testing.T) {
		_, err := ParseRows([]byte(`{"a":1}`))
		assert.Error(t, err)
	})
	t.Run("not objects", func(t *testing.T) {
		_, err := ParseRows([]byte(`[1,2]`))
		assert.Error(t, err)
	})
}

func TestValidEmployeeID(t *testing.T) {
	for id, want := range map[string]bool{
		"A1234":  true,
		"A0000":  true,
		"B1234":  false,
		"A123":   false,
		"A12345": false,
		"a1234":  false,
		"A12b4":  false,
	} {
		assert.Equal(t, want, ValidEmployeeID(id), id)
	}
}
