package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/abhisek/dqi/internal/answers"
	"github.com/abhisek/dqi/internal/store"
	"github.com/abhisek/dqi/internal/surveyapi"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type submissionRequest struct {
	EmpID   string         `json:"emp_id" binding:"required"`
	Answers map[string]any `json:"answers" binding:"required"`
}

// exportRow fixes the column order of export rows.
type exportRow struct {
	EmployeeID  string `json:"Employee ID"`
	Category    string `json:"Category"`
	Subcategory string `json:"Subcategory"`
	Question    string `json:"Question"`
	Answer      string `json:"Answer"`
}

func (s *Server) root(c *gin.Context) {
	c.JSON(http.StatusOK, surveyapi.Banner{Message: Banner, Version: s.version})
}

func (s *Server) createSubmission(c *gin.Context) {
	var req submissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"detail": []gin.H{{"msg": err.Error(), "type": "value_error"}},
		})
		return
	}
	if !surveyapi.ValidEmployeeID(req.EmpID) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": surveyapi.ErrInvalidEmployeeID})
		return
	}

	ctx := c.Request.Context()
	records := make([]store.Answer, 0, len(req.Answers))
	for key, value := range req.Answers {
		parts, err := answers.ParseKey(key)
		if err != nil {
			s.log.Warn("skipping malformed answer key",
				zap.String("emp_id", req.EmpID),
				zap.String("key", key),
				zap.Error(err),
			)
			continue
		}
		records = append(records, store.Answer{
			Category:    parts.Category,
			Subcategory: parts.Subcategory,
			QuestionID:  parts.QuestionID,
			Question:    s.catalog.QuestionText(ctx, parts.Subcategory, parts.QuestionID),
			Answer:      answerString(value),
		})
	}
	s.catalog.Sort(ctx, records)

	id, err := s.repo.Replace(ctx, req.EmpID, s.now(), records)
	if err != nil {
		s.internalError(c, "store submission", err)
		return
	}
	s.log.Info("submission stored",
		zap.String("emp_id", req.EmpID),
		zap.Int64("submission_id", id),
		zap.Int("answers", len(records)),
	)
	c.JSON(http.StatusOK, surveyapi.Ack{
		Message:      "Submission successful",
		SubmissionID: id,
		EmpID:        req.EmpID,
	})
}

// answerString renders a submitted value as stored text.
func answerString(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

func (s *Server) listSubmissions(c *gin.Context) {
	subs, err := s.repo.List(c.Request.Context())
	if err != nil {
		s.internalError(c, "list submissions", err)
		return
	}
	out := make([]surveyapi.Submission, 0, len(subs))
	for _, sub := range subs {
		out = append(out, surveyapi.Submission{
			ID:             sub.ID,
			EmpID:          sub.EmpID,
			SubmissionDate: sub.SubmittedAt.Format(store.DateLayout),
			AnswerCount:    sub.AnswerCount,
		})
	}
	c.JSON(http.StatusOK, out)
}

// lookup loads the answers of empID, writing a 404 or 500 when it can't.
func (s *Server) lookup(c *gin.Context, empID string) ([]store.Answer, bool) {
	ctx := c.Request.Context()
	sub, err := s.repo.Get(ctx, empID)
	if err != nil {
		s.internalError(c, "get submission", err)
		return nil, false
	}
	if sub == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Submission not found"})
		return nil, false
	}
	rows, err := s.repo.Answers(ctx, sub.ID)
	if err != nil {
		s.internalError(c, "get answers", err)
		return nil, false
	}
	return rows, true
}

func (s *Server) getSubmission(c *gin.Context) {
	empID := c.Param("emp_id")
	rows, ok := s.lookup(c, empID)
	if !ok {
		return
	}

	detail := surveyapi.SubmissionDetail{
		EmpID:       empID,
		Answers:     make(map[string]string, len(rows)),
		AnswersList: make([]surveyapi.AnswerRecord, 0, len(rows)),
	}
	for _, a := range rows {
		key := answers.NewKey(a.Category, a.Subcategory, a.QuestionID)
		detail.Answers[key.String()] = a.Answer
		detail.AnswersList = append(detail.AnswersList, surveyapi.AnswerRecord{
			Category:    a.Category,
			Subcategory: a.Subcategory,
			QuestionID:  a.QuestionID,
			Question:    a.Question,
			Answer:      a.Answer,
		})
	}
	c.JSON(http.StatusOK, detail)
}

func (s *Server) exportSubmission(c *gin.Context) {
	empID := c.Param("emp_id")
	rows, ok := s.lookup(c, empID)
	if !ok {
		return
	}

	out := make([]exportRow, 0, len(rows))
	for _, a := range rows {
		out = append(out, exportRow{
			EmployeeID:  empID,
			Category:    a.Category,
			Subcategory: a.Subcategory,
			Question:    a.Question,
			Answer:      a.Answer,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) internalError(c *gin.Context, op string, err error) {
	s.log.Error(op,
		zap.Error(err),
		zap.String(requestIDKey, c.GetString(requestIDKey)),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
}
