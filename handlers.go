package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/*** Exam start ***/

// StartExamReq carries the raw start-form values; parsing and defaults live
// in parseExamParams.
type StartExamReq struct {
	NumQuestions string
	Duration     string
	Mode         string
	Subject      string
}

func bindStartExam(c *gin.Context) StartExamReq {
	if c.ContentType() == binding.MIMEJSON {
		var body struct {
			NumQuestions any    `json:"num_questions"`
			Duration     any    `json:"duration"`
			Mode         string `json:"mode"`
			Subject      string `json:"subject"`
		}
		// an unreadable body falls back to defaults like a bad form value
		_ = c.ShouldBindJSON(&body)
		return StartExamReq{
			NumQuestions: paramString(body.NumQuestions),
			Duration:     paramString(body.Duration),
			Mode:         body.Mode,
			Subject:      body.Subject,
		}
	}
	return StartExamReq{
		NumQuestions: c.PostForm("num_questions"),
		Duration:     c.PostForm("duration"),
		Mode:         c.PostForm("mode"),
		Subject:      c.PostForm("subject"),
	}
}

func paramString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

func StartExam(sel *Selector, seen *SeenStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := bindStartExam(c)
		p := parseExamParams(req.NumQuestions, req.Duration, req.Mode, req.Subject)
		ctx := c.Request.Context()

		visitorID, hasVisitor := currentVisitorID(c)
		var exclude IDSet
		if hasVisitor {
			var err error
			if exclude, err = seen.Load(ctx, visitorID); err != nil {
				log.Printf("start exam: load seen for visitor %d: %v", visitorID, err)
			}
		}

		qs := sel.Select(ctx, p.NumQuestions, p.Subject, exclude)
		if len(qs) == 0 {
			if p.Subject != SubjectCombined {
				c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("no questions found for subject '%s'", p.Subject)})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not retrieve questions"})
			return
		}

		if hasVisitor {
			ids := make([]int64, 0, len(qs))
			for _, q := range qs {
				ids = append(ids, q.ID)
			}
			if err := seen.Merge(ctx, visitorID, ids); err != nil {
				log.Printf("start exam: merge seen for visitor %d: %v", visitorID, err)
			}
		}

		c.JSON(http.StatusOK, ExamSet{
			Subject:         p.Subject,
			DurationMinutes: p.DurationMinutes,
			Questions:       qs,
		})
	}
}

/*** Submission ***/

type SubmitExamReq struct {
	QuestionIDs []int64          `json:"question_ids"`
	Answers     map[int64]string `json:"answers"`
	Flagged     []int64          `json:"flagged"`
	Subject     string           `json:"subject"`
	Duration    int              `json:"duration"`

	unreadable int
}

// bindSubmission accepts a JSON body or the exam form: repeated question_ids,
// q_<id> holding the chosen letter and repeated flagged ids. A form id that is
// not a number cannot match a question; it is only counted.
func bindSubmission(c *gin.Context) (SubmitExamReq, error) {
	var req SubmitExamReq
	if c.ContentType() == binding.MIMEJSON {
		if err := c.ShouldBindJSON(&req); err != nil {
			return SubmitExamReq{}, err
		}
		return req, nil
	}

	raw := c.PostFormArray("question_ids")
	req.Answers = make(map[int64]string, len(raw))
	for _, s := range raw {
		id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			req.unreadable++
			continue
		}
		req.QuestionIDs = append(req.QuestionIDs, id)
		if v := c.PostForm("q_" + s); v != "" {
			req.Answers[id] = v
		}
	}
	for _, s := range c.PostFormArray("flagged") {
		if id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			req.Flagged = append(req.Flagged, id)
		}
	}
	req.Subject = c.PostForm("subject")
	req.Duration, _ = strconv.Atoi(c.PostForm("duration"))
	return req, nil
}

type SubmitResponse struct {
	AttemptID string `json:"attemptId,omitempty"`
	Result
}

func SubmitExam(db *gorm.DB, scorer *Scorer) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := bindSubmission(c)
		if err != nil {
			log.Printf("submit exam: bind: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": ErrSubmission.Error()})
			return
		}

		res, err := scorer.Score(c.Request.Context(), Submission{
			QuestionIDs: req.QuestionIDs,
			Answers:     req.Answers,
			Flagged:     NewIDSet(req.Flagged...),
			Unreadable:  req.unreadable,
		})
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": ErrSubmission.Error()})
			return
		}

		out := SubmitResponse{Result: res}
		if visitorID, ok := currentVisitorID(c); ok && res.Total > 0 {
			id, err := saveAttempt(c.Request.Context(), db, visitorID, req.Subject, req.Duration, res)
			if err != nil {
				log.Printf("submit exam: save attempt for visitor %d: %v", visitorID, err)
			} else {
				out.AttemptID = id
			}
		}
		c.JSON(http.StatusOK, out)
	}
}

func saveAttempt(ctx context.Context, db *gorm.DB, visitorID uint, subject string, duration int, res Result) (string, error) {
	raw, err := json.Marshal(res.Analysis)
	if err != nil {
		return "", err
	}
	if subject == "" {
		subject = SubjectCombined
	}
	if duration <= 0 {
		duration = defaultDurationMinutes
	}
	flagged := 0
	for _, it := range res.Analysis {
		if it.Flagged {
			flagged++
		}
	}
	a := Attempt{
		ID:              uuid.New().String(),
		VisitorID:       &visitorID,
		Subject:         subject,
		DurationMinutes: duration,
		Score:           res.Score,
		Total:           res.Total,
		Correct:         res.Correct,
		Wrong:           res.Wrong,
		Skipped:         res.Skipped,
		Flagged:         flagged,
		Analysis:        datatypes.JSON(raw),
		SubmittedAt:     time.Now(),
	}
	if err := db.WithContext(ctx).Create(&a).Error; err != nil {
		return "", err
	}
	return a.ID, nil
}

// ===== Attempt history: list & detail (read-only) =====

type AttemptSummaryDTO struct {
	ID              string    `json:"id"`
	Subject         string    `json:"subject"`
	SubmittedAt     time.Time `json:"submittedAt"`
	DurationMinutes int       `json:"durationMinutes"`
	Score           float64   `json:"score"`
	Total           int       `json:"total"`
	Correct         int       `json:"correct"`
	Wrong           int       `json:"wrong"`
	Skipped         int       `json:"skipped"`
	Flagged         int       `json:"flagged"`
}

func attemptSummary(a Attempt) AttemptSummaryDTO {
	return AttemptSummaryDTO{
		ID:              a.ID,
		Subject:         a.Subject,
		SubmittedAt:     a.SubmittedAt,
		DurationMinutes: a.DurationMinutes,
		Score:           a.Score,
		Total:           a.Total,
		Correct:         a.Correct,
		Wrong:           a.Wrong,
		Skipped:         a.Skipped,
		Flagged:         a.Flagged,
	}
}

// ListMyAttempts returns the visitor's attempts, newest first.
// Query params: ?limit=20&offset=0  (limit default 20, max 100)
func ListMyAttempts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := currentVisitorID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no visitor"})
			return
		}

		limit := 20
		offset := 0
		if l := c.Query("limit"); l != "" {
			if n, err := strconv.Atoi(l); err == nil && n > 0 {
				if n > 100 {
					n = 100
				}
				limit = n
			}
		}
		if o := c.Query("offset"); o != "" {
			if n, err := strconv.Atoi(o); err == nil && n >= 0 {
				offset = n
			}
		}

		var total int64
		if err := db.Model(&Attempt{}).Where("visitor_id = ?", uid).Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db"})
			return
		}

		var attempts []Attempt
		if err := db.Where("visitor_id = ?", uid).
			Order("submitted_at DESC").
			Limit(limit).Offset(offset).
			Find(&attempts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db"})
			return
		}

		items := make([]AttemptSummaryDTO, 0, len(attempts))
		for _, a := range attempts {
			items = append(items, attemptSummary(a))
		}
		c.JSON(http.StatusOK, gin.H{
			"total":  total,
			"limit":  limit,
			"offset": offset,
			"items":  items,
		})
	}
}

// ErrAttemptNotFound is returned when no stored attempt has the given id.
var ErrAttemptNotFound = errors.New("attempt not found")

func findAttempt(ctx context.Context, db *gorm.DB, id string) (Attempt, error) {
	var a Attempt
	if err := db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Attempt{}, ErrAttemptNotFound
		}
		return Attempt{}, fmt.Errorf("load attempt %s: %w", id, err)
	}
	return a, nil
}

func GetMyAttempt(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := currentVisitorID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no visitor"})
			return
		}

		a, err := findAttempt(c.Request.Context(), db, c.Param("id"))
		if err != nil {
			if errors.Is(err, ErrAttemptNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": ErrAttemptNotFound.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db"})
			return
		}
		if a.VisitorID == nil || *a.VisitorID != uid {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		analysis := []AnalysisItem{}
		if len(a.Analysis) > 0 {
			if err := json.Unmarshal(a.Analysis, &analysis); err != nil {
				log.Printf("attempt %s: decode analysis: %v", a.ID, err)
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"attempt":  attemptSummary(a),
			"analysis": analysis,
		})
	}
}
