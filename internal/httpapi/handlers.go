package httpapi

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/markbook/internal/classify"
	"github.com/abhisek/markbook/internal/dataset"
	"github.com/abhisek/markbook/internal/stats"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type analyzeRequest struct {
	DatasetID           string   `json:"dataset_id" binding:"required"`
	IndividualThreshold *float64 `json:"individual_threshold"`
	OverallThreshold    *float64 `json:"overall_threshold"`
}

type predictRequest struct {
	DatasetID           string             `json:"dataset_id"`
	Marks               map[string]float64 `json:"marks" binding:"required"`
	IndividualThreshold *float64           `json:"individual_threshold"`
	OverallThreshold    *float64           `json:"overall_threshold"`
}

type thresholdsPayload struct {
	Individual float64 `json:"individual"`
	Overall    float64 `json:"overall"`
}

type rowPayload struct {
	Name              string             `json:"name,omitempty"`
	Marks             map[string]float64 `json:"marks"`
	Total             float64            `json:"total"`
	PassedAllSubjects bool               `json:"passed_all_subjects"`
	PassedOverall     bool               `json:"passed_overall"`
	FinalResult       classify.Outcome   `json:"final_result"`
}

type binPayload struct {
	Lo    float64 `json:"lo"`
	Hi    float64 `json:"hi"`
	Count int     `json:"count"`
}

// handleHealth handles GET /api/health.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"datasets": s.count(),
	})
}

// handleUploadDataset handles POST /api/datasets: a multipart upload of a
// CSV or Excel marks file. Identical content maps to the same dataset id.
func (s *Server) handleUploadDataset(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "missing 'file' in form data", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(c, http.StatusBadRequest, "could not read upload", err)
		return
	}

	var table *dataset.Table
	if dataset.IsExcelPath(header.Filename) || header.Header.Get("Content-Type") == xlsxContentType {
		table, err = s.cache.LoadExcel(data)
	} else {
		table, err = s.cache.Load(data)
	}
	if err != nil {
		log.Printf("upload %q rejected: %v", header.Filename, err)
		respondError(c, http.StatusBadRequest, "dataset malformed", err)
		return
	}

	entry := s.register(header.Filename, table)
	c.JSON(http.StatusCreated, gin.H{
		"id":       entry.ID,
		"columns":  table.Columns,
		"subjects": table.Subjects(),
		"students": table.Len(),
	})
}

// handleAnalyze handles POST /api/analyze: classify a registered dataset
// under the thresholds carried by the request.
func (s *Server) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	entry := s.lookup(req.DatasetID)
	if entry == nil {
		respondError(c, http.StatusNotFound, "dataset not found", nil)
		return
	}

	th := requestThresholds(req.IndividualThreshold, req.OverallThreshold)
	result, err := classify.Classify(entry.Table, th)
	if err != nil {
		if errors.Is(err, classify.ErrNoSubjects) {
			respondError(c, http.StatusUnprocessableEntity, "dataset has no subject columns", err)
			return
		}
		respondError(c, http.StatusInternalServerError, "classification failed", err)
		return
	}

	rows := make([]rowPayload, len(result.Rows))
	for i, r := range result.Rows {
		rows[i] = rowPayload{
			Name:              r.Name,
			Marks:             r.Marks,
			Total:             r.Total,
			PassedAllSubjects: r.PassedAllSubjects,
			PassedOverall:     r.PassedOverall,
			FinalResult:       r.FinalResult,
		}
	}

	bins := stats.Histogram(result.Totals(), stats.DefaultBins)
	histogram := make([]binPayload, len(bins))
	for i, b := range bins {
		histogram[i] = binPayload{Lo: b.Lo, Hi: b.Hi, Count: b.Count}
	}

	pass, fail := result.PassCount()
	c.JSON(http.StatusOK, gin.H{
		"dataset_id": entry.ID,
		"name":       entry.Name,
		"thresholds": thresholdsPayload{Individual: th.Individual, Overall: th.Overall},
		"subjects":   result.Subjects,
		"rows":       rows,
		"histogram":  histogram,
		"pass_count": pass,
		"fail_count": fail,
	})
}

// handlePredict handles POST /api/predict: classify one hypothetical set
// of marks. With a dataset_id the marks are judged against that dataset's
// subjects, absent subjects counting as zero.
func (s *Server) handlePredict(c *gin.Context) {
	var req predictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	for subject, mark := range req.Marks {
		if mark < 0 {
			respondError(c, http.StatusBadRequest, "marks must be non-negative: "+subject, nil)
			return
		}
	}

	marks := req.Marks
	if req.DatasetID != "" {
		entry := s.lookup(req.DatasetID)
		if entry == nil {
			respondError(c, http.StatusNotFound, "dataset not found", nil)
			return
		}

		subjects := entry.Table.Subjects()
		known := make(map[string]bool, len(subjects))
		for _, sub := range subjects {
			known[sub] = true
		}
		for sub := range req.Marks {
			if !known[sub] {
				respondError(c, http.StatusBadRequest, "unknown subject: "+sub, nil)
				return
			}
		}

		marks = make(map[string]float64, len(subjects))
		for _, sub := range subjects {
			marks[sub] = req.Marks[sub]
		}
	}

	th := requestThresholds(req.IndividualThreshold, req.OverallThreshold)
	r := classify.ClassifySingle(marks, th)

	c.JSON(http.StatusOK, gin.H{
		"thresholds":          thresholdsPayload{Individual: th.Individual, Overall: th.Overall},
		"total":               r.Total,
		"passed_all_subjects": r.PassedAllSubjects,
		"passed_overall":      r.PassedOverall,
		"final_result":        r.FinalResult,
	})
}

// requestThresholds merges request values over the defaults.
func requestThresholds(individual, overall *float64) classify.Thresholds {
	th := classify.DefaultThresholds()
	if individual != nil {
		th.Individual = *individual
	}
	if overall != nil {
		th.Overall = *overall
	}
	return th
}

func respondError(c *gin.Context, status int, msg string, err error) {
	body := gin.H{"error": msg}
	if err != nil {
		body["details"] = err.Error()
	}
	c.JSON(status, body)
}
