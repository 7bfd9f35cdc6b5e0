package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/partbench/dimstation/internal/capture"
)

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// captureRequest is the intake payload posted by the measurement station.
type captureRequest struct {
	PartNumber string  `json:"partNumber"`
	Sequence   int     `json:"sequence"`
	LengthIn   float64 `json:"lengthIn"`
	DepthIn    float64 `json:"depthIn"`
	HeightIn   float64 `json:"heightIn"`
	WeightLb   float64 `json:"weightLb"`
	CapturedAt string  `json:"capturedAt"`
}

func (req *captureRequest) validate() error {
	if strings.TrimSpace(req.PartNumber) == "" {
		return fmt.Errorf("partNumber must not be blank")
	}
	if req.Sequence < 0 {
		return fmt.Errorf("sequence must not be negative")
	}
	for name, v := range map[string]float64{
		"lengthIn": req.LengthIn,
		"depthIn":  req.DepthIn,
		"heightIn": req.HeightIn,
		"weightLb": req.WeightLb,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%s must be a non-negative finite number", name)
		}
	}
	return nil
}

// handleAddCapture stores a new measurement posted by the station.
func (s *Server) handleAddCapture(w http.ResponseWriter, r *http.Request) {
	var req captureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, err, http.StatusBadRequest, "CAPTURE_BAD_JSON", "request body is not valid JSON")
		return
	}
	if err := req.validate(); err != nil {
		respondError(w, r, err, http.StatusUnprocessableEntity, "CAPTURE_INVALID", err.Error())
		return
	}

	c, err := s.service.AddCapture(r.Context(), capture.Capture{
		PartNumber: req.PartNumber,
		Sequence:   req.Sequence,
		LengthIn:   req.LengthIn,
		DepthIn:    req.DepthIn,
		HeightIn:   req.HeightIn,
		WeightLb:   req.WeightLb,
		CapturedAt: req.CapturedAt,
	})
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError, "CAPTURE_STORE_FAILED", "failed to store capture")
		return
	}

	respondJSON(w, http.StatusCreated, c)
}

// handleListCaptures returns all stored captures in acquisition order.
func (s *Server) handleListCaptures(w http.ResponseWriter, r *http.Request) {
	captures, err := s.service.Captures(r.Context())
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError, "CAPTURE_LIST_FAILED", "failed to list captures")
		return
	}
	respondJSON(w, http.StatusOK, captures)
}

// handleDeleteCaptures removes all captures for a part number, matched
// case-insensitively.
func (s *Server) handleDeleteCaptures(w http.ResponseWriter, r *http.Request) {
	partNumber := chi.URLParam(r, "partNumber")
	if strings.TrimSpace(partNumber) == "" {
		respondError(w, r, fmt.Errorf("blank part number"), http.StatusBadRequest, "CAPTURE_BAD_PART", "part number must not be blank")
		return
	}

	deleted, err := s.service.DeleteCapturesForPart(r.Context(), partNumber)
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError, "CAPTURE_DELETE_FAILED", "failed to delete captures")
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}

// handleRunFeed triggers one feed file write and returns the run record.
func (s *Server) handleRunFeed(w http.ResponseWriter, r *http.Request) {
	run, err := s.service.RunFeed(r.Context())
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError, "FEED_RUN_FAILED", "feed run failed")
		return
	}
	respondJSON(w, http.StatusOK, run)
}

// handleDownloadFeed builds a feed from the current captures and returns it
// as a CSV attachment, without touching the output directory or run history.
func (s *Server) handleDownloadFeed(w http.ResponseWriter, r *http.Request) {
	// Buffer the feed so a mid-export failure can still produce an error
	// status instead of a truncated download.
	var buf bytes.Buffer
	if _, err := s.service.WriteFeed(r.Context(), &buf); err != nil {
		respondError(w, r, err, http.StatusInternalServerError, "FEED_BUILD_FAILED", "failed to build feed")
		return
	}

	fileName := fmt.Sprintf("feed_%s.csv", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+fileName+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

// handleListFeedRuns returns recent feed runs, newest first. The limit query
// parameter caps the result (default 50).
func (s *Server) handleListFeedRuns(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondError(w, r, fmt.Errorf("limit=%q", raw), http.StatusBadRequest, "FEED_RUNS_BAD_LIMIT", "limit must be a positive integer")
			return
		}
		limit = n
	}

	runs, err := s.service.FeedRuns(r.Context(), limit)
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError, "FEED_RUNS_LIST_FAILED", "failed to list feed runs")
		return
	}
	respondJSON(w, http.StatusOK, runs)
}
