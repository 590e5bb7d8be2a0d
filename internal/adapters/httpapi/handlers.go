package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"studyspace/internal/blob"
	"studyspace/internal/catalog"
	"studyspace/internal/core"
	"studyspace/internal/scoring"
	"studyspace/pkg/domain"
)

const maxBodyBytes = 1 << 20

type locationView struct {
	catalog.Location
	MetricLevels map[string]catalog.MetricLevel `json:"metricLevels"`
}

func viewOf(loc catalog.Location) locationView {
	return locationView{Location: loc, MetricLevels: loc.MetricLevels()}
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "locations": h.svc.Catalog().Len()})
}

type loginRequest struct {
	Role     core.Role `json:"role"`
	Username string    `json:"username"`
	Password string    `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decode(w, r, &req) {
		return
	}
	session, err := h.svc.Login(r.Context(), req.Role, req.Username, req.Password)
	if err != nil {
		h.fail(w, r, err, "unable to start session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"session": session})
}

func (h *Handler) listLocations(w http.ResponseWriter, _ *http.Request) {
	locations := h.svc.Locations()
	views := make([]locationView, 0, len(locations))
	for _, loc := range locations {
		views = append(views, viewOf(loc))
	}
	writeJSON(w, http.StatusOK, map[string]any{"locations": views})
}

func (h *Handler) getLocation(w http.ResponseWriter, r *http.Request) {
	loc, err := h.svc.Location(mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, err, "unable to load location")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"location": viewOf(loc)})
}

func (h *Handler) locationAnalysis(w http.ResponseWriter, r *http.Request) {
	analysis, err := h.svc.AnalyzeLocation(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, err, "unable to compute analysis")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"analysis": analysis})
}

func (h *Handler) listAnalyses(w http.ResponseWriter, r *http.Request) {
	analyses, err := h.svc.AnalyzeAll(r.Context())
	if err != nil {
		h.fail(w, r, err, "unable to compute analysis")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"analyses": analyses})
}

func (h *Handler) analyzeReading(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unable to read request body")
		return
	}
	reading, err := scoring.ParseReading(body)
	if err != nil {
		h.fail(w, r, err, "unable to compute analysis")
		return
	}
	analysis, err := h.svc.Analyze(r.Context(), reading)
	if err != nil {
		h.fail(w, r, err, "unable to compute analysis")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"analysis": analysis})
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	history, err := h.svc.History(r.Context())
	if err != nil {
		h.fail(w, r, err, "unable to compute analysis")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": history})
}

func (h *Handler) recommendations(w http.ResponseWriter, r *http.Request) {
	recs, err := h.svc.AdminRecommendations(r.Context())
	if err != nil {
		h.fail(w, r, err, "unable to compute recommendations")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"recommendations": recs})
}

func (h *Handler) listFeedback(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.FeedbackHistory(r.Context(), strings.TrimSpace(r.URL.Query().Get("studentId")))
	if err != nil {
		h.fail(w, r, err, "unable to load feedback")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"feedback": nonNil(entries)})
}

func (h *Handler) locationFeedback(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.LocationFeedback(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, err, "unable to load feedback")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"feedback": nonNil(entries)})
}

type feedbackRequest struct {
	LocationID  string `json:"locationId"`
	StudentID   string `json:"studentId"`
	Section     string `json:"section"`
	StudentName string `json:"studentName"`
	Rating      int    `json:"rating"`
	Comment     string `json:"comment"`
}

func (h *Handler) submitFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if !h.decode(w, r, &req) {
		return
	}
	saved, err := h.svc.SubmitFeedback(r.Context(), domain.Feedback{
		LocationID:  req.LocationID,
		StudentID:   req.StudentID,
		Section:     req.Section,
		StudentName: req.StudentName,
		Rating:      req.Rating,
		Comment:     req.Comment,
	})
	if err != nil {
		h.fail(w, r, err, "unable to record feedback")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"feedback": saved})
}

func (h *Handler) clearFeedback(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ClearFeedback(r.Context()); err != nil {
		h.fail(w, r, err, "unable to clear feedback")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) feedbackSummary(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.svc.FeedbackSummary(r.Context())
	if err != nil {
		h.fail(w, r, err, "unable to summarise feedback")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ratings": nonNil(ratings)})
}

func (h *Handler) exportReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.ExportReport(r.Context())
	if err != nil {
		h.fail(w, r, err, "unable to export report")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"report": report})
}

func (h *Handler) listReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.svc.Reports(r.Context())
	if err != nil {
		h.fail(w, r, err, "unable to list reports")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reports": nonNil(reports)})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return false
	}
	return true
}

// fail maps service errors onto status codes. Client errors carry the error
// text; server errors carry only fallback.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		if status == http.StatusServiceUnavailable {
			writeError(w, status, err.Error())
			return
		}
		writeError(w, status, fallback)
		return
	}
	writeError(w, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case core.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, blob.ErrExists):
		return http.StatusConflict
	case errors.Is(err, core.ErrReportsDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
