package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/yandex-cloud-examples/yc-tf-cost-estimation/core/plan"
)

// handleEstimate handles POST /estimate. The body is a terraform show -json
// plan; ?full=true adds usage rows.
func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	detailed := false
	if raw := r.URL.Query().Get("full"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			s.writeError(w, CodeInvalidQuery, "full must be a boolean", http.StatusBadRequest)
			return
		}
		detailed = v
	}

	doc, err := plan.Decode(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			s.writeError(w, CodePlanTooLarge, err.Error(), http.StatusRequestEntityTooLarge)
			return
		}
		s.writeError(w, CodeInvalidJSON, err.Error(), http.StatusBadRequest)
		return
	}

	report, err := s.estimator.EstimatePlan(ctx, doc, detailed)
	if err != nil {
		s.logger.Error("estimate failed",
			zap.String("request_id", RequestID(ctx)),
			zap.Error(err))
		s.writeError(w, CodeEstimateFailed, err.Error(), http.StatusInternalServerError)
		return
	}

	s.metrics.estimated(report.Comparison != nil)
	s.writeJSON(w, report, http.StatusOK)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, HealthResponse{
		Status:  "healthy",
		Version: s.version,
		Time:    s.now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, VersionResponse{
		Version:    s.version,
		Engine:     "yc-tf-cost",
		APIVersion: "v1",
	}, http.StatusOK)
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("write response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, code, message string, status int) {
	s.writeJSON(w, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}, status)
}
