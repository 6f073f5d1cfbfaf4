package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/freundlier/intake/pkg/domain/model"
	"github.com/freundlier/intake/pkg/domain/types"
	"github.com/freundlier/intake/pkg/usecase"
	"github.com/freundlier/intake/pkg/utils/errutil"
	"github.com/freundlier/intake/pkg/utils/logging"
	"github.com/freundlier/intake/pkg/utils/safe"
	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, data)
}

// respondError maps use case failures to HTTP statuses. Internal details
// never reach the caller: unexpected errors are logged and replaced by a
// generic message.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	switch {
	case errors.Is(err, usecase.ErrSessionLocked):
		respondJSON(w, r, http.StatusForbidden, errorResponse{Error: "Chat locked. Max turns reached."})
	case errors.Is(err, usecase.ErrNoTranscript):
		respondJSON(w, r, http.StatusBadRequest, errorResponse{Error: "No chat history"})
	case errors.Is(err, usecase.ErrInvalidInput):
		respondJSON(w, r, http.StatusBadRequest, errorResponse{Error: "Invalid input provided."})
	case errors.Is(err, usecase.ErrReportNotFound), errors.Is(err, usecase.ErrNoteNotFound):
		respondJSON(w, r, http.StatusNotFound, errorResponse{Error: "Not found"})
	default:
		logger := logging.From(ctx)
		var ge *goerr.Error
		if errors.As(err, &ge) {
			logger.Error("request failed", "error", err.Error(), "values", ge.Values(), "stack", ge.Stacks())
		} else {
			logger.Error("request failed", "error", err.Error())
		}
		respondJSON(w, r, http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
	}
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message      string    `json:"message"`
		PatientID    string    `json:"patientId"`
		SessionStart time.Time `json:"sessionStart"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, r, http.StatusBadRequest, errorResponse{Error: "Invalid input provided."})
		return
	}

	result, err := s.uc.HandleChatMessage(r.Context(), types.PatientID(req.PatientID), req.Message, req.SessionStart)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, struct {
		Response    string `json:"response"`
		IsEmergency bool   `json:"isEmergency"`
	}{
		Response:    result.Response,
		IsEmergency: result.IsEmergency,
	})
}

type reportResponse struct {
	RiskLevel string    `json:"riskLevel"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"createdAt"`
}

func toReportResponse(report *model.Report) reportResponse {
	return reportResponse{
		RiskLevel: report.RiskLevel.String(),
		Summary:   report.Summary,
		CreatedAt: report.CreatedAt,
	}
}

func (s *Server) handleTriage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PatientID string `json:"patientId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, r, http.StatusBadRequest, errorResponse{Error: "Invalid input provided."})
		return
	}

	report, err := s.uc.SynthesizeTriage(r.Context(), types.PatientID(req.PatientID))
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, struct {
		Report reportResponse `json:"report"`
	}{
		Report: toReportResponse(report),
	})
}

func (s *Server) handleUpsertNote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PatientID string `json:"patientId"`
		Note      string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, r, http.StatusBadRequest, errorResponse{Error: "Invalid input provided."})
		return
	}

	if err := s.uc.UpsertNote(r.Context(), types.PatientID(req.PatientID), req.Note); err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, struct {
		Success bool `json:"success"`
	}{Success: true})
}

func (s *Server) handleGetNote(w http.ResponseWriter, r *http.Request) {
	patientID := types.PatientID(chi.URLParam(r, "patientID"))

	note, err := s.uc.GetNote(r.Context(), patientID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, struct {
		Note      string    `json:"note"`
		UpdatedAt time.Time `json:"updatedAt"`
	}{
		Note:      note.Note,
		UpdatedAt: note.UpdatedAt,
	})
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, struct {
		Schedule string `json:"schedule"`
	}{Schedule: usecase.ClinicSchedule})
}

func (s *Server) handleListAlerts(w http.ResponseWriter, r *http.Request) {
	patientID := types.PatientID(chi.URLParam(r, "patientID"))

	alerts, err := s.uc.ListAlerts(r.Context(), patientID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	type alertResponse struct {
		ID        string    `json:"id"`
		Severity  string    `json:"severity"`
		CreatedAt time.Time `json:"createdAt"`
	}
	resp := struct {
		Alerts []alertResponse `json:"alerts"`
	}{
		Alerts: make([]alertResponse, len(alerts)),
	}
	for i, alert := range alerts {
		resp.Alerts[i] = alertResponse{
			ID:        string(alert.ID),
			Severity:  alert.Severity.String(),
			CreatedAt: alert.CreatedAt,
		}
	}

	respondJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	patientID := types.PatientID(chi.URLParam(r, "patientID"))

	report, err := s.uc.GetReport(r.Context(), patientID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, struct {
		Report reportResponse `json:"report"`
	}{
		Report: toReportResponse(report),
	})
}
