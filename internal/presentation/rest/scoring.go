package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/farmcred/scoring/internal/application/dto"
	"github.com/farmcred/scoring/internal/domain/model"
	"github.com/farmcred/scoring/pkg/auth"
)

const maxBodyBytes = 1 << 20

var (
	scoreRoles = []string{auth.RoleAdmin, auth.RoleLender, auth.RoleCooperative, auth.RoleFarmer}
	readRoles  = []string{auth.RoleAdmin, auth.RoleLender, auth.RoleCooperative}
)

type scoreFarmerExecutor interface {
	Execute(ctx context.Context, req dto.ScoreFarmerRequest) (dto.ScoreResponse, error)
}

type getAssessmentExecutor interface {
	Execute(ctx context.Context, req dto.GetAssessmentRequest) (dto.AssessmentResponse, error)
}

// ScoringHandler exposes scoring and assessment lookup over JSON/HTTP. Routes
// expect claims placed in the context by auth.HTTPMiddleware.
type ScoringHandler struct {
	scoreFarmer   scoreFarmerExecutor
	getAssessment getAssessmentExecutor
	logger        *slog.Logger
}

// NewScoringHandler creates the HTTP scoring handler.
func NewScoringHandler(scoreFarmer scoreFarmerExecutor, getAssessment getAssessmentExecutor, logger *slog.Logger) *ScoringHandler {
	return &ScoringHandler{scoreFarmer: scoreFarmer, getAssessment: getAssessment, logger: logger}
}

// RegisterRoutes attaches the API routes to mux.
func (h *ScoringHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/scores", h.score)
	mux.HandleFunc("GET /v1/assessments/{id}", h.assessment)
}

func (h *ScoringHandler) score(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.authorize(w, r, scoreRoles); !ok {
		return
	}

	var profile model.FarmerData
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&profile); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	result, err := h.scoreFarmer.Execute(r.Context(), dto.ScoreFarmerRequest{Profile: profile})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *ScoringHandler) assessment(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.authorize(w, r, readRoles)
	if !ok {
		return
	}
	if claims.TenantID == uuid.Nil {
		writeError(w, http.StatusForbidden, "token carries no tenant")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid assessment id")
		return
	}

	result, err := h.getAssessment.Execute(r.Context(), dto.GetAssessmentRequest{
		TenantID:     claims.TenantID,
		AssessmentID: id,
	})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *ScoringHandler) authorize(w http.ResponseWriter, r *http.Request, roles []string) (*auth.Claims, bool) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return nil, false
	}
	if !claims.HasAnyRole(roles...) {
		writeError(w, http.StatusForbidden, "insufficient permissions")
		return nil, false
	}
	return claims, true
}

func (h *ScoringHandler) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var invalid *model.InvalidInputError
	switch {
	case errors.As(err, &invalid):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":      model.ErrInvalidInput.Error(),
			"violations": invalid.Violations,
		})
	case errors.Is(err, model.ErrAssessmentNotFound):
		writeError(w, http.StatusNotFound, "assessment not found")
	default:
		h.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
