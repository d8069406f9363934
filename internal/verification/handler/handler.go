// Package handler exposes verification and rule-management endpoints.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vouch/internal/verification/models"
	"vouch/pkg/platform/httputil"
)

// Service defines the verification operations the handler needs.
type Service interface {
	Evaluate(ctx context.Context, vc *models.VerificationContext) (models.Evaluation, error)
	LoadRules(list []models.Rule, thresholds models.Thresholds) error
	AddTemporaryRule(rule models.Rule) error
	RemoveTemporaryRule(id string)
	RuleStats() models.RuleStats
}

// Handler wires verification endpoints to the verification service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a verification handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts verification endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/verify", h.HandleVerify)
	r.Post("/rules", h.HandleLoadRules)
	r.Post("/rules/temporary", h.HandleAddTemporaryRule)
	r.Delete("/rules/temporary/{id}", h.HandleRemoveTemporaryRule)
	r.Get("/rules/stats", h.HandleRuleStats)
}

// HandleVerify handles POST /verify requests.
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.Decode[*VerifyRequest](w, r, h.logger)
	if !ok {
		return
	}

	eval, err := h.service.Evaluate(ctx, req.ToContext())
	if err != nil {
		h.logger.ErrorContext(ctx, "verification failed",
			"session_id", req.SessionID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromEvaluation(eval))
}

// HandleLoadRules handles POST /rules requests.
func (h *Handler) HandleLoadRules(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.Decode[*LoadRulesRequest](w, r, h.logger)
	if !ok {
		return
	}

	if err := h.service.LoadRules(req.Rules, req.Thresholds); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, RuleStatsResponse{Stats: h.service.RuleStats()})
}

// HandleAddTemporaryRule handles POST /rules/temporary requests.
func (h *Handler) HandleAddTemporaryRule(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.Decode[*TemporaryRuleRequest](w, r, h.logger)
	if !ok {
		return
	}

	if err := h.service.AddTemporaryRule(req.ToRule()); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, RuleStatsResponse{Stats: h.service.RuleStats()})
}

// HandleRemoveTemporaryRule handles DELETE /rules/temporary/{id} requests.
func (h *Handler) HandleRemoveTemporaryRule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.service.RemoveTemporaryRule(id)
	w.WriteHeader(http.StatusNoContent)
}

// HandleRuleStats handles GET /rules/stats requests.
func (h *Handler) HandleRuleStats(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, RuleStatsResponse{Stats: h.service.RuleStats()})
}
