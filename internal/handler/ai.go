package handler

import (
	"net/http"
	"strings"

	"github.com/exera-hr/jobdesk/backend/internal/ai"
)

func (h *Handler) AutoComplete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		JobTitle string `json:"jobTitle" validate:"required"`
	}
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if strings.TrimSpace(req.JobTitle) == "" {
		h.errorResponse(w, r, http.StatusBadRequest, "Job title is required")
		return
	}

	if !h.aiClient.Enabled() {
		h.errorResponse(w, r, http.StatusInternalServerError, "AI service is not configured")
		return
	}

	result, err := h.aiClient.AutoComplete(r.Context(), req.JobTitle)
	if err != nil {
		h.logInternalServerError(r, err)
		h.errorResponse(w, r, http.StatusInternalServerError, "Failed to generate job description")
		return
	}

	h.successResponse(w, r, "Job description generated", result)
}

// AnalyzeBias never fails outright: when the AI service is unreachable
// or unconfigured the keyword-based local analyzer answers instead,
// with a note explaining the downgrade.
func (h *Handler) AnalyzeBias(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ContextFields   map[string]string `json:"contextFields"`
		FieldsToAnalyze map[string]any    `json:"fieldsToAnalyze"`
	}
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if len(req.FieldsToAnalyze) == 0 {
		h.errorResponse(w, r, http.StatusBadRequest, "No fields to analyze")
		return
	}

	fields := ai.NormalizeFields(req.FieldsToAnalyze)
	if len(fields) == 0 {
		h.errorResponse(w, r, http.StatusBadRequest, "No fields to analyze")
		return
	}

	if !h.aiClient.Enabled() {
		h.successResponse(w, r, "Bias analysis completed", map[string]any{
			"recommendations": ai.AnalyzeBiasLocally(fields),
			"note":            "Analysis performed locally due to missing API key",
		})
		return
	}

	recommendations, err := h.aiClient.AnalyzeBias(r.Context(), req.ContextFields, fields)
	if err != nil {
		h.logInternalServerError(r, err)
		h.successResponse(w, r, "Bias analysis completed", map[string]any{
			"recommendations": ai.AnalyzeBiasLocally(fields),
			"note":            "Analysis performed locally due to AI service connectivity issues",
		})
		return
	}

	h.successResponse(w, r, "Bias analysis completed", map[string]any{
		"recommendations": recommendations,
	})
}
