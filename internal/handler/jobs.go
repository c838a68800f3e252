package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/exera-hr/jobdesk/backend/internal/domain"
	"github.com/exera-hr/jobdesk/backend/internal/repository"
)

func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	job := &domain.Job{}
	if err := h.readJSON(r, job); err != nil {
		h.badRequest(w, r, err)
		return
	}

	job.NormalizeForCreate()

	if missing := job.MissingRequiredFields(); len(missing) > 0 {
		h.errorResponse(w, r, http.StatusBadRequest, "Missing required fields: "+strings.Join(missing, ", "))
		return
	}

	if err := h.repository.CreateJob(job); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.createdResponse(w, r, "Job description created successfully", job)
}

func (h *Handler) GetAllJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.repository.GetAllJobs()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Job descriptions retrieved", jobs)
}

func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	job := r.Context().Value(JobCtxKey).(*domain.Job)
	h.successResponse(w, r, "Job description retrieved", job)
}

func (h *Handler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	job := r.Context().Value(JobCtxKey).(*domain.Job)

	// Content edits are only legal while the job is still being drafted
	// or after it went live. Approved and Formatted are review states.
	if job.Status != domain.StatusPendingForApproval && job.Status != domain.StatusPublished {
		h.errorResponse(w, r, http.StatusBadRequest, fmt.Sprintf("Job in status %q cannot be edited", job.Status))
		return
	}

	patch := &domain.JobPatch{}
	if err := h.readJSON(r, patch); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if emptied := job.EmptiedFields(patch); len(emptied) > 0 {
		h.writeJSON(w, r, http.StatusBadRequest, Response{
			Success: false,
			Message: "The following fields cannot be emptied once populated: " + strings.Join(emptied, ", "),
			Data:    map[string]any{"emptiedFields": emptied},
		})
		return
	}

	job.Apply(patch)

	if err := h.repository.UpdateJob(job); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "Job description not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "Job description updated successfully", job)
}

type searchJobsRequest struct {
	JobTitle   string `json:"jobTitle"`
	Department string `json:"department"`
	Location   string `json:"location"`
	JobType    string `json:"jobType"`
	Status     string `json:"status"`
}

func (req *searchJobsRequest) filter() repository.JobSearchFilter {
	return repository.JobSearchFilter{
		JobTitle:   strings.TrimSpace(req.JobTitle),
		Department: strings.TrimSpace(req.Department),
		Location:   strings.TrimSpace(req.Location),
		JobType:    strings.TrimSpace(req.JobType),
		Status:     strings.TrimSpace(req.Status),
	}
}

func (h *Handler) SearchJobs(w http.ResponseWriter, r *http.Request) {
	var req searchJobsRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	jobs, err := h.repository.SearchJobs(req.filter())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Search completed", jobs)
}

func (h *Handler) SearchJobsInProcess(w http.ResponseWriter, r *http.Request) {
	var req struct {
		searchJobsRequest
		Page  int `json:"page"`
		Limit int `json:"limit"`
	}
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 10
	}

	jobs, total, err := h.repository.SearchJobsInProcess(req.filter(), req.Page, req.Limit)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	totalPages := (total + int64(req.Limit) - 1) / int64(req.Limit)
	h.successResponse(w, r, "Search completed", map[string]any{
		"jobs": jobs,
		"pagination": map[string]any{
			"total":      total,
			"page":       req.Page,
			"limit":      req.Limit,
			"totalPages": totalPages,
			"hasMore":    int64(req.Page) < totalPages,
		},
	})
}

// transitionJob moves a job one step forward in its lifecycle. It
// enforces the capability bound to the target status, rejects skips,
// and treats a transition to the current status as a no-op.
func (h *Handler) transitionJob(w http.ResponseWriter, r *http.Request, job *domain.Job, target domain.JobStatus, approvalComments, formattedContent string) bool {
	if !target.IsValid() {
		h.errorResponse(w, r, http.StatusBadRequest, "Invalid status value")
		return false
	}

	if capability, ok := domain.TransitionCapability(target); ok {
		roleCtx := r.Context().Value(RoleCtxKey).(string)
		if !domain.HasPermission(domain.Role(roleCtx), capability) {
			h.forbidden(w, r, "You don't have permission to perform this action")
			return false
		}
	}

	if target == job.Status {
		h.successResponse(w, r, "Job is already in this status", job)
		return false
	}

	if !domain.CanTransition(job.Status, target) {
		h.errorResponse(w, r, http.StatusBadRequest, fmt.Sprintf("Cannot transition job from %q to %q", job.Status, target))
		return false
	}

	if target == domain.StatusApproved {
		if missing := job.MissingRequiredFields(); len(missing) > 0 {
			h.errorResponse(w, r, http.StatusBadRequest, "Cannot approve job with missing required fields: "+strings.Join(missing, ", "))
			return false
		}
	}

	job.Status = target
	if approvalComments != "" {
		job.ApprovalComments = approvalComments
	}
	if formattedContent != "" {
		job.FormattedContent = formattedContent
	}

	if err := h.repository.UpdateJob(job); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "Job description not found")
		default:
			h.internalServerError(w, r, err)
		}
		return false
	}

	if target == domain.StatusApproved && strings.Contains(job.ContactInformation, "@") {
		h.publishNotification(r, domain.NotificationMessage{
			Type: "job_approved",
			To:   job.ContactInformation,
			Data: domain.JobApprovedData{
				JobTitle:         job.JobTitle,
				Department:       job.Department,
				ApprovalComments: job.ApprovalComments,
			},
		})
	}

	return true
}

func (h *Handler) UpdateJobStatus(w http.ResponseWriter, r *http.Request) {
	job := r.Context().Value(JobCtxKey).(*domain.Job)

	var req struct {
		Status           string `json:"status" validate:"required"`
		ApprovalComments string `json:"approvalComments"`
		FormattedContent string `json:"formattedContent"`
	}
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if !h.transitionJob(w, r, job, domain.JobStatus(req.Status), req.ApprovalComments, req.FormattedContent) {
		return
	}

	h.successResponse(w, r, "Job status updated successfully", job)
}

func (h *Handler) ApproveJob(w http.ResponseWriter, r *http.Request) {
	job := r.Context().Value(JobCtxKey).(*domain.Job)

	var req struct {
		ApprovalComments string `json:"approvalComments"`
	}
	if err := h.readJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.badRequest(w, r, err)
		return
	}

	if !h.transitionJob(w, r, job, domain.StatusApproved, req.ApprovalComments, "") {
		return
	}

	h.successResponse(w, r, "Job description approved", job)
}

func (h *Handler) FormatJob(w http.ResponseWriter, r *http.Request) {
	job := r.Context().Value(JobCtxKey).(*domain.Job)

	var req struct {
		FormattedContent string `json:"formattedContent" validate:"required"`
	}
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if !h.transitionJob(w, r, job, domain.StatusFormatted, "", req.FormattedContent) {
		return
	}

	h.successResponse(w, r, "Job description formatted", job)
}

func (h *Handler) PublishJob(w http.ResponseWriter, r *http.Request) {
	job := r.Context().Value(JobCtxKey).(*domain.Job)

	var req struct {
		Platforms        []string `json:"platforms" validate:"required,min=1"`
		FormattedContent string   `json:"formattedContent"`
	}
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if job.Status != domain.StatusFormatted {
		h.errorResponse(w, r, http.StatusBadRequest, fmt.Sprintf("Cannot transition job from %q to %q", job.Status, domain.StatusPublished))
		return
	}

	content := req.FormattedContent
	if content == "" {
		content = job.FormattedContent
	}

	// External boards are best-effort. The job becomes Published as soon
	// as the local update sticks, whatever the boards said.
	results := h.publisher.Publish(r.Context(), job, content, req.Platforms)

	job.Status = domain.StatusPublished
	if req.FormattedContent != "" {
		job.FormattedContent = req.FormattedContent
	}

	if err := h.repository.UpdateJob(job); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "Job description not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	succeeded := make([]string, 0, len(results))
	for _, result := range results {
		if result.Success {
			succeeded = append(succeeded, result.Platform)
		}
	}
	if strings.Contains(job.ContactInformation, "@") {
		h.publishNotification(r, domain.NotificationMessage{
			Type: "job_published",
			To:   job.ContactInformation,
			Data: domain.JobPublishedData{
				JobTitle:  job.JobTitle,
				Platforms: succeeded,
			},
		})
	}

	h.successResponse(w, r, "Job description published", map[string]any{
		"job":             job,
		"platformResults": results,
	})
}
