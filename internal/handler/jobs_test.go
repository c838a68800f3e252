package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/exera-hr/jobdesk/backend/internal/domain"
)

// statusRequest builds a PATCH /status request with the role and job
// already resolved, the way the auth and jobCtx middlewares leave them.
func statusRequest(role string, job *domain.Job, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPatch, "/api/job-descriptions/1/status", strings.NewReader(body))
	ctx := context.WithValue(req.Context(), RoleCtxKey, role)
	ctx = context.WithValue(ctx, JobCtxKey, job)
	return req.WithContext(ctx)
}

// The test handler has no repository behind it, so any of these requests
// reaching the store would panic: passing also shows the job row is
// never written.

func TestUpdateJobStatusSameStatusIsNoOp(t *testing.T) {
	h := newTestHandler(t)

	job := &domain.Job{ID: 1, Status: domain.StatusApproved}
	rec := httptest.NewRecorder()
	h.UpdateJobStatus(rec, statusRequest("HR Manager", job, `{"status":"Approved"}`))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.StatusApproved, job.Status)
	assert.Contains(t, rec.Body.String(), "already in this status")
}

func TestUpdateJobStatusGatesEveryTarget(t *testing.T) {
	tests := []struct {
		name string
		role string
		job  *domain.Job
		body string
		want int
	}{
		{
			"self-loop still requires the edit capability",
			"Contractor",
			&domain.Job{ID: 1, Status: domain.StatusPendingForApproval},
			`{"status":"Pending for Approval"}`,
			http.StatusForbidden,
		},
		{
			"self-loop allowed with the edit capability",
			"HR Assistant",
			&domain.Job{ID: 1, Status: domain.StatusPendingForApproval},
			`{"status":"Pending for Approval"}`,
			http.StatusOK,
		},
		{
			"assistant cannot approve even as a no-op",
			"HR Assistant",
			&domain.Job{ID: 1, Status: domain.StatusApproved},
			`{"status":"Approved"}`,
			http.StatusForbidden,
		},
	}

	h := newTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.UpdateJobStatus(rec, statusRequest(tt.role, tt.job, tt.body))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestUpdateJobStatusRejectsBadTargets(t *testing.T) {
	h := newTestHandler(t)

	t.Run("unknown status value", func(t *testing.T) {
		job := &domain.Job{ID: 1, Status: domain.StatusPendingForApproval}
		rec := httptest.NewRecorder()
		h.UpdateJobStatus(rec, statusRequest("IT Admin", job, `{"status":"Draft"}`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("skipping a step", func(t *testing.T) {
		job := &domain.Job{ID: 1, Status: domain.StatusPendingForApproval}
		rec := httptest.NewRecorder()
		h.UpdateJobStatus(rec, statusRequest("IT Admin", job, `{"status":"Published"}`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, domain.StatusPendingForApproval, job.Status)
	})

	t.Run("approving with blank required fields", func(t *testing.T) {
		job := &domain.Job{ID: 1, Status: domain.StatusPendingForApproval, JobTitle: "Backend Engineer"}
		rec := httptest.NewRecorder()
		h.UpdateJobStatus(rec, statusRequest("HR Manager", job, `{"status":"Approved"}`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "missing required fields")
	})
}
