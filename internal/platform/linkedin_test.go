package platform

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exera-hr/jobdesk/backend/internal/domain"
)

func TestLinkedInPost(t *testing.T) {
	var received linkedInJob
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/jobs", r.URL.Path)
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		assert.Equal(t, "2.0.0", r.Header.Get("X-Restli-Protocol-Version"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(map[string]string{"id": "li-42"})
	}))
	defer srv.Close()

	poster := NewLinkedInPoster(srv.URL, "token-123", "9876", time.Second)
	job := &domain.Job{
		ID:              42,
		JobTitle:        "Backend Engineer",
		JobType:         "Contract",
		Location:        "Austin, TX",
		WorkEnvironment: "Remote-first team",
	}

	postID, err := poster.Post(context.Background(), job, "formatted copy")
	require.NoError(t, err)
	assert.Equal(t, "li-42", postID)

	assert.Equal(t, "urn:li:organization:9876", received.Author)
	assert.Equal(t, "Backend Engineer", received.Title)
	assert.Equal(t, "formatted copy", received.Description.Text)
	assert.Equal(t, "CONTRACT", received.EmploymentStatus)
	assert.True(t, received.WorkRemoteAllowed)
	assert.Equal(t, "https://exera.com/careers/42", received.ApplyMethod.ApplyURL)
}

func TestLinkedInPostServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "invalid token"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	poster := NewLinkedInPoster(srv.URL, "bad-token", "9876", time.Second)
	_, err := poster.Post(context.Background(), &domain.Job{JobTitle: "Backend Engineer"}, "")
	assert.Error(t, err)
}

func TestLinkedInPostUnconfigured(t *testing.T) {
	poster := NewLinkedInPoster("https://api.linkedin.com/v2", "", "", time.Second)
	_, err := poster.Post(context.Background(), &domain.Job{JobTitle: "Backend Engineer"}, "")
	assert.Error(t, err)
}

func TestIndeedPostUnconfigured(t *testing.T) {
	poster := NewIndeedPoster("https://apis.indeed.com/v2", "", time.Second)
	_, err := poster.Post(context.Background(), &domain.Job{JobTitle: "Backend Engineer"}, "")
	assert.Error(t, err)
}
