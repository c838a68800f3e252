package platform

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exera-hr/jobdesk/backend/internal/domain"
)

type fakePoster struct {
	name   string
	postID string
	err    error
	calls  int
}

func (f *fakePoster) Name() string { return f.name }

func (f *fakePoster) Post(ctx context.Context, job *domain.Job, formattedContent string) (string, error) {
	f.calls++
	return f.postID, f.err
}

func TestPublisherSupports(t *testing.T) {
	publisher := NewPublisher(&fakePoster{name: "linkedin"})
	assert.True(t, publisher.Supports("linkedin"))
	assert.False(t, publisher.Supports("indeed"))
}

func TestPublish(t *testing.T) {
	linkedin := &fakePoster{name: "linkedin", postID: "li-123"}
	indeed := &fakePoster{name: "indeed", err: errors.New("connection refused")}
	publisher := NewPublisher(linkedin, indeed)

	job := &domain.Job{ID: 7, JobTitle: "Backend Engineer"}
	results := publisher.Publish(context.Background(), job, "content", []string{"linkedin", "indeed", "glassdoor"})

	require.Len(t, results, 3)

	assert.Equal(t, "linkedin", results[0].Platform)
	assert.True(t, results[0].Success)
	assert.Equal(t, "li-123", results[0].PostID)
	assert.NotEmpty(t, results[0].RequestID)

	assert.Equal(t, "indeed", results[1].Platform)
	assert.False(t, results[1].Success)
	assert.Equal(t, "connection refused", results[1].Error)

	assert.Equal(t, "glassdoor", results[2].Platform)
	assert.False(t, results[2].Success)
	assert.Equal(t, "unsupported platform", results[2].Error)

	assert.Equal(t, 1, linkedin.calls)
	assert.Equal(t, 1, indeed.calls)
}

func TestPublishFailureDoesNotStopOthers(t *testing.T) {
	first := &fakePoster{name: "linkedin", err: errors.New("boom")}
	second := &fakePoster{name: "indeed", postID: "in-9"}
	publisher := NewPublisher(first, second)

	results := publisher.Publish(context.Background(), &domain.Job{ID: 1}, "", []string{"linkedin", "indeed"})

	require.Len(t, results, 2)
	assert.False(t, results[0].Success)
	assert.True(t, results[1].Success)
	assert.Equal(t, 1, second.calls)
}

func TestBuildDescription(t *testing.T) {
	job := &domain.Job{
		AboutCompany:        "About us.",
		PositionSummary:     "Build things.",
		KeyResponsibilities: []string{"Ship features", "Review code"},
		RequiredSkills:      []string{"Go"},
	}

	t.Run("formatted content wins", func(t *testing.T) {
		assert.Equal(t, "final copy", buildDescription(job, "final copy"))
	})

	t.Run("sections assembled from fields", func(t *testing.T) {
		description := buildDescription(job, "   ")
		assert.Contains(t, description, "# About Us\nAbout us.")
		assert.Contains(t, description, "# Position Summary\nBuild things.")
		assert.Contains(t, description, "- Ship features\n- Review code")
		assert.Contains(t, description, "# Required Skills\n- Go")
		assert.NotContains(t, description, "# Preferred Skills")
	})
}

func TestMapJobType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Full-time", "FULL_TIME"},
		{"Part-time", "PART_TIME"},
		{"part time", "PART_TIME"},
		{"Contract", "CONTRACT"},
		{"Internship", "INTERN"},
		{"Volunteer", "VOLUNTEER"},
		{"", "FULL_TIME"},
		{"Permanent", "FULL_TIME"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, mapJobType(tt.in), "jobType %q", tt.in)
	}
}
