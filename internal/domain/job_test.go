package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func listPtr(items ...string) *[]string { return &items }

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from JobStatus
		to   JobStatus
		want bool
	}{
		{StatusPendingForApproval, StatusApproved, true},
		{StatusApproved, StatusFormatted, true},
		{StatusFormatted, StatusPublished, true},

		// no skipping
		{StatusPendingForApproval, StatusFormatted, false},
		{StatusPendingForApproval, StatusPublished, false},
		{StatusApproved, StatusPublished, false},

		// no going back
		{StatusApproved, StatusPendingForApproval, false},
		{StatusPublished, StatusFormatted, false},
		{StatusPublished, StatusPendingForApproval, false},

		// terminal status
		{StatusPublished, StatusApproved, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestTransitionCapability(t *testing.T) {
	capability, ok := TransitionCapability(StatusApproved)
	require.True(t, ok)
	assert.Equal(t, CapApproveJobs, capability)

	capability, ok = TransitionCapability(StatusFormatted)
	require.True(t, ok)
	assert.Equal(t, CapFormatJobs, capability)

	capability, ok = TransitionCapability(StatusPublished)
	require.True(t, ok)
	assert.Equal(t, CapPublishJobs, capability)

	capability, ok = TransitionCapability(StatusPendingForApproval)
	require.True(t, ok, "the self-loop is gated like every other target")
	assert.Equal(t, CapCreateJobs, capability)

	_, ok = TransitionCapability(JobStatus("Draft"))
	assert.False(t, ok)
}

func TestNormalizeForCreate(t *testing.T) {
	t.Run("payload status is discarded", func(t *testing.T) {
		job := &Job{}
		require.NoError(t, json.Unmarshal([]byte(`{"jobTitle":"Backend Engineer","status":"Published"}`), job))
		require.Equal(t, StatusPublished, job.Status)

		job.NormalizeForCreate()
		assert.Equal(t, StatusPendingForApproval, job.Status)
	})

	t.Run("content fields are trimmed", func(t *testing.T) {
		job := &Job{
			JobTitle:           "  Backend Engineer ",
			Department:         "\tEngineering\n",
			Location:           " Austin, TX",
			JobType:            "Full-time",
			AboutCompany:       " About us. ",
			PositionSummary:    "Build services.",
			Compensation:       "  $150k  ",
			ContactInformation: " hiring@exera.com ",
		}

		job.NormalizeForCreate()

		assert.Equal(t, "Backend Engineer", job.JobTitle)
		assert.Equal(t, "Engineering", job.Department)
		assert.Equal(t, "Austin, TX", job.Location)
		assert.Equal(t, "About us.", job.AboutCompany)
		assert.Equal(t, "$150k", job.Compensation)
		assert.Equal(t, "hiring@exera.com", job.ContactInformation)
	})
}

func TestMissingRequiredFields(t *testing.T) {
	job := &Job{
		JobTitle:     "Backend Engineer",
		Department:   "Engineering",
		Location:     "Austin, TX",
		JobType:      "Full-time",
		AboutCompany: "About us.",
	}
	assert.Equal(t, []string{"positionSummary"}, job.MissingRequiredFields())

	job.PositionSummary = "   "
	assert.Equal(t, []string{"positionSummary"}, job.MissingRequiredFields(), "whitespace only counts as blank")

	job.PositionSummary = "Build services."
	assert.Nil(t, job.MissingRequiredFields())

	empty := &Job{}
	assert.Equal(t, []string{"jobTitle", "department", "location", "jobType", "aboutCompany", "positionSummary"}, empty.MissingRequiredFields())
}

func TestEmptiedFields(t *testing.T) {
	job := &Job{
		JobTitle:            "Backend Engineer",
		Department:          "Engineering",
		KeyResponsibilities: []string{"Build services"},
		Compensation:        "",
	}

	t.Run("blanking a populated string field", func(t *testing.T) {
		patch := &JobPatch{JobTitle: strPtr("  ")}
		assert.Equal(t, []string{"jobTitle"}, job.EmptiedFields(patch))
	})

	t.Run("blanking a populated list field", func(t *testing.T) {
		patch := &JobPatch{KeyResponsibilities: listPtr()}
		assert.Equal(t, []string{"keyResponsibilities"}, job.EmptiedFields(patch))

		patch = &JobPatch{KeyResponsibilities: listPtr("", "  ")}
		assert.Equal(t, []string{"keyResponsibilities"}, job.EmptiedFields(patch), "whitespace-only entries count as empty")
	})

	t.Run("already empty field may stay empty", func(t *testing.T) {
		patch := &JobPatch{Compensation: strPtr("")}
		assert.Nil(t, job.EmptiedFields(patch))
	})

	t.Run("omitted fields are not checked", func(t *testing.T) {
		patch := &JobPatch{Department: strPtr("People")}
		assert.Nil(t, job.EmptiedFields(patch))
	})

	t.Run("multiple fields reported together", func(t *testing.T) {
		patch := &JobPatch{
			JobTitle:            strPtr(""),
			Department:          strPtr(""),
			KeyResponsibilities: listPtr(),
		}
		assert.Equal(t, []string{"jobTitle", "department", "keyResponsibilities"}, job.EmptiedFields(patch))
	})
}

func TestApply(t *testing.T) {
	job := &Job{
		JobTitle:   "Backend Engineer",
		Department: "Engineering",
		AdditionalFields: map[string]string{
			"travelRequirement": "Up to 10%",
		},
	}

	job.Apply(&JobPatch{
		JobTitle:       strPtr("  Senior Backend Engineer  "),
		RequiredSkills: listPtr("Go", "SQL"),
	})

	assert.Equal(t, "Senior Backend Engineer", job.JobTitle, "string values are trimmed")
	assert.Equal(t, "Engineering", job.Department, "omitted fields keep their value")
	assert.Equal(t, []string{"Go", "SQL"}, job.RequiredSkills)
}

func TestApplyPreservesAdditionalFields(t *testing.T) {
	stored := map[string]string{
		"travelRequirement": "Up to 10%",
		"visaSponsorship":   "Available",
	}

	job := &Job{AdditionalFields: stored}
	job.Apply(&JobPatch{AdditionalFields: map[string]string{}})
	assert.Equal(t, stored, job.AdditionalFields, "empty map keeps stored entries")

	job.Apply(&JobPatch{})
	assert.Equal(t, stored, job.AdditionalFields, "absent map keeps stored entries")

	job.Apply(&JobPatch{AdditionalFields: map[string]string{"teamSize": "8"}})
	assert.Equal(t, map[string]string{"teamSize": "8"}, job.AdditionalFields, "non-empty map replaces stored entries")
}

func TestJobStatusIsValid(t *testing.T) {
	assert.True(t, StatusPendingForApproval.IsValid())
	assert.True(t, StatusApproved.IsValid())
	assert.True(t, StatusFormatted.IsValid())
	assert.True(t, StatusPublished.IsValid())
	assert.False(t, JobStatus("Draft").IsValid())
	assert.False(t, JobStatus("published").IsValid())
}
