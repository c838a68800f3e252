package repository

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exera-hr/jobdesk/backend/internal/domain"
)

func TestEncodeJobListsDefaults(t *testing.T) {
	job := &domain.Job{}

	keyResponsibilities, requiredSkills, preferredSkills, additionalFields, err := encodeJobLists(job)
	require.NoError(t, err)

	assert.Equal(t, "[]", string(keyResponsibilities))
	assert.Equal(t, "[]", string(requiredSkills))
	assert.Equal(t, "[]", string(preferredSkills))
	assert.Equal(t, "{}", string(additionalFields))
}

func TestJobListsRoundTrip(t *testing.T) {
	original := &domain.Job{
		KeyResponsibilities: []string{"Ship features", "Review code"},
		RequiredSkills:      []string{"Go", "SQL"},
		PreferredSkills:     []string{},
		AdditionalFields: map[string]string{
			"Travel Requirement": "Up to 10%",
			"visaSponsorship":    "Available",
			"team size":          "8",
		},
	}

	keyResponsibilities, requiredSkills, preferredSkills, additionalFields, err := encodeJobLists(original)
	require.NoError(t, err)

	row := jobRow{
		keyResponsibilities: keyResponsibilities,
		requiredSkills:      requiredSkills,
		preferredSkills:     preferredSkills,
		additionalFields:    additionalFields,
	}

	decoded := &domain.Job{}
	require.NoError(t, row.decodeInto(decoded))

	assert.Equal(t, original.KeyResponsibilities, decoded.KeyResponsibilities)
	assert.Equal(t, original.RequiredSkills, decoded.RequiredSkills)
	assert.Equal(t, original.PreferredSkills, decoded.PreferredSkills)
	assert.Equal(t, original.AdditionalFields, decoded.AdditionalFields, "open map keys and values survive verbatim")

	// A second write of the decoded map produces the same bytes, so a
	// read-modify-write that leaves additionalFields alone stores the
	// column unchanged.
	again, err := json.Marshal(decoded.AdditionalFields)
	require.NoError(t, err)
	assert.Equal(t, additionalFields, again)
}

func TestDecodeIntoRejectsMalformedColumn(t *testing.T) {
	row := jobRow{
		keyResponsibilities: []byte(`[]`),
		requiredSkills:      []byte(`[]`),
		preferredSkills:     []byte(`[]`),
		additionalFields:    []byte(`not json`),
	}

	err := row.decodeInto(&domain.Job{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "additional_fields")
}
