package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/exera-hr/jobdesk/backend/internal/domain"
)

type LinkedInPoster struct {
	baseURL        string
	accessToken    string
	organizationID string
	httpClient     *http.Client
}

func NewLinkedInPoster(baseURL, accessToken, organizationID string, timeout time.Duration) *LinkedInPoster {
	return &LinkedInPoster{
		baseURL:        baseURL,
		accessToken:    accessToken,
		organizationID: organizationID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (p *LinkedInPoster) Name() string {
	return "linkedin"
}

type linkedInJob struct {
	Author            string              `json:"author"`
	CompanyID         string              `json:"companyId"`
	Title             string              `json:"title"`
	Description       linkedInText        `json:"description"`
	LocationPlacement linkedInLocation    `json:"locationPlacement"`
	EmploymentStatus  string              `json:"employmentStatus"`
	WorkRemoteAllowed bool                `json:"workRemoteAllowed"`
	ListedAt          int64               `json:"listedAt"`
	ApplyMethod       linkedInApplyMethod `json:"applyMethod"`
}

type linkedInText struct {
	Text string `json:"text"`
}

type linkedInLocation struct {
	Location string `json:"location"`
	Country  string `json:"country"`
}

type linkedInApplyMethod struct {
	ApplyURL string `json:"applyUrl"`
}

func (p *LinkedInPoster) buildPayload(job *domain.Job, formattedContent string) linkedInJob {
	applyURL := job.ApplicationInstructions
	if applyURL == "" {
		applyURL = fmt.Sprintf("https://exera.com/careers/%d", job.ID)
	}

	return linkedInJob{
		Author:      fmt.Sprintf("urn:li:organization:%s", p.organizationID),
		CompanyID:   p.organizationID,
		Title:       job.JobTitle,
		Description: linkedInText{Text: buildDescription(job, formattedContent)},
		LocationPlacement: linkedInLocation{
			Location: fmt.Sprintf("urn:li:place:%s", job.Location),
			Country:  "US",
		},
		EmploymentStatus:  mapJobType(job.JobType),
		WorkRemoteAllowed: strings.Contains(strings.ToLower(job.WorkEnvironment), "remote"),
		ListedAt:          time.Now().UnixMilli(),
		ApplyMethod:       linkedInApplyMethod{ApplyURL: applyURL},
	}
}

func (p *LinkedInPoster) Post(ctx context.Context, job *domain.Job, formattedContent string) (string, error) {
	if p.accessToken == "" || p.organizationID == "" {
		return "", errors.New("linkedin: access token or organization not configured")
	}

	payload := p.buildPayload(job, formattedContent)
	if payload.Title == "" {
		return "", errors.New("linkedin: job title is required")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/jobs", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+p.accessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("linkedin: posting failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(respBody, &created); err != nil {
		return "", fmt.Errorf("linkedin: parse posting response: %w", err)
	}

	return created.ID, nil
}

// buildDescription assembles the board-facing posting text. The curated
// formatted content wins when present; otherwise the sections are stitched
// together from the structured fields.
func buildDescription(job *domain.Job, formattedContent string) string {
	if strings.TrimSpace(formattedContent) != "" {
		return formattedContent
	}

	var sections []string

	if job.AboutCompany != "" {
		sections = append(sections, "# About Us\n"+job.AboutCompany)
	}
	if job.PositionSummary != "" {
		sections = append(sections, "# Position Summary\n"+job.PositionSummary)
	}
	if len(job.KeyResponsibilities) > 0 {
		sections = append(sections, "# Key Responsibilities\n"+bulletList(job.KeyResponsibilities))
	}
	if len(job.RequiredSkills) > 0 {
		sections = append(sections, "# Required Skills\n"+bulletList(job.RequiredSkills))
	}
	if len(job.PreferredSkills) > 0 {
		sections = append(sections, "# Preferred Skills\n"+bulletList(job.PreferredSkills))
	}

	return strings.Join(sections, "\n\n")
}

func bulletList(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item
	}
	return strings.Join(lines, "\n")
}

func mapJobType(jobType string) string {
	t := strings.ToLower(jobType)
	switch {
	case strings.Contains(t, "part"):
		return "PART_TIME"
	case strings.Contains(t, "contract"):
		return "CONTRACT"
	case strings.Contains(t, "intern"):
		return "INTERN"
	case strings.Contains(t, "volunteer"):
		return "VOLUNTEER"
	default:
		return "FULL_TIME"
	}
}
