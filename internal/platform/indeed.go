package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/exera-hr/jobdesk/backend/internal/domain"
)

type IndeedPoster struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewIndeedPoster(baseURL, apiKey string, timeout time.Duration) *IndeedPoster {
	return &IndeedPoster{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (p *IndeedPoster) Name() string {
	return "indeed"
}

type indeedJob struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	JobType     string `json:"jobType"`
	Description string `json:"description"`
	ContactInfo string `json:"contactInfo,omitempty"`
}

func (p *IndeedPoster) Post(ctx context.Context, job *domain.Job, formattedContent string) (string, error) {
	if p.apiKey == "" {
		return "", errors.New("indeed: API key not configured")
	}

	body, err := json.Marshal(indeedJob{
		Title:       job.JobTitle,
		Company:     job.Department,
		Location:    job.Location,
		JobType:     mapJobType(job.JobType),
		Description: buildDescription(job, formattedContent),
		ContactInfo: job.ContactInformation,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/jobs", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

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
		return "", fmt.Errorf("indeed: posting failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(respBody, &created); err != nil {
		return "", fmt.Errorf("indeed: parse posting response: %w", err)
	}

	return created.ID, nil
}
