// Package platform posts published job descriptions to external job
// boards. Posting is best-effort: a board failure is reported per
// platform and never rolls back the local publish.
package platform

import (
	"context"
	"log/slog"

	"github.com/exera-hr/jobdesk/backend/internal/domain"
	"github.com/google/uuid"
)

type Poster interface {
	Name() string
	// Post submits the job to the board and returns the board's posting
	// reference.
	Post(ctx context.Context, job *domain.Job, formattedContent string) (string, error)
}

type PostResult struct {
	Platform  string `json:"platform"`
	Success   bool   `json:"success"`
	PostID    string `json:"postId,omitempty"`
	Error     string `json:"error,omitempty"`
	RequestID string `json:"requestId"`
}

type Publisher struct {
	posters map[string]Poster
}

func NewPublisher(posters ...Poster) *Publisher {
	m := make(map[string]Poster, len(posters))
	for _, p := range posters {
		m[p.Name()] = p
	}
	return &Publisher{posters: m}
}

func (p *Publisher) Supports(name string) bool {
	_, ok := p.posters[name]
	return ok
}

// Publish fans the job out to each requested platform and collects one
// result per platform, failures included.
func (p *Publisher) Publish(ctx context.Context, job *domain.Job, formattedContent string, platforms []string) []PostResult {
	results := make([]PostResult, 0, len(platforms))

	for _, name := range platforms {
		result := PostResult{
			Platform:  name,
			RequestID: uuid.NewString(),
		}

		poster, ok := p.posters[name]
		if !ok {
			result.Error = "unsupported platform"
			results = append(results, result)
			continue
		}

		postID, err := poster.Post(ctx, job, formattedContent)
		if err != nil {
			slog.Error("platform post failed", "platform", name, "jobID", job.ID, "requestID", result.RequestID, "error", err)
			result.Error = err.Error()
			results = append(results, result)
			continue
		}

		slog.Info("job posted to platform", "platform", name, "jobID", job.ID, "requestID", result.RequestID, "postID", postID)
		result.Success = true
		result.PostID = postID
		results = append(results, result)
	}

	return results
}
