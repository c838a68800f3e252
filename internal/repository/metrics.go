package repository

import (
	"context"
	"time"

	"github.com/exera-hr/jobdesk/backend/internal/domain"
)

func (r *Repository) countJobsByStatus(ctx context.Context, metrics *domain.JobMetrics) error {
	query := `SELECT status, count(*) FROM jobs GROUP BY status`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var status domain.JobStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return err
		}

		metrics.TotalJobs += count
		switch status {
		case domain.StatusPendingForApproval:
			metrics.PendingApproval = count
		case domain.StatusApproved:
			metrics.Approved = count
		case domain.StatusFormatted:
			metrics.Formatted = count
		case domain.StatusPublished:
			metrics.Published = count
		}
	}

	return rows.Err()
}

// topValues groups a free-text column case- and whitespace-insensitively
// and returns the ten most common values. min() picks the representative
// spelling; capitalized variants sort first.
func (r *Repository) topValues(ctx context.Context, column string) ([]domain.NameCount, error) {
	query := `
		SELECT min(` + column + `) AS name, count(*) AS value
		FROM jobs
		GROUP BY lower(trim(` + column + `))
		ORDER BY value DESC, name
		LIMIT 10
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make([]domain.NameCount, 0)
	for rows.Next() {
		nc := domain.NameCount{}
		if err := rows.Scan(&nc.Name, &nc.Value); err != nil {
			return nil, err
		}
		counts = append(counts, nc)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

func (r *Repository) GetJobMetrics() (*domain.JobMetrics, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	metrics := &domain.JobMetrics{}

	if err := r.countJobsByStatus(ctx, metrics); err != nil {
		return nil, err
	}

	var err error
	if metrics.ByDepartment, err = r.topValues(ctx, "department"); err != nil {
		return nil, err
	}
	if metrics.ByLocation, err = r.topValues(ctx, "location"); err != nil {
		return nil, err
	}

	return metrics, nil
}

func (r *Repository) GetJobTrends(start, end time.Time) (*domain.JobTrends, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	trends := &domain.JobTrends{
		JobCreationByMonth:   make([]domain.MonthCount, 0),
		StatusChangesByMonth: make([]domain.StatusMonthCount, 0),
	}

	creationQuery := `
		SELECT to_char(date_trunc('month', created_at), 'FMMM/YYYY') AS month, count(*)
		FROM jobs
		WHERE created_at >= $1 AND created_at <= $2
		GROUP BY date_trunc('month', created_at)
		ORDER BY date_trunc('month', created_at)
	`

	rows, err := r.dbpool.QueryContext(ctx, creationQuery, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		mc := domain.MonthCount{}
		if err := rows.Scan(&mc.Month, &mc.Count); err != nil {
			return nil, err
		}
		trends.JobCreationByMonth = append(trends.JobCreationByMonth, mc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	statusQuery := `
		SELECT to_char(date_trunc('month', updated_at), 'FMMM/YYYY') AS month, status, count(*)
		FROM jobs
		WHERE updated_at >= $1 AND updated_at <= $2
		GROUP BY date_trunc('month', updated_at), status
		ORDER BY date_trunc('month', updated_at)
	`

	statusRows, err := r.dbpool.QueryContext(ctx, statusQuery, start, end)
	if err != nil {
		return nil, err
	}
	defer statusRows.Close()

	for statusRows.Next() {
		smc := domain.StatusMonthCount{}
		if err := statusRows.Scan(&smc.Month, &smc.Status, &smc.Count); err != nil {
			return nil, err
		}
		trends.StatusChangesByMonth = append(trends.StatusChangesByMonth, smc)
	}
	if err := statusRows.Err(); err != nil {
		return nil, err
	}

	return trends, nil
}
