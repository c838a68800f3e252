package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/exera-hr/jobdesk/backend/internal/domain"
)

const jobColumns = `
	job_title, department, location, job_type, status,
	about_company, position_summary,
	key_responsibilities, required_skills, preferred_skills,
	compensation, work_environment, diversity_statement,
	application_instructions, contact_information, additional_information,
	additional_fields, approval_comments, formatted_content,
	created_at, updated_at
`

// jobRow collects the raw JSONB columns before decoding; everything else
// scans straight into the domain struct.
type jobRow struct {
	keyResponsibilities []byte
	requiredSkills      []byte
	preferredSkills     []byte
	additionalFields    []byte
}

func (row *jobRow) scanDst(job *domain.Job) []any {
	return []any{
		&job.JobTitle, &job.Department, &job.Location, &job.JobType, &job.Status,
		&job.AboutCompany, &job.PositionSummary,
		&row.keyResponsibilities, &row.requiredSkills, &row.preferredSkills,
		&job.Compensation, &job.WorkEnvironment, &job.DiversityStatement,
		&job.ApplicationInstructions, &job.ContactInformation, &job.AdditionalInformation,
		&row.additionalFields, &job.ApprovalComments, &job.FormattedContent,
		&job.CreatedAt, &job.UpdatedAt,
	}
}

func (row *jobRow) decodeInto(job *domain.Job) error {
	if err := json.Unmarshal(row.keyResponsibilities, &job.KeyResponsibilities); err != nil {
		return fmt.Errorf("decode key_responsibilities: %w", err)
	}
	if err := json.Unmarshal(row.requiredSkills, &job.RequiredSkills); err != nil {
		return fmt.Errorf("decode required_skills: %w", err)
	}
	if err := json.Unmarshal(row.preferredSkills, &job.PreferredSkills); err != nil {
		return fmt.Errorf("decode preferred_skills: %w", err)
	}
	if err := json.Unmarshal(row.additionalFields, &job.AdditionalFields); err != nil {
		return fmt.Errorf("decode additional_fields: %w", err)
	}
	return nil
}

func encodeJobLists(job *domain.Job) (keyResponsibilities, requiredSkills, preferredSkills, additionalFields []byte, err error) {
	if job.KeyResponsibilities == nil {
		job.KeyResponsibilities = []string{}
	}
	if job.RequiredSkills == nil {
		job.RequiredSkills = []string{}
	}
	if job.PreferredSkills == nil {
		job.PreferredSkills = []string{}
	}
	if job.AdditionalFields == nil {
		job.AdditionalFields = map[string]string{}
	}

	if keyResponsibilities, err = json.Marshal(job.KeyResponsibilities); err != nil {
		return
	}
	if requiredSkills, err = json.Marshal(job.RequiredSkills); err != nil {
		return
	}
	if preferredSkills, err = json.Marshal(job.PreferredSkills); err != nil {
		return
	}
	additionalFields, err = json.Marshal(job.AdditionalFields)
	return
}

func (r *Repository) CreateJob(job *domain.Job) error {
	keyResponsibilities, requiredSkills, preferredSkills, additionalFields, err := encodeJobLists(job)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO jobs (
			job_title, department, location, job_type,
			about_company, position_summary,
			key_responsibilities, required_skills, preferred_skills,
			compensation, work_environment, diversity_statement,
			application_instructions, contact_information, additional_information,
			additional_fields
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, status, approval_comments, formatted_content, created_at, updated_at
	`

	args := []any{
		job.JobTitle, job.Department, job.Location, job.JobType,
		job.AboutCompany, job.PositionSummary,
		keyResponsibilities, requiredSkills, preferredSkills,
		job.Compensation, job.WorkEnvironment, job.DiversityStatement,
		job.ApplicationInstructions, job.ContactInformation, job.AdditionalInformation,
		additionalFields,
	}
	dst := []any{&job.ID, &job.Status, &job.ApprovalComments, &job.FormattedContent, &job.CreatedAt, &job.UpdatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetJobByID(id int64) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	job := &domain.Job{
		ID: id,
	}

	row := jobRow{}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(row.scanDst(job)...); err != nil {
		return nil, err
	}
	if err := row.decodeInto(job); err != nil {
		return nil, err
	}

	return job, nil
}

func (r *Repository) GetAllJobs() ([]*domain.Job, error) {
	query := `SELECT id, ` + jobColumns + ` FROM jobs ORDER BY id`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]*domain.Job, 0)
	for rows.Next() {
		job := &domain.Job{}
		row := jobRow{}
		dst := append([]any{&job.ID}, row.scanDst(job)...)
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		if err := row.decodeInto(job); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return jobs, nil
}

// UpdateJob writes all content fields and the status back. Matching on id
// only: concurrent edits to the same job are last-write-wins at the
// document level.
func (r *Repository) UpdateJob(job *domain.Job) error {
	keyResponsibilities, requiredSkills, preferredSkills, additionalFields, err := encodeJobLists(job)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		UPDATE jobs
		SET
			job_title = $1,
			department = $2,
			location = $3,
			job_type = $4,
			status = $5,
			about_company = $6,
			position_summary = $7,
			key_responsibilities = $8,
			required_skills = $9,
			preferred_skills = $10,
			compensation = $11,
			work_environment = $12,
			diversity_statement = $13,
			application_instructions = $14,
			contact_information = $15,
			additional_information = $16,
			additional_fields = $17,
			approval_comments = $18,
			formatted_content = $19,
			updated_at = now()
		WHERE id = $20
		RETURNING updated_at
	`

	args := []any{
		job.JobTitle, job.Department, job.Location, job.JobType, job.Status,
		job.AboutCompany, job.PositionSummary,
		keyResponsibilities, requiredSkills, preferredSkills,
		job.Compensation, job.WorkEnvironment, job.DiversityStatement,
		job.ApplicationInstructions, job.ContactInformation, job.AdditionalInformation,
		additionalFields, job.ApprovalComments, job.FormattedContent,
		job.ID,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&job.UpdatedAt); err != nil {
		return err
	}

	return nil
}

type JobSearchFilter struct {
	JobTitle   string
	Department string
	Location   string
	JobType    string
	Status     string
}

// SearchJobs backs the search-for-update endpoint: partial
// case-insensitive matching on the text columns, exact matching on
// status, and no status restriction (Published jobs are included).
func (r *Repository) SearchJobs(filter JobSearchFilter) ([]*domain.JobSummary, error) {
	query := `SELECT id, job_title, department, location, job_type, status FROM jobs`

	conditions := []string{}
	args := []any{}

	addPartial := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("%s ILIKE '%%' || $%d || '%%'", column, len(args)))
	}

	addPartial("job_title", filter.JobTitle)
	addPartial("department", filter.Department)
	addPartial("location", filter.Location)
	addPartial("job_type", filter.JobType)
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY id"

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]*domain.JobSummary, 0)
	for rows.Next() {
		s := &domain.JobSummary{}
		if err := rows.Scan(&s.ID, &s.JobTitle, &s.Department, &s.Location, &s.JobType, &s.Status); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}

// SearchJobsInProcess lists jobs that have not been published yet. Unlike
// SearchJobs, the status filter here is a case-insensitive substring
// match; the two endpoints have always diverged on this and clients
// depend on it.
func (r *Repository) SearchJobsInProcess(filter JobSearchFilter, page, limit int) ([]*domain.JobSummary, int64, error) {
	where := ` WHERE status IN ('Pending for Approval', 'Approved', 'Formatted')`
	args := []any{}

	addPartial := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		where += fmt.Sprintf(" AND %s ILIKE '%%' || $%d || '%%'", column, len(args))
	}

	addPartial("job_title", filter.JobTitle)
	addPartial("department", filter.Department)
	addPartial("location", filter.Location)
	addPartial("status", filter.Status)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var total int64
	countQuery := `SELECT count(*) FROM jobs` + where
	if err := r.dbpool.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, (page-1)*limit)
	query := fmt.Sprintf(
		`SELECT id, job_title, department, location, status FROM jobs%s ORDER BY id LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args),
	)

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	summaries := make([]*domain.JobSummary, 0)
	for rows.Next() {
		s := &domain.JobSummary{}
		if err := rows.Scan(&s.ID, &s.JobTitle, &s.Department, &s.Location, &s.Status); err != nil {
			return nil, 0, err
		}
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return summaries, total, nil
}
