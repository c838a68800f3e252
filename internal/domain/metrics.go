package domain

// JobSummary is the trimmed listing row returned by the search endpoints.
type JobSummary struct {
	ID         int64     `json:"id"`
	JobTitle   string    `json:"jobTitle"`
	Department string    `json:"department"`
	Location   string    `json:"location"`
	JobType    string    `json:"jobType,omitempty"`
	Status     JobStatus `json:"status"`
}

type NameCount struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

type JobMetrics struct {
	TotalJobs       int64       `json:"totalJobs"`
	PendingApproval int64       `json:"pendingApproval"`
	Approved        int64       `json:"approved"`
	Formatted       int64       `json:"formatted"`
	Published       int64       `json:"published"`
	ByDepartment    []NameCount `json:"byDepartment"`
	ByLocation      []NameCount `json:"byLocation"`
}

type MonthCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

type StatusMonthCount struct {
	Month  string    `json:"month"`
	Status JobStatus `json:"status"`
	Count  int64     `json:"count"`
}

type JobTrends struct {
	JobCreationByMonth   []MonthCount       `json:"jobCreationByMonth"`
	StatusChangesByMonth []StatusMonthCount `json:"statusChangesByMonth"`
}
