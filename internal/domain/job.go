package domain

import (
	"strings"
	"time"
)

type JobStatus string

const (
	StatusPendingForApproval JobStatus = "Pending for Approval"
	StatusApproved           JobStatus = "Approved"
	StatusFormatted          JobStatus = "Formatted"
	StatusPublished          JobStatus = "Published"
)

func (s JobStatus) IsValid() bool {
	switch s {
	case StatusPendingForApproval, StatusApproved, StatusFormatted, StatusPublished:
		return true
	}
	return false
}

// InProcessStatuses are the statuses shown in the "jobs in process"
// listing. Published jobs are excluded there but remain searchable
// through the search-for-update endpoint.
var InProcessStatuses = []JobStatus{
	StatusPendingForApproval,
	StatusApproved,
	StatusFormatted,
}

// forwardTransitions is the approval pipeline. There are no backward
// edges: returning a job to editing is a self-loop on
// StatusPendingForApproval, not a regression.
var forwardTransitions = map[JobStatus]JobStatus{
	StatusPendingForApproval: StatusApproved,
	StatusApproved:           StatusFormatted,
	StatusFormatted:          StatusPublished,
}

func CanTransition(from, to JobStatus) bool {
	return forwardTransitions[from] == to
}

// transitionCapabilities gates every target status, the Pending
// self-loop included, so no transition request bypasses the
// capability check.
var transitionCapabilities = map[JobStatus]Capability{
	StatusPendingForApproval: CapCreateJobs,
	StatusApproved:           CapApproveJobs,
	StatusFormatted:          CapFormatJobs,
	StatusPublished:          CapPublishJobs,
}

// TransitionCapability returns the capability required to move a job into
// the given status.
func TransitionCapability(to JobStatus) (Capability, bool) {
	c, ok := transitionCapabilities[to]
	return c, ok
}

type Job struct {
	ID                      int64             `json:"id"`
	JobTitle                string            `json:"jobTitle"`
	Department              string            `json:"department"`
	Location                string            `json:"location"`
	JobType                 string            `json:"jobType"`
	Status                  JobStatus         `json:"status"`
	AboutCompany            string            `json:"aboutCompany"`
	PositionSummary         string            `json:"positionSummary"`
	KeyResponsibilities     []string          `json:"keyResponsibilities"`
	RequiredSkills          []string          `json:"requiredSkills"`
	PreferredSkills         []string          `json:"preferredSkills"`
	Compensation            string            `json:"compensation,omitempty"`
	WorkEnvironment         string            `json:"workEnvironment,omitempty"`
	DiversityStatement      string            `json:"diversityStatement,omitempty"`
	ApplicationInstructions string            `json:"applicationInstructions,omitempty"`
	ContactInformation      string            `json:"contactInformation,omitempty"`
	AdditionalInformation   string            `json:"additionalInformation,omitempty"`
	AdditionalFields        map[string]string `json:"additionalFields"`
	ApprovalComments        string            `json:"approvalComments,omitempty"`
	FormattedContent        string            `json:"formattedContent,omitempty"`
	CreatedAt               time.Time         `json:"createdAt"`
	UpdatedAt               time.Time         `json:"updatedAt"`
}

var requiredJobFields = []string{
	"jobTitle",
	"department",
	"location",
	"jobType",
	"aboutCompany",
	"positionSummary",
}

func (j *Job) requiredFieldValue(name string) string {
	switch name {
	case "jobTitle":
		return j.JobTitle
	case "department":
		return j.Department
	case "location":
		return j.Location
	case "jobType":
		return j.JobType
	case "aboutCompany":
		return j.AboutCompany
	case "positionSummary":
		return j.PositionSummary
	}
	return ""
}

// MissingRequiredFields lists the required fields that are currently
// blank. Approval is refused while this is non-empty.
func (j *Job) MissingRequiredFields() []string {
	var missing []string
	for _, name := range requiredJobFields {
		if strings.TrimSpace(j.requiredFieldValue(name)) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

// NormalizeForCreate prepares a decoded payload for insertion: content
// fields are trimmed and the status is forced to the start of the
// lifecycle, whatever the payload claimed.
func (j *Job) NormalizeForCreate() {
	j.Status = StatusPendingForApproval
	for _, f := range []*string{
		&j.JobTitle, &j.Department, &j.Location, &j.JobType,
		&j.AboutCompany, &j.PositionSummary,
		&j.Compensation, &j.WorkEnvironment, &j.DiversityStatement,
		&j.ApplicationInstructions, &j.ContactInformation, &j.AdditionalInformation,
	} {
		*f = strings.TrimSpace(*f)
	}
}

// JobPatch carries a content edit. Nil pointers mean "leave unchanged".
// Status is deliberately absent: status only moves through the workflow
// endpoints.
type JobPatch struct {
	JobTitle                *string           `json:"jobTitle"`
	Department              *string           `json:"department"`
	Location                *string           `json:"location"`
	JobType                 *string           `json:"jobType"`
	AboutCompany            *string           `json:"aboutCompany"`
	PositionSummary         *string           `json:"positionSummary"`
	KeyResponsibilities     *[]string         `json:"keyResponsibilities"`
	RequiredSkills          *[]string         `json:"requiredSkills"`
	PreferredSkills         *[]string         `json:"preferredSkills"`
	Compensation            *string           `json:"compensation"`
	WorkEnvironment         *string           `json:"workEnvironment"`
	DiversityStatement      *string           `json:"diversityStatement"`
	ApplicationInstructions *string           `json:"applicationInstructions"`
	ContactInformation      *string           `json:"contactInformation"`
	AdditionalInformation   *string           `json:"additionalInformation"`
	AdditionalFields        map[string]string `json:"additionalFields"`
	ApprovalComments        *string           `json:"approvalComments"`
	FormattedContent        *string           `json:"formattedContent"`
}

type patchField struct {
	name    string
	oldStr  string
	newStr  *string
	oldList []string
	newList *[]string
}

func (j *Job) patchFields(p *JobPatch) []patchField {
	return []patchField{
		{name: "jobTitle", oldStr: j.JobTitle, newStr: p.JobTitle},
		{name: "department", oldStr: j.Department, newStr: p.Department},
		{name: "location", oldStr: j.Location, newStr: p.Location},
		{name: "jobType", oldStr: j.JobType, newStr: p.JobType},
		{name: "aboutCompany", oldStr: j.AboutCompany, newStr: p.AboutCompany},
		{name: "positionSummary", oldStr: j.PositionSummary, newStr: p.PositionSummary},
		{name: "keyResponsibilities", oldList: j.KeyResponsibilities, newList: p.KeyResponsibilities},
		{name: "requiredSkills", oldList: j.RequiredSkills, newList: p.RequiredSkills},
		{name: "preferredSkills", oldList: j.PreferredSkills, newList: p.PreferredSkills},
		{name: "compensation", oldStr: j.Compensation, newStr: p.Compensation},
		{name: "workEnvironment", oldStr: j.WorkEnvironment, newStr: p.WorkEnvironment},
		{name: "diversityStatement", oldStr: j.DiversityStatement, newStr: p.DiversityStatement},
		{name: "applicationInstructions", oldStr: j.ApplicationInstructions, newStr: p.ApplicationInstructions},
		{name: "contactInformation", oldStr: j.ContactInformation, newStr: p.ContactInformation},
		{name: "additionalInformation", oldStr: j.AdditionalInformation, newStr: p.AdditionalInformation},
	}
}

func listHasContent(items []string) bool {
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			return true
		}
	}
	return false
}

// EmptiedFields lists the fields that currently hold content but would be
// blanked by the patch. Each field is evaluated independently; fields that
// were already empty may stay empty.
func (j *Job) EmptiedFields(p *JobPatch) []string {
	var emptied []string
	for _, f := range j.patchFields(p) {
		if f.newStr != nil {
			if strings.TrimSpace(f.oldStr) != "" && strings.TrimSpace(*f.newStr) == "" {
				emptied = append(emptied, f.name)
			}
			continue
		}
		if f.newList != nil {
			if listHasContent(f.oldList) && !listHasContent(*f.newList) {
				emptied = append(emptied, f.name)
			}
		}
	}
	return emptied
}

// Apply copies the patch onto the job. An explicitly empty
// additionalFields map preserves the stored entries, matching the
// update endpoint's contract with older clients.
func (j *Job) Apply(p *JobPatch) {
	setStr := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	setStr(&j.JobTitle, p.JobTitle)
	setStr(&j.Department, p.Department)
	setStr(&j.Location, p.Location)
	setStr(&j.JobType, p.JobType)
	setStr(&j.AboutCompany, p.AboutCompany)
	setStr(&j.PositionSummary, p.PositionSummary)
	setStr(&j.Compensation, p.Compensation)
	setStr(&j.WorkEnvironment, p.WorkEnvironment)
	setStr(&j.DiversityStatement, p.DiversityStatement)
	setStr(&j.ApplicationInstructions, p.ApplicationInstructions)
	setStr(&j.ContactInformation, p.ContactInformation)
	setStr(&j.AdditionalInformation, p.AdditionalInformation)
	setStr(&j.ApprovalComments, p.ApprovalComments)
	setStr(&j.FormattedContent, p.FormattedContent)

	if p.KeyResponsibilities != nil {
		j.KeyResponsibilities = *p.KeyResponsibilities
	}
	if p.RequiredSkills != nil {
		j.RequiredSkills = *p.RequiredSkills
	}
	if p.PreferredSkills != nil {
		j.PreferredSkills = *p.PreferredSkills
	}
	if len(p.AdditionalFields) > 0 {
		j.AdditionalFields = p.AdditionalFields
	}
}
