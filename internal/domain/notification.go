package domain

type NotificationMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type AccountCreatedData struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

type JobApprovedData struct {
	JobTitle         string `json:"jobTitle"`
	Department       string `json:"department"`
	ApprovalComments string `json:"approvalComments"`
}

type JobPublishedData struct {
	JobTitle  string   `json:"jobTitle"`
	Platforms []string `json:"platforms"`
}
