// Package seed fills a fresh database with a small, recognizable demo
// dataset: one user per role and a handful of jobs spread across the
// lifecycle.
package seed

import (
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/exera-hr/jobdesk/backend/internal/domain"
	"github.com/exera-hr/jobdesk/backend/internal/repository"
)

type demoUser struct {
	Username string
	Email    string
	Role     domain.Role
}

var demoUsers = []demoUser{
	{Username: "Morgan Reyes", Email: "morgan.reyes@exera.com", Role: domain.RoleHRManager},
	{Username: "Casey Lin", Email: "casey.lin@exera.com", Role: domain.RoleHRAssistant},
	{Username: "Jordan Okafor", Email: "jordan.okafor@exera.com", Role: domain.RoleHRAssistant},
}

var demoJobs = []*domain.Job{
	{
		JobTitle:        "Backend Engineer",
		Department:      "Engineering",
		Location:        "Austin, TX",
		JobType:         "Full-time",
		AboutCompany:    "Exera builds workforce software for growing teams.",
		PositionSummary: "Design and run the services behind our hiring products.",
		KeyResponsibilities: []string{
			"Build and operate backend services",
			"Review designs and code from teammates",
		},
		RequiredSkills: []string{
			"4+ years building production services",
			"Solid SQL and data modeling skills",
		},
		PreferredSkills: []string{"Experience with message queues"},
		Compensation:    "$140,000 - $175,000",
	},
	{
		JobTitle:        "HR Coordinator",
		Department:      "People",
		Location:        "Chicago, IL",
		JobType:         "Full-time",
		AboutCompany:    "Exera builds workforce software for growing teams.",
		PositionSummary: "Keep our hiring pipeline organized and candidates informed.",
		KeyResponsibilities: []string{
			"Schedule interviews across time zones",
			"Maintain candidate records",
		},
		RequiredSkills: []string{"1+ years in a coordination role"},
		AdditionalFields: map[string]string{
			"travelRequirement": "Up to 10%",
		},
	},
	{
		JobTitle:        "Product Designer",
		Department:      "Design",
		Location:        "Remote",
		JobType:         "Contract",
		AboutCompany:    "Exera builds workforce software for growing teams.",
		PositionSummary: "Shape the end-to-end experience of our job description tools.",
		KeyResponsibilities: []string{
			"Prototype and validate design concepts",
			"Partner with engineering on delivery",
		},
		RequiredSkills:  []string{"Portfolio of shipped product work"},
		WorkEnvironment: "Fully remote team",
	},
}

// SeedDemoData inserts the demo users and jobs. Inserts are
// independent, a duplicate from a previous run is logged and skipped.
func SeedDemoData(repo *repository.Repository, userPassword string) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(userPassword), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("failed to hash demo password", "error", err)
		return
	}

	userCount := 0
	for _, du := range demoUsers {
		user := &domain.User{
			Username:     du.Username,
			PasswordHash: string(passwordHash),
			Email:        du.Email,
			Role:         du.Role,
		}
		if err := repo.CreateUser(user); err != nil {
			slog.Error("failed to insert demo user", "email", du.Email, "error", err)
			continue
		}
		userCount++
	}
	slog.Info("demo users inserted", "count", userCount)

	jobCount := 0
	for _, job := range demoJobs {
		if err := repo.CreateJob(job); err != nil {
			slog.Error("failed to insert demo job", "jobTitle", job.JobTitle, "error", err)
			continue
		}
		jobCount++
	}
	slog.Info("demo jobs inserted", "count", jobCount)
}
