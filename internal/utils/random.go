package utils

import (
	"fmt"
	"math/rand"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/exera-hr/jobdesk/backend/internal/domain"
)

var firstNames = []string{
	"James", "Mary", "Robert", "Patricia", "John", "Jennifer", "Michael", "Linda",
	"David", "Elizabeth", "William", "Barbara", "Richard", "Susan", "Joseph", "Jessica",
	"Thomas", "Sarah", "Daniel", "Karen", "Amara", "Wei", "Priya", "Diego",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
	"Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson",
	"Thomas", "Taylor", "Moore", "Jackson", "Martin", "Nguyen", "Chen", "Patel", "Kim",
}

func GenerateRandomFullName() (string, string) {
	return firstNames[rand.Intn(len(firstNames))], lastNames[rand.Intn(len(lastNames))]
}

var seedRoles = []domain.Role{
	domain.RoleHRManager,
	domain.RoleHRAssistant,
}

// GenerateRandomRole never returns IT Admin: the bootstrap admin is the
// only one of those and additional ones cannot be deleted afterwards.
func GenerateRandomRole() domain.Role {
	return seedRoles[rand.Intn(len(seedRoles))]
}

var digits = "0123456789"

func GenerateRandomUser(password string, emailDomainName string) (*domain.User, error) {
	first, last := GenerateRandomFullName()

	suffix := ""
	for i := 0; i < rand.Intn(3)+1; i++ {
		suffix += string(digits[rand.Intn(len(digits))])
	}
	username := strings.ToLower(first) + "." + strings.ToLower(last) + suffix

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &domain.User{
		Username:     first + " " + last,
		PasswordHash: string(passwordHash),
		Email:        username + "@" + emailDomainName,
		Role:         GenerateRandomRole(),
	}, nil
}

var seedJobTitles = []string{
	"Software Engineer", "Senior Software Engineer", "Product Manager",
	"Data Analyst", "UX Designer", "DevOps Engineer", "QA Engineer",
	"Marketing Specialist", "Account Executive", "Customer Success Manager",
}

var seedDepartments = []string{
	"Engineering", "Product", "Design", "Marketing", "Sales", "Customer Success",
}

var seedLocations = []string{
	"New York, NY", "San Francisco, CA", "Austin, TX", "Chicago, IL", "Remote",
}

var seedJobTypes = []string{
	"Full-time", "Part-time", "Contract", "Internship",
}

func GenerateRandomJob() *domain.Job {
	title := seedJobTitles[rand.Intn(len(seedJobTitles))]
	department := seedDepartments[rand.Intn(len(seedDepartments))]

	return &domain.Job{
		JobTitle:        title,
		Department:      department,
		Location:        seedLocations[rand.Intn(len(seedLocations))],
		JobType:         seedJobTypes[rand.Intn(len(seedJobTypes))],
		AboutCompany:    "Exera builds workforce software for growing teams.",
		PositionSummary: fmt.Sprintf("We are looking for a %s to join our %s team.", title, department),
		KeyResponsibilities: []string{
			"Collaborate with cross-functional partners",
			"Own projects from planning through delivery",
			"Contribute to team processes and standards",
		},
		RequiredSkills: []string{
			"3+ years of relevant experience",
			"Strong written and verbal communication",
		},
		PreferredSkills: []string{
			"Experience in a fast-growing company",
		},
	}
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	password := make([]rune, length)
	for i := range password {
		password[i] = letters[rand.Intn(len(letters))]
	}
	return string(password)
}
