package model

import (
	"strings"
	"time"
)

// ApplicationStatusPending is the status a freshly submitted application starts in.
const ApplicationStatusPending = "Pending"

// consumingStatuses are the status values whose adoption consumes one job slot.
// Membership is compared case-insensitively; any other value is non-consuming.
var consumingStatuses = map[string]struct{}{
	"accepted":       {},
	"hired":          {},
	"offer":          {},
	"offer accepted": {},
}

// IsConsumingStatus reports whether status counts as an accept-equivalent,
// i.e. whether transitioning into it consumes one unit of job headcount.
func IsConsumingStatus(status string) bool {
	_, ok := consumingStatuses[strings.ToLower(strings.TrimSpace(status))]
	return ok
}

// Application represents one user's application to one job. At most one
// application exists per (user, job) pair.
type Application struct {
	ID        string    `json:"id"         db:"id"`
	JobID     string    `json:"job_id"     db:"job_id"`
	UserID    string    `json:"user_id"    db:"user_id"`
	CompanyID string    `json:"company_id" db:"company_id"`
	Status    string    `json:"status"     db:"status"`
	AppliedAt time.Time `json:"applied_at" db:"applied_at"`
}

// ApplicationDetail is an Application joined with the fields the listing and
// notification paths need from the job and the accounts involved.
type ApplicationDetail struct {
	Application
	JobTitle       string `json:"job_title"       db:"job_title"`
	JobLocation    string `json:"job_location"    db:"job_location"`
	ApplicantName  string `json:"applicant_name"  db:"applicant_name"`
	ApplicantEmail string `json:"applicant_email" db:"applicant_email"`
	ApplicantImage string `json:"applicant_image" db:"applicant_image"`
	Resume         string `json:"resume"          db:"resume"`
	CompanyName    string `json:"company_name"    db:"company_name"`
	CompanyEmail   string `json:"company_email"   db:"company_email"`
}

// CreateApplicationRequest represents a request to submit an application.
// CompanyID is denormalized from the target job by the service layer.
type CreateApplicationRequest struct {
	JobID     string
	UserID    string
	CompanyID string
}

// StatusChangeResult is the outcome of a status transition. Job is non-nil only
// when the transition consumed a slot.
type StatusChangeResult struct {
	Application *Application `json:"application"`
	Job         *Job         `json:"job,omitempty"`
}
