// Package model defines the core data types and structures used throughout the job portal.
package model

import (
	"errors"
	"strings"
	"time"
)

// Job represents a job posting owned by a company.
type Job struct {
	ID          string     `json:"id"                   db:"id"`
	CompanyID   string     `json:"company_id"           db:"company_id"`
	Title       string     `json:"title"                db:"title"`
	Description string     `json:"description"          db:"description"`
	Location    string     `json:"location"             db:"location"`
	Level       string     `json:"level"                db:"level"`
	Category    string     `json:"category"             db:"category"`
	Salary      float64    `json:"salary"               db:"salary"`
	Quantity    int        `json:"quantity"             db:"quantity"`
	Visible     bool       `json:"visible"              db:"visible"`
	Approved    bool       `json:"approved"             db:"approved"`
	CreatedAt   time.Time  `json:"created_at"           db:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// HasOpenSlots reports whether the job still has remaining headcount.
func (j *Job) HasOpenSlots() bool {
	return j.Quantity > 0
}

// JobWithApplicantCount is a Job together with how many applications it received.
// Used by the company dashboard listing.
type JobWithApplicantCount struct {
	Job
	Applicants int `json:"applicants" db:"applicants"`
}

// CreateJobRequest represents a request to post a new job.
type CreateJobRequest struct {
	CompanyID   string  `json:"-"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	Level       string  `json:"level"`
	Category    string  `json:"category"`
	Salary      float64 `json:"salary"`
	// Quantity is the open headcount. Zero means "not provided" and defaults to 1.
	Quantity int `json:"quantity,omitempty"`
}

// Validate validates the CreateJobRequest fields.
func (r *CreateJobRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("title is required")
	}
	if strings.TrimSpace(r.Description) == "" {
		return errors.New("description is required")
	}
	if strings.TrimSpace(r.Location) == "" {
		return errors.New("location is required")
	}
	if strings.TrimSpace(r.Level) == "" {
		return errors.New("level is required")
	}
	if strings.TrimSpace(r.Category) == "" {
		return errors.New("category is required")
	}
	if r.Salary <= 0 {
		return errors.New("salary must be positive")
	}
	if r.Quantity < 0 {
		return errors.New("quantity must be a positive integer")
	}
	return nil
}

// Normalize trims free-text fields and applies the default headcount.
func (r *CreateJobRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Location = strings.TrimSpace(r.Location)
	r.Level = strings.TrimSpace(r.Level)
	r.Category = strings.TrimSpace(r.Category)
	if r.Quantity == 0 {
		r.Quantity = 1
	}
}

// UpdateJobRequest represents a partial update to a job. Nil fields are left unchanged.
type UpdateJobRequest struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Location    *string  `json:"location,omitempty"`
	Level       *string  `json:"level,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Salary      *float64 `json:"salary,omitempty"`
	Quantity    *int     `json:"quantity,omitempty"`
	Visible     *bool    `json:"visible,omitempty"`
}

// Validate validates the UpdateJobRequest fields.
func (r *UpdateJobRequest) Validate() error {
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return errors.New("title cannot be empty")
	}
	if r.Description != nil && strings.TrimSpace(*r.Description) == "" {
		return errors.New("description cannot be empty")
	}
	if r.Salary != nil && *r.Salary <= 0 {
		return errors.New("salary must be positive")
	}
	// Unlike creation, an update may set quantity to zero to close a job.
	if r.Quantity != nil && *r.Quantity < 0 {
		return errors.New("quantity must be a non-negative integer")
	}
	return nil
}

// IsEmpty reports whether the update carries no changes.
func (r *UpdateJobRequest) IsEmpty() bool {
	return r.Title == nil && r.Description == nil && r.Location == nil &&
		r.Level == nil && r.Category == nil && r.Salary == nil &&
		r.Quantity == nil && r.Visible == nil
}
