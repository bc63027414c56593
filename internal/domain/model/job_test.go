package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateJobRequest() CreateJobRequest {
	return CreateJobRequest{
		CompanyID:   "company-1",
		Title:       "Backend Engineer",
		Description: "Build and run the API",
		Location:    "Ha Noi",
		Level:       "Senior",
		Category:    "Engineering",
		Salary:      2500,
		Quantity:    3,
	}
}

func TestCreateJobRequest_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		req := validCreateJobRequest()
		require.NoError(t, req.Validate())
	})

	mutations := []struct {
		name   string
		mutate func(*CreateJobRequest)
	}{
		{"missing title", func(r *CreateJobRequest) { r.Title = "  " }},
		{"missing description", func(r *CreateJobRequest) { r.Description = "" }},
		{"missing location", func(r *CreateJobRequest) { r.Location = "" }},
		{"missing level", func(r *CreateJobRequest) { r.Level = "" }},
		{"missing category", func(r *CreateJobRequest) { r.Category = "" }},
		{"zero salary", func(r *CreateJobRequest) { r.Salary = 0 }},
		{"negative quantity", func(r *CreateJobRequest) { r.Quantity = -1 }},
	}

	for _, tt := range mutations {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := validCreateJobRequest()
			tt.mutate(&req)
			assert.Error(t, req.Validate())
		})
	}
}

func TestCreateJobRequest_Normalize_DefaultsQuantity(t *testing.T) {
	t.Parallel()

	req := validCreateJobRequest()
	req.Quantity = 0
	req.Title = "  Backend Engineer  "
	req.Normalize()

	assert.Equal(t, 1, req.Quantity)
	assert.Equal(t, "Backend Engineer", req.Title)
}

func TestUpdateJobRequest_Validate(t *testing.T) {
	t.Parallel()

	zero := 0
	negative := -2
	empty := ""

	t.Run("quantity may be zero", func(t *testing.T) {
		t.Parallel()
		req := UpdateJobRequest{Quantity: &zero}
		assert.NoError(t, req.Validate())
	})

	t.Run("quantity may not be negative", func(t *testing.T) {
		t.Parallel()
		req := UpdateJobRequest{Quantity: &negative}
		assert.Error(t, req.Validate())
	})

	t.Run("title may not be blanked", func(t *testing.T) {
		t.Parallel()
		req := UpdateJobRequest{Title: &empty}
		assert.Error(t, req.Validate())
	})

	t.Run("empty update is valid and empty", func(t *testing.T) {
		t.Parallel()
		req := UpdateJobRequest{}
		assert.NoError(t, req.Validate())
		assert.True(t, req.IsEmpty())
	})
}

func TestJob_HasOpenSlots(t *testing.T) {
	t.Parallel()

	assert.True(t, (&Job{Quantity: 1}).HasOpenSlots())
	assert.False(t, (&Job{Quantity: 0}).HasOpenSlots())
}
