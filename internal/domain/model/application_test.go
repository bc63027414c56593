package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsConsumingStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status string
		want   bool
	}{
		{"accepted lowercase", "accepted", true},
		{"accepted capitalized", "Accepted", true},
		{"hired uppercase", "HIRED", true},
		{"offer", "offer", true},
		{"offer accepted with space", "Offer Accepted", true},
		{"surrounding whitespace", "  accepted  ", true},
		{"pending", "Pending", false},
		{"rejected", "Rejected", false},
		{"empty", "", false},
		{"free text", "waiting on references", false},
		{"near miss", "offer-accepted", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsConsumingStatus(tt.status))
		})
	}
}
