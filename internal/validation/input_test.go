package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		valid    bool
	}{
		{"Valid simple", "alice", true},
		{"Valid with underscore", "alice_b", true},
		{"Valid with hyphen", "alice-b", true},
		{"Too short", "ab", false},
		{"Too long", strings.Repeat("a", 31), false},
		{"Invalid characters", "alice!", false},
		{"Leading underscore", "_alice", false},
		{"Trailing hyphen", "alice-", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		valid bool
	}{
		{"Valid", "alice@example.com", true},
		{"Valid with plus", "alice+tag@example.com", true},
		{"Missing at", "alice.example.com", false},
		{"Missing domain", "alice@", false},
		{"Missing TLD", "alice@example", false},
		{"Too long", strings.Repeat("a", 250) + "@x.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("Password123!"))
	assert.Error(t, ValidatePassword("short"))
	assert.Error(t, ValidatePassword(strings.Repeat("a", 129)))
}
