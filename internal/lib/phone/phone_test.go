package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValid(t *testing.T) {
	tests := []struct {
		number string
		want   bool
	}{
		{"+15551234567", true},
		{"15551234567", false},
		{"+1", false},
		{"+123456789012345", true},
		{"+1234567890123456", false},
		{"+1234567890", true},
		{"+123456789", false},
		{"+1555123456a", false},
		{"+1555 123 4567", false},
		{"", false},
		{"+", false},
		{"++15551234567", false},
	}

	for _, tt := range tests {
		t.Run(tt.number, func(t *testing.T) {
			assert.Equal(t, tt.want, Valid(tt.number))
		})
	}
}

func TestNewValidator_WhatsappTag(t *testing.T) {
	type req struct {
		Number string `validate:"omitempty,whatsapp"`
	}
	v := NewValidator()

	assert.NoError(t, v.Struct(req{Number: "+15551234567"}))
	assert.NoError(t, v.Struct(req{}))
	assert.Error(t, v.Struct(req{Number: "15551234567"}))
}
