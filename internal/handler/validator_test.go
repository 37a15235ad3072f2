package handler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validatedStruct struct {
	Endpoint string `validate:"required,url,max=500"`
	Key      string `validate:"required,max=200,excludesall=\x00\n\r\t"`
	Days     int    `validate:"gte=1,lte=90"`
}

func TestValidator_EndpointValidation(t *testing.T) {
	InitValidator()
	v := GetValidator()

	tests := []struct {
		name     string
		endpoint string
		wantErr  bool
	}{
		{"valid https endpoint", "https://fcm.googleapis.com/fcm/send/abc123", false},
		{"valid mozilla endpoint", "https://updates.push.services.mozilla.com/wpush/v2/xyz", false},
		{"empty endpoint", "", true},
		{"not a url", "not-a-url", true},
		{"over max length", "https://example.com/" + strings.Repeat("a", 500), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validatedStruct{
				Endpoint: tt.endpoint,
				Key:      "validkey",
				Days:     7,
			}

			err := v.ValidateStruct(input)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_KeyValidation(t *testing.T) {
	InitValidator()
	v := GetValidator()

	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{"valid key", "BNcRdreALRFXTkOOUHK1EtK2wtaz5Ry4YfYCA_0QTpQt", false},
		{"exactly max length", strings.Repeat("a", 200), false},
		{"over max length", strings.Repeat("a", 201), true},
		{"empty key", "", true},
		{"with newline", "key\nvalue", true},
		{"with null byte", "key\x00value", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validatedStruct{
				Endpoint: "https://example.com/push",
				Key:      tt.key,
				Days:     7,
			}

			err := v.ValidateStruct(input)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidator_RangeValidation(t *testing.T) {
	InitValidator()
	v := GetValidator()

	tests := []struct {
		name    string
		days    int
		wantErr bool
	}{
		{"mid range", 30, false},
		{"at lower bound", 1, false},
		{"at upper bound", 90, false},
		{"zero", 0, true},
		{"negative", -5, true},
		{"over upper bound", 91, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validatedStruct{
				Endpoint: "https://example.com/push",
				Key:      "validkey",
				Days:     tt.days,
			}

			err := v.ValidateStruct(input)

			if tt.wantErr {
				assert.Error(t, err, "Expected validation error for days=%d", tt.days)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFormatValidationError(t *testing.T) {
	InitValidator()
	v := GetValidator()

	input := validatedStruct{
		Endpoint: "not-a-url",
		Key:      "",
		Days:     0,
	}

	err := v.ValidateStruct(input)
	require.Error(t, err)

	fields := FormatValidationError(err)
	assert.Equal(t, "Must be a valid URL", fields["endpoint"])
	assert.Equal(t, "This field is required", fields["key"])
	assert.Contains(t, fields["days"], "at least")
}
