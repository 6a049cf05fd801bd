package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewPatternID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "payments/stripe-live-key", false},
		{"valid custom", "custom/internal-token", false},
		{"no slash", "stripelivekey", true},
		{"empty group", "/stripe-live-key", true},
		{"empty name", "payments/", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := NewPatternID(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, id.String())
		})
	}
}

func Test_PatternID_Group(t *testing.T) {
	id := MustPatternID("payments/stripe-live-key")
	assert.Equal(t, "payments", id.Group())
}
