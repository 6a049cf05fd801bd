package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewSeverity(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Severity
		wantErr bool
	}{
		{"low", "low", SevLow, false},
		{"medium", "medium", SevMedium, false},
		{"high", "high", SevHigh, false},
		{"critical", "critical", SevCritical, false},
		{"uppercase", "CRITICAL", SevCritical, false},
		{"whitespace", "  high  ", SevHigh, false},
		{"invalid", "severe", Severity{}, true},
		{"empty", "", Severity{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewSeverity(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want))
		})
	}
}

func Test_Severity_AtLeast(t *testing.T) {
	assert.True(t, SevCritical.AtLeast(SevMedium))
	assert.True(t, SevMedium.AtLeast(SevMedium))
	assert.False(t, SevLow.AtLeast(SevMedium))
}

func Test_Severity_Higher(t *testing.T) {
	assert.True(t, SevHigh.Higher(SevMedium))
	assert.False(t, SevMedium.Higher(SevHigh))
	assert.False(t, SevMedium.Higher(SevMedium))
}

func Test_Severity_JSON_RoundTrip(t *testing.T) {
	b, err := SevHigh.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"high"`, string(b))

	var sev Severity
	require.NoError(t, sev.UnmarshalJSON(b))
	assert.True(t, sev.Equal(SevHigh))
}
