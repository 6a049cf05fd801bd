package matcher

import (
	"context"
	"testing"

	"github.com/spikermint/vet/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stripeMatcher(t *testing.T) *registry.Matcher {
	t.Helper()
	reg, err := registry.Load(nil, []registry.PatternSpec{{
		ID:             "payments/stripe-live-key",
		Severity:       "critical",
		Regex:          `(sk_live_[A-Za-z0-9]{16,})`,
		Keywords:       []string{"sk_live_"},
		DefaultEnabled: true,
	}})
	require.NoError(t, err)
	return reg.Enabled(registry.EnabledOptions{})
}

func Test_Scan_FindsSecretAndLocation(t *testing.T) {
	m := stripeMatcher(t)
	content := []byte("line one\nkey := \"sk_live_51NzKDwH3JxMvRtYbUcE8q\"\n")

	got := Scan(context.Background(), m, content)
	require.Len(t, got, 1)
	assert.Equal(t, "sk_live_51NzKDwH3JxMvRtYbUcE8q", string(got[0].Secret))
	assert.Equal(t, 2, got[0].Line)
}

func Test_Scan_NoCandidatesWhenKeywordAbsent(t *testing.T) {
	m := stripeMatcher(t)
	got := Scan(context.Background(), m, []byte("nothing interesting here"))
	assert.Empty(t, got)
}

func Test_Scan_OrdersByByteOffsetThenPatternID(t *testing.T) {
	reg, err := registry.Load(nil, []registry.PatternSpec{
		{ID: "custom/a-token", Severity: "low", Regex: `(A_TOK_[0-9]{4})`, Keywords: []string{"A_TOK_"}, DefaultEnabled: true},
		{ID: "custom/b-token", Severity: "low", Regex: `(B_TOK_[0-9]{4})`, Keywords: []string{"B_TOK_"}, DefaultEnabled: true},
	})
	require.NoError(t, err)
	m := reg.Enabled(registry.EnabledOptions{})

	content := []byte("B_TOK_1234 then later A_TOK_5678")
	got := Scan(context.Background(), m, content)
	require.Len(t, got, 2)
	assert.Less(t, got[0].ByteOffset, got[1].ByteOffset)
	assert.Equal(t, "custom/b-token", got[0].Pattern.ID.String())
}

func Test_Scan_SameOffsetTieBreakKeepsLongestCapture(t *testing.T) {
	reg, err := registry.Load(nil, []registry.PatternSpec{{
		ID:             "custom/greedy-token",
		Severity:       "low",
		Regex:          `(TOK_[0-9]+)-?`,
		Keywords:       []string{"TOK_"},
		DefaultEnabled: true,
	}})
	require.NoError(t, err)
	m := reg.Enabled(registry.EnabledOptions{})

	got := Scan(context.Background(), m, []byte("TOK_123456"))
	require.Len(t, got, 1)
	assert.Equal(t, "TOK_123456", string(got[0].Secret))
}

func Test_Scan_DistinctOffsetsSamePatternKeptSeparately(t *testing.T) {
	m := stripeMatcher(t)
	content := []byte("sk_live_51NzKDwH3JxMvRtYbUcE8q and sk_live_99AbCdEfGhIjKlMnOpQr")

	got := Scan(context.Background(), m, content)
	assert.Len(t, got, 2)
}

func Test_Scan_StopsEvaluatingPatternsOnceContextIsDone(t *testing.T) {
	reg, err := registry.Load(nil, []registry.PatternSpec{
		{ID: "custom/a-token", Severity: "low", Regex: `(A_TOK_[0-9]{4})`, Keywords: []string{"A_TOK_"}, DefaultEnabled: true},
		{ID: "custom/b-token", Severity: "low", Regex: `(B_TOK_[0-9]{4})`, Keywords: []string{"B_TOK_"}, DefaultEnabled: true},
	})
	require.NoError(t, err)
	m := reg.Enabled(registry.EnabledOptions{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := Scan(ctx, m, []byte("A_TOK_1234 and B_TOK_5678"))
	assert.Empty(t, got, "an already-exceeded budget must stop pattern evaluation before any regex runs")
}
