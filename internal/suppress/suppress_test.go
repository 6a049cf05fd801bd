package suppress

import (
	"testing"

	"github.com/spikermint/vet/internal/domain/entities"
	"github.com/spikermint/vet/internal/domain/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseDirectives_UnrestrictedSuppressesAnyPattern(t *testing.T) {
	content := []byte("line one\nkey := \"sk_live_x\"  // vet:ignore\nline three\n")
	d := ParseDirectives(content)
	assert.True(t, d.Suppresses(2, "payments/stripe-live-key"))
	assert.False(t, d.Suppresses(1, "payments/stripe-live-key"))
}

func Test_ParseDirectives_NarrowedToOnePattern(t *testing.T) {
	content := []byte("key := \"sk_live_x\"  // vet:ignore[payments/stripe-live-key]\n")
	d := ParseDirectives(content)
	assert.True(t, d.Suppresses(1, "payments/stripe-live-key"))
	assert.False(t, d.Suppresses(1, "cloud/aws-access-key"))
}

func Test_ParseDirectives_NoDirectiveNoSuppression(t *testing.T) {
	content := []byte("key := \"sk_live_x\"\n")
	d := ParseDirectives(content)
	assert.False(t, d.Suppresses(1, "payments/stripe-live-key"))
}

func Test_LoadBaseline_RejectsUnknownVersion(t *testing.T) {
	_, err := LoadBaseline([]byte(`{"version": 99, "entries": []}`))
	assert.Error(t, err)
}

func Test_LoadBaseline_RejectsMalformedSchema(t *testing.T) {
	_, err := LoadBaseline([]byte(`{"version": 1, "entries": [{"file": "x"}]}`))
	assert.Error(t, err)
}

func Test_Baseline_SuppressesByFingerprint(t *testing.T) {
	bf := &BaselineFile{Version: 1, Entries: []BaselineEntry{
		{Fingerprint: "sha256:abc", PatternID: "payments/stripe-live-key", File: "a.go"},
	}}
	b := IndexBaseline(bf)
	assert.True(t, b.Suppresses("sha256:abc", "payments/stripe-live-key", "a.go", ""))
	assert.False(t, b.Suppresses("sha256:def", "payments/stripe-live-key", "a.go", ""))
}

func Test_Baseline_SuppressesByTripleAfterFingerprintChanges(t *testing.T) {
	secretHash := SecretHash([]byte("sk_live_abc"))
	bf := &BaselineFile{Version: 1, Entries: []BaselineEntry{
		{Fingerprint: "sha256:old", PatternID: "payments/stripe-live-key", File: "a.go", SecretHash: secretHash},
	}}
	b := IndexBaseline(bf)
	// fingerprint changed (e.g. secret moved within file) but the triple still matches
	assert.True(t, b.Suppresses("sha256:new", "payments/stripe-live-key", "a.go", secretHash))
}

func Test_CompileConfigIgnores_RejectsEmptyRule(t *testing.T) {
	_, err := CompileConfigIgnores([]ConfigIgnore{{Reason: "no matchable field"}})
	assert.Error(t, err)
}

func Test_ConfigIgnore_AllDeclaredFieldsMustMatch(t *testing.T) {
	ignores, err := CompileConfigIgnores([]ConfigIgnore{
		{PatternID: "payments/stripe-test-key", File: "tests/fixtures/payments.py"},
	})
	require.NoError(t, err)

	assert.True(t, MatchesAny(ignores, FindingEnv{PatternID: "payments/stripe-test-key", File: "tests/fixtures/payments.py"}))
	assert.False(t, MatchesAny(ignores, FindingEnv{PatternID: "payments/stripe-test-key", File: "other.py"}))
}

func Test_ConfigIgnore_ExprNarrowsMatch(t *testing.T) {
	ignores, err := CompileConfigIgnores([]ConfigIgnore{
		{Expr: `severity == "low"`},
	})
	require.NoError(t, err)

	assert.True(t, MatchesAny(ignores, FindingEnv{Severity: "low"}))
	assert.False(t, MatchesAny(ignores, FindingEnv{Severity: "critical"}))
}

func Test_Resolver_UnionOfAllThreeSources(t *testing.T) {
	sev := values.MustSeverity("critical")
	pid := values.MustPatternID("payments/stripe-live-key")

	inline := entities.Finding{Fingerprint: values.MustFingerprint("sha256:" + zeros()), PatternID: pid, Severity: sev, Location: entities.Location{Path: "a.go", Line: 2}}
	configured := entities.Finding{Fingerprint: values.MustFingerprint("sha256:" + onesHex()), PatternID: pid, Severity: sev, Location: entities.Location{Path: "tests/fixtures/payments.py", Line: 1}}
	survivor := entities.Finding{Fingerprint: values.MustFingerprint("sha256:" + twosHex()), PatternID: pid, Severity: sev, Location: entities.Location{Path: "z.go", Line: 5}}

	directives := map[string]Directives{"a.go": {2: nil}}
	ignores, err := CompileConfigIgnores([]ConfigIgnore{{File: "tests/fixtures/payments.py"}})
	require.NoError(t, err)

	r := &Resolver{ConfigIgnores: ignores, Baseline: IndexBaseline(nil)}
	out, counts := r.Resolve([]entities.Finding{inline, configured, survivor}, directives, nil)

	require.Len(t, out, 1)
	assert.Equal(t, "z.go", out[0].Location.Path)
	assert.Equal(t, 1, counts[SourceInline])
	assert.Equal(t, 1, counts[SourceConfig])
}

func zeros() string { return repeatHex("0") }
func onesHex() string { return repeatHex("1") }
func twosHex() string { return repeatHex("2") }

func repeatHex(c string) string {
	out := ""
	for i := 0; i < 64; i++ {
		out += c
	}
	return out
}
