package vet

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Scan_PublicAPIEndToEnd(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "config.py"),
		[]byte("stripe_key = \"sk_live_51NzKDwH3JxMvRtYbUcE8q\"\n"),
		0o644,
	))

	opts := DefaultScanOptions()
	opts.ASTEnabled = false
	opts.UserPatterns = []PatternSpec{{
		ID:             "payments/stripe-live-key",
		Severity:       "critical",
		Regex:          `(sk_live_[A-Za-z0-9]{16,})`,
		Keywords:       []string{"sk_live_"},
		DefaultEnabled: true,
	}}

	result, err := Scan(context.Background(), []string{dir}, opts)
	require.NoError(t, err)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, "sk…8q", result.Findings[0].SecretPreview)
}

func Test_Verifier_VerifiesAnOptInFindingViaPublicAPI(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "config.py"),
		[]byte("stripe_key = \"sk_live_51NzKDwH3JxMvRtYbUcE8q\"\n"),
		0o644,
	))

	opts := DefaultScanOptions()
	opts.ASTEnabled = false
	opts.UserPatterns = []PatternSpec{{
		ID:             "payments/stripe-live-key",
		Severity:       "critical",
		Regex:          `(sk_live_[A-Za-z0-9]{16,})`,
		Keywords:       []string{"sk_live_"},
		DefaultEnabled: true,
		Verifier:       "stripe",
	}}

	result, err := Scan(context.Background(), []string{dir}, opts)
	require.NoError(t, err)
	require.Len(t, result.Findings, 1)
	require.True(t, result.Findings[0].Verifiable)

	calls := 0
	verifiers := map[VerifierHandle]VerifyFunc{
		"stripe": func(ctx context.Context, secret []byte) (Verification, error) {
			calls++
			return Verification{Status: "live"}, nil
		},
	}
	v := NewVerifier(verifiers, 1)

	got := v.Verify(context.Background(), result.Findings[0], []byte("sk_live_51NzKDwH3JxMvRtYbUcE8q"))
	assert.Equal(t, "live", string(got.Status))
	assert.Equal(t, 1, calls)
}

func Test_Verifier_UnverifiableFindingSkipsProbe(t *testing.T) {
	v := NewVerifier(DefaultVerifiers(), 1)
	f := Finding{Verifiable: false}
	got := v.Verify(context.Background(), f, []byte("x"))
	assert.Equal(t, "unverified", string(got.Status))
}

func Test_LoadConfig_MergesIntoOptions(t *testing.T) {
	opts := DefaultScanOptions()
	opts, err := LoadConfig(opts, []byte(`severity = "high"`+"\n"))
	require.NoError(t, err)
	assert.Equal(t, "high", opts.SeverityFloor)
}

func Test_LoadBaseline_RoundTrips(t *testing.T) {
	bf, err := LoadBaseline([]byte(`{"version": 1, "entries": [{"fingerprint": "sha256:` + hex64() + `", "pattern_id": "p/x", "file": "a.go"}]}`))
	require.NoError(t, err)
	assert.Len(t, bf.Entries, 1)
}

func hex64() string {
	out := ""
	for i := 0; i < 64; i++ {
		out += "a"
	}
	return out
}
