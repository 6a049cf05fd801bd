// Package vet is the public entry point for the secrets-detection scan
// pipeline: pattern registry, prefilter, regex and structural matchers,
// entropy gating, fingerprinting/dedup, and suppression resolution.
//
// CLI argument parsing, output formatting (human/JSON/SARIF), editor
// transport, and git plumbing are deliberately not part of this package;
// see cmd/vet for a minimal example caller.
package vet

import (
	"context"
	"fmt"

	"github.com/spikermint/vet/internal/domain/entities"
	"github.com/spikermint/vet/internal/registry"
	"github.com/spikermint/vet/internal/scan"
	"github.com/spikermint/vet/internal/suppress"
	"github.com/spikermint/vet/internal/verify"
	"github.com/spikermint/vet/internal/vetconfig"
)

// Re-exported types so callers never need to import internal packages.
type (
	Finding        = entities.Finding
	Location       = entities.Location
	Verification   = entities.Verification
	VerifierHandle = entities.VerifierHandle
	VerifyFunc     = verify.VerifyFunc
	PatternSpec    = registry.PatternSpec
	ConfigIgnore   = suppress.ConfigIgnore
	BaselineFile   = suppress.BaselineFile
	BaselineEntry  = suppress.BaselineEntry
)

// ScanOptions configures one Scan call; see §6 for the canonical shape.
type ScanOptions struct {
	SeverityFloor    string
	DisabledPatterns []string
	EnabledPatterns  []string
	ExcludePaths     []string
	RespectGitignore bool
	Baseline         *BaselineFile
	Ignores          []ConfigIgnore
	MaxFileBytes     int64
	ASTEnabled       bool
	EntropyGate      bool
	UserPatterns     []PatternSpec
	ScanRoot         string
}

// DefaultScanOptions returns the §6 defaults: severity_floor=medium,
// respect_gitignore=true, max_file_bytes=10MiB, ast_enabled=true,
// entropy_gate=true.
func DefaultScanOptions() ScanOptions {
	d := scan.DefaultOptions()
	return ScanOptions{
		SeverityFloor:    d.SeverityFloor,
		RespectGitignore: d.RespectGitignore,
		MaxFileBytes:     d.MaxFileBytes,
		ASTEnabled:       d.ASTEnabled,
		EntropyGate:      d.EntropyGate,
	}
}

// Result is the outcome of one Scan call.
type Result struct {
	Findings         []Finding
	Diagnostics      []error
	SuppressedCounts map[string]int
}

// LoadConfig parses a `.vet.toml` document and folds it into opts, with
// fields already set on opts taking precedence over the file.
func LoadConfig(opts ScanOptions, tomlBytes []byte) (ScanOptions, error) {
	cfg, err := vetconfig.Load(tomlBytes)
	if err != nil {
		return opts, err
	}
	merged := scan.FromConfig(toInternalOptions(opts), cfg)
	return fromInternalOptions(merged), nil
}

// LoadBaseline parses and validates a `.vet-baseline.json` document.
func LoadBaseline(data []byte) (*BaselineFile, error) {
	return suppress.LoadBaseline(data)
}

// Verifier runs the optional, asynchronous liveness probes of §4.8.
// Verification is opt-in per finding (§6): Scan never calls a Verifier on
// its own, since doing so would make an outbound network request per
// credential-shaped finding without the caller's consent.
type Verifier struct {
	dispatcher *verify.Dispatcher
}

// DefaultVerifiers returns the built-in verifier table (Stripe, GitHub
// token). Callers extend or replace it before passing it to NewVerifier.
func DefaultVerifiers() map[VerifierHandle]VerifyFunc {
	return verify.BuiltinVerifiers()
}

// NewVerifier builds a Verifier bounding concurrent outbound probes to
// concurrency (default 4 when <= 0), independent of the scan worker pool.
func NewVerifier(verifiers map[VerifierHandle]VerifyFunc, concurrency int) *Verifier {
	return &Verifier{dispatcher: verify.NewDispatcher(verifiers, concurrency)}
}

// Verify runs the liveness probe registered for f's pattern against secret,
// which the caller must supply since a Finding never retains raw secret
// bytes past fingerprinting. A finding with no registered verifier (nil
// VerifierHandle, or Verifiable == false) is returned as unverified rather
// than probed.
func (v *Verifier) Verify(ctx context.Context, f Finding, secret []byte) Verification {
	if !f.Verifiable || f.VerifierHandle == "" {
		return Verification{Status: entities.VerificationUnverified}
	}
	return v.dispatcher.Verify(ctx, f.VerifierHandle, f.Fingerprint.String(), secret)
}

// Invalidate drops a cached verification result for f, so the next Verify
// call re-enters the state machine from unverified instead of replaying the
// cached terminal state.
func (v *Verifier) Invalidate(f Finding) {
	v.dispatcher.Invalidate(f.Fingerprint.String())
}

// Scan walks roots and runs the full detection pipeline, returning every
// un-suppressed finding. ctx governs cancellation: it is checked between
// files and bounds each file's regex+AST pass with a soft per-file budget.
func Scan(ctx context.Context, roots []string, opts ScanOptions) (Result, error) {
	engine, err := scan.New(toInternalOptions(opts))
	if err != nil {
		return Result{}, fmt.Errorf("vet: %w", err)
	}

	internalResult, err := engine.Scan(ctx, roots)
	if err != nil {
		return Result{}, fmt.Errorf("vet: %w", err)
	}

	counts := make(map[string]int, len(internalResult.SuppressedCounts))
	for source, n := range internalResult.SuppressedCounts {
		counts[string(source)] = n
	}

	return Result{
		Findings:         internalResult.Findings,
		Diagnostics:      internalResult.Diagnostics,
		SuppressedCounts: counts,
	}, nil
}

func toInternalOptions(opts ScanOptions) scan.Options {
	return scan.Options{
		SeverityFloor:    opts.SeverityFloor,
		DisabledPatterns: opts.DisabledPatterns,
		EnabledPatterns:  opts.EnabledPatterns,
		ExcludePaths:     opts.ExcludePaths,
		RespectGitignore: opts.RespectGitignore,
		Baseline:         opts.Baseline,
		Ignores:          opts.Ignores,
		MaxFileBytes:     opts.MaxFileBytes,
		ASTEnabled:       opts.ASTEnabled,
		EntropyGate:      opts.EntropyGate,
		UserPatterns:     opts.UserPatterns,
		ScanRoot:         opts.ScanRoot,
	}
}

func fromInternalOptions(o scan.Options) ScanOptions {
	return ScanOptions{
		SeverityFloor:    o.SeverityFloor,
		DisabledPatterns: o.DisabledPatterns,
		EnabledPatterns:  o.EnabledPatterns,
		ExcludePaths:     o.ExcludePaths,
		RespectGitignore: o.RespectGitignore,
		Baseline:         o.Baseline,
		Ignores:          o.Ignores,
		MaxFileBytes:     o.MaxFileBytes,
		ASTEnabled:       o.ASTEnabled,
		EntropyGate:      o.EntropyGate,
		UserPatterns:     o.UserPatterns,
		ScanRoot:         o.ScanRoot,
	}
}
