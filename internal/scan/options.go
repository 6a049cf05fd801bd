package scan

import (
	"github.com/spikermint/vet/internal/registry"
	"github.com/spikermint/vet/internal/suppress"
	"github.com/spikermint/vet/internal/vetconfig"
)

// Options mirrors the public ScanOptions shape (§6). ScanRoot, when set,
// makes fingerprinted paths relative to it instead of absolute.
type Options struct {
	SeverityFloor    string
	DisabledPatterns []string
	EnabledPatterns  []string
	ExcludePaths     []string
	RespectGitignore bool
	Baseline         *suppress.BaselineFile
	Ignores          []suppress.ConfigIgnore
	MaxFileBytes     int64
	ASTEnabled       bool
	EntropyGate      bool
	UserPatterns        []registry.PatternSpec
	ScanRoot            string
	VerifierConcurrency int
}

// DefaultOptions mirrors §6's defaults.
func DefaultOptions() Options {
	return Options{
		SeverityFloor:    "medium",
		RespectGitignore: true,
		MaxFileBytes:     vetconfig.DefaultMaxFileBytes,
		ASTEnabled:       true,
		EntropyGate:      true,
	}
}

// FromConfig merges a parsed .vet.toml into Options, config values losing
// to any field the caller already set explicitly on opts.
func FromConfig(opts Options, cfg *vetconfig.Config) Options {
	if opts.SeverityFloor == "" {
		opts.SeverityFloor = cfg.SeverityFloor
	}
	if opts.ExcludePaths == nil {
		opts.ExcludePaths = cfg.ExcludePaths
	}
	if opts.MaxFileBytes == 0 {
		opts.MaxFileBytes = cfg.MaxFileBytes
	}
	opts.RespectGitignore = cfg.RespectGitignore
	opts.ASTEnabled = cfg.ASTEnabled
	opts.EntropyGate = cfg.EntropyGate
	opts.UserPatterns = append(opts.UserPatterns, cfg.UserPatterns...)
	opts.Ignores = append(opts.Ignores, cfg.ConfigIgnores...)
	return opts
}
