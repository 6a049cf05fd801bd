// Package vetconfig loads `.vet.toml` (severity floor, exclude paths,
// baseline path, user patterns, config ignores) the same viper-driven TOML
// idiom used elsewhere in this codebase for declarative configuration.
package vetconfig

import (
	"bytes"
	"fmt"

	"github.com/spf13/viper"

	"github.com/spikermint/vet/internal/registry"
	"github.com/spikermint/vet/internal/suppress"
)

// rawIgnore mirrors one [[ignore]] table entry before compilation.
type rawIgnore struct {
	Fingerprint string `mapstructure:"fingerprint"`
	PatternID   string `mapstructure:"pattern_id"`
	File        string `mapstructure:"file"`
	Reason      string `mapstructure:"reason"`
	Expr        string `mapstructure:"expr"`
}

// rawPattern mirrors one [[patterns]] table entry before compilation.
type rawPattern struct {
	ID             string   `mapstructure:"id"`
	Group          string   `mapstructure:"group"`
	Name           string   `mapstructure:"name"`
	Description    string   `mapstructure:"description"`
	Severity       string   `mapstructure:"severity"`
	Regex          string   `mapstructure:"regex"`
	SecretGroup    int      `mapstructure:"secret_group"`
	Keywords       []string `mapstructure:"keywords"`
	MinEntropy     *float64 `mapstructure:"min_entropy"`
	DefaultEnabled bool     `mapstructure:"default_enabled"`
	Verifier       string   `mapstructure:"verifier"`
	CaseSensitive  bool     `mapstructure:"case_sensitive"`
	Override       bool     `mapstructure:"override"`
}

type rawConfig struct {
	Severity         string       `mapstructure:"severity"`
	ExcludePaths     []string     `mapstructure:"exclude_paths"`
	BaselinePath     string       `mapstructure:"baseline_path"`
	RespectGitignore *bool        `mapstructure:"respect_gitignore"`
	MaxFileBytes     *int64       `mapstructure:"max_file_bytes"`
	ASTEnabled       *bool        `mapstructure:"ast_enabled"`
	EntropyGate      *bool        `mapstructure:"entropy_gate"`
	Patterns         []rawPattern `mapstructure:"patterns"`
	Ignore           []rawIgnore  `mapstructure:"ignore"`
}

// Config is the parsed, compiled form of `.vet.toml`, ready to feed into
// ScanOptions.
type Config struct {
	SeverityFloor    string
	ExcludePaths     []string
	BaselinePath     string
	RespectGitignore bool
	MaxFileBytes     int64
	ASTEnabled       bool
	EntropyGate      bool
	UserPatterns     []registry.PatternSpec
	ConfigIgnores    []suppress.ConfigIgnore
}

// DefaultMaxFileBytes is the fallback per-file size ceiling (§6): 10 MiB.
const DefaultMaxFileBytes int64 = 10 * 1024 * 1024

// Load parses TOML config bytes into a Config, compiling [[ignore]]
// expr fields and applying the defaults from §6's ScanOptions shape.
func Load(tomlBytes []byte) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")
	if err := v.ReadConfig(bytes.NewReader(tomlBytes)); err != nil {
		return nil, fmt.Errorf("vetconfig: parse .vet.toml: %w", err)
	}

	var raw rawConfig
	if err := v.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("vetconfig: decode .vet.toml: %w", err)
	}

	cfg := &Config{
		SeverityFloor:    orDefault(raw.Severity, "medium"),
		ExcludePaths:     raw.ExcludePaths,
		BaselinePath:     raw.BaselinePath,
		RespectGitignore: boolOrDefault(raw.RespectGitignore, true),
		MaxFileBytes:     int64OrDefault(raw.MaxFileBytes, DefaultMaxFileBytes),
		ASTEnabled:       boolOrDefault(raw.ASTEnabled, true),
		EntropyGate:      boolOrDefault(raw.EntropyGate, true),
	}

	for _, p := range raw.Patterns {
		cfg.UserPatterns = append(cfg.UserPatterns, registry.PatternSpec{
			ID:             p.ID,
			Group:          p.Group,
			Name:           p.Name,
			Description:    p.Description,
			Severity:       p.Severity,
			Regex:          p.Regex,
			SecretGroup:    p.SecretGroup,
			Keywords:       p.Keywords,
			MinEntropy:     p.MinEntropy,
			DefaultEnabled: p.DefaultEnabled,
			Verifier:       p.Verifier,
			CaseSensitive:  p.CaseSensitive,
			Override:       p.Override,
		})
	}

	var rawIgnores []suppress.ConfigIgnore
	for _, ig := range raw.Ignore {
		rawIgnores = append(rawIgnores, suppress.ConfigIgnore{
			Fingerprint: ig.Fingerprint,
			PatternID:   ig.PatternID,
			File:        ig.File,
			Reason:      ig.Reason,
			Expr:        ig.Expr,
		})
	}
	compiled, err := suppress.CompileConfigIgnores(rawIgnores)
	if err != nil {
		return nil, fmt.Errorf("vetconfig: .vet.toml ignore table: %w", err)
	}
	cfg.ConfigIgnores = compiled

	return cfg, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func boolOrDefault(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func int64OrDefault(p *int64, def int64) int64 {
	if p == nil || *p == 0 {
		return def
	}
	return *p
}
