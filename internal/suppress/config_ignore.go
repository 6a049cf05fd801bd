package suppress

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// FindingEnv exposes finding metadata to an optional config-ignore
// expression, the same expr-lang evaluation environment idiom used for
// control filtering elsewhere in this codebase.
type FindingEnv struct {
	Fingerprint string `expr:"fingerprint"`
	PatternID   string `expr:"pattern_id"`
	Severity    string `expr:"severity"`
	File        string `expr:"file"`
}

// ConfigIgnore declares a static suppression rule from `.vet.toml`'s
// [[ignore]] table. Every non-empty declared field must match; Expr, when
// set, is compiled once at load time and evaluated per finding.
type ConfigIgnore struct {
	Fingerprint string
	PatternID   string
	File        string
	Reason      string
	Expr        string

	program *vm.Program
}

// CompileConfigIgnores validates and compiles a batch of config ignores.
// Each entry must declare at least one matchable field (fingerprint,
// pattern_id, file, or expr); an entry with none is a load-time error,
// since it would either match nothing or, worse, match everything.
func CompileConfigIgnores(raw []ConfigIgnore) ([]ConfigIgnore, error) {
	out := make([]ConfigIgnore, len(raw))
	for i, ci := range raw {
		if ci.Fingerprint == "" && ci.PatternID == "" && ci.File == "" && ci.Expr == "" {
			return nil, fmt.Errorf("suppress: config ignore %d declares no matchable field", i)
		}
		if ci.Expr != "" {
			program, err := expr.Compile(ci.Expr, expr.Env(FindingEnv{}), expr.AsBool())
			if err != nil {
				return nil, fmt.Errorf("suppress: config ignore %d: invalid expr: %w", i, err)
			}
			ci.program = program
		}
		out[i] = ci
	}
	return out, nil
}

// Matches reports whether ci suppresses a finding with the given fields.
func (ci ConfigIgnore) Matches(env FindingEnv) bool {
	if ci.Fingerprint != "" && ci.Fingerprint != env.Fingerprint {
		return false
	}
	if ci.PatternID != "" && ci.PatternID != env.PatternID {
		return false
	}
	if ci.File != "" && ci.File != env.File {
		return false
	}
	if ci.program != nil {
		output, err := expr.Run(ci.program, env)
		if err != nil {
			return false
		}
		result, ok := output.(bool)
		if !ok || !result {
			return false
		}
	}
	return true
}

// MatchesAny reports whether any config ignore suppresses env.
func MatchesAny(ignores []ConfigIgnore, env FindingEnv) bool {
	for _, ci := range ignores {
		if ci.Matches(env) {
			return true
		}
	}
	return false
}
