// Package scan orchestrates the full detection pipeline (§5): walking
// files, running prefilter→matcher→astscan→entropy→fingerprint per file on
// a bounded worker pool, then deduping and resolving suppression across the
// whole scan.
package scan

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/spikermint/vet/internal/astscan"
	"github.com/spikermint/vet/internal/domain/entities"
	"github.com/spikermint/vet/internal/domain/values"
	"github.com/spikermint/vet/internal/entropy"
	"github.com/spikermint/vet/internal/fingerprint"
	"github.com/spikermint/vet/internal/matcher"
	"github.com/spikermint/vet/internal/registry"
	"github.com/spikermint/vet/internal/suppress"
	"github.com/spikermint/vet/internal/walk"
)

// perFileSoftBudget is the soft CPU deadline a single file's regex+AST pass
// is given before the scan moves on, so one pathological file can never
// stall an interactive scan.
const perFileSoftBudget = 50 * time.Millisecond

// Result is everything a scan produces: the suppressed-and-deduped finding
// stream plus diagnostics and suppression telemetry.
type Result struct {
	Findings         []entities.Finding
	Diagnostics      []error
	SuppressedCounts suppress.Counts
}

// Engine is a compiled, ready-to-run scan: registry, matcher, and resolved
// options. Building it once and reusing it across multiple Scan calls
// avoids recompiling the pattern registry and automaton per call.
type Engine struct {
	registry      *registry.Registry
	matcher       *registry.Matcher
	opts          Options
	severityFloor values.Severity
}

// New compiles an Engine from Options.
func New(opts Options) (*Engine, error) {
	reg, err := registry.LoadDefault(opts.UserPatterns)
	if err != nil {
		return nil, fmt.Errorf("scan: registry load: %w", err)
	}

	severityFloor, err := severityFromString(opts.SeverityFloor)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	m := reg.Enabled(registry.EnabledOptions{
		SeverityFloor: severityFloor,
		DisabledIDs:   toSet(opts.DisabledPatterns),
		EnabledIDs:    toSet(opts.EnabledPatterns),
	})

	return &Engine{registry: reg, matcher: m, opts: opts, severityFloor: severityFloor}, nil
}

func severityFromString(s string) (values.Severity, error) {
	if s == "" {
		return values.Severity{}, nil
	}
	return values.NewSeverity(s)
}

func toSet(ids []string) map[string]bool {
	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out
}

// Scan walks roots and runs the full pipeline, honoring ctx for
// cancellation between files and across the soft per-file budget.
func (e *Engine) Scan(ctx context.Context, roots []string) (Result, error) {
	files, walkDiagnostics := walk.Walk(roots, walk.Options{
		ExcludePaths:     e.opts.ExcludePaths,
		RespectGitignore: e.opts.RespectGitignore,
		MaxFileBytes:     e.opts.MaxFileBytes,
	})

	acc := newAccumulator()
	acc.diagnostics = append(acc.diagnostics, walkDiagnostics...)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, f := range files {
		f := f
		g.Go(func() error {
			select {
			case <-gCtx.Done():
				return nil
			default:
			}
			e.scanFile(gCtx, f, acc)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	if ctx.Err() != nil {
		acc.diagnostics = append(acc.diagnostics, &entities.CancelledError{})
	}

	findings := acc.deduper.Findings()

	resolver := suppress.Resolver{
		ConfigIgnores: e.opts.Ignores,
		Baseline:      suppress.IndexBaseline(e.opts.Baseline),
	}
	survivors, counts := resolver.Resolve(findings, acc.directivesByFile(), acc.secretHashByFingerprint())

	return Result{
		Findings:         survivors,
		Diagnostics:      acc.diagnostics,
		SuppressedCounts: counts,
	}, nil
}

// scanFile runs the single-file pipeline: read, prefilter+matcher, optional
// AST extraction, entropy gate, cross-pattern resolve, fingerprint, dedup.
// Errors are recorded as diagnostics rather than aborting the whole scan.
func (e *Engine) scanFile(ctx context.Context, f walk.File, acc *accumulator) {
	content, err := os.ReadFile(f.AbsPath)
	if err != nil {
		acc.addDiagnostic(&entities.IoError{Path: f.AbsPath, Err: err})
		return
	}

	budgetCtx, cancel := context.WithTimeout(ctx, perFileSoftBudget)
	defer cancel()

	candidates := matcher.Scan(budgetCtx, e.matcher, content)

	if e.opts.ASTEnabled && astSeverityAllowed(e.severityFloor) {
		if lang, ok := languageFor(f.AbsPath); ok {
			astCandidates, err := astscan.Scan(budgetCtx, lang, content, f.AbsPath)
			if err != nil {
				acc.addDiagnostic(err)
				slog.Debug("scan: ast extraction skipped, falling back to regex-only", "path", f.AbsPath, "error", err)
			}
			candidates = append(candidates, astCandidatesToMatcherCandidates(lang, astCandidates)...)
		}
	}

	if e.opts.EntropyGate {
		candidates = filterByEntropy(candidates)
	}

	candidates = fingerprint.ResolveCrossPattern(candidates)
	acc.addDirectives(fingerprint.NormalizePath(e.opts.ScanRoot, f.AbsPath), suppress.ParseDirectives(content))

	for _, c := range candidates {
		finding := fingerprint.Build(c, f.AbsPath, e.opts.ScanRoot)
		acc.addFinding(finding, suppress.SecretHash(c.Secret))
	}
}

func filterByEntropy(candidates []matcher.Candidate) []matcher.Candidate {
	out := make([]matcher.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if entropy.Accept(c.Secret, c.Pattern.MinEntropy) {
			out = append(out, c)
		}
	}
	return out
}

// genericASTSeverity and genericASTMinEntropy are fixed defaults applied to
// every AST-derived candidate (§4.4): these are heuristic identifier-name
// matches, never a confirmed provider-specific shape.
var (
	genericASTSeverity   = values.MustSeverity("medium")
	genericASTMinEntropy = 3.0
)

// astSeverityAllowed reports whether AST extraction could produce any
// finding that survives the given severity floor. Every AST candidate is
// assigned the fixed genericASTSeverity, so once floor exceeds it, running
// the AST pass at all could only ever waste CPU: the whole pass is skipped
// to keep "raising severity_floor only removes findings" (§8 invariant #5)
// true for AST the same way it already is for the regex catalogue, where
// Registry.Enabled drops patterns below the floor before the matcher runs.
func astSeverityAllowed(floor values.Severity) bool {
	return floor.IsZero() || genericASTSeverity.AtLeast(floor)
}

func astCandidatesToMatcherCandidates(language string, ast []astscan.Candidate) []matcher.Candidate {
	if len(ast) == 0 {
		return nil
	}

	group, _ := values.NewGroup("custom")
	id := values.MustPatternID(astscan.PatternID(language))
	pattern := entities.Pattern{
		ID:         id,
		Group:      group,
		Name:       "Generic " + language + " identifier",
		Severity:   genericASTSeverity,
		MinEntropy: &genericASTMinEntropy,
	}

	out := make([]matcher.Candidate, 0, len(ast))
	for _, c := range ast {
		out = append(out, matcher.Candidate{
			Pattern:    pattern,
			Secret:     c.Secret,
			ByteOffset: c.ByteOffset,
			MatchStart: c.MatchStart,
			MatchEnd:   c.MatchEnd,
			Line:       c.Line,
			Column:     c.Column,
		})
	}
	return out
}

// accumulator is the concurrency-safe collector every scan worker writes
// into: the deduper, diagnostics, per-file inline directives, and the
// fingerprint->secret_hash side table the suppression resolver needs for
// the baseline triple match (findings themselves never carry raw secret
// bytes past this point).
type accumulator struct {
	mu          sync.Mutex
	deduper     *fingerprint.Deduper
	diagnostics []error
	directives  map[string]suppress.Directives
	secretHash  map[string]string
}

func newAccumulator() *accumulator {
	return &accumulator{
		deduper:    fingerprint.NewDeduper(),
		directives: make(map[string]suppress.Directives),
		secretHash: make(map[string]string),
	}
}

func (a *accumulator) addFinding(f entities.Finding, secretHash string) {
	a.deduper.Add(f)
	a.mu.Lock()
	a.secretHash[f.Fingerprint.String()] = secretHash
	a.mu.Unlock()
}

func (a *accumulator) addDirectives(path string, d suppress.Directives) {
	a.mu.Lock()
	a.directives[path] = d
	a.mu.Unlock()
}

func (a *accumulator) addDiagnostic(err error) {
	a.mu.Lock()
	a.diagnostics = append(a.diagnostics, err)
	a.mu.Unlock()
}

func (a *accumulator) directivesByFile() map[string]suppress.Directives {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.directives
}

func (a *accumulator) secretHashByFingerprint() map[string]string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.secretHash
}
