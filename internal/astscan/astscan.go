// Package astscan implements the structural/generic-identifier extractor
// (§4.4): for languages with an available tree-sitter grammar, it walks the
// parse tree looking for string literals assigned to an identifier whose
// name suggests a secret (password, api_key, token, secret, access_key and
// common variants), case-insensitive, separators stripped.
package astscan

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tsgo "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tsjava "github.com/tree-sitter/tree-sitter-java/bindings/go"
	tsjavascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tspython "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tsruby "github.com/tree-sitter/tree-sitter-ruby/bindings/go"
	tsrust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tstypescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/spikermint/vet/internal/domain/entities"
	"github.com/spikermint/vet/internal/domain/values"
)

// Candidate mirrors matcher.Candidate's shape for a structurally-derived
// secret: a string literal bound to a suspicious identifier.
type Candidate struct {
	Language   string
	Secret     []byte
	ByteOffset int
	MatchStart int
	MatchEnd   int
	Line       int
	Column     int
}

// SyntheticSeverity is the fixed severity for every AST-derived candidate
// (§4.4): these are heuristic, identifier-name-driven matches, never a
// confirmed provider-specific secret shape, so they never exceed medium.
var SyntheticSeverity = values.MustSeverity("medium")

// identifierPattern matches generic secret-bearing identifier names after
// lowercasing and separator stripping: password, api_key, token, secret,
// access_key and the common spellings thereof.
var identifierPattern = regexp.MustCompile(`(password|passwd|pwd|apikey|api|accesskey|secret|token|credential)`)

// grammar bundles a compiled tree-sitter language together with the node
// kinds this extractor needs to recognize for that language, since node
// grammar names vary (e.g. Go's "short_var_declaration" vs Python's
// "assignment").
type grammar struct {
	language        *sitter.Language
	assignmentKinds map[string]bool // node kind names that represent "name = value"
	stringKinds     map[string]bool // node kind names that represent a string literal
}

// capabilities is the per-language grammar table. A language absent here, or
// whose grammar fails to load, degrades gracefully: the file simply isn't
// AST-scanned and falls back to regex-only coverage.
var capabilities = map[string]func() *sitter.Language{
	"go":         func() *sitter.Language { return sitter.NewLanguage(tsgo.Language()) },
	"rust":       func() *sitter.Language { return sitter.NewLanguage(tsrust.Language()) },
	"python":     func() *sitter.Language { return sitter.NewLanguage(tspython.Language()) },
	"java":       func() *sitter.Language { return sitter.NewLanguage(tsjava.Language()) },
	"ruby":       func() *sitter.Language { return sitter.NewLanguage(tsruby.Language()) },
	"javascript": func() *sitter.Language { return sitter.NewLanguage(tsjavascript.Language()) },
	"typescript": func() *sitter.Language { return sitter.NewLanguage(tstypescript.LanguageTypescript()) },
}

// assignmentNodeKinds lists, per language, the node kinds this extractor
// treats as "name bound to value" sites. Grammars differ in what they call
// this node; unlisted languages fall back to a generic heuristic over
// "identifier" followed by "=" siblings, handled in walk().
var assignmentNodeKinds = map[string]map[string]bool{
	"go":         {"short_var_declaration": true, "assignment_statement": true, "const_spec": true, "var_spec": true},
	"rust":       {"let_declaration": true, "assignment_expression": true},
	"python":     {"assignment": true},
	"java":       {"local_variable_declaration": true, "assignment_expression": true, "variable_declarator": true},
	"ruby":       {"assignment": true},
	"javascript": {"variable_declarator": true, "assignment_expression": true, "pair": true},
	"typescript": {"variable_declarator": true, "assignment_expression": true, "pair": true},
}

var stringNodeKinds = map[string]map[string]bool{
	"go":         {"interpreted_string_literal": true, "raw_string_literal": true},
	"rust":       {"string_literal": true},
	"python":     {"string": true},
	"java":       {"string_literal": true},
	"ruby":       {"string": true},
	"javascript": {"string": true, "template_string": true},
	"typescript": {"string": true, "template_string": true},
}

// PatternID synthesizes the deterministic pattern id AST candidates carry,
// scoped per language so dedup and suppression behave per-language.
func PatternID(language string) string {
	return "generic/" + language + "-identifier"
}

// Scan parses content as language and returns every generic-identifier
// candidate it finds. A missing grammar or a parse failure is logged and
// reported as a non-fatal ParseError; callers fall back to regex-only
// coverage for the file, exactly as §4.4 requires.
func Scan(ctx context.Context, language string, content []byte, path string) ([]Candidate, error) {
	loader, ok := capabilities[strings.ToLower(language)]
	if !ok {
		return nil, nil // no grammar registered for this language: silent downgrade
	}

	var candidates []Candidate
	var parseErr error

	func() {
		defer func() {
			if r := recover(); r != nil {
				parseErr = &entities.ParseError{Path: path, Language: language, Err: nil}
				slog.Warn("astscan: grammar panicked, falling back to regex-only", "path", path, "language", language, "recover", r)
			}
		}()

		lang := loader()
		parser := sitter.NewParser()
		defer parser.Close()
		if err := parser.SetLanguage(lang); err != nil {
			parseErr = &entities.ParseError{Path: path, Language: language, Err: err}
			return
		}

		tree := parser.ParseCtx(ctx, content, nil)
		if tree == nil {
			parseErr = &entities.ParseError{Path: path, Language: language, Err: nil}
			return
		}
		defer tree.Close()

		g := grammar{
			assignmentKinds: assignmentNodeKinds[strings.ToLower(language)],
			stringKinds:     stringNodeKinds[strings.ToLower(language)],
		}
		candidates = walk(tree.RootNode(), content, g, strings.ToLower(language))
	}()

	if parseErr != nil {
		return nil, parseErr
	}
	return candidates, nil
}

// walk performs a depth-first traversal looking for assignment-shaped nodes
// whose left side is a suspicious identifier and whose right side is a
// string literal.
func walk(node *sitter.Node, content []byte, g grammar, language string) []Candidate {
	var out []Candidate
	if node == nil {
		return out
	}

	if g.assignmentKinds[node.Kind()] {
		out = append(out, extractFromAssignment(node, content, g, language)...)
	}

	count := node.ChildCount()
	for i := uint(0); i < count; i++ {
		out = append(out, walk(node.Child(i), content, g, language)...)
	}
	return out
}

// extractFromAssignment looks for a suspicious identifier child paired with
// a string-literal child under the same assignment-shaped node.
func extractFromAssignment(node *sitter.Node, content []byte, g grammar, language string) []Candidate {
	var identifierName string
	var stringNode *sitter.Node

	count := node.ChildCount()
	for i := uint(0); i < count; i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch {
		case child.Kind() == "identifier" || child.Kind() == "property_identifier":
			identifierName = string(content[child.StartByte():child.EndByte()])
		case g.stringKinds[child.Kind()]:
			stringNode = child
		}
	}

	if identifierName == "" || stringNode == nil {
		return nil
	}
	if !looksLikeSecretIdentifier(identifierName) {
		return nil
	}

	secret := unquote(content[stringNode.StartByte():stringNode.EndByte()])
	if len(secret) == 0 {
		return nil
	}

	startPoint := stringNode.StartPosition()
	return []Candidate{{
		Language:   language,
		Secret:     secret,
		ByteOffset: int(stringNode.StartByte()),
		MatchStart: int(stringNode.StartByte()),
		MatchEnd:   int(stringNode.EndByte()),
		Line:       int(startPoint.Row) + 1,
		Column:     int(startPoint.Column),
	}}
}

// looksLikeSecretIdentifier normalizes an identifier (lowercase, separators
// stripped) and checks it against the generic secret-identifier family.
func looksLikeSecretIdentifier(name string) bool {
	normalized := strings.ToLower(name)
	normalized = strings.NewReplacer("_", "", "-", "", " ", "").Replace(normalized)
	return identifierPattern.MatchString(normalized)
}

// unquote strips a leading/trailing quote character (', ", `) if present;
// tree-sitter string-literal nodes include the delimiters.
func unquote(raw []byte) []byte {
	if len(raw) >= 2 {
		first, last := raw[0], raw[len(raw)-1]
		if (first == '"' || first == '\'' || first == '`') && first == last {
			return raw[1 : len(raw)-1]
		}
	}
	return raw
}
