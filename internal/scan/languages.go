package scan

import "strings"

// languageByExtension maps a file extension to the tree-sitter grammar
// language name astscan understands. Extensions absent here simply never
// enter AST extraction and fall back to regex-only coverage.
var languageByExtension = map[string]string{
	".go":   "go",
	".rs":   "rust",
	".py":   "python",
	".java": "java",
	".rb":   "ruby",
	".js":   "javascript",
	".jsx":  "javascript",
	".ts":   "typescript",
	".tsx":  "typescript",
}

func languageFor(path string) (string, bool) {
	for ext, lang := range languageByExtension {
		if strings.HasSuffix(path, ext) {
			return lang, true
		}
	}
	return "", false
}
