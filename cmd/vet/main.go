// Package main provides a minimal CLI wrapper around the vet library.
//
// This is deliberately thin: argument parsing beyond a handful of flags,
// TUI/LSP transport, git plumbing, and output formatting (human/JSON/SARIF)
// are all out of scope here; see the vet package for the actual pipeline.
package main

func main() {
	Execute()
}
