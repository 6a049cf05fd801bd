// Package walk enumerates the files a scan visits: root traversal,
// exclude_paths glob matching, .gitignore respect, and the max_file_bytes
// ceiling (§6).
package walk

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/spikermint/vet/internal/domain/entities"
)

// Options configures one walk over a set of scan roots.
type Options struct {
	ExcludePaths     []string
	RespectGitignore bool
	MaxFileBytes     int64
}

// File is one file this walk accepted for scanning.
type File struct {
	AbsPath string
	Size    int64
}

// Walk enumerates every eligible file under roots, skipping paths matched
// by ExcludePaths or an applicable .gitignore, and reports per-file
// diagnostics (FileTooLargeError, IoError) for files it had to skip rather
// than silently dropping them.
func Walk(roots []string, opts Options) ([]File, []error) {
	var files []File
	var diagnostics []error

	for _, root := range roots {
		ignoreMatcher := loadGitignore(root, opts.RespectGitignore)

		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				diagnostics = append(diagnostics, &entities.IoError{Path: path, Err: err})
				return nil
			}

			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				rel = path
			}

			if d.IsDir() {
				if shouldSkipDir(d.Name()) {
					return filepath.SkipDir
				}
				if ignoreMatcher != nil && rel != "." && ignoreMatcher.MatchesPath(rel) {
					return filepath.SkipDir
				}
				return nil
			}

			if matchesAny(opts.ExcludePaths, rel) {
				return nil
			}
			if ignoreMatcher != nil && ignoreMatcher.MatchesPath(rel) {
				return nil
			}

			info, infoErr := d.Info()
			if infoErr != nil {
				diagnostics = append(diagnostics, &entities.IoError{Path: path, Err: infoErr})
				return nil
			}

			limit := opts.MaxFileBytes
			if limit > 0 && info.Size() > limit {
				diagnostics = append(diagnostics, &entities.FileTooLargeError{Path: path, SizeByte: info.Size(), LimitByte: limit})
				return nil
			}

			files = append(files, File{AbsPath: path, Size: info.Size()})
			return nil
		})
		if err != nil {
			diagnostics = append(diagnostics, &entities.IoError{Path: root, Err: err})
		}
	}

	return files, diagnostics
}

func loadGitignore(root string, respect bool) *gitignore.GitIgnore {
	if !respect {
		return nil
	}
	path := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	gi, err := gitignore.CompileIgnoreFile(path)
	if err != nil {
		return nil
	}
	return gi
}

func matchesAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// skipDirs mirrors the common set of directories no scan should ever
// descend into regardless of .gitignore presence.
var skipDirNames = map[string]bool{
	".git": true, "node_modules": true, "vendor": true,
}

func shouldSkipDir(name string) bool {
	return skipDirNames[name]
}
