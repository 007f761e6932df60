package scanner

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/openkraft/stylelint-aot/internal/domain"
)

var skipDirs = map[string]bool{
	"node_modules":     true,
	"bower_components": true,
	".git":             true,
}

// FileScanner implements domain.TreeScanner by walking the filesystem.
type FileScanner struct{}

func New() *FileScanner {
	return &FileScanner{}
}

// Scan returns the matching files under root with slash-separated relative
// paths, sorted lexically.
func (s *FileScanner) Scan(root string, match func(relativePath string) bool) ([]domain.SourceFile, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var paths []string
	err = filepath.WalkDir(absRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != absRoot && skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, err := filepath.Rel(absRoot, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)
		if match(relPath) {
			paths = append(paths, relPath)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(paths)

	files := make([]domain.SourceFile, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(filepath.Join(absRoot, filepath.FromSlash(p)))
		if err != nil {
			return nil, err
		}
		files = append(files, domain.SourceFile{RelativePath: p, Content: string(data)})
	}
	return files, nil
}
