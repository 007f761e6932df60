package writer

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ManifestFile lists, inside an output directory, the artifacts written by
// the last build. Only those files are removed by the next Reset.
const ManifestFile = ".stylelint-aot-manifest.json"

// FileWriter implements domain.TreeWriter on the local filesystem.
type FileWriter struct{}

func New() *FileWriter {
	return &FileWriter{}
}

// Reset removes the artifacts recorded by the previous Commit, prunes the
// directories they leave empty and makes sure outputDir exists. Files the
// tool did not write are kept.
func (w *FileWriter) Reset(outputDir string) error {
	previous, err := readManifest(outputDir)
	if err != nil {
		return err
	}

	dirs := make(map[string]bool)
	for _, rel := range previous {
		clean, err := within(outputDir, rel)
		if err != nil {
			// a tampered manifest never deletes outside outputDir
			continue
		}
		if err := os.Remove(filepath.Join(outputDir, clean)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("removing %s: %w", rel, err)
		}
		for d := filepath.Dir(clean); d != "."; d = filepath.Dir(d) {
			dirs[d] = true
		}
	}
	if err := os.Remove(filepath.Join(outputDir, ManifestFile)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	// deepest first; non-empty directories stay
	sorted := make([]string, 0, len(dirs))
	for d := range dirs {
		sorted = append(sorted, d)
	}
	sort.Slice(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })
	for _, d := range sorted {
		_ = os.Remove(filepath.Join(outputDir, d))
	}

	return os.MkdirAll(outputDir, 0755)
}

// Write stores content at outputDir/relativePath, creating directories as
// needed. relativePath must stay inside outputDir.
func (w *FileWriter) Write(outputDir, relativePath, content string) error {
	clean, err := within(outputDir, relativePath)
	if err != nil {
		return err
	}

	dest := filepath.Join(outputDir, clean)
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}
	return os.WriteFile(dest, []byte(content), 0644)
}

// Commit records written as the artifacts of this build.
func (w *FileWriter) Commit(outputDir string, written []string) error {
	paths := append([]string{}, written...)
	sort.Strings(paths)
	data, err := json.MarshalIndent(paths, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outputDir, ManifestFile), data, 0644)
}

func readManifest(outputDir string) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(outputDir, ManifestFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var paths []string
	if err := json.Unmarshal(data, &paths); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ManifestFile, err)
	}
	return paths, nil
}

func within(outputDir, relativePath string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(relativePath))
	if filepath.IsAbs(clean) || clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("output path %q escapes %s", relativePath, outputDir)
	}
	return clean, nil
}
