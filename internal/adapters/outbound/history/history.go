package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/openkraft/stylelint-aot/internal/domain"
)

// Dir is the project-relative directory holding the build log.
const Dir = ".stylelint-aot/history"

const logName = "builds.json"

// MaxEntries is the default number of builds kept per project.
const MaxEntries = 100

// FileHistory is a domain.BuildHistory keeping the newest builds of a
// project in a single JSON array.
type FileHistory struct {
	limit int
}

func New() *FileHistory {
	return &FileHistory{limit: MaxEntries}
}

// WithLimit changes how many builds are kept. Non-positive values keep the
// default.
func (h *FileHistory) WithLimit(n int) *FileHistory {
	if n > 0 {
		h.limit = n
	}
	return h
}

// Save appends entry to the project's build log, dropping the oldest builds
// beyond the limit. The log is replaced atomically so a concurrent Load never
// sees a partial file.
func (h *FileHistory) Save(projectPath string, entry domain.BuildEntry) error {
	entries, err := h.Load(projectPath)
	if err != nil {
		return err
	}
	entries = newest(append(entries, entry), h.limit)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding build log: %w", err)
	}
	return replaceFile(logPath(projectPath), data)
}

// Load returns the recorded builds, oldest first. A project without a build
// log has no history.
func (h *FileHistory) Load(projectPath string) ([]domain.BuildEntry, error) {
	fp := logPath(projectPath)
	data, err := os.ReadFile(fp)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", fp, err)
	}

	var entries []domain.BuildEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", fp, err)
	}
	return entries, nil
}

func logPath(projectPath string) string {
	return filepath.Join(projectPath, filepath.FromSlash(Dir), logName)
}

// newest keeps the last n entries.
func newest(entries []domain.BuildEntry, n int) []domain.BuildEntry {
	if len(entries) <= n {
		return entries
	}
	return entries[len(entries)-n:]
}

// replaceFile writes data to a temporary sibling of fp and renames it over fp.
func replaceFile(fp string, data []byte) error {
	dir := filepath.Dir(fp)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, logName+".*.tmp")
	if err != nil {
		return fmt.Errorf("writing %s: %w", fp, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", fp, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", fp, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", fp, err)
	}
	if err := os.Rename(tmp.Name(), fp); err != nil {
		return fmt.Errorf("replacing %s: %w", fp, err)
	}
	return nil
}
