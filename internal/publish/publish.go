package publish

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"promptdeck/internal/catalog"
	"promptdeck/internal/model"
)

type WriteOptions struct {
	Overwrite bool
}

type WriteResult struct {
	Written []string `json:"written"`
}

// WriteTasks exports a resolved catalog as markdown: index.md listing the
// tasks under the filter, plus tasks/<id>.md per task. It stops on the first
// write error.
func WriteTasks(toDir string, f catalog.CatalogFilter, tasks []model.Task, opt WriteOptions) (WriteResult, error) {
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)

	tasksDir := filepath.Join(toDir, "tasks")
	if err := os.MkdirAll(tasksDir, 0o755); err != nil {
		return WriteResult{}, err
	}

	indexPath := filepath.Join(toDir, "index.md")
	if err := writeFile(indexPath, []byte(RenderIndexMarkdown(f, tasks)), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}

	written := []string{indexPath}
	for _, t := range tasks {
		p := filepath.Join(tasksDir, fileName(t.ID))
		if err := writeFile(p, []byte(RenderTaskMarkdown(t)), opt.Overwrite); err != nil {
			return WriteResult{}, err
		}
		written = append(written, p)
	}
	return WriteResult{Written: written}, nil
}

// fileName keeps ids usable as a single path element.
func fileName(id string) string {
	id = strings.TrimSpace(id)
	id = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == ':' {
			return '_'
		}
		return r
	}, id)
	if id == "" || id == "." || id == ".." {
		id = "_"
	}
	return id + ".md"
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}
