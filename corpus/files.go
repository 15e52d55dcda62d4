package corpus

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tmc/langchaingo/documentloaders"
)

var (
	// ErrNotDirectory is returned when the corpus path is not a directory.
	ErrNotDirectory = errors.New("corpus path is not a directory")
)

// ListFiles returns the paths of the regular, non-hidden files in dir, in
// directory order. Symlinks to regular files are included. A limit of zero or less returns every file.
func ListFiles(dir string, limit int) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if limit > 0 && len(files) >= limit {
			break
		}
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		// Stat follows symlinks; dangling links are skipped.
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, path)
	}
	return files, nil
}

// LoadText reads the text of the document at path.
func LoadText(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	docs, err := documentloaders.NewText(f).Load(ctx)
	if err != nil {
		return "", fmt.Errorf("loading %s: %w", path, err)
	}

	var text strings.Builder
	for i, doc := range docs {
		if i > 0 {
			text.WriteByte('\n')
		}
		text.WriteString(doc.PageContent)
	}
	return text.String(), nil
}
