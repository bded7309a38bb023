package dashboard

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var ErrDatasetNotFound = errors.New("processed dataset not found")

// DatasetNotFoundMessage is shown in place of the leaderboard when ResolveDataset fails.
func DatasetNotFoundMessage(dir, file string) string {
	dir = strings.TrimRight(filepath.ToSlash(dir), "/")
	return fmt.Sprintf("Fichier processed introuvable dans %s/. Vérifie que %s est bien présent.", dir, file)
}

var datasetExtensions = map[string]bool{
	".csv":     true,
	".db":      true,
	".sqlite":  true,
	".sqlite3": true,
}

// ResolveDataset returns dir/file when it exists, otherwise the first file in dir
// (sorted by name) whose name starts with prefix and has a supported extension.
func ResolveDataset(dir, file, prefix string) (string, error) {
	preferred := filepath.Join(dir, file)
	if info, err := os.Stat(preferred); err == nil && !info.IsDir() {
		return preferred, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", ErrDatasetNotFound
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, prefix) && datasetExtensions[strings.ToLower(filepath.Ext(name))] {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "", ErrDatasetNotFound
	}
	sort.Strings(names)
	return filepath.Join(dir, names[0]), nil
}
