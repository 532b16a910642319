package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/automata/pkg/description"
	"github.com/aretw0/automata/pkg/domain"
)

// Extensions lists the file extensions recognised as descriptions, in lookup order.
var Extensions = []string{".txt", ".dfa", ".yaml", ".yml", ".json"}

// Loader implements ports.AutomatonLoader over a directory tree.
// IDs are slash-separated paths relative to Root with the extension removed.
type Loader struct {
	Root string
}

// New creates a loader rooted at dir.
func New(dir string) *Loader {
	return &Loader{Root: dir}
}

// LoadFile reads a single description, picking the parser from the extension.
func LoadFile(path string) (*domain.Automaton, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrAutomatonNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrLoad, err)
	}
	a, err := description.ParseFormat(description.FormatFor(path), data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrLoad, path, err)
	}
	return a, nil
}

// Load resolves id to a file under Root and parses it.
// An ID without extension is tried with every entry of Extensions.
func (l *Loader) Load(ctx context.Context, id string) (*domain.Automaton, error) {
	path, err := l.resolve(id)
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// resolve maps id to a path under Root. IDs that are absolute or climb out of Root
// with ".." are treated as unknown.
func (l *Loader) resolve(id string) (string, error) {
	rel := filepath.FromSlash(id)
	if !filepath.IsLocal(rel) {
		return "", fmt.Errorf("%w: %s", domain.ErrAutomatonNotFound, id)
	}
	base := filepath.Join(l.Root, rel)
	if filepath.Ext(id) != "" {
		return base, nil
	}
	for _, ext := range Extensions {
		candidate := base + ext
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %s", domain.ErrAutomatonNotFound, id)
}

// List walks Root and returns the IDs of every description found.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	seen := make(map[string]string)
	err := filepath.WalkDir(l.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != l.Root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !isDescription(path) {
			return nil
		}
		rel, err := filepath.Rel(l.Root, path)
		if err != nil {
			return err
		}
		id := trimExtension(rel)

		// Collision Detection
		if existing, ok := seen[id]; ok {
			return fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existing, rel)
		}
		seen[id] = rel
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", l.Root, err)
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func isDescription(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, known := range Extensions {
		if ext == known {
			return true
		}
	}
	return false
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	return filepath.ToSlash(strings.TrimSuffix(id, ext))
}
