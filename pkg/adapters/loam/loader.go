package loam

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/automata/pkg/description"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/loam"
)

// Loader adapts a Loam repository to the AutomatonLoader interface.
// Each document holds one automaton, either in its front matter or, for Markdown
// documents without structured keys, as a text description in the body.
type Loader struct {
	Repo *loam.TypedRepository[Metadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[Metadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a read-only Loam repository at dir and wraps it.
func Open(dir string) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// Strict mode keeps numbers as json.Number so state IDs never pass through float64.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[Metadata](repo)), nil
}

// Load retrieves and builds the automaton stored under id.
func (l *Loader) Load(ctx context.Context, id string) (*domain.Automaton, error) {
	doc, err := l.Repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrAutomatonNotFound, id)
		}
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrLoad, id, err)
	}

	if !doc.Data.structured() {
		a, err := description.ParseBytes([]byte(doc.Content))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrLoad, id, err)
		}
		return a, nil
	}

	def, err := doc.Data.document().Definition()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrLoad, id, err)
	}
	return domain.NewAutomaton(def), nil
}

// List lists all automata in the repository.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	ids := make([]string, 0, len(docs))

	for _, doc := range docs {
		// Use the ID from metadata if available, otherwise filename ID
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
