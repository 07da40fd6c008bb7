// Package catalog discovers the experiment's conditions from a directory of
// media assets. Each file name, minus its extension, is a condition ID.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrCatalogUnavailable is returned when the asset directory is missing,
// unreadable, or does not contain a declared condition.
var ErrCatalogUnavailable = errors.New("condition catalog unavailable")

// Catalog is the immutable, ordered set of condition IDs for a run.
type Catalog struct {
	ids    []string
	assets map[string]string
}

// Load scans dir and returns the catalog in its scheduling order.
//
// IDs named in order come first, in that order; every other discovered ID
// follows lexicographically. An empty order yields a purely lexicographic
// catalog.
func Load(dir string, order []string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrCatalogUnavailable, dir, err)
	}

	// os.ReadDir sorts by file name, so the first stem wins on duplicates.
	assets := make(map[string]string)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		id := strings.TrimSuffix(name, filepath.Ext(name))
		if id == "" {
			continue
		}
		if _, seen := assets[id]; !seen {
			assets[id] = filepath.Join(dir, name)
		}
	}

	ids := make([]string, 0, len(assets))
	placed := make(map[string]bool, len(order))
	for _, id := range order {
		if _, ok := assets[id]; !ok {
			return nil, fmt.Errorf("%w: no asset for declared condition %q in %s", ErrCatalogUnavailable, id, dir)
		}
		if placed[id] {
			continue
		}
		placed[id] = true
		ids = append(ids, id)
	}

	var rest []string
	for id := range assets {
		if !placed[id] {
			rest = append(rest, id)
		}
	}
	sort.Strings(rest)
	ids = append(ids, rest...)

	return &Catalog{ids: ids, assets: assets}, nil
}

// New builds a catalog from known IDs and asset paths without touching the
// filesystem. Order is taken as given.
func New(ids []string, assets map[string]string) *Catalog {
	c := &Catalog{ids: append([]string(nil), ids...), assets: make(map[string]string, len(ids))}
	for _, id := range ids {
		c.assets[id] = assets[id]
	}
	return c
}

// List returns the condition IDs in scheduling order. The caller owns the
// returned slice.
func (c *Catalog) List() []string {
	return append([]string(nil), c.ids...)
}

// Len returns the number of conditions.
func (c *Catalog) Len() int {
	return len(c.ids)
}

// AssetPath returns the media file backing id, or "" if id is unknown.
func (c *Catalog) AssetPath(id string) string {
	return c.assets[id]
}

// DisplayName converts a condition ID such as "high_ranking" into
// "High Ranking".
func DisplayName(id string) string {
	// Casers are stateful; one per call.
	titler := cases.Title(language.English)
	words := strings.Split(id, "_")
	for i, w := range words {
		words[i] = titler.String(w)
	}
	return strings.Join(words, " ")
}
