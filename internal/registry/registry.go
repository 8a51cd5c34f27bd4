// Package registry provides a global registry of built-in levels.
// Levels register themselves in init() functions, allowing the CLI and
// the menu to list and load them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/hardest-game/internal/world"
)

// DefaultLevel is the level played when none is chosen.
const DefaultLevel = "classic"

// LevelInfo contains metadata about a registered level.
type LevelInfo struct {
	ID    string
	Title string
}

// Source builds a fresh document for a level.
type Source func() world.Document

var (
	sources = make(map[string]Source)
	titles  = make(map[string]string)
	mu      sync.RWMutex
)

// Register adds a level to the registry.
// Panics if a level with the same ID is already registered.
func Register(id, title string, src Source) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := sources[id]; exists {
		panic(fmt.Sprintf("registry: level %q already registered", id))
	}

	sources[id] = src
	titles[id] = title
}

// List returns information about all registered levels, sorted by ID.
func List() []LevelInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]LevelInfo, 0, len(sources))
	for id := range sources {
		result = append(result, LevelInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Document returns a fresh copy of the level's document.
func Document(id string) (world.Document, error) {
	mu.RLock()
	src, ok := sources[id]
	mu.RUnlock()

	if !ok {
		return world.Document{}, fmt.Errorf("registry: unknown level %q", id)
	}
	return src(), nil
}

// Load builds a ready World for the level.
func Load(id string) (*world.World, error) {
	doc, err := Document(id)
	if err != nil {
		return nil, err
	}
	w, err := world.FromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("registry: level %q: %w", id, err)
	}
	return w, nil
}

// Exists checks if a level with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := sources[id]
	return ok
}
