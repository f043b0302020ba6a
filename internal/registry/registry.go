// Package registry provides a global registry of game variants.
// Variants register themselves in init() functions, allowing the CLI and
// menus to discover them without hardcoded lists.
package registry

import (
	"fmt"
	"sort"
	"sync"
)

// Variant describes one registered tuning of the game.
type Variant struct {
	// ID is the unique identifier used for CLI flags, config file names
	// and score storage (e.g., "mindgrind", "arena").
	ID string `json:"id"`

	// Title is a human-readable name for display.
	Title string `json:"title"`

	// Summary is a one-line description shown in menus.
	Summary string `json:"summary"`
}

var (
	variants = make(map[string]Variant)
	mu       sync.RWMutex
)

// Register adds a variant to the registry.
// Panics if the ID is empty or already registered.
func Register(v Variant) {
	mu.Lock()
	defer mu.Unlock()

	if v.ID == "" {
		panic("registry: variant without ID")
	}
	if _, exists := variants[v.ID]; exists {
		panic(fmt.Sprintf("registry: variant %q already registered", v.ID))
	}
	if v.Title == "" {
		v.Title = v.ID
	}
	variants[v.ID] = v
}

// List returns all registered variants, sorted by ID.
func List() []Variant {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Variant, 0, len(variants))
	for _, v := range variants {
		result = append(result, v)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Get returns a variant by its ID.
func Get(id string) (Variant, error) {
	mu.RLock()
	defer mu.RUnlock()

	v, ok := variants[id]
	if !ok {
		return Variant{}, fmt.Errorf("registry: unknown variant %q", id)
	}
	return v, nil
}

// Exists checks if a variant with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := variants[id]
	return ok
}
