// Package registry provides a global registry of score store backends.
// Backends register themselves in init() functions, allowing the CLI
// to pick one by name from configuration without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/vovakirdan/tui-snake/internal/snake"
)

// Store is the interface every score store backend implements.
// Implementations must be safe for concurrent use: the SSH server shares
// one store between all connected players.
type Store interface {
	snake.ScoreStore
	snake.HistoryRecorder

	// TopResults returns the highest recorded results for d, best first.
	// A non-positive limit means the backend default.
	TopResults(d snake.Difficulty, limit int) ([]snake.Result, error)

	// Stats aggregates the recorded history for d.
	Stats(d snake.Difficulty) (Stats, error)

	// Clear removes the best score and history for d.
	// An empty difficulty clears everything.
	Clear(d snake.Difficulty) error

	Close() error
}

// Stats contains aggregated history for one difficulty.
type Stats struct {
	Difficulty snake.Difficulty
	Games      int
	HighScore  int
	AvgScore   float64
	TotalTicks uint64
	LastPlayed time.Time
}

// BackendInfo contains metadata about a registered backend.
type BackendInfo struct {
	Name        string
	Description string
	Persistent  bool
}

// Factory opens a store. path is backend specific and may be ignored.
type Factory func(path string) (Store, error)

type backend struct {
	info    BackendInfo
	factory Factory
}

var (
	backends = make(map[string]backend)
	mu       sync.RWMutex
)

// Register adds a backend to the registry.
// Typically called from a storage package's init() function.
// Panics if a backend with the same name is already registered.
func Register(info BackendInfo, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := backends[info.Name]; exists {
		panic(fmt.Sprintf("registry: backend %q already registered", info.Name))
	}
	backends[info.Name] = backend{info: info, factory: f}
}

// List returns information about all registered backends, sorted by name.
func List() []BackendInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]BackendInfo, 0, len(backends))
	for _, b := range backends {
		result = append(result, b.info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Open creates a store using the named backend.
// Returns an error if the backend is not registered.
func Open(name, path string) (Store, error) {
	mu.RLock()
	b, ok := backends[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown backend %q", name)
	}
	return b.factory(path)
}

// Exists checks if a backend with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := backends[name]
	return ok
}
