package storage

import "github.com/vovakirdan/tui-snake/internal/registry"

// Backend names accepted in configuration.
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

func init() {
	registry.Register(registry.BackendInfo{
		Name:        BackendSQLite,
		Description: "SQLite file, survives restarts",
		Persistent:  true,
	}, func(path string) (registry.Store, error) {
		s, err := Open(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	})

	registry.Register(registry.BackendInfo{
		Name:        BackendMemory,
		Description: "In-process only, cleared on exit",
	}, func(string) (registry.Store, error) {
		return NewMemoryStore(), nil
	})
}
