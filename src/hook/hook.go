package hook

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Hook is the interface every built-in hook implements.
type Hook interface {
	ID() string
	Check(ctx context.Context, file File) ([]Finding, error)
}

// Configurable is implemented by hooks that accept options from the
// configuration's options map.
type Configurable interface {
	Configure(opts map[string]any) error
}

// CrossFile is implemented by hooks that also need the full file list,
// not just one file at a time (e.g. case-insensitive collision checks).
type CrossFile interface {
	CheckAll(ctx context.Context, files []File) []Finding
}

// Spec describes a built-in hook: identity, display metadata, and the
// default file selection applied when the configuration doesn't narrow
// it further.
type Spec struct {
	ID          string
	Name        string
	Description string
	Files       string   // default files regex ("" = all)
	Types       []string // default type tags (nil = all)
	New         func() Hook
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Spec{}
)

// Register adds a built-in hook spec to the global registry.
// Called from init() in each builtin file.
func Register(spec Spec) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if spec.ID == "" || spec.New == nil {
		panic("hook: spec needs an id and a constructor")
	}
	if _, exists := registry[spec.ID]; exists {
		panic(fmt.Sprintf("hook: duplicate registration: %s", spec.ID))
	}
	registry[spec.ID] = spec
}

// Lookup returns the spec for a built-in hook id.
func Lookup(id string) (Spec, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	spec, ok := registry[id]
	return spec, ok
}

// New returns a fresh instance of the named built-in hook.
func New(id string) (Hook, error) {
	spec, ok := Lookup(id)
	if !ok {
		return nil, fmt.Errorf("hook: unknown builtin hook: %s", id)
	}
	return spec.New(), nil
}

// All returns the specs of all registered built-in hooks, sorted by id.
func All() []Spec {
	registryMu.RLock()
	defer registryMu.RUnlock()
	specs := make([]Spec, 0, len(registry))
	for _, spec := range registry {
		specs = append(specs, spec)
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].ID < specs[j].ID })
	return specs
}
