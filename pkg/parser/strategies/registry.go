// Package strategies provides the strategy pattern implementation for test extraction.
// Each authoring style (mocha-like blocks, codeceptjs scenarios) has its own strategy,
// selected by the configured framework name.
package strategies

import (
	"sort"
	"strings"
	"sync"

	"github.com/specvital/testdiff/pkg/domain"
	"github.com/specvital/testdiff/pkg/parser/framework"
	"github.com/specvital/testdiff/pkg/parser/visitor"
)

var defaultRegistry = &Registry{}

// Strategy extracts test records from a syntax tree.
type Strategy interface {
	// Name returns the strategy identifier (e.g., "mocha", "codeceptjs").
	Name() string
	// Aliases returns alternative framework names resolving to this strategy.
	Aliases() []string
	// Extract returns the test records of one file in declaration order.
	Extract(root visitor.Node) []domain.TestRecord
}

// Registry manages registered strategies.
type Registry struct {
	mu         sync.RWMutex
	strategies []Strategy
}

// NewRegistry creates a new empty strategy registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// DefaultRegistry returns the global default registry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register adds a strategy to the default registry.
func Register(s Strategy) {
	defaultRegistry.Register(s)
}

// Resolve returns the strategy for name from the default registry.
func Resolve(name string) Strategy {
	return defaultRegistry.Resolve(name)
}

// Register adds a strategy to the registry.
func (r *Registry) Register(s Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strategies = append(r.strategies, s)
	sort.SliceStable(r.strategies, func(i, j int) bool {
		return r.strategies[i].Name() < r.strategies[j].Name()
	})
}

// GetStrategies returns a copy of all registered strategies.
func (r *Registry) GetStrategies() []Strategy {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]Strategy, len(r.strategies))
	copy(result, r.strategies)
	return result
}

// FindByName returns the strategy whose name or alias equals name, ignoring case.
func (r *Registry) FindByName(name string) Strategy {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name = strings.ToLower(strings.TrimSpace(name))
	for _, s := range r.strategies {
		if strings.ToLower(s.Name()) == name {
			return s
		}
		for _, alias := range s.Aliases() {
			if strings.ToLower(alias) == name {
				return s
			}
		}
	}
	return nil
}

// Resolve returns the strategy for name. Unknown names fall back to the
// block-style mocha strategy; nil is returned only if that is not registered.
func (r *Registry) Resolve(name string) Strategy {
	if s := r.FindByName(name); s != nil {
		return s
	}
	return r.FindByName(framework.FrameworkMocha)
}

// Clear removes all registered strategies.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strategies = nil
}
