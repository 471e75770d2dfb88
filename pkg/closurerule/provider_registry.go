package closurerule

import (
	"fmt"
	"sort"
)

// ProviderRegistry represents a library of rule provider implementations.
type ProviderRegistry interface {
	// ProviderNames returns a sorted list of rule names.
	ProviderNames() []string
	// LookupProvider returns the implementation under the given name.  If the
	// rule is not found, false is returned.
	LookupProvider(name string) (Provider, bool)
	// RegisterProvider installs a Provider implementation under the given
	// name.  Registering the same name twice is an error.
	RegisterProvider(name string, provider Provider) error
}

// globalProviderRegistry is the default registry singleton.
var globalProviderRegistry = NewProviderRegistryMap()

// GlobalProviderRegistry returns a reference to the global ProviderRegistry
// implementation.
func GlobalProviderRegistry() ProviderRegistry {
	return globalProviderRegistry
}

// ProviderRegistryMap implements ProviderRegistry using a map.
type ProviderRegistryMap struct {
	providers map[string]Provider
}

func NewProviderRegistryMap() *ProviderRegistryMap {
	return &ProviderRegistryMap{
		providers: make(map[string]Provider),
	}
}

// ProviderNames implements part of the ProviderRegistry interface.
func (p *ProviderRegistryMap) ProviderNames() []string {
	names := make([]string, 0, len(p.providers))
	for name := range p.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterProvider implements part of the ProviderRegistry interface.
func (p *ProviderRegistryMap) RegisterProvider(name string, provider Provider) error {
	if _, ok := p.providers[name]; ok {
		return fmt.Errorf("duplicate rule provider registration: %q", name)
	}
	p.providers[name] = provider
	return nil
}

// LookupProvider implements part of the ProviderRegistry interface.
func (p *ProviderRegistryMap) LookupProvider(name string) (Provider, bool) {
	provider, ok := p.providers[name]
	return provider, ok
}
