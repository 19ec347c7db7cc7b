package llm

import "fmt"

// ProviderFactory builds a configured provider instance.
type ProviderFactory func() (Provider, error)

var providers = make(map[string]ProviderFactory)

// RegisterProvider makes a factory available under name. Provider packages
// call this from init so importing them is enough to enable them.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewProvider instantiates the provider registered under name.
func NewProvider(name string) (Provider, error) {
	factory, exists := providers[name]
	if !exists {
		return nil, fmt.Errorf("unknown provider %q", name)
	}
	return factory()
}
