package providers

import (
	"fmt"

	"github.com/cirreum/secretsprovider/internal/logging"
	"github.com/cirreum/secretsprovider/pkg/registration"
)

// Factory builds a provider from its configured name.
type Factory func(name string, logger *logging.Logger) (registration.Provider, error)

// Registry manages provider creation for the built-in provider types.
type Registry struct {
	factories map[string]Factory
	logger    *logging.Logger
}

// NewRegistry creates a registry with the built-in providers registered.
func NewRegistry(logger *logging.Logger) *Registry {
	if logger == nil {
		logger = logging.Discard()
	}
	registry := &Registry{
		factories: make(map[string]Factory),
		logger:    logger,
	}

	registry.RegisterFactory("postgres", NewPostgresProviderFactory)
	registry.RegisterFactory("mysql", NewMySQLProviderFactory)
	registry.RegisterFactory("aws", NewAWSProviderFactory)
	registry.RegisterFactory("azure.keyvault", NewAzureKeyVaultProviderFactory)
	registry.RegisterFactory("gcp.secretmanager", NewGCPSecretManagerProviderFactory)
	registry.RegisterFactory("akeyless", NewAkeylessProviderFactory)
	registry.RegisterFactory("keyring", NewKeyringProviderFactory)

	return registry
}

// RegisterFactory registers a provider factory for a given type.
func (r *Registry) RegisterFactory(providerType string, factory Factory) {
	r.factories[providerType] = factory
}

// Create builds a provider of the given type with the given name.
func (r *Registry) Create(providerType, name string) (registration.Provider, error) {
	factory, exists := r.factories[providerType]
	if !exists {
		return nil, fmt.Errorf("unknown provider type: %s", providerType)
	}
	return factory(name, r.logger)
}

// SupportedTypes returns the registered provider types.
func (r *Registry) SupportedTypes() []string {
	types := make([]string, 0, len(r.factories))
	for providerType := range r.factories {
		types = append(types, providerType)
	}
	return types
}

// IsSupported checks if a provider type is registered.
func (r *Registry) IsSupported(providerType string) bool {
	_, exists := r.factories[providerType]
	return exists
}
