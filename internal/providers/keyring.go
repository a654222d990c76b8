package providers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/cirreum/secretsprovider/internal/logging"
	"github.com/cirreum/secretsprovider/pkg/registration"
)

// ErrKeyringItemNotFound is returned by KeyringClient.Get for missing items.
var ErrKeyringItemNotFound = errors.New("keyring item not found")

// KeyringSettings configure one OS keyring entry. The endpoint has the form
// "<service>/<account>".
type KeyringSettings struct {
	registration.InstanceConfig `yaml:",inline"`
}

// ParseEndpoint trims whitespace around the service/account pair.
func (s *KeyringSettings) ParseEndpoint() error {
	s.SetEndpoint(strings.TrimSpace(s.Endpoint()))
	return nil
}

// KeyringClient reads one configured keyring entry. It is the Client payload
// registered for every keyring instance.
type KeyringClient struct {
	Service string
	Account string
}

// Get reads the entry from the OS keyring.
func (c KeyringClient) Get() (string, error) {
	secret, err := keyring.Get(c.Service, c.Account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrKeyringItemNotFound
		}
		return "", err
	}
	return secret, nil
}

// KeyringProvider registers OS keyring instances.
type KeyringProvider struct {
	name   string
	logger *logging.Logger
}

// NewKeyringProvider creates a keyring provider.
func NewKeyringProvider(name string, logger *logging.Logger) *KeyringProvider {
	return &KeyringProvider{name: name, logger: logger}
}

// NewKeyringProviderFactory creates a keyring provider factory.
func NewKeyringProviderFactory(name string, logger *logging.Logger) (registration.Provider, error) {
	return NewKeyringProvider(name, logger), nil
}

// Type returns the provider-type tag.
func (p *KeyringProvider) Type() string { return "keyring" }

// Name returns the configured provider name.
func (p *KeyringProvider) Name() string { return p.name }

// ActivitySources returns the instrumentation scopes this provider emits.
func (p *KeyringProvider) ActivitySources() []string {
	return []string{"secretsprovider.keyring"}
}

// ValidateSettings checks the endpoint names both a service and an account.
func (p *KeyringProvider) ValidateSettings(settings registration.InstanceSettings) error {
	if _, ok := settings.(*KeyringSettings); !ok {
		return fmt.Errorf("expected keyring settings, got %T", settings)
	}
	service, account, err := splitKeyringEndpoint(settings.Endpoint())
	if err != nil {
		return err
	}
	if service == "" || account == "" {
		return fmt.Errorf("keyring endpoint must name both a service and an account")
	}
	return nil
}

// AddInstance registers a client for the configured keyring entry.
func (p *KeyringProvider) AddInstance(instanceKey string, settings registration.InstanceSettings, target registration.Target) error {
	service, account, err := splitKeyringEndpoint(settings.Endpoint())
	if err != nil {
		return err
	}

	handle := SourceHandle{
		ProviderType: p.Type(),
		ProviderName: p.name,
		InstanceKey:  instanceKey,
		Identifier:   settings.Identifier(),
		Client:       KeyringClient{Service: service, Account: account},
	}
	target.Services.Add(handle.Instance(), handle)
	return nil
}

func splitKeyringEndpoint(endpoint string) (service, account string, err error) {
	service, account, found := strings.Cut(endpoint, "/")
	if !found {
		return "", "", fmt.Errorf("keyring endpoint must have the form <service>/<account>")
	}
	return service, account, nil
}
