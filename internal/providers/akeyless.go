package providers

import (
	"fmt"
	"net/url"

	akeyless "github.com/akeylesslabs/akeyless-go/v3"

	"github.com/cirreum/secretsprovider/internal/logging"
	"github.com/cirreum/secretsprovider/pkg/registration"
)

// AkeylessSettings configure one Akeyless gateway endpoint. The endpoint is
// the gateway API URL, e.g. "https://api.akeyless.io".
type AkeylessSettings struct {
	registration.InstanceConfig `yaml:",inline"`

	// AccessID identifies the authentication key used against the gateway.
	AccessID string `yaml:"access_id,omitempty"`
}

// AkeylessProvider registers Akeyless gateway instances.
type AkeylessProvider struct {
	name   string
	logger *logging.Logger
}

// NewAkeylessProvider creates an Akeyless provider.
func NewAkeylessProvider(name string, logger *logging.Logger) *AkeylessProvider {
	return &AkeylessProvider{name: name, logger: logger}
}

// NewAkeylessProviderFactory creates an Akeyless provider factory.
func NewAkeylessProviderFactory(name string, logger *logging.Logger) (registration.Provider, error) {
	return NewAkeylessProvider(name, logger), nil
}

// Type returns the provider-type tag.
func (p *AkeylessProvider) Type() string { return "akeyless" }

// Name returns the configured provider name.
func (p *AkeylessProvider) Name() string { return p.name }

// ActivitySources returns the instrumentation scopes this provider emits.
func (p *AkeylessProvider) ActivitySources() []string {
	return []string{"secretsprovider.akeyless"}
}

// ValidateSettings checks the endpoint is an absolute http(s) gateway URL.
func (p *AkeylessProvider) ValidateSettings(settings registration.InstanceSettings) error {
	if _, ok := settings.(*AkeylessSettings); !ok {
		return fmt.Errorf("expected akeyless settings, got %T", settings)
	}
	parsed, err := url.Parse(settings.Endpoint())
	if err != nil {
		return fmt.Errorf("invalid gateway URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("gateway URL must use http or https")
	}
	if parsed.Host == "" {
		return fmt.Errorf("gateway URL must name a host")
	}
	return nil
}

// AddInstance constructs an Akeyless API client against the gateway and
// registers it.
func (p *AkeylessProvider) AddInstance(instanceKey string, settings registration.InstanceSettings, target registration.Target) error {
	configuration := akeyless.NewConfiguration()
	configuration.Servers = []akeyless.ServerConfiguration{
		{URL: settings.Endpoint()},
	}
	client := akeyless.NewAPIClient(configuration)

	handle := SourceHandle{
		ProviderType: p.Type(),
		ProviderName: p.name,
		InstanceKey:  instanceKey,
		Identifier:   settings.Identifier(),
		Client:       client,
	}
	target.Services.Add(handle.Instance(), handle)
	return nil
}
