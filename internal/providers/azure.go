package providers

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"

	"github.com/cirreum/secretsprovider/internal/logging"
	"github.com/cirreum/secretsprovider/pkg/registration"
)

// AzureKeyVaultSettings configure one Azure Key Vault endpoint. The endpoint
// is the vault URI, e.g. "https://myvault.vault.azure.net".
type AzureKeyVaultSettings struct {
	registration.InstanceConfig `yaml:",inline"`
}

// ParseEndpoint lowercases the vault host and strips any trailing slash so
// equivalent URIs fingerprint identically.
func (s *AzureKeyVaultSettings) ParseEndpoint() error {
	parsed, err := url.Parse(strings.TrimSpace(s.Endpoint()))
	if err != nil {
		return fmt.Errorf("invalid vault URI: %w", err)
	}
	parsed.Host = strings.ToLower(parsed.Host)
	s.SetEndpoint(strings.TrimSuffix(parsed.String(), "/"))
	return nil
}

// AzureKeyVaultProvider registers Azure Key Vault instances.
type AzureKeyVaultProvider struct {
	name   string
	logger *logging.Logger
}

// NewAzureKeyVaultProvider creates an Azure Key Vault provider.
func NewAzureKeyVaultProvider(name string, logger *logging.Logger) *AzureKeyVaultProvider {
	return &AzureKeyVaultProvider{name: name, logger: logger}
}

// NewAzureKeyVaultProviderFactory creates an Azure Key Vault provider factory.
func NewAzureKeyVaultProviderFactory(name string, logger *logging.Logger) (registration.Provider, error) {
	return NewAzureKeyVaultProvider(name, logger), nil
}

// Type returns the provider-type tag.
func (p *AzureKeyVaultProvider) Type() string { return "azure.keyvault" }

// Name returns the configured provider name.
func (p *AzureKeyVaultProvider) Name() string { return p.name }

// ActivitySources returns the instrumentation scopes this provider emits.
func (p *AzureKeyVaultProvider) ActivitySources() []string {
	return []string{"secretsprovider.azure.keyvault"}
}

// ValidateSettings checks the endpoint is an https vault URI.
func (p *AzureKeyVaultProvider) ValidateSettings(settings registration.InstanceSettings) error {
	if _, ok := settings.(*AzureKeyVaultSettings); !ok {
		return fmt.Errorf("expected azure keyvault settings, got %T", settings)
	}
	parsed, err := url.Parse(settings.Endpoint())
	if err != nil {
		return fmt.Errorf("invalid vault URI: %w", err)
	}
	if parsed.Scheme != "https" {
		return fmt.Errorf("vault URI must use https")
	}
	if parsed.Host == "" {
		return fmt.Errorf("vault URI must name a host")
	}
	return nil
}

// AddInstance builds a Key Vault client with the default credential chain and
// registers it. Credential resolution happens on first use, not here.
func (p *AzureKeyVaultProvider) AddInstance(instanceKey string, settings registration.InstanceSettings, target registration.Target) error {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return fmt.Errorf("failed to build Azure credential: %w", err)
	}

	client, err := azsecrets.NewClient(settings.Endpoint(), cred, &azsecrets.ClientOptions{
		ClientOptions: azcore.ClientOptions{
			Telemetry: policy.TelemetryOptions{ApplicationID: "secretsprovider"},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to build Key Vault client: %w", err)
	}

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
