package providers

import (
	"context"
	"fmt"
	"regexp"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/cirreum/secretsprovider/internal/logging"
	"github.com/cirreum/secretsprovider/pkg/registration"
)

// gcpSecretName matches Secret Manager resource names,
// "projects/<project>/secrets/<secret>".
var gcpSecretName = regexp.MustCompile(`^projects/[^/]+/secrets/[^/]+$`)

// GCPSecretManagerSettings configure one Google Secret Manager endpoint. The
// endpoint is the secret's resource name.
type GCPSecretManagerSettings struct {
	registration.InstanceConfig `yaml:",inline"`

	// CredentialsFile points at a service-account key file. Empty uses
	// application default credentials.
	CredentialsFile string `yaml:"credentials_file,omitempty"`
}

// GCPSecretManagerProvider registers Google Secret Manager instances.
type GCPSecretManagerProvider struct {
	name   string
	logger *logging.Logger
}

// NewGCPSecretManagerProvider creates a GCP Secret Manager provider.
func NewGCPSecretManagerProvider(name string, logger *logging.Logger) *GCPSecretManagerProvider {
	return &GCPSecretManagerProvider{name: name, logger: logger}
}

// NewGCPSecretManagerProviderFactory creates a GCP Secret Manager provider factory.
func NewGCPSecretManagerProviderFactory(name string, logger *logging.Logger) (registration.Provider, error) {
	return NewGCPSecretManagerProvider(name, logger), nil
}

// Type returns the provider-type tag.
func (p *GCPSecretManagerProvider) Type() string { return "gcp.secretmanager" }

// Name returns the configured provider name.
func (p *GCPSecretManagerProvider) Name() string { return p.name }

// ActivitySources returns the instrumentation scopes this provider emits.
func (p *GCPSecretManagerProvider) ActivitySources() []string {
	return []string{"secretsprovider.gcp.secretmanager"}
}

// ValidateSettings checks the endpoint is a Secret Manager resource name.
func (p *GCPSecretManagerProvider) ValidateSettings(settings registration.InstanceSettings) error {
	if _, ok := settings.(*GCPSecretManagerSettings); !ok {
		return fmt.Errorf("expected gcp secretmanager settings, got %T", settings)
	}
	if !gcpSecretName.MatchString(settings.Endpoint()) {
		return fmt.Errorf("endpoint must be a resource name of the form projects/<project>/secrets/<secret>")
	}
	return nil
}

// AddInstance constructs a Secret Manager client and registers it.
func (p *GCPSecretManagerProvider) AddInstance(instanceKey string, settings registration.InstanceSettings, target registration.Target) error {
	s, ok := settings.(*GCPSecretManagerSettings)
	if !ok {
		return fmt.Errorf("expected gcp secretmanager settings, got %T", settings)
	}

	var opts []option.ClientOption
	if s.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(s.CredentialsFile))
	}

	client, err := secretmanager.NewClient(context.Background(), opts...)
	if err != nil {
		if st, ok := status.FromError(err); ok && st.Code() == codes.Unauthenticated {
			return fmt.Errorf("GCP credentials are missing or invalid: %w", err)
		}
		return fmt.Errorf("failed to build Secret Manager client: %w", err)
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
