package providers

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws/arn"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ssm"

	"github.com/cirreum/secretsprovider/internal/logging"
	"github.com/cirreum/secretsprovider/pkg/registration"
)

// AWSSettings configure one AWS-backed secrets endpoint. The endpoint is
// either a Secrets Manager ARN or an "ssm://" parameter path.
type AWSSettings struct {
	registration.InstanceConfig `yaml:",inline"`

	// Region overrides the default region resolution.
	Region string `yaml:"region,omitempty"`

	// Static credentials for LocalStack or testing. Production deployments
	// should rely on the default credential chain.
	AccessKeyID     string `yaml:"access_key_id,omitempty"`
	SecretAccessKey string `yaml:"secret_access_key,omitempty"`
}

// ParseEndpoint trims surrounding whitespace; ARNs and ssm:// paths need no
// further normalization.
func (s *AWSSettings) ParseEndpoint() error {
	s.SetEndpoint(strings.TrimSpace(s.Endpoint()))
	return nil
}

// AWSProvider registers AWS Secrets Manager and SSM Parameter Store
// instances, selecting the service per instance from the endpoint shape.
type AWSProvider struct {
	name   string
	logger *logging.Logger
}

// NewAWSProvider creates an AWS provider with the given name.
func NewAWSProvider(name string, logger *logging.Logger) *AWSProvider {
	return &AWSProvider{name: name, logger: logger}
}

// NewAWSProviderFactory creates an AWS provider factory.
func NewAWSProviderFactory(name string, logger *logging.Logger) (registration.Provider, error) {
	return NewAWSProvider(name, logger), nil
}

// Type returns the provider-type tag.
func (p *AWSProvider) Type() string { return "aws" }

// Name returns the configured provider name.
func (p *AWSProvider) Name() string { return p.name }

// ActivitySources returns the instrumentation scopes this provider emits.
func (p *AWSProvider) ActivitySources() []string {
	return []string{"secretsprovider.aws.secretsmanager", "secretsprovider.aws.ssm"}
}

// ValidateSettings checks the endpoint is a Secrets Manager ARN or an ssm://
// parameter path.
func (p *AWSProvider) ValidateSettings(settings registration.InstanceSettings) error {
	s, ok := settings.(*AWSSettings)
	if !ok {
		return fmt.Errorf("expected aws settings, got %T", settings)
	}
	endpoint := s.Endpoint()

	if strings.HasPrefix(endpoint, "ssm://") {
		if strings.TrimPrefix(endpoint, "ssm://") == "" {
			return fmt.Errorf("ssm endpoint must name a parameter path")
		}
		return nil
	}

	parsed, err := arn.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("endpoint must be a Secrets Manager ARN or an ssm:// path: %w", err)
	}
	if parsed.Service != "secretsmanager" {
		return fmt.Errorf("unsupported AWS service %q in endpoint ARN", parsed.Service)
	}
	return nil
}

// AddInstance loads the AWS configuration, constructs the service client the
// endpoint calls for, and registers it. Client construction performs no
// network I/O.
func (p *AWSProvider) AddInstance(instanceKey string, settings registration.InstanceSettings, target registration.Target) error {
	s, ok := settings.(*AWSSettings)
	if !ok {
		return fmt.Errorf("expected aws settings, got %T", settings)
	}

	var configOpts []func(*config.LoadOptions) error
	if s.Region != "" {
		configOpts = append(configOpts, config.WithRegion(s.Region))
	}
	if s.AccessKeyID != "" && s.SecretAccessKey != "" {
		configOpts = append(configOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(s.AccessKeyID, s.SecretAccessKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(context.Background(), configOpts...)
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}

	var client any
	if strings.HasPrefix(s.Endpoint(), "ssm://") {
		client = ssm.NewFromConfig(cfg)
	} else {
		client = secretsmanager.NewFromConfig(cfg)
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
