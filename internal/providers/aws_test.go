package providers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cirreum/secretsprovider/internal/providers"
	"github.com/cirreum/secretsprovider/pkg/registration"
)

// TestAWSParseEndpoint validates whitespace trimming.
func TestAWSParseEndpoint(t *testing.T) {
	t.Parallel()

	settings := &providers.AWSSettings{}
	settings.RawEndpoint = "  ssm:///prod/db/password \n"

	require.NoError(t, settings.ParseEndpoint())
	assert.Equal(t, "ssm:///prod/db/password", settings.Endpoint())
}

// TestAWSValidateSettings validates endpoint shape checks for both backing
// services.
func TestAWSValidateSettings(t *testing.T) {
	t.Parallel()

	p := providers.NewAWSProvider("main", nil)

	tests := []struct {
		name     string
		endpoint string
		wantErr  string
	}{
		{
			name:     "secretsmanager_arn",
			endpoint: "arn:aws:secretsmanager:us-east-1:123456789012:secret:prod/db-AbCdEf",
		},
		{
			name:     "ssm_path",
			endpoint: "ssm:///prod/db/password",
		},
		{
			name:     "ssm_empty_path",
			endpoint: "ssm://",
			wantErr:  "must name a parameter path",
		},
		{
			name:     "not_an_arn",
			endpoint: "https://secretsmanager.us-east-1.amazonaws.com",
			wantErr:  "must be a Secrets Manager ARN",
		},
		{
			name:     "wrong_service_arn",
			endpoint: "arn:aws:s3:::my-bucket",
			wantErr:  "unsupported AWS service",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			settings := &providers.AWSSettings{}
			settings.RawEndpoint = tt.endpoint

			err := p.ValidateSettings(settings)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

// TestAWSValidateSettingsWrongType validates the settings type check.
func TestAWSValidateSettingsWrongType(t *testing.T) {
	t.Parallel()

	p := providers.NewAWSProvider("main", nil)
	err := p.ValidateSettings(&registration.InstanceConfig{})
	assert.ErrorContains(t, err, "expected aws settings")
}

// TestAWSProviderIdentity validates the type tag and activity sources.
func TestAWSProviderIdentity(t *testing.T) {
	t.Parallel()

	p := providers.NewAWSProvider("prod", nil)
	assert.Equal(t, "aws", p.Type())
	assert.Equal(t, "prod", p.Name())
	assert.Equal(t, []string{"secretsprovider.aws.secretsmanager", "secretsprovider.aws.ssm"}, p.ActivitySources())
}
