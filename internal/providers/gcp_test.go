package providers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cirreum/secretsprovider/internal/providers"
	"github.com/cirreum/secretsprovider/pkg/registration"
)

// TestGCPSecretManagerValidateSettings validates the resource-name check.
func TestGCPSecretManagerValidateSettings(t *testing.T) {
	t.Parallel()

	p := providers.NewGCPSecretManagerProvider("main", nil)

	tests := []struct {
		name     string
		endpoint string
		wantErr  bool
	}{
		{"valid", "projects/acme-prod/secrets/db-password", false},
		{"missing_secret", "projects/acme-prod/secrets", true},
		{"extra_segment", "projects/acme-prod/secrets/db-password/versions/1", true},
		{"wrong_prefix", "folders/acme-prod/secrets/db-password", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			settings := &providers.GCPSecretManagerSettings{}
			settings.RawEndpoint = tt.endpoint

			err := p.ValidateSettings(settings)
			if tt.wantErr {
				assert.ErrorContains(t, err, "resource name")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestGCPSecretManagerValidateSettingsWrongType validates the settings type
// check.
func TestGCPSecretManagerValidateSettingsWrongType(t *testing.T) {
	t.Parallel()

	p := providers.NewGCPSecretManagerProvider("main", nil)
	err := p.ValidateSettings(&registration.InstanceConfig{})
	assert.ErrorContains(t, err, "expected gcp secretmanager settings")
}

// TestGCPSecretManagerProviderIdentity validates the type tag and activity
// sources.
func TestGCPSecretManagerProviderIdentity(t *testing.T) {
	t.Parallel()

	p := providers.NewGCPSecretManagerProvider("prod", nil)
	assert.Equal(t, "gcp.secretmanager", p.Type())
	assert.Equal(t, "prod", p.Name())
	assert.Equal(t, []string{"secretsprovider.gcp.secretmanager"}, p.ActivitySources())
}
