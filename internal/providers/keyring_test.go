package providers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cirreum/secretsprovider/internal/providers"
	"github.com/cirreum/secretsprovider/pkg/registration"
)

// TestKeyringParseEndpoint validates whitespace trimming.
func TestKeyringParseEndpoint(t *testing.T) {
	t.Parallel()

	settings := &providers.KeyringSettings{}
	settings.RawEndpoint = "  myapp/database-password \n"

	require.NoError(t, settings.ParseEndpoint())
	assert.Equal(t, "myapp/database-password", settings.Endpoint())
}

// TestKeyringValidateSettings validates the service/account shape checks.
func TestKeyringValidateSettings(t *testing.T) {
	t.Parallel()

	p := providers.NewKeyringProvider("main", nil)

	tests := []struct {
		name     string
		endpoint string
		wantErr  string
	}{
		{"valid", "myapp/database-password", ""},
		{"account_with_slashes", "myapp/prod/db/password", ""},
		{"no_separator", "myapp", "form <service>/<account>"},
		{"empty_service", "/database-password", "both a service and an account"},
		{"empty_account", "myapp/", "both a service and an account"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			settings := &providers.KeyringSettings{}
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

// TestKeyringAddInstance validates activation registers a client bound to the
// parsed service and account without touching the OS keyring.
func TestKeyringAddInstance(t *testing.T) {
	t.Parallel()

	p := providers.NewKeyringProvider("main", nil)
	settings := &providers.KeyringSettings{}
	settings.RawEndpoint = "myapp/database-password"
	target, services := registration.NewTestTarget(nil)

	require.NoError(t, p.AddInstance("primary", settings, target))

	recorded, ok := services.Service("keyring.main::primary")
	require.True(t, ok)
	handle, ok := recorded.(providers.SourceHandle)
	require.True(t, ok)

	client, ok := handle.Client.(providers.KeyringClient)
	require.True(t, ok)
	assert.Equal(t, "myapp", client.Service)
	assert.Equal(t, "database-password", client.Account)
}

// TestKeyringValidateSettingsWrongType validates the settings type check.
func TestKeyringValidateSettingsWrongType(t *testing.T) {
	t.Parallel()

	p := providers.NewKeyringProvider("main", nil)
	err := p.ValidateSettings(&registration.InstanceConfig{})
	assert.ErrorContains(t, err, "expected keyring settings")
}
