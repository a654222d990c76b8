package providers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cirreum/secretsprovider/internal/providers"
	"github.com/cirreum/secretsprovider/pkg/registration"
)

// TestAkeylessValidateSettings validates the gateway URL checks.
func TestAkeylessValidateSettings(t *testing.T) {
	t.Parallel()

	p := providers.NewAkeylessProvider("main", nil)

	tests := []struct {
		name     string
		endpoint string
		wantErr  string
	}{
		{"public_gateway", "https://api.akeyless.io", ""},
		{"self_hosted_http", "http://gateway.internal:8080", ""},
		{"bad_scheme", "ftp://gateway.internal", "must use http or https"},
		{"no_host", "https://", "must name a host"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			settings := &providers.AkeylessSettings{}
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

// TestAkeylessAddInstance validates activation registers a gateway client
// handle. Client construction performs no I/O.
func TestAkeylessAddInstance(t *testing.T) {
	t.Parallel()

	p := providers.NewAkeylessProvider("main", nil)
	settings := &providers.AkeylessSettings{AccessID: "p-12345"}
	settings.RawEndpoint = "https://api.akeyless.io"
	target, services := registration.NewTestTarget(nil)

	require.NoError(t, p.AddInstance("primary", settings, target))

	recorded, ok := services.Service("akeyless.main::primary")
	require.True(t, ok)
	handle, ok := recorded.(providers.SourceHandle)
	require.True(t, ok)
	assert.NotNil(t, handle.Client)
}

// TestAkeylessValidateSettingsWrongType validates the settings type check.
func TestAkeylessValidateSettingsWrongType(t *testing.T) {
	t.Parallel()

	p := providers.NewAkeylessProvider("main", nil)
	err := p.ValidateSettings(&registration.InstanceConfig{})
	assert.ErrorContains(t, err, "expected akeyless settings")
}
