package registration

import (
	"strings"

	"github.com/cirreum/secretsprovider/internal/logging"
)

// ValidateFunc is a provider-specific validation hook. nil is treated as a
// no-op.
type ValidateFunc func(settings InstanceSettings) error

// Validator performs the structural checks every instance must pass before
// its provider sees it. Checks run in a fixed order and the first failure
// short-circuits the rest:
//
//  1. settings present
//  2. endpoint non-blank
//  3. ParseEndpoint (may rewrite the endpoint in place)
//  4. fingerprint resolvable
//  5. endpoint unclaimed within the provider namespace
//  6. provider-specific validation
//
// Structural checks are provider-agnostic and cheap; the provider hook runs
// last so it always sees a sound, deduplicated instance.
type Validator struct {
	ledger *Ledger
	logger *logging.Logger
}

// NewValidator creates a validator backed by ledger. A nil logger disables
// debug output.
func NewValidator(ledger *Ledger, logger *logging.Logger) *Validator {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Validator{ledger: ledger, logger: logger}
}

// ValidateInstance runs the validation sequence for one instance and claims
// its endpoint fingerprint in the ledger. validate is the provider-specific
// hook; its failure propagates wrapped in ProviderValidationError with the
// cause unchanged.
func (v *Validator) ValidateInstance(key RegistrationKey, settings InstanceSettings, validate ValidateFunc) error {
	if settings == nil {
		return &MissingSettingsError{Key: key}
	}
	if strings.TrimSpace(settings.Endpoint()) == "" {
		return &MissingEndpointError{Key: key}
	}
	if err := settings.ParseEndpoint(); err != nil {
		return &EndpointParseError{Key: key, Err: err}
	}

	fingerprint, err := FingerprintEndpoint(settings.Endpoint())
	if err != nil || fingerprint == "" {
		return &UnresolvableEndpointError{Key: key}
	}
	if err := v.ledger.ClaimEndpoint(key.Namespace(), fingerprint, key.InstanceKey); err != nil {
		return err
	}
	v.logger.Debug("claimed endpoint %s for instance %s", fingerprint.Short(), key)

	if validate != nil {
		if err := validate(settings); err != nil {
			return &ProviderValidationError{Key: key, Err: err}
		}
	}
	return nil
}
