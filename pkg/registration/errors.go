package registration

import "fmt"

// AlreadyRegisteredError reports a second claim of a registration key. It
// signals a configuration authoring mistake: duplicate instance keys, or the
// same provider registered twice.
type AlreadyRegisteredError struct {
	Key RegistrationKey
}

func (e *AlreadyRegisteredError) Error() string {
	return fmt.Sprintf("instance %q of provider %s is already registered", e.Key.InstanceKey, e.Key.Namespace())
}

// MissingSettingsError reports an instance entry with no settings object.
type MissingSettingsError struct {
	Key RegistrationKey
}

func (e *MissingSettingsError) Error() string {
	return fmt.Sprintf("no settings bound for instance %q of provider %s", e.Key.InstanceKey, e.Key.Namespace())
}

// MissingEndpointError reports an instance whose endpoint is blank.
type MissingEndpointError struct {
	Key RegistrationKey
}

func (e *MissingEndpointError) Error() string {
	return fmt.Sprintf("instance %q of provider %s has no endpoint configured", e.Key.InstanceKey, e.Key.Namespace())
}

// EndpointParseError reports a failure signalled by a provider's
// ParseEndpoint override. The cause passes through unchanged via Unwrap.
type EndpointParseError struct {
	Key RegistrationKey
	Err error
}

func (e *EndpointParseError) Error() string {
	return fmt.Sprintf("endpoint for instance %q of provider %s could not be parsed: %v", e.Key.InstanceKey, e.Key.Namespace(), e.Err)
}

func (e *EndpointParseError) Unwrap() error { return e.Err }

// UnresolvableEndpointError reports that fingerprinting an endpoint failed to
// produce a usable token.
type UnresolvableEndpointError struct {
	Key RegistrationKey
}

func (e *UnresolvableEndpointError) Error() string {
	return fmt.Sprintf("endpoint for instance %q of provider %s could not be fingerprinted", e.Key.InstanceKey, e.Key.Namespace())
}

// DuplicateEndpointError reports that two instances within the same provider
// type+name namespace resolve to the same endpoint fingerprint. The raw
// endpoint is never included.
type DuplicateEndpointError struct {
	// Namespace is the provider type+name scope the collision occurred in.
	Namespace string
	// InstanceKey is the instance whose claim was rejected.
	InstanceKey string
	// ClaimedBy is the instance that already holds the endpoint.
	ClaimedBy string
}

func (e *DuplicateEndpointError) Error() string {
	return fmt.Sprintf("instance %q of provider %s resolves to the same endpoint as instance %q", e.InstanceKey, e.Namespace, e.ClaimedBy)
}

// ProviderValidationError reports that the provider-specific validation hook
// rejected the settings. The provider's message and cause pass through
// unchanged via Unwrap.
type ProviderValidationError struct {
	Key RegistrationKey
	Err error
}

func (e *ProviderValidationError) Error() string {
	return fmt.Sprintf("provider %s rejected instance %q: %v", e.Key.Namespace(), e.Key.InstanceKey, e.Err)
}

func (e *ProviderValidationError) Unwrap() error { return e.Err }

// ActivationError reports that a provider's activation hook failed while
// wiring an admitted instance. Claims made for the instance remain in the
// ledger; activation hooks are not retried.
type ActivationError struct {
	Key RegistrationKey
	Err error
}

func (e *ActivationError) Error() string {
	return fmt.Sprintf("activation of instance %q of provider %s failed: %v", e.Key.InstanceKey, e.Key.Namespace(), e.Err)
}

func (e *ActivationError) Unwrap() error { return e.Err }
