// Package providers contains the built-in secrets providers. Each implements
// the registration capability interface: it validates its instance settings
// and, once an instance is admitted, registers a SourceHandle with the host's
// service registry. Actually fetching secret values is the host's concern.
package providers

// SourceHandle is the service a provider's activation hook contributes for
// every admitted instance: a named handle to one configured endpoint plus the
// provider-specific client object.
type SourceHandle struct {
	ProviderType string
	ProviderName string
	InstanceKey  string
	Identifier   string

	// Client is the provider-specific client handle: a *sql.DB opener, an
	// SDK client, a keyring accessor. Its concrete type is documented per
	// provider.
	Client any
}

// Instance returns the rendered registration key of the admitted instance.
func (h SourceHandle) Instance() string {
	return h.ProviderType + "." + h.ProviderName + "::" + h.InstanceKey
}
