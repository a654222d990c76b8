package registration

import "sort"

// InstanceSettings describes one configured connection of a provider to an
// external endpoint. Provider packages define their own settings structs by
// embedding InstanceConfig and adding fields; they may override ParseEndpoint
// to rewrite shorthand endpoints into canonical form.
//
// After ParseEndpoint runs, the settings are treated as immutable for the
// remainder of registration.
type InstanceSettings interface {
	// Endpoint returns the raw connection/address string. Its semantics are
	// provider-defined: a URI, an ARN, a connection string.
	Endpoint() string

	// SetEndpoint replaces the endpoint. Intended for ParseEndpoint
	// implementations that normalize the configured value in place.
	SetEndpoint(endpoint string)

	// Identifier returns the optional caller-assigned identifier.
	Identifier() string

	// ParseEndpoint normalizes the endpoint in place. The Validator invokes it
	// exactly once per instance, after the endpoint is known to be non-empty
	// and before fingerprinting. The base implementation is a no-op.
	ParseEndpoint() error
}

// InstanceConfig is the base InstanceSettings implementation.
type InstanceConfig struct {
	RawEndpoint string `yaml:"endpoint" json:"endpoint"`
	ID          string `yaml:"identifier,omitempty" json:"identifier,omitempty"`
}

// Endpoint returns the raw endpoint string.
func (c *InstanceConfig) Endpoint() string { return c.RawEndpoint }

// SetEndpoint replaces the endpoint string.
func (c *InstanceConfig) SetEndpoint(endpoint string) { c.RawEndpoint = endpoint }

// Identifier returns the optional instance identifier.
func (c *InstanceConfig) Identifier() string { return c.ID }

// ParseEndpoint is a no-op for the base settings.
func (c *InstanceConfig) ParseEndpoint() error { return nil }

// ProviderSettings holds the bound configuration for one provider: whether to
// subscribe its activity sources, and the named instances to register.
//
// A ProviderSettings with zero instances is legal; registering it is a
// successful no-op.
type ProviderSettings struct {
	// Tracing controls whether the provider's activity sources are subscribed
	// after all instances register. nil means enabled.
	Tracing *bool

	// Instances maps instance keys to their settings. Keys must be unique per
	// provider type+name for the lifetime of the process.
	Instances map[string]InstanceSettings
}

// TracingEnabled reports whether tracing should be configured for the
// provider. Defaults to true when the flag is unset.
func (s *ProviderSettings) TracingEnabled() bool {
	return s == nil || s.Tracing == nil || *s.Tracing
}

// InstanceKeys returns the declared instance keys in lexicographic order, so
// iteration and error reporting stay reproducible across runs.
func (s *ProviderSettings) InstanceKeys() []string {
	if s == nil {
		return nil
	}
	keys := make([]string, 0, len(s.Instances))
	for key := range s.Instances {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
