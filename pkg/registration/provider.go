package registration

// Provider is the capability a concrete secrets provider implements to take
// part in registration. It is deliberately small: a provider names itself,
// lists the activity sources it emits, optionally validates its settings, and
// wires admitted instances into the host application.
type Provider interface {
	// Type returns the provider-type tag, e.g. "Secrets" or "postgres".
	// Together with Name it namespaces registration keys and endpoint
	// fingerprints.
	Type() string

	// Name returns the provider name, e.g. "Vault" or "orders-db".
	Name() string

	// ActivitySources returns the instrumentation scope names to subscribe
	// when the provider's settings enable tracing. May be empty.
	ActivitySources() []string

	// ValidateSettings performs provider-specific validation of an instance.
	// It runs last in the validation sequence, so it always sees a
	// structurally sound, already-deduplicated instance. Returning nil admits
	// the instance.
	ValidateSettings(settings InstanceSettings) error

	// AddInstance is the activation hook: it wires a validated instance into
	// the application via the target's collaborator handles. It is invoked
	// exactly once per admitted instance, is expected to be side-effect-only,
	// and is never retried.
	AddInstance(instanceKey string, settings InstanceSettings, target Target) error
}

// ServiceRegistry receives the services a provider's activation hook
// contributes. The hosting application's container implements it.
type ServiceRegistry interface {
	// Add registers a named service value with the host.
	Add(name string, service any)
}

// ConfigSource exposes the application's bound configuration sections to
// activation hooks that need settings beyond their own instance.
type ConfigSource interface {
	// Section returns the raw configuration section with the given name.
	Section(name string) (map[string]any, bool)
}

// Target bundles the collaborator handles handed to activation hooks: the
// service-registration target and the configuration-source target.
type Target struct {
	Services ServiceRegistry
	Config   ConfigSource
}

// TracingSubscriber is the telemetry collaborator. The Registrar asks it to
// enable tracing for a provider's activity sources at most once per
// successful Register call; implementations may treat repeated subscriptions
// of the same source as idempotent.
type TracingSubscriber interface {
	Subscribe(sources []string) error
}

// Observer receives registration outcomes. Implementations must be cheap and
// must not block; the Registrar calls them inline.
type Observer interface {
	// InstanceRegistered is called after an instance is claimed, validated,
	// and activated.
	InstanceRegistered(key RegistrationKey)

	// InstanceRejected is called when any step of the sequence fails.
	InstanceRejected(key RegistrationKey, err error)

	// TracingSubscribed is called after a provider's activity sources are
	// subscribed.
	TracingSubscribed(namespace string, sources []string)
}
