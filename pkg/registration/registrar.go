package registration

import (
	"errors"

	"github.com/cirreum/secretsprovider/internal/logging"
)

// Registrar sequences provider registration: per instance it claims a
// registration key, runs the validator, and invokes the provider's activation
// hook; after every declared instance succeeds it subscribes the provider's
// activity sources when tracing is enabled.
//
// Registrars share a Ledger; construct one ledger at bootstrap and as many
// registrars as convenient.
type Registrar struct {
	ledger    *Ledger
	validator *Validator
	tracing   TracingSubscriber
	observer  Observer
	logger    *logging.Logger
}

// Option configures a Registrar.
type Option func(*Registrar)

// WithTracingSubscriber sets the telemetry collaborator asked to subscribe
// activity sources. Without one, tracing requests are silently skipped.
func WithTracingSubscriber(subscriber TracingSubscriber) Option {
	return func(r *Registrar) { r.tracing = subscriber }
}

// WithObserver sets the observer notified of registration outcomes.
func WithObserver(observer Observer) Option {
	return func(r *Registrar) { r.observer = observer }
}

// WithLogger sets the registrar's logger.
func WithLogger(logger *logging.Logger) Option {
	return func(r *Registrar) { r.logger = logger }
}

// NewRegistrar creates a registrar backed by ledger.
func NewRegistrar(ledger *Ledger, opts ...Option) *Registrar {
	r := &Registrar{
		ledger:   ledger,
		observer: nopObserver{},
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.validator = NewValidator(ledger, r.logger)
	return r
}

// Register admits every instance declared in settings for provider p, then
// subscribes the provider's activity sources when tracing is enabled.
//
// A nil settings value, or one declaring no instances, is a successful no-op:
// no ledger mutation, no activation, no tracing.
//
// Registration is fail-fast: the first failing instance aborts the remaining
// ones and the error is returned as-is. Instances admitted before the failure
// stay admitted and their ledger claims remain; this subsystem performs
// startup-time wiring and does not roll back.
func (r *Registrar) Register(p Provider, settings *ProviderSettings, target Target) error {
	if p == nil {
		return errors.New("registration: provider must not be nil")
	}
	if settings == nil || len(settings.Instances) == 0 {
		r.logger.Debug("provider %s.%s declares no instances, nothing to register", p.Type(), p.Name())
		return nil
	}

	for _, instanceKey := range settings.InstanceKeys() {
		if err := r.RegisterInstance(p, instanceKey, settings.Instances[instanceKey], target); err != nil {
			return err
		}
	}

	if settings.TracingEnabled() {
		if err := r.subscribeTracing(p); err != nil {
			return err
		}
	}
	return nil
}

// RegisterInstance admits a single instance outside full provider
// registration, using the identical claim, validate, activate sequence.
func (r *Registrar) RegisterInstance(p Provider, instanceKey string, settings InstanceSettings, target Target) error {
	if p == nil {
		return errors.New("registration: provider must not be nil")
	}
	key := NewRegistrationKey(p, instanceKey)

	endpoint := ""
	if settings != nil {
		endpoint = settings.Endpoint()
	}
	if err := r.ledger.ClaimRegistration(key, endpoint); err != nil {
		r.observer.InstanceRejected(key, err)
		return err
	}

	if err := r.validator.ValidateInstance(key, settings, p.ValidateSettings); err != nil {
		r.observer.InstanceRejected(key, err)
		return err
	}

	if err := p.AddInstance(instanceKey, settings, target); err != nil {
		err = &ActivationError{Key: key, Err: err}
		r.observer.InstanceRejected(key, err)
		return err
	}

	r.observer.InstanceRegistered(key)
	r.logger.Info("registered instance %s", key)
	return nil
}

func (r *Registrar) subscribeTracing(p Provider) error {
	sources := p.ActivitySources()
	if r.tracing == nil || len(sources) == 0 {
		return nil
	}
	if err := r.tracing.Subscribe(sources); err != nil {
		return err
	}
	namespace := p.Type() + "." + p.Name()
	r.observer.TracingSubscribed(namespace, sources)
	r.logger.Debug("subscribed %d activity sources for provider %s", len(sources), namespace)
	return nil
}

type nopObserver struct{}

func (nopObserver) InstanceRegistered(RegistrationKey)      {}
func (nopObserver) InstanceRejected(RegistrationKey, error) {}
func (nopObserver) TracingSubscribed(string, []string)      {}
