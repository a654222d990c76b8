package telemetry

import (
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/cirreum/secretsprovider/pkg/registration"
)

var (
	instancesRegisteredTotal  *prometheus.CounterVec
	instancesRejectedTotal    *prometheus.CounterVec
	tracingSubscriptionsTotal *prometheus.CounterVec

	metricsOnce       sync.Once
	metricsRegistered bool
)

// InitMetrics initializes all Prometheus metrics. Call once at startup if
// metrics are enabled; recording is a no-op until then.
func InitMetrics() {
	metricsOnce.Do(func() {
		instancesRegisteredTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "secretsprovider_instances_registered_total",
				Help: "Total number of provider instances admitted",
			},
			[]string{"provider_type", "provider_name"},
		)

		instancesRejectedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "secretsprovider_instances_rejected_total",
				Help: "Total number of provider instances rejected during registration",
			},
			[]string{"provider_type", "provider_name", "reason"},
		)

		tracingSubscriptionsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "secretsprovider_tracing_subscriptions_total",
				Help: "Total number of activity-source subscription requests",
			},
			[]string{"namespace"},
		)

		metricsRegistered = true
	})
}

// RegistrarMetrics records registration outcomes as Prometheus metrics. It
// implements registration.Observer.
type RegistrarMetrics struct{}

// NewRegistrarMetrics creates a metrics observer. Metrics must be initialized
// via InitMetrics before anything is recorded.
func NewRegistrarMetrics() *RegistrarMetrics {
	return &RegistrarMetrics{}
}

// InstanceRegistered records a successful registration.
func (m *RegistrarMetrics) InstanceRegistered(key registration.RegistrationKey) {
	if !metricsRegistered || instancesRegisteredTotal == nil {
		return
	}
	instancesRegisteredTotal.WithLabelValues(key.ProviderType, key.ProviderName).Inc()
}

// InstanceRejected records a failed registration, labeled by failure kind.
func (m *RegistrarMetrics) InstanceRejected(key registration.RegistrationKey, err error) {
	if !metricsRegistered || instancesRejectedTotal == nil {
		return
	}
	instancesRejectedTotal.WithLabelValues(key.ProviderType, key.ProviderName, rejectionReason(err)).Inc()
}

// TracingSubscribed records an activity-source subscription.
func (m *RegistrarMetrics) TracingSubscribed(namespace string, sources []string) {
	if !metricsRegistered || tracingSubscriptionsTotal == nil {
		return
	}
	tracingSubscriptionsTotal.WithLabelValues(namespace).Inc()
}

// rejectionReason maps a registration error to a bounded label value.
func rejectionReason(err error) string {
	var already *registration.AlreadyRegisteredError
	if errors.As(err, &already) {
		return "already_registered"
	}
	var missingSettings *registration.MissingSettingsError
	if errors.As(err, &missingSettings) {
		return "missing_settings"
	}
	var missingEndpoint *registration.MissingEndpointError
	if errors.As(err, &missingEndpoint) {
		return "missing_endpoint"
	}
	var badParse *registration.EndpointParseError
	if errors.As(err, &badParse) {
		return "endpoint_parse"
	}
	var unresolvable *registration.UnresolvableEndpointError
	if errors.As(err, &unresolvable) {
		return "unresolvable_endpoint"
	}
	var duplicate *registration.DuplicateEndpointError
	if errors.As(err, &duplicate) {
		return "duplicate_endpoint"
	}
	var rejected *registration.ProviderValidationError
	if errors.As(err, &rejected) {
		return "provider_validation"
	}
	var activation *registration.ActivationError
	if errors.As(err, &activation) {
		return "activation"
	}
	return "other"
}

// IsMetricsRegistered returns whether metrics have been initialized.
func IsMetricsRegistered() bool {
	return metricsRegistered
}

// GetInstancesRegisteredTotal returns the registered counter for testing.
func GetInstancesRegisteredTotal() *prometheus.CounterVec {
	return instancesRegisteredTotal
}

// GetInstancesRejectedTotal returns the rejected counter for testing.
func GetInstancesRejectedTotal() *prometheus.CounterVec {
	return instancesRejectedTotal
}

// GetTracingSubscriptionsTotal returns the subscription counter for testing.
func GetTracingSubscriptionsTotal() *prometheus.CounterVec {
	return tracingSubscriptionsTotal
}
