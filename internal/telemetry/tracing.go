// Package telemetry implements the tracing and metrics collaborators the
// registrar reports into: an OpenTelemetry-backed activity-source subscriber
// and a Prometheus observer for registration outcomes.
package telemetry

import (
	"sort"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/cirreum/secretsprovider/internal/logging"
)

// Subscriber enables tracing for named activity sources by materializing an
// OpenTelemetry tracer per source. Subscribing the same source twice is
// idempotent. It implements registration.TracingSubscriber.
type Subscriber struct {
	mu       sync.Mutex
	provider trace.TracerProvider
	tracers  map[string]trace.Tracer
	logger   *logging.Logger
}

// NewSubscriber creates a subscriber backed by provider. A nil provider falls
// back to the global TracerProvider; a nil logger disables debug output.
func NewSubscriber(provider trace.TracerProvider, logger *logging.Logger) *Subscriber {
	if provider == nil {
		provider = otel.GetTracerProvider()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Subscriber{
		provider: provider,
		tracers:  make(map[string]trace.Tracer),
		logger:   logger,
	}
}

// Subscribe enables tracing for each named source. Blank names are skipped.
func (s *Subscriber) Subscribe(sources []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, source := range sources {
		if source == "" {
			continue
		}
		if _, enabled := s.tracers[source]; enabled {
			continue
		}
		s.tracers[source] = s.provider.Tracer(source)
		s.logger.Debug("tracing enabled for activity source %s", source)
	}
	return nil
}

// Tracer returns the tracer for a subscribed source.
func (s *Subscriber) Tracer(source string) (trace.Tracer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tracer, ok := s.tracers[source]
	return tracer, ok
}

// Sources returns the subscribed source names, sorted.
func (s *Subscriber) Sources() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.tracers))
	for name := range s.tracers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
