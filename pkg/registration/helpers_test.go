package registration_test

import (
	"sync"

	"github.com/cirreum/secretsprovider/pkg/registration"
)

// fakeProvider is a configurable Provider for registrar and validator tests.
type fakeProvider struct {
	providerType string
	providerName string
	sources      []string

	validateErr map[string]error // endpoint -> error returned by ValidateSettings
	activateErr map[string]error // instance key -> error returned by AddInstance

	mu          sync.Mutex
	validated   []string
	activations map[string]int
}

func newFakeProvider(providerType, providerName string) *fakeProvider {
	return &fakeProvider{
		providerType: providerType,
		providerName: providerName,
		validateErr:  make(map[string]error),
		activateErr:  make(map[string]error),
		activations:  make(map[string]int),
	}
}

func (p *fakeProvider) Type() string              { return p.providerType }
func (p *fakeProvider) Name() string              { return p.providerName }
func (p *fakeProvider) ActivitySources() []string { return p.sources }

func (p *fakeProvider) ValidateSettings(settings registration.InstanceSettings) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.validated = append(p.validated, settings.Endpoint())
	return p.validateErr[settings.Endpoint()]
}

func (p *fakeProvider) AddInstance(instanceKey string, settings registration.InstanceSettings, target registration.Target) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.activateErr[instanceKey]; err != nil {
		return err
	}
	p.activations[instanceKey]++
	if target.Services != nil {
		target.Services.Add(p.providerType+"."+p.providerName+"::"+instanceKey, settings)
	}
	return nil
}

func (p *fakeProvider) activationCount(instanceKey string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.activations[instanceKey]
}

func (p *fakeProvider) totalActivations() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	total := 0
	for _, n := range p.activations {
		total += n
	}
	return total
}

// fakeSubscriber records Subscribe calls.
type fakeSubscriber struct {
	mu    sync.Mutex
	calls [][]string
	err   error
}

func (s *fakeSubscriber) Subscribe(sources []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.calls = append(s.calls, append([]string(nil), sources...))
	return nil
}

func (s *fakeSubscriber) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// instance builds base instance settings with the given endpoint.
func instance(endpoint string) *registration.InstanceConfig {
	return &registration.InstanceConfig{RawEndpoint: endpoint}
}

// parseFailSettings fail ParseEndpoint with the configured error.
type parseFailSettings struct {
	registration.InstanceConfig
	err error
}

func (s *parseFailSettings) ParseEndpoint() error { return s.err }

// rewriteSettings rewrite the endpoint to a canonical form in ParseEndpoint.
type rewriteSettings struct {
	registration.InstanceConfig
	canonical string
}

func (s *rewriteSettings) ParseEndpoint() error {
	s.SetEndpoint(s.canonical)
	return nil
}
