package registration

import (
	"sync"

	"github.com/cirreum/secretsprovider/internal/secure"
)

// Ledger is the process-wide record of claimed registration keys and endpoint
// fingerprints. Construct one at application bootstrap and share it across
// every Registrar; entries are never removed during normal operation. This is
// a safety ledger, not a cache.
//
// Both claim operations are atomic check-and-inserts under one mutex, so
// concurrent registrations from independent goroutines cannot both win the
// same key.
type Ledger struct {
	mu sync.Mutex
	// registrations maps rendered registration keys to the claimed endpoint,
	// sealed in encrypted memory so the raw value never sits in plain heap.
	registrations map[string]*secure.Buffer
	// endpoints maps namespace-qualified fingerprints to the claiming
	// instance key.
	endpoints map[string]string
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		registrations: make(map[string]*secure.Buffer),
		endpoints:     make(map[string]string),
	}
}

// ClaimRegistration records key as registered. The first claim succeeds;
// every later claim of the same key fails with AlreadyRegisteredError,
// regardless of whether the endpoint differs.
func (l *Ledger) ClaimRegistration(key RegistrationKey, endpoint string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	token := key.String()
	if _, claimed := l.registrations[token]; claimed {
		return &AlreadyRegisteredError{Key: key}
	}
	// A claim with no endpoint still reserves the key; there is just nothing
	// to seal. The validator rejects the instance right after.
	var sealed *secure.Buffer
	if endpoint != "" {
		sealed = secure.NewBuffer([]byte(endpoint))
	}
	l.registrations[token] = sealed
	return nil
}

// ClaimEndpoint records fingerprint as claimed within namespace. The first
// claim succeeds; a later claim of the same fingerprint in the same namespace
// fails with DuplicateEndpointError naming both instances. The same
// fingerprint may be claimed freely under different namespaces.
func (l *Ledger) ClaimEndpoint(namespace string, fingerprint Fingerprint, instanceKey string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	token := namespace + "::" + string(fingerprint)
	if owner, claimed := l.endpoints[token]; claimed {
		return &DuplicateEndpointError{
			Namespace:   namespace,
			InstanceKey: instanceKey,
			ClaimedBy:   owner,
		}
	}
	l.endpoints[token] = instanceKey
	return nil
}

// HasRegistration reports whether key has been claimed.
func (l *Ledger) HasRegistration(key RegistrationKey) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, claimed := l.registrations[key.String()]
	return claimed
}

// HasEndpoint reports whether fingerprint has been claimed within namespace.
func (l *Ledger) HasEndpoint(namespace string, fingerprint Fingerprint) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, claimed := l.endpoints[namespace+"::"+string(fingerprint)]
	return claimed
}

// RegistrationCount returns the number of claimed registration keys.
func (l *Ledger) RegistrationCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.registrations)
}

// EndpointCount returns the number of claimed endpoint fingerprints across
// all namespaces.
func (l *Ledger) EndpointCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.endpoints)
}
