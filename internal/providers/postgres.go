package providers

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/cirreum/secretsprovider/internal/logging"
	"github.com/cirreum/secretsprovider/pkg/registration"
)

// PostgresSettings configure one Postgres-backed secrets endpoint. The
// endpoint is either a postgres:// URL or a keyword/value DSN.
type PostgresSettings struct {
	registration.InstanceConfig `yaml:",inline"`

	// SSLMode overrides the sslmode DSN parameter when set.
	SSLMode string `yaml:"sslmode,omitempty"`
}

// ParseEndpoint normalizes postgres:// and postgresql:// URLs into
// keyword/value DSNs so equivalent endpoints fingerprint identically.
func (s *PostgresSettings) ParseEndpoint() error {
	endpoint := s.Endpoint()
	if !strings.HasPrefix(endpoint, "postgres://") && !strings.HasPrefix(endpoint, "postgresql://") {
		return nil
	}
	dsn, err := pq.ParseURL(endpoint)
	if err != nil {
		return fmt.Errorf("invalid postgres URL: %w", err)
	}
	if s.SSLMode != "" && !strings.Contains(dsn, "sslmode=") {
		dsn += " sslmode=" + s.SSLMode
	}
	s.SetEndpoint(dsn)
	return nil
}

// DBOpener opens a database handle for a DSN. Tests inject one backed by
// sqlmock; the default uses the pq driver. sql.Open does not connect, so the
// activation hook performs no I/O.
type DBOpener func(dsn string) (*sql.DB, error)

// PostgresProvider registers Postgres secret-store instances.
type PostgresProvider struct {
	name   string
	logger *logging.Logger
	open   DBOpener
}

// PostgresOption configures a PostgresProvider.
type PostgresOption func(*PostgresProvider)

// WithPostgresOpener sets a custom database opener (for testing).
func WithPostgresOpener(open DBOpener) PostgresOption {
	return func(p *PostgresProvider) { p.open = open }
}

// NewPostgresProvider creates a Postgres provider with the given name.
func NewPostgresProvider(name string, logger *logging.Logger, opts ...PostgresOption) *PostgresProvider {
	p := &PostgresProvider{
		name:   name,
		logger: logger,
		open: func(dsn string) (*sql.DB, error) {
			return sql.Open("postgres", dsn)
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewPostgresProviderFactory creates a Postgres provider factory.
func NewPostgresProviderFactory(name string, logger *logging.Logger) (registration.Provider, error) {
	return NewPostgresProvider(name, logger), nil
}

// Type returns the provider-type tag.
func (p *PostgresProvider) Type() string { return "postgres" }

// Name returns the configured provider name.
func (p *PostgresProvider) Name() string { return p.name }

// ActivitySources returns the instrumentation scopes this provider emits.
func (p *PostgresProvider) ActivitySources() []string {
	return []string{"secretsprovider.postgres"}
}

// ValidateSettings checks that the normalized DSN names a host or database.
func (p *PostgresProvider) ValidateSettings(settings registration.InstanceSettings) error {
	s, ok := settings.(*PostgresSettings)
	if !ok {
		return fmt.Errorf("expected postgres settings, got %T", settings)
	}
	dsn := s.Endpoint()
	if !strings.Contains(dsn, "host=") && !strings.Contains(dsn, "dbname=") {
		return fmt.Errorf("postgres DSN must name a host or a database")
	}
	return nil
}

// AddInstance opens a database handle for the instance and registers it.
func (p *PostgresProvider) AddInstance(instanceKey string, settings registration.InstanceSettings, target registration.Target) error {
	db, err := p.open(settings.Endpoint())
	if err != nil {
		return fmt.Errorf("failed to open postgres handle: %w", err)
	}

	handle := SourceHandle{
		ProviderType: p.Type(),
		ProviderName: p.name,
		InstanceKey:  instanceKey,
		Identifier:   settings.Identifier(),
		Client:       db,
	}
	target.Services.Add(handle.Instance(), handle)
	return nil
}
