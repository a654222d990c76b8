package providers

import (
	"database/sql"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/cirreum/secretsprovider/internal/logging"
	"github.com/cirreum/secretsprovider/pkg/registration"
)

// MySQLSettings configure one MySQL-backed secrets endpoint. The endpoint is
// a go-sql-driver DSN, e.g. "user:pass@tcp(db.local:3306)/secrets".
type MySQLSettings struct {
	registration.InstanceConfig `yaml:",inline"`
}

// ParseEndpoint canonicalizes the DSN through the driver's parser so
// equivalent spellings fingerprint identically.
func (s *MySQLSettings) ParseEndpoint() error {
	cfg, err := mysql.ParseDSN(s.Endpoint())
	if err != nil {
		return fmt.Errorf("invalid mysql DSN: %w", err)
	}
	s.SetEndpoint(cfg.FormatDSN())
	return nil
}

// MySQLProvider registers MySQL secret-store instances.
type MySQLProvider struct {
	name   string
	logger *logging.Logger
	open   DBOpener
}

// MySQLOption configures a MySQLProvider.
type MySQLOption func(*MySQLProvider)

// WithMySQLOpener sets a custom database opener (for testing).
func WithMySQLOpener(open DBOpener) MySQLOption {
	return func(p *MySQLProvider) { p.open = open }
}

// NewMySQLProvider creates a MySQL provider with the given name.
func NewMySQLProvider(name string, logger *logging.Logger, opts ...MySQLOption) *MySQLProvider {
	p := &MySQLProvider{
		name:   name,
		logger: logger,
		open: func(dsn string) (*sql.DB, error) {
			return sql.Open("mysql", dsn)
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewMySQLProviderFactory creates a MySQL provider factory.
func NewMySQLProviderFactory(name string, logger *logging.Logger) (registration.Provider, error) {
	return NewMySQLProvider(name, logger), nil
}

// Type returns the provider-type tag.
func (p *MySQLProvider) Type() string { return "mysql" }

// Name returns the configured provider name.
func (p *MySQLProvider) Name() string { return p.name }

// ActivitySources returns the instrumentation scopes this provider emits.
func (p *MySQLProvider) ActivitySources() []string {
	return []string{"secretsprovider.mysql"}
}

// ValidateSettings checks that the DSN addresses a server and a database.
func (p *MySQLProvider) ValidateSettings(settings registration.InstanceSettings) error {
	s, ok := settings.(*MySQLSettings)
	if !ok {
		return fmt.Errorf("expected mysql settings, got %T", settings)
	}
	cfg, err := mysql.ParseDSN(s.Endpoint())
	if err != nil {
		return fmt.Errorf("invalid mysql DSN: %w", err)
	}
	if cfg.Addr == "" {
		return fmt.Errorf("mysql DSN must name a server address")
	}
	if cfg.DBName == "" {
		return fmt.Errorf("mysql DSN must name a database")
	}
	return nil
}

// AddInstance opens a database handle for the instance and registers it.
func (p *MySQLProvider) AddInstance(instanceKey string, settings registration.InstanceSettings, target registration.Target) error {
	db, err := p.open(settings.Endpoint())
	if err != nil {
		return fmt.Errorf("failed to open mysql handle: %w", err)
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
