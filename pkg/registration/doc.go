// Package registration governs how secrets provider instances are admitted
// into an application, once, safely.
//
// A provider declares a type tag, a name, and zero or more named instances,
// each pointing at one external endpoint. The Registrar walks the bound
// settings for a provider and, per instance, claims a process-wide
// registration key, validates the instance, and invokes the provider's
// activation hook. A shared Ledger guarantees that no registration key and no
// endpoint (within a provider type+name namespace) is ever claimed twice for
// the lifetime of the process.
//
// # Registering a provider
//
//	ledger := registration.NewLedger()
//	registrar := registration.NewRegistrar(ledger)
//
//	settings := &registration.ProviderSettings{
//	    Instances: map[string]registration.InstanceSettings{
//	        "primary": &registration.InstanceConfig{RawEndpoint: "https://vault.local/a"},
//	    },
//	}
//
//	if err := registrar.Register(myProvider, settings, target); err != nil {
//	    // a failed registration is fatal to startup; nothing is rolled back
//	    return err
//	}
//
// # Implementing a provider
//
// A concrete provider is a small value satisfying the Provider interface:
// it names itself, lists the activity sources it emits, optionally validates
// its settings, and wires admitted instances into the host via AddInstance.
// Provider-specific settings embed InstanceConfig and may override
// ParseEndpoint to normalize shorthand endpoints into canonical form.
//
// # Failure semantics
//
// Every failure is a typed error carrying the offending instance key and the
// provider type/name, never the raw endpoint. Registration is fail-fast:
// the first failure aborts the remaining instances and instances admitted
// before it stay admitted. This subsystem performs startup-time wiring, not
// runtime reconfiguration, so a bad instance must be fixed before the
// application can proceed.
package registration
