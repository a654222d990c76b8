package registration

// RegistrationKey identifies one instance within one provider type+name.
// Its rendered form is the uniqueness token recorded in the Ledger.
type RegistrationKey struct {
	ProviderType string
	ProviderName string
	InstanceKey  string
}

// NewRegistrationKey derives the key for an instance of provider p.
func NewRegistrationKey(p Provider, instanceKey string) RegistrationKey {
	return RegistrationKey{
		ProviderType: p.Type(),
		ProviderName: p.Name(),
		InstanceKey:  instanceKey,
	}
}

// String renders the ledger token, "<ProviderType>.<ProviderName>::<InstanceKey>".
func (k RegistrationKey) String() string {
	return k.Namespace() + "::" + k.InstanceKey
}

// Namespace returns the provider type+name scope, "<ProviderType>.<ProviderName>".
// Endpoint fingerprints are deduplicated within this scope only, so two
// different provider kinds may legitimately point at the same physical
// endpoint.
func (k RegistrationKey) Namespace() string {
	return k.ProviderType + "." + k.ProviderName
}
