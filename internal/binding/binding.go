// Package binding turns raw YAML configuration into typed provider settings.
//
// The configuration convention is one section per provider:
//
//	vault:
//	  tracing: true
//	  instances:
//	    primary:
//	      endpoint: https://vault.local/a
//	      identifier: primary-store
//
// Sections are schema-validated before decoding so authoring mistakes surface
// as configuration errors rather than as registration failures.
package binding

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	dserrors "github.com/cirreum/secretsprovider/internal/errors"
	"github.com/cirreum/secretsprovider/internal/logging"
	"github.com/cirreum/secretsprovider/pkg/registration"
)

// sectionSchema validates the provider-section convention. Instance blocks
// allow extra fields because providers extend the settings shape.
const sectionSchema = `{
  "type": "object",
  "properties": {
    "tracing": {"type": "boolean"},
    "instances": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "properties": {
          "endpoint": {"type": "string"},
          "identifier": {"type": "string"}
        },
        "additionalProperties": true
      }
    }
  },
  "additionalProperties": false
}`

// Binder decodes provider sections into registration settings.
type Binder struct {
	logger *logging.Logger
	schema *gojsonschema.Schema
}

// New creates a binder. A nil logger disables debug output.
func New(logger *logging.Logger) (*Binder, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(sectionSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to compile settings schema: %w", err)
	}
	return &Binder{logger: logger, schema: schema}, nil
}

// Document is a parsed configuration file: top-level sections keyed by the
// arbitrary section names chosen by the embedding application.
type Document struct {
	sections map[string]rawSection
}

type rawSection struct {
	Tracing   *bool                     `yaml:"tracing" json:"tracing,omitempty"`
	Instances map[string]map[string]any `yaml:"instances" json:"instances,omitempty"`
}

// Parse reads a YAML document and schema-validates every section. Sections
// are validated from their raw form so unknown fields and wrong types are
// caught before any decoding drops them.
func (b *Binder) Parse(data []byte) (*Document, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, dserrors.ConfigError{
			Message:    "invalid YAML syntax in provider configuration",
			Suggestion: "Check for indentation errors, missing quotes, or invalid characters",
		}
	}

	sections := make(map[string]rawSection, len(raw))
	for name, value := range raw {
		if err := b.validateSection(name, value); err != nil {
			return nil, err
		}
		var section rawSection
		if err := decodeValue(value, &section); err != nil {
			return nil, dserrors.ConfigError{
				Field:      name,
				Message:    "provider section could not be decoded",
				Suggestion: err.Error(),
			}
		}
		sections[name] = section
	}

	b.logger.Debug("parsed %d provider sections", len(sections))
	return &Document{sections: sections}, nil
}

func (b *Binder) validateSection(name string, section any) error {
	jsonData, err := json.Marshal(section)
	if err != nil {
		return fmt.Errorf("failed to marshal section %q for validation: %w", name, err)
	}

	result, err := b.schema.Validate(gojsonschema.NewBytesLoader(jsonData))
	if err != nil {
		return fmt.Errorf("schema validation of section %q failed: %w", name, err)
	}
	if !result.Valid() {
		var details []string
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return dserrors.ConfigError{
			Field:      name,
			Message:    "provider section does not match the expected shape",
			Suggestion: strings.Join(details, "; "),
		}
	}
	return nil
}

// Sections returns the section names present in the document, sorted.
func (d *Document) Sections() []string {
	names := make([]string, 0, len(d.sections))
	for name := range d.sections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether the document contains the named section.
func (d *Document) Has(name string) bool {
	_, ok := d.sections[name]
	return ok
}

// InstanceFactory produces an empty provider-specific settings value for one
// instance; BindSection decodes the raw instance block into it.
type InstanceFactory func() registration.InstanceSettings

// BindSection decodes the named section into ProviderSettings, using
// newInstance to construct each instance's concrete settings type. A missing
// section yields nil settings, which registers as a no-op.
func (b *Binder) BindSection(doc *Document, name string, newInstance InstanceFactory) (*registration.ProviderSettings, error) {
	section, ok := doc.sections[name]
	if !ok {
		b.logger.Debug("no configuration section %q, provider will be a no-op", name)
		return nil, nil
	}

	settings := &registration.ProviderSettings{
		Tracing:   section.Tracing,
		Instances: make(map[string]registration.InstanceSettings, len(section.Instances)),
	}

	for instanceKey, raw := range section.Instances {
		instance := newInstance()
		if err := decodeInstance(raw, instance); err != nil {
			return nil, dserrors.ConfigError{
				Field:      name + ".instances." + instanceKey,
				Message:    "instance settings could not be decoded",
				Suggestion: err.Error(),
			}
		}
		settings.Instances[instanceKey] = instance
	}
	return settings, nil
}

// decodeInstance re-marshals a raw instance map into the provider's concrete
// settings struct, honoring its yaml tags.
func decodeInstance(raw map[string]any, into registration.InstanceSettings) error {
	return decodeValue(raw, into)
}

func decodeValue(raw any, into any) error {
	data, err := yaml.Marshal(raw)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, into)
}
