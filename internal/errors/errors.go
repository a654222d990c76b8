// Package errors decorates registration failures with the context and
// remediation hints shown to operators at startup.
package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cirreum/secretsprovider/pkg/registration"
)

// UserError represents an error that should be shown to the user with
// helpful context.
type UserError struct {
	Message    string
	Suggestion string
	Details    string
	Err        error
}

func (e UserError) Error() string {
	var parts []string

	if e.Message != "" {
		parts = append(parts, e.Message)
	} else if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	if e.Details != "" {
		parts = append(parts, "\n  Details: "+e.Details)
	}

	if e.Suggestion != "" {
		parts = append(parts, "\n  💡 Try: "+e.Suggestion)
	}

	return strings.Join(parts, "")
}

func (e UserError) Unwrap() error {
	return e.Err
}

// ConfigError represents a configuration error with helpful context.
type ConfigError struct {
	Field      string
	Value      interface{}
	Message    string
	Suggestion string
}

func (e ConfigError) Error() string {
	msg := "Configuration error"
	if e.Field != "" {
		msg += fmt.Sprintf(" in field '%s'", e.Field)
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	msg += ": " + e.Message

	if e.Suggestion != "" {
		msg += "\n  💡 " + e.Suggestion
	}

	return msg
}

// Describe wraps a registration failure in a UserError carrying a
// remediation hint for the specific failure kind. Errors that are not part of
// the registration taxonomy pass through unchanged.
func Describe(err error) error {
	if err == nil {
		return nil
	}
	suggestion := registrationSuggestion(err)
	if suggestion == "" {
		return err
	}
	return UserError{
		Message:    "Provider registration failed",
		Details:    err.Error(),
		Suggestion: suggestion,
		Err:        err,
	}
}

// registrationSuggestion returns a remediation hint for a registration error.
func registrationSuggestion(err error) string {
	var already *registration.AlreadyRegisteredError
	if errors.As(err, &already) {
		return "Instance keys must be unique per provider. Check for duplicate instance sections or a provider registered twice"
	}

	var missingSettings *registration.MissingSettingsError
	if errors.As(err, &missingSettings) {
		return "Add a settings block for the instance, or remove the empty instance key"
	}

	var missingEndpoint *registration.MissingEndpointError
	if errors.As(err, &missingEndpoint) {
		return "Set the 'endpoint' field for the instance"
	}

	var badParse *registration.EndpointParseError
	if errors.As(err, &badParse) {
		return "Fix the endpoint format; see the provider's documentation for the expected shape"
	}

	var duplicate *registration.DuplicateEndpointError
	if errors.As(err, &duplicate) {
		return "Two instances of the same provider point at the same endpoint. Remove one, or give it a distinct endpoint"
	}

	var rejected *registration.ProviderValidationError
	if errors.As(err, &rejected) {
		return "The provider rejected the instance settings; the underlying message explains which field"
	}

	var activation *registration.ActivationError
	if errors.As(err, &activation) {
		return "Activation failed after the instance was admitted. Earlier instances stay registered; fix the cause and restart"
	}

	return ""
}
