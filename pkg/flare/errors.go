// errors.go defines the error types surfaced to the host.

package flare

import "fmt"

// ConfigurationError reports a required setting that is missing or unusable.
// It is raised at client construction, never deferred to the first report.
type ConfigurationError struct {
	Setting string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("flare: configuration error: %s: %s", e.Setting, e.Reason)
}

func missingCredentialError() *ConfigurationError {
	return &ConfigurationError{
		Setting: SettingAPIKey,
		Reason:  "an API key must be configured before reports can be sent",
	}
}
