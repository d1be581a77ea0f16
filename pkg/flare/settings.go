// settings.go implements the layered configuration resolver: fixed defaults
// registered at construction, host overrides layered on top, override winning
// on every read.

package flare

import (
	"sync"

	"go.uber.org/zap"
)

// Setting names recognized by the resolver. Hosts may store additional names
// via Set; a name with neither an override nor a default reads as nil.
const (
	SettingAPIKey             = "api_key"
	SettingAPIURL             = "api_url"
	SettingVersion            = "version"
	SettingIgnoreList         = "ignore_list"
	SettingCustomData         = "custom_data"
	SettingReportingEnabled   = "reporting_enabled"
	SettingLogger             = "logger"
	SettingFailsafeLogger     = "failsafe_logger"
	SettingAffectedUserMethod = "affected_user_method"
	SettingAffectedUserIdent  = "affected_user_identifier"
	SettingFilteredParameters = "filtered_parameters"
	SettingProxyHost          = "proxy_host"
	SettingProxyPort          = "proxy_port"
	SettingProxyUser          = "proxy_user"
	SettingProxyPassword      = "proxy_password"
)

// DefaultAPIURL is the collection endpoint reports are posted to unless the
// host overrides it.
const DefaultAPIURL = "https://api.flarehq.io"

// DefaultIgnoreList returns exception class names that are routine web
// traffic noise rather than real errors: missing records, unroutable paths,
// stale authenticity tokens.
func DefaultIgnoreList() []string {
	return []string{
		"RecordNotFound",
		"RoutingError",
		"InvalidAuthenticityToken",
		"TamperedWithCookie",
		"UnknownAction",
		"ActionNotFound",
		"DocumentNotFound",
	}
}

// DefaultFilteredParameters returns the parameter names redacted from form
// data before transmission.
func DefaultFilteredParameters() []string {
	return []string{"password", "card_number", "cvv"}
}

// Settings is the process-wide configuration state. Reads are concurrent-safe
// against override writes; settings are independent, so no cross-setting
// consistency is provided or needed.
type Settings struct {
	mu        sync.RWMutex
	defaults  map[string]any
	overrides map[string]any
}

// NewSettings builds a resolver with every default registered. Defaults are
// fixed for the life of the resolver; only overrides mutate after this.
func NewSettings() *Settings {
	return &Settings{
		defaults: map[string]any{
			SettingAPIURL:             DefaultAPIURL,
			SettingIgnoreList:         DefaultIgnoreList(),
			SettingCustomData:         map[string]any{},
			SettingReportingEnabled:   true,
			SettingLogger:             zap.NewNop(),
			SettingFailsafeLogger:     zap.NewNop(),
			SettingAffectedUserMethod: "current_user",
			SettingAffectedUserIdent:  []string{"email", "username", "id"},
			SettingFilteredParameters: DefaultFilteredParameters(),
		},
		overrides: map[string]any{},
	}
}

// Get returns the override for name when one is set, else the registered
// default. Never fails: unknown names read as nil.
func (s *Settings) Get(name string) any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.overrides[name]; ok {
		return v
	}
	return s.defaults[name]
}

// Set stores an override for name, replacing any previous override. Values
// are not validated here; consumers validate at use.
func (s *Settings) Set(name string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[name] = value
}

func (s *Settings) str(name string) string {
	v, _ := s.Get(name).(string)
	return v
}

func (s *Settings) strs(name string) []string {
	v, _ := s.Get(name).([]string)
	return v
}

// APIKey returns the configured credential, empty when none is set.
func (s *Settings) APIKey() string { return s.str(SettingAPIKey) }

// SetAPIKey stores the credential required before a client can be built.
func (s *Settings) SetAPIKey(key string) { s.Set(SettingAPIKey, key) }

// APIURL returns the collection endpoint base URL.
func (s *Settings) APIURL() string { return s.str(SettingAPIURL) }

// SetAPIURL overrides the collection endpoint base URL.
func (s *Settings) SetAPIURL(url string) { s.Set(SettingAPIURL, url) }

// Version returns the host application version stamped into payloads.
func (s *Settings) Version() string { return s.str(SettingVersion) }

// SetVersion stores the host application version.
func (s *Settings) SetVersion(version string) { s.Set(SettingVersion, version) }

// IgnoreList returns the exception class names that are never reported.
func (s *Settings) IgnoreList() []string { return s.strs(SettingIgnoreList) }

// SetIgnoreList replaces the ignored exception class names.
func (s *Settings) SetIgnoreList(classNames []string) { s.Set(SettingIgnoreList, classNames) }

// CustomData returns the globally configured custom data merged into every
// report.
func (s *Settings) CustomData() map[string]any {
	v, _ := s.Get(SettingCustomData).(map[string]any)
	return v
}

// SetCustomData replaces the global custom data.
func (s *Settings) SetCustomData(data map[string]any) { s.Set(SettingCustomData, data) }

// ReportingEnabled reports whether reports are transmitted at all.
func (s *Settings) ReportingEnabled() bool {
	v, ok := s.Get(SettingReportingEnabled).(bool)
	return ok && v
}

// SetReportingEnabled toggles transmission of reports.
func (s *Settings) SetReportingEnabled(enabled bool) { s.Set(SettingReportingEnabled, enabled) }

// Silenced is the inverse view of ReportingEnabled. Both accessors read the
// one stored flag, so the two can never diverge.
func (s *Settings) Silenced() bool { return !s.ReportingEnabled() }

// SetSilenced writes the same flag SetReportingEnabled writes, negated.
func (s *Settings) SetSilenced(silenced bool) { s.SetReportingEnabled(!silenced) }

// Logger returns the host-facing logger, never nil.
func (s *Settings) Logger() *zap.Logger {
	if l, ok := s.Get(SettingLogger).(*zap.Logger); ok && l != nil {
		return l
	}
	return zap.NewNop()
}

// SetLogger stores the host-facing logger.
func (s *Settings) SetLogger(logger *zap.Logger) { s.Set(SettingLogger, logger) }

// FailsafeLogger returns the last-resort logger used when the report path
// itself fails, never nil.
func (s *Settings) FailsafeLogger() *zap.Logger {
	if l, ok := s.Get(SettingFailsafeLogger).(*zap.Logger); ok && l != nil {
		return l
	}
	return zap.NewNop()
}

// SetFailsafeLogger stores the last-resort logger.
func (s *Settings) SetFailsafeLogger(logger *zap.Logger) { s.Set(SettingFailsafeLogger, logger) }

// AffectedUserMethod returns the name host adapters call on their session
// layer to find the current user.
func (s *Settings) AffectedUserMethod() string { return s.str(SettingAffectedUserMethod) }

// SetAffectedUserMethod overrides the affected-user lookup name.
func (s *Settings) SetAffectedUserMethod(name string) { s.Set(SettingAffectedUserMethod, name) }

// AffectedUserIdentifier returns the keys probed, in order, when reducing a
// user object to a single identity.
func (s *Settings) AffectedUserIdentifier() []string { return s.strs(SettingAffectedUserIdent) }

// SetAffectedUserIdentifier overrides the identity probe order.
func (s *Settings) SetAffectedUserIdentifier(keys []string) { s.Set(SettingAffectedUserIdent, keys) }

// FilteredParameters returns the globally redacted parameter names.
func (s *Settings) FilteredParameters() []string { return s.strs(SettingFilteredParameters) }

// SetFilteredParameters replaces the globally redacted parameter names.
func (s *Settings) SetFilteredParameters(names []string) { s.Set(SettingFilteredParameters, names) }

// ProxyHost returns the outbound proxy host, empty when direct.
func (s *Settings) ProxyHost() string { return s.str(SettingProxyHost) }

// SetProxyHost stores the outbound proxy host.
func (s *Settings) SetProxyHost(host string) { s.Set(SettingProxyHost, host) }

// ProxyPort returns the outbound proxy port, zero when unset.
func (s *Settings) ProxyPort() int {
	v, _ := s.Get(SettingProxyPort).(int)
	return v
}

// SetProxyPort stores the outbound proxy port.
func (s *Settings) SetProxyPort(port int) { s.Set(SettingProxyPort, port) }

// ProxyUser returns the proxy credential user, empty when unauthenticated.
func (s *Settings) ProxyUser() string { return s.str(SettingProxyUser) }

// SetProxyUser stores the proxy credential user.
func (s *Settings) SetProxyUser(user string) { s.Set(SettingProxyUser, user) }

// ProxyPassword returns the proxy credential password.
func (s *Settings) ProxyPassword() string { return s.str(SettingProxyPassword) }

// SetProxyPassword stores the proxy credential password.
func (s *Settings) SetProxyPassword(password string) { s.Set(SettingProxyPassword, password) }
