// builder.go transforms an exception and its environment into the wire
// payload. Every shaping failure degrades to an empty field; building a
// report never fails.

package flare

import (
	"os"
	"strings"
	"time"

	"github.com/samber/lo"
)

// Environment keys the builder reads. The CGI-style names come straight from
// the host's request environment; the flare.* names are markers placed there
// by host adapters.
const (
	envServerName    = "SERVER_NAME"
	envPathInfo      = "PATH_INFO"
	envRequestMethod = "REQUEST_METHOD"
	envQueryString   = "QUERY_STRING"
	envContentType   = "CONTENT_TYPE"
	envRemoteAddr    = "REMOTE_ADDR"

	// EnvRequestBody holds the raw request body for form-encoded requests.
	EnvRequestBody = "request.body"

	// EnvAffectedUser marks the identity of the end user tied to the
	// request. Map-shaped values are reduced to a single identifier via
	// the configured probe order; everything else passes through.
	EnvAffectedUser = "flare.affected_user"

	// EnvCustomData carries per-report custom data. It is metadata about the
	// report, not part of the HTTP request, and is removed from the
	// environment before the request context is built.
	EnvCustomData = "flare.custom_data"

	// EnvParameterFilter lists extra redaction keys for this report only.
	EnvParameterFilter = "flare.parameter_filter"
)

// occurredOnFormat renders timestamps the way the collection endpoint
// expects them: ISO-8601, UTC, second precision.
const occurredOnFormat = "2006-01-02T15:04:05Z"

// ipCandidateKeys is the priority order for resolving the client IP: the
// framework's remote-ip override first, then the client's own marker, then
// the standard CGI remote address.
var ipCandidateKeys = []string{"request.remote_ip", "flare.remote_ip", envRemoteAddr}

// Builder shapes (exception, environment) pairs into payloads using the
// settings it was constructed with. It is stateless across calls.
type Builder struct {
	settings *Settings
}

// NewBuilder returns a builder reading the given settings. A nil settings
// falls back to a fresh default resolver.
func NewBuilder(settings *Settings) *Builder {
	if settings == nil {
		settings = NewSettings()
	}
	return &Builder{settings: settings}
}

// BuildReport produces the payload for one occurrence. The caller's
// environment map is never mutated.
func (b *Builder) BuildReport(exc Exception, env map[string]any) ReportPayload {
	env = cloneEnv(env)
	custom := b.mergedCustomData(env)
	user := b.settings.UserIdentity(env[EnvAffectedUser])
	delete(env, EnvCustomData)

	machineName, _ := os.Hostname()

	return ReportPayload{
		OccurredOn: time.Now().UTC().Format(occurredOnFormat),
		Details: ReportDetails{
			MachineName: machineName,
			Version:     b.settings.Version(),
			Client: ClientIdentity{
				Name:      ClientName,
				Version:   ClientVersion,
				ClientURL: ClientURL,
			},
			Error: ExceptionRecord{
				ClassName:  exc.ClassName(),
				Message:    repairEncoding(exc.Message()),
				StackTrace: ParseFrames(exc.StackFrames()),
			},
			UserCustomData: custom,
			Request:        b.requestContext(env),
			User:           user,
		},
	}
}

// mergedCustomData folds per-call custom data over the globally configured
// map; per-call keys win on conflict.
func (b *Builder) mergedCustomData(env map[string]any) map[string]any {
	perCall, _ := env[EnvCustomData].(map[string]any)
	return lo.Assign(b.settings.CustomData(), perCall)
}

// repairEncoding re-encodes a message so the payload is always well-formed
// text: byte sequences that are not valid UTF-8 are replaced, never surfaced
// as an error.
func repairEncoding(message string) string {
	return strings.ToValidUTF8(message, "�")
}

func cloneEnv(env map[string]any) map[string]any {
	cloned := make(map[string]any, len(env))
	for k, v := range env {
		cloned[k] = v
	}
	return cloned
}
