// payload.go defines the wire payload posted to the collection endpoint.

package flare

// Client identity stamped into every payload.
const (
	ClientName    = "flare4go"
	ClientVersion = "1.2.0"
	ClientURL     = "https://github.com/flarehq/flare"
)

// StackFrame is one parsed stack-trace entry. LineNumber stays a string:
// source formats vary and some runtimes emit non-numeric line markers.
type StackFrame struct {
	LineNumber string `json:"lineNumber"`
	FileName   string `json:"fileName"`
	MethodName string `json:"methodName"`
}

// ExceptionRecord is the normalized view of the raised exception.
type ExceptionRecord struct {
	ClassName  string       `json:"className"`
	Message    string       `json:"message"`
	StackTrace []StackFrame `json:"stackTrace"`
}

// ClientIdentity names the library that produced the payload.
type ClientIdentity struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	ClientURL string `json:"clientUrl"`
}

// RequestContext is the sanitized view of the HTTP request during which the
// exception occurred. All fields degrade to empty rather than failing.
type RequestContext struct {
	HostName    string            `json:"hostName,omitempty"`
	URL         string            `json:"url,omitempty"`
	HTTPMethod  string            `json:"httpMethod,omitempty"`
	IPAddress   string            `json:"iPAddress,omitempty"`
	QueryString map[string]any    `json:"queryString,omitempty"`
	Form        map[string]any    `json:"form,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
	RawData     []any             `json:"rawData"`
}

// ReportDetails carries everything under the payload's details key.
type ReportDetails struct {
	MachineName    string          `json:"machineName"`
	Version        string          `json:"version"`
	Client         ClientIdentity  `json:"client"`
	Error          ExceptionRecord `json:"error"`
	UserCustomData map[string]any  `json:"userCustomData"`
	Request        RequestContext  `json:"request"`
	User           any             `json:"user,omitempty"`
}

// ReportPayload is the single JSON object transmitted per occurrence.
type ReportPayload struct {
	// ID correlates log lines and sink writes for one occurrence. It is not
	// part of the wire format.
	ID string `json:"-"`

	OccurredOn string        `json:"occurredOn"`
	Details    ReportDetails `json:"details"`
}
