// httpenv.go bridges a native *http.Request into the CGI-style environment
// map the builder consumes.

package flare

import (
	"bytes"
	"io"
	"net"
	"net/http"
	"strings"
)

// EnvFromRequest builds the report environment from an in-flight request.
// Headers land under HTTP_-marked keys; Content-Type and the form body are
// captured so the builder can populate the form section. The request body is
// restored after reading, so downstream handlers still see it.
func EnvFromRequest(r *http.Request) map[string]any {
	env := map[string]any{
		envServerName:    hostOnly(r.Host),
		envPathInfo:      r.URL.Path,
		envRequestMethod: r.Method,
		envQueryString:   r.URL.RawQuery,
		envRemoteAddr:    hostOnly(r.RemoteAddr),
	}

	for name, values := range r.Header {
		// CGI convention: Content-Type and Content-Length travel without
		// the header marker.
		if name == "Content-Type" || name == "Content-Length" {
			continue
		}
		env[headerMarker+strings.ToUpper(strings.ReplaceAll(name, "-", "_"))] = strings.Join(values, ", ")
	}

	if contentType := r.Header.Get("Content-Type"); contentType != "" {
		env[envContentType] = contentType
		if strings.Contains(strings.ToLower(contentType), formContentType) && r.Body != nil {
			if body, err := io.ReadAll(r.Body); err == nil {
				r.Body = io.NopCloser(bytes.NewReader(body))
				env[EnvRequestBody] = string(body)
			}
		}
	}

	return env
}

// hostOnly strips a trailing :port when one is present.
func hostOnly(hostport string) string {
	if host, _, err := net.SplitHostPort(hostport); err == nil {
		return host
	}
	return hostport
}
