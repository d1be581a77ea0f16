// request.go extracts the sanitized request context from a CGI-style
// environment map. Absent or malformed entries read as empty fields.

package flare

import "strings"

// headerMarker prefixes environment keys that carry HTTP request headers.
const headerMarker = "HTTP_"

// formContentType marks request bodies the builder will parse as form data.
const formContentType = "application/x-www-form-urlencoded"

// requestContext derives the payload's request section. An empty environment
// yields an empty context, carrying only the always-empty rawData.
func (b *Builder) requestContext(env map[string]any) RequestContext {
	reqCtx := RequestContext{RawData: []any{}}
	if len(env) == 0 {
		return reqCtx
	}

	reqCtx.HostName = envString(env, envServerName)
	reqCtx.URL = envString(env, envPathInfo)
	reqCtx.HTTPMethod = envString(env, envRequestMethod)
	reqCtx.IPAddress = resolveIP(env)
	reqCtx.QueryString = ParseNestedQuery(envString(env, envQueryString))
	reqCtx.Form = b.formData(env)
	reqCtx.Headers = extractHeaders(env)
	return reqCtx
}

// resolveIP returns the first non-empty candidate in priority order. No
// match reads as empty, never an error.
func resolveIP(env map[string]any) string {
	for _, key := range ipCandidateKeys {
		if v := envString(env, key); v != "" {
			return v
		}
	}
	return ""
}

// formData parses and redacts the request body. Only form-encoded requests
// carry one; anything else reads as no form section at all. Extra redaction
// keys supplied in the environment apply on top of the configured list.
func (b *Builder) formData(env map[string]any) map[string]any {
	contentType := strings.ToLower(envString(env, envContentType))
	if !strings.Contains(contentType, formContentType) {
		return nil
	}
	return b.FilterParams(ParseNestedQuery(envString(env, EnvRequestBody)), extraFilterKeys(env)...)
}

// extractHeaders collects header-marked entries under conventional
// Word-Word names.
func extractHeaders(env map[string]any) map[string]string {
	headers := map[string]string{}
	for key := range env {
		if !strings.HasPrefix(key, headerMarker) {
			continue
		}
		headers[normalizeHeaderName(key)] = envString(env, key)
	}
	return headers
}

// normalizeHeaderName turns HTTP_ACCEPT_LANGUAGE into Accept-Language: strip
// the marker, space out the first underscore, capitalize each word, then
// hyphenate the first space. Only the first underscore becomes the hyphen,
// so names with three or more segments keep their trailing underscores
// (HTTP_X_FORWARDED_FOR comes out as X-Forwarded_for).
func normalizeHeaderName(key string) string {
	name := strings.Replace(strings.TrimPrefix(key, headerMarker), "_", " ", 1)
	words := strings.Fields(name)
	for i, word := range words {
		words[i] = capitalizeWord(word)
	}
	return strings.Replace(strings.Join(words, " "), " ", "-", 1)
}

// capitalizeWord uppercases the first byte and lowercases the rest.
func capitalizeWord(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
}

// extraFilterKeys reads the per-report redaction keys out of the
// environment. Both []string and []any spellings are accepted; anything
// else reads as none.
func extraFilterKeys(env map[string]any) []string {
	switch v := env[EnvParameterFilter].(type) {
	case []string:
		return v
	case []any:
		keys := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				keys = append(keys, s)
			}
		}
		return keys
	default:
		return nil
	}
}

// envString reads a string-valued entry; non-string values read as empty.
func envString(env map[string]any, key string) string {
	v, _ := env[key].(string)
	return v
}
