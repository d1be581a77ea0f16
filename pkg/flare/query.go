// query.go parses raw query strings, including the bracketed nesting syntax
// form encoders produce ("user[address][city]=x", "tags[]=a&tags[]=b").

package flare

import (
	"net/url"
	"strings"
)

// ParseNestedQuery parses a raw query string into a nested map. Malformed
// pairs are skipped; empty input yields an empty map, not an error.
func ParseNestedQuery(raw string) map[string]any {
	params := map[string]any{}
	if raw == "" {
		return params
	}

	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			continue
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			continue
		}

		name, segments, ok := splitBracketKey(key)
		if !ok {
			// Unbalanced brackets: keep the pair verbatim rather than lose it.
			params[key] = value
			continue
		}
		assignNested(params, name, segments, value)
	}
	return params
}

// splitBracketKey breaks "a[b][c]" into "a" and ["b", "c"]. The third return
// is false when brackets are unbalanced.
func splitBracketKey(key string) (string, []string, bool) {
	name, rest, bracketed := strings.Cut(key, "[")
	if !bracketed {
		return name, nil, true
	}

	var segments []string
	for rest != "" {
		segment, tail, closed := strings.Cut(rest, "]")
		if !closed {
			return key, nil, false
		}
		segments = append(segments, segment)
		if tail == "" {
			break
		}
		if !strings.HasPrefix(tail, "[") {
			return key, nil, false
		}
		rest = strings.TrimPrefix(tail, "[")
	}
	return name, segments, true
}

// assignNested walks the bracket segments, creating intermediate maps as
// needed. An empty trailing segment collects repeated values into a list.
func assignNested(params map[string]any, name string, segments []string, value string) {
	node := params
	key := name
	for _, segment := range segments {
		if segment == "" {
			list, _ := node[key].([]any)
			node[key] = append(list, value)
			return
		}
		child, ok := node[key].(map[string]any)
		if !ok {
			child = map[string]any{}
			node[key] = child
		}
		node = child
		key = segment
	}
	node[key] = value
}
