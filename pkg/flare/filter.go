// filter.go implements the recursive redaction pass applied to form data
// before transmission.

package flare

import "github.com/samber/lo"

// FilteredValue replaces redacted parameter values on the wire.
const FilteredValue = "[FILTERED]"

// FilterParams redacts values whose key is in the configured
// filtered-parameter list or in extraKeys. Nested maps are walked before the
// key check, so a sensitive key holding a map is recursed into rather than
// replaced wholesale. Input is assumed to be a tree (parsed form data), so
// no cycle handling is needed.
func (b *Builder) FilterParams(params map[string]any, extraKeys ...string) map[string]any {
	return filterWithKeys(params, append(extraKeys, b.settings.FilteredParameters()...), b.settings)
}

// recurseFilterKeys returns the key set used when descending into a nested
// value. Per-call extra keys are not carried into recursion; widening this
// to the parent's full key set is a one-line change here.
func recurseFilterKeys(settings *Settings) []string {
	return settings.FilteredParameters()
}

func filterWithKeys(params map[string]any, keys []string, settings *Settings) map[string]any {
	filtered := make(map[string]any, len(params))
	for key, value := range params {
		if nested, ok := value.(map[string]any); ok {
			filtered[key] = filterWithKeys(nested, recurseFilterKeys(settings), settings)
			continue
		}
		if lo.Contains(keys, key) {
			filtered[key] = FilteredValue
			continue
		}
		filtered[key] = value
	}
	return filtered
}
