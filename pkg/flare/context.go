// context.go propagates per-request report enrichment through
// context.Context: custom data and the affected user.

package flare

import (
	"context"

	"github.com/samber/lo"
)

// Context key types (unexported to avoid collisions)
type customDataKey struct{}
type affectedUserKey struct{}

// affectedUserSet distinguishes "attached as nil" from "never attached".
type affectedUserSet struct {
	user any
}

// WithCustomData returns a context carrying custom data merged into any
// report built under it. Data placed directly in the report's environment
// wins on key conflicts.
func WithCustomData(ctx context.Context, data map[string]any) context.Context {
	return context.WithValue(ctx, customDataKey{}, data)
}

// CustomDataFromContext extracts context-carried custom data.
// Returns nil and false if none was attached.
func CustomDataFromContext(ctx context.Context) (map[string]any, bool) {
	data, ok := ctx.Value(customDataKey{}).(map[string]any)
	return data, ok && len(data) > 0
}

// WithAffectedUser returns a context carrying the identity of the end user
// whose request is being handled.
func WithAffectedUser(ctx context.Context, user any) context.Context {
	return context.WithValue(ctx, affectedUserKey{}, affectedUserSet{user: user})
}

// AffectedUserFromContext extracts the context-carried user identity.
// Returns nil and false if none was attached.
func AffectedUserFromContext(ctx context.Context) (any, bool) {
	set, ok := ctx.Value(affectedUserKey{}).(affectedUserSet)
	if !ok {
		return nil, false
	}
	return set.user, true
}

// mergeContextEnv folds context-carried enrichment into the environment.
// Explicit environment entries always win over context values.
func mergeContextEnv(ctx context.Context, env map[string]any) map[string]any {
	data, hasData := CustomDataFromContext(ctx)
	user, hasUser := AffectedUserFromContext(ctx)
	if !hasData && !hasUser {
		return env
	}

	merged := make(map[string]any, len(env)+2)
	for k, v := range env {
		merged[k] = v
	}
	if hasData {
		if existing, ok := merged[EnvCustomData].(map[string]any); ok {
			merged[EnvCustomData] = lo.Assign(data, existing)
		} else if _, present := merged[EnvCustomData]; !present {
			merged[EnvCustomData] = data
		}
	}
	if hasUser {
		if _, present := merged[EnvAffectedUser]; !present {
			merged[EnvAffectedUser] = user
		}
	}
	return merged
}
