// user.go reduces a host user object to the identity placed in the report's
// user block by host adapters.

package flare

// UserIdentity reduces a user object to the identifier host adapters put
// under EnvAffectedUser. Map-shaped users are probed with the configured
// identifier keys in order; the first present non-empty value wins. Anything
// else passes through unmodified; the builder never reshapes the user
// block.
func (s *Settings) UserIdentity(user any) any {
	m, ok := user.(map[string]any)
	if !ok {
		return user
	}
	for _, key := range s.AffectedUserIdentifier() {
		v, present := m[key]
		if !present || v == nil || v == "" {
			continue
		}
		return v
	}
	return user
}
