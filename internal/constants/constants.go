package constants

import "time"

const (
	// ContextKeyIdentity is the gin context key holding the verified identity.
	ContextKeyIdentity = "identity"

	MinPasswordLength = 8

	// DefaultTokenTTL bounds session token validity; expiry is the only
	// invalidation mechanism, there is no revocation list.
	DefaultTokenTTL = time.Hour
)
