// Package session provides per-browsing-session key-value state. Its only
// production consumer is the active-household pointer, kept under the
// current_household_uuid key.
package session

import (
	"context"
	"time"
)

// KeyCurrentHousehold is the session key holding the active household's UUID
// as a string.
const KeyCurrentHousehold = "current_household_uuid"

// DefaultTTL is how long an idle session survives. Every write refreshes it.
const DefaultTTL = 30 * 24 * time.Hour

// Store is a key-value store scoped to a browsing session. Get returns
// ("", nil) when the key is absent; Destroy removes the whole session.
type Store interface {
	Get(ctx context.Context, sessionID, key string) (string, error)
	Set(ctx context.Context, sessionID, key, value string) error
	Destroy(ctx context.Context, sessionID string) error
}
