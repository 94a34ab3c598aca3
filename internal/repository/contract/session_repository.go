package contract

import "novel-recall-be/pkg/store"

// SessionRepository holds per-user disambiguation sessions. Backends:
// in-process TTL cache (default) or redis when sessions must survive a
// restart.
type SessionRepository interface {
	Save(session *store.Session)
	Get(sessionID string) (*store.Session, bool)
	Delete(sessionID string)
}
