package redisrepo

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"novel-recall-be/internal/entity"
	"novel-recall-be/pkg/store"

	"github.com/redis/go-redis/v9"
)

const sessionTTL = 1 * time.Hour

// SessionRepository persists sessions in redis as JSON so a restart
// does not drop in-flight disambiguation rounds. Errors degrade to
// "session not found": the caller routes the user back to search.
type SessionRepository struct {
	rdb *redis.Client
}

func NewSessionRepository(rdb *redis.Client) *SessionRepository {
	return &SessionRepository{rdb: rdb}
}

func key(sessionID string) string {
	return "recall:session:" + sessionID
}

func (r *SessionRepository) Save(session *store.Session) {
	data, err := json.Marshal(session)
	if err != nil {
		log.Printf("[ERROR] Failed to marshal session %s: %v", session.ID, err)
		return
	}
	if err := r.rdb.Set(context.Background(), key(session.ID), data, sessionTTL).Err(); err != nil {
		log.Printf("[ERROR] Failed to save session %s to redis: %v", session.ID, err)
	}
}

func (r *SessionRepository) Get(sessionID string) (*store.Session, bool) {
	data, err := r.rdb.Get(context.Background(), key(sessionID)).Bytes()
	if err != nil {
		return nil, false
	}
	var session store.Session
	if err := json.Unmarshal(data, &session); err != nil {
		log.Printf("[ERROR] Failed to unmarshal session %s: %v", sessionID, err)
		return nil, false
	}
	if session.EnrichCache == nil {
		session.EnrichCache = make(map[string]entity.EnrichedCandidate)
	}
	return &session, true
}

func (r *SessionRepository) Delete(sessionID string) {
	if err := r.rdb.Del(context.Background(), key(sessionID)).Err(); err != nil {
		log.Printf("[ERROR] Failed to delete session %s from redis: %v", sessionID, err)
	}
}
