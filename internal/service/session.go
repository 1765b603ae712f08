package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

const (
	sessionTTL   = 24 * time.Hour
	sessionSweep = time.Hour
)

// SessionService resolves the current subject from a session id. It is the
// default in-process implementation of the session collaborator; the auth
// handlers only ever see the Resolve result.
type SessionService struct {
	store *cache.Cache
}

func NewSessionService() *SessionService {
	return &SessionService{
		store: cache.New(sessionTTL, sessionSweep),
	}
}

// Create opens a session for subject and returns its id.
func (s *SessionService) Create(subject string) string {
	id := uuid.NewString()
	s.store.Set(id, subject, cache.DefaultExpiration)
	return id
}

// Resolve returns the subject bound to a session id.
func (s *SessionService) Resolve(id string) (string, bool) {
	if id == "" {
		return "", false
	}
	v, ok := s.store.Get(id)
	if !ok {
		return "", false
	}
	subject, ok := v.(string)
	return subject, ok
}

// Destroy removes a session.
func (s *SessionService) Destroy(id string) {
	s.store.Delete(id)
}
