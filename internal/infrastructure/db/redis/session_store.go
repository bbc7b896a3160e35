package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/99minutos/admin-dashboard/internal/core/domain"
)

// defaultSessionTTL applies to sessions whose token carries no expiry.
const defaultSessionTTL = 24 * time.Hour

// SessionStore keeps CLI sessions in Redis so that one login serves many
// invocations. Key format: session:<profile>
// Entries expire together with the token they hold.
type SessionStore struct {
	client *redis.Client
	now    func() time.Time
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client, now: time.Now}
}

// Save stores the session of profile, replacing any previous one.
func (s *SessionStore) Save(ctx context.Context, profile string, sess domain.Session) error {
	if !sess.Authenticated() {
		return domain.ErrNoCredential
	}

	ttl := defaultSessionTTL
	if !sess.ExpiresAt.IsZero() {
		ttl = sess.ExpiresAt.Sub(s.now())
		if ttl <= 0 {
			return fmt.Errorf("save session: token already expired at %s", sess.ExpiresAt.Format(time.RFC3339))
		}
	}

	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(profile), raw, ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Load returns the session of profile, or domain.ErrNoSession.
func (s *SessionStore) Load(ctx context.Context, profile string) (domain.Session, error) {
	raw, err := s.client.Get(ctx, s.key(profile)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Session{}, domain.ErrNoSession
		}
		return domain.Session{}, fmt.Errorf("load session: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return domain.Session{}, fmt.Errorf("load session: %w", err)
	}
	return sess, nil
}

// Delete destroys the session of profile. Deleting a missing session is not
// an error.
func (s *SessionStore) Delete(ctx context.Context, profile string) error {
	if err := s.client.Del(ctx, s.key(profile)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionStore) key(profile string) string {
	return "session:" + profile
}
