package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	guestKeyPrefix   = "device:%s:guest"
	sessionKeyPrefix = "device:%s:session"
)

// Subscriber observes session writes for a device.
type Subscriber func(deviceID string, s Session)

// Store owns per-device session state. The guest identifier and the issued
// access token live in Redis so they survive restarts; the full session
// record (including the transient Resolving state) is kept in memory.
type Store struct {
	cache *redis.Client
	ttl   time.Duration

	mu       sync.RWMutex
	sessions map[string]Session

	subMu   sync.RWMutex
	subs    map[int]Subscriber
	nextSub int
}

// NewStore builds a session store. ttl bounds how long a persisted access
// token is retained; the guest identifier is kept indefinitely.
func NewStore(cache *redis.Client, ttl time.Duration) *Store {
	return &Store{
		cache:    cache,
		ttl:      ttl,
		sessions: make(map[string]Session),
		subs:     make(map[int]Subscriber),
	}
}

// GetOrCreateGuestID returns the durable guest identity for the device,
// creating one on first sight. Idempotent across restarts and concurrent
// callers.
func (s *Store) GetOrCreateGuestID(ctx context.Context, deviceID string) (string, error) {
	key := fmt.Sprintf(guestKeyPrefix, deviceID)

	guestID, err := s.cache.Get(ctx, key).Result()
	if err == nil {
		return guestID, nil
	}
	if !errors.Is(err, redis.Nil) {
		return "", err
	}

	candidate := uuid.NewString()
	ok, err := s.cache.SetNX(ctx, key, candidate, 0).Result()
	if err != nil {
		return "", err
	}
	if ok {
		return candidate, nil
	}
	// Lost the race; another caller created the identity first.
	return s.cache.Get(ctx, key).Result()
}

// Current reports the active session for the device, defaulting to signed out.
func (s *Store) Current(deviceID string) Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sess, ok := s.sessions[deviceID]; ok {
		return sess
	}
	return SignedOut()
}

// Set records the session for the device, persists or clears the access
// token, and notifies subscribers.
func (s *Store) Set(ctx context.Context, deviceID string, sess Session) error {
	key := fmt.Sprintf(sessionKeyPrefix, deviceID)

	switch sess.Status {
	case StatusSignedIn:
		if err := s.cache.Set(ctx, key, sess.Token, s.ttl).Err(); err != nil {
			return err
		}
	case StatusSignedOut:
		if err := s.cache.Del(ctx, key).Err(); err != nil {
			return err
		}
	}

	s.mu.Lock()
	s.sessions[deviceID] = sess
	s.mu.Unlock()

	s.notify(deviceID, sess)
	return nil
}

// PersistedToken returns the durable access token for the device, or the
// empty string when none was stored.
func (s *Store) PersistedToken(ctx context.Context, deviceID string) (string, error) {
	token, err := s.cache.Get(ctx, fmt.Sprintf(sessionKeyPrefix, deviceID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

// Subscribe registers fn to observe every session write. The returned
// function removes the subscription.
func (s *Store) Subscribe(fn Subscriber) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) notify(deviceID string, sess Session) {
	s.subMu.RLock()
	defer s.subMu.RUnlock()
	for _, fn := range s.subs {
		fn(deviceID, sess)
	}
}

// LogTransitions subscribes a structured-log observer to the store. It is the
// default subscriber wired at startup.
func (s *Store) LogTransitions(logger *slog.Logger) func() {
	return s.Subscribe(func(deviceID string, sess Session) {
		logger.Info("session transition",
			"device_id", deviceID,
			"status", sess.Status.String(),
			"user_id", sess.User.ID,
			"role", string(sess.Role),
		)
	})
}
