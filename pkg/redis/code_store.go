package redis

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// ErrCodeMismatch is returned when a submitted code does not match the stored one.
var ErrCodeMismatch = errors.New("verification code mismatch")

// ErrCodeNotFound is returned when no code is stored for the user.
var ErrCodeNotFound = errors.New("verification code not found or expired")

// defaultCodeTTL is the lifetime of a 2FA login code when the caller does
// not configure one.
const defaultCodeTTL = 5 * time.Minute

// CodeStore keeps short-lived SMS login codes keyed by user ID.
type CodeStore struct {
	ttl time.Duration
}

// NewCodeStore creates a code store with the given code lifetime.
func NewCodeStore(ttl time.Duration) *CodeStore {
	if ttl <= 0 {
		ttl = defaultCodeTTL
	}
	return &CodeStore{ttl: ttl}
}

func codeKey(userID string) string {
	return "login_code:" + userID
}

// Save stores a code for the user, replacing any previous one.
func (s *CodeStore) Save(ctx context.Context, userID, code string) error {
	return client.Set(ctx, codeKey(userID), code, s.ttl).Err()
}

// Verify checks the submitted code against the stored one and consumes it
// on success. A mismatch leaves the code in place for another attempt.
func (s *CodeStore) Verify(ctx context.Context, userID, code string) error {
	stored, err := client.Get(ctx, codeKey(userID)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return ErrCodeNotFound
		}
		return err
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return ErrCodeMismatch
	}

	return client.Del(ctx, codeKey(userID)).Err()
}
