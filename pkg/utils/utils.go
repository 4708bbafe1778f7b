package utils

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	NewSessionID() (string, error)
	NewBookingID() (string, error)
}

type utils struct{}

func New() IUtils {
	return &utils{}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

// NewSessionID returns an opaque session token. The prefix keeps tokens
// recognizable in logs without leaking anything about the client.
func (u *utils) NewSessionID() (string, error) {
	id, err := u.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return "", err
	}
	return "session_" + strings.ToLower(id), nil
}

func (u *utils) NewBookingID() (string, error) {
	id, err := u.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return "", err
	}
	// short confirmation code, easy to read back over the phone
	return id[len(id)-8:], nil
}
