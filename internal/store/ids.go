package store

import (
	"crypto/rand"
	"encoding/base32"
	"strings"
)

// NewTaskID returns task-<suffix> where suffix is 8 chars of base32 (lowercase, no padding).
func NewTaskID() (string, error) {
	return newRandomID("task")
}

// newRandomID returns prefix-<suffix>. 8 chars base32 ~= 40 bits of space.
func newRandomID(prefix string) (string, error) {
	var b [5]byte // 40 bits -> 8 base32 chars
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	suffix := strings.ToLower(enc.EncodeToString(b[:]))
	return prefix + "-" + suffix, nil
}
