// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidSession = errors.New("invalid session token")
	ErrInvalidPHID    = errors.New("invalid PHID")
)

const phidSuffixLen = 20

// NewPHID creates a PHID of the given type, e.g. PHID-POLL-3f1c9a0b2d7e4c55a1b0
func NewPHID(kind string) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "PHID-" + kind + "-" + id[:phidSuffixLen]
}

// PHIDType returns the type component of a PHID
func PHIDType(phid string) (string, error) {
	parts := strings.Split(phid, "-")
	if len(parts) != 3 || parts[0] != "PHID" || parts[1] == "" || parts[2] == "" {
		return "", ErrInvalidPHID
	}
	return parts[1], nil
}

// GenerateSessionToken signs a user PHID into a session token.
// Deterministic, so tokens can be verified without storage.
func GenerateSessionToken(userPHID, salt string) string {
	return userPHID + "." + sign(userPHID, salt)
}

// ParseSessionToken verifies a session token and returns the user PHID it carries
func ParseSessionToken(token, salt string) (string, error) {
	idx := strings.LastIndex(token, ".")
	if idx <= 0 || idx == len(token)-1 {
		return "", ErrInvalidSession
	}

	userPHID, mac := token[:idx], token[idx+1:]
	if kind, err := PHIDType(userPHID); err != nil || kind != "USER" {
		return "", ErrInvalidSession
	}

	if !hmac.Equal([]byte(mac), []byte(sign(userPHID, salt))) {
		return "", ErrInvalidSession
	}
	return userPHID, nil
}

func sign(value, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(value))
	sum := h.Sum(nil)
	// URL-safe base64 without padding so tokens fit in cookies
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}
