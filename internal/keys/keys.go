// Package keys encodes internal entity identities into opaque websafe key
// strings. The websafe key is the only identity representation exposed to
// clients; internal ids never leave the API directly.
package keys

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// Kind names the entity type a key refers to.
type Kind string

const (
	KindProfile    Kind = "Profile"
	KindConference Kind = "Conference"
	KindSession    Kind = "Session"
	KindSpeaker    Kind = "Speaker"
)

var (
	ErrInvalidKey = errors.New("invalid websafe key")
	ErrWrongKind  = errors.New("websafe key refers to the wrong entity kind")
)

// Encode returns the websafe key for an entity id.
func Encode(kind Kind, id string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(string(kind) + ":" + id))
}

// Decode parses a websafe key into its kind and internal id.
func Decode(websafe string) (Kind, string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(websafe)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	kind, id, ok := strings.Cut(string(raw), ":")
	if !ok || kind == "" || id == "" {
		return "", "", ErrInvalidKey
	}
	switch Kind(kind) {
	case KindProfile, KindConference, KindSession, KindSpeaker:
		return Kind(kind), id, nil
	}
	return "", "", fmt.Errorf("%w: unknown kind %q", ErrInvalidKey, kind)
}

// DecodeKind parses a websafe key and checks it refers to the wanted kind.
func DecodeKind(websafe string, want Kind) (string, error) {
	kind, id, err := Decode(websafe)
	if err != nil {
		return "", err
	}
	if kind != want {
		return "", fmt.Errorf("%w: got %s, want %s", ErrWrongKind, kind, want)
	}
	return id, nil
}
