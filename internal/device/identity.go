package device

import (
	"crypto/sha256"
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/crypto/hkdf"
)

// Identity is the name/ID pair the device advertises in the
// Private-Network-Access-Name and Private-Network-Access-ID headers.
type Identity struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// namePattern is the allowed header value shape: lowercase letters,
// digits, hyphen, underscore.
var namePattern = regexp.MustCompile(`^[a-z0-9_-]{1,248}$`)

// idPattern is the 6-octet colon-separated hex shape of a device ID.
var idPattern = regexp.MustCompile(`^[0-9a-f]{2}(:[0-9a-f]{2}){5}$`)

// NewIdentity builds the advertised identity. When id is empty, a stable
// one is derived from name and secret, so restarts keep the same ID
// without storing state anywhere.
func NewIdentity(name, id, secret string) (Identity, error) {
	name = sanitizeName(name)
	if !namePattern.MatchString(name) {
		return Identity{}, fmt.Errorf("device name %q does not reduce to a valid header value", name)
	}

	if id == "" {
		derived, err := deriveID(name, secret)
		if err != nil {
			return Identity{}, fmt.Errorf("failed to derive device id: %w", err)
		}
		id = derived
	} else if !idPattern.MatchString(id) {
		return Identity{}, fmt.Errorf("device id %q is not colon-separated hex octets", id)
	}

	return Identity{Name: name, ID: id}, nil
}

// deriveID expands name and secret into the 6-octet colon-hex format the
// ID header expects.
func deriveID(name, secret string) (string, error) {
	kdf := hkdf.New(sha256.New, []byte(secret), []byte("lanscope-device-id"), []byte(name))

	var octets [6]byte
	if _, err := io.ReadFull(kdf, octets[:]); err != nil {
		return "", err
	}

	parts := make([]string, len(octets))
	for i, octet := range octets {
		parts[i] = fmt.Sprintf("%02x", octet)
	}
	return strings.Join(parts, ":"), nil
}

// sanitizeName lowercases and folds spaces and dots to hyphens, dropping
// anything else the header value grammar disallows.
func sanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		case r == ' ' || r == '.':
			return '-'
		default:
			return -1
		}
	}, name)
}
