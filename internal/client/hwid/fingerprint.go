// Package hwid derives the device fingerprint that binds an account to one
// physical device.
//
// The fingerprint is the lowercase hex MD5 of the four identity attributes
// joined with "|". MD5 is used as a stable digest shared with the server, not
// as a security primitive.
package hwid

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"strings"
)

const separator = "|"

// Identity is the set of device attributes the fingerprint is computed from.
type Identity struct {
	UniqueID      string
	DeviceID      string
	SystemName    string
	SystemVersion string
}

// Provider supplies the identity of the device the client runs on.
type Provider interface {
	Identity(ctx context.Context) (Identity, error)
}

// Fingerprint computes the fingerprint of id. Equal identities always give
// equal fingerprints.
func Fingerprint(id Identity) string {
	joined := strings.Join([]string{id.UniqueID, id.DeviceID, id.SystemName, id.SystemVersion}, separator)
	sum := md5.Sum([]byte(joined))
	return hex.EncodeToString(sum[:])
}

// Compute reads the identity from p and returns its fingerprint.
func Compute(ctx context.Context, p Provider) (string, error) {
	id, err := p.Identity(ctx)
	if err != nil {
		return "", err
	}
	return Fingerprint(id), nil
}

// StaticProvider returns a fixed identity, or Err when set.
type StaticProvider struct {
	ID  Identity
	Err error
}

func (s StaticProvider) Identity(context.Context) (Identity, error) {
	if s.Err != nil {
		return Identity{}, s.Err
	}
	return s.ID, nil
}
