package registration

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// Fingerprint is a one-way, fixed-length token derived from an endpoint
// string. Fingerprints are safe to compare and log; the raw endpoint is not
// recoverable from them.
type Fingerprint string

// FingerprintEndpoint digests the UTF-8 bytes of endpoint into a lowercase
// hex SHA-256 token. The same endpoint always yields the same token.
func FingerprintEndpoint(endpoint string) (Fingerprint, error) {
	if endpoint == "" {
		return "", errors.New("cannot fingerprint an empty endpoint")
	}
	sum := sha256.Sum256([]byte(endpoint))
	return Fingerprint(hex.EncodeToString(sum[:])), nil
}

// Short returns a 12-character prefix suitable for log lines.
func (f Fingerprint) Short() string {
	if len(f) <= 12 {
		return string(f)
	}
	return string(f[:12])
}
